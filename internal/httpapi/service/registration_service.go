package service

import (
	"context"
	"errors"
	"log/slog"

	"gorm.io/gorm"

	"cartoonhub/internal/auth"
	"cartoonhub/internal/httpapi/apperr"
	"cartoonhub/internal/httpapi/dto"
	"cartoonhub/internal/httpapi/models"
	"cartoonhub/internal/httpapi/repository"
)

// RegistrationService runs the company onboarding state machine. A public
// request enters as pending; an admin review moves it to approved (which
// materializes the company and its first creator account) or rejected.
type RegistrationService interface {
	Create(ctx context.Context, req dto.CreateRegistrationRequest) (*models.CompanyRegistrationRequest, error)
	CreateCompanyDirectly(ctx context.Context, actor Actor, req dto.CreateCompanyDirectlyRequest) (*models.Company, error)
	Update(ctx context.Context, id string, req dto.UpdateRegistrationRequest) (*models.CompanyRegistrationRequest, error)
	Review(ctx context.Context, actor Actor, id string, req dto.ReviewRegistrationRequest) (*models.CompanyRegistrationRequest, error)
	Delete(ctx context.Context, id string) error
	FindOne(ctx context.Context, id string) (*models.CompanyRegistrationRequest, error)
	FindAllPaginated(ctx context.Context, query dto.PaginationQuery) (*dto.Paginated[models.CompanyRegistrationRequest], error)
	FindByStatusPaginated(ctx context.Context, status string, query dto.PaginationQuery) (*dto.Paginated[models.CompanyRegistrationRequest], error)
}

type registrationService struct {
	db               *gorm.DB
	registrationRepo repository.RegistrationRepository
	companyRepo      repository.CompanyRepository
	userRepo         repository.UserRepository
	logger           *slog.Logger
}

func NewRegistrationService(
	db *gorm.DB,
	registrationRepo repository.RegistrationRepository,
	companyRepo repository.CompanyRepository,
	userRepo repository.UserRepository,
	logger *slog.Logger,
) RegistrationService {
	return &registrationService{
		db:               db,
		registrationRepo: registrationRepo,
		companyRepo:      companyRepo,
		userRepo:         userRepo,
		logger:           logger,
	}
}

// checkEmailFree rejects a company email already taken by a company, a
// user account, or another pending request.
func (s *registrationService) checkEmailFree(email string) error {
	if _, err := s.companyRepo.FindByEmail(email); err == nil {
		return apperr.Conflict("a company with this email already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return apperr.Conflict("a user account with this email already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if _, err := s.registrationRepo.FindPendingByEmail(email); err == nil {
		return apperr.Conflict("a registration request for this email is already pending")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

// Create files a public registration request. The password is hashed here,
// once, so the row never stores plaintext.
func (s *registrationService) Create(ctx context.Context, req dto.CreateRegistrationRequest) (*models.CompanyRegistrationRequest, error) {
	if err := s.checkEmailFree(req.CompanyEmail); err != nil {
		return nil, err
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	request := &models.CompanyRegistrationRequest{
		CompanyName:        req.CompanyName,
		CompanyDescription: req.CompanyDescription,
		CompanyAddress:     req.CompanyAddress,
		CompanyCity:        req.CompanyCity,
		CompanyCountry:     req.CompanyCountry,
		CompanyPostalCode:  req.CompanyPostalCode,
		CompanyEmail:       req.CompanyEmail,
		CompanyPhone:       req.CompanyPhone,
		CompanyWebsite:     req.CompanyWebsite,
		Password:           hashed,
		Status:             models.RegistrationPending,
	}
	if err := s.registrationRepo.Create(request); err != nil {
		return nil, err
	}
	return request, nil
}

// CreateCompanyDirectly is the admin bypass: company and creator account in
// one transaction, no review step.
func (s *registrationService) CreateCompanyDirectly(ctx context.Context, actor Actor, req dto.CreateCompanyDirectlyRequest) (*models.Company, error) {
	if err := s.checkEmailFree(req.CompanyEmail); err != nil {
		return nil, err
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	var company *models.Company
	err = s.db.Transaction(func(tx *gorm.DB) error {
		companyRepo := s.companyRepo.WithTx(tx)
		userRepo := s.userRepo.WithTx(tx)

		company = &models.Company{
			Name:        req.CompanyName,
			Description: req.CompanyDescription,
			Address:     req.CompanyAddress,
			City:        req.CompanyCity,
			Country:     req.CompanyCountry,
			PostalCode:  req.CompanyPostalCode,
			Email:       req.CompanyEmail,
			Phone:       req.CompanyPhone,
			Website:     req.CompanyWebsite,
			LogoURL:     req.CompanyLogoURL,
			IsActive:    true,
			CreatedByID: &actor.ID,
		}
		if err := companyRepo.Create(company); err != nil {
			if apperr.IsUniqueViolation(err) {
				return apperr.Conflict("a company with this email already exists")
			}
			return err
		}

		user := &models.User{
			Email:       req.CompanyEmail,
			Password:    hashed,
			FirstName:   req.CompanyName,
			Role:        models.RoleCreator,
			IsVerified:  true,
			CompanyID:   &company.ID,
			CreatedByID: &actor.ID,
		}
		if err := userRepo.Create(user); err != nil {
			if apperr.IsUniqueViolation(err) {
				return apperr.Conflict("a user account with this email already exists")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return company, nil
}

// Update edits a request while it is still pending. A new password is
// rehashed before it lands on the row.
func (s *registrationService) Update(ctx context.Context, id string, req dto.UpdateRegistrationRequest) (*models.CompanyRegistrationRequest, error) {
	request, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	if request.Status != models.RegistrationPending {
		return nil, apperr.BadRequest("only pending requests can be updated")
	}

	if req.CompanyName != nil {
		request.CompanyName = *req.CompanyName
	}
	if req.CompanyDescription != nil {
		request.CompanyDescription = req.CompanyDescription
	}
	if req.CompanyAddress != nil {
		request.CompanyAddress = *req.CompanyAddress
	}
	if req.CompanyCity != nil {
		request.CompanyCity = req.CompanyCity
	}
	if req.CompanyCountry != nil {
		request.CompanyCountry = req.CompanyCountry
	}
	if req.CompanyPostalCode != nil {
		request.CompanyPostalCode = req.CompanyPostalCode
	}
	if req.CompanyPhone != nil {
		request.CompanyPhone = req.CompanyPhone
	}
	if req.CompanyWebsite != nil {
		request.CompanyWebsite = req.CompanyWebsite
	}
	if req.Password != nil {
		hashed, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		request.Password = hashed
	}

	if err := s.registrationRepo.Save(request); err != nil {
		return nil, err
	}
	return request, nil
}

// Review decides a pending request. Approval materializes the company and
// its first creator account inside the same transaction as the status
// stamp; the stamp's status guard makes a second concurrent review lose
// with a zero row count instead of a double approval.
func (s *registrationService) Review(ctx context.Context, actor Actor, id string, req dto.ReviewRegistrationRequest) (*models.CompanyRegistrationRequest, error) {
	if req.Status == models.RegistrationPending {
		return nil, apperr.BadRequest("a review must approve or reject the request")
	}
	if req.Status == models.RegistrationRejected && req.RejectionReason == nil {
		return nil, apperr.BadRequest("a rejection needs a reason")
	}

	request, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	if request.Status != models.RegistrationPending {
		return nil, apperr.BadRequest("this request has already been reviewed")
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		registrationRepo := s.registrationRepo.WithTx(tx)

		fields := map[string]interface{}{
			"status":         req.Status,
			"admin_notes":    req.AdminNotes,
			"reviewed_by_id": actor.ID,
		}

		if req.Status == models.RegistrationRejected {
			fields["rejection_reason"] = req.RejectionReason
			affected, err := registrationRepo.StampReview(id, fields)
			if err != nil {
				return err
			}
			if affected == 0 {
				return apperr.BadRequest("this request has already been reviewed")
			}
			return nil
		}

		companyRepo := s.companyRepo.WithTx(tx)
		userRepo := s.userRepo.WithTx(tx)

		company := &models.Company{
			Name:        request.CompanyName,
			Description: request.CompanyDescription,
			Address:     request.CompanyAddress,
			City:        request.CompanyCity,
			Country:     request.CompanyCountry,
			PostalCode:  request.CompanyPostalCode,
			Email:       request.CompanyEmail,
			Phone:       request.CompanyPhone,
			Website:     request.CompanyWebsite,
			IsActive:    true,
			CreatedByID: &actor.ID,
		}
		if err := companyRepo.Create(company); err != nil {
			if apperr.IsUniqueViolation(err) {
				return apperr.Conflict("a company with this email already exists")
			}
			return err
		}

		// The request stored the hash, so the credential carries over as-is.
		user := &models.User{
			Email:       request.CompanyEmail,
			Password:    request.Password,
			FirstName:   request.CompanyName,
			Role:        models.RoleCreator,
			IsVerified:  true,
			CompanyID:   &company.ID,
			CreatedByID: &actor.ID,
		}
		if err := userRepo.Create(user); err != nil {
			if apperr.IsUniqueViolation(err) {
				return apperr.Conflict("a user account with this email already exists")
			}
			return err
		}

		fields["company_id"] = company.ID
		fields["created_user_id"] = user.ID
		affected, err := registrationRepo.StampReview(id, fields)
		if err != nil {
			return err
		}
		if affected == 0 {
			return apperr.BadRequest("this request has already been reviewed")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("registration request reviewed",
		"request_id", id,
		"status", req.Status,
		"reviewed_by", actor.ID,
	)
	return s.FindOne(ctx, id)
}

// Delete removes a request unless it was approved: the company created
// from it keeps the request as its provenance record.
func (s *registrationService) Delete(ctx context.Context, id string) error {
	request, err := s.FindOne(ctx, id)
	if err != nil {
		return err
	}
	if request.Status == models.RegistrationApproved {
		return apperr.BadRequest("approved requests cannot be deleted")
	}
	return s.registrationRepo.Delete(id)
}

func (s *registrationService) FindOne(ctx context.Context, id string) (*models.CompanyRegistrationRequest, error) {
	request, err := s.registrationRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("registration request not found")
		}
		return nil, err
	}
	return request, nil
}

func (s *registrationService) FindAllPaginated(ctx context.Context, query dto.PaginationQuery) (*dto.Paginated[models.CompanyRegistrationRequest], error) {
	query.Normalize()
	requests, total, err := s.registrationRepo.FindAllPaginated(query.Offset(), query.Limit)
	if err != nil {
		return nil, err
	}
	return dto.NewPaginated(requests, query.Page, query.Limit, total), nil
}

func (s *registrationService) FindByStatusPaginated(ctx context.Context, status string, query dto.PaginationQuery) (*dto.Paginated[models.CompanyRegistrationRequest], error) {
	switch status {
	case models.RegistrationPending, models.RegistrationApproved, models.RegistrationRejected:
	default:
		return nil, apperr.BadRequest("unknown status")
	}

	query.Normalize()
	requests, total, err := s.registrationRepo.FindByStatusPaginated(status, query.Offset(), query.Limit)
	if err != nil {
		return nil, err
	}
	return dto.NewPaginated(requests, query.Page, query.Limit, total), nil
}
