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
	"cartoonhub/internal/mailer"
)

type UserService interface {
	Create(ctx context.Context, req dto.CreateUserRequest) (*models.User, error)
	Update(ctx context.Context, actor Actor, id string, req dto.UpdateUserRequest) (*models.User, error)
	FindAll(ctx context.Context) ([]models.User, error)
	FindAllPaginated(ctx context.Context, query dto.PaginationQuery) (*dto.Paginated[models.User], error)
	FindOne(ctx context.Context, id string) (*models.User, error)
	Delete(ctx context.Context, actor Actor, id string) error
	SetLocked(ctx context.Context, actor Actor, id string, locked bool) (*models.User, error)
	VerifyEmail(ctx context.Context, req dto.VerifyEmailRequest) error
	ResendVerification(ctx context.Context, email string) error
}

type userService struct {
	userRepo    repository.UserRepository
	otpService  OTPService
	emailSender mailer.EmailSender
	logger      *slog.Logger
}

func NewUserService(
	userRepo repository.UserRepository,
	otpService OTPService,
	emailSender mailer.EmailSender,
	logger *slog.Logger,
) UserService {
	return &userService{
		userRepo:    userRepo,
		otpService:  otpService,
		emailSender: emailSender,
		logger:      logger,
	}
}

// Create is the public signup path. New accounts always get the user role
// and start unverified; a verification code goes out by email.
func (s *userService) Create(ctx context.Context, req dto.CreateUserRequest) (*models.User, error) {
	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:     req.Email,
		Password:  hashed,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      models.RoleUser,
	}
	if err := s.userRepo.Create(user); err != nil {
		if apperr.IsUniqueViolation(err) {
			return nil, apperr.Conflict("an account with this email already exists")
		}
		return nil, err
	}

	code, err := s.otpService.CreateEmailVerification(user.Email, user.ID)
	if err != nil {
		return nil, err
	}
	// Signup succeeds even when the email does not go out; the code can be
	// resent later.
	if !s.emailSender.SendVerificationEmail(ctx, user.Email, code, user.FirstName+" "+user.LastName) {
		s.logger.Warn("verification email not sent", "email", user.Email)
	}

	return user, nil
}

func (s *userService) Update(ctx context.Context, actor Actor, id string, req dto.UpdateUserRequest) (*models.User, error) {
	if actor.Role != models.RoleAdmin && actor.ID != id {
		return nil, apperr.Forbidden("you can only update your own profile")
	}

	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	user.UpdatedByID = &actor.ID

	if err := s.userRepo.Save(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) FindAll(ctx context.Context) ([]models.User, error) {
	return s.userRepo.FindAll()
}

func (s *userService) FindAllPaginated(ctx context.Context, query dto.PaginationQuery) (*dto.Paginated[models.User], error) {
	query.Normalize()
	users, total, err := s.userRepo.FindAllPaginated(query.Offset(), query.Limit)
	if err != nil {
		return nil, err
	}
	return dto.NewPaginated(users, query.Page, query.Limit, total), nil
}

func (s *userService) FindOne(ctx context.Context, id string) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, actor Actor, id string) error {
	if actor.Role != models.RoleAdmin && actor.ID != id {
		return apperr.Forbidden("you can only delete your own account")
	}
	if _, err := s.userRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("user not found")
		}
		return err
	}
	return s.userRepo.Delete(id)
}

// SetLocked flips the lock flag and stamps who did it. Locking yourself is
// rejected so an admin cannot shut the last door behind them.
func (s *userService) SetLocked(ctx context.Context, actor Actor, id string, locked bool) (*models.User, error) {
	if actor.ID == id {
		return nil, apperr.BadRequest("you cannot change the lock on your own account")
	}

	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}

	user.IsLocked = locked
	if locked {
		user.LockedByID = &actor.ID
	} else {
		user.LockedByID = nil
	}
	user.UpdatedByID = &actor.ID

	if err := s.userRepo.Save(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) VerifyEmail(ctx context.Context, req dto.VerifyEmailRequest) error {
	if err := s.otpService.ConsumeEmailVerification(req.Email, req.VerificationCode); err != nil {
		return err
	}
	return s.userRepo.MarkVerified(req.Email)
}

func (s *userService) ResendVerification(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("no account found for this email address")
		}
		return err
	}
	if user.IsVerified {
		return apperr.BadRequest("this account is already verified")
	}

	code, err := s.otpService.CreateEmailVerification(user.Email, user.ID)
	if err != nil {
		return err
	}
	if !s.emailSender.SendVerificationEmail(ctx, user.Email, code, user.FirstName+" "+user.LastName) {
		return apperr.Internal(errors.New("verification email send failed"))
	}
	return nil
}
