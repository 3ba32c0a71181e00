package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cartoonhub/internal/auth"
	"cartoonhub/internal/httpapi/apperr"
	"cartoonhub/internal/httpapi/dto"
	"cartoonhub/internal/httpapi/models"
	"cartoonhub/internal/httpapi/repository"
	"gorm.io/gorm"
)

func newRegistrationService(t *testing.T) (RegistrationService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewRegistrationService(
		db,
		repository.NewRegistrationRepository(db),
		repository.NewCompanyRepository(db),
		repository.NewUserRepository(db),
		testLogger(),
	)
	return svc, db
}

func sampleRegistration(email string) dto.CreateRegistrationRequest {
	return dto.CreateRegistrationRequest{
		CompanyName:    "Acme Animation",
		CompanyAddress: "1 Studio Way",
		CompanyEmail:   email,
		Password:       "creator-password",
	}
}

func TestRegistrationCreatePending(t *testing.T) {
	svc, _ := newRegistrationService(t)

	request, err := svc.Create(context.Background(), sampleRegistration("studio@example.com"))
	require.NoError(t, err)
	assert.Equal(t, models.RegistrationPending, request.Status)

	// Stored hashed, and the hash verifies against the plaintext.
	assert.NotEqual(t, "creator-password", request.Password)
	assert.NoError(t, auth.VerifyPassword(request.Password, "creator-password"))
}

func TestRegistrationCreateConflicts(t *testing.T) {
	svc, db := newRegistrationService(t)

	// Pending request with the same email.
	_, err := svc.Create(context.Background(), sampleRegistration("pending@example.com"))
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), sampleRegistration("pending@example.com"))
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))

	// Existing company.
	seedCompany(t, db, "company@example.com")
	_, err = svc.Create(context.Background(), sampleRegistration("company@example.com"))
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))

	// Existing user account.
	seedUser(t, db, "user@example.com", models.RoleUser)
	_, err = svc.Create(context.Background(), sampleRegistration("user@example.com"))
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestRegistrationApproveCreatesCompanyAndCreator(t *testing.T) {
	svc, db := newRegistrationService(t)
	admin := seedUser(t, db, "admin@example.com", models.RoleAdmin)

	request, err := svc.Create(context.Background(), sampleRegistration("studio@example.com"))
	require.NoError(t, err)

	reviewed, err := svc.Review(context.Background(), actorFor(admin), request.ID, dto.ReviewRegistrationRequest{
		Status: models.RegistrationApproved,
	})
	require.NoError(t, err)
	assert.Equal(t, models.RegistrationApproved, reviewed.Status)
	require.NotNil(t, reviewed.CompanyID)
	require.NotNil(t, reviewed.CreatedUserID)
	require.NotNil(t, reviewed.ReviewedByID)
	assert.Equal(t, admin.ID, *reviewed.ReviewedByID)

	var company models.Company
	require.NoError(t, db.First(&company, "id = ?", *reviewed.CompanyID).Error)
	assert.Equal(t, "studio@example.com", company.Email)
	assert.True(t, company.IsActive)

	var user models.User
	require.NoError(t, db.First(&user, "id = ?", *reviewed.CreatedUserID).Error)
	assert.Equal(t, models.RoleCreator, user.Role)
	assert.True(t, user.IsVerified)
	require.NotNil(t, user.CompanyID)
	assert.Equal(t, company.ID, *user.CompanyID)

	// The creator can log in with the password filed at request time.
	assert.NoError(t, auth.VerifyPassword(user.Password, "creator-password"))

	// Exactly one company and one creator came out of the approval.
	var companies, creators int64
	require.NoError(t, db.Model(&models.Company{}).Count(&companies).Error)
	require.NoError(t, db.Model(&models.User{}).Where("role = ?", models.RoleCreator).Count(&creators).Error)
	assert.Equal(t, int64(1), companies)
	assert.Equal(t, int64(1), creators)
}

func TestRegistrationRejectStampsReason(t *testing.T) {
	svc, db := newRegistrationService(t)
	admin := seedUser(t, db, "admin@example.com", models.RoleAdmin)

	request, err := svc.Create(context.Background(), sampleRegistration("studio@example.com"))
	require.NoError(t, err)

	reason := "incomplete paperwork"
	reviewed, err := svc.Review(context.Background(), actorFor(admin), request.ID, dto.ReviewRegistrationRequest{
		Status:          models.RegistrationRejected,
		RejectionReason: &reason,
	})
	require.NoError(t, err)
	assert.Equal(t, models.RegistrationRejected, reviewed.Status)
	require.NotNil(t, reviewed.RejectionReason)
	assert.Equal(t, reason, *reviewed.RejectionReason)
	assert.Nil(t, reviewed.CompanyID)

	// No company materialized from a rejection.
	var companies int64
	require.NoError(t, db.Model(&models.Company{}).Count(&companies).Error)
	assert.Zero(t, companies)
}

func TestRegistrationRejectNeedsReason(t *testing.T) {
	svc, db := newRegistrationService(t)
	admin := seedUser(t, db, "admin@example.com", models.RoleAdmin)

	request, err := svc.Create(context.Background(), sampleRegistration("studio@example.com"))
	require.NoError(t, err)

	_, err = svc.Review(context.Background(), actorFor(admin), request.ID, dto.ReviewRegistrationRequest{
		Status: models.RegistrationRejected,
	})
	assert.True(t, apperr.IsKind(err, apperr.KindBadRequest))
}

func TestRegistrationReviewTerminalStates(t *testing.T) {
	svc, db := newRegistrationService(t)
	admin := seedUser(t, db, "admin@example.com", models.RoleAdmin)

	request, err := svc.Create(context.Background(), sampleRegistration("studio@example.com"))
	require.NoError(t, err)

	// Reviewing back to pending is not a transition.
	_, err = svc.Review(context.Background(), actorFor(admin), request.ID, dto.ReviewRegistrationRequest{
		Status: models.RegistrationPending,
	})
	assert.True(t, apperr.IsKind(err, apperr.KindBadRequest))

	_, err = svc.Review(context.Background(), actorFor(admin), request.ID, dto.ReviewRegistrationRequest{
		Status: models.RegistrationApproved,
	})
	require.NoError(t, err)

	// A second review of any kind is rejected.
	reason := "changed my mind"
	_, err = svc.Review(context.Background(), actorFor(admin), request.ID, dto.ReviewRegistrationRequest{
		Status:          models.RegistrationRejected,
		RejectionReason: &reason,
	})
	assert.True(t, apperr.IsKind(err, apperr.KindBadRequest))
}

func TestRegistrationUpdatePendingOnly(t *testing.T) {
	svc, db := newRegistrationService(t)
	admin := seedUser(t, db, "admin@example.com", models.RoleAdmin)

	request, err := svc.Create(context.Background(), sampleRegistration("studio@example.com"))
	require.NoError(t, err)

	name := "Acme Animation Ltd"
	updated, err := svc.Update(context.Background(), request.ID, dto.UpdateRegistrationRequest{CompanyName: &name})
	require.NoError(t, err)
	assert.Equal(t, name, updated.CompanyName)

	// A resupplied password is rehashed.
	newPassword := "another-password"
	updated, err = svc.Update(context.Background(), request.ID, dto.UpdateRegistrationRequest{Password: &newPassword})
	require.NoError(t, err)
	assert.NoError(t, auth.VerifyPassword(updated.Password, newPassword))

	_, err = svc.Review(context.Background(), actorFor(admin), request.ID, dto.ReviewRegistrationRequest{
		Status: models.RegistrationApproved,
	})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), request.ID, dto.UpdateRegistrationRequest{CompanyName: &name})
	assert.True(t, apperr.IsKind(err, apperr.KindBadRequest))
}

func TestRegistrationDeleteRules(t *testing.T) {
	svc, db := newRegistrationService(t)
	admin := seedUser(t, db, "admin@example.com", models.RoleAdmin)

	approved, err := svc.Create(context.Background(), sampleRegistration("approved@example.com"))
	require.NoError(t, err)
	_, err = svc.Review(context.Background(), actorFor(admin), approved.ID, dto.ReviewRegistrationRequest{
		Status: models.RegistrationApproved,
	})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), approved.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindBadRequest))

	pending, err := svc.Create(context.Background(), sampleRegistration("pending@example.com"))
	require.NoError(t, err)
	require.NoError(t, svc.Delete(context.Background(), pending.ID))

	_, err = svc.FindOne(context.Background(), pending.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestCreateCompanyDirectly(t *testing.T) {
	svc, db := newRegistrationService(t)
	admin := seedUser(t, db, "admin@example.com", models.RoleAdmin)

	company, err := svc.CreateCompanyDirectly(context.Background(), actorFor(admin), dto.CreateCompanyDirectlyRequest{
		CompanyName:    "Direct Studio",
		CompanyAddress: "2 Studio Way",
		CompanyEmail:   "direct@example.com",
		Password:       "creator-password",
	})
	require.NoError(t, err)
	assert.True(t, company.IsActive)

	var user models.User
	require.NoError(t, db.First(&user, "email = ?", "direct@example.com").Error)
	assert.Equal(t, models.RoleCreator, user.Role)
	assert.True(t, user.IsVerified)
	require.NotNil(t, user.CompanyID)
	assert.Equal(t, company.ID, *user.CompanyID)

	// Second direct create with the same email conflicts.
	_, err = svc.CreateCompanyDirectly(context.Background(), actorFor(admin), dto.CreateCompanyDirectlyRequest{
		CompanyName:    "Direct Studio",
		CompanyAddress: "2 Studio Way",
		CompanyEmail:   "direct@example.com",
		Password:       "creator-password",
	})
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestRegistrationListByStatus(t *testing.T) {
	svc, db := newRegistrationService(t)
	admin := seedUser(t, db, "admin@example.com", models.RoleAdmin)

	first, err := svc.Create(context.Background(), sampleRegistration("one@example.com"))
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), sampleRegistration("two@example.com"))
	require.NoError(t, err)

	_, err = svc.Review(context.Background(), actorFor(admin), first.ID, dto.ReviewRegistrationRequest{
		Status: models.RegistrationApproved,
	})
	require.NoError(t, err)

	pending, err := svc.FindByStatusPaginated(context.Background(), models.RegistrationPending, dto.PaginationQuery{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), pending.Pagination.Total)

	_, err = svc.FindByStatusPaginated(context.Background(), "bogus", dto.PaginationQuery{Page: 1, Limit: 10})
	assert.True(t, apperr.IsKind(err, apperr.KindBadRequest))
}
