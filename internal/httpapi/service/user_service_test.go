package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"cartoonhub/internal/httpapi/apperr"
	"cartoonhub/internal/httpapi/dto"
	"cartoonhub/internal/httpapi/models"
	"cartoonhub/internal/httpapi/repository"
)

func newUserFixture(t *testing.T) (UserService, *capturingSender, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	sender := &capturingSender{}
	otpService := NewOTPService(
		repository.NewPasswordResetRepository(db),
		repository.NewEmailVerificationRepository(db),
		testOTPTTL,
	)
	svc := NewUserService(repository.NewUserRepository(db), otpService, sender, testLogger())
	return svc, sender, db
}

func TestSignupStartsUnverified(t *testing.T) {
	svc, sender, _ := newUserFixture(t)

	user, err := svc.Create(context.Background(), dto.CreateUserRequest{
		Email:     "new@example.com",
		Password:  "secret-password",
		FirstName: "New",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.False(t, user.IsVerified)
	require.Len(t, sender.lastCode, 6)

	require.NoError(t, svc.VerifyEmail(context.Background(), dto.VerifyEmailRequest{
		Email:            "new@example.com",
		VerificationCode: sender.lastCode,
	}))

	got, err := svc.FindOne(context.Background(), user.ID)
	require.NoError(t, err)
	assert.True(t, got.IsVerified)
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc, _, db := newUserFixture(t)
	seedUser(t, db, "taken@example.com", models.RoleUser)

	_, err := svc.Create(context.Background(), dto.CreateUserRequest{
		Email:     "taken@example.com",
		Password:  "secret-password",
		FirstName: "Dup",
	})
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestSignupSurvivesMailFailure(t *testing.T) {
	svc, sender, _ := newUserFixture(t)
	sender.failNext = true

	user, err := svc.Create(context.Background(), dto.CreateUserRequest{
		Email:     "new@example.com",
		Password:  "secret-password",
		FirstName: "New",
	})
	require.NoError(t, err)

	// The code can still be resent afterwards.
	require.NoError(t, svc.ResendVerification(context.Background(), user.Email))
	require.Len(t, sender.lastCode, 6)
}

func TestResendVerificationAlreadyVerified(t *testing.T) {
	svc, _, db := newUserFixture(t)
	seedUser(t, db, "done@example.com", models.RoleUser) // seeded verified

	err := svc.ResendVerification(context.Background(), "done@example.com")
	assert.True(t, apperr.IsKind(err, apperr.KindBadRequest))
}

func TestUpdateOwnProfileOnly(t *testing.T) {
	svc, _, db := newUserFixture(t)
	owner := seedUser(t, db, "owner@example.com", models.RoleUser)
	other := seedUser(t, db, "other@example.com", models.RoleUser)
	admin := seedUser(t, db, "admin@example.com", models.RoleAdmin)

	name := "Renamed"
	_, err := svc.Update(context.Background(), actorFor(other), owner.ID, dto.UpdateUserRequest{FirstName: &name})
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))

	updated, err := svc.Update(context.Background(), actorFor(owner), owner.ID, dto.UpdateUserRequest{FirstName: &name})
	require.NoError(t, err)
	assert.Equal(t, name, updated.FirstName)

	// Admins may edit anyone; the audit stamp records who.
	updated, err = svc.Update(context.Background(), actorFor(admin), owner.ID, dto.UpdateUserRequest{FirstName: &name})
	require.NoError(t, err)
	require.NotNil(t, updated.UpdatedByID)
	assert.Equal(t, admin.ID, *updated.UpdatedByID)
}

func TestLockAndUnlock(t *testing.T) {
	svc, _, db := newUserFixture(t)
	admin := seedUser(t, db, "admin@example.com", models.RoleAdmin)
	target := seedUser(t, db, "target@example.com", models.RoleUser)

	locked, err := svc.SetLocked(context.Background(), actorFor(admin), target.ID, true)
	require.NoError(t, err)
	assert.True(t, locked.IsLocked)
	require.NotNil(t, locked.LockedByID)
	assert.Equal(t, admin.ID, *locked.LockedByID)

	unlocked, err := svc.SetLocked(context.Background(), actorFor(admin), target.ID, false)
	require.NoError(t, err)
	assert.False(t, unlocked.IsLocked)
	assert.Nil(t, unlocked.LockedByID)
}

func TestCannotLockSelf(t *testing.T) {
	svc, _, db := newUserFixture(t)
	admin := seedUser(t, db, "admin@example.com", models.RoleAdmin)

	_, err := svc.SetLocked(context.Background(), actorFor(admin), admin.ID, true)
	assert.True(t, apperr.IsKind(err, apperr.KindBadRequest))
}

func TestUserSoftDelete(t *testing.T) {
	svc, _, db := newUserFixture(t)
	user := seedUser(t, db, "bye@example.com", models.RoleUser)

	require.NoError(t, svc.Delete(context.Background(), actorFor(user), user.ID))

	_, err := svc.FindOne(context.Background(), user.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	// The row survives under its tombstone.
	var count int64
	require.NoError(t, db.Unscoped().Model(&models.User{}).Where("id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUserListPagination(t *testing.T) {
	svc, _, db := newUserFixture(t)
	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		seedUser(t, db, email, models.RoleUser)
	}

	page, err := svc.FindAllPaginated(context.Background(), dto.PaginationQuery{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page.Data, 2)
	assert.Equal(t, int64(3), page.Pagination.Total)
	assert.Equal(t, 2, page.Pagination.TotalPages)
	assert.True(t, page.Pagination.HasNext)
	assert.False(t, page.Pagination.HasPrev)

	page, err = svc.FindAllPaginated(context.Background(), dto.PaginationQuery{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page.Data, 1)
	assert.False(t, page.Pagination.HasNext)
	assert.True(t, page.Pagination.HasPrev)
}
