package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"cartoonhub/internal/config"
	"cartoonhub/internal/httpapi/apperr"
	"cartoonhub/internal/httpapi/dto"
	"cartoonhub/internal/httpapi/models"
	"cartoonhub/internal/httpapi/repository"
)

// capturingSender records outgoing mail so tests can read the codes.
type capturingSender struct {
	lastOTP  string
	lastCode string
	failNext bool
}

func (s *capturingSender) SendPasswordResetEmail(ctx context.Context, to, otp, recipientName string) bool {
	if s.failNext {
		s.failNext = false
		return false
	}
	s.lastOTP = otp
	return true
}

func (s *capturingSender) SendVerificationEmail(ctx context.Context, to, code, recipientName string) bool {
	if s.failNext {
		s.failNext = false
		return false
	}
	s.lastCode = code
	return true
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:     "test-secret",
		JWTExpiry:     time.Hour,
		ResetTokenTTL: 15 * time.Minute,
		OTPTTL:        testOTPTTL,
	}
}

func newAuthFixture(t *testing.T) (AuthService, OTPService, *capturingSender, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	sender := &capturingSender{}
	otpService := NewOTPService(
		repository.NewPasswordResetRepository(db),
		repository.NewEmailVerificationRepository(db),
		testOTPTTL,
	)
	authService := NewAuthService(repository.NewUserRepository(db), otpService, sender, testConfig(), testLogger())
	return authService, otpService, sender, db
}

func TestLogin(t *testing.T) {
	authService, _, _, db := newAuthFixture(t)
	user := seedUser(t, db, "one@example.com", models.RoleUser)

	resp, err := authService.Login(context.Background(), dto.LoginRequest{
		Email:    "one@example.com",
		Password: "secret-password",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, user.ID, resp.Data.ID)

	claims, err := authService.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.Subject)
	assert.Equal(t, models.RoleUser, claims.Role)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	authService, _, _, db := newAuthFixture(t)
	seedUser(t, db, "one@example.com", models.RoleUser)

	_, err := authService.Login(context.Background(), dto.LoginRequest{
		Email:    "one@example.com",
		Password: "wrong",
	})
	assert.True(t, apperr.IsKind(err, apperr.KindUnauthorized))

	_, err = authService.Login(context.Background(), dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.True(t, apperr.IsKind(err, apperr.KindUnauthorized))
}

func TestLoginRejectsLockedAccount(t *testing.T) {
	authService, _, _, db := newAuthFixture(t)
	user := seedUser(t, db, "one@example.com", models.RoleUser)
	require.NoError(t, db.Model(user).Update("is_locked", true).Error)

	_, err := authService.Login(context.Background(), dto.LoginRequest{
		Email:    "one@example.com",
		Password: "secret-password",
	})
	assert.True(t, apperr.IsKind(err, apperr.KindUnauthorized))
}

func TestPasswordResetFlow(t *testing.T) {
	authService, _, sender, db := newAuthFixture(t)
	seedUser(t, db, "one@example.com", models.RoleUser)

	require.NoError(t, authService.ForgotPassword(context.Background(), "one@example.com"))
	require.Len(t, sender.lastOTP, 6)

	resetToken, err := authService.VerifyOTP(context.Background(), dto.VerifyOTPRequest{
		Email: "one@example.com",
		OTP:   sender.lastOTP,
	})
	require.NoError(t, err)

	err = authService.ResetPassword(context.Background(), dto.ResetPasswordRequest{
		Email:           "one@example.com",
		NewPassword:     "brand-new-password",
		ConfirmPassword: "brand-new-password",
		ResetToken:      resetToken,
	})
	require.NoError(t, err)

	// Old password out, new password in.
	_, err = authService.Login(context.Background(), dto.LoginRequest{
		Email:    "one@example.com",
		Password: "secret-password",
	})
	assert.True(t, apperr.IsKind(err, apperr.KindUnauthorized))

	_, err = authService.Login(context.Background(), dto.LoginRequest{
		Email:    "one@example.com",
		Password: "brand-new-password",
	})
	assert.NoError(t, err)
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	authService, _, _, _ := newAuthFixture(t)

	err := authService.ForgotPassword(context.Background(), "nobody@example.com")
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestOTPSingleUse(t *testing.T) {
	authService, _, sender, db := newAuthFixture(t)
	seedUser(t, db, "one@example.com", models.RoleUser)

	require.NoError(t, authService.ForgotPassword(context.Background(), "one@example.com"))
	otp := sender.lastOTP

	_, err := authService.VerifyOTP(context.Background(), dto.VerifyOTPRequest{Email: "one@example.com", OTP: otp})
	require.NoError(t, err)

	_, err = authService.VerifyOTP(context.Background(), dto.VerifyOTPRequest{Email: "one@example.com", OTP: otp})
	assert.True(t, apperr.IsKind(err, apperr.KindBadRequest))
}

func TestOTPSuperseded(t *testing.T) {
	authService, _, sender, db := newAuthFixture(t)
	seedUser(t, db, "one@example.com", models.RoleUser)

	require.NoError(t, authService.ForgotPassword(context.Background(), "one@example.com"))
	firstOTP := sender.lastOTP

	require.NoError(t, authService.ForgotPassword(context.Background(), "one@example.com"))
	secondOTP := sender.lastOTP

	if firstOTP == secondOTP {
		t.Skip("codes collided, cannot distinguish supersession")
	}

	_, err := authService.VerifyOTP(context.Background(), dto.VerifyOTPRequest{Email: "one@example.com", OTP: firstOTP})
	assert.True(t, apperr.IsKind(err, apperr.KindBadRequest))

	_, err = authService.VerifyOTP(context.Background(), dto.VerifyOTPRequest{Email: "one@example.com", OTP: secondOTP})
	assert.NoError(t, err)
}

func TestOTPExpiry(t *testing.T) {
	_, otpService, _, db := newAuthFixture(t)
	user := seedUser(t, db, "one@example.com", models.RoleUser)

	otp, err := otpService.CreatePasswordReset("one@example.com", &user.ID)
	require.NoError(t, err)

	// Backdate the expiry.
	require.NoError(t, db.Model(&models.PasswordReset{}).
		Where("email = ?", "one@example.com").
		Update("expires_at", time.Now().Add(-time.Minute)).Error)

	_, err = otpService.ConsumePasswordReset("one@example.com", otp)
	assert.True(t, apperr.IsKind(err, apperr.KindBadRequest))
}

func TestResetPasswordValidation(t *testing.T) {
	authService, _, _, db := newAuthFixture(t)
	seedUser(t, db, "one@example.com", models.RoleUser)

	err := authService.ResetPassword(context.Background(), dto.ResetPasswordRequest{
		Email:           "one@example.com",
		NewPassword:     "new-password",
		ConfirmPassword: "different",
		ResetToken:      "irrelevant",
	})
	assert.True(t, apperr.IsKind(err, apperr.KindBadRequest))

	err = authService.ResetPassword(context.Background(), dto.ResetPasswordRequest{
		Email:           "one@example.com",
		NewPassword:     "new-password",
		ConfirmPassword: "new-password",
		ResetToken:      "not-a-token",
	})
	assert.True(t, apperr.IsKind(err, apperr.KindBadRequest))

	// An access token is not a reset token.
	resp, err := authService.Login(context.Background(), dto.LoginRequest{
		Email:    "one@example.com",
		Password: "secret-password",
	})
	require.NoError(t, err)
	err = authService.ResetPassword(context.Background(), dto.ResetPasswordRequest{
		Email:           "one@example.com",
		NewPassword:     "new-password",
		ConfirmPassword: "new-password",
		ResetToken:      resp.AccessToken,
	})
	assert.True(t, apperr.IsKind(err, apperr.KindBadRequest))
}
