package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"gorm.io/gorm"

	"cartoonhub/internal/httpapi/apperr"
	"cartoonhub/internal/httpapi/models"
	"cartoonhub/internal/httpapi/repository"
)

// OTPService manages the one-time codes for password reset and email
// verification. Codes are 6 digits, expire after a configured TTL and
// supersede any previous unconsumed code for the same email.
type OTPService interface {
	CreatePasswordReset(email string, userID *string) (string, error)
	ConsumePasswordReset(email, otp string) (*models.PasswordReset, error)
	CreateEmailVerification(email, userID string) (string, error)
	ConsumeEmailVerification(email, code string) error
}

type otpService struct {
	passwordResetRepo     repository.PasswordResetRepository
	emailVerificationRepo repository.EmailVerificationRepository
	ttl                   time.Duration
}

func NewOTPService(
	passwordResetRepo repository.PasswordResetRepository,
	emailVerificationRepo repository.EmailVerificationRepository,
	ttl time.Duration,
) OTPService {
	return &otpService{
		passwordResetRepo:     passwordResetRepo,
		emailVerificationRepo: emailVerificationRepo,
		ttl:                   ttl,
	}
}

// generateOTP returns a 6-digit numeric code.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func (s *otpService) CreatePasswordReset(email string, userID *string) (string, error) {
	otp, err := generateOTP()
	if err != nil {
		return "", err
	}

	reset := &models.PasswordReset{
		Email:     email,
		OTP:       otp,
		ExpiresAt: time.Now().Add(s.ttl),
		UserID:    userID,
	}
	if err := s.passwordResetRepo.Replace(reset); err != nil {
		return "", err
	}
	return otp, nil
}

// ConsumePasswordReset validates the code and burns it.
func (s *otpService) ConsumePasswordReset(email, otp string) (*models.PasswordReset, error) {
	reset, err := s.passwordResetRepo.FindActive(email, otp, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.BadRequest("invalid or expired OTP code")
		}
		return nil, err
	}
	if err := s.passwordResetRepo.MarkUsed(reset.ID); err != nil {
		return nil, err
	}
	return reset, nil
}

func (s *otpService) CreateEmailVerification(email, userID string) (string, error) {
	code, err := generateOTP()
	if err != nil {
		return "", err
	}

	verification := &models.EmailVerification{
		Email:            email,
		VerificationCode: code,
		ExpiresAt:        time.Now().Add(s.ttl),
		UserID:           userID,
	}
	if err := s.emailVerificationRepo.Replace(verification); err != nil {
		return "", err
	}
	return code, nil
}

func (s *otpService) ConsumeEmailVerification(email, code string) error {
	verification, err := s.emailVerificationRepo.FindActive(email, code, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.BadRequest("invalid or expired verification code")
		}
		return err
	}
	return s.emailVerificationRepo.MarkUsed(verification.ID)
}
