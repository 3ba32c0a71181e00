package repository

import (
	"time"

	"cartoonhub/internal/httpapi/models"

	"gorm.io/gorm"
)

// PasswordResetRepository stores the password-reset OTP rows. Rows are
// hard-deleted on regeneration so the email unique index holds.
type PasswordResetRepository interface {
	Replace(reset *models.PasswordReset) error
	FindActive(email, otp string, now time.Time) (*models.PasswordReset, error)
	MarkUsed(id string) error
}

type passwordResetRepository struct {
	db *gorm.DB
}

func NewPasswordResetRepository(db *gorm.DB) PasswordResetRepository {
	return &passwordResetRepository{db: db}
}

// Replace deletes any previous code for the email, then stores the new one.
func (r *passwordResetRepository) Replace(reset *models.PasswordReset) error {
	if err := r.db.Unscoped().Where("email = ?", reset.Email).Delete(&models.PasswordReset{}).Error; err != nil {
		return err
	}
	return r.db.Create(reset).Error
}

func (r *passwordResetRepository) FindActive(email, otp string, now time.Time) (*models.PasswordReset, error) {
	var reset models.PasswordReset
	err := r.db.Where(
		"email = ? AND otp = ? AND is_used = ? AND is_expired = ? AND expires_at > ?",
		email, otp, false, false, now,
	).First(&reset).Error
	if err != nil {
		return nil, err
	}
	return &reset, nil
}

func (r *passwordResetRepository) MarkUsed(id string) error {
	return r.db.Model(&models.PasswordReset{}).Where("id = ?", id).Update("is_used", true).Error
}

// EmailVerificationRepository mirrors PasswordResetRepository for the
// account-activation codes.
type EmailVerificationRepository interface {
	Replace(verification *models.EmailVerification) error
	FindActive(email, code string, now time.Time) (*models.EmailVerification, error)
	MarkUsed(id string) error
}

type emailVerificationRepository struct {
	db *gorm.DB
}

func NewEmailVerificationRepository(db *gorm.DB) EmailVerificationRepository {
	return &emailVerificationRepository{db: db}
}

func (r *emailVerificationRepository) Replace(verification *models.EmailVerification) error {
	if err := r.db.Unscoped().Where("email = ?", verification.Email).Delete(&models.EmailVerification{}).Error; err != nil {
		return err
	}
	return r.db.Create(verification).Error
}

func (r *emailVerificationRepository) FindActive(email, code string, now time.Time) (*models.EmailVerification, error) {
	var verification models.EmailVerification
	err := r.db.Where(
		"email = ? AND verification_code = ? AND is_used = ? AND is_expired = ? AND expires_at > ?",
		email, code, false, false, now,
	).First(&verification).Error
	if err != nil {
		return nil, err
	}
	return &verification, nil
}

func (r *emailVerificationRepository) MarkUsed(id string) error {
	return r.db.Model(&models.EmailVerification{}).Where("id = ?", id).Update("is_used", true).Error
}
