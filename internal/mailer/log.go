package mailer

import (
	"context"
	"log/slog"
)

// LogSender writes mail to the log instead of SMTP. Used in development
// and in tests.
type LogSender struct {
	Logger *slog.Logger
}

func (s *LogSender) SendPasswordResetEmail(ctx context.Context, to, otp, recipientName string) bool {
	s.Logger.Info("password reset email", "to", to, "otp", otp)
	return true
}

func (s *LogSender) SendVerificationEmail(ctx context.Context, to, code, recipientName string) bool {
	s.Logger.Info("verification email", "to", to, "code", code)
	return true
}
