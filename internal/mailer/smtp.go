package mailer

import (
	"context"
	"fmt"
	"log/slog"

	"gopkg.in/gomail.v2"

	"cartoonhub/internal/config"
)

type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
	logger *slog.Logger
}

func NewSMTPSender(cfg *config.Config, logger *slog.Logger) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
		from:   cfg.MailFrom,
		logger: logger,
	}
}

func (s *SMTPSender) SendPasswordResetEmail(ctx context.Context, to, otp, recipientName string) bool {
	body := fmt.Sprintf(
		"Hello %s,\n\nYour password reset code is %s. It expires in 15 minutes.\n\nIf you did not request a reset, you can ignore this email.",
		recipientName, otp,
	)
	return s.send(ctx, to, "Password reset code", body)
}

func (s *SMTPSender) SendVerificationEmail(ctx context.Context, to, code, recipientName string) bool {
	body := fmt.Sprintf(
		"Hello %s,\n\nYour verification code is %s. It expires in 15 minutes.",
		recipientName, code,
	)
	return s.send(ctx, to, "Verify your account", body)
}

func (s *SMTPSender) send(ctx context.Context, to, subject, body string) bool {
	if err := ctx.Err(); err != nil {
		s.logger.Warn("email send aborted", "to", to, "error", err)
		return false
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", s.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(msg); err != nil {
		s.logger.Error("failed to send email", "to", to, "subject", subject, "error", err)
		return false
	}
	return true
}
