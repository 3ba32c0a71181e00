// Package mailer sends transactional email. Senders report success as a
// boolean: a failed send is logged by the caller and never rolls back the
// database mutation that preceded it.
package mailer

import "context"

type EmailSender interface {
	SendPasswordResetEmail(ctx context.Context, to, otp, recipientName string) bool
	SendVerificationEmail(ctx context.Context, to, code, recipientName string) bool
}
