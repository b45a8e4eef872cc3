package auth

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cantina/adminctl/domain"
)

// Step identifies where the reset flow currently stands.
type Step string

const (
	StepEmail    Step = "email"
	StepOTP      Step = "otp"
	StepPassword Step = "password"
	StepSuccess  Step = "success"
)

const (
	otpLength         = 6
	minPasswordLength = 8
	redirectDelay     = 3 * time.Second
)

// PasswordResetter is the slice of the auth service the flow drives.
type PasswordResetter interface {
	ForgotPassword(ctx context.Context, email string) (string, error)
	VerifyOTP(ctx context.Context, email, otp string) (string, error)
	ResetPassword(ctx context.Context, resetToken, password string) error
}

// ResetFlow is the strictly linear forgot-password state machine:
// email -> otp -> password -> success, with a single user-initiated
// back-edge from otp to email for resending the code. The step only
// advances on a successful call; failures keep the step and whatever the
// user already entered. Driven by a single goroutine.
type ResetFlow struct {
	auth     PasswordResetter
	redirect func()
	delay    time.Duration
	logger   *zap.Logger

	step       Step
	email      string
	resetToken string
	devOTP     string
	lastErr    string
	timer      *time.Timer
}

// NewResetFlow starts a flow at the email step. redirect is invoked once,
// a fixed delay after the flow reaches success; nil is allowed.
func NewResetFlow(auth PasswordResetter, redirect func(), logger *zap.Logger) *ResetFlow {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResetFlow{
		auth:     auth,
		redirect: redirect,
		delay:    redirectDelay,
		logger:   logger,
		step:     StepEmail,
	}
}

func (f *ResetFlow) Step() Step     { return f.step }
func (f *ResetFlow) Email() string  { return f.email }
func (f *ResetFlow) Err() string    { return f.lastErr }
func (f *ResetFlow) DevOTP() string { return f.devOTP }

// SubmitEmail requests an OTP and advances to the otp step on success.
func (f *ResetFlow) SubmitEmail(ctx context.Context, email string) error {
	if f.step != StepEmail {
		return f.wrongStep(StepEmail)
	}

	email = strings.TrimSpace(email)
	if email == "" {
		return f.fail(domain.NewError(domain.ErrCodeInvalid, "Email is required"))
	}

	devOTP, err := f.auth.ForgotPassword(ctx, email)
	if err != nil {
		return f.fail(err)
	}

	f.email = email
	f.devOTP = devOTP
	f.step = StepOTP
	f.lastErr = ""
	return nil
}

// SubmitOTP verifies the code and advances to the password step once the
// server issues a reset token. Non-digits are stripped and the code is
// truncated to six digits, mirroring the input mask of the original form.
func (f *ResetFlow) SubmitOTP(ctx context.Context, otp string) error {
	if f.step != StepOTP {
		return f.wrongStep(StepOTP)
	}

	otp = sanitizeOTP(otp)
	if len(otp) != otpLength {
		return f.fail(domain.NewError(domain.ErrCodeInvalid, "Enter the 6-digit code sent to your email"))
	}

	resetToken, err := f.auth.VerifyOTP(ctx, f.email, otp)
	if err != nil {
		return f.fail(err)
	}

	f.resetToken = resetToken
	f.step = StepPassword
	f.lastErr = ""
	return nil
}

// Resend returns from the otp step to the email step so the user can
// request a fresh code. The entered email is kept.
func (f *ResetFlow) Resend() error {
	if f.step != StepOTP {
		return f.wrongStep(StepOTP)
	}
	f.step = StepEmail
	f.devOTP = ""
	f.lastErr = ""
	return nil
}

// SubmitPassword validates locally, then performs the reset. Validation
// failures never reach the network. On success the flow becomes terminal
// and the login redirect is scheduled.
func (f *ResetFlow) SubmitPassword(ctx context.Context, password, confirm string) error {
	if f.step != StepPassword {
		return f.wrongStep(StepPassword)
	}

	if len(password) < minPasswordLength {
		return f.fail(domain.NewError(domain.ErrCodeInvalid, "Password must be at least 8 characters long"))
	}
	if password != confirm {
		return f.fail(domain.NewError(domain.ErrCodeInvalid, "Passwords do not match"))
	}

	if err := f.auth.ResetPassword(ctx, f.resetToken, password); err != nil {
		return f.fail(err)
	}

	f.step = StepSuccess
	f.lastErr = ""
	if f.redirect != nil {
		f.timer = time.AfterFunc(f.delay, f.redirect)
	}
	return nil
}

// Stop cancels a pending redirect, used when the flow is abandoned.
func (f *ResetFlow) Stop() {
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
}

func (f *ResetFlow) fail(err error) error {
	f.lastErr = err.Error()
	return err
}

func (f *ResetFlow) wrongStep(want Step) error {
	return domain.NewError(domain.ErrCodeInvalid, "flow is not at the "+string(want)+" step")
}

func sanitizeOTP(otp string) string {
	var b strings.Builder
	for _, r := range otp {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
		if b.Len() == otpLength {
			break
		}
	}
	return b.String()
}
