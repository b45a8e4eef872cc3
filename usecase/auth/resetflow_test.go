package auth

import (
	"context"
	"errors"
	"testing"
)

// fakeResetter scripts the three reset calls and counts them.
type fakeResetter struct {
	forgotErr error
	verifyErr error
	resetErr  error

	devOTP     string
	resetToken string

	forgotCalls int
	verifyCalls int
	resetCalls  int

	gotEmail    string
	gotOTP      string
	gotToken    string
	gotPassword string
}

func (f *fakeResetter) ForgotPassword(ctx context.Context, email string) (string, error) {
	f.forgotCalls++
	f.gotEmail = email
	return f.devOTP, f.forgotErr
}

func (f *fakeResetter) VerifyOTP(ctx context.Context, email, otp string) (string, error) {
	f.verifyCalls++
	f.gotEmail = email
	f.gotOTP = otp
	return f.resetToken, f.verifyErr
}

func (f *fakeResetter) ResetPassword(ctx context.Context, resetToken, password string) error {
	f.resetCalls++
	f.gotToken = resetToken
	f.gotPassword = password
	return f.resetErr
}

func TestResetFlow_FullWalk(t *testing.T) {
	resetter := &fakeResetter{devOTP: "654321", resetToken: "rt-9"}
	redirected := false
	flow := NewResetFlow(resetter, func() { redirected = true }, nil)
	defer flow.Stop()
	ctx := context.Background()

	if flow.Step() != StepEmail {
		t.Fatalf("initial step = %s", flow.Step())
	}

	if err := flow.SubmitEmail(ctx, "  admin@example.com  "); err != nil {
		t.Fatalf("SubmitEmail failed: %v", err)
	}
	if flow.Step() != StepOTP {
		t.Errorf("step = %s, want otp", flow.Step())
	}
	if flow.Email() != "admin@example.com" {
		t.Errorf("email not trimmed: %q", flow.Email())
	}
	if flow.DevOTP() != "654321" {
		t.Errorf("DevOTP = %q", flow.DevOTP())
	}

	if err := flow.SubmitOTP(ctx, "654321"); err != nil {
		t.Fatalf("SubmitOTP failed: %v", err)
	}
	if flow.Step() != StepPassword {
		t.Errorf("step = %s, want password", flow.Step())
	}

	if err := flow.SubmitPassword(ctx, "longenough", "longenough"); err != nil {
		t.Fatalf("SubmitPassword failed: %v", err)
	}
	if flow.Step() != StepSuccess {
		t.Errorf("step = %s, want success", flow.Step())
	}
	if resetter.gotToken != "rt-9" {
		t.Errorf("reset token = %q", resetter.gotToken)
	}
	// the login redirect is delayed, not immediate
	if redirected {
		t.Error("redirect must not fire synchronously")
	}
}

// A caller that reports success itself (like a terminal) passes no redirect
// callback; the flow must complete without scheduling anything.
func TestResetFlow_NilRedirect(t *testing.T) {
	resetter := &fakeResetter{devOTP: "111222", resetToken: "rt"}
	flow := NewResetFlow(resetter, nil, nil)
	defer flow.Stop()
	ctx := context.Background()

	if err := flow.SubmitEmail(ctx, "a@b.c"); err != nil {
		t.Fatalf("SubmitEmail failed: %v", err)
	}
	if err := flow.SubmitOTP(ctx, "111222"); err != nil {
		t.Fatalf("SubmitOTP failed: %v", err)
	}
	if err := flow.SubmitPassword(ctx, "longenough", "longenough"); err != nil {
		t.Fatalf("SubmitPassword failed: %v", err)
	}
	if flow.Step() != StepSuccess {
		t.Errorf("step = %s, want success", flow.Step())
	}
	if flow.timer != nil {
		t.Error("no redirect was given, nothing should be scheduled")
	}
}

func TestResetFlow_OTPSanitized(t *testing.T) {
	resetter := &fakeResetter{resetToken: "rt"}
	flow := NewResetFlow(resetter, nil, nil)
	ctx := context.Background()

	if err := flow.SubmitEmail(ctx, "a@b.c"); err != nil {
		t.Fatalf("SubmitEmail failed: %v", err)
	}
	if err := flow.SubmitOTP(ctx, " 12-34-56 "); err != nil {
		t.Fatalf("SubmitOTP failed: %v", err)
	}
	if resetter.gotOTP != "123456" {
		t.Errorf("sanitized otp = %q", resetter.gotOTP)
	}
}

func TestResetFlow_ShortOTPRejectedLocally(t *testing.T) {
	resetter := &fakeResetter{}
	flow := NewResetFlow(resetter, nil, nil)
	ctx := context.Background()

	if err := flow.SubmitEmail(ctx, "a@b.c"); err != nil {
		t.Fatalf("SubmitEmail failed: %v", err)
	}
	if err := flow.SubmitOTP(ctx, "123"); err == nil {
		t.Error("short code must be rejected")
	}
	if resetter.verifyCalls != 0 {
		t.Error("short code must not reach the network")
	}
	if flow.Step() != StepOTP {
		t.Errorf("step = %s, failures must not advance", flow.Step())
	}
	if flow.Err() == "" {
		t.Error("failure must record a message")
	}
}

func TestResetFlow_Resend(t *testing.T) {
	resetter := &fakeResetter{devOTP: "111111"}
	flow := NewResetFlow(resetter, nil, nil)
	ctx := context.Background()

	if err := flow.SubmitEmail(ctx, "a@b.c"); err != nil {
		t.Fatalf("SubmitEmail failed: %v", err)
	}
	if err := flow.Resend(); err != nil {
		t.Fatalf("Resend failed: %v", err)
	}
	if flow.Step() != StepEmail {
		t.Errorf("step = %s, want email after resend", flow.Step())
	}
	if flow.Email() != "a@b.c" {
		t.Errorf("email must survive a resend: %q", flow.Email())
	}

	// the flow walks forward again from email
	if err := flow.SubmitEmail(ctx, flow.Email()); err != nil {
		t.Fatalf("second SubmitEmail failed: %v", err)
	}
	if resetter.forgotCalls != 2 {
		t.Errorf("forgot calls = %d", resetter.forgotCalls)
	}
}

func TestResetFlow_PasswordValidationLocal(t *testing.T) {
	resetter := &fakeResetter{resetToken: "rt"}
	flow := NewResetFlow(resetter, nil, nil)
	ctx := context.Background()

	if err := flow.SubmitEmail(ctx, "a@b.c"); err != nil {
		t.Fatalf("SubmitEmail failed: %v", err)
	}
	if err := flow.SubmitOTP(ctx, "123456"); err != nil {
		t.Fatalf("SubmitOTP failed: %v", err)
	}

	if err := flow.SubmitPassword(ctx, "short", "short"); err == nil {
		t.Error("short password must be rejected")
	}
	if err := flow.SubmitPassword(ctx, "longenough", "different1"); err == nil {
		t.Error("mismatched confirmation must be rejected")
	}
	if resetter.resetCalls != 0 {
		t.Error("local validation failures must not reach the network")
	}
	if flow.Step() != StepPassword {
		t.Errorf("step = %s, failures must not advance", flow.Step())
	}

	if err := flow.SubmitPassword(ctx, "longenough", "longenough"); err != nil {
		t.Fatalf("valid password rejected: %v", err)
	}
	if flow.Step() != StepSuccess {
		t.Errorf("step = %s", flow.Step())
	}
}

func TestResetFlow_RemoteFailureKeepsStep(t *testing.T) {
	resetter := &fakeResetter{verifyErr: errors.New("Invalid OTP")}
	flow := NewResetFlow(resetter, nil, nil)
	ctx := context.Background()

	if err := flow.SubmitEmail(ctx, "a@b.c"); err != nil {
		t.Fatalf("SubmitEmail failed: %v", err)
	}
	if err := flow.SubmitOTP(ctx, "123456"); err == nil {
		t.Error("expected the verify failure to propagate")
	}
	if flow.Step() != StepOTP {
		t.Errorf("step = %s, want otp retained", flow.Step())
	}
	if flow.Err() != "Invalid OTP" {
		t.Errorf("Err = %q", flow.Err())
	}

	// retry succeeds
	resetter.verifyErr = nil
	resetter.resetToken = "rt"
	if err := flow.SubmitOTP(ctx, "123456"); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if flow.Err() != "" {
		t.Errorf("error must clear on success: %q", flow.Err())
	}
}

func TestResetFlow_WrongStepRejected(t *testing.T) {
	flow := NewResetFlow(&fakeResetter{}, nil, nil)
	ctx := context.Background()

	if err := flow.SubmitOTP(ctx, "123456"); err == nil {
		t.Error("otp before email must be rejected")
	}
	if err := flow.SubmitPassword(ctx, "longenough", "longenough"); err == nil {
		t.Error("password before otp must be rejected")
	}
	if err := flow.Resend(); err == nil {
		t.Error("resend outside the otp step must be rejected")
	}
}
