package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cantina/adminctl/usecase/auth"
)

// newResetPasswordCmd walks the forgot-password steps interactively:
// email, then the emailed code, then the new password. A rejected step
// keeps the flow where it is so the input can simply be retried; only
// input and context failures abort the command.
func newResetPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset-password",
		Short: "Reset an account password via emailed code",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// The flow is interactive, so the request deadline is attached
			// per step rather than around the whole conversation.
			ctx := cmd.Context()

			// No redirect callback: the command exits as soon as the flow
			// succeeds, so the hint is printed inline instead of on the
			// delayed timer a UI would use.
			uc := auth.New(api, store, zlog)
			flow := auth.NewResetFlow(uc, nil, zlog)
			defer flow.Stop()

			for flow.Step() != auth.StepSuccess {
				var err error
				switch flow.Step() {
				case auth.StepEmail:
					err = stepEmail(ctx, flow)
				case auth.StepOTP:
					err = stepOTP(ctx, flow)
				case auth.StepPassword:
					err = stepPassword(ctx, flow)
				}
				if err != nil {
					return err
				}
			}

			fmt.Println("Password reset successfully.")
			fmt.Println("You can now log in with your new password.")
			return nil
		},
	}
}

func stepEmail(ctx context.Context, flow *auth.ResetFlow) error {
	email, err := promptLine("Email: ")
	if err != nil {
		return err
	}

	reqCtx, cancel := adapter.Attach(ctx)
	defer cancel()
	if err := flow.SubmitEmail(reqCtx, email); err != nil {
		fmt.Println("Error:", flow.Err())
		return nil
	}

	fmt.Println("A 6-digit code was sent to", flow.Email())
	if otp := flow.DevOTP(); otp != "" {
		fmt.Println("Development code:", otp)
	}
	return nil
}

func stepOTP(ctx context.Context, flow *auth.ResetFlow) error {
	code, err := promptLine("Code (or 'resend'): ")
	if err != nil {
		return err
	}
	if code == "resend" {
		return flow.Resend()
	}

	reqCtx, cancel := adapter.Attach(ctx)
	defer cancel()
	if err := flow.SubmitOTP(reqCtx, code); err != nil {
		fmt.Println("Error:", flow.Err())
	}
	return nil
}

func stepPassword(ctx context.Context, flow *auth.ResetFlow) error {
	password, err := promptLine("New password: ")
	if err != nil {
		return err
	}
	confirm, err := promptLine("Confirm password: ")
	if err != nil {
		return err
	}

	reqCtx, cancel := adapter.Attach(ctx)
	defer cancel()
	if err := flow.SubmitPassword(reqCtx, password, confirm); err != nil {
		fmt.Println("Error:", flow.Err())
	}
	return nil
}
