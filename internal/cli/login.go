package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/cantina/adminctl/usecase/auth"
)

func newLoginCmd() *cobra.Command {
	var flagPassword string

	cmd := &cobra.Command{
		Use:   "login <email>",
		Short: "Authenticate and store the session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()

			password := flagPassword
			if password == "" {
				var err error
				password, err = promptLine("Password: ")
				if err != nil {
					return err
				}
			}

			uc := auth.New(api, store, zlog)
			result, err := uc.Login(ctx, auth.Credentials{Email: args[0], Password: password})
			if err != nil {
				return err
			}

			fmt.Printf("Logged in as %s (%s)\n", result.User.Email, result.User.Role)
			if result.ExpiresIn > 0 {
				fmt.Printf("Session expires in %s\n", result.ExpiresIn.Round(time.Second))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&flagPassword, "password", "", "Password (prompted when omitted)")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Destroy the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			verdict := gate.Logout()
			fmt.Printf("Logged out, back to %s\n", verdict.RedirectTo)
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the stored identity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()

			user, err := requireAuth(ctx, "dashboard")
			if err != nil {
				return err
			}

			fmt.Printf("User:  %s\n", user.Email)
			fmt.Printf("Role:  %s\n", user.Role)
			if user.Name != "" {
				fmt.Printf("Name:  %s\n", user.Name)
			}

			uc := auth.New(api, store, zlog)
			if uc.VerifyToken(ctx) {
				fmt.Println("Token: accepted by server")
			} else {
				fmt.Println("Token: not verified by server")
			}
			return nil
		},
	}
}

func promptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
