package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cantina/adminctl/api/transport"
	"github.com/cantina/adminctl/internal/infrastructure/monitor"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check API connectivity and the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()

			mon := monitor.New(api, store, time.Minute, zlog)
			status := mon.Check(ctx)

			baseURL := cfg.API.BaseURL
			if baseURL == "" {
				baseURL = transport.DefaultBaseURL
			}
			fmt.Printf("API:     %s (%s)\n", upDown(status.API), baseURL)
			switch {
			case !status.SessionPresent:
				fmt.Println("Session: none")
			case status.SessionExpired:
				fmt.Println("Session: expired")
			default:
				fmt.Println("Session: active")
			}
			if status.Healthy() {
				fmt.Println("Ready")
			}
			return nil
		},
	}
}

func upDown(ok bool) string {
	if ok {
		return "reachable"
	}
	return "unreachable"
}
