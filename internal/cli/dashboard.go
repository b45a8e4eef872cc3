package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cantina/adminctl/domain"
	"github.com/cantina/adminctl/internal/infrastructure/monitor"
	"github.com/cantina/adminctl/internal/services"
	"github.com/cantina/adminctl/internal/services/lifecycle"
	"github.com/cantina/adminctl/usecase/dashboard"
)

func newDashboardCmd() *cobra.Command {
	var flagWatch bool

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show the overview counters and recent activity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()

			if _, err := requireAuth(ctx, "dashboard"); err != nil {
				return err
			}

			uc := dashboard.New(api, zlog)
			if flagWatch {
				return watchDashboard(cmd.Context(), uc)
			}

			dash, err := uc.Get(ctx)
			if err != nil {
				return err
			}
			printDashboard(dash)
			return nil
		},
	}

	cmd.Flags().BoolVar(&flagWatch, "watch", false, "Refresh continuously until interrupted")
	return cmd
}

// watchDashboard runs the refresh loop until SIGINT/SIGTERM. The monitor
// keeps probing connectivity so refreshes pause while offline instead of
// piling up failures.
func watchDashboard(parent context.Context, uc *dashboard.UseCase) error {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	manager := lifecycle.New(cfg.Watch.ShutdownTimeout, zlog)
	manager.Listen(cancel)

	mon := monitor.New(api, store, cfg.Watch.RefreshInterval, zlog)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	refresher := services.NewRefresher(uc, mon,
		services.RefresherConfig{Interval: cfg.Watch.RefreshInterval},
		printDashboard, zlog)
	refresher.Start()
	manager.Register("refresher", func(ctx context.Context) error {
		refresher.Stop(ctx)
		return nil
	})

	<-ctx.Done()
	return manager.Shutdown(context.Background())
}

func printDashboard(dash *domain.Dashboard) {
	fmt.Println("Overview")
	fmt.Printf("  Users:    %d (%d active members)\n", dash.Overview.TotalUsers, dash.Overview.ActiveMembers)
	fmt.Printf("  Products: %d\n", dash.Overview.TotalProducts)
	fmt.Printf("  Orders:   %d\n", dash.Overview.TotalOrders)
	fmt.Printf("  Sales:    %.2f\n", dash.Overview.MerchandiseSales)

	if len(dash.RecentActivity) == 0 {
		fmt.Println("No recent activity")
		return
	}
	fmt.Println("Recent activity")
	for _, item := range dash.RecentActivity {
		line := fmt.Sprintf("  [%s] %s", item.Type, item.Title)
		if item.Description != "" {
			line += " - " + item.Description
		}
		if item.Amount > 0 {
			line += fmt.Sprintf(" (%.2f)", item.Amount)
		}
		fmt.Println(line)
	}
}
