package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cantina/adminctl/usecase/orders"
)

func newOrdersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Manage orders",
	}
	cmd.AddCommand(
		newOrdersListCmd(),
		newOrdersGetCmd(),
		newOrdersUpdateCmd(),
		newOrdersDeleteCmd(),
		newOrdersExportCmd(),
	)
	return cmd
}

func ordersListFlags(cmd *cobra.Command, params *orders.ListParams) {
	cmd.Flags().IntVar(&params.Page, "page", 0, "Page number")
	cmd.Flags().IntVar(&params.Limit, "limit", 0, "Page size")
	cmd.Flags().StringVar(&params.Search, "search", "", "Search term")
	cmd.Flags().StringVar(&params.Type, "type", "", "Order type filter")
	cmd.Flags().StringVar(&params.Status, "status", "", "Status filter")
	cmd.Flags().StringVar(&params.DateFrom, "from", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&params.DateTo, "to", "", "End date (YYYY-MM-DD)")
}

func newOrdersListCmd() *cobra.Command {
	var params orders.ListParams

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()

			if _, err := requireAuth(ctx, "orders"); err != nil {
				return err
			}

			uc := orders.New(api, mutations, zlog)
			result, err := uc.List(ctx, params)
			if err != nil {
				return err
			}

			for _, order := range result.Orders {
				fmt.Printf("%-20s  %-25s  %2d items  %8.2f  %s/%s\n",
					order.OrderNumber, order.CustomerName, order.ItemCount,
					order.TotalAmount, order.Status, order.PaymentStatus)
			}
			printPagination(result.Pagination)
			return nil
		},
	}

	ordersListFlags(cmd, &params)
	return cmd
}

func newOrdersGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <order_id>",
		Short: "Show one order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()

			if _, err := requireAuth(ctx, "orders"); err != nil {
				return err
			}

			uc := orders.New(api, mutations, zlog)
			order, err := uc.GetByID(ctx, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Order:    %s\n", order.OrderNumber)
			fmt.Printf("Customer: %s <%s>\n", order.CustomerName, order.CustomerEmail)
			fmt.Printf("Status:   %s (payment %s)\n", order.Status, order.PaymentStatus)
			fmt.Printf("Total:    %.2f\n", order.TotalAmount)
			if order.TrackingNumber != "" {
				fmt.Printf("Tracking: %s\n", order.TrackingNumber)
			}
			for _, item := range order.Items {
				fmt.Printf("  %dx %s (%.2f)\n", item.Quantity, item.ProductName, item.Price)
			}
			return nil
		},
	}
}

func newOrdersUpdateCmd() *cobra.Command {
	var params orders.UpdateParams

	cmd := &cobra.Command{
		Use:   "update <order_id>",
		Short: "Update order status or tracking",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()

			if _, err := requireAuth(ctx, "orders"); err != nil {
				return err
			}

			params.OrderID = args[0]
			uc := orders.New(api, mutations, zlog)
			order, err := uc.Update(ctx, params)
			if err != nil {
				return err
			}
			fmt.Printf("Updated %s (%s)\n", order.OrderNumber, order.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&params.Status, "status", "", "New status")
	cmd.Flags().StringVar(&params.PaymentStatus, "payment-status", "", "New payment status")
	cmd.Flags().StringVar(&params.TrackingNumber, "tracking", "", "Tracking number")
	cmd.Flags().StringVar(&params.Notes, "notes", "", "Internal notes")
	return cmd
}

func newOrdersDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <order_id>",
		Short: "Delete an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()

			if _, err := requireAuth(ctx, "orders"); err != nil {
				return err
			}

			uc := orders.New(api, mutations, zlog)
			if err := uc.Delete(ctx, args[0]); err != nil {
				return err
			}
			fmt.Println("Deleted", args[0])
			return nil
		},
	}
}

func newOrdersExportCmd() *cobra.Command {
	var params orders.ListParams

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export matching orders to CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()

			if _, err := requireAuth(ctx, "orders"); err != nil {
				return err
			}

			uc := orders.New(api, mutations, zlog)
			url, err := uc.Export(ctx, params)
			if err != nil {
				return err
			}
			if url == "" {
				fmt.Println("Export accepted, no download URL returned")
				return nil
			}
			fmt.Println("Export ready:", url)
			return nil
		},
	}

	ordersListFlags(cmd, &params)
	return cmd
}
