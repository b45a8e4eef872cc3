package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cantina/adminctl/usecase/admins"
)

func newAdminsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admins",
		Short: "Manage operator accounts",
	}
	cmd.AddCommand(
		newAdminsListCmd(),
		newAdminsCreateCmd(),
		newAdminsUpdateCmd(),
		newAdminsDeleteCmd(),
	)
	return cmd
}

func newAdminsListCmd() *cobra.Command {
	var (
		flagPage   int
		flagLimit  int
		flagSearch string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List operator accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()

			if _, err := requireAuth(ctx, "admins"); err != nil {
				return err
			}

			uc := admins.New(api, mutations, zlog)
			result, err := uc.List(ctx, admins.ListParams{
				Page:   flagPage,
				Limit:  flagLimit,
				Search: flagSearch,
			})
			if err != nil {
				return err
			}

			for _, admin := range result.Admins {
				fmt.Printf("%s  %s %s  <%s>  %s\n",
					admin.ID, admin.FirstName, admin.LastName, admin.Email, admin.Role)
			}
			printPagination(result.Pagination)
			return nil
		},
	}

	cmd.Flags().IntVar(&flagPage, "page", 0, "Page number")
	cmd.Flags().IntVar(&flagLimit, "limit", 0, "Page size")
	cmd.Flags().StringVar(&flagSearch, "search", "", "Search term")
	return cmd
}

func newAdminsCreateCmd() *cobra.Command {
	var params admins.CreateParams

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an operator account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()

			if _, err := requireAuth(ctx, "admins"); err != nil {
				return err
			}

			uc := admins.New(api, mutations, zlog)
			admin, err := uc.Create(ctx, params)
			if err != nil {
				return err
			}
			fmt.Printf("Created %s (%s)\n", admin.ID, admin.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&params.FirstName, "first-name", "", "First name (required)")
	cmd.Flags().StringVar(&params.LastName, "last-name", "", "Last name")
	cmd.Flags().StringVar(&params.Email, "email", "", "Email address (required)")
	cmd.Flags().StringVar(&params.Password, "password", "", "Initial password (required)")
	return cmd
}

func newAdminsUpdateCmd() *cobra.Command {
	var params admins.UpdateParams

	cmd := &cobra.Command{
		Use:   "update <admin_id>",
		Short: "Update an operator account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()

			if _, err := requireAuth(ctx, "admins"); err != nil {
				return err
			}

			params.AdminID = args[0]
			uc := admins.New(api, mutations, zlog)
			admin, err := uc.Update(ctx, params)
			if err != nil {
				return err
			}
			fmt.Printf("Updated %s (%s)\n", admin.ID, admin.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&params.FirstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&params.LastName, "last-name", "", "Last name")
	cmd.Flags().StringVar(&params.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&params.Password, "password", "", "New password")
	return cmd
}

func newAdminsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <admin_id>",
		Short: "Delete an operator account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()

			if _, err := requireAuth(ctx, "admins"); err != nil {
				return err
			}

			uc := admins.New(api, mutations, zlog)
			if err := uc.Delete(ctx, args[0]); err != nil {
				return err
			}
			fmt.Println("Deleted", args[0])
			return nil
		},
	}
}
