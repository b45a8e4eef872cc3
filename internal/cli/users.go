package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cantina/adminctl/domain"
	"github.com/cantina/adminctl/internal/view"
	"github.com/cantina/adminctl/usecase/users"
)

func newUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage venue members",
	}
	cmd.AddCommand(
		newUsersListCmd(),
		newUsersSearchCmd(),
		newUsersGetCmd(),
		newUsersUpdateCmd(),
		newUsersDeleteCmd(),
	)
	return cmd
}

// newUsersSearchCmd is the incremental search loop: every line typed
// restarts the debounce countdown, and a response is shown only when it is
// still the latest query.
func newUsersSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search",
		Short: "Search members incrementally from stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()

			if _, err := requireAuth(ctx, "users"); err != nil {
				return err
			}

			uc := users.New(api, mutations, zlog)
			debouncer := view.NewDebouncer(cfg.Watch.SearchDebounce)
			defer debouncer.Stop()
			var seq view.Sequencer

			fmt.Println("Type a search term per line, Ctrl-D to quit.")
			scanner := bufio.NewScanner(os.Stdin)
			for scanner.Scan() {
				term := strings.TrimSpace(scanner.Text())
				token := seq.Next()
				debouncer.Trigger(func() {
					reqCtx, reqCancel := adapter.Attach(cmd.Context())
					defer reqCancel()

					result, err := uc.List(reqCtx, users.ListParams{Search: term})
					if err != nil {
						fmt.Println("Error:", err)
						return
					}
					seq.Apply(token, func() {
						for _, member := range result.Members {
							fmt.Printf("%s  %s %s  <%s>\n",
								member.ID, member.FirstName, member.LastName, member.Email)
						}
						fmt.Printf("%d shown for %q\n", len(result.Members), term)
					})
				})
			}
			return scanner.Err()
		},
	}
}

func newUsersListCmd() *cobra.Command {
	var (
		flagPage   int
		flagLimit  int
		flagSearch string
		flagStatus string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List members",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()

			if _, err := requireAuth(ctx, "users"); err != nil {
				return err
			}

			uc := users.New(api, mutations, zlog)
			result, err := uc.List(ctx, users.ListParams{
				Page:             flagPage,
				Limit:            flagLimit,
				Search:           flagSearch,
				MembershipStatus: flagStatus,
			})
			if err != nil {
				return err
			}

			for _, member := range result.Members {
				fmt.Printf("%s  %s %s  <%s>  %s\n",
					member.ID, member.FirstName, member.LastName, member.Email, member.MembershipStatus)
			}
			printPagination(result.Pagination)
			return nil
		},
	}

	cmd.Flags().IntVar(&flagPage, "page", 0, "Page number")
	cmd.Flags().IntVar(&flagLimit, "limit", 0, "Page size")
	cmd.Flags().StringVar(&flagSearch, "search", "", "Search term")
	cmd.Flags().StringVar(&flagStatus, "status", "", "Membership status filter (default all)")
	return cmd
}

func newUsersGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <user_id>",
		Short: "Show one member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()

			if _, err := requireAuth(ctx, "users"); err != nil {
				return err
			}

			uc := users.New(api, mutations, zlog)
			member, err := uc.GetByID(ctx, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("ID:     %s\n", member.ID)
			fmt.Printf("Name:   %s %s\n", member.FirstName, member.LastName)
			fmt.Printf("Email:  %s\n", member.Email)
			if member.Phone != "" {
				fmt.Printf("Phone:  %s\n", member.Phone)
			}
			fmt.Printf("Status: %s\n", member.MembershipStatus)
			if member.Membership != nil {
				fmt.Printf("Tier:   %s (%s)\n", member.Membership.Tier, member.Membership.Status)
			}
			if member.PunchCard != nil {
				fmt.Printf("Punches: %d/%d, rewards claimed %d\n",
					member.PunchCard.Punches, member.PunchCard.TotalPunches, member.PunchCard.RewardsClaimed)
			}
			return nil
		},
	}
}

func newUsersUpdateCmd() *cobra.Command {
	var params users.UpdateParams

	cmd := &cobra.Command{
		Use:   "update <user_id>",
		Short: "Update member fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()

			if _, err := requireAuth(ctx, "users"); err != nil {
				return err
			}

			params.UserID = args[0]
			uc := users.New(api, mutations, zlog)
			member, err := uc.Update(ctx, params)
			if err != nil {
				return err
			}
			fmt.Printf("Updated %s (%s)\n", member.ID, member.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&params.FirstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&params.LastName, "last-name", "", "Last name")
	cmd.Flags().StringVar(&params.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&params.Phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&params.MembershipStatus, "status", "", "Membership status")
	return cmd
}

func newUsersDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <user_id>",
		Short: "Delete a member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()

			if _, err := requireAuth(ctx, "users"); err != nil {
				return err
			}

			uc := users.New(api, mutations, zlog)
			if err := uc.Delete(ctx, args[0]); err != nil {
				return err
			}
			fmt.Println("Deleted", args[0])
			return nil
		},
	}
}

func printPagination(p domain.Pagination) {
	if p.Total > 0 {
		fmt.Printf("Page %d/%d (%d total)\n", p.Page, p.TotalPages, p.Total)
		return
	}
	fmt.Printf("Page %d\n", p.Page)
}
