package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/mediator-go/internal/application/mediator"
	"github.com/andrescamacho/mediator-go/internal/application/user/commands"
	"github.com/andrescamacho/mediator-go/internal/application/user/queries"
)

// NewUserCommand creates the user command with subcommands
func NewUserCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Create and query users",
		Long: `Create and query users through the mediator.

Every subcommand sends one request; invalid requests are rejected before
reaching the handler and each failure is printed as "field: message".

Examples:
  mediatorctl user create --name "Grace Hopper" --email grace@example.com
  mediatorctl user get --id 1
  mediatorctl user list`,
	}

	cmd.AddCommand(newUserCreateCommand(app))
	cmd.AddCommand(newUserGetCommand(app))
	cmd.AddCommand(newUserListCommand(app))

	return cmd
}

func newUserCreateCommand(app *App) *cobra.Command {
	var (
		name  string
		email string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := mediator.Send[*commands.CreateUserResponse](cmd.Context(), app.Mediator, &commands.CreateUserCommand{
				Name:  name,
				Email: email,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "✓ User created")
			fmt.Fprintf(out, "  ID:    %d\n", result.User.ID)
			fmt.Fprintf(out, "  Name:  %s\n", result.User.Name)
			if result.User.Email != "" {
				fmt.Fprintf(out, "  Email: %s\n", result.User.Email)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name (required)")
	cmd.Flags().StringVar(&email, "email", "", "Email address")

	return cmd
}

func newUserGetCommand(app *App) *cobra.Command {
	var id int

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Show one user",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := mediator.Send[*queries.GetUserResponse](cmd.Context(), app.Mediator, &queries.GetUserQuery{ID: id})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ID:      %d\n", result.User.ID)
			fmt.Fprintf(out, "Name:    %s\n", result.User.Name)
			fmt.Fprintf(out, "Email:   %s\n", result.User.Email)
			fmt.Fprintf(out, "Created: %s\n", result.User.CreatedAt.Format("2006-01-02 15:04:05"))
			return nil
		},
	}

	cmd.Flags().IntVar(&id, "id", 0, "User ID (required)")

	return cmd
}

func newUserListCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all users",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := mediator.Send[*queries.ListUsersResponse](cmd.Context(), app.Mediator, &queries.ListUsersQuery{})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(result.Users) == 0 {
				fmt.Fprintln(out, "No users found.")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tEMAIL\tCREATED")
			fmt.Fprintln(w, "--\t----\t-----\t-------")
			for _, u := range result.Users {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.CreatedAt.Format("2006-01-02"))
			}
			return w.Flush()
		},
	}
}
