package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewHandlersCommand lists the request types the mediator can dispatch
func NewHandlersCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "handlers",
		Short: "List registered request types",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range app.Mediator.RequestTypes() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
