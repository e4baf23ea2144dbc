package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/mediator-go/internal/application/mediator"
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand(app *App) *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "mediatorctl",
		Short: "Send requests through the in-process mediator",
		Long: `mediatorctl builds requests from flags and dispatches them through the
configured mediator pipeline (validation, logging, metrics, transactions).

Examples:
  mediatorctl user create --name "Ada Lovelace" --email ada@example.com
  mediatorctl user get --id 1
  mediatorctl user list
  mediatorctl handlers
  mediatorctl serve`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.init(configPath)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			app.Close()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default ./config.yaml)")

	rootCmd.AddCommand(NewUserCommand(app))
	rootCmd.AddCommand(NewHandlersCommand(app))
	rootCmd.AddCommand(NewServeCommand(app))

	return rootCmd
}

// PrintError writes err for a terminal user. Validation failures are printed
// one "field: message" per line.
func PrintError(w io.Writer, err error) {
	if failures, ok := mediator.ValidationFailures(err); ok {
		for _, f := range failures {
			fmt.Fprintln(w, f.String())
		}
		return
	}
	fmt.Fprintln(w, "Error:", err)
}

// Execute runs the root command
func Execute() {
	app := &App{}
	rootCmd := NewRootCommand(app)
	if err := rootCmd.Execute(); err != nil {
		PrintError(os.Stderr, err)
		os.Exit(1)
	}
}
