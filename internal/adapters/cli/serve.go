package cli

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/andrescamacho/mediator-go/internal/adapters/metrics"
	"github.com/andrescamacho/mediator-go/internal/infrastructure/config"
)

// NewServeCommand keeps one mediator alive, serving its metrics endpoint and
// dispatching the commands read from stdin
func NewServeCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run commands from stdin against one long-lived mediator",
		Long: `Start a session that reads one command per line from stdin and sends it
through a single mediator, so rate limits, the circuit breaker and dispatch
metrics accumulate across commands. When metrics.enabled is set the
Prometheus endpoint is served for the lifetime of the session.

The session ends at end of input, on "exit", or on SIGINT/SIGTERM.

Example:
  mediatorctl serve
  > user create --name "Ada Lovelace" --email ada@example.com
  > user list
  > exit`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			if app.Metrics != nil {
				srv := newMetricsServer(app.Config.Metrics, app.Metrics)
				ln, err := net.Listen("tcp", srv.Addr)
				if err != nil {
					return fmt.Errorf("failed to listen on %s: %w", srv.Addr, err)
				}
				go func() {
					if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
						PrintError(cmd.ErrOrStderr(), err)
					}
				}()
				defer func() {
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					_ = srv.Shutdown(shutdownCtx)
				}()
				fmt.Fprintf(out, "Serving metrics on http://%s%s\n", ln.Addr(), app.Config.Metrics.Path)
			}

			return runSession(ctx, app, cmd.InOrStdin(), out)
		},
	}
}

// runSession executes each input line as a user or handlers command.
// Command failures are printed and the session continues.
func runSession(ctx context.Context, app *App, in io.Reader, out io.Writer) error {
	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}

			args, err := splitArgs(line)
			if err != nil {
				PrintError(out, err)
				continue
			}
			if len(args) == 0 {
				continue
			}
			if args[0] == "exit" || args[0] == "quit" {
				return nil
			}

			if err := runSessionCommand(ctx, app, args, out); err != nil {
				PrintError(out, err)
			}
		}
	}
}

func runSessionCommand(ctx context.Context, app *App, args []string, out io.Writer) error {
	root := &cobra.Command{
		Use:           "mediatorctl",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(NewUserCommand(app))
	root.AddCommand(NewHandlersCommand(app))
	root.SetOut(out)
	root.SetErr(out)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// splitArgs splits a command line on spaces, honouring double quotes
func splitArgs(line string) ([]string, error) {
	r := csv.NewReader(strings.NewReader(line))
	r.Comma = ' '
	r.LazyQuotes = true

	fields, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("invalid command line: %w", err)
	}

	args := fields[:0]
	for _, f := range fields {
		if f != "" {
			args = append(args, f)
		}
	}
	return args, nil
}

func newMetricsServer(cfg config.MetricsConfig, reg *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle(cfg.Path, metrics.Handler(reg))
	return &http.Server{
		Addr:              net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
