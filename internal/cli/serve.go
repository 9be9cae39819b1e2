package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/expense-tracker/backend/internal/infra/server"
)

func newServeCommand(s *session) *cobra.Command {
	var (
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API over the ledger",
		Args:  cobra.NoArgs,
	}

	cmd.Flags().StringVar(&host, "host", "", "listen address (default from SERVER_HOST)")
	cmd.Flags().IntVar(&port, "port", 0, "listen port (default from SERVER_PORT)")

	cmd.RunE = s.run(func(cmd *cobra.Command, _ []string) error {
		if host != "" {
			s.cfg.Server.Host = host
		}
		if port != 0 {
			s.cfg.Server.Port = port
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		engine := s.app.Router.Setup(s.cfg.Server.Environment)
		return server.Run(ctx, &s.cfg.Server, engine)
	})

	return cmd
}
