package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/Bahjat/site-audit/internal/analyzer"
	"github.com/Bahjat/site-audit/internal/platform/config"
	"github.com/Bahjat/site-audit/internal/platform/logger"
	"github.com/spf13/cobra"
)

func newServeCommand(a *app) *cobra.Command {
	d := config.Default()
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.loadConfig(cmd)
			if err != nil {
				return err
			}
			log := logger.New(a.out, cfg.LogLevel)

			engine, err := a.newEngine(cfg, log)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := analyzer.NewServer(cfg, analyzer.NewHandler(engine, log, cfg, Version))
			return analyzer.Serve(ctx, srv, log)
		},
	}
	cmd.Flags().String("port", d.Port, "port to listen on")
	cmd.Flags().Float64("rate-limit", d.RateLimit, "requests per second per client IP, 0 disables limiting")
	cmd.Flags().Int("rate-burst", d.RateBurst, "rate limit burst size")
	return cmd
}
