package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alexiusacademia/gobearing/internal/config"
	"github.com/alexiusacademia/gobearing/internal/logging"
	"github.com/alexiusacademia/gobearing/internal/server"
	"github.com/alexiusacademia/gobearing/internal/version"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the calculator over HTTP",
	Long: `Start an HTTP service exposing the bearing calculator.

Endpoints:
  GET  /health                 liveness probe
  GET  /version                build information
  GET  /metrics                Prometheus metrics
  GET  /api/bearing/catalog    bearing selection tables
  POST /api/bearing/calculate  JSON input, JSON result
  POST /api/bearing/report     JSON input, PDF report

Input keys: rpm, p1, p2, pt, pr, w, lf, life_hours (or lifeHours),
distance1, distance2, distance3. The report body may add a "meta" object
with title, project, author and notes.

Settings come from flags, then GOBEARING_* environment variables
(GOBEARING_ADDR, GOBEARING_LOG_LEVEL, GOBEARING_RATE, GOBEARING_BURST,
GOBEARING_SHUTDOWN_TIMEOUT), which may be placed in a .env file.

Examples:
  gobearing serve
  gobearing serve --addr :9000 --rate 10 --burst 20`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", config.Defaults.Addr, "Listen address")
	serveCmd.Flags().String("log-level", config.Defaults.LogLevel, "Log level (debug, info, warn, error)")
	serveCmd.Flags().Float64("rate", config.Defaults.RateLimit, "Requests per second allowed per client")
	serveCmd.Flags().Int("burst", config.Defaults.RateBurst, "Request burst allowed per client")
	serveCmd.Flags().Duration("shutdown-timeout", config.Defaults.ShutdownTimeout, "Graceful shutdown timeout")
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}

	if err := logging.Init(cfg.LogLevel); err != nil {
		return err
	}
	logging.Logger.Info("starting gobearing",
		zap.String("version", version.Version),
		zap.String("addr", cfg.Addr),
		zap.Float64("rate", cfg.RateLimit),
		zap.Int("burst", cfg.RateBurst),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(cfg, logging.Logger).Run(ctx)
}
