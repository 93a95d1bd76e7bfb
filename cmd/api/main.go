package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Bahjat/site-audit/internal/analyzer"
	"github.com/Bahjat/site-audit/internal/cli"
	"github.com/Bahjat/site-audit/internal/pageinsight"
	"github.com/Bahjat/site-audit/internal/platform/config"
	"github.com/Bahjat/site-audit/internal/platform/logger"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"), nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(os.Stdout, cfg.LogLevel)

	engine, err := pageinsight.NewEngineFromConfig(cfg, log)
	if err != nil {
		log.Error("failed to build the analysis engine", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := analyzer.NewServer(cfg, analyzer.NewHandler(engine, log, cfg, cli.Version))
	if err := analyzer.Serve(ctx, srv, log); err != nil {
		log.Error("server stopped with error", "error", err)
		stop()
		os.Exit(1)
	}
}
