package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samvad-hq/namematch-console/internal/cli"
	"github.com/samvad-hq/namematch-console/internal/config"
	"github.com/samvad-hq/namematch-console/internal/logger"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		if !errors.Is(err, cli.ErrReported) {
			fmt.Fprintf(os.Stderr, "namematch: %v\n", err)
		}
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	var log logger.Logger
	defer func() { _ = logger.Sync(log) }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCommand(cfg, cli.Deps{
		Version:   version,
		NewLogger: func(c *config.Config) (logger.Logger, error) {
			l, err := logger.Init(c)
			log = l
			return l, err
		},
	})
	return root.ExecuteContext(ctx)
}
