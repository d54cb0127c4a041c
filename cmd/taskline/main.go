package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/mgersten/taskline/internal/api"
	"github.com/mgersten/taskline/internal/cache"
	"github.com/mgersten/taskline/internal/cli"
	"github.com/mgersten/taskline/internal/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
	})
	if lvl, err := log.ParseLevel(cfg.Log.Level); err == nil {
		logger.SetLevel(lvl)
	}

	if cfg.Server.URL == "" {
		return fmt.Errorf("no tracker URL configured; set server.url in ~/.taskline/config.toml or TASKLINE_SERVER_URL")
	}

	client := api.NewClient(api.Config{
		BaseURL:    cfg.Server.URL,
		Timeout:    time.Duration(cfg.Server.TimeoutSec) * time.Second,
		MaxRetries: cfg.Server.MaxRetries,
	}, api.StaticToken(cfg.Server.Token), logger)

	// The snapshot store is a convenience, not a requirement: a broken
	// cache file degrades to online-only operation.
	var store *cache.Store
	if store, err = cache.Open(cfg.Cache.Path); err != nil {
		logger.Warn("opening snapshot cache, continuing without it", "path", cfg.Cache.Path, "err", err)
		store = nil
	} else {
		defer store.Close()
	}

	app := &cli.App{
		Client: client,
		Cache:  store,
		Cfg:    cfg,
		Logger: logger,
	}
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
