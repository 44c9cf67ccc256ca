package main

import (
	"context"

	"github.com/gogpu/bentpixel/internal/presetstore"
	"github.com/gogpu/bentpixel/internal/server"
)

func (c *cli) runServe(ctx context.Context, args []string) error {
	fs := c.newFlagSet("serve", "")
	var common commonFlags
	common.register(fs)
	listen := fs.String("listen", "", "listen address (default from config)")
	dbPath := fs.String("db", "", "preset database path (default from config)")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	cfg, logger, err := c.setup(common)
	if err != nil {
		return err
	}
	if *listen != "" {
		cfg.Listen = *listen
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}

	store, err := presetstore.Open(cfg.DBPath, presetstore.WithMkdirAll(), presetstore.WithLogger(logger))
	if err != nil {
		return err
	}
	defer store.Close()

	logger.Info("bentpixel: serving", "listen", cfg.Listen, "db", cfg.DBPath)
	return server.New(cfg, store, logger).Run(ctx)
}
