// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT
package command

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/staranto/xeroctlgo/internal/cache"
	"github.com/staranto/xeroctlgo/internal/config"
	"github.com/staranto/xeroctlgo/internal/meta"
)

func InitApp(ctx context.Context, args []string) (*cli.Command, error) {

	// Save the CWD at startup and then defer restoring it so we're tidy.
	sd, _ := os.Getwd()
	defer func() {
		if err := os.Chdir(sd); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to restore directory: %v\n", err)
		}
	}()

	// The arg[1] immediately following the binary (arg[0]) is the xeroctl
	// subcommand and also represents the namespace key to be used when retrieving
	// config values. arg[1] could be -h/--help, so ignore it if it appears to be
	// a flag.
	var ns string
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		ns = args[1]
	}

	cfg, _ := config.Load(ns)
	meta := meta.Meta{
		Args:        args,
		Cache:       newCache(),
		Config:      cfg,
		Context:     ctx,
		StartingDir: sd,
	}

	app := &cli.Command{
		Name:  "xeroctl",
		Usage: "Xero Control",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "xeroctl version info",
				HideDefault: true,
			},
		},
	}

	app.Commands = append(app.Commands,
		AqCommandBuilder(app, meta),
		BqCommandBuilder(app, meta),
		CaCommandBuilder(app, meta),
		CacheCommandBuilder(app, meta),
		CompletionCommandBuilder(app, meta),
		CqCommandBuilder(app, meta),
		IaCommandBuilder(app, meta),
		IqCommandBuilder(app, meta),
		OqCommandBuilder(app, meta),
		PaCommandBuilder(app, meta),
		PqCommandBuilder(app, meta),
		QqCommandBuilder(app, meta),
		RqCommandBuilder(app, meta),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app, nil
}

// newCache builds the single cache instance shared by every command, honoring
// the cache.ttl preset and cache.coalesce switch from the config file.
func newCache() *cache.Cache {
	ttl := cache.FiveMinutes
	if name, err := config.GetString("cache.ttl"); err == nil && name != "" {
		if preset, ok := cache.PresetTTL(name); ok {
			ttl = preset
		} else if d, perr := time.ParseDuration(name); perr == nil {
			ttl = d
		}
	}

	coalesce, _ := config.GetBool("cache.coalesce", false)

	return cache.New(cache.Options{
		Namespace:  "xero",
		DefaultTTL: ttl,
		Coalesce:   coalesce,
	})
}
