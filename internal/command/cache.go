// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/xeroctlgo/internal/meta"
)

// CacheStatsCommandAction prints hit/miss counters and the live entry count
// for the shared cache instance.
func CacheStatsCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	if m.Cache == nil {
		return errors.New("no cache configured")
	}

	stats := m.Cache.Stats()
	log.Debugf("stats: %+v", stats)

	attrs := BuildAttrs(cmd, "Hits:hits", "Misses:misses", "EntryCount:entries")
	type row struct {
		Hits       uint64
		Misses     uint64
		EntryCount int
	}
	return EmitJSONSlice([]row{{stats.Hits, stats.Misses, stats.EntryCount}}, attrs, cmd)
}

// CacheClearCommandAction removes every cached entry and reports how many
// went away.
func CacheClearCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	if m.Cache == nil {
		return errors.New("no cache configured")
	}

	removed := m.Cache.Clear()
	fmt.Printf("cleared %d entries\n", removed)
	return nil
}

// CacheInvalidateCommandAction evicts entries by exact key, by prefix
// (--prefix) or by regular expression (--regex).
func CacheInvalidateCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	if m.Cache == nil {
		return errors.New("no cache configured")
	}

	args := cmd.Args().Slice()
	if len(args) != 1 {
		return errors.New("usage: xeroctl cache invalidate [--prefix|--regex] KEY")
	}
	target := args[0]

	switch {
	case cmd.Bool("regex"):
		removed, err := m.Cache.InvalidatePattern(target)
		if err != nil {
			return err
		}
		fmt.Printf("invalidated %d entries\n", removed)
	case cmd.Bool("prefix"):
		removed := m.Cache.InvalidatePrefix(target)
		fmt.Printf("invalidated %d entries\n", removed)
	default:
		if m.Cache.Invalidate(target) {
			fmt.Println("invalidated 1 entry")
		} else {
			fmt.Println("invalidated 0 entries")
		}
	}

	return nil
}

// CacheCommandBuilder constructs the "cache" admin command with its stats,
// clear and invalidate subcommands.
func CacheCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	metadata := map[string]any{
		"meta": meta,
	}

	return &cli.Command{
		Name:     "cache",
		Usage:    "response cache administration",
		Metadata: metadata,
		Commands: []*cli.Command{
			{
				Name:     "stats",
				Usage:    "show cache hit/miss counters",
				Metadata: metadata,
				Flags:    NewGlobalFlags("cache"),
				Action:   CacheStatsCommandAction,
			},
			{
				Name:     "clear",
				Usage:    "remove all cached entries",
				Metadata: metadata,
				Action:   CacheClearCommandAction,
			},
			{
				Name:      "invalidate",
				Usage:     "evict cached entries by key, prefix or regex",
				UsageText: `xeroctl cache invalidate [--prefix|--regex] KEY`,
				Metadata:  metadata,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:        "prefix",
						Usage:       "treat KEY as a key prefix",
						HideDefault: true,
					},
					&cli.BoolFlag{
						Name:        "regex",
						Usage:       "treat KEY as a regular expression",
						HideDefault: true,
					},
				},
				Action: CacheInvalidateCommandAction,
			},
		},
	}
}
