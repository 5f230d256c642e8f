// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/staranto/xeroctlgo/internal/attrs"
	"github.com/staranto/xeroctlgo/internal/cache"
	"github.com/staranto/xeroctlgo/internal/meta"
)

func TestOutputValidator(t *testing.T) {
	for _, valid := range []string{"text", "json", "raw", "yaml"} {
		assert.NoError(t, OutputValidator(valid), valid)
	}
	assert.Error(t, OutputValidator("xml"))
	assert.Error(t, OutputValidator(""))
}

func TestTTLValidator(t *testing.T) {
	assert.NoError(t, TTLValidator(""))
	assert.NoError(t, TTLValidator("five-minutes"))
	assert.NoError(t, TTLValidator("one-day"))
	assert.NoError(t, TTLValidator("90s"))
	assert.NoError(t, TTLValidator("1h30m"))
	assert.Error(t, TTLValidator("sometimes"))
}

func TestReportValidator(t *testing.T) {
	for _, valid := range []string{"pnl", "bs", "tb"} {
		assert.NoError(t, ReportValidator(valid), valid)
	}
	assert.Error(t, ReportValidator("cashflow"))
}

func TestJammedFlagValidator(t *testing.T) {
	assert.NoError(t, JammedFlagValidator("Acme"))
	assert.Error(t, JammedFlagValidator("--titles"))
}

func TestParseTTL(t *testing.T) {
	ttl, err := ParseTTL("one-hour")
	require.NoError(t, err)
	assert.Equal(t, time.Hour, ttl)

	ttl, err = ParseTTL("45s")
	require.NoError(t, err)
	assert.Equal(t, 45*time.Second, ttl)

	_, err = ParseTTL("whenever")
	assert.Error(t, err)
}

func TestSplitCSV(t *testing.T) {
	assert.Nil(t, splitCSV(""))
	assert.Equal(t, []string{"AUTHORISED"}, splitCSV("AUTHORISED"))
	assert.Equal(t, []string{"AUTHORISED", "PAID"}, splitCSV("AUTHORISED, PAID"))
	assert.Equal(t, []string{"DRAFT"}, splitCSV(",DRAFT,"))
}

func TestGetMeta(t *testing.T) {
	assert.Equal(t, meta.Meta{}, GetMeta(nil))
	assert.Equal(t, meta.Meta{}, GetMeta(&cli.Command{}))

	c := cache.New(cache.Options{Namespace: "test"})
	cmd := &cli.Command{
		Metadata: map[string]any{
			"meta": meta.Meta{Cache: c},
		},
	}
	assert.Same(t, c, GetMeta(cmd).Cache)
}

func TestBuildAttrs(t *testing.T) {
	var al attrs.AttrList
	cmd := &cli.Command{
		Name:  "iq",
		Flags: []cli.Flag{&cli.StringFlag{Name: "attrs"}},
		Action: func(_ context.Context, cmd *cli.Command) error {
			al = BuildAttrs(cmd, "InvoiceNumber:number", "Status:status")
			return nil
		},
	}

	// Defaults apply when --attrs is not given.
	require.NoError(t, cmd.Run(context.Background(), []string{"iq"}))
	require.Len(t, al, 2)
	assert.Equal(t, "number", al[0].OutputKey)
	assert.Equal(t, "status", al[1].OutputKey)

	// An explicit --attrs merges on top of the defaults.
	require.NoError(t, cmd.Run(context.Background(), []string{"iq", "--attrs", "Total:total"}))
	require.Len(t, al, 3)
	assert.Equal(t, "total", al[2].OutputKey)
}

func TestReportColumns(t *testing.T) {
	assert.Equal(t, "Section", reportColumns(nil))

	rows := []map[string]any{
		{"Section": "Income", "RowType": "Row", "31 Mar 25": "1000.00", "Column0": "Sales"},
	}
	assert.Equal(t, "Section:section,31 Mar 25,Column0", reportColumns(rows))
}
