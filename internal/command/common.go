// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"reflect"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/xeroctlgo/internal/attrs"
	"github.com/staranto/xeroctlgo/internal/cache"
	"github.com/staranto/xeroctlgo/internal/config"
	"github.com/staranto/xeroctlgo/internal/meta"
	"github.com/staranto/xeroctlgo/internal/output"
	"github.com/staranto/xeroctlgo/internal/xero"
)

// ShortCircuitTLDR checks the --tldr flag and, if present and available,
// runs `tldr xeroctl <subcmd>` and returns true so the caller can exit early.
func ShortCircuitTLDR(ctx context.Context, cmd *cli.Command, subcmd string) bool {
	if cmd.Bool("tldr") {
		if _, err := exec.LookPath("tldr"); err == nil {
			c := exec.CommandContext(ctx, "tldr", "xeroctl", subcmd)
			c.Stdout = os.Stdout
			c.Stderr = os.Stderr
			_ = c.Run()
		}
		return true
	}
	return false
}

// DumpSchemaIfRequested prints the JSON schema for the provided type when
// --schema is set, and returns true if it handled the request.
func DumpSchemaIfRequested(cmd *cli.Command, t reflect.Type) bool {
	if cmd.Bool("schema") {
		output.DumpSchema("", t)
		return true
	}
	return false
}

// BuildAttrs constructs an AttrList with defaults and optional extras from
// --attrs, then applies the global transform spec.
func BuildAttrs(cmd *cli.Command, defaults ...string) (al attrs.AttrList) {
	//nolint:errcheck
	{
		for _, d := range defaults {
			al.Set(d)
		}
		if extras := cmd.String("attrs"); extras != "" {
			al.Set(extras)
		}
		al.SetGlobalTransformSpec()
	}
	return
}

// EmitJSONSlice marshals a slice as JSON and passes it to the common output
// routine.
func EmitJSONSlice(results any, al attrs.AttrList, cmd *cli.Command) error {
	jsonBytes, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}
	raw := *bytes.NewBuffer(jsonBytes)
	output.SliceDiceSpit(raw, al, cmd, "", os.Stdout)
	return nil
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// InitClient builds the API client for a command invocation: credentials and
// tenant from the flag chains, the shared cache instance from Meta, and the
// per-invocation cache controls (--no-cache, --cache-ttl).
func InitClient(ctx context.Context, cmd *cli.Command) (*xero.Client, error) {
	m := GetMeta(cmd)

	clientCfg := xero.Config{
		ClientID:     cmd.String("client-id"),
		ClientSecret: cmd.String("client-secret"),
		TenantID:     cmd.String("tenant"),
		Cache:        m.Cache,
		NoCache:      cmd.Bool("no-cache"),
	}

	if scopes, err := config.GetString("auth.scopes"); err == nil && scopes != "" {
		clientCfg.Scopes = strings.Fields(scopes)
	}

	if s := cmd.String("cache-ttl"); s != "" {
		ttl, err := ParseTTL(s)
		if err != nil {
			return nil, err
		}
		clientCfg.CacheTTL = ttl
	}

	client, err := xero.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, err
	}
	log.Debugf("client tenant=%q noCache=%v", clientCfg.TenantID, clientCfg.NoCache)

	return client, nil
}

// ParseTTL resolves a preset name or a plain duration string.
func ParseTTL(s string) (time.Duration, error) {
	if ttl, ok := cache.PresetTTL(s); ok {
		return ttl, nil
	}
	ttl, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid TTL %q: %w", s, err)
	}
	return ttl, nil
}

// QueryCommandBuilder is a helper that constructs a cli.Command for query
// subcommands (iq, cq, pq, aq, qq, bq, oq, rq) using a consistent pattern.
// It accepts the command name, usage text, optional UsageText, custom flags,
// the action handler, and meta. The builder automatically wires metadata,
// adds tldr/schema/auth/tenant flags, applies global flags, and sets up
// validators.
type QueryCommandBuilder struct {
	Name      string
	Usage     string
	UsageText string
	Flags     []cli.Flag
	Action    func(context.Context, *cli.Command) error
	Meta      meta.Meta
}

// Build returns a configured cli.Command from the builder.
func (qcb *QueryCommandBuilder) Build() *cli.Command {
	return &cli.Command{
		Name:      qcb.Name,
		Usage:     qcb.Usage,
		UsageText: qcb.UsageText,
		Metadata: map[string]any{
			"meta": qcb.Meta,
		},
		Flags: append(qcb.Flags, append(append([]cli.Flag{
			tldrFlag,
			schemaFlag,
			NewTenantFlag(qcb.Name, qcb.Meta.Config.Source),
		}, NewAuthFlags(qcb.Name, qcb.Meta.Config.Source)...),
			NewGlobalFlags(qcb.Name)...)...),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: qcb.Action,
	}
}

// QueryActionRunner[T] encapsulates the common query action pattern for all
// query subcommands. It handles steps 1-4 and 6 (GetMeta, short-circuit
// checks, BuildAttrs, schema dumping, and output emission), with step 5
// (data fetching) provided by FetchFn.
type QueryActionRunner[T any] struct {
	CommandName  string
	SchemaType   reflect.Type
	DefaultAttrs []string
	FetchFn      func(context.Context, *cli.Command) ([]T, error)
}

// Run executes the query action with the provided context and command.
func (qar *QueryActionRunner[T]) Run(
	ctx context.Context,
	cmd *cli.Command,
) error {
	// Step 1: GetMeta + debug.
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	// Step 2: Short-circuit checks.
	if ShortCircuitTLDR(ctx, cmd, qar.CommandName) {
		return nil
	}
	if DumpSchemaIfRequested(cmd, qar.SchemaType) {
		return nil
	}

	// Step 3: BuildAttrs + debug.
	attrs := BuildAttrs(cmd, qar.DefaultAttrs...)
	log.Debugf("attrs: %v", attrs)

	// Step 4: Fetch data.
	results, err := qar.FetchFn(ctx, cmd)
	if err != nil {
		return err
	}

	// Step 5: Emit + return.
	if err := EmitJSONSlice(results, attrs, cmd); err != nil {
		return err
	}
	return nil
}

// splitCSV turns a comma-separated flag value into a slice, dropping empty
// segments.
func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	//nolint:prealloc
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
