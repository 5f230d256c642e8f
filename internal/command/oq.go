// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"reflect"

	"github.com/urfave/cli/v3"

	"github.com/staranto/xeroctlgo/internal/meta"
	"github.com/staranto/xeroctlgo/internal/xero"
)

// OqCommandAction is the action handler for the "oq" subcommand. It reads the
// organisation record for the selected tenant, supports --tldr/--schema
// short-circuit behavior, and emits output per common flags.
func OqCommandAction(ctx context.Context, cmd *cli.Command) error {
	runner := &QueryActionRunner[xero.Organisation]{
		CommandName:  "oq",
		SchemaType:   reflect.TypeOf(xero.Organisation{}),
		DefaultAttrs: []string{"Name:name", "LegalName:legal", "CountryCode:country", "BaseCurrency:currency", "OrganisationType:type"},
		FetchFn: func(ctx context.Context, cmd *cli.Command) ([]xero.Organisation, error) {
			client, err := InitClient(ctx, cmd)
			if err != nil {
				return nil, err
			}
			org, err := client.Organisation(ctx)
			if err != nil {
				return nil, err
			}
			return []xero.Organisation{org}, nil
		},
	}
	return runner.Run(ctx, cmd)
}

// OqCommandBuilder constructs the cli.Command for "oq", configuring metadata,
// flags, and the associated action/validator.
func OqCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return (&QueryCommandBuilder{
		Name:      "oq",
		Usage:     "organisation query",
		UsageText: `xeroctl oq [options]`,
		Action:    OqCommandAction,
		Meta:      meta,
	}).Build()
}

// OqCommandValidator performs validation for "oq" and delegates shared checks
// to GlobalFlagsValidator.
func OqCommandValidator(ctx context.Context, cmd *cli.Command) error {
	return GlobalFlagsValidator(ctx, cmd)
}
