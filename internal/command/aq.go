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

// AqCommandAction is the action handler for the "aq" subcommand. It lists the
// chart of accounts for the selected tenant.
func AqCommandAction(ctx context.Context, cmd *cli.Command) error {
	runner := &QueryActionRunner[xero.Account]{
		CommandName:  "aq",
		SchemaType:   reflect.TypeOf(xero.Account{}),
		DefaultAttrs: []string{"Code:code", "Name:name", "Type:type", "Class:class", "Status:status"},
		FetchFn: func(ctx context.Context, cmd *cli.Command) ([]xero.Account, error) {
			client, err := InitClient(ctx, cmd)
			if err != nil {
				return nil, err
			}
			return client.ListAccounts(ctx, xero.AccountListOptions{
				Where: cmd.String("where"),
			})
		},
	}
	return runner.Run(ctx, cmd)
}

// AqCommandBuilder constructs the cli.Command for "aq", configuring metadata,
// flags, and the associated action/validator.
func AqCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return (&QueryCommandBuilder{
		Name:      "aq",
		Usage:     "account query",
		UsageText: `xeroctl aq [options]`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "where",
				Usage: "server-side where clause",
			},
		},
		Action: AqCommandAction,
		Meta:   meta,
	}).Build()
}

// AqCommandValidator performs validation for "aq" and delegates shared checks
// to GlobalFlagsValidator.
func AqCommandValidator(ctx context.Context, cmd *cli.Command) error {
	return GlobalFlagsValidator(ctx, cmd)
}
