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

// PqCommandAction is the action handler for the "pq" subcommand. It lists
// payments for the selected tenant.
func PqCommandAction(ctx context.Context, cmd *cli.Command) error {
	runner := &QueryActionRunner[xero.Payment]{
		CommandName:  "pq",
		SchemaType:   reflect.TypeOf(xero.Payment{}),
		DefaultAttrs: []string{"Date:date", "Invoice.InvoiceNumber:invoice", "Account.Code:account", "Amount:amount", "Status:status"},
		FetchFn: func(ctx context.Context, cmd *cli.Command) ([]xero.Payment, error) {
			client, err := InitClient(ctx, cmd)
			if err != nil {
				return nil, err
			}
			return client.ListPayments(ctx, xero.PaymentListOptions{
				Where: cmd.String("where"),
				Limit: cmd.Int("limit"),
			})
		},
	}
	return runner.Run(ctx, cmd)
}

// PqCommandBuilder constructs the cli.Command for "pq", configuring metadata,
// flags, and the associated action/validator.
func PqCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return (&QueryCommandBuilder{
		Name:      "pq",
		Usage:     "payment query",
		UsageText: `xeroctl pq [options]`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"l"},
				Usage:   "limit payments returned",
				Value:   99999,
			},
			&cli.StringFlag{
				Name:  "where",
				Usage: "server-side where clause",
			},
		},
		Action: PqCommandAction,
		Meta:   meta,
	}).Build()
}

// PqCommandValidator performs validation for "pq" and delegates shared checks
// to GlobalFlagsValidator.
func PqCommandValidator(ctx context.Context, cmd *cli.Command) error {
	return GlobalFlagsValidator(ctx, cmd)
}
