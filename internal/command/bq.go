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

// BqCommandAction is the action handler for the "bq" subcommand. It lists
// bank transactions for the selected tenant.
func BqCommandAction(ctx context.Context, cmd *cli.Command) error {
	runner := &QueryActionRunner[xero.BankTransaction]{
		CommandName:  "bq",
		SchemaType:   reflect.TypeOf(xero.BankTransaction{}),
		DefaultAttrs: []string{"Date:date", "Type:type", "Contact.Name:contact", "BankAccount.Name:account", "Total:total", "IsReconciled:reconciled"},
		FetchFn: func(ctx context.Context, cmd *cli.Command) ([]xero.BankTransaction, error) {
			client, err := InitClient(ctx, cmd)
			if err != nil {
				return nil, err
			}
			return client.ListBankTransactions(ctx, xero.BankTransactionListOptions{
				Where: cmd.String("where"),
				Limit: cmd.Int("limit"),
			})
		},
	}
	return runner.Run(ctx, cmd)
}

// BqCommandBuilder constructs the cli.Command for "bq", configuring metadata,
// flags, and the associated action/validator.
func BqCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return (&QueryCommandBuilder{
		Name:      "bq",
		Usage:     "bank transaction query",
		UsageText: `xeroctl bq [options]`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"l"},
				Usage:   "limit bank transactions returned",
				Value:   99999,
			},
			&cli.StringFlag{
				Name:  "where",
				Usage: "server-side where clause",
			},
		},
		Action: BqCommandAction,
		Meta:   meta,
	}).Build()
}

// BqCommandValidator performs validation for "bq" and delegates shared checks
// to GlobalFlagsValidator.
func BqCommandValidator(ctx context.Context, cmd *cli.Command) error {
	return GlobalFlagsValidator(ctx, cmd)
}
