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

// QqCommandAction is the action handler for the "qq" subcommand. It lists
// quotes for the selected tenant.
func QqCommandAction(ctx context.Context, cmd *cli.Command) error {
	runner := &QueryActionRunner[xero.Quote]{
		CommandName:  "qq",
		SchemaType:   reflect.TypeOf(xero.Quote{}),
		DefaultAttrs: []string{"QuoteNumber:number", "Contact.Name:contact", "Date:date", "ExpiryDate:expiry", "Status:status", "Total:total"},
		FetchFn: func(ctx context.Context, cmd *cli.Command) ([]xero.Quote, error) {
			client, err := InitClient(ctx, cmd)
			if err != nil {
				return nil, err
			}
			return client.ListQuotes(ctx, xero.QuoteListOptions{
				Status:    cmd.String("status"),
				ContactID: cmd.String("contact"),
				Limit:     cmd.Int("limit"),
			})
		},
	}
	return runner.Run(ctx, cmd)
}

// QqCommandBuilder constructs the cli.Command for "qq", configuring metadata,
// flags, and the associated action/validator.
func QqCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return (&QueryCommandBuilder{
		Name:      "qq",
		Usage:     "quote query",
		UsageText: `xeroctl qq [options]`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "contact",
				Usage: "limit quotes to a contact id",
			},
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"l"},
				Usage:   "limit quotes returned",
				Value:   99999,
			},
			&cli.StringFlag{
				Name:  "status",
				Usage: "quote status (DRAFT, SENT, ACCEPTED, ...)",
			},
		},
		Action: QqCommandAction,
		Meta:   meta,
	}).Build()
}

// QqCommandValidator performs validation for "qq" and delegates shared checks
// to GlobalFlagsValidator.
func QqCommandValidator(ctx context.Context, cmd *cli.Command) error {
	return GlobalFlagsValidator(ctx, cmd)
}
