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

// CqCommandAction is the action handler for the "cq" subcommand. It lists
// contacts for the selected tenant, supports --tldr/--schema short-circuit
// behavior, and emits output per common flags.
func CqCommandAction(ctx context.Context, cmd *cli.Command) error {
	runner := &QueryActionRunner[xero.Contact]{
		CommandName:  "cq",
		SchemaType:   reflect.TypeOf(xero.Contact{}),
		DefaultAttrs: []string{"Name:name", "EmailAddress:email", "ContactStatus:status", "IsCustomer:customer", "IsSupplier:supplier"},
		FetchFn: func(ctx context.Context, cmd *cli.Command) ([]xero.Contact, error) {
			client, err := InitClient(ctx, cmd)
			if err != nil {
				return nil, err
			}
			return client.ListContacts(ctx, xero.ContactListOptions{
				Where:      cmd.String("where"),
				SearchTerm: cmd.String("search"),
				Limit:      cmd.Int("limit"),
			})
		},
	}
	return runner.Run(ctx, cmd)
}

// CqCommandBuilder constructs the cli.Command for "cq", configuring metadata,
// flags, and the associated action/validator.
func CqCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return (&QueryCommandBuilder{
		Name:      "cq",
		Usage:     "contact query",
		UsageText: `xeroctl cq [options]`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"l"},
				Usage:   "limit contacts returned",
				Value:   99999,
			},
			&cli.StringFlag{
				Name:  "search",
				Usage: "free-text search across name, number and email",
			},
			&cli.StringFlag{
				Name:  "where",
				Usage: "server-side where clause",
			},
		},
		Action: CqCommandAction,
		Meta:   meta,
	}).Build()
}

// CqCommandValidator performs validation for "cq" and delegates shared checks
// to GlobalFlagsValidator.
func CqCommandValidator(ctx context.Context, cmd *cli.Command) error {
	return GlobalFlagsValidator(ctx, cmd)
}
