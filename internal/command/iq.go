// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"reflect"

	"github.com/apex/log"
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/xeroctlgo/internal/meta"
	"github.com/staranto/xeroctlgo/internal/xero"
)

// IqCommandAction is the action handler for the "iq" subcommand. It lists
// invoices for the selected tenant, supports --tldr/--schema short-circuits,
// and emits results per common flags.
func IqCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	// Bail out early if we're just dumping tldr.
	if ShortCircuitTLDR(ctx, cmd, "iq") {
		return nil
	}

	// Bail out early if we're just dumping the schema.
	if DumpSchemaIfRequested(cmd, reflect.TypeOf(xero.Invoice{})) {
		return nil
	}

	attrs := BuildAttrs(cmd,
		"InvoiceNumber:number", "Contact.Name:contact", "Date:date",
		"DueDate:due", "Status:status", "AmountDue:due-amt", "Total:total")
	log.Debugf("attrs: %v", attrs)

	client, err := InitClient(ctx, cmd)
	if err != nil {
		return err
	}

	results, err := client.ListInvoices(ctx, xero.InvoiceListOptions{
		Statuses:  splitCSV(cmd.String("status")),
		Where:     cmd.String("where"),
		ContactID: cmd.String("contact"),
		Limit:     cmd.Int("limit"),
	})
	if err != nil {
		return err
	}

	if err := EmitJSONSlice(results, attrs, cmd); err != nil {
		return err
	}

	return nil
}

// IqCommandBuilder constructs the cli.Command for "iq", wiring metadata,
// flags, and action/validator handlers.
func IqCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "iq",
		Usage:     "invoice query",
		UsageText: `xeroctl iq [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append(append([]cli.Flag{
			&cli.StringFlag{
				Name:  "contact",
				Usage: "limit invoices to a contact id",
			},
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"l"},
				Usage:   "limit invoices returned",
				Sources: cli.NewValueSourceChain(
					yaml.YAML("iq.limit", altsrc.StringSourcer(meta.Config.Source)),
					yaml.YAML("limit", altsrc.StringSourcer(meta.Config.Source)),
				),
				Value: 99999,
			},
			&cli.StringFlag{
				Name:  "status",
				Usage: "comma-separated invoice statuses (DRAFT, AUTHORISED, PAID, ...)",
			},
			&cli.StringFlag{
				Name:  "where",
				Usage: "server-side where clause",
			},
			NewTenantFlag("iq", meta.Config.Source),
			tldrFlag,
			schemaFlag,
		}, NewAuthFlags("iq", meta.Config.Source)...),
			NewGlobalFlags("iq")...),
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := IqCommandValidator(ctx, c); err != nil {
				return err
			}
			return IqCommandAction(ctx, c)
		},
	}
}

// IqCommandValidator performs validation for "iq" and delegates to
// GlobalFlagsValidator.
func IqCommandValidator(ctx context.Context, cmd *cli.Command) error {
	return GlobalFlagsValidator(ctx, cmd)
}
