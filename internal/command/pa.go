// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"time"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/xeroctlgo/internal/meta"
	"github.com/staranto/xeroctlgo/internal/xero"
)

// PaCommandAction is the action handler for the "pa" subcommand. It applies
// a payment to an invoice. The write invalidates both cached payment reads
// and cached invoice reads, since the invoice's AmountDue changed.
func PaCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "pa") {
		return nil
	}

	payment := xero.Payment{
		Invoice: &xero.Invoice{InvoiceID: cmd.String("invoice")},
		Account: &xero.Account{Code: cmd.String("account")},
		Amount:  cmd.Float("amount"),
	}

	if date := cmd.String("date"); date != "" {
		t, err := time.Parse("2006-01-02", date)
		if err != nil {
			return err
		}
		payment.Date = xero.Date{Time: t}
	}

	client, err := InitClient(ctx, cmd)
	if err != nil {
		return err
	}

	created, err := client.CreatePayment(ctx, payment)
	if err != nil {
		return err
	}

	attrs := BuildAttrs(cmd, "PaymentID:id", "Date:date", "Amount:amount", "Status:status")
	return EmitJSONSlice([]xero.Payment{created}, attrs, cmd)
}

// PaCommandBuilder constructs the cli.Command for "pa", wiring metadata,
// flags, and action/validator handlers.
func PaCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return (&QueryCommandBuilder{
		Name:      "pa",
		Usage:     "payment add",
		UsageText: `xeroctl pa --invoice ID --account CODE --amount N [options]`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "account",
				Usage:    "account code to pay from",
				Required: true,
			},
			&cli.FloatFlag{
				Name:     "amount",
				Usage:    "payment amount",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "date",
				Usage: "payment date (2006-01-02), defaults to today",
			},
			&cli.StringFlag{
				Name:     "invoice",
				Usage:    "invoice id to pay",
				Required: true,
			},
		},
		Action: PaCommandAction,
		Meta:   meta,
	}).Build()
}

// PaCommandValidator performs validation for "pa" and delegates to
// GlobalFlagsValidator.
func PaCommandValidator(ctx context.Context, cmd *cli.Command) error {
	return GlobalFlagsValidator(ctx, cmd)
}
