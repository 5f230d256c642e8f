// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/xeroctlgo/internal/meta"
	"github.com/staranto/xeroctlgo/internal/xero"
)

// IaCommandAction is the action handler for the "ia" subcommand. It creates
// an invoice from a JSON document (file or stdin with -) and emits the
// created record. Cached invoice reads are evicted by the client after the
// write.
func IaCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "ia") {
		return nil
	}

	path := cmd.String("file")
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("failed to read invoice document: %w", err)
	}

	var invoice xero.Invoice
	if err := json.Unmarshal(data, &invoice); err != nil {
		return fmt.Errorf("failed to parse invoice document: %w", err)
	}
	if invoice.Type == "" {
		invoice.Type = "ACCREC"
	}

	client, err := InitClient(ctx, cmd)
	if err != nil {
		return err
	}

	created, err := client.CreateInvoice(ctx, invoice)
	if err != nil {
		return err
	}

	attrs := BuildAttrs(cmd, "InvoiceID:id", "InvoiceNumber:number", "Status:status", "Total:total")
	return EmitJSONSlice([]xero.Invoice{created}, attrs, cmd)
}

// IaCommandBuilder constructs the cli.Command for "ia", wiring metadata,
// flags, and action/validator handlers.
func IaCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return (&QueryCommandBuilder{
		Name:      "ia",
		Usage:     "invoice add",
		UsageText: `xeroctl ia --file invoice.json [options]`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Usage:    "JSON invoice document, - for stdin",
				Required: true,
			},
		},
		Action: IaCommandAction,
		Meta:   meta,
	}).Build()
}

// IaCommandValidator performs validation for "ia" and delegates to
// GlobalFlagsValidator.
func IaCommandValidator(ctx context.Context, cmd *cli.Command) error {
	return GlobalFlagsValidator(ctx, cmd)
}
