// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/xeroctlgo/internal/meta"
	"github.com/staranto/xeroctlgo/internal/xero"
)

// CaCommandAction is the action handler for the "ca" subcommand. It creates
// a contact and emits the created record. Cached contact reads are evicted
// by the client after the write.
func CaCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "ca") {
		return nil
	}

	client, err := InitClient(ctx, cmd)
	if err != nil {
		return err
	}

	created, err := client.CreateContact(ctx, xero.Contact{
		Name:         cmd.String("name"),
		FirstName:    cmd.String("first"),
		LastName:     cmd.String("last"),
		EmailAddress: cmd.String("email"),
	})
	if err != nil {
		return err
	}

	attrs := BuildAttrs(cmd, "ContactID:id", "Name:name", "EmailAddress:email", "ContactStatus:status")
	return EmitJSONSlice([]xero.Contact{created}, attrs, cmd)
}

// CaCommandBuilder constructs the cli.Command for "ca", wiring metadata,
// flags, and action/validator handlers.
func CaCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return (&QueryCommandBuilder{
		Name:      "ca",
		Usage:     "contact add",
		UsageText: `xeroctl ca --name NAME [options]`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "email",
				Usage: "contact email address",
			},
			&cli.StringFlag{
				Name:  "first",
				Usage: "contact first name",
			},
			&cli.StringFlag{
				Name:  "last",
				Usage: "contact last name",
			},
			&cli.StringFlag{
				Name:     "name",
				Usage:    "contact name",
				Required: true,
				Validator: func(value string) error {
					return FlagValidators(value, JammedFlagValidator)
				},
			},
		},
		Action: CaCommandAction,
		Meta:   meta,
	}).Build()
}

// CaCommandValidator performs validation for "ca" and delegates to
// GlobalFlagsValidator.
func CaCommandValidator(ctx context.Context, cmd *cli.Command) error {
	return GlobalFlagsValidator(ctx, cmd)
}
