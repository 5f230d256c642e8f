// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"sort"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/xeroctlgo/internal/meta"
	"github.com/staranto/xeroctlgo/internal/xero"
)

// RqCommandAction is the action handler for the "rq" subcommand. It runs one
// of the financial reports and emits the flattened rows per common flags.
// Report columns vary by report and date range, so when no --attrs is given
// the attribute list is derived from the first row.
func RqCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "rq") {
		return nil
	}

	client, err := InitClient(ctx, cmd)
	if err != nil {
		return err
	}

	var report xero.Report
	switch cmd.String("report") {
	case "bs":
		report, err = client.BalanceSheet(ctx, cmd.String("date"))
	case "tb":
		report, err = client.TrialBalance(ctx, cmd.String("date"))
	default:
		report, err = client.ProfitAndLoss(ctx, cmd.String("from"), cmd.String("to"))
	}
	if err != nil {
		return err
	}

	rows := xero.FlattenReport(report)

	defaults := cmd.String("attrs")
	if defaults == "" {
		defaults = reportColumns(rows)
	}
	attrs := BuildAttrs(cmd, defaults)
	log.Debugf("attrs: %v", attrs)

	if err := EmitJSONSlice(rows, attrs, cmd); err != nil {
		return err
	}

	return nil
}

// reportColumns builds an --attrs spec from the keys of the first flattened
// row. Section leads, the row type is dropped, the rest sort alphabetically.
func reportColumns(rows []map[string]any) string {
	if len(rows) == 0 {
		return "Section"
	}

	//nolint:prealloc
	var columns []string
	for key := range rows[0] {
		if key == "Section" || key == "RowType" {
			continue
		}
		columns = append(columns, key)
	}
	sort.Strings(columns)

	spec := "Section:section"
	for _, column := range columns {
		spec += "," + column
	}
	return spec
}

// RqCommandBuilder constructs the cli.Command for "rq", configuring metadata,
// flags, and the associated action/validator.
func RqCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return (&QueryCommandBuilder{
		Name:      "rq",
		Usage:     "report query",
		UsageText: `xeroctl rq --report pnl|bs|tb [options]`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "date",
				Usage: "as-of date (2006-01-02) for bs/tb reports",
			},
			&cli.StringFlag{
				Name:  "from",
				Usage: "start date (2006-01-02) for the pnl report",
			},
			&cli.StringFlag{
				Name:    "report",
				Aliases: []string{"r"},
				Usage:   "report to run",
				Value:   "pnl",
				Validator: func(value string) error {
					return FlagValidators(value, ReportValidator)
				},
			},
			&cli.StringFlag{
				Name:  "to",
				Usage: "end date (2006-01-02) for the pnl report",
			},
		},
		Action: RqCommandAction,
		Meta:   meta,
	}).Build()
}

// RqCommandValidator performs validation for "rq" and delegates shared checks
// to GlobalFlagsValidator.
func RqCommandValidator(ctx context.Context, cmd *cli.Command) error {
	return GlobalFlagsValidator(ctx, cmd)
}
