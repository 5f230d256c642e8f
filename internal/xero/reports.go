// Copyright (c) 2025 Steve Taranto staranto@gmail.com.
// SPDX-License-Identifier: Apache-2.0

package xero

import (
	"context"
	"fmt"
	"net/url"
)

// ProfitAndLoss reads the P&L report for a date range (dates as 2006-01-02;
// empty means the API default period).
func (c *Client) ProfitAndLoss(ctx context.Context, from, to string) (Report, error) {
	params := map[string]any{
		"from": opt(from),
		"to":   opt(to),
	}

	return cachedFetch(ctx, c, "reports:pnl", params, 0,
		func(ctx context.Context) (Report, error) {
			query := url.Values{}
			if from != "" {
				query.Set("fromDate", from)
			}
			if to != "" {
				query.Set("toDate", to)
			}
			return c.readReport(ctx, "/Reports/ProfitAndLoss", query)
		})
}

// BalanceSheet reads the balance sheet as of a date.
func (c *Client) BalanceSheet(ctx context.Context, date string) (Report, error) {
	return cachedFetch(ctx, c, "reports:bs", map[string]any{"date": opt(date)}, 0,
		func(ctx context.Context) (Report, error) {
			query := url.Values{}
			if date != "" {
				query.Set("date", date)
			}
			return c.readReport(ctx, "/Reports/BalanceSheet", query)
		})
}

// TrialBalance reads the trial balance as of a date.
func (c *Client) TrialBalance(ctx context.Context, date string) (Report, error) {
	return cachedFetch(ctx, c, "reports:tb", map[string]any{"date": opt(date)}, 0,
		func(ctx context.Context) (Report, error) {
			query := url.Values{}
			if date != "" {
				query.Set("date", date)
			}
			return c.readReport(ctx, "/Reports/TrialBalance", query)
		})
}

func (c *Client) readReport(ctx context.Context, path string, query url.Values) (Report, error) {
	var resp reportsResponse
	if err := c.get(ctx, path, query, &resp); err != nil {
		return Report{}, FriendlyXero(err, c.errCtx("read report", "report"))
	}
	if len(resp.Reports) == 0 {
		return Report{}, fmt.Errorf("report not in response")
	}
	return resp.Reports[0], nil
}

// FlattenReport turns the nested section/row structure into flat rows the
// output pipeline can slice like any other dataset. Header cells name the
// columns; section titles are carried onto each detail row.
func FlattenReport(report Report) []map[string]any {
	var columns []string
	for _, row := range report.Rows {
		if row.RowType == "Header" {
			for i, cell := range row.Cells {
				name := cell.Value
				if name == "" {
					name = fmt.Sprintf("Column%d", i)
				}
				columns = append(columns, name)
			}
			break
		}
	}

	var flat []map[string]any
	var walk func(rows []ReportRow, section string)
	walk = func(rows []ReportRow, section string) {
		for _, row := range rows {
			switch row.RowType {
			case "Header":
				// Consumed above.
			case "Section":
				title := section
				if row.Title != "" {
					title = row.Title
				}
				walk(row.Rows, title)
			default:
				entry := map[string]any{"Section": section, "RowType": row.RowType}
				for i, cell := range row.Cells {
					key := fmt.Sprintf("Column%d", i)
					if i < len(columns) {
						key = columns[i]
					}
					entry[key] = cell.Value
				}
				flat = append(flat, entry)
			}
		}
	}
	walk(report.Rows, "")

	return flat
}
