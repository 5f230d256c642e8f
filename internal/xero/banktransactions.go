// Copyright (c) 2025 Steve Taranto staranto@gmail.com.
// SPDX-License-Identifier: Apache-2.0

package xero

import (
	"context"
	"net/url"
	"strconv"
)

// BankTransactionListOptions narrow a bank transaction query.
type BankTransactionListOptions struct {
	Where string
	Limit int
}

// ListBankTransactions pages through /BankTransactions and caches the
// assembled result.
func (c *Client) ListBankTransactions(ctx context.Context, opts BankTransactionListOptions) ([]BankTransaction, error) {
	params := map[string]any{
		"where": opt(opts.Where),
		"limit": optInt(opts.Limit),
	}

	return cachedFetch(ctx, c, "banktransactions:list", params, 0,
		func(ctx context.Context) ([]BankTransaction, error) {
			return paginate(ctx, opts.Limit, func(ctx context.Context, page int) ([]BankTransaction, error) {
				query := url.Values{}
				query.Set("page", strconv.Itoa(page))
				if opts.Where != "" {
					query.Set("where", opts.Where)
				}

				var resp bankTransactionsResponse
				if err := c.get(ctx, "/BankTransactions", query, &resp); err != nil {
					return nil, FriendlyXero(err, c.errCtx("list bank transactions", "banktransaction"))
				}
				return resp.BankTransactions, nil
			})
		})
}
