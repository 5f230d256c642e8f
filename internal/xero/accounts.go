// Copyright (c) 2025 Steve Taranto staranto@gmail.com.
// SPDX-License-Identifier: Apache-2.0

package xero

import (
	"context"
	"net/url"

	"github.com/staranto/xeroctlgo/internal/cache"
)

// AccountListOptions narrow a chart-of-accounts query. The endpoint is not
// paginated; a chart of accounts tops out in the hundreds.
type AccountListOptions struct {
	Where string
}

// ListAccounts reads /Accounts. The chart changes rarely, so entries get an
// hour regardless of the cache default.
func (c *Client) ListAccounts(ctx context.Context, opts AccountListOptions) ([]Account, error) {
	params := map[string]any{
		"where": opt(opts.Where),
	}

	return cachedFetch(ctx, c, "accounts:list", params, cache.OneHour,
		func(ctx context.Context) ([]Account, error) {
			query := url.Values{}
			if opts.Where != "" {
				query.Set("where", opts.Where)
			}

			var resp accountsResponse
			if err := c.get(ctx, "/Accounts", query, &resp); err != nil {
				return nil, FriendlyXero(err, c.errCtx("list accounts", "account"))
			}
			return resp.Accounts, nil
		})
}
