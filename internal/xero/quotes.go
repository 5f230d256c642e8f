// Copyright (c) 2025 Steve Taranto staranto@gmail.com.
// SPDX-License-Identifier: Apache-2.0

package xero

import (
	"context"
	"net/url"
	"strconv"
)

// QuoteListOptions narrow a quote query.
type QuoteListOptions struct {
	Status    string
	ContactID string
	Limit     int
}

// ListQuotes pages through /Quotes and caches the assembled result.
func (c *Client) ListQuotes(ctx context.Context, opts QuoteListOptions) ([]Quote, error) {
	params := map[string]any{
		"status":  opt(opts.Status),
		"contact": opt(opts.ContactID),
		"limit":   optInt(opts.Limit),
	}

	return cachedFetch(ctx, c, "quotes:list", params, 0,
		func(ctx context.Context) ([]Quote, error) {
			return paginate(ctx, opts.Limit, func(ctx context.Context, page int) ([]Quote, error) {
				query := url.Values{}
				query.Set("page", strconv.Itoa(page))
				if opts.Status != "" {
					query.Set("Status", opts.Status)
				}
				if opts.ContactID != "" {
					query.Set("ContactID", opts.ContactID)
				}

				var resp quotesResponse
				if err := c.get(ctx, "/Quotes", query, &resp); err != nil {
					return nil, FriendlyXero(err, c.errCtx("list quotes", "quote"))
				}
				return resp.Quotes, nil
			})
		})
}
