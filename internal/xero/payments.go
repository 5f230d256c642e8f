// Copyright (c) 2025 Steve Taranto staranto@gmail.com.
// SPDX-License-Identifier: Apache-2.0

package xero

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// PaymentListOptions narrow a payment query.
type PaymentListOptions struct {
	Where string
	Limit int
}

// ListPayments pages through /Payments and caches the assembled result.
func (c *Client) ListPayments(ctx context.Context, opts PaymentListOptions) ([]Payment, error) {
	params := map[string]any{
		"where": opt(opts.Where),
		"limit": optInt(opts.Limit),
	}

	return cachedFetch(ctx, c, "payments:list", params, 0,
		func(ctx context.Context) ([]Payment, error) {
			return paginate(ctx, opts.Limit, func(ctx context.Context, page int) ([]Payment, error) {
				query := url.Values{}
				query.Set("page", strconv.Itoa(page))
				if opts.Where != "" {
					query.Set("where", opts.Where)
				}

				var resp paymentsResponse
				if err := c.get(ctx, "/Payments", query, &resp); err != nil {
					return nil, FriendlyXero(err, c.errCtx("list payments", "payment"))
				}
				return resp.Payments, nil
			})
		})
}

// CreatePayment applies a payment to an invoice. Both the payment and
// invoice key families go stale (AmountDue/AmountPaid change), so both are
// evicted.
func (c *Client) CreatePayment(ctx context.Context, payment Payment) (Payment, error) {
	var resp paymentsResponse
	if err := c.put(ctx, "/Payments", paymentsResponse{Payments: []Payment{payment}}, &resp); err != nil {
		return Payment{}, FriendlyXero(err, c.errCtx("create payment", "payment"))
	}
	if len(resp.Payments) == 0 {
		return Payment{}, fmt.Errorf("create payment returned no payment")
	}

	c.cfg.Cache.InvalidatePrefix("payments")
	c.cfg.Cache.InvalidatePrefix("invoices")
	return resp.Payments[0], nil
}
