// Copyright (c) 2025 Steve Taranto staranto@gmail.com.
// SPDX-License-Identifier: Apache-2.0

package xero

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// InvoiceListOptions narrow an invoice query. Where uses the API's filter
// syntax verbatim (Status=="AUTHORISED" AND Date>=DateTime(2025,1,1)).
type InvoiceListOptions struct {
	Statuses  []string
	Where     string
	ContactID string
	Limit     int
}

// ListInvoices pages through /Invoices and caches the assembled result.
func (c *Client) ListInvoices(ctx context.Context, opts InvoiceListOptions) ([]Invoice, error) {
	params := map[string]any{
		"statuses": optSlice(opts.Statuses),
		"where":    opt(opts.Where),
		"contact":  opt(opts.ContactID),
		"limit":    optInt(opts.Limit),
	}

	return cachedFetch(ctx, c, "invoices:list", params, 0,
		func(ctx context.Context) ([]Invoice, error) {
			return paginate(ctx, opts.Limit, func(ctx context.Context, page int) ([]Invoice, error) {
				query := url.Values{}
				query.Set("page", strconv.Itoa(page))
				if opts.Where != "" {
					query.Set("where", opts.Where)
				}
				if len(opts.Statuses) > 0 {
					query.Set("Statuses", strings.Join(opts.Statuses, ","))
				}
				if opts.ContactID != "" {
					query.Set("ContactIDs", opts.ContactID)
				}

				var resp invoicesResponse
				if err := c.get(ctx, "/Invoices", query, &resp); err != nil {
					return nil, FriendlyXero(err, c.errCtx("list invoices", "invoice"))
				}
				return resp.Invoices, nil
			})
		})
}

// GetInvoice reads a single invoice by id or invoice number.
func (c *Client) GetInvoice(ctx context.Context, id string) (Invoice, error) {
	return cachedFetch(ctx, c, "invoices:get", map[string]any{"id": id}, 0,
		func(ctx context.Context) (Invoice, error) {
			var resp invoicesResponse
			if err := c.get(ctx, "/Invoices/"+url.PathEscape(id), nil, &resp); err != nil {
				return Invoice{}, FriendlyXero(err, c.errCtx("read invoice", "invoice"))
			}
			if len(resp.Invoices) == 0 {
				return Invoice{}, fmt.Errorf("invoice %s not in response", id)
			}
			return resp.Invoices[0], nil
		})
}

// CreateInvoice creates an invoice and evicts every cached invoice read.
func (c *Client) CreateInvoice(ctx context.Context, invoice Invoice) (Invoice, error) {
	var resp invoicesResponse
	if err := c.put(ctx, "/Invoices", invoicesResponse{Invoices: []Invoice{invoice}}, &resp); err != nil {
		return Invoice{}, FriendlyXero(err, c.errCtx("create invoice", "invoice"))
	}
	if len(resp.Invoices) == 0 {
		return Invoice{}, fmt.Errorf("create invoice returned no invoice")
	}

	c.cfg.Cache.InvalidatePrefix("invoices")
	return resp.Invoices[0], nil
}
