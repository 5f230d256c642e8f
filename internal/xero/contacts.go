// Copyright (c) 2025 Steve Taranto staranto@gmail.com.
// SPDX-License-Identifier: Apache-2.0

package xero

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// ContactListOptions narrow a contact query. SearchTerm maps to the API's
// searchTerm parameter, which matches across name, email, and numbers.
type ContactListOptions struct {
	Where      string
	SearchTerm string
	Limit      int
}

// ListContacts pages through /Contacts and caches the assembled result.
func (c *Client) ListContacts(ctx context.Context, opts ContactListOptions) ([]Contact, error) {
	params := map[string]any{
		"where":  opt(opts.Where),
		"search": opt(opts.SearchTerm),
		"limit":  optInt(opts.Limit),
	}

	return cachedFetch(ctx, c, "contacts:list", params, 0,
		func(ctx context.Context) ([]Contact, error) {
			return paginate(ctx, opts.Limit, func(ctx context.Context, page int) ([]Contact, error) {
				query := url.Values{}
				query.Set("page", strconv.Itoa(page))
				if opts.Where != "" {
					query.Set("where", opts.Where)
				}
				if opts.SearchTerm != "" {
					query.Set("searchTerm", opts.SearchTerm)
				}

				var resp contactsResponse
				if err := c.get(ctx, "/Contacts", query, &resp); err != nil {
					return nil, FriendlyXero(err, c.errCtx("list contacts", "contact"))
				}
				return resp.Contacts, nil
			})
		})
}

// GetContact reads a single contact by id.
func (c *Client) GetContact(ctx context.Context, id string) (Contact, error) {
	return cachedFetch(ctx, c, "contacts:get", map[string]any{"id": id}, 0,
		func(ctx context.Context) (Contact, error) {
			var resp contactsResponse
			if err := c.get(ctx, "/Contacts/"+url.PathEscape(id), nil, &resp); err != nil {
				return Contact{}, FriendlyXero(err, c.errCtx("read contact", "contact"))
			}
			if len(resp.Contacts) == 0 {
				return Contact{}, fmt.Errorf("contact %s not in response", id)
			}
			return resp.Contacts[0], nil
		})
}

// CreateContact creates a contact and evicts every cached contact read.
func (c *Client) CreateContact(ctx context.Context, contact Contact) (Contact, error) {
	var resp contactsResponse
	if err := c.put(ctx, "/Contacts", contactsResponse{Contacts: []Contact{contact}}, &resp); err != nil {
		return Contact{}, FriendlyXero(err, c.errCtx("create contact", "contact"))
	}
	if len(resp.Contacts) == 0 {
		return Contact{}, fmt.Errorf("create contact returned no contact")
	}

	c.cfg.Cache.InvalidatePrefix("contacts")
	return resp.Contacts[0], nil
}

// UpdateContact updates an existing contact (ContactID required) and evicts
// every cached contact read.
func (c *Client) UpdateContact(ctx context.Context, contact Contact) (Contact, error) {
	if contact.ContactID == "" {
		return Contact{}, fmt.Errorf("update contact: ContactID is required")
	}

	var resp contactsResponse
	if err := c.post(ctx, "/Contacts/"+url.PathEscape(contact.ContactID),
		contactsResponse{Contacts: []Contact{contact}}, &resp); err != nil {
		return Contact{}, FriendlyXero(err, c.errCtx("update contact", "contact"))
	}
	if len(resp.Contacts) == 0 {
		return Contact{}, fmt.Errorf("update contact returned no contact")
	}

	c.cfg.Cache.InvalidatePrefix("contacts")
	return resp.Contacts[0], nil
}
