// Copyright (c) 2025 Steve Taranto staranto@gmail.com.
// SPDX-License-Identifier: Apache-2.0

package xero

import (
	"context"
	"fmt"

	"github.com/staranto/xeroctlgo/internal/cache"
)

// Organisation reads the tenant's organisation record. It changes about as
// often as the company renames itself, so it gets a day.
func (c *Client) Organisation(ctx context.Context) (Organisation, error) {
	return cachedFetch(ctx, c, "organisation", nil, cache.OneDay,
		func(ctx context.Context) (Organisation, error) {
			var resp organisationsResponse
			if err := c.get(ctx, "/Organisation", nil, &resp); err != nil {
				return Organisation{}, FriendlyXero(err, c.errCtx("read organisation", "organisation"))
			}
			if len(resp.Organisations) == 0 {
				return Organisation{}, fmt.Errorf("organisation not in response")
			}
			return resp.Organisations[0], nil
		})
}
