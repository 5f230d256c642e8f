// Copyright (c) 2025 Steve Taranto staranto@gmail.com.
// SPDX-License-Identifier: Apache-2.0

package xero

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for configuration and tenant resolution. These enable
// callers to detect specific conditions via errors.Is/As while keeping
// messages consistent.
var (
	ErrClientIDNotSet     = errors.New("client id is not set")
	ErrClientSecretNotSet = errors.New("client secret is not set")
	ErrNoConnections      = errors.New("no Xero connections for this app")
	ErrTenantNotFound     = errors.New("tenant not found among connections")
	ErrAmbiguousTenant    = errors.New("multiple tenants connected and none selected")
)

// APIError is a non-2xx response from the API, with whatever detail the body
// carried plus the correlation id Xero returns for support lookups.
type APIError struct {
	StatusCode    int
	Message       string
	CorrelationID string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("xero: HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("xero: HTTP %d: %s", e.StatusCode, e.Message)
}

// ErrorContext carries the who/what of a failed call so FriendlyXero can
// produce a message an operator can act on without reading code.
type ErrorContext struct {
	Tenant    string
	Operation string
	Resource  string
}

// FriendlyXero decorates an API error with operator guidance keyed off the
// status class. Non-API errors pass through with the operation prefix only.
func FriendlyXero(err error, ctxErr ErrorContext) error {
	if err == nil {
		return nil
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return fmt.Errorf("failed to %s: %w", ctxErr.Operation, err)
	}

	switch apiErr.StatusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf(
			"failed to %s: token rejected. Check auth.client_id/auth.client_secret and that the app's scopes cover %s: %w",
			ctxErr.Operation, ctxErr.Resource, err)
	case http.StatusForbidden:
		return fmt.Errorf(
			"failed to %s: tenant %s refused the request. The connection may have been removed or the scope is not granted: %w",
			ctxErr.Operation, ctxErr.Tenant, err)
	case http.StatusNotFound:
		return fmt.Errorf(
			"failed to %s: %s not found in tenant %s: %w",
			ctxErr.Operation, ctxErr.Resource, ctxErr.Tenant, err)
	case http.StatusTooManyRequests:
		return fmt.Errorf(
			"failed to %s: rate limited by Xero. Wait a minute and retry, or narrow the query: %w",
			ctxErr.Operation, err)
	default:
		return fmt.Errorf("failed to %s: %w", ctxErr.Operation, err)
	}
}
