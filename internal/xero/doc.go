// Copyright (c) 2025 Steve Taranto staranto@gmail.com.
// SPDX-License-Identifier: Apache-2.0

// Package xero implements the client for the Xero accounting API. It handles
// client-credential token refresh, tenant resolution, paginated queries, and
// read-through caching of GET responses.
package xero
