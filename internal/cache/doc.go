// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package cache provides a namespaced in-memory read-through cache with
// per-entry TTLs, hit/miss accounting, and pattern invalidation. It exists to
// avoid repeated round trips to the Xero API within a single invocation and
// across long-lived callers.
package cache
