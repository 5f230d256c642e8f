// Copyright (c) 2025 Steve Taranto staranto@gmail.com.
// SPDX-License-Identifier: Apache-2.0

package xero

import "strings"

// Helpers that map zero values to nil so cache.Key drops them. Two calls
// that differ only in unset options must land on the same cache entry.

func opt(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func optInt(value int) any {
	if value <= 0 {
		return nil
	}
	return value
}

func optSlice(values []string) any {
	if len(values) == 0 {
		return nil
	}
	return strings.Join(values, ",")
}
