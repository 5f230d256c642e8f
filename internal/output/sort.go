// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"sort"
	"strings"
)

// SortDataset sorts the result set in place per the --sort spec. The spec is
// a comma-separated list of output keys; a leading - sorts that key
// descending and a leading ! makes the string compare case-sensitive.
// Numeric values compare numerically, everything else as strings.
func SortDataset(resultSet []map[string]interface{}, spec string) {
	if spec == "" || len(resultSet) < 2 {
		return
	}

	type sortKey struct {
		key           string
		descending    bool
		caseSensitive bool
	}

	//nolint:prealloc
	var keys []sortKey
	for _, raw := range strings.Split(spec, ",") {
		raw = strings.TrimSpace(raw)

		sk := sortKey{}
		for {
			switch {
			case strings.HasPrefix(raw, "-"):
				sk.descending = true
				raw = raw[1:]
				continue
			case strings.HasPrefix(raw, "!"):
				sk.caseSensitive = true
				raw = raw[1:]
				continue
			}
			break
		}

		if raw == "" {
			continue
		}
		sk.key = raw
		keys = append(keys, sk)
	}

	if len(keys) == 0 {
		return
	}

	sort.SliceStable(resultSet, func(i, j int) bool {
		for _, sk := range keys {
			cmp := compareValues(resultSet[i][sk.key], resultSet[j][sk.key], sk.caseSensitive)
			if cmp == 0 {
				continue
			}
			if sk.descending {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	})
}

// compareValues orders two cell values. Nils sort last so missing attributes
// end up at the bottom of the table regardless of direction.
func compareValues(a, b interface{}, caseSensitive bool) int {
	if a == nil && b == nil {
		return 0
	}
	if a == nil {
		return 1
	}
	if b == nil {
		return -1
	}

	af, aok := a.(float64)
	bf, bok := b.(float64)
	if aok && bok {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}

	as := InterfaceToString(a)
	bs := InterfaceToString(b)
	if !caseSensitive {
		as = strings.ToLower(as)
		bs = strings.ToLower(bs)
	}
	return strings.Compare(as, bs)
}
