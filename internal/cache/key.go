// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package cache

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Key builds a deterministic cache key from an operation name and its
// parameters. Nil parameters are dropped and the rest are serialized in
// sorted field order, so two logically identical calls produce the same key
// no matter how the caller assembled the map. Composite values go through
// encoding/json, which also emits map keys in sorted order.
//
// Shapes: "list-invoices" (no params) or
// "list-invoices:page=1|status=AUTHORISED".
func Key(operation string, params map[string]any) string {
	if len(params) == 0 {
		return operation
	}

	names := make([]string, 0, len(params))
	for name, value := range params {
		if value == nil {
			continue
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return operation
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+"="+stringify(params[name]))
	}

	return operation + ":" + strings.Join(parts, "|")
}

func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	case bool, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, float32, float64:
		return fmt.Sprintf("%v", v)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(b)
	}
}
