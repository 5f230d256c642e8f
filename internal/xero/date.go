// Copyright (c) 2025 Steve Taranto staranto@gmail.com.
// SPDX-License-Identifier: Apache-2.0

package xero

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// msDateRegex matches the legacy Microsoft JSON date encoding the accounting
// endpoints still emit: /Date(1518685950940+0000)/ with an optional zone.
var msDateRegex = regexp.MustCompile(`^/Date\((-?\d+)([+-]\d{4})?\)/$`)

// Date wraps time.Time and accepts the three encodings Xero uses: RFC3339,
// bare dates (2018-02-15) and the /Date(ms)/ form.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		d.Time = time.Time{}
		return nil
	}

	// Decode the JSON string first; the MS form arrives with escaped
	// slashes (\/Date(...)\/) that a raw trim would leave in place.
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date is not a JSON string: %w", err)
	}
	if s == "" {
		d.Time = time.Time{}
		return nil
	}

	if m := msDateRegex.FindStringSubmatch(s); m != nil {
		ms, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid ms date %q: %w", s, err)
		}
		d.Time = time.UnixMilli(ms).UTC()
		return nil
	}

	for _, layout := range []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}

	return fmt.Errorf("unrecognized date format: %q", s)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.UTC().Format("2006-01-02T15:04:05") + `"`), nil
}
