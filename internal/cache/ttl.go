// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package cache

import "time"

// Named TTL presets. Call sites and the config file use these instead of raw
// durations so that intent stays readable.
const (
	FiveMinutes = 5 * time.Minute
	OneHour     = time.Hour
	OneDay      = 24 * time.Hour
	SevenDays   = 7 * 24 * time.Hour
)

var presets = map[string]time.Duration{
	"five-minutes": FiveMinutes,
	"one-hour":     OneHour,
	"one-day":      OneDay,
	"seven-days":   SevenDays,
}

// PresetTTL resolves a preset name from config (cache.ttl: one-hour) to a
// duration. The second return is false for unknown names.
func PresetTTL(name string) (time.Duration, bool) {
	ttl, ok := presets[name]
	return ttl, ok
}

// PresetNames returns the preset names in a stable order, for help and
// validation messages.
func PresetNames() []string {
	return []string{"five-minutes", "one-hour", "one-day", "seven-days"}
}
