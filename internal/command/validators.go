// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/staranto/xeroctlgo/internal/cache"
)

func GlobalFlagsValidator(ctx context.Context, c *cli.Command) error {
	return nil
}

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// JammedFlagValidator verifies that the arg following a flag does not begin
// with '--'.  urfave/cli allows this and I don't see how to turn it off.
func JammedFlagValidator(value any) error {
	if strings.HasPrefix(value.(string), "--") {
		return errors.New("must not begin with '--'")
	}
	return nil
}

func MustBeTrueValidator(value any) error {
	if !value.(bool) {
		return errors.New("must be true")
	}
	return nil
}

func OutputValidator(value any) error {
	var validOutputFlagValues = []string{"text", "json", "raw", "yaml"}
	valid := false
	for _, v := range validOutputFlagValues {
		if v == value {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("must be one of %v", validOutputFlagValues)
	}
	return nil
}

// TTLValidator accepts a named TTL preset or anything time.ParseDuration
// understands.
func TTLValidator(value any) error {
	s := value.(string)
	if s == "" {
		return nil
	}
	if _, ok := cache.PresetTTL(s); ok {
		return nil
	}
	if _, err := time.ParseDuration(s); err == nil {
		return nil
	}
	return fmt.Errorf("must be a TTL preset %v or a duration like 90s", cache.PresetNames())
}

// ReportValidator constrains --report to the supported report types.
func ReportValidator(value any) error {
	switch value {
	case "pnl", "bs", "tb":
		return nil
	}
	return errors.New("must be one of [pnl bs tb]")
}
