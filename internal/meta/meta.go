// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package meta

import (
	"context"

	"github.com/staranto/xeroctlgo/internal/cache"
	"github.com/staranto/xeroctlgo/internal/config"
)

// Meta are the meta-options that are available on all or most commands.
// Cache is the single shared instance every command reads and writes
// through; commands never construct their own.
type Meta struct {
	Args        []string
	Cache       *cache.Cache
	Config      config.Type
	Context     context.Context
	StartingDir string
}
