// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/xeroctlgo/internal/config"
)

func TestMangleArguments(t *testing.T) {
	t.Setenv("XEROCTL_CFG", "internal/config/testdata/namespaced.yaml")
	_, err := config.Load()
	require.NoError(t, err)

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "defaults inserted when no set given",
			args: []string{"xeroctl", "iq"},
			want: []string{"xeroctl", "iq", "--status", "AUTHORISED", "--titles"},
		},
		{
			name: "explicit set token removed and expanded",
			args: []string{"xeroctl", "iq", "@defaults", "--color"},
			want: []string{"xeroctl", "iq", "--status", "AUTHORISED", "--titles", "--color"},
		},
		{
			name: "help short-circuits",
			args: []string{"xeroctl", "iq", "--status", "PAID", "--help"},
			want: []string{"xeroctl", "iq", "--help"},
		},
		{
			name: "unknown set expands to nothing",
			args: []string{"xeroctl", "cq", "@nope"},
			want: []string{"xeroctl", "cq"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := make([]string, len(tt.args))
			copy(args, tt.args)
			got := mangleArguments(args)
			assert.Equal(t, tt.want, got)
		})
	}
}
