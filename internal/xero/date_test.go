// Copyright (c) 2025 Steve Taranto staranto@gmail.com.
// SPDX-License-Identifier: Apache-2.0

package xero

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_UnmarshalMS(t *testing.T) {
	var d Date
	err := json.Unmarshal([]byte(`"\/Date(1518685950940+0000)\/"`), &d)
	require.NoError(t, err)
	assert.Equal(t, int64(1518685950), d.Unix())

	// Zone-less variant.
	err = json.Unmarshal([]byte(`"/Date(1518685950940)/"`), &d)
	require.NoError(t, err)
	assert.Equal(t, int64(1518685950), d.Unix())
}

func TestDate_UnmarshalISO(t *testing.T) {
	var d Date
	err := json.Unmarshal([]byte(`"2025-03-14T09:26:53Z"`), &d)
	require.NoError(t, err)
	assert.Equal(t, 2025, d.Year())
	assert.Equal(t, time.March, d.Month())

	// The accounting API also hands back zone-less and bare-date forms.
	err = json.Unmarshal([]byte(`"2025-03-14T09:26:53"`), &d)
	require.NoError(t, err)
	assert.Equal(t, 14, d.Day())

	err = json.Unmarshal([]byte(`"2025-03-14"`), &d)
	require.NoError(t, err)
	assert.Equal(t, 14, d.Day())
}

func TestDate_UnmarshalEmpty(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`""`), &d))
	assert.True(t, d.IsZero())

	require.NoError(t, json.Unmarshal([]byte(`null`), &d))
	assert.True(t, d.IsZero())
}

func TestDate_UnmarshalGarbage(t *testing.T) {
	var d Date
	assert.Error(t, json.Unmarshal([]byte(`"next tuesday"`), &d))
}

func TestDate_MarshalRoundTrip(t *testing.T) {
	d := Date{Time: time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)}
	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-03-14T09:26:53"`, string(out))

	out, err = json.Marshal(Date{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}
