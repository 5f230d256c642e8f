// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package output

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/staranto/xeroctlgo/internal/attrs"
)

func TestSortDataset(t *testing.T) {
	testData := []map[string]interface{}{
		{"name": "zebra", "total": 300.0, "status": "AUTHORISED"},
		{"name": "alpha", "total": 100.0, "status": "DRAFT"},
		{"name": "beta", "total": 200.0, "status": "PAID"},
	}

	tests := []struct {
		name      string
		spec      string
		wantOrder []string
	}{
		{
			name:      "ascending by name",
			spec:      "name",
			wantOrder: []string{"alpha", "beta", "zebra"},
		},
		{
			name:      "descending by name",
			spec:      "-name",
			wantOrder: []string{"zebra", "beta", "alpha"},
		},
		{
			name:      "ascending by total",
			spec:      "total",
			wantOrder: []string{"alpha", "beta", "zebra"},
		},
		{
			name:      "descending by total",
			spec:      "-total",
			wantOrder: []string{"zebra", "beta", "alpha"},
		},
		{
			name:      "case sensitive",
			spec:      "!name",
			wantOrder: []string{"alpha", "beta", "zebra"},
		},
		{
			name:      "multiple fields",
			spec:      "total,name",
			wantOrder: []string{"alpha", "beta", "zebra"},
		},
		{
			name:      "empty spec",
			spec:      "",
			wantOrder: []string{"zebra", "alpha", "beta"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := make([]map[string]interface{}, len(testData))
			copy(data, testData)
			SortDataset(data, tt.spec)
			for i, expectedName := range tt.wantOrder {
				assert.Equal(t, expectedName, data[i]["name"], "at index %d", i)
			}
		})
	}
}

func TestSortDataset_NumericNotLexical(t *testing.T) {
	data := []map[string]interface{}{
		{"number": "INV-1", "total": 1000.0},
		{"number": "INV-2", "total": 900.0},
	}

	// A lexical compare would leave 900 above 1000.
	SortDataset(data, "total")
	assert.Equal(t, "INV-2", data[0]["number"])
}

func TestSortDataset_NilsLast(t *testing.T) {
	data := []map[string]interface{}{
		{"name": nil, "total": 1.0},
		{"name": "acme", "total": 2.0},
	}

	SortDataset(data, "name")
	assert.Equal(t, "acme", data[0]["name"])
}

func TestInterfaceToString(t *testing.T) {
	tests := []struct {
		name     string
		value    interface{}
		emptyVal string
		want     string
	}{
		{
			name:  "string",
			value: "hello",
			want:  "hello",
		},
		{
			name:  "int",
			value: 42,
			want:  "42",
		},
		{
			name:  "float64 whole",
			value: 42.0,
			want:  "42",
		},
		{
			name:  "float64 keeps decimals",
			value: 42.75,
			want:  "42.75",
		},
		{
			name:  "bool true",
			value: true,
			want:  "true",
		},
		{
			name:  "bool false is zero value",
			value: false,
			want:  "",
		},
		{
			name:  "nil default",
			value: nil,
			want:  "",
		},
		{
			name:     "nil custom",
			value:    nil,
			emptyVal: "-",
			want:     "-",
		},
		{
			name:  "slice",
			value: []string{"a", "b"},
			want:  `["a","b"]`,
		},
		{
			name:  "map",
			value: map[string]int{"x": 1},
			want:  `{"x":1}`,
		},
		{
			name:  "zero value int",
			value: 0,
			want:  "",
		},
		{
			name:     "zero value with custom empty",
			value:    0,
			emptyVal: "N/A",
			want:     "N/A",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			if tt.emptyVal != "" {
				got = InterfaceToString(tt.value, tt.emptyVal)
			} else {
				got = InterfaceToString(tt.value)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildFilters(t *testing.T) {
	tests := []struct {
		name string
		spec string
		want []Filter
	}{
		{
			name: "empty spec",
			spec: "",
			want: nil,
		},
		{
			name: "equals",
			spec: "Status=AUTHORISED",
			want: []Filter{{Key: "Status", Operand: "=", Target: "AUTHORISED"}},
		},
		{
			name: "negated equals",
			spec: "Status!=VOIDED",
			want: []Filter{{Key: "Status", Negate: true, Operand: "=", Target: "VOIDED"}},
		},
		{
			name: "multiple",
			spec: "Status=PAID,Total>100",
			want: []Filter{
				{Key: "Status", Operand: "=", Target: "PAID"},
				{Key: "Total", Operand: ">", Target: "100"},
			},
		},
		{
			name: "regex",
			spec: "Name/^Ac",
			want: []Filter{{Key: "Name", Operand: "/", Target: "^Ac"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildFilters(tt.spec)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilterDataset(t *testing.T) {
	payload := `[
		{"InvoiceNumber": "INV-0001", "Status": "AUTHORISED", "Total": 150.0, "Contact": {"Name": "Acme"}},
		{"InvoiceNumber": "INV-0002", "Status": "PAID", "Total": 900.0, "Contact": {"Name": "Initech"}},
		{"InvoiceNumber": "INV-0003", "Status": "PAID", "Total": 1000.0, "Contact": {"Name": "Acme"}}
	]`

	var alist attrs.AttrList
	require.NoError(t, alist.Set("InvoiceNumber:number,Status:status,Total:total,Contact.Name:contact"))

	dataset := gjson.Parse(payload)

	t.Run("no filter keeps everything", func(t *testing.T) {
		got := FilterDataset(dataset, alist, "")
		assert.Len(t, got, 3)
		// Nested keys come out flat under the output key.
		assert.Equal(t, "Acme", got[0]["contact"])
	})

	t.Run("string equals", func(t *testing.T) {
		got := FilterDataset(dataset, alist, "status=PAID")
		assert.Len(t, got, 2)
	})

	t.Run("numeric greater than", func(t *testing.T) {
		got := FilterDataset(dataset, alist, "total>900")
		require.Len(t, got, 1)
		assert.Equal(t, "INV-0003", got[0]["number"])
	})

	t.Run("conjunction", func(t *testing.T) {
		got := FilterDataset(dataset, alist, "status=PAID,contact=Acme")
		require.Len(t, got, 1)
		assert.Equal(t, "INV-0003", got[0]["number"])
	})

	t.Run("server-side keys ignored", func(t *testing.T) {
		got := FilterDataset(dataset, alist, "_where=x,status=PAID")
		assert.Len(t, got, 2)
	})
}

func TestHumanizeDataset(t *testing.T) {
	data := []map[string]interface{}{
		{"total": 1234567.89, "number": "INV-0001"},
	}

	HumanizeDataset(data)
	assert.Equal(t, "1,234,567.89", data[0]["total"])
	assert.Equal(t, "INV-0001", data[0]["number"])
}

func TestNewTag(t *testing.T) {
	tests := []struct {
		name string
		h    string
		s    string
		want Tag
	}{
		{
			name: "simple",
			s:    "InvoiceNumber,omitempty",
			want: Tag{Name: "InvoiceNumber", Encoding: "omitempty"},
		},
		{
			name: "with holder",
			h:    "Contact",
			s:    "Name",
			want: Tag{Name: "Contact.Name"},
		},
		{
			name: "skipped field",
			s:    "-",
			want: Tag{},
		},
		{
			name: "empty string",
			s:    "",
			want: Tag{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewTag(tt.h, tt.s)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDumpSchemaWalker(t *testing.T) {
	type inner struct {
		Name string `json:"Name,omitempty"`
	}

	type outer struct {
		Number  string `json:"InvoiceNumber,omitempty"`
		Contact *inner `json:"Contact,omitempty"`
		Skipped string `json:"-"`
	}

	tags := DumpSchemaWalker("", reflect.TypeOf(outer{}), 0)

	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.Name)
	}

	assert.Contains(t, names, "InvoiceNumber")
	assert.Contains(t, names, "Contact")
	assert.Contains(t, names, "Contact.Name")
	assert.NotContains(t, names, "-")
}

func TestGetColors(t *testing.T) {
	header, even, odd := getColors("colors")

	assert.IsType(t, "", header)
	assert.IsType(t, "", even)
	assert.IsType(t, "", odd)
}

func BenchmarkSortDataset(b *testing.B) {
	testData := []map[string]interface{}{
		{"name": "zebra", "total": 300.0},
		{"name": "alpha", "total": 100.0},
		{"name": "beta", "total": 200.0},
	}

	spec := "name"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		data := make([]map[string]interface{}, len(testData))
		copy(data, testData)
		SortDataset(data, spec)
	}
}
