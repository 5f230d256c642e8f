// Copyright (c) 2025 Steve Taranto staranto@gmail.com.
// SPDX-License-Identifier: Apache-2.0

package xero

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/xeroctlgo/internal/cache"
)

var ctx = context.Background()

// newTestClient wires a Client against an httptest server, skipping OAuth
// entirely via the HTTPClient hook.
func newTestClient(t *testing.T, srv *httptest.Server, mutate ...func(*Config)) *Client {
	t.Helper()

	cfg := Config{
		TenantID:       "tenant-1",
		BaseURL:        srv.URL + "/api.xro/2.0",
		ConnectionsURL: srv.URL + "/connections",
		Cache:          cache.New(cache.Options{Namespace: "xero", DefaultTTL: cache.FiveMinutes}),
		HTTPClient:     srv.Client(),
	}
	for _, m := range mutate {
		m(&cfg)
	}

	client, err := NewClient(ctx, cfg)
	require.NoError(t, err)
	return client
}

func TestNewClient_RequiresCredentials(t *testing.T) {
	_, err := NewClient(ctx, Config{})
	assert.ErrorIs(t, err, ErrClientIDNotSet)

	_, err = NewClient(ctx, Config{ClientID: "abc"})
	assert.ErrorIs(t, err, ErrClientSecretNotSet)
}

func TestListInvoices_ReadThrough(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "tenant-1", r.Header.Get("Xero-Tenant-Id"))
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))
		fmt.Fprint(w, `{"Invoices":[{"InvoiceID":"inv-1","InvoiceNumber":"INV-0001","Status":"AUTHORISED","Total":150.0}]}`)
	}))
	defer srv.Close()

	client := newTestClient(t, srv)

	invoices, err := client.ListInvoices(ctx, InvoiceListOptions{Statuses: []string{"AUTHORISED"}})
	require.NoError(t, err)
	require.Len(t, invoices, 1)
	assert.Equal(t, "INV-0001", invoices[0].InvoiceNumber)
	assert.Equal(t, int64(1), hits.Load())

	// Identical query: served from cache, no second round trip.
	invoices, err = client.ListInvoices(ctx, InvoiceListOptions{Statuses: []string{"AUTHORISED"}})
	require.NoError(t, err)
	require.Len(t, invoices, 1)
	assert.Equal(t, int64(1), hits.Load())

	// Different query: new cache key, new round trip.
	_, err = client.ListInvoices(ctx, InvoiceListOptions{Statuses: []string{"DRAFT"}})
	require.NoError(t, err)
	assert.Equal(t, int64(2), hits.Load())
}

func TestListInvoices_Pagination(t *testing.T) {
	// First page comes back full, second short; the paginator must stitch
	// them and stop.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"Invoices":[`)
		count := 1
		if page == "1" {
			count = pageSize
		}
		for i := 0; i < count; i++ {
			if i > 0 {
				fmt.Fprint(w, ",")
			}
			fmt.Fprintf(w, `{"InvoiceID":"p%s-%d"}`, page, i)
		}
		fmt.Fprint(w, `]}`)
	}))
	defer srv.Close()

	client := newTestClient(t, srv)

	invoices, err := client.ListInvoices(ctx, InvoiceListOptions{})
	require.NoError(t, err)
	assert.Len(t, invoices, pageSize+1)
}

func TestListInvoices_LimitTruncates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"Invoices":[{"InvoiceID":"a"},{"InvoiceID":"b"},{"InvoiceID":"c"}]}`)
	}))
	defer srv.Close()

	client := newTestClient(t, srv)

	invoices, err := client.ListInvoices(ctx, InvoiceListOptions{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, invoices, 2)
}

func TestNoCache_Bypasses(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		fmt.Fprint(w, `{"Accounts":[{"Code":"200","Name":"Sales"}]}`)
	}))
	defer srv.Close()

	client := newTestClient(t, srv, func(cfg *Config) { cfg.NoCache = true })

	_, err := client.ListAccounts(ctx, AccountListOptions{})
	require.NoError(t, err)
	_, err = client.ListAccounts(ctx, AccountListOptions{})
	require.NoError(t, err)

	// Every read bypassed the cache and nothing was stored.
	assert.Equal(t, int64(2), hits.Load())
	assert.Equal(t, 0, client.Cache().Stats().EntryCount)
}

func TestCreateContact_InvalidatesContactReads(t *testing.T) {
	var listHits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			listHits.Add(1)
			fmt.Fprint(w, `{"Contacts":[{"ContactID":"c-1","Name":"Acme"}]}`)
		case http.MethodPut:
			fmt.Fprint(w, `{"Contacts":[{"ContactID":"c-2","Name":"Initech"}]}`)
		}
	}))
	defer srv.Close()

	client := newTestClient(t, srv)

	_, err := client.ListContacts(ctx, ContactListOptions{})
	require.NoError(t, err)
	_, err = client.ListContacts(ctx, ContactListOptions{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), listHits.Load())

	created, err := client.CreateContact(ctx, Contact{Name: "Initech"})
	require.NoError(t, err)
	assert.Equal(t, "c-2", created.ContactID)

	// The write evicted the cached list, so the next read goes out again.
	_, err = client.ListContacts(ctx, ContactListOptions{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), listHits.Load())
}

func TestUpdateContact_RequiresIDAndInvalidates(t *testing.T) {
	var getHits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			getHits.Add(1)
			fmt.Fprint(w, `{"Contacts":[{"ContactID":"c-1","Name":"Acme"}]}`)
		case http.MethodPost:
			fmt.Fprint(w, `{"Contacts":[{"ContactID":"c-1","Name":"Acme Ltd"}]}`)
		}
	}))
	defer srv.Close()

	client := newTestClient(t, srv)

	_, err := client.UpdateContact(ctx, Contact{Name: "No ID"})
	assert.ErrorContains(t, err, "ContactID is required")

	_, err = client.GetContact(ctx, "c-1")
	require.NoError(t, err)
	_, err = client.GetContact(ctx, "c-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), getHits.Load())

	updated, err := client.UpdateContact(ctx, Contact{ContactID: "c-1", Name: "Acme Ltd"})
	require.NoError(t, err)
	assert.Equal(t, "Acme Ltd", updated.Name)

	// The update evicted the cached read.
	_, err = client.GetContact(ctx, "c-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), getHits.Load())
}

func TestCreatePayment_InvalidatesInvoiceReads(t *testing.T) {
	var invoiceHits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			invoiceHits.Add(1)
			fmt.Fprint(w, `{"Invoices":[{"InvoiceID":"inv-1","AmountDue":100.0}]}`)
		case r.Method == http.MethodPut:
			fmt.Fprint(w, `{"Payments":[{"PaymentID":"pay-1","Amount":100.0}]}`)
		}
	}))
	defer srv.Close()

	client := newTestClient(t, srv)

	_, err := client.GetInvoice(ctx, "inv-1")
	require.NoError(t, err)
	_, err = client.GetInvoice(ctx, "inv-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), invoiceHits.Load())

	_, err = client.CreatePayment(ctx, Payment{
		Invoice: &Invoice{InvoiceID: "inv-1"},
		Account: &Account{Code: "090"},
		Amount:  100.0,
	})
	require.NoError(t, err)

	// A payment changes AmountDue, so cached invoice reads are stale.
	_, err = client.GetInvoice(ctx, "inv-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), invoiceHits.Load())
}

func TestTenantResolution(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/connections":
			fmt.Fprint(w, `[{"id":"conn-1","tenantId":"t-abc","tenantType":"ORGANISATION","tenantName":"Demo Company"}]`)
		default:
			fmt.Fprint(w, `{"Organisations":[{"Name":"Demo Company"}]}`)
		}
	}))
	defer srv.Close()

	client := newTestClient(t, srv, func(cfg *Config) { cfg.TenantID = "" })

	tenant, err := client.Tenant(ctx)
	require.NoError(t, err)
	assert.Equal(t, "t-abc", tenant)
}

func TestTenantResolution_Ambiguous(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"tenantId":"t-1","tenantName":"One"},{"tenantId":"t-2","tenantName":"Two"}]`)
	}))
	defer srv.Close()

	client := newTestClient(t, srv, func(cfg *Config) { cfg.TenantID = "" })

	_, err := client.Tenant(ctx)
	assert.ErrorIs(t, err, ErrAmbiguousTenant)
	assert.Contains(t, err.Error(), "One, Two")
}

func TestFriendlyXero_StatusHints(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Xero-Correlation-Id", "corr-123")
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"Title":"Unauthorized","Detail":"token expired"}`)
	}))
	defer srv.Close()

	client := newTestClient(t, srv)

	_, err := client.ListPayments(ctx, PaymentListOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token rejected")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "token expired", apiErr.Message)
	assert.Equal(t, "corr-123", apiErr.CorrelationID)
}

func TestErrorDetail(t *testing.T) {
	assert.Equal(t, "token expired", errorDetail([]byte(`{"Title":"Unauthorized","Detail":"token expired"}`)))
	assert.Equal(t, "Unauthorized", errorDetail([]byte(`{"Title":"Unauthorized"}`)))
	assert.Equal(t, "boom", errorDetail([]byte(`{"Message":"boom"}`)))
	assert.Equal(t, "plain text", errorDetail([]byte("plain text\n")))
}

func TestFlattenReport(t *testing.T) {
	report := Report{
		ReportName: "ProfitAndLoss",
		Rows: []ReportRow{
			{RowType: "Header", Cells: []ReportCell{{Value: ""}, {Value: "31 Mar 25"}}},
			{RowType: "Section", Title: "Income", Rows: []ReportRow{
				{RowType: "Row", Cells: []ReportCell{{Value: "Sales"}, {Value: "1000.00"}}},
				{RowType: "SummaryRow", Cells: []ReportCell{{Value: "Total Income"}, {Value: "1000.00"}}},
			}},
		},
	}

	flat := FlattenReport(report)
	require.Len(t, flat, 2)
	assert.Equal(t, "Income", flat[0]["Section"])
	assert.Equal(t, "Sales", flat[0]["Column0"])
	assert.Equal(t, "1000.00", flat[0]["31 Mar 25"])
	assert.Equal(t, "SummaryRow", flat[1]["RowType"])
}
