// Copyright (c) 2025 Steve Taranto staranto@gmail.com.
// SPDX-License-Identifier: Apache-2.0

package xero

// Static mirrors of the accounting API JSON schema. Field names follow the
// wire names exactly, which keeps the gjson paths used by --attrs and
// --filter identical to what the API documents.

type Connection struct {
	ID         string `json:"id"`
	TenantID   string `json:"tenantId"`
	TenantType string `json:"tenantType"`
	TenantName string `json:"tenantName"`
}

type Organisation struct {
	OrganisationID   string `json:"OrganisationID"`
	Name             string `json:"Name"`
	LegalName        string `json:"LegalName"`
	ShortCode        string `json:"ShortCode"`
	CountryCode      string `json:"CountryCode"`
	BaseCurrency     string `json:"BaseCurrency"`
	OrganisationType string `json:"OrganisationType"`
	IsDemoCompany    bool   `json:"IsDemoCompany"`
	CreatedDateUTC   Date   `json:"CreatedDateUTC"`
}

type Contact struct {
	ContactID      string    `json:"ContactID,omitempty"`
	ContactNumber  string    `json:"ContactNumber,omitempty"`
	ContactStatus  string    `json:"ContactStatus,omitempty"`
	Name           string    `json:"Name"`
	FirstName      string    `json:"FirstName,omitempty"`
	LastName       string    `json:"LastName,omitempty"`
	EmailAddress   string    `json:"EmailAddress,omitempty"`
	TaxNumber      string    `json:"TaxNumber,omitempty"`
	IsSupplier     bool      `json:"IsSupplier,omitempty"`
	IsCustomer     bool      `json:"IsCustomer,omitempty"`
	Addresses      []Address `json:"Addresses,omitempty"`
	Phones         []Phone   `json:"Phones,omitempty"`
	UpdatedDateUTC Date      `json:"UpdatedDateUTC,omitempty"`
}

type Address struct {
	AddressType  string `json:"AddressType,omitempty"`
	AddressLine1 string `json:"AddressLine1,omitempty"`
	AddressLine2 string `json:"AddressLine2,omitempty"`
	City         string `json:"City,omitempty"`
	Region       string `json:"Region,omitempty"`
	PostalCode   string `json:"PostalCode,omitempty"`
	Country      string `json:"Country,omitempty"`
}

type Phone struct {
	PhoneType        string `json:"PhoneType,omitempty"`
	PhoneNumber      string `json:"PhoneNumber,omitempty"`
	PhoneAreaCode    string `json:"PhoneAreaCode,omitempty"`
	PhoneCountryCode string `json:"PhoneCountryCode,omitempty"`
}

type LineItem struct {
	Description string  `json:"Description,omitempty"`
	Quantity    float64 `json:"Quantity,omitempty"`
	UnitAmount  float64 `json:"UnitAmount,omitempty"`
	ItemCode    string  `json:"ItemCode,omitempty"`
	AccountCode string  `json:"AccountCode,omitempty"`
	TaxType     string  `json:"TaxType,omitempty"`
	TaxAmount   float64 `json:"TaxAmount,omitempty"`
	LineAmount  float64 `json:"LineAmount,omitempty"`
}

type Invoice struct {
	Type            string     `json:"Type,omitempty"`
	InvoiceID       string     `json:"InvoiceID,omitempty"`
	InvoiceNumber   string     `json:"InvoiceNumber,omitempty"`
	Reference       string     `json:"Reference,omitempty"`
	Contact         *Contact   `json:"Contact,omitempty"`
	Date            Date       `json:"Date,omitempty"`
	DueDate         Date       `json:"DueDate,omitempty"`
	Status          string     `json:"Status,omitempty"`
	LineAmountTypes string     `json:"LineAmountTypes,omitempty"`
	LineItems       []LineItem `json:"LineItems,omitempty"`
	SubTotal        float64    `json:"SubTotal,omitempty"`
	TotalTax        float64    `json:"TotalTax,omitempty"`
	Total           float64    `json:"Total,omitempty"`
	AmountDue       float64    `json:"AmountDue,omitempty"`
	AmountPaid      float64    `json:"AmountPaid,omitempty"`
	AmountCredited  float64    `json:"AmountCredited,omitempty"`
	CurrencyCode    string     `json:"CurrencyCode,omitempty"`
	UpdatedDateUTC  Date       `json:"UpdatedDateUTC,omitempty"`
}

type Payment struct {
	PaymentID      string   `json:"PaymentID,omitempty"`
	Invoice        *Invoice `json:"Invoice,omitempty"`
	Account        *Account `json:"Account,omitempty"`
	Date           Date     `json:"Date,omitempty"`
	Amount         float64  `json:"Amount,omitempty"`
	Reference      string   `json:"Reference,omitempty"`
	CurrencyRate   float64  `json:"CurrencyRate,omitempty"`
	PaymentType    string   `json:"PaymentType,omitempty"`
	Status         string   `json:"Status,omitempty"`
	UpdatedDateUTC Date     `json:"UpdatedDateUTC,omitempty"`
}

type Account struct {
	AccountID               string `json:"AccountID,omitempty"`
	Code                    string `json:"Code,omitempty"`
	Name                    string `json:"Name,omitempty"`
	Type                    string `json:"Type,omitempty"`
	TaxType                 string `json:"TaxType,omitempty"`
	Class                   string `json:"Class,omitempty"`
	Status                  string `json:"Status,omitempty"`
	Description             string `json:"Description,omitempty"`
	BankAccountNumber       string `json:"BankAccountNumber,omitempty"`
	CurrencyCode            string `json:"CurrencyCode,omitempty"`
	EnablePaymentsToAccount bool   `json:"EnablePaymentsToAccount,omitempty"`
}

type Quote struct {
	QuoteID        string     `json:"QuoteID,omitempty"`
	QuoteNumber    string     `json:"QuoteNumber,omitempty"`
	Reference      string     `json:"Reference,omitempty"`
	Contact        *Contact   `json:"Contact,omitempty"`
	Date           Date       `json:"Date,omitempty"`
	ExpiryDate     Date       `json:"ExpiryDate,omitempty"`
	Status         string     `json:"Status,omitempty"`
	LineItems      []LineItem `json:"LineItems,omitempty"`
	SubTotal       float64    `json:"SubTotal,omitempty"`
	TotalTax       float64    `json:"TotalTax,omitempty"`
	Total          float64    `json:"Total,omitempty"`
	CurrencyCode   string     `json:"CurrencyCode,omitempty"`
	UpdatedDateUTC Date       `json:"UpdatedDateUTC,omitempty"`
}

type BankTransaction struct {
	BankTransactionID string     `json:"BankTransactionID,omitempty"`
	Type              string     `json:"Type,omitempty"`
	Contact           *Contact   `json:"Contact,omitempty"`
	BankAccount       *Account   `json:"BankAccount,omitempty"`
	Date              Date       `json:"Date,omitempty"`
	Status            string     `json:"Status,omitempty"`
	LineItems         []LineItem `json:"LineItems,omitempty"`
	SubTotal          float64    `json:"SubTotal,omitempty"`
	TotalTax          float64    `json:"TotalTax,omitempty"`
	Total             float64    `json:"Total,omitempty"`
	IsReconciled      bool       `json:"IsReconciled,omitempty"`
	UpdatedDateUTC    Date       `json:"UpdatedDateUTC,omitempty"`
}

// Report is the generic shape shared by ProfitAndLoss, BalanceSheet and
// TrialBalance. Rows nest one level deep (section rows hold detail rows).
type Report struct {
	ReportID       string      `json:"ReportID"`
	ReportName     string      `json:"ReportName"`
	ReportType     string      `json:"ReportType"`
	ReportTitles   []string    `json:"ReportTitles"`
	ReportDate     string      `json:"ReportDate"`
	UpdatedDateUTC Date        `json:"UpdatedDateUTC"`
	Rows           []ReportRow `json:"Rows"`
}

type ReportRow struct {
	RowType string       `json:"RowType"`
	Title   string       `json:"Title,omitempty"`
	Cells   []ReportCell `json:"Cells,omitempty"`
	Rows    []ReportRow  `json:"Rows,omitempty"`
}

type ReportCell struct {
	Value      string                `json:"Value"`
	Attributes []ReportCellAttribute `json:"Attributes,omitempty"`
}

type ReportCellAttribute struct {
	Value string `json:"Value"`
	ID    string `json:"Id"`
}

// Response envelopes. Every accounting endpoint wraps its payload in a
// plural-named array.
type invoicesResponse struct {
	Invoices []Invoice `json:"Invoices"`
}

type contactsResponse struct {
	Contacts []Contact `json:"Contacts"`
}

type paymentsResponse struct {
	Payments []Payment `json:"Payments"`
}

type accountsResponse struct {
	Accounts []Account `json:"Accounts"`
}

type quotesResponse struct {
	Quotes []Quote `json:"Quotes"`
}

type bankTransactionsResponse struct {
	BankTransactions []BankTransaction `json:"BankTransactions"`
}

type organisationsResponse struct {
	Organisations []Organisation `json:"Organisations"`
}

type reportsResponse struct {
	Reports []Report `json:"Reports"`
}
