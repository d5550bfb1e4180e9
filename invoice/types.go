package invoice

import (
	"github.com/invoiceflow/site/tax"
	"github.com/shopspring/decimal"
)

// DateLayout the date layout of invoice dates
const DateLayout = "2006-01-02"

// LineItem one row of the invoice. Amount is derived from Quantity and Rate.
type LineItem struct {
	ID          string          `json:"id" yaml:"id"`
	Description string          `json:"description" yaml:"description"`
	Quantity    decimal.Decimal `json:"quantity" yaml:"quantity"`
	Rate        decimal.Decimal `json:"rate" yaml:"rate"`
	Amount      decimal.Decimal `json:"amount" yaml:"-"`
}

// Party the business issuing the invoice or the client receiving it
type Party struct {
	Name          string `json:"name" yaml:"name"`
	Address       string `json:"address,omitempty" yaml:"address"`
	Postcode      string `json:"postcode,omitempty" yaml:"postcode"`
	Email         string `json:"email,omitempty" yaml:"email"`
	Phone         string `json:"phone,omitempty" yaml:"phone"`
	VATNumber     string `json:"vat_number,omitempty" yaml:"vat_number"`
	CompanyNumber string `json:"company_number,omitempty" yaml:"company_number"`
	UTR           string `json:"utr,omitempty" yaml:"utr"`
}

// BankDetails the payment details printed on the invoice
type BankDetails struct {
	BankName      string `json:"bank_name,omitempty" yaml:"bank_name"`
	AccountName   string `json:"account_name,omitempty" yaml:"account_name"`
	SortCode      string `json:"sort_code,omitempty" yaml:"sort_code"`
	AccountNumber string `json:"account_number,omitempty" yaml:"account_number"`
	IBAN          string `json:"iban,omitempty" yaml:"iban"`
	SWIFT         string `json:"swift,omitempty" yaml:"swift"`
}

// InvoiceData the invoice generator form state. Totals and the line
// amounts are derived, call Recalculate after any change.
type InvoiceData struct {
	Number        string          `json:"number" yaml:"number"`
	Date          string          `json:"date" yaml:"date"`
	DueDate       string          `json:"due_date" yaml:"due_date"`
	PaymentTerms  string          `json:"payment_terms,omitempty" yaml:"payment_terms"`
	Currency      string          `json:"currency" yaml:"currency"`
	Reference     string          `json:"reference,omitempty" yaml:"reference"`
	Business      Party           `json:"business" yaml:"business"`
	Client        Party           `json:"client" yaml:"client"`
	LineItems     []LineItem      `json:"line_items" yaml:"line_items"`
	VATRate       tax.VATRate     `json:"vat_rate" yaml:"vat_rate"`
	ReverseCharge bool            `json:"reverse_charge" yaml:"reverse_charge"`
	Discount      decimal.Decimal `json:"discount" yaml:"discount"`
	CISRate       tax.CISRate     `json:"cis_rate" yaml:"cis_rate"`
	Bank          BankDetails     `json:"bank" yaml:"bank"`
	Notes         string          `json:"notes,omitempty" yaml:"notes"`
	Template      string          `json:"template,omitempty" yaml:"template"`
	Totals        tax.Totals      `json:"totals" yaml:"-"`
}

// Summary the formatted totals for display
type Summary struct {
	Subtotal     string `json:"subtotal"`
	VATLabel     string `json:"vat_label"`
	VATAmount    string `json:"vat_amount"`
	Discount     string `json:"discount,omitempty"`
	TotalAmount  string `json:"total_amount"`
	CISLabel     string `json:"cis_label,omitempty"`
	CISDeduction string `json:"cis_deduction,omitempty"`
	AmountDue    string `json:"amount_due"`
	Notice       string `json:"notice,omitempty"`
}
