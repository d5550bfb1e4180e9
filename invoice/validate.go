package invoice

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/invoiceflow/site/ukid"
)

// FieldError a validation failure of one form field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type checker struct {
	result *multierror.Error
}

func (c *checker) add(field string, format string, args ...interface{}) {
	c.result = multierror.Append(c.result, &FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// identifier check an optional identifier, empty values pass
func (c *checker) identifier(field string, value string, normalize func(string) (string, error)) {
	if strings.TrimSpace(value) == "" {
		return
	}
	if _, err := normalize(value); err != nil {
		c.add(field, "%s", err.Error())
	}
}

func (c *checker) email(field string, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	if _, err := mail.ParseAddress(value); err != nil {
		c.add(field, "invalid email address")
	}
}

func (c *checker) party(prefix string, p Party) {
	if strings.TrimSpace(p.Name) == "" {
		c.add(prefix+".name", "name is required")
	}
	c.identifier(prefix+".postcode", p.Postcode, ukid.NormalizePostcode)
	c.identifier(prefix+".vat_number", p.VATNumber, ukid.NormalizeVATNumber)
	c.identifier(prefix+".company_number", p.CompanyNumber, ukid.NormalizeCompanyNumber)
	c.identifier(prefix+".utr", p.UTR, ukid.NormalizeUTR)
	c.email(prefix+".email", p.Email)
}

// Validate check the required fields, UK identifiers, dates and the tax
// settings. Returns nil or a *multierror.Error of *FieldError.
func (inv *InvoiceData) Validate() error {
	c := &checker{}

	if strings.TrimSpace(inv.Number) == "" {
		c.add("number", "invoice number is required")
	}

	issued, err := time.Parse(DateLayout, inv.Date)
	if err != nil {
		c.add("date", "invoice date must be a date (YYYY-MM-DD)")
	}

	if inv.DueDate != "" {
		due, err := time.Parse(DateLayout, inv.DueDate)
		if err != nil {
			c.add("due_date", "due date must be a date (YYYY-MM-DD)")
		} else if !issued.IsZero() && due.Before(issued) {
			c.add("due_date", "due date is before the invoice date")
		}
	}

	if inv.Currency != "" && !ValidCurrency(inv.Currency) {
		c.add("currency", "unknown currency %q", inv.Currency)
	}

	c.party("business", inv.Business)
	c.party("client", inv.Client)

	described := 0
	for i, item := range inv.LineItems {
		field := fmt.Sprintf("line_items[%d]", i)
		if strings.TrimSpace(item.Description) != "" {
			described++
		} else if !item.Quantity.Mul(item.Rate).IsZero() {
			c.add(field+".description", "description is required")
		}
		if item.Quantity.IsNegative() {
			c.add(field+".quantity", "quantity must not be negative")
		}
		if item.Rate.IsNegative() {
			c.add(field+".rate", "rate must not be negative")
		}
	}
	if described == 0 {
		c.add("line_items", "at least one line item is required")
	}

	if !inv.VATRate.Valid() {
		c.add("vat_rate", "unsupported VAT rate %d", int(inv.VATRate))
	}

	if !inv.CISRate.Valid() {
		c.add("cis_rate", "unsupported CIS rate %d", int(inv.CISRate))
	}

	if inv.Discount.IsNegative() {
		c.add("discount", "discount must not be negative")
	}

	charged := !inv.ReverseCharge && (inv.VATRate == 5 || inv.VATRate == 20)
	if charged && strings.TrimSpace(inv.Business.VATNumber) == "" {
		c.add("business.vat_number", "a VAT number is required to charge VAT")
	}

	if inv.ReverseCharge {
		if strings.TrimSpace(inv.Business.VATNumber) == "" {
			c.add("business.vat_number", "a VAT number is required for reverse charge invoices")
		}
		if strings.TrimSpace(inv.Client.VATNumber) == "" {
			c.add("client.vat_number", "the customer VAT number is required for reverse charge invoices")
		}
	}

	if inv.CISRate > 0 && strings.TrimSpace(inv.Business.UTR) == "" {
		c.add("business.utr", "a UTR is required for CIS deductions")
	}

	bank := inv.Bank
	c.identifier("bank.sort_code", bank.SortCode, ukid.NormalizeSortCode)
	c.identifier("bank.account_number", bank.AccountNumber, ukid.NormalizeAccountNumber)
	c.identifier("bank.iban", bank.IBAN, ukid.NormalizeIBAN)

	return c.result.ErrorOrNil()
}

// FieldErrors flatten a validation error into its field errors. Any other
// error becomes a single entry without a field.
func FieldErrors(err error) []FieldError {
	if err == nil {
		return nil
	}

	var merr *multierror.Error
	if errors.As(err, &merr) {
		fields := make([]FieldError, 0, len(merr.Errors))
		for _, e := range merr.Errors {
			var fe *FieldError
			if errors.As(e, &fe) {
				fields = append(fields, *fe)
				continue
			}
			fields = append(fields, FieldError{Message: e.Error()})
		}
		return fields
	}

	var fe *FieldError
	if errors.As(err, &fe) {
		return []FieldError{*fe}
	}
	return []FieldError{{Message: err.Error()}}
}

// ErrorMap field -> first message, for form rendering
func ErrorMap(err error) map[string]string {
	m := map[string]string{}
	for _, fe := range FieldErrors(err) {
		if _, has := m[fe.Field]; !has {
			m[fe.Field] = fe.Message
		}
	}
	return m
}

// NormalizeIdentifiers rewrite the valid identifiers into their display
// format, invalid values are left untouched.
func (inv *InvoiceData) NormalizeIdentifiers() {
	format := func(value *string, fn func(string) (string, error)) {
		if strings.TrimSpace(*value) == "" {
			return
		}
		if v, err := fn(*value); err == nil {
			*value = v
		}
	}

	for _, p := range []*Party{&inv.Business, &inv.Client} {
		format(&p.Postcode, ukid.FormatPostcode)
		format(&p.VATNumber, ukid.FormatVATNumber)
		format(&p.CompanyNumber, ukid.FormatCompanyNumber)
		format(&p.UTR, ukid.FormatUTR)
	}
	format(&inv.Bank.SortCode, ukid.FormatSortCode)
	format(&inv.Bank.AccountNumber, ukid.FormatAccountNumber)
	format(&inv.Bank.IBAN, ukid.FormatIBAN)
}
