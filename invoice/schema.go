package invoice

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/invoiceflow/site/tax"
	"github.com/invoiceflow/site/utils/jsonschema"
	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Schema the JSON Schema of an invoice payload. Amounts may be numbers or
// numeric strings. The exact VAT and CIS rates are checked by Validate.
const Schema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "$defs": {
    "amount": {
      "anyOf": [
        {"type": "number", "exclusiveMinimum": -1000000000000, "exclusiveMaximum": 1000000000000},
        {"type": "string", "pattern": "^-?[0-9]{1,12}(\\.[0-9]{1,4})?$"}
      ]
    },
    "party": {
      "type": "object",
      "properties": {
        "name": {"type": "string", "maxLength": 200},
        "address": {"type": "string", "maxLength": 1000},
        "postcode": {"type": "string", "maxLength": 10},
        "email": {"type": "string", "maxLength": 254},
        "phone": {"type": "string", "maxLength": 40},
        "vat_number": {"type": "string", "maxLength": 20},
        "company_number": {"type": "string", "maxLength": 12},
        "utr": {"type": "string", "maxLength": 16}
      }
    }
  },
  "properties": {
    "number": {"type": "string", "maxLength": 64},
    "date": {"type": "string"},
    "due_date": {"type": "string"},
    "payment_terms": {"type": "string", "maxLength": 200},
    "currency": {"type": "string", "pattern": "^[A-Za-z]{3}$"},
    "reference": {"type": "string", "maxLength": 64},
    "business": {"$ref": "#/$defs/party"},
    "client": {"$ref": "#/$defs/party"},
    "line_items": {
      "type": "array",
      "maxItems": 500,
      "items": {
        "type": "object",
        "properties": {
          "id": {"type": "string"},
          "description": {"type": "string", "maxLength": 500},
          "quantity": {"$ref": "#/$defs/amount"},
          "rate": {"$ref": "#/$defs/amount"}
        }
      }
    },
    "vat_rate": {"type": "integer", "minimum": -1, "maximum": 20},
    "reverse_charge": {"type": "boolean"},
    "discount": {"$ref": "#/$defs/amount"},
    "cis_rate": {"type": "integer", "minimum": 0, "maximum": 30},
    "bank": {
      "type": "object",
      "properties": {
        "bank_name": {"type": "string"},
        "account_name": {"type": "string"},
        "sort_code": {"type": "string"},
        "account_number": {"type": "string"},
        "iban": {"type": "string"},
        "swift": {"type": "string"}
      }
    },
    "notes": {"type": "string", "maxLength": 2000},
    "template": {"type": "string"}
  }
}`

var validator = jsonschema.MustNew(Schema)

// Decode check the payload against the invoice schema and decode it. The
// returned invoice is recalculated. Schema violations are returned as
// *jsonschema.ValidationError, amounts out of range as *FieldError.
func Decode(payload []byte) (*InvoiceData, error) {
	if err := validator.ValidateJSON(payload); err != nil {
		return nil, err
	}

	inv := &InvoiceData{}
	if err := json.Unmarshal(payload, inv); err != nil {
		return nil, fmt.Errorf("decode invoice: %w", err)
	}
	if err := inv.checkAmounts(); err != nil {
		return nil, err
	}
	if inv.Currency == "" {
		inv.Currency = "GBP"
	}
	inv.Currency = strings.ToUpper(inv.Currency)
	return inv.Recalculate(), nil
}

// checkAmounts the first quantity, rate or discount out of range
func (inv *InvoiceData) checkAmounts() error {
	if err := CheckAmount(inv.Discount); err != nil {
		return &FieldError{Field: "discount", Message: err.Error()}
	}
	for i, item := range inv.LineItems {
		if err := CheckAmount(item.Quantity); err != nil {
			return &FieldError{Field: fmt.Sprintf("line_items[%d].quantity", i), Message: err.Error()}
		}
		if err := CheckAmount(item.Rate); err != nil {
			return &FieldError{Field: fmt.Sprintf("line_items[%d].rate", i), Message: err.Error()}
		}
	}
	return nil
}

// FromForm read the invoice generator form. Line items are posted as the
// parallel lists line_id, line_description, line_quantity and line_rate.
// Unparsable numbers are reported as field errors and read as zero.
func FromForm(form url.Values) (*InvoiceData, error) {
	var errs *multierror.Error
	fail := func(field string, message string) {
		errs = multierror.Append(errs, &FieldError{Field: field, Message: message})
	}

	amount := func(field string, value string) decimal.Decimal {
		v, err := ParseAmount(value)
		if err != nil {
			fail(field, "must be a number")
			return decimal.Zero
		}
		return v
	}

	party := func(prefix string) Party {
		return Party{
			Name:          strings.TrimSpace(form.Get(prefix + "_name")),
			Address:       strings.TrimSpace(form.Get(prefix + "_address")),
			Postcode:      strings.TrimSpace(form.Get(prefix + "_postcode")),
			Email:         strings.TrimSpace(form.Get(prefix + "_email")),
			Phone:         strings.TrimSpace(form.Get(prefix + "_phone")),
			VATNumber:     strings.TrimSpace(form.Get(prefix + "_vat_number")),
			CompanyNumber: strings.TrimSpace(form.Get(prefix + "_company_number")),
			UTR:           strings.TrimSpace(form.Get(prefix + "_utr")),
		}
	}

	inv := &InvoiceData{
		Number:        strings.TrimSpace(form.Get("number")),
		Date:          strings.TrimSpace(form.Get("date")),
		DueDate:       strings.TrimSpace(form.Get("due_date")),
		PaymentTerms:  strings.TrimSpace(form.Get("payment_terms")),
		Currency:      strings.ToUpper(strings.TrimSpace(form.Get("currency"))),
		Reference:     strings.TrimSpace(form.Get("reference")),
		Business:      party("business"),
		Client:        party("client"),
		ReverseCharge: cast.ToBool(form.Get("reverse_charge")),
		Discount:      amount("discount", form.Get("discount")),
		Notes:         strings.TrimSpace(form.Get("notes")),
		Template:      strings.TrimSpace(form.Get("template")),
		Bank: BankDetails{
			BankName:      strings.TrimSpace(form.Get("bank_name")),
			AccountName:   strings.TrimSpace(form.Get("bank_account_name")),
			SortCode:      strings.TrimSpace(form.Get("bank_sort_code")),
			AccountNumber: strings.TrimSpace(form.Get("bank_account_number")),
			IBAN:          strings.TrimSpace(form.Get("bank_iban")),
			SWIFT:         strings.TrimSpace(form.Get("bank_swift")),
		},
	}
	if inv.Currency == "" {
		inv.Currency = "GBP"
	}

	vat, err := tax.ParseVATRate(form.Get("vat_rate"))
	if err != nil {
		fail("vat_rate", err.Error())
		vat = tax.VATStandard
	}
	inv.VATRate = vat

	cis, err := tax.ParseCISRate(form.Get("cis_rate"))
	if err != nil {
		fail("cis_rate", err.Error())
		cis = tax.CISNone
	}
	inv.CISRate = cis

	ids := form["line_id"]
	descriptions := form["line_description"]
	quantities := form["line_quantity"]
	rates := form["line_rate"]
	at := func(values []string, i int) string {
		if i < len(values) {
			return values[i]
		}
		return ""
	}

	for i := range descriptions {
		field := fmt.Sprintf("line_items[%d]", i)
		quantity := at(quantities, i)
		if strings.TrimSpace(quantity) == "" {
			quantity = "1"
		}
		inv.LineItems = append(inv.LineItems, LineItem{
			ID:          strings.TrimSpace(at(ids, i)),
			Description: strings.TrimSpace(descriptions[i]),
			Quantity:    amount(field+".quantity", quantity),
			Rate:        amount(field+".rate", at(rates, i)),
		})
	}

	inv.Recalculate()
	return inv, errs.ErrorOrNil()
}

// Form the form values of the invoice, the inverse of FromForm
func (inv *InvoiceData) Form() url.Values {
	form := url.Values{}
	set := func(key string, value string) {
		if value != "" {
			form.Set(key, value)
		}
	}

	set("number", inv.Number)
	set("date", inv.Date)
	set("due_date", inv.DueDate)
	set("payment_terms", inv.PaymentTerms)
	set("currency", inv.Currency)
	set("reference", inv.Reference)
	for prefix, p := range map[string]Party{"business": inv.Business, "client": inv.Client} {
		set(prefix+"_name", p.Name)
		set(prefix+"_address", p.Address)
		set(prefix+"_postcode", p.Postcode)
		set(prefix+"_email", p.Email)
		set(prefix+"_phone", p.Phone)
		set(prefix+"_vat_number", p.VATNumber)
		set(prefix+"_company_number", p.CompanyNumber)
		set(prefix+"_utr", p.UTR)
	}
	set("bank_name", inv.Bank.BankName)
	set("bank_account_name", inv.Bank.AccountName)
	set("bank_sort_code", inv.Bank.SortCode)
	set("bank_account_number", inv.Bank.AccountNumber)
	set("bank_iban", inv.Bank.IBAN)
	set("bank_swift", inv.Bank.SWIFT)
	set("notes", inv.Notes)
	set("template", inv.Template)

	form.Set("vat_rate", cast.ToString(int(inv.VATRate)))
	form.Set("cis_rate", cast.ToString(int(inv.CISRate)))
	if inv.ReverseCharge {
		form.Set("reverse_charge", "true")
	}
	if !inv.Discount.IsZero() {
		form.Set("discount", inv.Discount.String())
	}

	for _, item := range inv.LineItems {
		form.Add("line_id", item.ID)
		form.Add("line_description", item.Description)
		form.Add("line_quantity", item.Quantity.String())
		form.Add("line_rate", item.Rate.String())
	}
	return form
}
