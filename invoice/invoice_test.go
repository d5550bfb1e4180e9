package invoice

import (
	"bytes"
	"encoding/base64"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/invoiceflow/site/tax"
	"github.com/invoiceflow/site/utils/jsonschema"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func fixedNow(t *testing.T) {
	now = func() time.Time { return time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { now = time.Now })
}

func prepare() *InvoiceData {
	inv := New()
	inv.Business = Party{
		Name:      "Oak Joinery Ltd",
		Address:   "1 High Street\nLeeds",
		Postcode:  "ls1 4dy",
		Email:     "accounts@oakjoinery.co.uk",
		VATNumber: "999999973",
		UTR:       "2234567890",
	}
	inv.Client = Party{Name: "Northern Builds Ltd", VATNumber: "GB123456782"}
	inv.LineItems = nil
	inv.AddLineItem("Kitchen fit", d("1"), d("2500"))
	return inv
}

func TestNew(t *testing.T) {
	fixedNow(t)
	inv := New()
	assert.True(t, strings.HasPrefix(inv.Number, "INV-"))
	assert.Len(t, inv.Number, 12)
	assert.Equal(t, "2026-03-02", inv.Date)
	assert.Equal(t, "2026-04-01", inv.DueDate)
	assert.Equal(t, "GBP", inv.Currency)
	assert.Equal(t, tax.VATStandard, inv.VATRate)
	assert.Equal(t, tax.CISNone, inv.CISRate)
	require.Len(t, inv.LineItems, 1)
	assert.NotEmpty(t, inv.LineItems[0].ID)
	assert.True(t, inv.Totals.AmountDue.IsZero())
	assert.NotEqual(t, inv.Number, New().Number)
}

func TestLineItems(t *testing.T) {
	inv := New()
	inv.LineItems = nil

	a := inv.AddLineItem("Labour", d("3"), d("150"))
	b := inv.AddLineItem("Materials", d("1"), d("99.99"))
	assert.True(t, inv.LineItems[0].Amount.Equal(d("450")))
	assert.True(t, inv.Totals.Subtotal.Equal(d("549.99")))
	assert.True(t, inv.Totals.VATAmount.Equal(d("110")))
	assert.True(t, inv.Totals.TotalAmount.Equal(d("659.99")))

	require.NoError(t, inv.UpdateLineItem(b, "Materials", d("2"), d("100")))
	assert.True(t, inv.LineItems[1].Amount.Equal(d("200")))
	assert.True(t, inv.Totals.Subtotal.Equal(d("650")))

	require.NoError(t, inv.RemoveLineItem(a))
	require.Len(t, inv.LineItems, 1)
	assert.True(t, inv.Totals.Subtotal.Equal(d("200")))

	assert.Error(t, inv.RemoveLineItem("missing"))
	assert.Error(t, inv.UpdateLineItem("missing", "", d("1"), d("1")))
}

func TestRatesAndDiscount(t *testing.T) {
	inv := prepare()
	inv.SetRates(tax.VATStandard, false, tax.CISRegistered)
	assert.True(t, inv.Totals.VATAmount.Equal(d("500")))
	assert.True(t, inv.Totals.TotalAmount.Equal(d("3000")))
	assert.True(t, inv.Totals.CISDeduction.Equal(d("600")))
	assert.True(t, inv.Totals.AmountDue.Equal(d("2400")))

	inv.SetRates(tax.VATStandard, true, tax.CISNone)
	assert.True(t, inv.Totals.VATAmount.IsZero())
	assert.True(t, inv.Totals.AmountDue.Equal(d("2500")))

	inv.SetRates(tax.VATZero, false, tax.CISNone)
	inv.SetDiscount(d("100"))
	assert.True(t, inv.Totals.TotalAmount.Equal(d("2400")))
}

func TestFilledAndFilename(t *testing.T) {
	inv := prepare()
	inv.AddLineItem("", d("1"), decimal.Zero)
	assert.Len(t, inv.LineItems, 2)
	assert.Len(t, inv.Filled(), 1)

	inv.Number = "INV 2026/001"
	assert.Equal(t, "INV-2026-001.pdf", inv.Filename("pdf"))
	inv.Number = ""
	assert.Equal(t, "invoice.xlsx", inv.Filename("xlsx"))
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "£1,234.50", FormatMoney(d("1234.5")))
	assert.Equal(t, "£0.00", FormatMoney(decimal.Zero))
	assert.Equal(t, "-£12.00", FormatMoney(d("-12")))
	assert.Equal(t, "£1,000,000.00", FormatMoney(d("1000000")))
	assert.Equal(t, "£12,345,678,901,234,567.89", FormatMoney(d("12345678901234567.89")))
	assert.Equal(t, "-£100.01", FormatMoney(d("-100.005")))
	assert.Equal(t, "£0.00", FormatMoney(d("-0.001")))
	assert.Equal(t, "£999.00", FormatMoney(d("999")))
	assert.Equal(t, "€99.99", FormatCurrency(d("99.99"), "eur"))
	assert.Equal(t, "CHF 5.00", FormatCurrency(d("5"), "CHF"))

	assert.True(t, ValidCurrency("GBP"))
	assert.False(t, ValidCurrency("XXQ"))

	v, err := ParseAmount("£1,250.00")
	require.NoError(t, err)
	assert.True(t, v.Equal(d("1250")))
	v, err = ParseAmount("")
	require.NoError(t, err)
	assert.True(t, v.IsZero())
	_, err = ParseAmount("ten")
	assert.Error(t, err)

	assert.Equal(t, "2 March 2026", FormatDate("2026-03-02"))
	assert.Equal(t, "soon", FormatDate("soon"))
	assert.Equal(t, "1.5", FormatQuantity(d("1.50")))
}

func TestSummarize(t *testing.T) {
	inv := prepare()
	inv.SetRates(tax.VATStandard, false, tax.CISRegistered)
	s := inv.Summarize()
	assert.Equal(t, "£2,500.00", s.Subtotal)
	assert.Equal(t, "VAT (20%)", s.VATLabel)
	assert.Equal(t, "£500.00", s.VATAmount)
	assert.Equal(t, "£3,000.00", s.TotalAmount)
	assert.Equal(t, "CIS deduction (20%)", s.CISLabel)
	assert.Equal(t, "£600.00", s.CISDeduction)
	assert.Equal(t, "£2,400.00", s.AmountDue)
	assert.Empty(t, s.Notice)

	inv.SetRates(tax.VATStandard, true, tax.CISNone)
	s = inv.Summarize()
	assert.Equal(t, "VAT (reverse charge)", s.VATLabel)
	assert.Contains(t, s.Notice, "Reverse charge")
	assert.Empty(t, s.CISLabel)

	inv.SetRates(tax.VATExempt, false, tax.CISNone)
	assert.Equal(t, "VAT (exempt)", inv.Summarize().VATLabel)
}

func TestValidate(t *testing.T) {
	inv := prepare()
	assert.NoError(t, inv.Validate())

	inv = New()
	inv.Date = "02/03/2026"
	inv.Business.Postcode = "NOT A POSTCODE"
	inv.Business.Email = "nobody"
	inv.Client.VATNumber = "GB123456789"
	inv.Bank.SortCode = "12-34"
	inv.Bank.IBAN = "GB00WEST12345698765432"
	inv.LineItems[0].Quantity = d("-1")
	inv.Discount = d("-5")
	inv.VATRate = tax.VATRate(17)
	inv.CISRate = tax.CISRate(10)

	errs := ErrorMap(inv.Validate())
	for _, field := range []string{
		"date", "business.name", "client.name", "business.postcode", "business.email",
		"client.vat_number", "bank.sort_code", "bank.iban", "line_items",
		"line_items[0].quantity", "discount", "vat_rate", "cis_rate",
	} {
		assert.Contains(t, errs, field)
	}
}

func TestValidateTaxRules(t *testing.T) {
	inv := prepare()
	inv.DueDate = "2026-01-01"
	inv.Date = "2026-02-01"
	assert.Contains(t, ErrorMap(inv.Validate()), "due_date")

	inv = prepare()
	inv.Business.VATNumber = ""
	assert.Contains(t, ErrorMap(inv.Validate()), "business.vat_number")

	inv.VATRate = tax.VATZero
	assert.NoError(t, inv.Validate())

	inv = prepare()
	inv.ReverseCharge = true
	inv.Client.VATNumber = ""
	assert.Contains(t, ErrorMap(inv.Validate()), "client.vat_number")

	inv = prepare()
	inv.CISRate = tax.CISRegistered
	inv.Business.UTR = ""
	assert.Contains(t, ErrorMap(inv.Validate()), "business.utr")
}

func TestFieldErrors(t *testing.T) {
	assert.Nil(t, FieldErrors(nil))

	inv := New()
	fields := FieldErrors(inv.Validate())
	require.NotEmpty(t, fields)
	for _, f := range fields {
		assert.NotEmpty(t, f.Field)
		assert.NotEmpty(t, f.Message)
	}

	fields = FieldErrors(assert.AnError)
	require.Len(t, fields, 1)
	assert.Empty(t, fields[0].Field)
}

func TestNormalizeIdentifiers(t *testing.T) {
	inv := prepare()
	inv.Bank.SortCode = "123456"
	inv.Bank.IBAN = "gb82west12345698765432"
	inv.Client.Postcode = "nonsense"
	inv.NormalizeIdentifiers()

	assert.Equal(t, "LS1 4DY", inv.Business.Postcode)
	assert.Equal(t, "GB 999 9999 73", inv.Business.VATNumber)
	assert.Equal(t, "22345 67890", inv.Business.UTR)
	assert.Equal(t, "12-34-56", inv.Bank.SortCode)
	assert.Equal(t, "GB82 WEST 1234 5698 7654 32", inv.Bank.IBAN)
	assert.Equal(t, "nonsense", inv.Client.Postcode)
}

func TestTemplates(t *testing.T) {
	list := Templates()
	require.NotEmpty(t, list)

	seen := map[string]bool{}
	for _, tpl := range list {
		assert.False(t, seen[tpl.Slug], tpl.Slug)
		seen[tpl.Slug] = true
		assert.NotEmpty(t, tpl.Name)
		assert.True(t, tpl.VATRate.Valid(), tpl.Slug)
		assert.True(t, tpl.CISRate.Valid(), tpl.Slug)
		assert.NotEmpty(t, tpl.LineItems, tpl.Slug)
		assert.Same(t, TemplateBySlug(tpl.Slug), TemplateBySlug(tpl.Slug))
	}

	assert.Nil(t, TemplateBySlug("no-such-template"))

	inv, err := FromTemplate("construction-cis")
	require.NoError(t, err)
	assert.Equal(t, "construction-cis", inv.Template)
	assert.Equal(t, tax.CISRegistered, inv.CISRate)
	assert.True(t, inv.Totals.Subtotal.Equal(d("1350")))
	assert.True(t, inv.Totals.CISDeduction.Equal(d("324")))
	for _, item := range inv.LineItems {
		assert.NotEmpty(t, item.ID)
	}

	_, err = FromTemplate("no-such-template")
	assert.Error(t, err)
}

func TestDecode(t *testing.T) {
	payload := []byte(`{
		"number": "INV-1",
		"date": "2026-03-02",
		"currency": "gbp",
		"business": {"name": "Oak Joinery Ltd", "vat_number": "GB999999973", "utr": "2234567890"},
		"client": {"name": "Northern Builds Ltd"},
		"line_items": [{"description": "Kitchen fit", "quantity": 1, "rate": "2500"}],
		"vat_rate": 20,
		"cis_rate": 20
	}`)

	inv, err := Decode(payload)
	require.NoError(t, err)
	assert.Equal(t, "GBP", inv.Currency)
	assert.True(t, inv.Totals.AmountDue.Equal(d("2400")))
	assert.NoError(t, inv.Validate())

	_, err = Decode([]byte(`{"vat_rate": "twenty"}`))
	var verr *jsonschema.ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = Decode([]byte(`{"line_items": [{"rate": "12abc"}]}`))
	assert.ErrorAs(t, err, &verr)

	_, err = Decode([]byte(`{`))
	assert.Error(t, err)
}

func TestAmountBounds(t *testing.T) {
	v, err := ParseAmount("-999,999,999,999.9999")
	require.NoError(t, err)
	assert.True(t, v.Equal(d("-999999999999.9999")))

	for _, value := range []string{"1e20000000", "1E5", "1e-20000000", "1000000000000", "0.00001", "1.2.3", "--1", "."} {
		_, err := ParseAmount(value)
		assert.ErrorIs(t, err, ErrAmountFormat, value)
	}

	assert.NoError(t, CheckAmount(d("999999999999.99")))
	assert.ErrorIs(t, CheckAmount(d("1e12")), ErrAmountRange)
	assert.ErrorIs(t, CheckAmount(d("-1e12")), ErrAmountRange)
	assert.ErrorIs(t, CheckAmount(d("1e-20000000")), ErrAmountRange)
	assert.ErrorIs(t, CheckAmount(d("1e20000000")), ErrAmountRange)

	_, err = Decode([]byte(`{"line_items": [{"quantity": 1e-20000000, "rate": 1}]}`))
	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "line_items[0].quantity", fe.Field)

	var verr *jsonschema.ValidationError
	_, err = Decode([]byte(`{"line_items": [{"quantity": 1, "rate": 2000000000000}]}`))
	assert.ErrorAs(t, err, &verr)
	_, err = Decode([]byte(`{"discount": "0.000001"}`))
	assert.ErrorAs(t, err, &verr)
	_, err = Decode([]byte(`{"line_items": [{"quantity": 1e20000000, "rate": 1}]}`))
	assert.Error(t, err)

	inv, err := FromForm(url.Values{"line_description": {"Labour"}, "line_quantity": {"1e20000000"}, "line_rate": {"10"}})
	assert.Contains(t, ErrorMap(err), "line_items[0].quantity")
	assert.True(t, inv.LineItems[0].Quantity.IsZero())
	assert.True(t, inv.Totals.Subtotal.IsZero())
}

func TestFromForm(t *testing.T) {
	form := url.Values{
		"number":            {"INV-7"},
		"date":              {"2026-03-02"},
		"business_name":     {"Oak Joinery Ltd"},
		"client_name":       {"Northern Builds Ltd"},
		"vat_rate":          {"20"},
		"cis_rate":          {"20"},
		"reverse_charge":    {"true"},
		"discount":          {"£100"},
		"line_id":           {"a", "b"},
		"line_description":  {"Labour", "Materials"},
		"line_quantity":     {"2", ""},
		"line_rate":         {"1,000", "600"},
		"bank_sort_code":    {"12-34-56"},
		"bank_account_name": {"Oak Joinery"},
	}

	inv, err := FromForm(form)
	require.NoError(t, err)
	require.Len(t, inv.LineItems, 2)
	assert.Equal(t, "a", inv.LineItems[0].ID)
	assert.True(t, inv.LineItems[1].Quantity.Equal(d("1")))
	assert.True(t, inv.ReverseCharge)
	assert.True(t, inv.Totals.Subtotal.Equal(d("2600")))
	assert.True(t, inv.Totals.VATAmount.IsZero())
	assert.True(t, inv.Totals.TotalAmount.Equal(d("2500")))
	assert.True(t, inv.Totals.AmountDue.Equal(d("2000")))
	assert.Equal(t, "12-34-56", inv.Bank.SortCode)

	back, err := FromForm(inv.Form())
	require.NoError(t, err)
	assert.True(t, back.Totals.Equal(inv.Totals))
	assert.Equal(t, inv.Business, back.Business)

	form.Set("vat_rate", "17")
	form["line_rate"] = []string{"abc", "1"}
	inv, err = FromForm(form)
	errs := ErrorMap(err)
	assert.Contains(t, errs, "vat_rate")
	assert.Contains(t, errs, "line_items[0].rate")
	assert.Equal(t, tax.VATStandard, inv.VATRate)
}

func TestRenderPreview(t *testing.T) {
	inv := prepare()
	inv.Bank = BankDetails{SortCode: "12-34-56", AccountNumber: "12345678"}
	inv.SetRates(tax.VATStandard, true, tax.CISRegistered)

	var buf bytes.Buffer
	require.NoError(t, RenderPreview(&buf, inv))

	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	assert.Equal(t, "Invoice "+inv.Number, doc.Find("title").Text())
	assert.Equal(t, 1, doc.Find("tbody tr").Length())
	assert.Contains(t, doc.Find(".totals").Text(), "VAT (reverse charge)")
	assert.Contains(t, doc.Find(".due").Text(), "£2,000.00")
	assert.Contains(t, doc.Find(".notice").Text(), "Reverse charge")
	assert.Contains(t, doc.Find("footer").Text(), "12-34-56")
}

func TestRenderPDF(t *testing.T) {
	inv := prepare()
	inv.Notes = "Thank you £"
	inv.Bank = BankDetails{BankName: "Lloyds", IBAN: "GB82 WEST 1234 5698 7654 32"}
	inv.SetRates(tax.VATStandard, false, tax.CISRegistered)

	var buf bytes.Buffer
	require.NoError(t, RenderPDF(&buf, inv))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))

	filename, data, err := PDFBase64(inv)
	require.NoError(t, err)
	assert.Equal(t, inv.Number+".pdf", filename)
	raw, err := base64.StdEncoding.DecodeString(data)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF-")))
}
