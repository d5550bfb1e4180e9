package invoice

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

const (
	// MaxAmountDigits the digits allowed before the decimal point
	MaxAmountDigits = 12

	// MaxAmountPlaces the decimal places allowed in a quantity or amount
	MaxAmountPlaces = 4
)

var (
	// ErrAmountFormat the input is not a plain decimal number within range
	ErrAmountFormat = fmt.Errorf("must be a number with at most %d digits and %d decimal places", MaxAmountDigits, MaxAmountPlaces)

	// ErrAmountRange the decoded number is too large or too precise
	ErrAmountRange = fmt.Errorf("amount out of range, at most %d digits and %d decimal places", MaxAmountDigits, MaxAmountPlaces)
)

var reAmount = regexp.MustCompile(fmt.Sprintf(`^-?[0-9]{1,%d}(\.[0-9]{1,%d})?$`, MaxAmountDigits, MaxAmountPlaces))

var maxAmount = decimal.New(1, MaxAmountDigits)

var symbols = map[string]string{
	"GBP": "£",
	"EUR": "€",
	"USD": "$",
}

// FormatMoney pounds with thousands separators: £1,234.50, -£12.00
func FormatMoney(v decimal.Decimal) string {
	return FormatCurrency(v, "GBP")
}

// FormatCurrency format an amount in the given ISO currency
func FormatCurrency(v decimal.Decimal, code string) string {
	code = strings.ToUpper(code)
	symbol, has := symbols[code]
	if !has {
		symbol = code + " "
	}

	whole, fraction, _ := strings.Cut(v.Round(2).Abs().StringFixed(2), ".")
	var b strings.Builder
	for i := 0; i < len(whole); i++ {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteByte(whole[i])
	}
	formatted := b.String() + "." + fraction
	if v.Round(2).IsNegative() {
		return "-" + symbol + formatted
	}
	return symbol + formatted
}

// ValidCurrency the code is an ISO 4217 currency
func ValidCurrency(code string) bool {
	_, err := currency.ParseISO(code)
	return err == nil
}

var amountReplacer = strings.NewReplacer("£", "", "€", "", "$", "", ",", "", " ", "")

// ParseAmount parse a money or quantity input, currency symbols, spaces
// and thousands separators are ignored: "£1,250.00" -> 1250. Exponents are
// rejected, the value is limited to MaxAmountDigits and MaxAmountPlaces.
func ParseAmount(value string) (decimal.Decimal, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.Zero, nil
	}
	value = amountReplacer.Replace(value)
	if !reAmount.MatchString(value) {
		return decimal.Zero, ErrAmountFormat
	}
	return decimal.NewFromString(value)
}

// CheckAmount the decoded value is within MaxAmountDigits and MaxAmountPlaces
func CheckAmount(v decimal.Decimal) error {
	if v.Exponent() < -MaxAmountPlaces {
		return ErrAmountRange
	}
	if v.Exponent() > MaxAmountDigits || v.Abs().GreaterThanOrEqual(maxAmount) {
		return ErrAmountRange
	}
	return nil
}

// FormatDate a long British date: 2 January 2026
func FormatDate(value string) string {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return value
	}
	return t.Format("2 January 2006")
}

// FormatQuantity a quantity without trailing zeros
func FormatQuantity(v decimal.Decimal) string {
	return v.String()
}

// Summarize the formatted totals and labels for display
func (inv *InvoiceData) Summarize() Summary {
	t := inv.Totals
	code := inv.Currency
	if code == "" {
		code = "GBP"
	}

	s := Summary{
		Subtotal:    FormatCurrency(t.Subtotal, code),
		VATLabel:    "VAT (" + inv.VATRate.String() + ")",
		VATAmount:   FormatCurrency(t.VATAmount, code),
		TotalAmount: FormatCurrency(t.TotalAmount, code),
		AmountDue:   FormatCurrency(t.AmountDue, code),
	}

	if inv.ReverseCharge {
		s.VATLabel = "VAT (reverse charge)"
		s.Notice = "Reverse charge: customer to account for VAT to HMRC."
	} else if inv.VATRate.Exempt() {
		s.VATLabel = "VAT (exempt)"
	}

	if !inv.Discount.IsZero() {
		s.Discount = FormatCurrency(inv.Discount, code)
	}

	if inv.CISRate > 0 {
		s.CISLabel = "CIS deduction (" + inv.CISRate.String() + ")"
		s.CISDeduction = FormatCurrency(t.CISDeduction, code)
	}
	return s
}
