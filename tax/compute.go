package tax

import "github.com/shopspring/decimal"

// Places money values are rounded to pence
const Places = 2

var hundred = decimal.NewFromInt(100)

// Line a quantity and unit rate
type Line struct {
	Quantity decimal.Decimal `json:"quantity"`
	Rate     decimal.Decimal `json:"rate"`
}

// Input the calculator input
type Input struct {
	Lines         []Line          `json:"lines"`
	VATRate       VATRate         `json:"vat_rate"`
	ReverseCharge bool            `json:"reverse_charge"`
	Discount      decimal.Decimal `json:"discount"`
	CISRate       CISRate         `json:"cis_rate"`
}

// Totals the derived invoice totals
type Totals struct {
	Subtotal     decimal.Decimal `json:"subtotal"`
	VATAmount    decimal.Decimal `json:"vat_amount"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	CISDeduction decimal.Decimal `json:"cis_deduction"`
	AmountDue    decimal.Decimal `json:"amount_due"`
}

// Round round a money value to pence, half away from zero
func Round(v decimal.Decimal) decimal.Decimal {
	return v.Round(Places)
}

// LineAmount quantity * rate
func LineAmount(quantity, rate decimal.Decimal) decimal.Decimal {
	return Round(quantity.Mul(rate))
}

// Subtotal the sum of quantity * rate over the lines, rounded once. Line
// amounts shown on a document may not add up to it to the penny.
func Subtotal(lines []Line) decimal.Decimal {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.Quantity.Mul(line.Rate))
	}
	return Round(subtotal)
}

// ComputeVAT the VAT on the subtotal. Zero when the reverse charge applies
// or the supply is exempt.
func ComputeVAT(subtotal decimal.Decimal, rate VATRate, reverseCharge bool) decimal.Decimal {
	if reverseCharge || rate.Exempt() || rate == VATZero {
		return decimal.Zero
	}
	return Round(subtotal.Mul(decimal.NewFromInt(int64(rate))).Div(hundred))
}

// ComputeCIS the CIS deduction on the invoice total (after VAT and discount)
func ComputeCIS(total decimal.Decimal, rate CISRate) decimal.Decimal {
	if rate == CISNone {
		return decimal.Zero
	}
	return Round(total.Mul(decimal.NewFromInt(int64(rate))).Div(hundred))
}

// Compute the invoice totals. The order is fixed: subtotal, VAT on the
// subtotal, discount, then the CIS deduction on the discounted total.
// Negative results are returned as they are.
func Compute(in Input) Totals {
	subtotal := Subtotal(in.Lines)
	vat := ComputeVAT(subtotal, in.VATRate, in.ReverseCharge)
	total := subtotal.Add(vat).Sub(Round(in.Discount))
	cis := ComputeCIS(total, in.CISRate)
	return Totals{
		Subtotal:     subtotal,
		VATAmount:    vat,
		TotalAmount:  total,
		CISDeduction: cis,
		AmountDue:    total.Sub(cis),
	}
}

// Equal the totals are numerically equal
func (t Totals) Equal(other Totals) bool {
	return t.Subtotal.Equal(other.Subtotal) &&
		t.VATAmount.Equal(other.VATAmount) &&
		t.TotalAmount.Equal(other.TotalAmount) &&
		t.CISDeduction.Equal(other.CISDeduction) &&
		t.AmountDue.Equal(other.AmountDue)
}
