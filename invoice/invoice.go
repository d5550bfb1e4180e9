package invoice

import (
	"fmt"
	"time"

	"github.com/invoiceflow/site/tax"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/shopspring/decimal"
)

// numberAlphabet no 0/O and 1/I look-alikes
const numberAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// DefaultTermsDays the default payment terms
const DefaultTermsDays = 30

// now is replaced in tests
var now = time.Now

// New a blank invoice with today's date, 30 day terms, standard rate VAT
// and one empty line.
func New() *InvoiceData {
	today := now()
	inv := &InvoiceData{
		Number:       NewNumber(),
		Date:         today.Format(DateLayout),
		DueDate:      today.AddDate(0, 0, DefaultTermsDays).Format(DateLayout),
		PaymentTerms: fmt.Sprintf("Payment due within %d days", DefaultTermsDays),
		Currency:     "GBP",
		VATRate:      tax.VATStandard,
		CISRate:      tax.CISNone,
		Discount:     decimal.Zero,
	}
	inv.AddLineItem("", decimal.NewFromInt(1), decimal.Zero)
	return inv
}

// NewNumber a new invoice number, INV- followed by eight characters
func NewNumber() string {
	id, err := gonanoid.Generate(numberAlphabet, 8)
	if err != nil {
		return fmt.Sprintf("INV-%d", now().Unix())
	}
	return "INV-" + id
}

func newLineID() string {
	id, err := gonanoid.Generate(idAlphabet, 10)
	if err != nil {
		return fmt.Sprintf("%d", now().UnixNano())
	}
	return id
}

// Input the calculator input of the invoice
func (inv *InvoiceData) Input() tax.Input {
	lines := make([]tax.Line, 0, len(inv.LineItems))
	for _, item := range inv.LineItems {
		lines = append(lines, tax.Line{Quantity: item.Quantity, Rate: item.Rate})
	}
	return tax.Input{
		Lines:         lines,
		VATRate:       inv.VATRate,
		ReverseCharge: inv.ReverseCharge,
		Discount:      inv.Discount,
		CISRate:       inv.CISRate,
	}
}

// Recalculate recompute the line amounts and the totals
func (inv *InvoiceData) Recalculate() *InvoiceData {
	for i := range inv.LineItems {
		item := &inv.LineItems[i]
		if item.ID == "" {
			item.ID = newLineID()
		}
		item.Amount = tax.LineAmount(item.Quantity, item.Rate)
	}
	inv.Totals = tax.Compute(inv.Input())
	return inv
}

// AddLineItem append a line and recalculate, returns the new line id
func (inv *InvoiceData) AddLineItem(description string, quantity, rate decimal.Decimal) string {
	item := LineItem{
		ID:          newLineID(),
		Description: description,
		Quantity:    quantity,
		Rate:        rate,
	}
	inv.LineItems = append(inv.LineItems, item)
	inv.Recalculate()
	return item.ID
}

// UpdateLineItem replace the description, quantity and rate of a line
func (inv *InvoiceData) UpdateLineItem(id string, description string, quantity, rate decimal.Decimal) error {
	for i := range inv.LineItems {
		if inv.LineItems[i].ID == id {
			inv.LineItems[i].Description = description
			inv.LineItems[i].Quantity = quantity
			inv.LineItems[i].Rate = rate
			inv.Recalculate()
			return nil
		}
	}
	return fmt.Errorf("line item %s not found", id)
}

// RemoveLineItem remove a line and recalculate
func (inv *InvoiceData) RemoveLineItem(id string) error {
	for i := range inv.LineItems {
		if inv.LineItems[i].ID == id {
			inv.LineItems = append(inv.LineItems[:i], inv.LineItems[i+1:]...)
			inv.Recalculate()
			return nil
		}
	}
	return fmt.Errorf("line item %s not found", id)
}

// SetRates change the VAT and CIS settings and recalculate
func (inv *InvoiceData) SetRates(vat tax.VATRate, reverseCharge bool, cis tax.CISRate) {
	inv.VATRate = vat
	inv.ReverseCharge = reverseCharge
	inv.CISRate = cis
	inv.Recalculate()
}

// SetDiscount change the discount and recalculate
func (inv *InvoiceData) SetDiscount(discount decimal.Decimal) {
	inv.Discount = discount
	inv.Recalculate()
}

// Filled the lines that carry a description or an amount, blank form
// rows are skipped on output.
func (inv *InvoiceData) Filled() []LineItem {
	items := make([]LineItem, 0, len(inv.LineItems))
	for _, item := range inv.LineItems {
		if item.Description == "" && item.Amount.IsZero() {
			continue
		}
		items = append(items, item)
	}
	return items
}

// Filename the download file name for the given extension
func (inv *InvoiceData) Filename(ext string) string {
	name := inv.Number
	if name == "" {
		name = "invoice"
	}
	return sanitizeFilename(name) + "." + ext
}

func sanitizeFilename(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			out = append(out, r)
		case r == ' ', r == '/', r == '.':
			out = append(out, '-')
		}
	}
	if len(out) == 0 {
		return "invoice"
	}
	return string(out)
}
