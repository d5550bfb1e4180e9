package excel

import (
	"fmt"

	"github.com/invoiceflow/site/invoice"
	"github.com/xuri/excelize/v2"
)

// WriteRow write the values at the current row and move to the next one
func (excel *Excel) WriteRow(values ...interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, excel.row)
	if err != nil {
		return err
	}
	if err := excel.SetSheetRow(excel.sheet, cell, &values); err != nil {
		return err
	}
	excel.row++
	return nil
}

// Style apply a named style to the cells of the last written row
func (excel *Excel) Style(name string, from string, to string) error {
	id, has := excel.styles[name]
	if !has {
		return fmt.Errorf("style %s not found", name)
	}
	row := excel.row - 1
	return excel.SetCellStyle(excel.sheet, fmt.Sprintf("%s%d", from, row), fmt.Sprintf("%s%d", to, row), id)
}

// Skip leave n empty rows
func (excel *Excel) Skip(n int) {
	excel.row += n
}

func (excel *Excel) writeHeader(inv *invoice.InvoiceData) error {
	if err := excel.WriteRow("INVOICE", nil, "Number", inv.Number); err != nil {
		return err
	}
	if err := excel.Style("title", "A", "A"); err != nil {
		return err
	}
	if err := excel.WriteRow(inv.Reference, nil, "Date", invoice.FormatDate(inv.Date)); err != nil {
		return err
	}
	if err := excel.WriteRow(inv.PaymentTerms, nil, "Due", invoice.FormatDate(inv.DueDate)); err != nil {
		return err
	}
	if err := excel.Style("muted", "A", "A"); err != nil {
		return err
	}
	excel.Skip(1)
	return nil
}

func (excel *Excel) writeParties(inv *invoice.InvoiceData) error {
	if err := excel.WriteRow("From", nil, "Bill to"); err != nil {
		return err
	}
	if err := excel.Style("muted", "A", "C"); err != nil {
		return err
	}

	left := partyLines(inv.Business)
	right := partyLines(inv.Client)
	rows := len(left)
	if len(right) > rows {
		rows = len(right)
	}
	for i := 0; i < rows; i++ {
		var a, c interface{}
		if i < len(left) {
			a = left[i]
		}
		if i < len(right) {
			c = right[i]
		}
		if err := excel.WriteRow(a, nil, c); err != nil {
			return err
		}
		if i == 0 {
			if err := excel.Style("bold", "A", "C"); err != nil {
				return err
			}
		}
	}
	excel.Skip(1)
	return nil
}

func partyLines(p invoice.Party) []string {
	lines := []string{p.Name}
	for _, v := range []string{p.Address, p.Postcode, p.Email, p.Phone} {
		if v != "" {
			lines = append(lines, v)
		}
	}
	if p.VATNumber != "" {
		lines = append(lines, "VAT No: "+p.VATNumber)
	}
	if p.CompanyNumber != "" {
		lines = append(lines, "Company No: "+p.CompanyNumber)
	}
	if p.UTR != "" {
		lines = append(lines, "UTR: "+p.UTR)
	}
	return lines
}

func (excel *Excel) writeItems(inv *invoice.InvoiceData) error {
	if err := excel.WriteRow("Description", "Qty", "Rate", "Amount"); err != nil {
		return err
	}
	if err := excel.Style("head", "A", "D"); err != nil {
		return err
	}

	for _, item := range inv.Filled() {
		row := excel.row
		err := excel.WriteRow(item.Description, item.Quantity.InexactFloat64(), item.Rate.InexactFloat64())
		if err != nil {
			return err
		}
		cell := fmt.Sprintf("D%d", row)
		if err := excel.SetCellFormula(excel.sheet, cell, fmt.Sprintf("ROUND(B%d*C%d,2)", row, row)); err != nil {
			return err
		}
		if err := excel.Style("money", "C", "D"); err != nil {
			return err
		}
	}
	excel.Skip(1)
	return nil
}

type totalRow struct {
	label string
	value float64
	style string
}

func (excel *Excel) writeTotals(inv *invoice.InvoiceData) error {
	s := inv.Summarize()
	t := inv.Totals

	rows := []totalRow{
		{"Subtotal", t.Subtotal.InexactFloat64(), "money"},
		{s.VATLabel, t.VATAmount.InexactFloat64(), "money"},
	}
	if !inv.Discount.IsZero() {
		rows = append(rows, totalRow{"Discount", inv.Discount.Neg().InexactFloat64(), "money"})
	}
	rows = append(rows, totalRow{"Total", t.TotalAmount.InexactFloat64(), "money"})
	if s.CISLabel != "" {
		rows = append(rows, totalRow{s.CISLabel, t.CISDeduction.Neg().InexactFloat64(), "money"})
	}
	rows = append(rows, totalRow{"Amount due", t.AmountDue.InexactFloat64(), "due"})

	for _, r := range rows {
		if err := excel.WriteRow(nil, nil, r.label, r.value); err != nil {
			return err
		}
		if err := excel.Style(r.style, "D", "D"); err != nil {
			return err
		}
	}

	if s.Notice != "" {
		excel.Skip(1)
		if err := excel.WriteRow(s.Notice); err != nil {
			return err
		}
	}
	excel.Skip(1)
	return nil
}

func (excel *Excel) writeBank(inv *invoice.InvoiceData) error {
	bank := inv.Bank
	details := [][2]string{
		{"Bank", bank.BankName},
		{"Account name", bank.AccountName},
		{"Sort code", bank.SortCode},
		{"Account number", bank.AccountNumber},
		{"IBAN", bank.IBAN},
		{"SWIFT/BIC", bank.SWIFT},
	}

	header := false
	for _, d := range details {
		if d[1] == "" {
			continue
		}
		if !header {
			if err := excel.WriteRow("Payment details"); err != nil {
				return err
			}
			if err := excel.Style("bold", "A", "A"); err != nil {
				return err
			}
			header = true
		}
		if err := excel.WriteRow(d[0]+": "+d[1]); err != nil {
			return err
		}
	}

	if inv.Notes != "" {
		excel.Skip(1)
		return excel.WriteRow(inv.Notes)
	}
	return nil
}
