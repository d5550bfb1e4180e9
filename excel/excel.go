package excel

import (
	"fmt"
	"io"

	"github.com/invoiceflow/site/invoice"
	"github.com/xuri/excelize/v2"
)

// SheetName the invoice worksheet
const SheetName = "Invoice"

// Excel an invoice workbook
type Excel struct {
	sheet  string
	row    int
	styles map[string]int
	*excelize.File
}

// Export build the workbook of the invoice: header, parties, the line
// table (line amounts are formulas) and the totals block.
func Export(inv *invoice.InvoiceData) (*excelize.File, error) {
	inv.Recalculate()

	excel, err := New(SheetName)
	if err != nil {
		return nil, err
	}

	steps := []func(*invoice.InvoiceData) error{
		excel.writeHeader,
		excel.writeParties,
		excel.writeItems,
		excel.writeTotals,
		excel.writeBank,
	}
	for _, step := range steps {
		if err := step(inv); err != nil {
			excel.Close()
			return nil, fmt.Errorf("export %s: %w", inv.Number, err)
		}
	}
	return excel.File, nil
}

// Write export the invoice workbook to w
func Write(inv *invoice.InvoiceData, w io.Writer) error {
	file, err := Export(inv)
	if err != nil {
		return err
	}
	defer file.Close()
	return file.Write(w)
}

// New a workbook with a single named sheet
func New(sheet string) (*Excel, error) {
	file := excelize.NewFile()
	if err := file.SetSheetName("Sheet1", sheet); err != nil {
		file.Close()
		return nil, err
	}

	excel := &Excel{sheet: sheet, row: 1, File: file}
	if err := excel.setStyles(); err != nil {
		file.Close()
		return nil, err
	}

	widths := map[string]float64{"A": 48, "B": 12, "C": 16, "D": 16}
	for col, width := range widths {
		if err := file.SetColWidth(sheet, col, col, width); err != nil {
			file.Close()
			return nil, err
		}
	}
	return excel, nil
}

func (excel *Excel) setStyles() error {
	money := "£#,##0.00;-£#,##0.00"
	defs := map[string]*excelize.Style{
		"title": {Font: &excelize.Font{Bold: true, Size: 18}},
		"bold":  {Font: &excelize.Font{Bold: true}},
		"head": {
			Font: &excelize.Font{Bold: true},
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"F3F4F6"}},
		},
		"money":    {CustomNumFmt: &money},
		"due":      {CustomNumFmt: &money, Font: &excelize.Font{Bold: true}},
		"muted":    {Font: &excelize.Font{Color: "6B7280"}},
		"quantity": {NumFmt: 2},
	}

	excel.styles = map[string]int{}
	for name, style := range defs {
		id, err := excel.NewStyle(style)
		if err != nil {
			return err
		}
		excel.styles[name] = id
	}
	return nil
}
