package invoice

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

//go:embed preview.html
var previewSource string

var previewTemplate = template.Must(template.New("preview").Funcs(Funcs).Parse(previewSource))

// Funcs the template helpers shared by the preview and the site pages
var Funcs = template.FuncMap{
	"money":    FormatMoney,
	"currency": FormatCurrency,
	"date":     FormatDate,
	"quantity": FormatQuantity,
	"decimal":  func(v decimal.Decimal) string { return v.StringFixed(2) },
	"lines":    func(s string) []string { return strings.Split(strings.TrimSpace(s), "\n") },
}

type previewData struct {
	Invoice *InvoiceData
	Items   []LineItem
	Summary Summary
	Code    string
}

// RenderPreview write the printable HTML page of the invoice
func RenderPreview(w io.Writer, inv *InvoiceData) error {
	inv.Recalculate()
	code := inv.Currency
	if code == "" {
		code = "GBP"
	}

	err := previewTemplate.Execute(w, previewData{
		Invoice: inv,
		Items:   inv.Filled(),
		Summary: inv.Summarize(),
		Code:    code,
	})
	if err != nil {
		return fmt.Errorf("render preview: %w", err)
	}
	return nil
}
