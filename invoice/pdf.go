package invoice

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/invoiceflow/site/share"
)

const (
	pdfMargin     = 15.0
	pdfLineHeight = 5.0
)

type pdfWriter struct {
	pdf   *fpdf.Fpdf
	tr    func(string) string
	code  string
	width float64
}

// RenderPDF write the A4 PDF of the invoice
func RenderPDF(w io.Writer, inv *InvoiceData) error {
	inv.Recalculate()

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.SetTitle("Invoice "+inv.Number, true)
	pdf.SetAuthor(inv.Business.Name, true)
	pdf.SetCreator(share.PoweredBy, true)
	if t, err := time.Parse(DateLayout, inv.Date); err == nil {
		pdf.SetCreationDate(t)
	}

	code := inv.Currency
	if code == "" {
		code = "GBP"
	}

	pageWidth, _ := pdf.GetPageSize()
	pw := &pdfWriter{
		pdf:   pdf,
		tr:    pdf.UnicodeTranslatorFromDescriptor(""),
		code:  code,
		width: pageWidth - 2*pdfMargin,
	}

	pdf.AddPage()
	pw.header(inv)
	pw.parties(inv)
	pw.items(inv)
	pw.totals(inv)
	pw.footer(inv)

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

// PDFBase64 the download file name and the base64 encoded PDF
func PDFBase64(inv *InvoiceData) (string, string, error) {
	var buf bytes.Buffer
	if err := RenderPDF(&buf, inv); err != nil {
		return "", "", err
	}
	return inv.Filename("pdf"), base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func (pw *pdfWriter) text(style string, size float64, w float64, align string, txt string) {
	pw.pdf.SetFont("Helvetica", style, size)
	pw.pdf.CellFormat(w, pdfLineHeight+1, pw.tr(txt), "", 0, align, false, 0, "")
}

func (pw *pdfWriter) header(inv *InvoiceData) {
	pdf := pw.pdf
	half := pw.width / 2

	pw.text("B", 22, half, "L", "INVOICE")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(half, 10, pw.tr("Date: "+FormatDate(inv.Date)), "", 1, "R", false, 0, "")

	pw.text("", 10, half, "L", inv.Number)
	due := ""
	if inv.DueDate != "" {
		due = "Due: " + FormatDate(inv.DueDate)
	}
	pdf.CellFormat(half, pdfLineHeight+1, pw.tr(due), "", 1, "R", false, 0, "")

	if inv.Reference != "" {
		pw.text("", 10, pw.width, "L", "Ref: "+inv.Reference)
		pdf.Ln(-1)
	}
	if inv.PaymentTerms != "" {
		pdf.SetTextColor(107, 114, 128)
		pw.text("", 9, pw.width, "R", inv.PaymentTerms)
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(-1)
	}
	pdf.Ln(6)
}

func partyLines(p Party) []string {
	lines := []string{}
	for _, line := range strings.Split(strings.TrimSpace(p.Address), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	labelled := []struct{ label, value string }{
		{"", p.Postcode},
		{"", p.Email},
		{"", p.Phone},
		{"VAT No: ", p.VATNumber},
		{"Company No: ", p.CompanyNumber},
		{"UTR: ", p.UTR},
	}
	for _, l := range labelled {
		if l.value != "" {
			lines = append(lines, l.label+l.value)
		}
	}
	return lines
}

func (pw *pdfWriter) parties(inv *InvoiceData) {
	pdf := pw.pdf
	half := pw.width / 2

	pdf.SetTextColor(107, 114, 128)
	pw.text("", 9, half, "L", "From")
	pw.text("", 9, half, "L", "Bill to")
	pdf.Ln(-1)
	pdf.SetTextColor(0, 0, 0)

	pw.text("B", 11, half, "L", inv.Business.Name)
	pw.text("B", 11, half, "L", inv.Client.Name)
	pdf.Ln(-1)

	from := partyLines(inv.Business)
	to := partyLines(inv.Client)
	rows := len(from)
	if len(to) > rows {
		rows = len(to)
	}
	for i := 0; i < rows; i++ {
		left, right := "", ""
		if i < len(from) {
			left = from[i]
		}
		if i < len(to) {
			right = to[i]
		}
		pw.text("", 9, half, "L", left)
		pw.text("", 9, half, "L", right)
		pdf.Ln(-1)
	}
	pdf.Ln(8)
}

func (pw *pdfWriter) items(inv *InvoiceData) {
	pdf := pw.pdf
	widths := []float64{pw.width - 75, 20, 27.5, 27.5}
	headers := []string{"Description", "Qty", "Rate", "Amount"}
	aligns := []string{"L", "R", "R", "R"}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(243, 244, 246)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "B", 0, aligns[i], true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range inv.Filled() {
		cells := []string{
			item.Description,
			FormatQuantity(item.Quantity),
			FormatCurrency(item.Rate, pw.code),
			FormatCurrency(item.Amount, pw.code),
		}
		for i, c := range cells {
			pdf.CellFormat(widths[i], 7, pw.tr(c), "B", 0, aligns[i], false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(4)
}

func (pw *pdfWriter) totals(inv *InvoiceData) {
	pdf := pw.pdf
	s := inv.Summarize()
	label := 45.0
	value := 35.0
	indent := pw.width - label - value

	row := func(name string, amount string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetX(pdfMargin + indent)
		pdf.SetFont("Helvetica", style, 10)
		pdf.CellFormat(label, 7, pw.tr(name), "", 0, "L", false, 0, "")
		pdf.CellFormat(value, 7, pw.tr(amount), "", 1, "R", false, 0, "")
	}

	row("Subtotal", s.Subtotal, false)
	row(s.VATLabel, s.VATAmount, false)
	if s.Discount != "" {
		row("Discount", "-"+s.Discount, false)
	}
	row("Total", s.TotalAmount, false)
	if s.CISLabel != "" {
		row(s.CISLabel, "-"+s.CISDeduction, false)
	}
	row("Amount due", s.AmountDue, true)

	if s.Notice != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(pw.width, pdfLineHeight, pw.tr(s.Notice), "", "L", false)
	}
	pdf.Ln(8)
}

func (pw *pdfWriter) footer(inv *InvoiceData) {
	pdf := pw.pdf
	bank := inv.Bank
	details := []struct{ label, value string }{
		{"Bank", bank.BankName},
		{"Account name", bank.AccountName},
		{"Sort code", bank.SortCode},
		{"Account number", bank.AccountNumber},
		{"IBAN", bank.IBAN},
		{"SWIFT/BIC", bank.SWIFT},
	}

	printed := false
	for _, d := range details {
		if d.value == "" {
			continue
		}
		if !printed {
			pw.text("B", 10, pw.width, "L", "Payment details")
			pdf.Ln(-1)
			printed = true
		}
		pw.text("", 9, 35, "L", d.label)
		pw.text("", 9, pw.width-35, "L", d.value)
		pdf.Ln(-1)
	}

	if inv.Notes != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "", 9)
		pdf.MultiCell(pw.width, pdfLineHeight, pw.tr(inv.Notes), "", "L", false)
	}
}
