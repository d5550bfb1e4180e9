package pages

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-multierror"
	"github.com/invoiceflow/site/excel"
	"github.com/invoiceflow/site/invoice"
	"github.com/invoiceflow/site/seo"
	"github.com/invoiceflow/site/tax"
	"github.com/shopspring/decimal"
	"github.com/yaoapp/kun/log"
)

// Generator form actions
const (
	ActionCalculate = "calculate"
	ActionAdd       = "add"
	ActionRemove    = "remove:"
	ActionPDF       = "pdf"
	ActionXLSX      = "xlsx"
	ActionPreview   = "preview"
)

const generatorPath = "/invoice-generator"

// maxShareURL longer invoices get no share link
const maxShareURL = 2000

type generatorData struct {
	Invoice   *invoice.InvoiceData
	Summary   invoice.Summary
	Items     []invoice.LineItem
	Errors    map[string]string
	Failure   string
	Submitted bool
	VATRates  []tax.Option
	CISRates  []tax.Option
	Templates []invoice.Template
	Template  *invoice.Template
	ShareURL  string
}

// generator the form, prefilled from a template or from shared query values
func (h *Handler) generator(c *gin.Context) {
	query := c.Request.URL.Query()
	if _, shared := query["line_description"]; shared {
		inv, err := invoice.FromForm(query)
		h.renderGenerator(c, http.StatusOK, inv, err, "")
		return
	}

	inv := invoice.New()
	if slug := strings.TrimSpace(c.Query("template")); slug != "" {
		if prefilled, err := invoice.FromTemplate(slug); err == nil {
			inv = prefilled
		}
	}
	h.renderGenerator(c, http.StatusOK, inv, nil, "")
}

// shareURL the generator link that reopens the invoice, empty when it is too long
func shareURL(inv *invoice.InvoiceData) string {
	link := generatorPath + "?" + inv.Form().Encode()
	if len(link) > maxShareURL {
		return ""
	}
	return link
}

func (h *Handler) generatorSubmit(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		h.renderGenerator(c, http.StatusBadRequest, invoice.New(), nil, "The form could not be read. Please try again.")
		return
	}

	inv, parseErr := invoice.FromForm(c.Request.PostForm)
	action := c.PostForm("action")

	switch {
	case action == ActionAdd:
		inv.AddLineItem("", decimal.NewFromInt(1), decimal.Zero)
		h.renderGenerator(c, http.StatusOK, inv, parseErr, "")
		return

	case strings.HasPrefix(action, ActionRemove):
		if err := inv.RemoveLineItem(strings.TrimPrefix(action, ActionRemove)); err != nil {
			log.Warn("[pages] %s", err.Error())
		}
		if len(inv.LineItems) == 0 {
			inv.AddLineItem("", decimal.NewFromInt(1), decimal.Zero)
		}
		h.renderGenerator(c, http.StatusOK, inv, parseErr, "")
		return
	}

	err := multierror.Append(parseErr, inv.Validate()).ErrorOrNil()
	inv.NormalizeIdentifiers()

	switch action {
	case ActionPDF, ActionXLSX, ActionPreview:
		if err != nil {
			h.renderGenerator(c, http.StatusUnprocessableEntity, inv, err, "Please correct the highlighted fields.")
			return
		}
		h.download(c, action, inv)

	default:
		h.renderGenerator(c, http.StatusOK, inv, err, "")
	}
}

func (h *Handler) download(c *gin.Context, action string, inv *invoice.InvoiceData) {
	var buf bytes.Buffer
	var err error
	var contentType, filename string

	switch action {
	case ActionPDF:
		err = invoice.RenderPDF(&buf, inv)
		contentType, filename = "application/pdf", inv.Filename("pdf")
	case ActionXLSX:
		err = excel.Write(inv, &buf)
		contentType, filename = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", inv.Filename("xlsx")
	case ActionPreview:
		err = invoice.RenderPreview(&buf, inv)
		contentType = "text/html; charset=utf-8"
	}

	if err != nil {
		log.With(log.F{"action": action, "number": inv.Number}).Error("[pages] invoice export: %s", err.Error())
		h.renderGenerator(c, http.StatusInternalServerError, inv, nil, "We couldn't generate your invoice. Please try again.")
		return
	}

	if filename != "" {
		c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	}
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

func (h *Handler) renderGenerator(c *gin.Context, code int, inv *invoice.InvoiceData, err error, failure string) {
	link := ""
	if c.Request.Method == http.MethodPost && err == nil && failure == "" {
		link = shareURL(inv)
	}
	h.render(c, code, "generator", View{
		Meta: seo.Meta{
			Title:       "Free UK invoice generator",
			Description: "Create a UK invoice with VAT, CIS deductions and the domestic reverse charge worked out for you, then download it as a PDF.",
			Canonical:   seo.Absolute(h.BaseURL, generatorPath),
		},
		Graph: []interface{}{
			seo.NewWebApplication(h.BaseURL, "Free UK invoice generator", generatorPath,
				"Create VAT and CIS compliant invoices and download them as PDF or Excel."),
		},
		Crumbs: h.crumbs(seo.Crumb{Name: "Invoice generator"}),
		Data: generatorData{
			Invoice:   inv,
			Summary:   inv.Summarize(),
			Items:     inv.LineItems,
			Errors:    invoice.ErrorMap(err),
			Failure:   failure,
			Submitted: c.Request.Method == http.MethodPost,
			VATRates:  tax.VATRates(),
			CISRates:  tax.CISRates(),
			Templates: invoice.Templates(),
			Template:  invoice.TemplateBySlug(inv.Template),
			ShareURL:  link,
		},
	})
}
