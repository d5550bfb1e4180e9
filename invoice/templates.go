package invoice

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/invoiceflow/site/tax"
	"gopkg.in/yaml.v3"
)

//go:embed templates.yaml
var templatesSource []byte

// Template a prefilled invoice for an industry
type Template struct {
	Slug          string      `json:"slug" yaml:"slug"`
	Name          string      `json:"name" yaml:"name"`
	Industry      string      `json:"industry" yaml:"industry"`
	Description   string      `json:"description" yaml:"description"`
	VATRate       tax.VATRate `json:"vat_rate" yaml:"vat_rate"`
	CISRate       tax.CISRate `json:"cis_rate" yaml:"cis_rate"`
	ReverseCharge bool        `json:"reverse_charge" yaml:"reverse_charge"`
	PaymentTerms  string      `json:"payment_terms,omitempty" yaml:"payment_terms"`
	Notes         string      `json:"notes,omitempty" yaml:"notes"`
	LineItems     []LineItem  `json:"line_items" yaml:"line_items"`
}

var (
	templates     []Template
	templateIndex map[string]int
	templateOnce  sync.Once
)

func loadTemplates() {
	templateOnce.Do(func() {
		if err := yaml.Unmarshal(templatesSource, &templates); err != nil {
			panic(fmt.Sprintf("invoice templates: %s", err))
		}
		templateIndex = make(map[string]int, len(templates))
		for i := range templates {
			for j := range templates[i].LineItems {
				item := &templates[i].LineItems[j]
				item.Amount = tax.LineAmount(item.Quantity, item.Rate)
			}
			templateIndex[templates[i].Slug] = i
		}
	})
}

// Templates the template library, in display order
func Templates() []Template {
	loadTemplates()
	return templates
}

// TemplateBySlug the template or nil when there is none
func TemplateBySlug(slug string) *Template {
	loadTemplates()
	i, has := templateIndex[slug]
	if !has {
		return nil
	}
	return &templates[i]
}

// FromTemplate a new invoice prefilled from the template
func FromTemplate(slug string) (*InvoiceData, error) {
	tpl := TemplateBySlug(slug)
	if tpl == nil {
		return nil, fmt.Errorf("template %s not found", slug)
	}

	inv := New()
	inv.Template = tpl.Slug
	inv.VATRate = tpl.VATRate
	inv.CISRate = tpl.CISRate
	inv.ReverseCharge = tpl.ReverseCharge
	if tpl.PaymentTerms != "" {
		inv.PaymentTerms = tpl.PaymentTerms
	}
	inv.Notes = tpl.Notes
	inv.LineItems = make([]LineItem, 0, len(tpl.LineItems))
	for _, item := range tpl.LineItems {
		inv.LineItems = append(inv.LineItems, LineItem{
			Description: item.Description,
			Quantity:    item.Quantity,
			Rate:        item.Rate,
		})
	}
	return inv.Recalculate(), nil
}
