package share

// SiteInfo the public facing site identity, used by page metadata,
// structured data, feeds and Open Graph images.
type SiteInfo struct {
	Name        string   `json:"name"`
	Domain      string   `json:"domain"`
	Legal       string   `json:"legal"`
	Tagline     string   `json:"tagline"`
	Description string   `json:"description"`
	Logo        string   `json:"logo"`
	Email       string   `json:"email"`
	Twitter     string   `json:"twitter"`
	Locale      string   `json:"locale"`
	Language    string   `json:"language"`
	SameAs      []string `json:"same_as"`
	SignupURL   string   `json:"signup_url"`
}

// Site the site identity
var Site = SiteInfo{
	Name:        "InvoiceFlow",
	Domain:      "invoiceflow.co.uk",
	Legal:       "InvoiceFlow Ltd",
	Tagline:     "Invoice processing for UK businesses",
	Description: "InvoiceFlow captures, checks and approves supplier invoices for UK businesses, with VAT, CIS and Making Tax Digital built in.",
	Logo:        "/static/logo.png",
	Email:       "hello@invoiceflow.co.uk",
	Twitter:     "@invoiceflowhq",
	Locale:      "en_GB",
	Language:    "en-GB",
	SameAs: []string{
		"https://www.linkedin.com/company/invoiceflow",
		"https://x.com/invoiceflowhq",
	},
	SignupURL: "https://app.invoiceflow.co.uk/signup",
}
