package tax

import (
	"fmt"
	"strconv"
	"strings"
)

// VATRate a UK VAT rate in percent. VATExempt is a sentinel, not a percentage.
type VATRate int

// VAT rates
const (
	VATExempt   VATRate = -1 // Exempt supplies, no VAT is charged
	VATZero     VATRate = 0  // Zero-rated supplies
	VATReduced  VATRate = 5  // Reduced rate (domestic fuel, energy saving)
	VATStandard VATRate = 20 // Standard rate
)

// CISRate a Construction Industry Scheme deduction rate in percent.
type CISRate int

// CIS deduction rates
const (
	CISNone         CISRate = 0  // Gross payment status or not a CIS payment
	CISRegistered   CISRate = 20 // Subcontractor registered with HMRC
	CISUnregistered CISRate = 30 // Subcontractor not registered with HMRC
)

// Option a select option for forms
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var vatRates = []VATRate{VATStandard, VATReduced, VATZero, VATExempt}
var cisRates = []CISRate{CISNone, CISRegistered, CISUnregistered}

// Valid the rate is one of the UK VAT rates
func (r VATRate) Valid() bool {
	for _, rate := range vatRates {
		if r == rate {
			return true
		}
	}
	return false
}

// Exempt the rate is the exempt sentinel
func (r VATRate) Exempt() bool {
	return r == VATExempt
}

// String the display label, "20%" or "Exempt"
func (r VATRate) String() string {
	if r == VATExempt {
		return "Exempt"
	}
	return fmt.Sprintf("%d%%", int(r))
}

// Label the long label used in rate pickers
func (r VATRate) Label() string {
	switch r {
	case VATStandard:
		return "20% (Standard rate)"
	case VATReduced:
		return "5% (Reduced rate)"
	case VATZero:
		return "0% (Zero rated)"
	case VATExempt:
		return "Exempt"
	}
	return r.String()
}

// Valid the rate is one of the CIS deduction rates
func (r CISRate) Valid() bool {
	for _, rate := range cisRates {
		if r == rate {
			return true
		}
	}
	return false
}

// String the display label
func (r CISRate) String() string {
	return fmt.Sprintf("%d%%", int(r))
}

// Label the long label used in rate pickers
func (r CISRate) Label() string {
	switch r {
	case CISNone:
		return "No CIS deduction"
	case CISRegistered:
		return "20% (Registered subcontractor)"
	case CISUnregistered:
		return "30% (Unregistered subcontractor)"
	}
	return r.String()
}

// VATRates the VAT rate options
func VATRates() []Option {
	options := make([]Option, 0, len(vatRates))
	for _, rate := range vatRates {
		options = append(options, Option{Value: strconv.Itoa(int(rate)), Label: rate.Label()})
	}
	return options
}

// CISRates the CIS rate options
func CISRates() []Option {
	options := make([]Option, 0, len(cisRates))
	for _, rate := range cisRates {
		options = append(options, Option{Value: strconv.Itoa(int(rate)), Label: rate.Label()})
	}
	return options
}

// ParseVATRate parse a VAT rate from a form value: "20", "20%", "exempt" or "-1".
// An empty value is the standard rate.
func ParseVATRate(value string) (VATRate, error) {
	value = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(value), "%"))
	if value == "" {
		return VATStandard, nil
	}

	if strings.EqualFold(value, "exempt") {
		return VATExempt, nil
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid VAT rate %q", value)
	}

	rate := VATRate(n)
	if !rate.Valid() {
		return 0, fmt.Errorf("unsupported VAT rate %q, expected 0, 5, 20 or exempt", value)
	}
	return rate, nil
}

// ParseCISRate parse a CIS rate from a form value: "0", "20", "30" or "20%".
// An empty value is no deduction.
func ParseCISRate(value string) (CISRate, error) {
	value = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(value), "%"))
	if value == "" {
		return CISNone, nil
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid CIS rate %q", value)
	}

	rate := CISRate(n)
	if !rate.Valid() {
		return 0, fmt.Errorf("unsupported CIS rate %q, expected 0, 20 or 30", value)
	}
	return rate, nil
}
