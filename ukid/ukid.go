// Package ukid validates, normalizes and formats UK business identifiers:
// postcodes, bank sort codes and account numbers, IBANs, VAT registration
// numbers, Unique Taxpayer References and Companies House numbers.
//
// Every identifier has a normalized form (upper case, separators removed)
// and a display form. For any valid value x,
// Normalize(Format(x)) == Normalize(x).
package ukid

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrEmpty the value is empty
	ErrEmpty = errors.New("value is empty")

	// ErrFormat the value does not match the identifier format
	ErrFormat = errors.New("invalid format")

	// ErrChecksum the check digits do not match
	ErrChecksum = errors.New("checksum mismatch")

	// ErrCountry the country code is not supported
	ErrCountry = errors.New("unsupported country")
)

// Kind an identifier kind
type Kind struct {
	Name        string
	Label       string
	Example     string
	Normalize   func(string) (string, error)
	Format      func(string) (string, error)
	Details     func(string) map[string]string
	Description string
}

// Result the outcome of checking one value
type Result struct {
	Kind       string            `json:"kind"`
	Value      string            `json:"value"`
	Valid      bool              `json:"valid"`
	Normalized string            `json:"normalized,omitempty"`
	Formatted  string            `json:"formatted,omitempty"`
	Details    map[string]string `json:"details,omitempty"`
	Error      string            `json:"error,omitempty"`
}

var kinds = map[string]Kind{}

func register(kind Kind) {
	kinds[kind.Name] = kind
}

func init() {
	register(Kind{Name: "postcode", Label: "Postcode", Example: "SW1A 1AA", Normalize: NormalizePostcode, Format: FormatPostcode, Details: postcodeDetails, Description: "Royal Mail postcode"})
	register(Kind{Name: "sortcode", Label: "Sort code", Example: "12-34-56", Normalize: NormalizeSortCode, Format: FormatSortCode, Description: "Six digit bank sort code"})
	register(Kind{Name: "account", Label: "Account number", Example: "31926819", Normalize: NormalizeAccountNumber, Format: FormatAccountNumber, Description: "Eight digit bank account number"})
	register(Kind{Name: "iban", Label: "IBAN", Example: "GB29 NWBK 6016 1331 9268 19", Normalize: NormalizeIBAN, Format: FormatIBAN, Details: ibanDetails, Description: "International Bank Account Number"})
	register(Kind{Name: "vat", Label: "VAT number", Example: "GB 999 9999 73", Normalize: NormalizeVATNumber, Format: FormatVATNumber, Description: "HMRC VAT registration number"})
	register(Kind{Name: "utr", Label: "UTR", Example: "22345 67890", Normalize: NormalizeUTR, Format: FormatUTR, Description: "Unique Taxpayer Reference"})
	register(Kind{Name: "company", Label: "Company number", Example: "SC123456", Normalize: NormalizeCompanyNumber, Format: FormatCompanyNumber, Details: companyDetails, Description: "Companies House registration number"})
}

// Lookup get the identifier kind by name
func Lookup(name string) (Kind, bool) {
	kind, has := kinds[strings.ToLower(strings.TrimSpace(name))]
	return kind, has
}

// Kinds the registered kind names, sorted
func Kinds() []string {
	names := make([]string, 0, len(kinds))
	for name := range kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Check normalize and format a value of the given kind
func Check(name string, value string) (Result, error) {
	kind, has := Lookup(name)
	if !has {
		return Result{}, fmt.Errorf("unknown identifier kind %q", name)
	}

	res := Result{Kind: kind.Name, Value: value}
	normalized, err := kind.Normalize(value)
	if err != nil {
		res.Error = err.Error()
		return res, nil
	}

	formatted, err := kind.Format(normalized)
	if err != nil {
		res.Error = err.Error()
		return res, nil
	}

	res.Valid = true
	res.Normalized = normalized
	res.Formatted = formatted
	if kind.Details != nil {
		res.Details = kind.Details(normalized)
	}
	return res, nil
}

func postcodeDetails(value string) map[string]string {
	return map[string]string{"area": PostcodeArea(value)}
}

func companyDetails(value string) map[string]string {
	return map[string]string{"register": CompanyRegister(value)}
}

// ibanDetails the bank code, sort code and account number of a GB IBAN
func ibanDetails(value string) map[string]string {
	account, err := SplitGBIBAN(value)
	if err != nil {
		return nil
	}
	sortCode, _ := FormatSortCode(account.SortCode)
	return map[string]string{
		"bank_code":      account.BankCode,
		"sort_code":      sortCode,
		"account_number": account.AccountNumber,
	}
}

// Valid the value is a valid identifier of the kind
func (kind Kind) Valid(value string) bool {
	_, err := kind.Normalize(value)
	return err == nil
}

// compact strip spaces, dashes, dots and slashes and upper case the value
func compact(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	for _, r := range value {
		switch r {
		case ' ', '\t', '-', '.', '/', '\u00a0':
			continue
		}
		b.WriteRune(r)
	}
	return strings.ToUpper(b.String())
}

func isDigits(value string) bool {
	if value == "" {
		return false
	}
	for i := 0; i < len(value); i++ {
		if value[i] < '0' || value[i] > '9' {
			return false
		}
	}
	return true
}

func kindError(kind string, err error) error {
	return fmt.Errorf("%s: %w", kind, err)
}
