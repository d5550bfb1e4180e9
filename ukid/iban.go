package ukid

import (
	"fmt"
	"strings"
)

// ibanLengths the IBAN length per country (ISO 13616 registry)
var ibanLengths = map[string]int{
	"AD": 24, "AT": 20, "BE": 16, "BG": 22, "CH": 21, "CY": 28, "CZ": 24,
	"DE": 22, "DK": 18, "EE": 20, "ES": 24, "FI": 18, "FR": 27, "GB": 22,
	"GI": 23, "GR": 27, "HR": 21, "HU": 28, "IE": 22, "IM": 22, "IS": 26,
	"IT": 27, "JE": 22, "GG": 22, "LI": 21, "LT": 20, "LU": 20, "LV": 21,
	"MC": 27, "MT": 31, "NL": 18, "NO": 15, "PL": 28, "PT": 25, "RO": 24,
	"SE": 24, "SI": 19, "SK": 24, "SM": 27,
}

// NormalizeIBAN upper case, no spaces, with a valid length and mod-97 checksum
func NormalizeIBAN(value string) (string, error) {
	v := compact(value)
	if v == "" {
		return "", kindError("IBAN", ErrEmpty)
	}

	if len(v) < 5 {
		return "", kindError("IBAN", ErrFormat)
	}

	for i := 0; i < len(v); i++ {
		c := v[i]
		if (c < '0' || c > '9') && (c < 'A' || c > 'Z') {
			return "", kindError("IBAN", ErrFormat)
		}
	}

	country := v[:2]
	length, has := ibanLengths[country]
	if !has {
		return "", kindError("IBAN", fmt.Errorf("%w %s", ErrCountry, country))
	}

	if len(v) != length || !isDigits(v[2:4]) {
		return "", kindError("IBAN", ErrFormat)
	}

	if ibanMod97(v) != 1 {
		return "", kindError("IBAN", ErrChecksum)
	}

	return v, nil
}

// FormatIBAN groups of four: "GB29 NWBK 6016 1331 9268 19"
func FormatIBAN(value string) (string, error) {
	v, err := NormalizeIBAN(value)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for i := 0; i < len(v); i += 4 {
		if i > 0 {
			b.WriteByte(' ')
		}
		end := i + 4
		if end > len(v) {
			end = len(v)
		}
		b.WriteString(v[i:end])
	}
	return b.String(), nil
}

// GBAccount the parts of a GB IBAN
type GBAccount struct {
	BankCode      string `json:"bank_code"`
	SortCode      string `json:"sort_code"`
	AccountNumber string `json:"account_number"`
}

// SplitGBIBAN extract the bank code, sort code and account number of a GB IBAN
func SplitGBIBAN(value string) (GBAccount, error) {
	v, err := NormalizeIBAN(value)
	if err != nil {
		return GBAccount{}, err
	}
	if !strings.HasPrefix(v, "GB") {
		return GBAccount{}, kindError("IBAN", fmt.Errorf("%w %s, expected GB", ErrCountry, v[:2]))
	}
	return GBAccount{BankCode: v[4:8], SortCode: v[8:14], AccountNumber: v[14:22]}, nil
}

// ibanMod97 ISO 7064 mod 97-10 over the rearranged IBAN, letters expanded
// to two digits (A=10 ... Z=35). Computed piecewise to stay in an int.
func ibanMod97(iban string) int {
	rearranged := iban[4:] + iban[:4]
	remainder := 0
	for i := 0; i < len(rearranged); i++ {
		c := rearranged[i]
		if c >= 'A' && c <= 'Z' {
			n := int(c-'A') + 10
			remainder = (remainder*100 + n) % 97
			continue
		}
		remainder = (remainder*10 + int(c-'0')) % 97
	}
	return remainder
}
