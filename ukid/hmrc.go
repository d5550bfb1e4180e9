package ukid

import (
	"regexp"
	"strings"
)

// utrWeights the weights of digits 2 to 10
var utrWeights = [9]int{6, 7, 8, 9, 10, 5, 4, 3, 2}

// utrCheckDigits the first digit for each remainder of the weighted sum mod 11
const utrCheckDigits = "21987654321"

// NormalizeUTR ten digits, a trailing K (as printed on some HMRC letters) is
// dropped. The first digit is the mod 11 check digit of the other nine.
func NormalizeUTR(value string) (string, error) {
	v := strings.TrimSuffix(compact(value), "K")
	if v == "" {
		return "", kindError("UTR", ErrEmpty)
	}
	if len(v) != 10 || !isDigits(v) {
		return "", kindError("UTR", ErrFormat)
	}

	sum := 0
	for i, weight := range utrWeights {
		sum += int(v[i+1]-'0') * weight
	}
	if utrCheckDigits[sum%11] != v[0] {
		return "", kindError("UTR", ErrChecksum)
	}
	return v, nil
}

// FormatUTR "22345 67890"
func FormatUTR(value string) (string, error) {
	v, err := NormalizeUTR(value)
	if err != nil {
		return "", err
	}
	return v[:5] + " " + v[5:], nil
}

// reCompanyNumber eight digits, or a two character register prefix and six digits
var reCompanyNumber = regexp.MustCompile(`^(?:[0-9]{8}|(?:SC|NI|OC|SO|NC|R0|FC|SE|SF|SL|SP|SR|SZ|GE|GN|GS|IP|NF|NL|NO|NP|NR|NZ|NA|ES|LP|RC|IC|SA|CE|CS|AC|SG|RS)[0-9]{6})$`)

// NormalizeCompanyNumber Companies House number, numeric numbers shorter
// than eight digits are left padded with zeros.
func NormalizeCompanyNumber(value string) (string, error) {
	v := compact(value)
	if v == "" {
		return "", kindError("company number", ErrEmpty)
	}
	if isDigits(v) && len(v) < 8 {
		v = strings.Repeat("0", 8-len(v)) + v
	}
	if !reCompanyNumber.MatchString(v) {
		return "", kindError("company number", ErrFormat)
	}
	return v, nil
}

// FormatCompanyNumber the company number is displayed as is
func FormatCompanyNumber(value string) (string, error) {
	return NormalizeCompanyNumber(value)
}

// CompanyRegister the register the company number belongs to
func CompanyRegister(value string) string {
	v, err := NormalizeCompanyNumber(value)
	if err != nil {
		return ""
	}
	switch v[:2] {
	case "SC":
		return "Scotland"
	case "NI", "R0":
		return "Northern Ireland"
	case "OC":
		return "England and Wales (LLP)"
	case "SO":
		return "Scotland (LLP)"
	case "NC":
		return "Northern Ireland (LLP)"
	case "FC":
		return "Overseas company"
	}
	if isDigits(v) {
		return "England and Wales"
	}
	return "Other"
}
