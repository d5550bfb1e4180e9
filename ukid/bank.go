package ukid

import "strings"

// NormalizeSortCode six digits: "12-34-56" -> "123456"
func NormalizeSortCode(value string) (string, error) {
	v := compact(value)
	if v == "" {
		return "", kindError("sort code", ErrEmpty)
	}
	if len(v) != 6 || !isDigits(v) {
		return "", kindError("sort code", ErrFormat)
	}
	return v, nil
}

// FormatSortCode pairs separated by dashes: "12-34-56"
func FormatSortCode(value string) (string, error) {
	v, err := NormalizeSortCode(value)
	if err != nil {
		return "", err
	}
	return v[0:2] + "-" + v[2:4] + "-" + v[4:6], nil
}

// NormalizeAccountNumber eight digits. Six and seven digit account numbers
// are left padded with zeros.
func NormalizeAccountNumber(value string) (string, error) {
	v := compact(value)
	if v == "" {
		return "", kindError("account number", ErrEmpty)
	}
	if !isDigits(v) || len(v) < 6 || len(v) > 8 {
		return "", kindError("account number", ErrFormat)
	}
	return strings.Repeat("0", 8-len(v)) + v, nil
}

// FormatAccountNumber the account number is displayed as is
func FormatAccountNumber(value string) (string, error) {
	return NormalizeAccountNumber(value)
}
