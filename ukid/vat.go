package ukid

import (
	"strconv"
	"strings"
)

// NormalizeVATNumber a UK VAT registration number with its country prefix.
//
//	GB/XI + 9 digits      standard
//	GB/XI + 12 digits     branch traders (9 digits + 3 digit branch)
//	GB/XI + GD + 3 digits government departments (000-499)
//	GB/XI + HA + 3 digits health authorities (500-999)
//
// The prefix is optional on input, GB is assumed. Nine and twelve digit
// numbers must pass the HMRC weighted checksum (mod 97 or mod 9755).
func NormalizeVATNumber(value string) (string, error) {
	v := compact(value)
	if v == "" {
		return "", kindError("VAT number", ErrEmpty)
	}

	prefix := "GB"
	if strings.HasPrefix(v, "GB") || strings.HasPrefix(v, "XI") {
		prefix = v[:2]
		v = v[2:]
	}

	switch {
	case len(v) == 5 && (strings.HasPrefix(v, "GD") || strings.HasPrefix(v, "HA")) && isDigits(v[2:]):
		n, _ := strconv.Atoi(v[2:])
		if strings.HasPrefix(v, "GD") && n >= 500 {
			return "", kindError("VAT number", ErrFormat)
		}
		if strings.HasPrefix(v, "HA") && n < 500 {
			return "", kindError("VAT number", ErrFormat)
		}
		return prefix + v, nil

	case (len(v) == 9 || len(v) == 12) && isDigits(v):
		if !vatChecksum(v[:9]) {
			return "", kindError("VAT number", ErrChecksum)
		}
		return prefix + v, nil
	}

	return "", kindError("VAT number", ErrFormat)
}

// FormatVATNumber "GB 123 4567 89", "GB 123 4567 89 001" or "GB GD123"
func FormatVATNumber(value string) (string, error) {
	v, err := NormalizeVATNumber(value)
	if err != nil {
		return "", err
	}

	prefix, number := v[:2], v[2:]
	if len(number) == 5 {
		return prefix + " " + number, nil
	}

	formatted := prefix + " " + number[0:3] + " " + number[3:7] + " " + number[7:9]
	if len(number) == 12 {
		formatted += " " + number[9:12]
	}
	return formatted, nil
}

// vatChecksum the HMRC check: weight the first seven digits 8..2, add the
// two check digits, the total must be divisible by 97, either directly or
// after adding 55 (numbers issued from November 2009).
func vatChecksum(digits string) bool {
	total := 0
	for i := 0; i < 7; i++ {
		total += int(digits[i]-'0') * (8 - i)
	}
	check, _ := strconv.Atoi(digits[7:9])
	total += check
	return total%97 == 0 || (total+55)%97 == 0
}
