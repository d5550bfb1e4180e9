package ukid

import (
	"regexp"
	"strings"
)

// rePostcode outward code (area + district) followed by the inward code
// (sector digit + unit letters), separators removed.
var rePostcode = regexp.MustCompile(`^(GIR0AA|[A-PR-UWYZ](?:[0-9]{1,2}|[A-HK-Y][0-9]{1,2}|[0-9][A-HJKPSTUW]|[A-HK-Y][0-9][ABEHMNPRVWXY])[0-9][ABD-HJLNP-UW-Z]{2})$`)

// NormalizePostcode upper case, no spaces: "sw1a 1aa" -> "SW1A1AA"
func NormalizePostcode(value string) (string, error) {
	v := compact(value)
	if v == "" {
		return "", kindError("postcode", ErrEmpty)
	}
	if !rePostcode.MatchString(v) {
		return "", kindError("postcode", ErrFormat)
	}
	return v, nil
}

// FormatPostcode a single space before the inward code: "SW1A 1AA"
func FormatPostcode(value string) (string, error) {
	v, err := NormalizePostcode(value)
	if err != nil {
		return "", err
	}
	return v[:len(v)-3] + " " + v[len(v)-3:], nil
}

// PostcodeArea the postcode area letters: "SW1A 1AA" -> "SW"
func PostcodeArea(value string) string {
	v, err := NormalizePostcode(value)
	if err != nil {
		return ""
	}
	return strings.TrimRight(v[:2], "0123456789")
}
