package checkout

import (
	"regexp"
	"strconv"
	"strings"
)

var nonDigit = regexp.MustCompile(`\D`)

// FormatCardNumber groups a card number's digits into blocks of four
// separated by spaces, dropping any existing separators first and
// capping at 16 digits. Input with fewer than four digits is returned
// unchanged.
func FormatCardNumber(value string) string {
	digits := nonDigit.ReplaceAllString(value, "")
	if len(digits) < 4 {
		return value
	}
	if len(digits) > 16 {
		digits = digits[:16]
	}
	var parts []string
	for i := 0; i < len(digits); i += 4 {
		end := i + 4
		if end > len(digits) {
			end = len(digits)
		}
		parts = append(parts, digits[i:end])
	}
	return strings.Join(parts, " ")
}

// FormatExpiry strips non-digits and inserts the MM/YY slash once a
// third digit is typed, capping at four digits.
func FormatExpiry(value string) string {
	digits := nonDigit.ReplaceAllString(value, "")
	if len(digits) > 2 {
		if len(digits) > 4 {
			digits = digits[:4]
		}
		return digits[:2] + "/" + digits[2:]
	}
	return digits
}

// EncodeAmount renders a charge total as the two-decimal string
// carried on the payment page's amount query parameter.
func EncodeAmount(total float64) string {
	return strconv.FormatFloat(total, 'f', 2, 64)
}

// ParseAmount reads an amount query parameter back. Missing or
// malformed input yields 0, matching the payment page's fallback.
func ParseAmount(raw string) float64 {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return v
}
