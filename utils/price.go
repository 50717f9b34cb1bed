package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatPrice renders an amount as a peso display string with two decimal
// places and thousands separators, e.g. 1234.5 -> "₱1,234.50".
func FormatPrice(amount float64) string {
	s := decimal.NewFromFloat(amount).StringFixed(2)
	dot := strings.Index(s, ".")
	whole, frac := s[:dot], s[dot:]

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 && whole[0] != '-' {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return "₱" + b.String() + frac
}
