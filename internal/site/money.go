package site

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatINR renders an amount with the rupee sign and Indian digit grouping
// (last three digits, then pairs): 100000 -> ₹1,00,000. Paise are shown only
// when the amount has them.
func FormatINR(d decimal.Decimal) string {
	neg := d.IsNegative()
	d = d.Abs()

	var s string
	if d.Equal(d.Truncate(0)) {
		s = d.StringFixed(0)
	} else {
		s = d.StringFixed(2)
	}
	whole, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString("₹")
	b.WriteString(groupIndian(whole))
	if frac != "" {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}

func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	return strings.Join(append(parts, tail), ",")
}
