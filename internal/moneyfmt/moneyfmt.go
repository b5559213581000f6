// Package moneyfmt converts between Argentine-format decimal strings
// ("." thousands separator, "," decimal separator) and decimal values.
package moneyfmt

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Parse reads an Argentine-format decimal string. Everything except digits
// and commas is dropped, the first comma acts as the decimal point, and any
// later comma is ignored. Empty or unparsable input yields zero, so partial
// input while typing (e.g. "1.234,5") never fails.
func Parse(s string) decimal.Decimal {
	var b strings.Builder
	sawComma := false
	negative := strings.HasPrefix(strings.TrimSpace(s), "-")
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ',' && !sawComma:
			sawComma = true
			b.WriteByte('.')
		}
	}
	cleaned := b.String()
	if cleaned == "" || cleaned == "." {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	if negative {
		d = d.Neg()
	}
	return d
}

// Format renders a decimal rounded half-up to two places, with "." grouping
// every three integer digits and "," before exactly two fraction digits.
func Format(d decimal.Decimal) string {
	rounded := d.Round(2)
	negative := rounded.IsNegative()
	fixed := rounded.Abs().StringFixed(2)

	intPart := fixed[:len(fixed)-3]
	fracPart := fixed[len(fixed)-2:]

	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)

	out := strings.Join(groups, ".") + "," + fracPart
	if negative {
		out = "-" + out
	}
	return out
}

// FormatString normalizes a user-entered amount to display form. The empty
// string passes through unchanged: optional fields stay blank instead of
// becoming "0,00".
func FormatString(s string) string {
	if s == "" {
		return ""
	}
	return Format(Parse(s))
}

// FilterInput is the live-typing filter for amount and percentage fields:
// digits are kept, the first comma is kept, every later comma and every
// other rune is dropped.
func FilterInput(s string) string {
	var b strings.Builder
	sawComma := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ',' && !sawComma:
			sawComma = true
			b.WriteRune(r)
		}
	}
	return b.String()
}
