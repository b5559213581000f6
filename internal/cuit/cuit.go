// Package cuit validates and formats Argentine tax identifiers. CUIT
// (companies) and CUIL (employees) share the same 11-digit structure and
// mod-11 check digit.
package cuit

import "strings"

var weights = [10]int{5, 4, 3, 2, 7, 6, 5, 4, 3, 2}

// Normalize strips separators and returns the bare 11 digits, or "" when
// the input does not reduce to exactly 11 digits.
func Normalize(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() != 11 {
		return ""
	}
	return b.String()
}

// Valid reports whether s is a well-formed identifier with a correct
// check digit. Separators are ignored.
func Valid(s string) bool {
	digits := Normalize(s)
	if digits == "" {
		return false
	}
	sum := 0
	for i := 0; i < 10; i++ {
		sum += int(digits[i]-'0') * weights[i]
	}
	check := 11 - sum%11
	switch check {
	case 11:
		check = 0
	case 10:
		check = 9
	}
	return check == int(digits[10]-'0')
}

// Format renders the canonical XX-XXXXXXXX-X form. Invalid-length input is
// returned unchanged.
func Format(s string) string {
	digits := Normalize(s)
	if digits == "" {
		return s
	}
	return digits[:2] + "-" + digits[2:10] + "-" + digits[10:]
}
