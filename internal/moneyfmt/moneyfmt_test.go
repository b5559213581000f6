package moneyfmt

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1.234,50", "1234.5"},
		{"1.234,5", "1234.5"},
		{"200.000,00", "200000"},
		{"8,33", "8.33"},
		{"0,00", "0"},
		{"", "0"},
		{"abc", "0"},
		{"12a3", "123"},
		{"1,2,3", "1.23"},
		{",", "0"},
		{"1.000.000,99", "1000000.99"},
	}
	for _, tc := range cases {
		got := Parse(tc.in)
		want, _ := decimal.NewFromString(tc.want)
		if !got.Equal(want) {
			t.Errorf("Parse(%q) = %s, want %s", tc.in, got, want)
		}
	}
}

func TestFormat(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "0,00"},
		{"1234.5", "1.234,50"},
		{"200000", "200.000,00"},
		{"1000000.999", "1.000.001,00"},
		{"12154.625", "12.154,63"},
		{"-1234.5", "-1.234,50"},
		{"8.33", "8,33"},
		{"999.995", "1.000,00"},
	}
	for _, tc := range cases {
		d, _ := decimal.NewFromString(tc.in)
		if got := Format(d); got != tc.want {
			t.Errorf("Format(%s) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatStringRoundTrip(t *testing.T) {
	// Well-formed two-decimal strings must survive a parse/format cycle.
	for _, s := range []string{"1.234,50", "0,00", "200.000,00", "17.159,80", "110.496,60"} {
		if got := FormatString(s); got != s {
			t.Errorf("FormatString(%q) = %q, want unchanged", s, got)
		}
	}
}

func TestFormatStringEmptyPassThrough(t *testing.T) {
	if got := FormatString(""); got != "" {
		t.Fatalf("FormatString(\"\") = %q, want empty string", got)
	}
}

func TestFilterInput(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1234", "1234"},
		{"12,34", "12,34"},
		{"12,3,4", "12,34"},
		{"a1b2,c3", "12,3"},
		{",,", ","},
		{"", ""},
	}
	for _, tc := range cases {
		if got := FilterInput(tc.in); got != tc.want {
			t.Errorf("FilterInput(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
