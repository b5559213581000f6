package cuit

import "testing"

func TestValid(t *testing.T) {
	valid := []string{
		"20-12345678-6",
		"20123456786",
		"30-71659554-0",
	}
	for _, s := range valid {
		if !Valid(s) {
			t.Errorf("Valid(%q) = false, want true", s)
		}
	}

	invalid := []string{
		"",
		"20-12345678-5",
		"2012345678",
		"201234567861",
		"20-1234567a-6",
		"abcdefghijk",
	}
	for _, s := range invalid {
		if Valid(s) {
			t.Errorf("Valid(%q) = true, want false", s)
		}
	}
}

func TestFormat(t *testing.T) {
	if got := Format("20123456786"); got != "20-12345678-6" {
		t.Fatalf("Format = %q, want 20-12345678-6", got)
	}
	if got := Format("20-12345678-6"); got != "20-12345678-6" {
		t.Fatalf("Format = %q, want unchanged canonical form", got)
	}
	if got := Format("123"); got != "123" {
		t.Fatalf("Format on short input = %q, want passthrough", got)
	}
}
