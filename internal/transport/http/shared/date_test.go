package shared

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	want := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for _, raw := range []string{"2025-06-01", "01/06/2025", "2025-06-01T00:00:00Z"} {
		got, err := ParseDate(raw)
		if err != nil {
			t.Fatalf("ParseDate(%q): %v", raw, err)
		}
		if !got.Equal(want) {
			t.Errorf("ParseDate(%q) = %v, want %v", raw, got, want)
		}
	}

	if got, err := ParseDate(""); err != nil || !got.IsZero() {
		t.Fatalf("ParseDate(\"\") = %v, %v; want zero time, nil", got, err)
	}

	if _, err := ParseDate("junio 2025"); err == nil {
		t.Fatal("expected error for unparseable date")
	}
}
