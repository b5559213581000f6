package shared

import (
	"net/http/httptest"
	"testing"
)

func TestValidatorRequired(t *testing.T) {
	v := NewValidator()
	v.Required("name", "", "name is required")
	v.Required("cuit", "20-12345678-6", "cuit is required")

	if !v.HasIssues() {
		t.Fatal("expected issues")
	}
	issues := v.Issues()
	if len(issues) != 1 || issues[0].Field != "name" {
		t.Fatalf("issues = %+v, want single name issue", issues)
	}
}

func TestValidatorReject(t *testing.T) {
	v := NewValidator()
	v.Add("periodo", "periodo is required")

	rec := httptest.NewRecorder()
	if !v.Reject(rec, "req-1") {
		t.Fatal("expected rejection")
	}
	if rec.Code != 400 {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	clean := NewValidator()
	rec = httptest.NewRecorder()
	if clean.Reject(rec, "req-1") {
		t.Fatal("clean validator must not reject")
	}
}

func TestValidatorDate(t *testing.T) {
	v := NewValidator()
	if _, ok := v.Date("fecha", "01/06/2025"); !ok {
		t.Fatal("expected DD/MM/YYYY date to parse")
	}
	if _, ok := v.Date("fecha", "not-a-date"); ok {
		t.Fatal("expected invalid date to fail")
	}
	if !v.HasIssues() {
		t.Fatal("expected issue for invalid date")
	}
}
