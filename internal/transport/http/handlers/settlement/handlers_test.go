package settlementhandler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"sueldos/internal/transport/http/api"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) api.Envelope {
	t.Helper()
	var env api.Envelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return env
}

func TestHandleCreateRejectsInvalidJSON(t *testing.T) {
	h := NewHandler(nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/settlements", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Success || env.Error == nil || env.Error.Code != "invalid_payload" {
		t.Fatalf("envelope = %+v, want invalid_payload error", env)
	}
}

func TestHandleCreateRequiresEmployee(t *testing.T) {
	h := NewHandler(nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/settlements", strings.NewReader(`{"periodo":"Mayo 2025"}`))
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Error == nil || env.Error.Code != "validation_error" {
		t.Fatalf("envelope = %+v, want validation_error", env)
	}
}

func TestHandleCreateRejectsBadDate(t *testing.T) {
	h := NewHandler(nil, nil)

	body := `{"employeeId":"emp-1","fecha":"mayo"}`
	req := httptest.NewRequest(http.MethodPost, "/settlements", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleAddRemunerativeItemRequiresName(t *testing.T) {
	h := NewHandler(nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/settlements/s1/remunerative-items", strings.NewReader(`{"percentage":"10"}`))
	rec := httptest.NewRecorder()
	h.HandleAddRemunerativeItem(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
