package companyhandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"sueldos/internal/domain/audit"
	"sueldos/internal/domain/company"
	"sueldos/internal/requestctx"
	"sueldos/internal/transport/http/api"
	"sueldos/internal/transport/http/middleware"
	"sueldos/internal/transport/http/shared"
)

type Handler struct {
	Service *company.Service
	Audit   *audit.Service
}

func NewHandler(service *company.Service, auditSvc *audit.Service) *Handler {
	return &Handler{Service: service, Audit: auditSvc}
}

type companyRequest struct {
	Name    string `json:"name"`
	CUIT    string `json:"cuit"`
	Address string `json:"address"`
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	var payload companyRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	v.Required("cuit", payload.CUIT, "cuit is required")
	if v.Reject(w, reqID) {
		return
	}

	created, err := h.Service.Create(r.Context(), company.Company{Name: payload.Name, CUIT: payload.CUIT, Address: payload.Address})
	if err != nil {
		h.fail(w, err, reqID)
		return
	}

	h.record(r, "company.create", created.ID, nil, created)
	api.Created(w, created, reqID)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	page := shared.ParsePagination(r, 50, 200)
	items, total, err := h.Service.List(r.Context(), page.Limit, page.Offset)
	if err != nil {
		h.fail(w, err, reqID)
		return
	}
	api.Success(w, map[string]any{"items": items, "total": total}, reqID)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	c, err := h.Service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, err, reqID)
		return
	}
	api.Success(w, c, reqID)
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	id := chi.URLParam(r, "id")

	var payload companyRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	v.Required("cuit", payload.CUIT, "cuit is required")
	if v.Reject(w, reqID) {
		return
	}

	before, err := h.Service.Get(r.Context(), id)
	if err != nil {
		h.fail(w, err, reqID)
		return
	}
	updated, err := h.Service.Update(r.Context(), id, company.Company{Name: payload.Name, CUIT: payload.CUIT, Address: payload.Address})
	if err != nil {
		h.fail(w, err, reqID)
		return
	}

	h.record(r, "company.update", id, before, updated)
	api.Success(w, updated, reqID)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	id := chi.URLParam(r, "id")
	if err := h.Service.Delete(r.Context(), id); err != nil {
		h.fail(w, err, reqID)
		return
	}
	h.record(r, "company.delete", id, nil, nil)
	api.Success(w, map[string]string{"status": "deleted"}, reqID)
}

func (h *Handler) fail(w http.ResponseWriter, err error, reqID string) {
	switch {
	case errors.Is(err, company.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "company not found", reqID)
	case errors.Is(err, company.ErrInvalidCUIT):
		api.Fail(w, http.StatusBadRequest, "invalid_cuit", "cuit check digit is invalid", reqID)
	case errors.Is(err, company.ErrDuplicateCUIT):
		api.Fail(w, http.StatusConflict, "duplicate_cuit", "a company with this cuit already exists", reqID)
	case errors.Is(err, company.ErrHasEmployees):
		api.Fail(w, http.StatusConflict, "has_employees", "company still has employees", reqID)
	default:
		api.Fail(w, http.StatusInternalServerError, "internal_error", "internal server error", reqID)
	}
}

func (h *Handler) record(r *http.Request, action, entityID string, before, after any) {
	if h.Audit == nil {
		return
	}
	actorID := ""
	if user, ok := middleware.GetUser(r.Context()); ok {
		actorID = user.UserID
	}
	if err := h.Audit.Record(r.Context(), actorID, action, "company", entityID, requestctx.GetRequestID(r.Context()), r.RemoteAddr, before, after); err != nil {
		slog.Warn("audit record failed", "action", action, "err", err)
	}
}
