package employeehandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"sueldos/internal/domain/audit"
	"sueldos/internal/domain/employee"
	"sueldos/internal/requestctx"
	"sueldos/internal/transport/http/api"
	"sueldos/internal/transport/http/middleware"
	"sueldos/internal/transport/http/shared"
)

type Handler struct {
	Service *employee.Service
	Audit   *audit.Service
}

func NewHandler(service *employee.Service, auditSvc *audit.Service) *Handler {
	return &Handler{Service: service, Audit: auditSvc}
}

type employeeRequest struct {
	CompanyID   string `json:"companyId"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	CUIL        string `json:"cuil"`
	HireDate    string `json:"fechaIngreso"`
	Category    string `json:"category"`
	SubCategory string `json:"subCategory"`
	Status      string `json:"status"`
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	var payload employeeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("companyId", payload.CompanyID, "companyId is required")
	v.Required("firstName", payload.FirstName, "firstName is required")
	v.Required("lastName", payload.LastName, "lastName is required")
	v.Required("cuil", payload.CUIL, "cuil is required")
	v.Required("fechaIngreso", payload.HireDate, "fechaIngreso is required")
	hireDate, _ := v.Date("fechaIngreso", payload.HireDate)
	if v.Reject(w, reqID) {
		return
	}

	created, err := h.Service.Create(r.Context(), employee.Employee{
		CompanyID:   payload.CompanyID,
		FirstName:   payload.FirstName,
		LastName:    payload.LastName,
		CUIL:        payload.CUIL,
		HireDate:    hireDate,
		Category:    payload.Category,
		SubCategory: payload.SubCategory,
		Status:      payload.Status,
	})
	if err != nil {
		h.fail(w, err, reqID)
		return
	}

	h.record(r, "employee.create", created.ID, nil, created)
	api.Created(w, created, reqID)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	page := shared.ParsePagination(r, 50, 200)
	items, total, err := h.Service.List(r.Context(), r.URL.Query().Get("companyId"), page.Limit, page.Offset)
	if err != nil {
		h.fail(w, err, reqID)
		return
	}
	api.Success(w, map[string]any{"items": items, "total": total}, reqID)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	e, err := h.Service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, err, reqID)
		return
	}
	api.Success(w, e, reqID)
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	id := chi.URLParam(r, "id")

	var payload employeeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("companyId", payload.CompanyID, "companyId is required")
	v.Required("firstName", payload.FirstName, "firstName is required")
	v.Required("lastName", payload.LastName, "lastName is required")
	v.Required("cuil", payload.CUIL, "cuil is required")
	v.Required("fechaIngreso", payload.HireDate, "fechaIngreso is required")
	hireDate, _ := v.Date("fechaIngreso", payload.HireDate)
	if v.Reject(w, reqID) {
		return
	}

	before, err := h.Service.Get(r.Context(), id)
	if err != nil {
		h.fail(w, err, reqID)
		return
	}
	updated, err := h.Service.Update(r.Context(), id, employee.Employee{
		CompanyID:   payload.CompanyID,
		FirstName:   payload.FirstName,
		LastName:    payload.LastName,
		CUIL:        payload.CUIL,
		HireDate:    hireDate,
		Category:    payload.Category,
		SubCategory: payload.SubCategory,
		Status:      payload.Status,
	})
	if err != nil {
		h.fail(w, err, reqID)
		return
	}

	h.record(r, "employee.update", id, before, updated)
	api.Success(w, updated, reqID)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	id := chi.URLParam(r, "id")
	if err := h.Service.Delete(r.Context(), id); err != nil {
		h.fail(w, err, reqID)
		return
	}
	h.record(r, "employee.delete", id, nil, nil)
	api.Success(w, map[string]string{"status": "deleted"}, reqID)
}

func (h *Handler) fail(w http.ResponseWriter, err error, reqID string) {
	switch {
	case errors.Is(err, employee.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", reqID)
	case errors.Is(err, employee.ErrInvalidCUIL):
		api.Fail(w, http.StatusBadRequest, "invalid_cuil", "cuil check digit is invalid", reqID)
	case errors.Is(err, employee.ErrCompanyNotFound):
		api.Fail(w, http.StatusBadRequest, "company_not_found", "referenced company does not exist", reqID)
	case errors.Is(err, employee.ErrHasSettlements):
		api.Fail(w, http.StatusConflict, "has_settlements", "employee still has settlements", reqID)
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
	if err := h.Audit.Record(r.Context(), actorID, action, "employee", entityID, requestctx.GetRequestID(r.Context()), r.RemoteAddr, before, after); err != nil {
		slog.Warn("audit record failed", "action", action, "err", err)
	}
}
