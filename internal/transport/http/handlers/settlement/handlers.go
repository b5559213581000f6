package settlementhandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"sueldos/internal/domain/audit"
	"sueldos/internal/domain/settlement"
	"sueldos/internal/requestctx"
	"sueldos/internal/transport/http/api"
	"sueldos/internal/transport/http/middleware"
	"sueldos/internal/transport/http/shared"
)

type Handler struct {
	Service *settlement.Service
	Audit   *audit.Service
}

func NewHandler(service *settlement.Service, auditSvc *audit.Service) *Handler {
	return &Handler{Service: service, Audit: auditSvc}
}

type settlementRequest struct {
	EmployeeID            string                           `json:"employeeId"`
	Period                string                           `json:"periodo"`
	SettlementDate        string                           `json:"fecha"`
	BasicSalary           string                           `json:"basicSalary"`
	PresentismoPercentage string                           `json:"presentismoPercentage"`
	RemunerativeItems     []settlement.RemunerativeItem    `json:"remunerativeItems"`
	NonRemunerativeItems  []settlement.NonRemunerativeItem `json:"nonRemunerativeItems"`
	DeductionItems        []settlement.DeductionItem       `json:"deducciones"`
}

type remunerativeItemRequest struct {
	Name              string `json:"name"`
	Percentage        string `json:"percentage"`
	Amount            string `json:"amount"`
	AppliesPercentage bool   `json:"appliesPercentage"`
}

type nonRemunerativeItemRequest struct {
	Name       string `json:"name"`
	Percentage string `json:"percentage"`
	Amount     string `json:"amount"`
}

type deductionItemRequest struct {
	Name                   string `json:"name"`
	Percentage             string `json:"percentage"`
	CheckedRemunerative    bool   `json:"checkedRemunerative"`
	CheckedNonRemunerative bool   `json:"checkedNonRemunerative"`
	RemunerativeAmount     string `json:"remunerativeAmount"`
	NonRemunerativeAmount  string `json:"nonRemunerativeAmount"`
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	s, ok := h.decodeSettlement(w, r, reqID)
	if !ok {
		return
	}

	created, err := h.Service.Create(r.Context(), s)
	if err != nil {
		h.fail(w, err, reqID)
		return
	}

	h.record(r, "settlement.create", created.ID, nil, created)
	api.Created(w, created, reqID)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	page := shared.ParsePagination(r, 50, 200)
	items, total, err := h.Service.List(r.Context(), r.URL.Query().Get("employeeId"), page.Limit, page.Offset)
	if err != nil {
		h.fail(w, err, reqID)
		return
	}
	api.Success(w, map[string]any{"items": items, "total": total}, reqID)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	s, err := h.Service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, err, reqID)
		return
	}
	api.Success(w, s, reqID)
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	id := chi.URLParam(r, "id")

	s, ok := h.decodeSettlement(w, r, reqID)
	if !ok {
		return
	}
	s.ID = id

	updated, err := h.Service.Update(r.Context(), s)
	if err != nil {
		h.fail(w, err, reqID)
		return
	}

	h.record(r, "settlement.update", id, nil, updated)
	api.Success(w, updated, reqID)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	id := chi.URLParam(r, "id")
	if err := h.Service.Delete(r.Context(), id); err != nil {
		h.fail(w, err, reqID)
		return
	}
	h.record(r, "settlement.delete", id, nil, nil)
	api.Success(w, map[string]string{"status": "deleted"}, reqID)
}

func (h *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	id := chi.URLParam(r, "id")
	saved, err := h.Service.Save(r.Context(), id)
	if err != nil {
		h.fail(w, err, reqID)
		return
	}
	h.record(r, "settlement.save", id, nil, saved)
	api.Success(w, saved, reqID)
}

func (h *Handler) HandleAddRemunerativeItem(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	id := chi.URLParam(r, "id")

	var payload remunerativeItemRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	if v.Reject(w, reqID) {
		return
	}

	updated, err := h.Service.AddRemunerativeItem(r.Context(), id, payload.Name, payload.Percentage, payload.Amount, payload.AppliesPercentage)
	if err != nil {
		h.fail(w, err, reqID)
		return
	}
	h.record(r, "settlement.item.add", id, nil, updated)
	api.Success(w, updated, reqID)
}

func (h *Handler) HandleAddNonRemunerativeItem(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	id := chi.URLParam(r, "id")

	var payload nonRemunerativeItemRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	if v.Reject(w, reqID) {
		return
	}

	updated, err := h.Service.AddNonRemunerativeItem(r.Context(), id, payload.Name, payload.Percentage, payload.Amount)
	if err != nil {
		h.fail(w, err, reqID)
		return
	}
	h.record(r, "settlement.item.add", id, nil, updated)
	api.Success(w, updated, reqID)
}

func (h *Handler) HandleAddDeductionItem(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	id := chi.URLParam(r, "id")

	var payload deductionItemRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	if v.Reject(w, reqID) {
		return
	}

	updated, err := h.Service.AddDeductionItem(r.Context(), id, payload.Name, payload.Percentage,
		payload.CheckedRemunerative, payload.CheckedNonRemunerative, payload.RemunerativeAmount, payload.NonRemunerativeAmount)
	if err != nil {
		h.fail(w, err, reqID)
		return
	}
	h.record(r, "settlement.item.add", id, nil, updated)
	api.Success(w, updated, reqID)
}

func (h *Handler) HandleUpdateItem(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	id := chi.URLParam(r, "id")
	itemID := chi.URLParam(r, "itemId")

	var payload settlement.ItemUpdate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	updated, err := h.Service.UpdateItem(r.Context(), id, itemID, payload)
	if err != nil {
		h.fail(w, err, reqID)
		return
	}
	h.record(r, "settlement.item.update", id, nil, updated)
	api.Success(w, updated, reqID)
}

func (h *Handler) HandleRemoveItem(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	id := chi.URLParam(r, "id")
	itemID := chi.URLParam(r, "itemId")

	updated, err := h.Service.RemoveItem(r.Context(), id, itemID)
	if err != nil {
		h.fail(w, err, reqID)
		return
	}
	h.record(r, "settlement.item.remove", id, nil, updated)
	api.Success(w, updated, reqID)
}

func (h *Handler) HandleRecibo(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	id := chi.URLParam(r, "id")

	path, err := h.Service.GenerateReciboPDF(r.Context(), id)
	if err != nil {
		h.fail(w, err, reqID)
		return
	}

	h.record(r, "settlement.recibo", id, nil, nil)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="recibo-`+id+`.pdf"`)
	http.ServeFile(w, r, path)
}

func (h *Handler) decodeSettlement(w http.ResponseWriter, r *http.Request, reqID string) (*settlement.Settlement, bool) {
	var payload settlementRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return nil, false
	}

	v := shared.NewValidator()
	v.Required("employeeId", payload.EmployeeID, "employeeId is required")
	s := &settlement.Settlement{
		EmployeeID:            payload.EmployeeID,
		Period:                payload.Period,
		BasicSalary:           payload.BasicSalary,
		PresentismoPercentage: payload.PresentismoPercentage,
		RemunerativeItems:     payload.RemunerativeItems,
		NonRemunerativeItems:  payload.NonRemunerativeItems,
		DeductionItems:        payload.DeductionItems,
	}
	if payload.SettlementDate != "" {
		parsed, ok := v.Date("fecha", payload.SettlementDate)
		if ok {
			s.SettlementDate = parsed
		}
	}
	if v.Reject(w, reqID) {
		return nil, false
	}
	return s, true
}

func (h *Handler) fail(w http.ResponseWriter, err error, reqID string) {
	switch {
	case errors.Is(err, settlement.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "settlement not found", reqID)
	case errors.Is(err, settlement.ErrItemNotFound):
		api.Fail(w, http.StatusNotFound, "item_not_found", "settlement item not found", reqID)
	case errors.Is(err, settlement.ErrItemReadOnly):
		api.Fail(w, http.StatusBadRequest, "item_read_only", "derived rows cannot be edited directly", reqID)
	case errors.Is(err, settlement.ErrMissingRequired):
		api.Fail(w, http.StatusBadRequest, "missing_required", err.Error(), reqID)
	case errors.Is(err, settlement.ErrBrokenReference):
		api.Fail(w, http.StatusConflict, "broken_reference", "a derived row references a missing item", reqID)
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
	if err := h.Audit.Record(r.Context(), actorID, action, "settlement", entityID, requestctx.GetRequestID(r.Context()), r.RemoteAddr, before, after); err != nil {
		slog.Warn("audit record failed", "action", action, "err", err)
	}
}
