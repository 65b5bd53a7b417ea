package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"formflow/internal/model"
	"formflow/internal/service"
	"formflow/internal/transport/rest/middleware"
)

const (
	defaultSubmissionLimit = 100
	defaultScoreBoardLimit = 10
)

// FormHandler handles owner endpoints for forms and their results
type FormHandler struct {
	formSvc       *service.FormService
	submissionSvc *service.SubmissionService
	analyticsSvc  *service.AnalyticsService
}

// NewFormHandler creates a new form handler
func NewFormHandler(formSvc *service.FormService, submissionSvc *service.SubmissionService, analyticsSvc *service.AnalyticsService) *FormHandler {
	return &FormHandler{
		formSvc:       formSvc,
		submissionSvc: submissionSvc,
		analyticsSvc:  analyticsSvc,
	}
}

// FormRequest is the request body for creating or updating a form
type FormRequest struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Schema      model.FormSchema `json:"schema"`
	Published   bool             `json:"published"`
}

func (req *FormRequest) form() *model.Form {
	return &model.Form{
		Title:       req.Title,
		Description: req.Description,
		Schema:      req.Schema,
		Published:   req.Published,
	}
}

// Create handles POST /v1/forms
func (h *FormHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetOwnerID(r.Context())
	if ownerID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req FormRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := h.formSvc.Create(r.Context(), ownerID, req.form())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"formId": id})
}

// List handles GET /v1/forms
func (h *FormHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetOwnerID(r.Context())
	if ownerID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	forms, err := h.formSvc.ListByOwner(r.Context(), ownerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"forms": forms})
}

// Get handles GET /v1/forms/{formId}
func (h *FormHandler) Get(w http.ResponseWriter, r *http.Request) {
	form, ok := h.owned(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, form)
}

// Update handles PUT /v1/forms/{formId}
func (h *FormHandler) Update(w http.ResponseWriter, r *http.Request) {
	formID := mux.Vars(r)["formId"]
	ownerID := middleware.GetOwnerID(r.Context())
	if ownerID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req FormRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	form, err := h.formSvc.Update(r.Context(), ownerID, formID, req.form())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, form)
}

// Delete handles DELETE /v1/forms/{formId}
func (h *FormHandler) Delete(w http.ResponseWriter, r *http.Request) {
	formID := mux.Vars(r)["formId"]
	ownerID := middleware.GetOwnerID(r.Context())
	if ownerID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.formSvc.Delete(r.Context(), ownerID, formID); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Submissions handles GET /v1/forms/{formId}/submissions?limit=
func (h *FormHandler) Submissions(w http.ResponseWriter, r *http.Request) {
	form, ok := h.owned(w, r)
	if !ok {
		return
	}

	limit := queryInt(r, "limit", defaultSubmissionLimit)
	subs, err := h.submissionSvc.List(r.Context(), form.ID, int64(limit))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"submissions": subs})
}

// Analytics handles GET /v1/forms/{formId}/analytics
func (h *FormHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	form, ok := h.owned(w, r)
	if !ok {
		return
	}

	snap, err := h.analyticsSvc.Snapshot(r.Context(), form)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, snap)
}

// ScoreBoard handles GET /v1/forms/{formId}/scoreboard?limit=
func (h *FormHandler) ScoreBoard(w http.ResponseWriter, r *http.Request) {
	formID := mux.Vars(r)["formId"]
	ownerID := middleware.GetOwnerID(r.Context())
	if ownerID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	limit := queryInt(r, "limit", defaultScoreBoardLimit)
	entries, err := h.formSvc.ScoreBoard(r.Context(), ownerID, formID, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"entries": entries})
}

// owned loads the form named in the path if the caller owns it, writing the
// error response otherwise
func (h *FormHandler) owned(w http.ResponseWriter, r *http.Request) (*model.Form, bool) {
	ownerID := middleware.GetOwnerID(r.Context())
	if ownerID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return nil, false
	}

	form, err := h.formSvc.GetOwned(r.Context(), ownerID, mux.Vars(r)["formId"])
	if err != nil {
		writeServiceError(w, err)
		return nil, false
	}
	return form, true
}

func queryInt(r *http.Request, key string, def int) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || n <= 0 {
		return def
	}
	return n
}
