package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"formflow/internal/model"
	"formflow/internal/service"
	"formflow/internal/transport/rest/middleware"
)

// FillHandler handles the respondent side: opening a session, answering,
// moving between sections and submitting
type FillHandler struct {
	fillSvc *service.FillService
}

// NewFillHandler creates a new fill handler
func NewFillHandler(fillSvc *service.FillService) *FillHandler {
	return &FillHandler{fillSvc: fillSvc}
}

// StartRequest is the optional body of a session start
type StartRequest struct {
	ClientID string `json:"clientId"`
}

// AnswerRequest is the request body for recording one field value
type AnswerRequest struct {
	Value any `json:"value"`
}

// Start handles POST /v1/forms/{formId}/sessions
func (h *FillHandler) Start(w http.ResponseWriter, r *http.Request) {
	formID := mux.Vars(r)["formId"]

	var req StartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	source := model.SubmissionSource{
		IPAddress: clientIP(r),
		UserAgent: r.UserAgent(),
		ClientID:  req.ClientID,
	}
	resp, err := h.fillSvc.Start(r.Context(), formID, source)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// Get handles GET /v1/sessions/{sessionId}
func (h *FillHandler) Get(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionFromToken(w, r)
	if !ok {
		return
	}
	h.respond(w, func() (*service.SessionView, error) {
		return h.fillSvc.Get(r.Context(), sessionID)
	})
}

// Answer handles PUT /v1/sessions/{sessionId}/responses/{fieldId}
func (h *FillHandler) Answer(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionFromToken(w, r)
	if !ok {
		return
	}

	var req AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	fieldID := mux.Vars(r)["fieldId"]
	h.respond(w, func() (*service.SessionView, error) {
		return h.fillSvc.Answer(r.Context(), sessionID, fieldID, req.Value)
	})
}

// Next handles POST /v1/sessions/{sessionId}/next
func (h *FillHandler) Next(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionFromToken(w, r)
	if !ok {
		return
	}
	h.respond(w, func() (*service.SessionView, error) {
		return h.fillSvc.Next(r.Context(), sessionID)
	})
}

// Previous handles POST /v1/sessions/{sessionId}/previous
func (h *FillHandler) Previous(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionFromToken(w, r)
	if !ok {
		return
	}
	h.respond(w, func() (*service.SessionView, error) {
		return h.fillSvc.Previous(r.Context(), sessionID)
	})
}

// Submit handles POST /v1/sessions/{sessionId}/submit
func (h *FillHandler) Submit(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionFromToken(w, r)
	if !ok {
		return
	}
	h.respond(w, func() (*service.SessionView, error) {
		return h.fillSvc.Submit(r.Context(), sessionID)
	})
}

func (h *FillHandler) respond(w http.ResponseWriter, step func() (*service.SessionView, error)) {
	view, err := step()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// sessionFromToken checks that the path names the session the respondent
// token was issued for
func sessionFromToken(w http.ResponseWriter, r *http.Request) (string, bool) {
	sessionID := middleware.GetSessionID(r.Context())
	if sessionID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return "", false
	}
	if mux.Vars(r)["sessionId"] != sessionID {
		writeError(w, http.StatusForbidden, "token does not belong to this session")
		return "", false
	}
	return sessionID, true
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
