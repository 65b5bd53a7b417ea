package handler

import (
	"encoding/json"
	"net/http"

	"formflow/internal/service"
)

// GradeHandler exposes the essay scorer for previewing an answer key
type GradeHandler struct {
	gradingSvc *service.GradingService
}

// NewGradeHandler creates a new grade handler
func NewGradeHandler(gradingSvc *service.GradingService) *GradeHandler {
	return &GradeHandler{gradingSvc: gradingSvc}
}

// Grade handles POST /v1/grade
func (h *GradeHandler) Grade(w http.ResponseWriter, r *http.Request) {
	var req service.GradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ReferenceAnswer == "" {
		writeError(w, http.StatusBadRequest, "referenceAnswer is required")
		return
	}

	writeJSON(w, http.StatusOK, h.gradingSvc.Preview(req))
}
