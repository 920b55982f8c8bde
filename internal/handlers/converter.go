package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/stormnotes/suite/internal/validation"
	"github.com/stormnotes/suite/internal/workflows"
)

// ConverterHandler handles time conversion requests
type ConverterHandler struct {
	orch *workflows.Orchestrator
}

// NewConverterHandler creates a new converter handler
func NewConverterHandler(orch *workflows.Orchestrator) *ConverterHandler {
	return &ConverterHandler{orch: orch}
}

// RegisterRoutes registers converter routes on the given router
func (h *ConverterHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("", h.ConvertTime).Methods("POST")
}

// ConvertTimeRequest represents a time conversion request
type ConvertTimeRequest struct {
	DateTime string `json:"date_time" validate:"required,min=1,max=100"`
	FromZone string `json:"from_zone" validate:"required,min=1,max=100"`
	ToZone   string `json:"to_zone" validate:"required,min=1,max=100"`
}

// ConvertTime converts a date/time between two timezones
func (h *ConverterHandler) ConvertTime(w http.ResponseWriter, r *http.Request) {
	var req ConvertTimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Invalid Request", "Request body must be valid JSON")
		return
	}
	req.DateTime = validation.SanitizeText(req.DateTime)
	req.FromZone = validation.SanitizeText(req.FromZone)
	req.ToZone = validation.SanitizeText(req.ToZone)
	if err := validation.Validate.Struct(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Validation Error", err.Error())
		return
	}

	conversion, err := h.orch.ConvertTime(r.Context(), req.DateTime, req.FromZone, req.ToZone)
	if err != nil {
		respondWorkflowError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, conversion)
}
