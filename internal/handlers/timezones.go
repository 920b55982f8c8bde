package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/stormnotes/suite/internal/validation"
	"github.com/stormnotes/suite/internal/workflows"
)

// TimezoneHandler handles timezone card requests
type TimezoneHandler struct {
	orch *workflows.Orchestrator
}

// NewTimezoneHandler creates a new timezone handler
func NewTimezoneHandler(orch *workflows.Orchestrator) *TimezoneHandler {
	return &TimezoneHandler{orch: orch}
}

// RegisterRoutes registers timezone routes on the given router
// The router should already have the /timezones prefix
func (h *TimezoneHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("", h.ListTimezones).Methods("GET")
	r.HandleFunc("", h.AddTimezone).Methods("POST")
	r.HandleFunc("/ambiguity", h.ResolveAmbiguity).Methods("POST")
	r.HandleFunc("/ambiguity", h.CancelAmbiguity).Methods("DELETE")
	r.HandleFunc("/{id}", h.DeleteTimezone).Methods("DELETE")
}

// AddTimezoneRequest represents an add timezone request
type AddTimezoneRequest struct {
	Location string `json:"location" validate:"required,min=1,max=200"`
}

// ResolveAmbiguityRequest carries the user's pick among candidates
type ResolveAmbiguityRequest struct {
	Location string `json:"location" validate:"required,min=1,max=200"`
}

// ListTimezones lists the tracked timezone cards
func (h *TimezoneHandler) ListTimezones(w http.ResponseWriter, r *http.Request) {
	cards, err := h.orch.ListTimezones(r.Context())
	if err != nil {
		respondWorkflowError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cards)
}

// AddTimezone runs the add-timezone pipeline. An ambiguous location
// returns the candidate list instead of a card.
func (h *TimezoneHandler) AddTimezone(w http.ResponseWriter, r *http.Request) {
	var req AddTimezoneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Invalid Request", "Request body must be valid JSON")
		return
	}
	req.Location = validation.SanitizeText(req.Location)
	if err := validation.Validate.Struct(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Validation Error", err.Error())
		return
	}

	result, err := h.orch.AddTimezone(r.Context(), req.Location)
	if err != nil {
		respondWorkflowError(w, err)
		return
	}
	if result.Ambiguous() {
		respondJSON(w, http.StatusOK, result)
		return
	}
	respondJSON(w, http.StatusCreated, result)
}

// ResolveAmbiguity re-enters the pipeline with the chosen candidate
func (h *TimezoneHandler) ResolveAmbiguity(w http.ResponseWriter, r *http.Request) {
	var req ResolveAmbiguityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Invalid Request", "Request body must be valid JSON")
		return
	}
	req.Location = validation.SanitizeText(req.Location)
	if err := validation.Validate.Struct(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Validation Error", err.Error())
		return
	}

	result, err := h.orch.ResolveAmbiguity(r.Context(), req.Location)
	if err != nil {
		respondWorkflowError(w, err)
		return
	}
	if result.Ambiguous() {
		respondJSON(w, http.StatusOK, result)
		return
	}
	respondJSON(w, http.StatusCreated, result)
}

// CancelAmbiguity abandons a halted lookup
func (h *TimezoneHandler) CancelAmbiguity(w http.ResponseWriter, r *http.Request) {
	h.orch.CancelAmbiguity()
	respondJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}

// DeleteTimezone removes a card
func (h *TimezoneHandler) DeleteTimezone(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, "Invalid Request", "Invalid card ID")
		return
	}

	if err := h.orch.DeleteTimezone(r.Context(), id); err != nil {
		respondJSONError(w, http.StatusNotFound, "Not Found", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
