package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/stormnotes/suite/internal/validation"
	"github.com/stormnotes/suite/internal/workflows"
)

// ReminderHandler handles reminder scheduling requests
type ReminderHandler struct {
	orch *workflows.Orchestrator
}

// NewReminderHandler creates a new reminder handler
func NewReminderHandler(orch *workflows.Orchestrator) *ReminderHandler {
	return &ReminderHandler{orch: orch}
}

// RegisterRoutes registers reminder routes on the given router
func (h *ReminderHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("", h.ListReminders).Methods("GET")
	r.HandleFunc("", h.ScheduleReminder).Methods("POST")
	r.HandleFunc("/{id}", h.CancelReminder).Methods("DELETE")
}

// ScheduleReminderRequest represents a schedule reminder request
type ScheduleReminderRequest struct {
	Message        string    `json:"message" validate:"required,min=1,max=1000"`
	RecipientEmail string    `json:"recipient_email" validate:"required,email"`
	FireDate       time.Time `json:"fire_date" validate:"required"`
	Location       string    `json:"location" validate:"required,min=1,max=200"`
	Timezone       string    `json:"timezone" validate:"required,min=1,max=100"`
}

// ListReminders lists pending reminders, soonest first
func (h *ReminderHandler) ListReminders(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.orch.PendingReminders())
}

// ScheduleReminder validates and schedules a one-shot reminder email
func (h *ReminderHandler) ScheduleReminder(w http.ResponseWriter, r *http.Request) {
	var req ScheduleReminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Invalid Request", "Request body must be valid JSON")
		return
	}
	req.Message = validation.SanitizeText(req.Message)
	if err := validation.Validate.Struct(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Validation Error", err.Error())
		return
	}

	reminder, err := h.orch.ScheduleReminder(r.Context(), req.Message, req.RecipientEmail, req.FireDate, req.Location, req.Timezone)
	if err != nil {
		respondWorkflowError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, reminder)
}

// CancelReminder removes a pending reminder
func (h *ReminderHandler) CancelReminder(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, "Invalid Request", "Invalid reminder ID")
		return
	}

	if !h.orch.CancelReminder(id) {
		respondJSONError(w, http.StatusNotFound, "Not Found", "Reminder is not pending")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}
