package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/stormnotes/suite/internal/validation"
	"github.com/stormnotes/suite/internal/workflows"
)

// ContactHandler handles address-book requests
type ContactHandler struct {
	orch *workflows.Orchestrator
}

// NewContactHandler creates a new contact handler
func NewContactHandler(orch *workflows.Orchestrator) *ContactHandler {
	return &ContactHandler{orch: orch}
}

// RegisterRoutes registers contact routes on the given router
func (h *ContactHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("", h.ListContacts).Methods("GET")
	r.HandleFunc("", h.AddContact).Methods("POST")
	r.HandleFunc("/{id}", h.DeleteContact).Methods("DELETE")
}

// AddContactRequest represents an add contact request
type AddContactRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=200"`
	Email string `json:"email" validate:"required,email"`
}

// ListContacts lists the address book
func (h *ContactHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.orch.ListContacts(r.Context())
	if err != nil {
		respondWorkflowError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, contacts)
}

// AddContact adds an address-book entry
func (h *ContactHandler) AddContact(w http.ResponseWriter, r *http.Request) {
	var req AddContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Invalid Request", "Request body must be valid JSON")
		return
	}
	req.Name = validation.SanitizeText(req.Name)
	req.Email = validation.SanitizeText(req.Email)
	if err := validation.Validate.Struct(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Validation Error", err.Error())
		return
	}

	contact, err := h.orch.AddContact(r.Context(), req.Name, req.Email)
	if err != nil {
		respondWorkflowError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, contact)
}

// DeleteContact removes a contact
func (h *ContactHandler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, "Invalid Request", "Invalid contact ID")
		return
	}

	if err := h.orch.DeleteContact(r.Context(), id); err != nil {
		respondJSONError(w, http.StatusNotFound, "Not Found", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
