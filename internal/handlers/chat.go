package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/stormnotes/suite/internal/models"
	"github.com/stormnotes/suite/internal/validation"
	"github.com/stormnotes/suite/internal/workflows"
)

// ChatHandler handles assistant conversation requests
type ChatHandler struct {
	orch *workflows.Orchestrator
}

// NewChatHandler creates a new chat handler
func NewChatHandler(orch *workflows.Orchestrator) *ChatHandler {
	return &ChatHandler{orch: orch}
}

// RegisterRoutes registers chat routes on the given router
func (h *ChatHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("", h.History).Methods("GET")
	r.HandleFunc("", h.SendMessage).Methods("POST")
	r.HandleFunc("", h.Clear).Methods("DELETE")
}

// SendMessageRequest represents a chat turn request
type SendMessageRequest struct {
	Text       string             `json:"text" validate:"max=10000"`
	Attachment *AttachmentRequest `json:"attachment,omitempty"`
}

// AttachmentRequest is an optional file payload on a chat message
type AttachmentRequest struct {
	Type    string `json:"type" validate:"required,attachment_type"`
	Content string `json:"content" validate:"required"`
	Name    string `json:"name" validate:"required,max=255"`
}

// History returns the stored transcript, oldest first
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	transcript, err := h.orch.ChatHistory(r.Context())
	if err != nil {
		respondWorkflowError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, transcript)
}

// SendMessage runs one chat turn and returns the model's reply
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Invalid Request", "Request body must be valid JSON")
		return
	}
	req.Text = validation.SanitizeText(req.Text)
	if err := validation.Validate.Struct(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Validation Error", err.Error())
		return
	}

	message := models.ChatMessage{Role: models.RoleUser, Text: req.Text}
	if req.Attachment != nil {
		message.Attachment = &models.FileAttachment{
			Type:    req.Attachment.Type,
			Content: req.Attachment.Content,
			Name:    req.Attachment.Name,
		}
	}

	reply, err := h.orch.ChatTurn(r.Context(), message)
	if err != nil {
		respondWorkflowError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, reply)
}

// Clear erases the stored transcript
func (h *ChatHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.orch.ClearChat(r.Context()); err != nil {
		respondWorkflowError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}
