package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/stormnotes/suite/internal/validation"
	"github.com/stormnotes/suite/internal/workflows"
)

// ContentHandler handles content generation requests
type ContentHandler struct {
	orch *workflows.Orchestrator
}

// NewContentHandler creates a new content handler
func NewContentHandler(orch *workflows.Orchestrator) *ContentHandler {
	return &ContentHandler{orch: orch}
}

// RegisterRoutes registers content routes on the given router
func (h *ContentHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("", h.Generate).Methods("POST")
	r.HandleFunc("/refine", h.Refine).Methods("POST")
	r.HandleFunc("/enhance", h.Enhance).Methods("POST")
}

// GenerateContentRequest represents a content generation request
type GenerateContentRequest struct {
	Topic       string `json:"topic" validate:"required,min=1,max=2000"`
	ContentType string `json:"content_type" validate:"required,max=50"`
	Pages       int    `json:"pages" validate:"omitempty,min=1,max=2"`
}

// RefinePromptRequest represents a prompt refinement request
type RefinePromptRequest struct {
	Prompt string `json:"prompt" validate:"required,min=1,max=2000"`
}

// EnhanceContentRequest represents a content enhancement request
type EnhanceContentRequest struct {
	Content string `json:"content" validate:"required"`
}

// Generate produces content for a topic
func (h *ContentHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Invalid Request", "Request body must be valid JSON")
		return
	}
	req.Topic = validation.SanitizeText(req.Topic)
	req.ContentType = validation.SanitizeText(req.ContentType)
	if req.Pages == 0 {
		req.Pages = 1
	}
	if err := validation.Validate.Struct(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Validation Error", err.Error())
		return
	}

	text, err := h.orch.GenerateContent(r.Context(), req.Topic, req.ContentType, req.Pages)
	if err != nil {
		respondWorkflowError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"content": text})
}

// Refine rewrites a rough prompt into a more effective one
func (h *ContentHandler) Refine(w http.ResponseWriter, r *http.Request) {
	var req RefinePromptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Invalid Request", "Request body must be valid JSON")
		return
	}
	req.Prompt = validation.SanitizeText(req.Prompt)
	if err := validation.Validate.Struct(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Validation Error", err.Error())
		return
	}

	refined, err := h.orch.RefinePrompt(r.Context(), req.Prompt)
	if err != nil {
		respondWorkflowError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"prompt": refined})
}

// Enhance adds input validation to generated code snippets
func (h *ContentHandler) Enhance(w http.ResponseWriter, r *http.Request) {
	var req EnhanceContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Invalid Request", "Request body must be valid JSON")
		return
	}
	if err := validation.Validate.Struct(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Validation Error", err.Error())
		return
	}

	enhanced, err := h.orch.EnhanceContent(r.Context(), req.Content)
	if err != nil {
		respondWorkflowError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"content": enhanced})
}
