package handlers

import (
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/stormnotes/suite/internal/extract"
	"github.com/stormnotes/suite/internal/validation"
	"github.com/stormnotes/suite/internal/workflows"
)

// DocumentHandler handles document workflow requests
type DocumentHandler struct {
	orch *workflows.Orchestrator
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(orch *workflows.Orchestrator) *DocumentHandler {
	return &DocumentHandler{orch: orch}
}

// RegisterRoutes registers document routes on the given router
func (h *DocumentHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("", h.ListDocuments).Methods("GET")
	r.HandleFunc("", h.RunWorkflow).Methods("POST")
}

// ListDocuments lists analyzed documents, newest first
func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := h.orch.ListDocuments(r.Context())
	if err != nil {
		respondWorkflowError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, docs)
}

// RunWorkflow accepts a multipart upload ("file" part plus a
// "recipient_email" field) and runs the analyze-and-notify pipeline.
func (h *DocumentHandler) RunWorkflow(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(extract.MaxFileBytes); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Invalid Request", "Request must be multipart/form-data with a file")
		return
	}

	recipient := validation.SanitizeText(r.FormValue("recipient_email"))
	if err := validation.Validate.Var(recipient, "required,email"); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Validation Error", "A valid recipient_email is required")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, "Invalid Request", "A file upload is required")
		return
	}
	defer file.Close()

	if header.Size > extract.MaxFileBytes {
		respondJSONError(w, http.StatusRequestEntityTooLarge, "File Too Large", "File size must be less than 2MB")
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, extract.MaxFileBytes+1))
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, "Invalid Request", "Could not read the uploaded file")
		return
	}
	if int64(len(data)) > extract.MaxFileBytes {
		respondJSONError(w, http.StatusRequestEntityTooLarge, "File Too Large", "File size must be less than 2MB")
		return
	}

	doc, err := h.orch.RunDocumentWorkflow(r.Context(), data, header.Filename, header.Header.Get("Content-Type"), recipient)
	if err != nil {
		respondWorkflowError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, doc)
}
