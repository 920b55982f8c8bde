package workflows

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stormnotes/suite/internal/models"
)

// ListDocuments returns the analyzed documents, newest first.
func (o *Orchestrator) ListDocuments(ctx context.Context) ([]*models.Document, error) {
	return o.documents.List(ctx)
}

// RunDocumentWorkflow runs the full analyze-and-notify pipeline: extract
// text, analyze it, persist the Document, compose the analysis email, send
// it to the recipient. The first failing step aborts the rest; completed
// side effects are kept, so an email failure still leaves the persisted
// Document in place.
func (o *Orchestrator) RunDocumentWorkflow(ctx context.Context, data []byte, filename, mimeType, recipientEmail string) (*models.Document, error) {
	text, err := o.extractor.ExtractText(data, filename, mimeType)
	if err != nil {
		return nil, err
	}

	analysis, err := o.ai.AnalyzeDocument(ctx, text)
	if err != nil {
		return nil, err
	}

	doc := &models.Document{
		ID:           uuid.New(),
		Filename:     filename,
		OriginalText: text,
		Summary:      analysis.Summary,
		Sentiment:    analysis.Sentiment,
	}
	if err := o.documents.Add(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to persist document: %w", err)
	}

	draft, err := o.ai.ComposeAnalysisEmail(ctx, analysis.Summary, analysis.Sentiment, filename)
	if err != nil {
		return nil, fmt.Errorf("document %q analyzed but the report email could not be composed: %w", filename, err)
	}

	receipt, err := o.mailer.SendEmail(ctx, recipientEmail, draft.Subject, draft.Body)
	if err != nil {
		return nil, fmt.Errorf("document %q analyzed but the report email could not be sent: %w", filename, err)
	}

	o.logger.Info("document_workflow_completed",
		zap.String("document_id", doc.ID.String()),
		zap.String("filename", filename),
		zap.String("receipt_id", receipt.ID),
	)
	return doc, nil
}
