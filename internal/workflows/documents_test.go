package workflows

import (
	"context"
	"errors"
	"testing"

	"github.com/stormnotes/suite/internal/extract"
	"github.com/stormnotes/suite/internal/services/ai"
)

func TestRunDocumentWorkflowSuccess(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.extractor.text = "The project launched successfully and exceeded all targets."
	f.provider.analysis = &ai.Analysis{Summary: "A successful launch that beat its targets.", Sentiment: "Positive"}
	f.provider.draft = &ai.EmailDraft{Subject: "Analysis of report.txt", Body: "<p>Positive</p>"}

	doc, err := f.orch.RunDocumentWorkflow(context.Background(), []byte("raw"), "report.txt", "text/plain", "a@example.com")
	if err != nil {
		t.Fatalf("RunDocumentWorkflow() error = %v", err)
	}
	if doc.Summary == "" || doc.Sentiment != "Positive" {
		t.Errorf("document = %+v, want summary and one-word sentiment", doc)
	}

	docs, _ := f.documents.List(context.Background())
	if len(docs) != 1 {
		t.Errorf("persisted %d documents, want exactly 1", len(docs))
	}
	if f.mailer.sendCount() != 1 {
		t.Errorf("attempted %d email sends, want exactly 1", f.mailer.sendCount())
	}
}

func TestRunDocumentWorkflowEmailFailureKeepsDocument(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.extractor.text = "Quarterly results."
	f.provider.analysis = &ai.Analysis{Summary: "Results summary.", Sentiment: "Neutral"}
	f.provider.draft = &ai.EmailDraft{Subject: "Analysis", Body: "<p>ok</p>"}
	f.mailer.sendErr = errors.New("provider rejected the send")

	_, err := f.orch.RunDocumentWorkflow(context.Background(), []byte("raw"), "q3.txt", "text/plain", "a@example.com")
	if err == nil {
		t.Fatal("RunDocumentWorkflow() expected failure when email send fails")
	}

	// No rollback: the persisted document survives the failed send.
	docs, _ := f.documents.List(context.Background())
	if len(docs) != 1 {
		t.Errorf("persisted %d documents after email failure, want 1", len(docs))
	}
}

func TestRunDocumentWorkflowExtractionFailureAbortsEverything(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.extractor.err = &extract.ExtractionError{Filename: "broken.pdf", Reason: "could not open PDF"}

	_, err := f.orch.RunDocumentWorkflow(context.Background(), []byte("raw"), "broken.pdf", "application/pdf", "a@example.com")
	var extErr *extract.ExtractionError
	if !errors.As(err, &extErr) {
		t.Fatalf("RunDocumentWorkflow() = %v, want ExtractionError", err)
	}

	docs, _ := f.documents.List(context.Background())
	if len(docs) != 0 {
		t.Errorf("persisted %d documents after extraction failure, want 0", len(docs))
	}
	if f.mailer.sendCount() != 0 {
		t.Errorf("attempted %d email sends after extraction failure, want 0", f.mailer.sendCount())
	}
}

func TestRunDocumentWorkflowAnalysisFailurePersistsNothing(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.extractor.text = "some text"
	f.provider.analysisErr = &ai.MalformedResponseError{Op: "document analysis", Raw: "no labels here"}

	_, err := f.orch.RunDocumentWorkflow(context.Background(), []byte("raw"), "a.txt", "text/plain", "a@example.com")
	if err == nil {
		t.Fatal("RunDocumentWorkflow() expected failure when analysis fails")
	}

	docs, _ := f.documents.List(context.Background())
	if len(docs) != 0 {
		t.Errorf("persisted %d documents after analysis failure, want 0", len(docs))
	}
}
