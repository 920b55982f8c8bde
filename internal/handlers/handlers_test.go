package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/stormnotes/suite/internal/cache"
	"github.com/stormnotes/suite/internal/database"
	"github.com/stormnotes/suite/internal/models"
	"github.com/stormnotes/suite/internal/services/ai"
	"github.com/stormnotes/suite/internal/workflows"
)

// stubProvider returns fixed lookups and fails everything else.
type stubProvider struct{}

func (stubProvider) LookupTimezone(_ context.Context, location string) (*ai.TimezoneData, error) {
	return &ai.TimezoneData{
		Location:    location,
		Timezone:    "Etc/UTC",
		UTCOffset:   "+00:00",
		InitialTime: time.Now().UTC(),
	}, nil
}
func (stubProvider) ConvertTime(context.Context, string, string, string) (*ai.Conversion, error) {
	return &ai.Conversion{ConvertedTime: "2026-08-30 09:00:00", Explanation: "converted"}, nil
}
func (stubProvider) ReminderDelay(context.Context, string, string) (time.Duration, error) {
	return time.Hour, nil
}
func (stubProvider) ComposeReminderEmail(context.Context, string, string) (*ai.EmailDraft, error) {
	return &ai.EmailDraft{Subject: "s", Body: "b"}, nil
}
func (stubProvider) AnalyzeDocument(context.Context, string) (*ai.Analysis, error) {
	return &ai.Analysis{Summary: "summary", Sentiment: "Positive"}, nil
}
func (stubProvider) ComposeAnalysisEmail(context.Context, string, string, string) (*ai.EmailDraft, error) {
	return &ai.EmailDraft{Subject: "s", Body: "b"}, nil
}
func (stubProvider) GenerateText(context.Context, string) (string, error) { return "text", nil }
func (stubProvider) Chat(context.Context, []models.ChatMessage, models.ChatMessage) (string, error) {
	return "reply", nil
}

type stubMailer struct{}

func (stubMailer) SendEmail(context.Context, string, string, string) (*models.Receipt, error) {
	return &models.Receipt{ID: "r1"}, nil
}

type stubExtractor struct{}

func (stubExtractor) ExtractText(data []byte, _, _ string) (string, error) {
	return string(data), nil
}

func newTestRouter() *mux.Router {
	orch := workflows.New(workflows.Deps{
		Cards:     database.NewMemoryTimezoneCardRepository(),
		Contacts:  database.NewMemoryContactRepository(),
		Documents: database.NewMemoryDocumentRepository(),
		Chats:     database.NewMemoryChatHistoryRepository(),
		Cache:     cache.New(cache.NewMemoryStore(), 0, zap.NewNop()),
		AI:        stubProvider{},
		Mailer:    stubMailer{},
		Extractor: stubExtractor{},
		Logger:    zap.NewNop(),
	})

	r := mux.NewRouter()
	NewTimezoneHandler(orch).RegisterRoutes(r.PathPrefix("/api/v1/timezones").Subrouter())
	NewContactHandler(orch).RegisterRoutes(r.PathPrefix("/api/v1/contacts").Subrouter())
	NewConverterHandler(orch).RegisterRoutes(r.PathPrefix("/api/v1/convert").Subrouter())
	NewChatHandler(orch).RegisterRoutes(r.PathPrefix("/api/v1/chat").Subrouter())
	NewContentHandler(orch).RegisterRoutes(r.PathPrefix("/api/v1/content").Subrouter())
	return r
}

func doJSON(t *testing.T, router *mux.Router, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(method, path, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	return w
}

func TestAddTimezoneEndpoint(t *testing.T) {
	t.Parallel()

	router := newTestRouter()

	w := doJSON(t, router, "POST", "/api/v1/timezones", `{"location":"Tokyo"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d; body %s", w.Code, http.StatusCreated, w.Body.String())
	}

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Card *models.TimezoneCard `json:"card"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response not valid JSON: %v", err)
	}
	if !resp.Success || resp.Data.Card == nil || resp.Data.Card.Timezone != "Etc/UTC" {
		t.Errorf("unexpected response: %s", w.Body.String())
	}

	// Same location again is a conflict.
	w2 := doJSON(t, router, "POST", "/api/v1/timezones", `{"location":"tokyo"}`)
	if w2.Code != http.StatusConflict {
		t.Errorf("duplicate status = %d, want %d", w2.Code, http.StatusConflict)
	}
}

func TestAddTimezoneRejectsEmptyLocation(t *testing.T) {
	t.Parallel()

	router := newTestRouter()
	w := doJSON(t, router, "POST", "/api/v1/timezones", `{"location":""}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestContactEndpoints(t *testing.T) {
	t.Parallel()

	router := newTestRouter()

	w := doJSON(t, router, "POST", "/api/v1/contacts", `{"name":"Ada","email":"ada@example.com"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d; body %s", w.Code, http.StatusCreated, w.Body.String())
	}

	w2 := doJSON(t, router, "POST", "/api/v1/contacts", `{"name":"Ada 2","email":"ADA@example.com"}`)
	if w2.Code != http.StatusConflict {
		t.Errorf("case-variant duplicate status = %d, want %d", w2.Code, http.StatusConflict)
	}

	w3 := doJSON(t, router, "POST", "/api/v1/contacts", `{"name":"Bad","email":"not-an-email"}`)
	if w3.Code != http.StatusBadRequest {
		t.Errorf("invalid email status = %d, want %d", w3.Code, http.StatusBadRequest)
	}
}

func TestConvertEndpoint(t *testing.T) {
	t.Parallel()

	router := newTestRouter()
	w := doJSON(t, router, "POST", "/api/v1/convert", `{"date_time":"2026-08-30 22:00:00","from_zone":"Asia/Tokyo","to_zone":"America/New_York"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body %s", w.Code, http.StatusOK, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "2026-08-30 09:00:00") {
		t.Errorf("body missing converted time: %s", w.Body.String())
	}
}

func TestChatEndpointBadAttachment(t *testing.T) {
	t.Parallel()

	router := newTestRouter()
	body := `{"text":"look","attachment":{"type":"image","content":"not-a-data-url","name":"x.png"}}`
	w := doJSON(t, router, "POST", "/api/v1/chat", body)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d; body %s", w.Code, http.StatusBadRequest, w.Body.String())
	}
}

func TestContentEndpoints(t *testing.T) {
	t.Parallel()

	router := newTestRouter()

	w := doJSON(t, router, "POST", "/api/v1/content", `{"topic":"the future of ai","content_type":"Blog Post"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body %s", w.Code, http.StatusOK, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"content":"text"`) {
		t.Errorf("body missing generated content: %s", w.Body.String())
	}

	w2 := doJSON(t, router, "POST", "/api/v1/content", `{"topic":"x","content_type":"Haiku"}`)
	if w2.Code != http.StatusBadRequest {
		t.Errorf("unknown type status = %d, want %d", w2.Code, http.StatusBadRequest)
	}

	w3 := doJSON(t, router, "POST", "/api/v1/content/refine", `{"prompt":"write something"}`)
	if w3.Code != http.StatusOK {
		t.Errorf("refine status = %d, want %d; body %s", w3.Code, http.StatusOK, w3.Body.String())
	}

	w4 := doJSON(t, router, "POST", "/api/v1/content/enhance", `{"content":""}`)
	if w4.Code != http.StatusBadRequest {
		t.Errorf("empty enhance status = %d, want %d", w4.Code, http.StatusBadRequest)
	}
}

func TestHealthEndpoint(t *testing.T) {
	t.Parallel()

	checker := NewHealthChecker(nil, nil)
	w := httptest.NewRecorder()
	checker.HealthCheck(w, httptest.NewRequest("GET", "/healthz", nil))
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}

	w2 := httptest.NewRecorder()
	checker.HealthCheck(w2, httptest.NewRequest("GET", "/healthz?mode=extended", nil))
	if w2.Code != http.StatusOK {
		t.Errorf("extended status = %d, want %d", w2.Code, http.StatusOK)
	}
	if !strings.Contains(w2.Body.String(), "not configured") {
		t.Errorf("extended body = %s, want not-configured checks", w2.Body.String())
	}
}
