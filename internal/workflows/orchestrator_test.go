package workflows

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/stormnotes/suite/internal/cache"
	"github.com/stormnotes/suite/internal/database"
	"github.com/stormnotes/suite/internal/models"
	"github.com/stormnotes/suite/internal/services/ai"
)

// fakeProvider scripts AI responses per operation and counts calls.
type fakeProvider struct {
	mu sync.Mutex

	lookupResult *ai.TimezoneData
	lookupErr    error
	lookupCalls  int

	convertResult *ai.Conversion
	convertErr    error

	delayResult time.Duration
	delayErr    error
	delayCalls  int

	draft    *ai.EmailDraft
	draftErr error

	analysis    *ai.Analysis
	analysisErr error

	chatReply string
	chatErr   error
	chatCalls int

	generateResult  string
	generateErr     error
	generatePrompts []string
}

func (f *fakeProvider) LookupTimezone(_ context.Context, location string) (*ai.TimezoneData, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookupCalls++
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	if f.lookupResult != nil {
		return f.lookupResult, nil
	}
	return &ai.TimezoneData{Location: location, Timezone: "Etc/UTC", UTCOffset: "+00:00"}, nil
}

func (f *fakeProvider) ConvertTime(context.Context, string, string, string) (*ai.Conversion, error) {
	if f.convertErr != nil {
		return nil, f.convertErr
	}
	return f.convertResult, nil
}

func (f *fakeProvider) ReminderDelay(context.Context, string, string) (time.Duration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.delayCalls++
	if f.delayErr != nil {
		return 0, f.delayErr
	}
	return f.delayResult, nil
}

func (f *fakeProvider) ComposeReminderEmail(context.Context, string, string) (*ai.EmailDraft, error) {
	if f.draftErr != nil {
		return nil, f.draftErr
	}
	return f.draft, nil
}

func (f *fakeProvider) AnalyzeDocument(context.Context, string) (*ai.Analysis, error) {
	if f.analysisErr != nil {
		return nil, f.analysisErr
	}
	return f.analysis, nil
}

func (f *fakeProvider) ComposeAnalysisEmail(context.Context, string, string, string) (*ai.EmailDraft, error) {
	if f.draftErr != nil {
		return nil, f.draftErr
	}
	return f.draft, nil
}

func (f *fakeProvider) GenerateText(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.generatePrompts = append(f.generatePrompts, prompt)
	if f.generateErr != nil {
		return "", f.generateErr
	}
	return f.generateResult, nil
}

func (f *fakeProvider) prompts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.generatePrompts...)
}

func (f *fakeProvider) Chat(context.Context, []models.ChatMessage, models.ChatMessage) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.chatCalls++
	if f.chatErr != nil {
		return "", f.chatErr
	}
	return f.chatReply, nil
}

func (f *fakeProvider) calls() (lookup, delay, chat int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lookupCalls, f.delayCalls, f.chatCalls
}

// fakeMailer records sends and optionally fails them.
type fakeMailer struct {
	mu      sync.Mutex
	sends   []string
	sendErr error
}

func (f *fakeMailer) SendEmail(_ context.Context, to, _, _ string) (*models.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sends = append(f.sends, to)
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	return &models.Receipt{ID: "receipt-1"}, nil
}

func (f *fakeMailer) sendCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sends)
}

// fakeExtractor returns scripted text.
type fakeExtractor struct {
	text string
	err  error
}

func (f *fakeExtractor) ExtractText([]byte, string, string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

// recordingNotifier captures workflow notices.
type recordingNotifier struct {
	mu      sync.Mutex
	notices []string
}

func (n *recordingNotifier) Notify(level, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, level+": "+message)
}

type testFixture struct {
	orch      *Orchestrator
	provider  *fakeProvider
	mailer    *fakeMailer
	extractor *fakeExtractor
	notifier  *recordingNotifier
	cards     *database.MemoryTimezoneCardRepository
	contacts  *database.MemoryContactRepository
	documents *database.MemoryDocumentRepository
	chats     *database.MemoryChatHistoryRepository
}

func newFixture() *testFixture {
	f := &testFixture{
		provider:  &fakeProvider{},
		mailer:    &fakeMailer{},
		extractor: &fakeExtractor{},
		notifier:  &recordingNotifier{},
		cards:     database.NewMemoryTimezoneCardRepository(),
		contacts:  database.NewMemoryContactRepository(),
		documents: database.NewMemoryDocumentRepository(),
		chats:     database.NewMemoryChatHistoryRepository(),
	}
	f.orch = New(Deps{
		Cards:     f.cards,
		Contacts:  f.contacts,
		Documents: f.documents,
		Chats:     f.chats,
		Cache:     cache.New(cache.NewMemoryStore(), 0, zap.NewNop()),
		AI:        f.provider,
		Mailer:    f.mailer,
		Extractor: f.extractor,
		Notifier:  f.notifier,
		Logger:    zap.NewNop(),
	})
	return f
}
