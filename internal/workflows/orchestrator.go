package workflows

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/stormnotes/suite/internal/cache"
	"github.com/stormnotes/suite/internal/database"
	"github.com/stormnotes/suite/internal/extract"
	"github.com/stormnotes/suite/internal/scheduler"
	"github.com/stormnotes/suite/internal/services/ai"
	"github.com/stormnotes/suite/internal/services/mail"
)

// Notification severity levels reported through the Notifier.
const (
	NoticeSuccess = "success"
	NoticeError   = "error"
)

// Notifier receives the outcome of workflow steps that complete outside a
// request, such as a fired reminder's email send.
type Notifier interface {
	Notify(level, message string)
}

// LogNotifier reports workflow outcomes through the structured log.
type LogNotifier struct {
	Logger *zap.Logger
}

func (n *LogNotifier) Notify(level, message string) {
	if level == NoticeError {
		n.Logger.Error("workflow_notice", zap.String("message", message))
		return
	}
	n.Logger.Info("workflow_notice", zap.String("message", message))
}

// reminderFireTimeout bounds the compose-and-send work that runs when a
// reminder's timer elapses, since no request context exists there.
const reminderFireTimeout = 2 * time.Minute

// ambiguityState is the halted add-timezone pipeline awaiting the user's
// pick among candidate locations.
type ambiguityState struct {
	query      string
	candidates []string
}

// Orchestrator sequences each user-facing workflow across the cache, AI
// provider, repositories, extractor, mailer, and reminder scheduler.
// External-service failures are converted to typed errors at this
// boundary and never corrupt in-memory state; nothing is retried
// automatically.
type Orchestrator struct {
	cards     database.TimezoneCardRepositoryInterface
	contacts  database.ContactRepositoryInterface
	documents database.DocumentRepositoryInterface
	chats     database.ChatHistoryRepositoryInterface
	cache     *cache.Cache
	ai        ai.Provider
	mailer    mail.Mailer
	extractor extract.Extractor
	sched     *scheduler.Scheduler
	notifier  Notifier
	logger    *zap.Logger

	mu        sync.Mutex
	ambiguity *ambiguityState
}

// Deps carries the collaborators an Orchestrator coordinates.
type Deps struct {
	Cards     database.TimezoneCardRepositoryInterface
	Contacts  database.ContactRepositoryInterface
	Documents database.DocumentRepositoryInterface
	Chats     database.ChatHistoryRepositoryInterface
	Cache     *cache.Cache
	AI        ai.Provider
	Mailer    mail.Mailer
	Extractor extract.Extractor
	Notifier  Notifier
	Logger    *zap.Logger
}

// New creates an orchestrator and its reminder scheduler. The scheduler's
// fire handler feeds back into the reminder-fired pipeline.
func New(deps Deps) *Orchestrator {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Notifier == nil {
		deps.Notifier = &LogNotifier{Logger: deps.Logger}
	}

	o := &Orchestrator{
		cards:     deps.Cards,
		contacts:  deps.Contacts,
		documents: deps.Documents,
		chats:     deps.Chats,
		cache:     deps.Cache,
		ai:        deps.AI,
		mailer:    deps.Mailer,
		extractor: deps.Extractor,
		notifier:  deps.Notifier,
		logger:    deps.Logger,
	}
	o.sched = scheduler.New(o.handleReminderFired, deps.Logger)
	return o
}

// Close cancels all pending reminder timers.
func (o *Orchestrator) Close() {
	o.sched.Stop()
}

// notify surfaces a workflow outcome without blocking the pipeline.
func (o *Orchestrator) notify(level, message string) {
	o.notifier.Notify(level, message)
}

// background returns a bounded context for work that runs outside any
// request, such as a reminder firing.
func background() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), reminderFireTimeout)
}
