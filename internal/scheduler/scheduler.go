package scheduler

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stormnotes/suite/internal/models"
)

// FireHandler is invoked when a reminder's timer elapses. It runs on the
// timer's goroutine, outside the scheduler lock.
type FireHandler func(reminder models.Reminder)

type entry struct {
	reminder models.Reminder
	timer    *time.Timer
}

// Scheduler holds pending reminders in process memory and fires each one
// once after its delay. Reminders do not survive a restart.
type Scheduler struct {
	mu      sync.Mutex
	pending map[uuid.UUID]*entry
	handler FireHandler
	logger  *zap.Logger
}

// New creates a scheduler that invokes handler when a reminder fires.
func New(handler FireHandler, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		pending: make(map[uuid.UUID]*entry),
		handler: handler,
		logger:  logger,
	}
}

// Schedule registers a reminder to fire after delay. Scheduling an ID that
// is already pending replaces the previous timer.
func (s *Scheduler) Schedule(reminder models.Reminder, delay time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.pending[reminder.ID]; ok {
		prev.timer.Stop()
	}

	e := &entry{reminder: reminder}
	e.timer = time.AfterFunc(delay, func() {
		s.fire(reminder.ID)
	})
	s.pending[reminder.ID] = e

	s.logger.Info("reminder_scheduled",
		zap.String("reminder_id", reminder.ID.String()),
		zap.Duration("delay", delay),
		zap.Time("fire_date", reminder.FireDate),
	)
}

// fire removes the reminder from the pending set and invokes the handler.
// The presence check under the lock means a reminder cancelled while its
// timer callback was starting never reaches the handler.
func (s *Scheduler) fire(id uuid.UUID) {
	s.mu.Lock()
	e, ok := s.pending[id]
	if ok {
		delete(s.pending, id)
	}
	s.mu.Unlock()

	if !ok {
		return
	}

	s.logger.Info("reminder_fired", zap.String("reminder_id", id.String()))
	s.handler(e.reminder)
}

// Cancel removes a pending reminder so it never fires. Returns false if the
// reminder is not pending.
func (s *Scheduler) Cancel(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.pending[id]
	if !ok {
		return false
	}
	e.timer.Stop()
	delete(s.pending, id)

	s.logger.Info("reminder_cancelled", zap.String("reminder_id", id.String()))
	return true
}

// Pending returns the reminders still waiting to fire, soonest first.
func (s *Scheduler) Pending() []models.Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Reminder, 0, len(s.pending))
	for _, e := range s.pending {
		out = append(out, e.reminder)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].FireDate.Before(out[j].FireDate)
	})
	return out
}

// Stop cancels every pending timer. Used during shutdown.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, e := range s.pending {
		e.timer.Stop()
		delete(s.pending, id)
	}
}
