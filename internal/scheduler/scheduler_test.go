package scheduler

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stormnotes/suite/internal/models"
)

func TestSchedulerFiresAndRemoves(t *testing.T) {
	t.Parallel()

	fired := make(chan models.Reminder, 1)
	s := New(func(r models.Reminder) { fired <- r }, zap.NewNop())

	reminder := models.Reminder{ID: uuid.New(), Message: "stand up"}
	s.Schedule(reminder, 10*time.Millisecond)

	if got := len(s.Pending()); got != 1 {
		t.Fatalf("Pending() = %d reminders, want 1", got)
	}

	select {
	case r := <-fired:
		if r.Message != "stand up" {
			t.Errorf("fired reminder message = %q, want %q", r.Message, "stand up")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("reminder never fired")
	}

	if got := len(s.Pending()); got != 0 {
		t.Errorf("Pending() after fire = %d reminders, want 0", got)
	}
}

func TestSchedulerCancelPreventsFire(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var firedCount int
	s := New(func(models.Reminder) {
		mu.Lock()
		firedCount++
		mu.Unlock()
	}, zap.NewNop())

	reminder := models.Reminder{ID: uuid.New()}
	s.Schedule(reminder, 20*time.Millisecond)

	if !s.Cancel(reminder.ID) {
		t.Fatal("Cancel() = false for pending reminder")
	}
	if s.Cancel(reminder.ID) {
		t.Error("Cancel() = true for already-cancelled reminder")
	}

	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if firedCount != 0 {
		t.Errorf("cancelled reminder fired %d times", firedCount)
	}
}

func TestSchedulerPendingSortedByFireTime(t *testing.T) {
	t.Parallel()

	s := New(func(models.Reminder) {}, zap.NewNop())
	base := time.Now()

	later := models.Reminder{ID: uuid.New(), FireDate: base.Add(2 * time.Hour)}
	sooner := models.Reminder{ID: uuid.New(), FireDate: base.Add(time.Hour)}

	s.Schedule(later, time.Hour)
	s.Schedule(sooner, time.Hour)

	pending := s.Pending()
	if len(pending) != 2 {
		t.Fatalf("Pending() = %d reminders, want 2", len(pending))
	}
	if pending[0].ID != sooner.ID {
		t.Errorf("Pending()[0] = %s, want the sooner reminder", pending[0].ID)
	}

	s.Stop()
	if got := len(s.Pending()); got != 0 {
		t.Errorf("Pending() after Stop = %d reminders, want 0", got)
	}
}
