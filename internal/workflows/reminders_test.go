package workflows

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stormnotes/suite/internal/services/ai"
)

func TestScheduleReminderRejectsNearFireDateBeforeExternalCalls(t *testing.T) {
	t.Parallel()

	f := newFixture()
	fireDate := time.Now().Add(30 * time.Second)

	_, err := f.orch.ScheduleReminder(context.Background(), "stand up", "a@example.com", fireDate, "Tokyo", "Asia/Tokyo")
	if !IsValidation(err) {
		t.Fatalf("ScheduleReminder() = %v, want ValidationError", err)
	}

	_, delays, _ := f.provider.calls()
	if delays != 0 {
		t.Errorf("delay op called %d times for a rejected reminder, want 0", delays)
	}
}

func TestScheduleReminderFiresAndSendsEmail(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.provider.delayResult = 10 * time.Millisecond
	f.provider.draft = &ai.EmailDraft{Subject: "Reminder", Body: "<p>stand up</p>"}

	reminder, err := f.orch.ScheduleReminder(context.Background(), "stand up", "a@example.com", time.Now().Add(2*time.Minute), "Tokyo", "Asia/Tokyo")
	if err != nil {
		t.Fatalf("ScheduleReminder() error = %v", err)
	}
	if len(f.orch.PendingReminders()) != 1 {
		t.Fatal("reminder not in pending set after scheduling")
	}

	waitFor(t, func() bool { return f.mailer.sendCount() == 1 })

	if len(f.orch.PendingReminders()) != 0 {
		t.Error("fired reminder still in pending set")
	}
	if f.orch.CancelReminder(reminder.ID) {
		t.Error("CancelReminder() = true for an already-fired reminder")
	}

	f.notifier.mu.Lock()
	defer f.notifier.mu.Unlock()
	if len(f.notifier.notices) != 1 || !strings.HasPrefix(f.notifier.notices[0], NoticeSuccess) {
		t.Errorf("notices = %v, want one success notice", f.notifier.notices)
	}
}

func TestReminderLeavesPendingSetWhenSendFails(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.provider.delayResult = 10 * time.Millisecond
	f.provider.draft = &ai.EmailDraft{Subject: "Reminder", Body: "<p>x</p>"}
	f.mailer.sendErr = &DeliveryFailure{}

	if _, err := f.orch.ScheduleReminder(context.Background(), "x", "a@example.com", time.Now().Add(2*time.Minute), "Tokyo", "Asia/Tokyo"); err != nil {
		t.Fatalf("ScheduleReminder() error = %v", err)
	}

	waitFor(t, func() bool { return f.mailer.sendCount() == 1 })

	// One-shot: the failed send removes the reminder and is not retried.
	if len(f.orch.PendingReminders()) != 0 {
		t.Error("reminder still pending after failed fire")
	}
	time.Sleep(50 * time.Millisecond)
	if f.mailer.sendCount() != 1 {
		t.Errorf("send attempted %d times, want exactly 1", f.mailer.sendCount())
	}

	f.notifier.mu.Lock()
	defer f.notifier.mu.Unlock()
	if len(f.notifier.notices) != 1 || !strings.HasPrefix(f.notifier.notices[0], NoticeError) {
		t.Errorf("notices = %v, want one error notice", f.notifier.notices)
	}
}

func TestCancelReminderPreventsEmail(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.provider.delayResult = 30 * time.Millisecond
	f.provider.draft = &ai.EmailDraft{Subject: "Reminder", Body: "<p>x</p>"}

	reminder, err := f.orch.ScheduleReminder(context.Background(), "x", "a@example.com", time.Now().Add(2*time.Minute), "Tokyo", "Asia/Tokyo")
	if err != nil {
		t.Fatalf("ScheduleReminder() error = %v", err)
	}
	if !f.orch.CancelReminder(reminder.ID) {
		t.Fatal("CancelReminder() = false for a pending reminder")
	}

	time.Sleep(100 * time.Millisecond)
	if f.mailer.sendCount() != 0 {
		t.Errorf("cancelled reminder sent %d emails, want 0", f.mailer.sendCount())
	}
}

// DeliveryFailure is a minimal error type standing in for a mailer failure.
type DeliveryFailure struct{}

func (*DeliveryFailure) Error() string { return "delivery failed" }

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition never met")
}
