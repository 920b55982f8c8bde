package workflows

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stormnotes/suite/internal/models"
)

// ScheduleReminder validates and schedules a one-shot reminder email. The
// fire date must be at least one minute out; that check happens before any
// external call. The AI provider computes the delay from the target local
// time in the card's timezone.
func (o *Orchestrator) ScheduleReminder(ctx context.Context, message, recipientEmail string, fireDate time.Time, location, timezone string) (*models.Reminder, error) {
	if strings.TrimSpace(message) == "" {
		return nil, &ValidationError{Message: "reminder message must not be empty"}
	}
	if strings.TrimSpace(recipientEmail) == "" {
		return nil, &ValidationError{Message: "recipient email must not be empty"}
	}
	if fireDate.Before(time.Now().Add(models.MinReminderLead)) {
		return nil, &ValidationError{Message: "reminder must be set at least 1 minute in the future"}
	}

	delay, err := o.ai.ReminderDelay(ctx, fireDate.Format("2006-01-02 15:04:05"), timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to compute reminder delay: %w", err)
	}

	reminder := models.Reminder{
		ID:             uuid.New(),
		Message:        message,
		RecipientEmail: recipientEmail,
		FireDate:       fireDate,
		Location:       location,
	}
	o.sched.Schedule(reminder, delay)
	return &reminder, nil
}

// PendingReminders returns reminders still waiting to fire, soonest first.
func (o *Orchestrator) PendingReminders() []models.Reminder {
	return o.sched.Pending()
}

// CancelReminder removes a pending reminder. Returns false if it already
// fired or never existed.
func (o *Orchestrator) CancelReminder(id uuid.UUID) bool {
	return o.sched.Cancel(id)
}

// handleReminderFired runs when a reminder's timer elapses: compose the
// notification email and send it. The reminder has already left the
// pending set; a failed send is surfaced but not retried.
func (o *Orchestrator) handleReminderFired(reminder models.Reminder) {
	ctx, cancel := background()
	defer cancel()

	draft, err := o.ai.ComposeReminderEmail(ctx, reminder.Message, reminder.Location)
	if err != nil {
		o.logger.Error("reminder_email_compose_failed",
			zap.String("reminder_id", reminder.ID.String()),
			zap.Error(err),
		)
		o.notify(NoticeError, fmt.Sprintf("Reminder %q fired but the email could not be composed", reminder.Message))
		return
	}

	receipt, err := o.mailer.SendEmail(ctx, reminder.RecipientEmail, draft.Subject, draft.Body)
	if err != nil {
		o.logger.Error("reminder_email_send_failed",
			zap.String("reminder_id", reminder.ID.String()),
			zap.Error(err),
		)
		o.notify(NoticeError, fmt.Sprintf("Reminder %q fired but the email could not be sent", reminder.Message))
		return
	}

	o.logger.Info("reminder_email_sent",
		zap.String("reminder_id", reminder.ID.String()),
		zap.String("receipt_id", receipt.ID),
	)
	o.notify(NoticeSuccess, fmt.Sprintf("Reminder %q fired and the email was sent", reminder.Message))
}
