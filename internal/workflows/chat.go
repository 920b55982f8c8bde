package workflows

import (
	"context"
	"fmt"
	"strings"

	"github.com/stormnotes/suite/internal/models"
	"github.com/stormnotes/suite/internal/services/ai"
)

// ChatHistory returns the stored conversation transcript, oldest first.
func (o *Orchestrator) ChatHistory(ctx context.Context) ([]models.ChatMessage, error) {
	return o.chats.Load(ctx)
}

// ChatTurn appends the user's message to the transcript, asks the model
// for a reply with the prior history as context, and appends the reply on
// success. The user message is appended optimistically and stays in the
// transcript when the model call fails, so a retry needs no retyping. A
// malformed attachment rejects the turn before anything is persisted.
func (o *Orchestrator) ChatTurn(ctx context.Context, message models.ChatMessage) (*models.ChatMessage, error) {
	if strings.TrimSpace(message.Text) == "" && message.Attachment == nil {
		return nil, &ValidationError{Message: "message must have text or an attachment"}
	}
	if err := ai.ValidateAttachment(message.Attachment); err != nil {
		return nil, err
	}
	message.Role = models.RoleUser

	history, err := o.chats.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load chat history: %w", err)
	}

	if err := o.chats.Replace(ctx, append(append([]models.ChatMessage(nil), history...), message)); err != nil {
		return nil, fmt.Errorf("failed to persist chat message: %w", err)
	}

	replyText, err := o.ai.Chat(ctx, history, message)
	if err != nil {
		return nil, err
	}

	reply := models.ChatMessage{Role: models.RoleModel, Text: replyText}
	transcript := append(append([]models.ChatMessage(nil), history...), message, reply)
	if err := o.chats.Replace(ctx, transcript); err != nil {
		return nil, fmt.Errorf("failed to persist chat reply: %w", err)
	}

	return &reply, nil
}

// ClearChat erases the stored transcript.
func (o *Orchestrator) ClearChat(ctx context.Context) error {
	return o.chats.Replace(ctx, nil)
}
