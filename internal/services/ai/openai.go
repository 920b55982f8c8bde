package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
	"go.uber.org/zap"

	logpkg "github.com/stormnotes/suite/internal/logger"
	"github.com/stormnotes/suite/internal/models"
)

const (
	// DefaultModel is the default completion model.
	DefaultModel = "gpt-4o-mini"
	// DefaultBaseURL is the default OpenAI API base URL.
	DefaultBaseURL = "https://api.openai.com/v1"
	// DefaultTimeout is the default timeout for API calls.
	DefaultTimeout = 30 * time.Second

	// ErrNoChoicesInResponse is returned when the API response has no choices.
	ErrNoChoicesInResponse = "no choices in response"

	finishReasonContentFilter = "content_filter"
)

var dataURLRe = regexp.MustCompile(`^data:(.+);base64,(.+)$`)

// OpenAIProvider implements Provider using OpenAI's chat completions API.
type OpenAIProvider struct {
	client    openai.Client
	model     string
	logger    *zap.Logger
	debugMode bool
}

// NewOpenAIProvider creates a new OpenAI provider.
func NewOpenAIProvider(apiKey, baseURL, model string, logger *zap.Logger, debugMode bool) *OpenAIProvider {
	if model == "" {
		model = DefaultModel
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	httpClient := &http.Client{
		Timeout: DefaultTimeout,
	}

	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
		option.WithHTTPClient(httpClient),
	)

	return &OpenAIProvider{
		client:    client,
		model:     model,
		logger:    logger,
		debugMode: debugMode,
	}
}

var _ Provider = (*OpenAIProvider)(nil)

// completion is the raw outcome of one model call.
type completion struct {
	text    string
	sources []models.GroundingSource
}

// completeMessages sends a chat completion request and applies the shared
// response checks: no choices, content-policy block, empty response, and
// grounding citation extraction.
func (p *OpenAIProvider) completeMessages(ctx context.Context, op string, messages []openai.ChatCompletionMessageParamUnion, grounded bool) (*completion, error) {
	req := openai.ChatCompletionNewParams{
		Model:    shared.ChatModel(p.model),
		Messages: messages,
	}
	if grounded {
		req.WebSearchOptions = openai.ChatCompletionNewParamsWebSearchOptions{
			SearchContextSize: "medium",
		}
	}

	if p.debugMode {
		p.logger.Debug("llm_api_request",
			zap.String("operation", op),
			zap.String("model", p.model),
			zap.Int("message_count", len(messages)),
			zap.Bool("grounded", grounded),
		)
	}

	start := time.Now()
	resp, err := p.client.Chat.Completions.New(ctx, req)
	latency := time.Since(start)

	if err != nil {
		if p.debugMode {
			p.logger.Debug("llm_api_error",
				zap.String("operation", op),
				zap.String("model", p.model),
				zap.String("error", logpkg.SanitizeError(err)),
				zap.Int64("latency_ms", latency.Milliseconds()),
			)
		}
		if apiErr := ExtractAPIError(err); apiErr != nil {
			return nil, fmt.Errorf("%s: %w", op, apiErr)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(resp.Choices) == 0 {
		return nil, errors.New(ErrNoChoicesInResponse)
	}

	choice := resp.Choices[0]
	content := choice.Message.Content

	if content == "" {
		if string(choice.FinishReason) == finishReasonContentFilter {
			return nil, &ContentPolicyError{Op: op}
		}
		return nil, fmt.Errorf("%s: model returned an empty response", op)
	}

	if p.debugMode {
		p.logger.Debug("llm_api_response",
			zap.String("operation", op),
			zap.String("model", p.model),
			zap.Int("response_length", len(content)),
			zap.String("response_preview", SanitizeResponse(content)),
			zap.Int64("latency_ms", latency.Milliseconds()),
		)
	}

	return &completion{
		text:    content,
		sources: extractGroundingSources(choice.Message.Annotations),
	}, nil
}

func (p *OpenAIProvider) complete(ctx context.Context, op, prompt string, grounded bool) (*completion, error) {
	if p.debugMode {
		p.logger.Debug("llm_prompt",
			zap.String("operation", op),
			zap.String("prompt_preview", SanitizePrompt(prompt)),
		)
	}
	return p.completeMessages(ctx, op, []openai.ChatCompletionMessageParamUnion{
		openai.UserMessage(prompt),
	}, grounded)
}

// extractGroundingSources collects URL citations from the response,
// discarding entries with a missing or placeholder URI.
func extractGroundingSources(annotations []openai.ChatCompletionMessageAnnotation) []models.GroundingSource {
	var sources []models.GroundingSource
	for _, annotation := range annotations {
		uri := annotation.URLCitation.URL
		if uri == "" || uri == "#" {
			continue
		}
		title := annotation.URLCitation.Title
		if title == "" {
			title = "Unknown Source"
		}
		sources = append(sources, models.GroundingSource{URI: uri, Title: title})
	}
	return sources
}

// LookupTimezone implements Provider.
func (p *OpenAIProvider) LookupTimezone(ctx context.Context, location string) (*TimezoneData, error) {
	const op = "timezone_lookup"

	result, err := p.complete(ctx, op, buildTimezonePrompt(location), true)
	if err != nil {
		return nil, err
	}

	text := strings.TrimSpace(result.text)
	if candidates, ok := AmbiguousCandidates(text); ok {
		return nil, &AmbiguousLocationError{Query: location, Candidates: candidates}
	}

	parsed := ParseKeyValues(text)
	for _, key := range []string{"Time", "Timezone", "Offset", "DST", "Location", "DST Info"} {
		if parsed[key] == "" {
			return nil, &MalformedResponseError{Op: op, Raw: text}
		}
	}

	initialTime, err := time.Parse("2006-01-02T15:04:05", parsed["Time"])
	if err != nil {
		return nil, &MalformedResponseError{Op: op, Raw: text}
	}

	return &TimezoneData{
		Location:         parsed["Location"],
		Timezone:         parsed["Timezone"],
		UTCOffset:        parsed["Offset"],
		IsDST:            strings.EqualFold(parsed["DST"], "true"),
		DSTInfo:          parsed["DST Info"],
		InitialTime:      initialTime,
		GroundingSources: result.sources,
	}, nil
}

// ConvertTime implements Provider.
func (p *OpenAIProvider) ConvertTime(ctx context.Context, dateTime, fromZone, toZone string) (*Conversion, error) {
	const op = "time_conversion"

	result, err := p.complete(ctx, op, buildConversionPrompt(dateTime, fromZone, toZone), true)
	if err != nil {
		return nil, err
	}

	convertedTime, explanation, err := ParseConversion(op, result.text)
	if err != nil {
		return nil, err
	}

	return &Conversion{
		ConvertedTime:    convertedTime,
		Explanation:      explanation,
		GroundingSources: result.sources,
	}, nil
}

// ReminderDelay implements Provider.
func (p *OpenAIProvider) ReminderDelay(ctx context.Context, reminderDateTime, zone string) (time.Duration, error) {
	const op = "reminder_delay"

	result, err := p.complete(ctx, op, buildDelayPrompt(reminderDateTime, zone), true)
	if err != nil {
		return 0, err
	}

	return ParseDelay(op, result.text)
}

// ComposeReminderEmail implements Provider.
func (p *OpenAIProvider) ComposeReminderEmail(ctx context.Context, message, timezone string) (*EmailDraft, error) {
	const op = "compose_reminder_email"

	result, err := p.complete(ctx, op, buildReminderEmailPrompt(message, timezone), false)
	if err != nil {
		return nil, err
	}

	subject, body, err := ParseSubjectBody(op, result.text)
	if err != nil {
		return nil, err
	}
	return &EmailDraft{Subject: subject, Body: body}, nil
}

// AnalyzeDocument implements Provider.
func (p *OpenAIProvider) AnalyzeDocument(ctx context.Context, content string) (*Analysis, error) {
	const op = "document_analysis"

	result, err := p.complete(ctx, op, buildAnalysisPrompt(content), false)
	if err != nil {
		return nil, err
	}

	return ParseAnalysis(op, result.text)
}

// ComposeAnalysisEmail implements Provider.
func (p *OpenAIProvider) ComposeAnalysisEmail(ctx context.Context, summary, sentiment, filename string) (*EmailDraft, error) {
	const op = "compose_analysis_email"

	result, err := p.complete(ctx, op, buildAnalysisEmailPrompt(summary, sentiment, filename), false)
	if err != nil {
		return nil, err
	}

	subject, body, err := ParseSubjectBody(op, result.text)
	if err != nil {
		return nil, err
	}
	return &EmailDraft{Subject: subject, Body: body}, nil
}

// GenerateText implements Provider.
func (p *OpenAIProvider) GenerateText(ctx context.Context, prompt string) (string, error) {
	const op = "generate_text"

	result, err := p.complete(ctx, op, prompt, false)
	if err != nil {
		return "", err
	}
	return result.text, nil
}

// Chat implements Provider. History messages with malformed image
// attachments are skipped with a warning; a malformed image on the new
// message fails before any model call.
func (p *OpenAIProvider) Chat(ctx context.Context, history []models.ChatMessage, newMessage models.ChatMessage) (string, error) {
	const op = "chat"

	messages, err := p.buildChatMessages(history, newMessage)
	if err != nil {
		return "", err
	}

	result, err := p.completeMessages(ctx, op, messages, false)
	if err != nil {
		return "", err
	}
	return result.text, nil
}

// buildChatMessages serializes the transcript plus the new message into
// the multi-turn chat completion format.
func (p *OpenAIProvider) buildChatMessages(history []models.ChatMessage, newMessage models.ChatMessage) ([]openai.ChatCompletionMessageParamUnion, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+1)

	for _, msg := range history {
		if msg.Role == models.RoleModel {
			messages = append(messages, openai.AssistantMessage(messageText(msg)))
			continue
		}

		parts, err := userMessageParts(msg)
		if err != nil {
			// Stale malformed images from history are not fatal.
			p.logger.Warn("skipping_invalid_image_from_history",
				zap.String("attachment", msg.Attachment.Name),
				zap.Error(err),
			)
			parts = []openai.ChatCompletionContentPartUnionParam{
				openai.TextContentPart(messageText(msg)),
			}
		}
		messages = append(messages, openai.UserMessage(parts))
	}

	parts, err := userMessageParts(newMessage)
	if err != nil {
		return nil, err
	}
	messages = append(messages, openai.UserMessage(parts))

	return messages, nil
}

// messageText returns the message text with any text attachment inlined
// under a provenance marker.
func messageText(msg models.ChatMessage) string {
	text := msg.Text
	if msg.Attachment != nil && msg.Attachment.Type == models.AttachmentText {
		text += fmt.Sprintf("\n\n--- Content from %s ---\n%s", msg.Attachment.Name, msg.Attachment.Content)
	}
	return text
}

// userMessageParts builds the content parts for a user turn, inlining an
// image attachment as a base64 data URL if present.
func userMessageParts(msg models.ChatMessage) ([]openai.ChatCompletionContentPartUnionParam, error) {
	parts := []openai.ChatCompletionContentPartUnionParam{
		openai.TextContentPart(messageText(msg)),
	}

	if msg.Attachment != nil && msg.Attachment.Type == models.AttachmentImage {
		part, err := imageContentPart(msg.Attachment)
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}

	return parts, nil
}

// ValidateAttachment checks an attachment before any model call. Image
// attachments must carry a well-formed base64 data URL; text attachments
// are always acceptable.
func ValidateAttachment(attachment *models.FileAttachment) error {
	if attachment == nil || attachment.Type != models.AttachmentImage {
		return nil
	}
	if !dataURLRe.MatchString(attachment.Content) {
		return &AttachmentError{
			Name:   attachment.Name,
			Reason: "invalid data URL: could not extract MIME type and payload",
		}
	}
	return nil
}

// imageContentPart validates the attachment's data URL and converts it to
// an inline image part. The MIME type must be extractable from the
// data-URL prefix.
func imageContentPart(attachment *models.FileAttachment) (openai.ChatCompletionContentPartUnionParam, error) {
	match := dataURLRe.FindStringSubmatch(attachment.Content)
	if match == nil {
		return openai.ChatCompletionContentPartUnionParam{}, &AttachmentError{
			Name:   attachment.Name,
			Reason: "invalid data URL: could not extract MIME type and payload",
		}
	}

	mimeType, payload := match[1], match[2]
	return openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
		URL: fmt.Sprintf("data:%s;base64,%s", mimeType, payload),
	}), nil
}
