package workflows

import (
	"context"
	"fmt"
	"strings"
)

// ContentTypes lists the supported content formats.
var ContentTypes = []string{"Blog Post", "Short Story", "Meeting Points", "Presentation"}

// GenerateContent produces a piece of content of the given type and length.
// Meeting points are always a single page regardless of the requested count.
func (o *Orchestrator) GenerateContent(ctx context.Context, topic, contentType string, pages int) (string, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return "", &ValidationError{Message: "a topic is required"}
	}

	canonical, ok := canonicalContentType(contentType)
	if !ok {
		return "", &ValidationError{Message: fmt.Sprintf("unsupported content type %q (must be one of: %s)", contentType, strings.Join(ContentTypes, ", "))}
	}
	if pages < 1 || pages > 2 {
		return "", &ValidationError{Message: "pages must be 1 or 2"}
	}
	if canonical == "Meeting Points" {
		pages = 1
	}

	prompt := fmt.Sprintf("Generate a %d-page %s about the following topic: %q", pages, strings.ToLower(canonical), topic)
	text, err := o.ai.GenerateText(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("content generation failed: %w", err)
	}
	return text, nil
}

// RefinePrompt rewrites a rough topic prompt into a more effective one.
func (o *Orchestrator) RefinePrompt(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", &ValidationError{Message: "a prompt is required"}
	}

	request := fmt.Sprintf("Refine and improve the following prompt to be more descriptive and effective for a generative AI model. Return only the refined prompt. Prompt: %q", prompt)
	refined, err := o.ai.GenerateText(ctx, request)
	if err != nil {
		return "", fmt.Errorf("prompt refinement failed: %w", err)
	}
	return refined, nil
}

// EnhanceContent adds input validation to generated code snippets. Text
// without code comes back unchanged.
func (o *Orchestrator) EnhanceContent(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", &ValidationError{Message: "there is no content to enhance"}
	}

	request := fmt.Sprintf("Analyze the following text. If it contains code like an HTML form or a script, add relevant input validation to it. If it's not code, return the original text unchanged. Here is the text: %q", text)
	enhanced, err := o.ai.GenerateText(ctx, request)
	if err != nil {
		return "", fmt.Errorf("content enhancement failed: %w", err)
	}
	return enhanced, nil
}

func canonicalContentType(contentType string) (string, bool) {
	trimmed := strings.TrimSpace(contentType)
	for _, known := range ContentTypes {
		if strings.EqualFold(trimmed, known) {
			return known, true
		}
	}
	return "", false
}
