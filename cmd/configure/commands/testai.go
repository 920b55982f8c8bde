package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stormnotes/suite/internal/config"
	"github.com/stormnotes/suite/internal/services/ai"
)

// NewTestAICmd creates the test-ai command
func NewTestAICmd() *cobra.Command {
	var prompt string

	cmd := &cobra.Command{
		Use:   "test-ai",
		Short: "Smoke-test the AI completion service",
		Long:  "Send a single prompt to the configured AI completion service and print the response",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if cfg.OpenAIKey == "" {
				return fmt.Errorf("OPENAI_API_KEY is not set")
			}

			provider := ai.NewOpenAIProvider(cfg.OpenAIKey, cfg.AIBaseURL, cfg.AIModel, zap.NewNop(), false)

			ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
			defer cancel()

			fmt.Printf("Sending test prompt to the AI service...\n")
			text, err := provider.GenerateText(ctx, prompt)
			if err != nil {
				return fmt.Errorf("AI request failed: %w", err)
			}

			fmt.Printf("\nResponse:\n%s\n", text)
			fmt.Println("\n✓ AI service is reachable")
			return nil
		},
	}

	cmd.Flags().StringVar(&prompt, "prompt", "Reply with the single word: pong", "Prompt to send")
	return cmd
}
