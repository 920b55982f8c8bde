package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stormnotes/suite/internal/config"
	"github.com/stormnotes/suite/internal/services/mail"
)

// NewTestEmailCmd creates the test-email command
func NewTestEmailCmd() *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "test-email",
		Short: "Smoke-test email delivery",
		Long:  "Send a test email through the configured delivery provider. Without RESEND_API_KEY this runs in dry-run mode.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if to == "" {
				return fmt.Errorf("--to is required")
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			logger, err := zap.NewDevelopment()
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			mailer := mail.NewResendMailer(cfg.ResendAPIKey, cfg.SenderName, cfg.SenderEmail, logger)

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			receipt, err := mailer.SendEmail(ctx, to, "Storm Notes delivery test", "<p>This is a delivery test.</p>")
			if err != nil {
				return fmt.Errorf("send failed: %w", err)
			}

			fmt.Printf("✓ Email accepted, receipt ID: %s\n", receipt.ID)
			if cfg.ResendAPIKey == "" {
				fmt.Println("  (dry-run: no RESEND_API_KEY configured, nothing was actually delivered)")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "Recipient email address")
	return cmd
}
