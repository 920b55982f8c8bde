package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/stormnotes/suite/internal/config"
	"github.com/stormnotes/suite/internal/services/ai"
)

// redactedConfig is the YAML view of the effective configuration with
// secrets masked.
type redactedConfig struct {
	DatabaseURL    string `yaml:"database_url"`
	ServerPort     string `yaml:"server_port"`
	FrontendURL    string `yaml:"frontend_url"`
	OpenAIKey      string `yaml:"openai_api_key"`
	AIModel        string `yaml:"ai_model"`
	AIBaseURL      string `yaml:"ai_base_url,omitempty"`
	ResendAPIKey   string `yaml:"resend_api_key"`
	SenderName     string `yaml:"sender_name"`
	SenderEmail    string `yaml:"sender_email"`
	RedisURL       string `yaml:"redis_url"`
	CacheTTL       string `yaml:"cache_ttl"`
	AuthJWKSURL    string `yaml:"auth_jwks_url,omitempty"`
	RateLimit      string `yaml:"rate_limit"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes"`
	OTELEnabled    bool   `yaml:"otel_enabled"`
	OTELEndpoint   string `yaml:"otel_endpoint,omitempty"`
}

// NewShowCmd creates the show command
func NewShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Long:  "Print the configuration resolved from the environment, with secrets redacted",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			out := redactedConfig{
				DatabaseURL:    ai.SanitizeAPIKey(cfg.DatabaseURL),
				ServerPort:     cfg.ServerPort,
				FrontendURL:    cfg.FrontendURL,
				OpenAIKey:      ai.SanitizeAPIKey(cfg.OpenAIKey),
				AIModel:        cfg.AIModel,
				AIBaseURL:      cfg.AIBaseURL,
				ResendAPIKey:   ai.SanitizeAPIKey(cfg.ResendAPIKey),
				SenderName:     cfg.SenderName,
				SenderEmail:    cfg.SenderEmail,
				RedisURL:       cfg.RedisURL,
				CacheTTL:       cfg.CacheTTL.String(),
				AuthJWKSURL:    cfg.AuthJWKSURL,
				RateLimit:      cfg.RateLimit,
				MaxUploadBytes: cfg.MaxUploadBytes,
				OTELEnabled:    cfg.OTELEnabled,
				OTELEndpoint:   cfg.OTELEndpoint,
			}

			return yaml.NewEncoder(os.Stdout).Encode(out)
		},
	}
}
