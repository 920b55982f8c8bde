package mail

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/stormnotes/suite/internal/logger"
	"github.com/stormnotes/suite/internal/models"
)

const (
	// DefaultAPIURL is the Resend email endpoint.
	DefaultAPIURL = "https://api.resend.com/emails"
	// DefaultSenderEmail is Resend's shared testing sender. Production
	// deployments configure a verified domain instead.
	DefaultSenderEmail = "onboarding@resend.dev"

	requestTimeout = 15 * time.Second
)

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type sendResponse struct {
	ID string `json:"id"`
}

type apiErrorResponse struct {
	Message string `json:"message"`
}

// ResendMailer delivers email through the Resend HTTP API.
type ResendMailer struct {
	client *resty.Client
	apiKey string
	from   string
	logger *zap.Logger
}

var _ Mailer = (*ResendMailer)(nil)

// NewResendMailer creates a mailer. An empty apiKey enables dry-run mode.
func NewResendMailer(apiKey, senderName, senderEmail string, log *zap.Logger) *ResendMailer {
	if senderEmail == "" {
		senderEmail = DefaultSenderEmail
	}
	if senderName == "" {
		senderName = "Storm Notes"
	}
	if log == nil {
		log = zap.NewNop()
	}

	client := resty.New().
		SetBaseURL(DefaultAPIURL).
		SetTimeout(requestTimeout)

	return &ResendMailer{
		client: client,
		apiKey: apiKey,
		from:   fmt.Sprintf("%s <%s>", senderName, senderEmail),
		logger: log,
	}
}

// SendEmail implements Mailer. Without an API key it logs the intent and
// returns a synthetic receipt.
func (m *ResendMailer) SendEmail(ctx context.Context, to, subject, htmlBody string) (*models.Receipt, error) {
	if m.apiKey == "" {
		m.logger.Warn("email_dry_run_no_api_key",
			zap.String("to", logger.MaskEmail(to)),
			zap.String("subject", subject),
			zap.Int("body_length", len(htmlBody)),
		)
		return &models.Receipt{ID: fmt.Sprintf("simulated_%d", time.Now().UnixMilli())}, nil
	}

	var success sendResponse
	var apiErr apiErrorResponse

	resp, err := m.client.R().
		SetContext(ctx).
		SetAuthToken(m.apiKey).
		SetBody(sendRequest{
			From:    m.from,
			To:      []string{to},
			Subject: subject,
			HTML:    htmlBody,
		}).
		SetResult(&success).
		SetError(&apiErr).
		Post("")
	if err != nil {
		return nil, &DeliveryError{Detail: "delivery request failed", cause: err}
	}

	if !resp.IsSuccess() {
		detail := apiErr.Message
		if detail == "" {
			detail = resp.Status()
		}
		return nil, &DeliveryError{Detail: fmt.Sprintf("Resend API error: %s", detail)}
	}

	m.logger.Info("email_sent",
		zap.String("to", logger.MaskEmail(to)),
		zap.String("provider_id", success.ID),
	)
	return &models.Receipt{ID: success.ID}, nil
}
