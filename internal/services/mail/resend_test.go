package mail

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestSendEmail_DryRunWithoutAPIKey(t *testing.T) {
	t.Parallel()

	m := NewResendMailer("", "Storm Notes", "", zap.NewNop())

	receipt, err := m.SendEmail(context.Background(), "someone@example.com", "Hello", "<p>Hi</p>")
	if err != nil {
		t.Fatalf("Dry-run send must succeed: %v", err)
	}
	if !strings.HasPrefix(receipt.ID, "simulated_") {
		t.Errorf("Expected synthetic receipt id, got %q", receipt.ID)
	}
}

func TestSendEmail_NetworkFailureIsDeliveryError(t *testing.T) {
	t.Parallel()

	m := NewResendMailer("re_test_key", "Storm Notes", "", zap.NewNop())
	// Point at a port nothing listens on.
	m.client.SetBaseURL("http://127.0.0.1:1")

	_, err := m.SendEmail(context.Background(), "someone@example.com", "Hello", "<p>Hi</p>")
	var deliveryErr *DeliveryError
	if !errors.As(err, &deliveryErr) {
		t.Fatalf("Expected DeliveryError, got %v", err)
	}
}

func TestSendEmail_ProviderErrorCarriesDetail(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer re_test_key" {
			t.Errorf("Authorization = %q, want bearer token", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"Invalid to address"}`))
	}))
	defer server.Close()

	m := NewResendMailer("re_test_key", "Storm Notes", "", zap.NewNop())
	m.client.SetBaseURL(server.URL)

	_, err := m.SendEmail(context.Background(), "not-an-address", "Hello", "<p>Hi</p>")
	var deliveryErr *DeliveryError
	if !errors.As(err, &deliveryErr) {
		t.Fatalf("Expected DeliveryError, got %v", err)
	}
	if !strings.Contains(deliveryErr.Detail, "Invalid to address") {
		t.Errorf("Expected provider message in detail, got %q", deliveryErr.Detail)
	}
}

func TestSendEmail_SuccessReturnsProviderReceipt(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"re_12345"}`))
	}))
	defer server.Close()

	m := NewResendMailer("re_test_key", "Storm Notes", "", zap.NewNop())
	m.client.SetBaseURL(server.URL)

	receipt, err := m.SendEmail(context.Background(), "someone@example.com", "Hello", "<p>Hi</p>")
	if err != nil {
		t.Fatalf("SendEmail failed: %v", err)
	}
	if receipt.ID != "re_12345" {
		t.Errorf("receipt id = %q, want re_12345", receipt.ID)
	}
}

func TestNewResendMailer_DefaultSender(t *testing.T) {
	t.Parallel()

	m := NewResendMailer("", "", "", nil)
	if m.from != "Storm Notes <onboarding@resend.dev>" {
		t.Errorf("from = %q, want default sender", m.from)
	}
}
