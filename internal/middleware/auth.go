package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"go.uber.org/zap"
)

// JWKSManager fetches and caches the signing keys used to verify bearer
// tokens.
type JWKSManager struct {
	jwksURL string
	ttl     time.Duration

	mu      sync.RWMutex
	keys    jwk.Set
	expires time.Time
}

// NewJWKSManager creates a JWKS manager for the given endpoint.
func NewJWKSManager(jwksURL string) *JWKSManager {
	return &JWKSManager{
		jwksURL: jwksURL,
		ttl:     1 * time.Hour, // Cache for 1 hour
	}
}

// Keys returns the cached key set, refetching after the cache TTL.
func (m *JWKSManager) Keys(ctx context.Context) (jwk.Set, error) {
	m.mu.RLock()
	if m.keys != nil && time.Now().Before(m.expires) {
		keys := m.keys
		m.mu.RUnlock()
		return keys, nil
	}
	m.mu.RUnlock()

	keys, err := m.fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch JWKS: %w", err)
	}

	m.mu.Lock()
	m.keys = keys
	m.expires = time.Now().Add(m.ttl)
	m.mu.Unlock()

	return keys, nil
}

func (m *JWKSManager) fetch(ctx context.Context) (jwk.Set, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.jwksURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch JWKS: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("JWKS endpoint returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read JWKS response: %w", err)
	}

	keys, err := jwk.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse JWKS: %w", err)
	}

	return keys, nil
}

// Auth creates authentication middleware that validates bearer tokens
// against the JWKS endpoint. An empty jwksURL disables the gate entirely,
// which is the single-user local deployment mode.
func Auth(jwksURL string, logger *zap.Logger) func(http.Handler) http.Handler {
	if jwksURL == "" {
		return func(next http.Handler) http.Handler { return next }
	}

	manager := NewJWKSManager(jwksURL)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				respondAuthError(w, "Missing Authorization header")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				respondAuthError(w, "Invalid Authorization header format")
				return
			}

			keys, err := manager.Keys(r.Context())
			if err != nil {
				logger.Error("jwks_fetch_failed", zap.Error(err))
				http.Error(w, "Authentication unavailable", http.StatusServiceUnavailable)
				return
			}

			if _, err := jwt.Parse([]byte(parts[1]), jwt.WithKeySet(keys), jwt.WithValidate(true)); err != nil {
				logger.Warn("token_verification_failed", zap.Error(err))
				respondAuthError(w, "Invalid or expired token")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func respondAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"error":   "Unauthorized",
		"message": message,
	})
}
