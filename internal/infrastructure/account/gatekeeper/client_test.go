package gatekeeper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bytedance/sonic"

	"github.com/citysports/league-registry/internal/platform/logging"
	"github.com/citysports/league-registry/internal/platform/resilience"
	"github.com/citysports/league-registry/internal/usecase"
)

func TestVerifyAccessTokenParsesResponse(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		if r.URL.Path != "/v1/auth/introspect" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}

		var req map[string]string
		if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request body: %v", err)
		}
		if req["token"] != "token-abc" {
			t.Fatalf("unexpected token value: %s", req["token"])
		}

		w.Header().Set("Content-Type", "application/json")
		_ = sonic.ConfigDefault.NewEncoder(w).Encode(map[string]any{
			"active":   true,
			"user_id":  "user-123",
			"email":    "captain@example.com",
			"is_admin": true,
		})
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), Config{
		BaseURL:        srv.URL,
		IntrospectPath: "/v1/auth/introspect",
	}, logging.NewNop())

	principal, err := client.VerifyAccessToken(context.Background(), "token-abc")
	if err != nil {
		t.Fatalf("verify token failed: %v", err)
	}

	if principal.UserID != "user-123" {
		t.Fatalf("unexpected user id: %s", principal.UserID)
	}
	if principal.Email != "captain@example.com" {
		t.Fatalf("unexpected email: %s", principal.Email)
	}
	if !principal.IsAdmin {
		t.Fatal("admin flag not carried over")
	}
}

func TestVerifyAccessTokenInactiveToken(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = sonic.ConfigDefault.NewEncoder(w).Encode(map[string]any{"active": false})
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), Config{BaseURL: srv.URL, IntrospectPath: "/introspect"}, logging.NewNop())

	_, err := client.VerifyAccessToken(context.Background(), "stale-token")
	if !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestVerifyAccessTokenEmptyToken(t *testing.T) {
	t.Parallel()

	client := NewClient(nil, Config{BaseURL: "http://unused"}, logging.NewNop())

	_, err := client.VerifyAccessToken(context.Background(), "   ")
	if !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestVerifyAccessTokenServerErrorMapsToDependencyUnavailable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), Config{BaseURL: srv.URL, IntrospectPath: "/introspect"}, logging.NewNop())

	_, err := client.VerifyAccessToken(context.Background(), "token-abc")
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestVerifyAccessTokenCachesVerifiedPrincipal(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_ = sonic.ConfigDefault.NewEncoder(w).Encode(map[string]any{
			"active":  true,
			"user_id": "user-123",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), Config{
		BaseURL:        srv.URL,
		IntrospectPath: "/introspect",
		CacheTTL:       time.Minute,
		CacheMaxToken:  16,
	}, logging.NewNop())

	for range 3 {
		if _, err := client.VerifyAccessToken(context.Background(), "token-abc"); err != nil {
			t.Fatalf("verify token failed: %v", err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("introspection called %d times, want 1", got)
	}
}

func TestVerifyAccessTokenBreakerOpensAfterFailures(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), Config{
		BaseURL:        srv.URL,
		IntrospectPath: "/introspect",
		Breaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	}, logging.NewNop())

	for range 4 {
		_, err := client.VerifyAccessToken(context.Background(), "token-abc")
		if !errors.Is(err, usecase.ErrDependencyUnavailable) {
			t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
		}
	}

	if got := calls.Load(); got != 2 {
		t.Fatalf("introspection called %d times after breaker opened, want 2", got)
	}
}
