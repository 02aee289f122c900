package stripeapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bytedance/sonic"

	"github.com/citysports/league-registry/internal/platform/logging"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewClient(Config{
		BaseURL:   srv.URL,
		SecretKey: "sk_test_123",
		Timeout:   5 * time.Second,
	}, logging.NewNop())
	client.client = srv.Client()

	return client, srv
}

func TestGetProductByLeague(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/products" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("league_id"); got != "league-9" {
			t.Fatalf("unexpected league_id: %s", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk_test_123" {
			t.Fatalf("unexpected authorization header: %s", got)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = sonic.ConfigDefault.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"id": "prod_1", "name": "Volleyball Winter", "price": 250, "league_id": "league-9", "active": true},
			},
		})
	})

	product, found, err := client.GetProductByLeague(context.Background(), "league-9")
	if err != nil {
		t.Fatalf("get product failed: %v", err)
	}
	if !found {
		t.Fatal("expected linked product")
	}
	if product.ID != "prod_1" || product.LeagueID != "league-9" {
		t.Fatalf("unexpected product: %+v", product)
	}
}

func TestGetProductByLeagueNoMatch(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = sonic.ConfigDefault.NewEncoder(w).Encode(map[string]any{"data": []any{}})
	})

	_, found, err := client.GetProductByLeague(context.Background(), "league-9")
	if err != nil {
		t.Fatalf("get product failed: %v", err)
	}
	if found {
		t.Fatal("expected no linked product")
	}
}

func TestLinkProductToLeagueSendsLeagueID(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		if r.URL.Path != "/v1/products/prod_1" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}

		var payload map[string]*string
		if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		if payload["league_id"] == nil || *payload["league_id"] != "league-9" {
			t.Fatalf("unexpected payload: %v", payload)
		}

		w.WriteHeader(http.StatusOK)
	})

	if err := client.LinkProductToLeague(context.Background(), "prod_1", "league-9"); err != nil {
		t.Fatalf("link product failed: %v", err)
	}
}

func TestUnlinkProductSendsNullLeagueID(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]*string
		if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		if got, ok := payload["league_id"]; !ok || got != nil {
			t.Fatalf("expected explicit null league_id, got %v", payload)
		}

		w.WriteHeader(http.StatusOK)
	})

	if err := client.UnlinkProduct(context.Background(), "prod_1"); err != nil {
		t.Fatalf("unlink product failed: %v", err)
	}
}

func TestCallRetriesTransientFailures(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = sonic.ConfigDefault.NewEncoder(w).Encode(map[string]any{"data": []any{}})
	}))
	t.Cleanup(srv.Close)

	client := NewClient(Config{
		BaseURL:   srv.URL,
		SecretKey: "sk_test_123",
		Retries:   3,
	}, logging.NewNop())
	client.client = srv.Client()

	if _, err := client.ListProducts(context.Background()); err != nil {
		t.Fatalf("list products failed after retries: %v", err)
	}
	if got := calls.Load(); got != 3 {
		t.Fatalf("provider called %d times, want 3", got)
	}
}

func TestCallDoesNotRetryClientErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnprocessableEntity)
	})

	if _, err := client.ListProducts(context.Background()); err == nil {
		t.Fatal("expected error for 422 response")
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("provider called %d times, want 1", got)
	}
}
