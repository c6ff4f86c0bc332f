package cricclubs

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cricsight/cricsight/internal/platform/resilience"
	"github.com/cricsight/cricsight/internal/usecase"
)

func bundleHandler(t *testing.T, seriesStatus int) http.Handler {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc(playerStatsPath, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"Arjun Mehta": {"runs": 142, "balls": 98}}`))
	})
	mux.HandleFunc(matchResultsPath, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"match_id": 101, "match_date": "2025-03-01", "opponent": "Rivals CC", "result": "Win"}]`))
	})
	mux.HandleFunc(seriesListPath, func(w http.ResponseWriter, _ *http.Request) {
		if seriesStatus != http.StatusOK {
			w.WriteHeader(seriesStatus)
			return
		}
		_, _ = w.Write([]byte(`["HPT20L_SERIES_22"]`))
	})
	return mux
}

func TestFetchBundle(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(bundleHandler(t, http.StatusOK))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL})
	bundle, err := client.FetchBundle(context.Background())
	if err != nil {
		t.Fatalf("fetch bundle: %v", err)
	}
	if len(bundle.Players) != 1 || bundle.Players[0].Name != "Arjun Mehta" {
		t.Fatalf("unexpected players: %+v", bundle.Players)
	}
	if len(bundle.Matches) != 1 || bundle.Matches[0].ID != 101 {
		t.Fatalf("unexpected matches: %+v", bundle.Matches)
	}
	if len(bundle.Series) != 1 {
		t.Fatalf("unexpected series: %+v", bundle.Series)
	}
}

func TestFetchBundleToleratesMissingSeriesList(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(bundleHandler(t, http.StatusNotFound))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL})
	bundle, err := client.FetchBundle(context.Background())
	if err != nil {
		t.Fatalf("fetch bundle: %v", err)
	}
	if bundle.Series != nil {
		t.Fatalf("expected no series, got %v", bundle.Series)
	}
}

func TestFetchBundleRetriesTransientFailures(t *testing.T) {
	t.Parallel()

	var attempts atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc(playerStatsPath, func(w http.ResponseWriter, _ *http.Request) {
		if attempts.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{}`))
	})
	mux.HandleFunc(matchResultsPath, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})
	mux.HandleFunc(seriesListPath, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, MaxRetries: 2})
	if _, err := client.FetchBundle(context.Background()); err != nil {
		t.Fatalf("fetch bundle: %v", err)
	}
	if got := attempts.Load(); got != 2 {
		t.Fatalf("expected retry after 502, got %d attempts", got)
	}
}

func TestFetchBundleCircuitOpensAfterRepeatedFailures(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL: server.URL,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 1,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	})
	ctx := context.Background()

	if _, err := client.FetchBundle(ctx); err == nil {
		t.Fatalf("expected failure against broken exporter")
	}
	if _, err := client.FetchBundle(ctx); !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable from open breaker, got %v", err)
	}
}

func TestFetchBundleRequiresBaseURL(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{})
	if _, err := client.FetchBundle(context.Background()); err == nil {
		t.Fatalf("expected error without base url")
	}
}
