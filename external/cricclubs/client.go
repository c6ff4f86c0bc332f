// Package cricclubs fetches the exporter's published snapshot bundle over
// HTTP, for deployments where the dashboard assets are served by the scraper
// host instead of shipped with the binary.
package cricclubs

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/cricsight/cricsight/internal/infrastructure/snapshot"
	"github.com/cricsight/cricsight/internal/platform/logging"
	"github.com/cricsight/cricsight/internal/platform/resilience"
	"github.com/cricsight/cricsight/internal/usecase"
)

const (
	playerStatsPath  = "/assets/player_stats.json"
	matchResultsPath = "/assets/match_results.json"
	seriesListPath   = "/assets/series_list.json"

	maxBodyBytes = 6 << 20
)

var errTransient = crerr.New("cricclubs transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient     *http.Client
	baseURL        string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}

	return &Client{
		httpClient:     httpClient,
		baseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		maxRetries:     cfg.MaxRetries,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(cfg.CircuitBreaker),
		circuitEnabled: cfg.CircuitBreaker.Enabled,
	}
}

// FetchBundle retrieves and decodes the full snapshot bundle. The series
// list is optional on the exporter side; a 404 there leaves Series empty.
func (c *Client) FetchBundle(ctx context.Context) (snapshot.Bundle, error) {
	if c.baseURL == "" {
		return snapshot.Bundle{}, fmt.Errorf("cricclubs base url is required")
	}

	var bundle snapshot.Bundle

	var doc snapshot.PlayerDoc
	if err := c.getJSON(ctx, playerStatsPath, &doc); err != nil {
		return snapshot.Bundle{}, fmt.Errorf("fetch player stats: %w", err)
	}
	bundle.Players = snapshot.Players(doc)

	var matches []snapshot.MatchEntry
	if err := c.getJSON(ctx, matchResultsPath, &matches); err != nil {
		return snapshot.Bundle{}, fmt.Errorf("fetch match results: %w", err)
	}
	bundle.Matches = snapshot.Matches(matches)

	var series []string
	if err := c.getJSON(ctx, seriesListPath, &series); err != nil {
		if !isNotFoundStatus(err) {
			return snapshot.Bundle{}, fmt.Errorf("fetch series list: %w", err)
		}
		c.logger.WarnContext(ctx, "cricclubs series list unavailable, deriving from matches")
	}
	bundle.Series = series

	return bundle, nil
}

func (c *Client) getJSON(ctx context.Context, path string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "cricclubs circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: snapshot source is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	fullURL := c.baseURL + path
	out, err, _ := c.flight.Do(path, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode bundle document %s: %w", path, err)
	}

	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errTransient, err)
		} else {
			raw, readErr := readBody(resp.Body)
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: exporter status=%d", errTransient, resp.StatusCode)
			default:
				return nil, &statusError{code: resp.StatusCode}
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("exporter request failed")
	}
	c.logger.WarnContext(ctx, "cricclubs request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

// readBody drains the response through a pooled buffer so bundle-sized
// payloads do not allocate a fresh scratch buffer per request.
func readBody(body io.Reader) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if _, err := io.Copy(buf, io.LimitReader(body, maxBodyBytes)); err != nil {
		return nil, err
	}

	out := make([]byte, len(buf.B))
	copy(out, buf.B)
	return out, nil
}

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("exporter status=%d", e.code)
}

func isNotFoundStatus(err error) bool {
	var se *statusError
	return crerr.As(err, &se) && se.code == http.StatusNotFound
}

func isRetryableStatus(code int) bool {
	if code == http.StatusTooManyRequests {
		return true
	}
	return code >= 500
}
