package httpapi

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/cricsight/cricsight/internal/domain/series"
	"github.com/cricsight/cricsight/internal/infrastructure/repository/memory"
	"github.com/cricsight/cricsight/internal/platform/cache"
	"github.com/cricsight/cricsight/internal/usecase"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	matches := memory.SeedMatches()
	matchRepo := memory.NewMatchRepository(matches)
	statsRepo := memory.NewStatsRepository(memory.SeedPlayers())

	raws := make([]string, 0, len(matches))
	for _, m := range matches {
		raws = append(raws, m.Series)
	}
	mapping := series.BuildMapping(raws, nil)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	session := usecase.NewSessionService(
		usecase.NewFilterService(matchRepo, mapping),
		usecase.NewStatsService(statsRepo, 2),
		usecase.NewLeaderboardService(5, 20),
		usecase.NewTeamReportService(),
		cache.NewStore(time.Minute),
		0,
		logger,
	)

	return NewRouter(NewHandler(session, mapping, logger), logger, []string{"*"})
}

func doRequest(t *testing.T, router http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var envelope map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal %s %s response: %v", method, path, err)
	}
	return rec, envelope
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t)

	rec, envelope := doRequest(t, router, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	data, _ := envelope["data"].(map[string]any)
	if data["status"] != "ok" {
		t.Fatalf("unexpected health payload: %v", envelope)
	}
}

func TestListSeries(t *testing.T) {
	router := newTestRouter(t)

	rec, envelope := doRequest(t, router, http.MethodGet, "/v1/series", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	items, _ := envelope["data"].([]any)
	if len(items) != 2 {
		t.Fatalf("expected 2 series, got %d", len(items))
	}
	first, _ := items[0].(map[string]any)
	if first["code"] != "HPTL(S22)" {
		t.Fatalf("expected first code HPTL(S22), got %v", first["code"])
	}
}

func TestListMatches_Unfiltered(t *testing.T) {
	router := newTestRouter(t)

	rec, envelope := doRequest(t, router, http.MethodGet, "/v1/matches", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	items, _ := envelope["data"].([]any)
	if len(items) != 4 {
		t.Fatalf("expected 4 matches, got %d", len(items))
	}
}

func TestGetDashboard(t *testing.T) {
	router := newTestRouter(t)

	rec, envelope := doRequest(t, router, http.MethodGet, "/v1/dashboard", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	data, _ := envelope["data"].(map[string]any)
	if active, _ := data["filter_active"].(bool); active {
		t.Fatalf("empty filter must be inactive")
	}
	boards, _ := data["leaderboards"].([]any)
	if len(boards) != len(usecase.Categories) {
		t.Fatalf("expected %d leaderboards, got %d", len(usecase.Categories), len(boards))
	}
	team, _ := data["team"].(map[string]any)
	if count, _ := team["match_count"].(float64); count != 4 {
		t.Fatalf("expected match_count 4, got %v", team["match_count"])
	}
}

func TestSessionFilter_SaveThenRead(t *testing.T) {
	router := newTestRouter(t)

	rec, envelope := doRequest(t, router, http.MethodPut, "/v1/session/filter",
		`{"date_from":"2025-03-01","series":["HPTL(S22)"]}`)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %v", rec.Code, envelope)
	}

	rec, envelope = doRequest(t, router, http.MethodGet, "/v1/session/filter", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	data, _ := envelope["data"].(map[string]any)
	if data["date_from"] != "2025-03-01" {
		t.Fatalf("expected date_from 2025-03-01, got %v", data["date_from"])
	}
	codes, _ := data["series"].([]any)
	if len(codes) != 1 || codes[0] != "HPTL(S22)" {
		t.Fatalf("unexpected series selection: %v", data["series"])
	}
}

func TestSessionFilter_RejectsMalformedDate(t *testing.T) {
	router := newTestRouter(t)

	rec, _ := doRequest(t, router, http.MethodPut, "/v1/session/filter",
		`{"date_from":"2025-13-01"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSessionFilter_RejectsInvertedRange(t *testing.T) {
	router := newTestRouter(t)

	rec, _ := doRequest(t, router, http.MethodPut, "/v1/session/filter",
		`{"date_from":"2025-03-22","date_to":"2025-03-01"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSessionFilter_RejectsUnknownField(t *testing.T) {
	router := newTestRouter(t)

	rec, _ := doRequest(t, router, http.MethodPut, "/v1/session/filter",
		`{"ground":"Lakeside Oval"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestApplySessionFilter_WithBody(t *testing.T) {
	router := newTestRouter(t)

	rec, envelope := doRequest(t, router, http.MethodPost, "/v1/session/filter/apply",
		`{"series":["HPTL(S22)"]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", rec.Code, envelope)
	}
	data, _ := envelope["data"].(map[string]any)
	if active, _ := data["filter_active"].(bool); !active {
		t.Fatalf("series selection must activate the filter")
	}
	matches, _ := data["matches"].([]any)
	if len(matches) != 2 {
		t.Fatalf("expected 2 filtered matches, got %d", len(matches))
	}
}

func TestApplySessionFilter_EmptyBodyReappliesCurrent(t *testing.T) {
	router := newTestRouter(t)

	rec, _ := doRequest(t, router, http.MethodPut, "/v1/session/filter", `{"series":["HUPL(HUPL)"]}`)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", rec.Code)
	}

	rec, envelope := doRequest(t, router, http.MethodPost, "/v1/session/filter/apply", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	data, _ := envelope["data"].(map[string]any)
	matches, _ := data["matches"].([]any)
	if len(matches) != 2 {
		t.Fatalf("expected 2 filtered matches, got %d", len(matches))
	}
}

func TestGetPlayer(t *testing.T) {
	router := newTestRouter(t)

	rec, envelope := doRequest(t, router, http.MethodGet, "/v1/players/Sameer%20Kulkarni", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", rec.Code, envelope)
	}
	data, _ := envelope["data"].(map[string]any)
	if data["name"] != "Sameer Kulkarni" {
		t.Fatalf("unexpected player name: %v", data["name"])
	}
	bowling, _ := data["season_bowling"].(map[string]any)
	if wickets, _ := bowling["wickets"].(float64); wickets != 9 {
		t.Fatalf("expected 9 season wickets, got %v", bowling["wickets"])
	}
}

func TestGetPlayer_NotFound(t *testing.T) {
	router := newTestRouter(t)

	rec, envelope := doRequest(t, router, http.MethodGet, "/v1/players/Nobody", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	errorObj, _ := envelope["error"].(map[string]any)
	if errorObj["status"] != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND status, got %v", errorObj["status"])
	}
}
