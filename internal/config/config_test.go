package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected HTTPAddr: %q", cfg.HTTPAddr)
	}
	if cfg.FilterDebounce != 300*time.Millisecond {
		t.Fatalf("unexpected FilterDebounce: %s", cfg.FilterDebounce)
	}
	if cfg.LeaderboardSize != 5 || cfg.LeaderboardMinSRBalls != 20 {
		t.Fatalf("unexpected leaderboard defaults: %d / %d", cfg.LeaderboardSize, cfg.LeaderboardMinSRBalls)
	}
	if cfg.CacheTTL != time.Minute || !cfg.CacheEnabled {
		t.Fatalf("unexpected cache defaults: %v / %s", cfg.CacheEnabled, cfg.CacheTTL)
	}
	if cfg.HasAssetPaths() {
		t.Fatalf("asset paths must be unset by default")
	}
}

func TestLoad_AssetPathsMustBeSetTogether(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PLAYER_STATS_PATH", "/data/player_stats.json")
	t.Setenv("MATCH_RESULTS_PATH", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when only PLAYER_STATS_PATH is set")
	}
}

func TestLoad_AssetPaths(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PLAYER_STATS_PATH", "/data/player_stats.json")
	t.Setenv("MATCH_RESULTS_PATH", "/data/match_results.json")
	t.Setenv("SERIES_LIST_PATH", "/data/series_list.json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.HasAssetPaths() {
		t.Fatalf("expected HasAssetPaths=true")
	}
	if cfg.SeriesListPath != "/data/series_list.json" {
		t.Fatalf("unexpected SeriesListPath: %q", cfg.SeriesListPath)
	}
}

func TestLoad_CricClubsRequiresBaseURLWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("CRICCLUBS_ENABLED", "true")
	t.Setenv("CRICCLUBS_BASE_URL", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when CRICCLUBS_ENABLED=true without CRICCLUBS_BASE_URL")
	}
}

func TestLoad_CricClubsConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("CRICCLUBS_ENABLED", "true")
	t.Setenv("CRICCLUBS_BASE_URL", "https://exports.example.com")
	t.Setenv("CRICCLUBS_TIMEOUT", "5s")
	t.Setenv("CRICCLUBS_MAX_RETRIES", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.CricClubsBaseURL != "https://exports.example.com" {
		t.Fatalf("unexpected CricClubsBaseURL: %q", cfg.CricClubsBaseURL)
	}
	if cfg.CricClubsTimeout != 5*time.Second {
		t.Fatalf("unexpected CricClubsTimeout: %s", cfg.CricClubsTimeout)
	}
	if cfg.CricClubsMaxRetries != 3 {
		t.Fatalf("unexpected CricClubsMaxRetries: %d", cfg.CricClubsMaxRetries)
	}
	if !cfg.CricClubsCircuitEnabled || cfg.CricClubsCircuitFailureCount != 5 {
		t.Fatalf("unexpected circuit defaults")
	}
}

func TestLoad_NegativeDebounceRejected(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("FILTER_DEBOUNCE", "-50ms")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for negative FILTER_DEBOUNCE")
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}
