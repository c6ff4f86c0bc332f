package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cricsight/cricsight/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv             string
	ServiceName        string
	ServiceVersion     string
	HTTPAddr           string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	CORSAllowedOrigins []string
	LogLevel           logging.Level

	// Snapshot sources, in priority order: exporter files on disk, then
	// Postgres, then the CricClubs exporter endpoint, then seed data.
	PlayerStatsPath  string
	MatchResultsPath string
	SeriesListPath   string
	DBURL            string

	CricClubsEnabled               bool
	CricClubsBaseURL               string
	CricClubsTimeout               time.Duration
	CricClubsMaxRetries            int
	CricClubsCircuitEnabled        bool
	CricClubsCircuitFailureCount   int
	CricClubsCircuitOpenTimeout    time.Duration
	CricClubsCircuitHalfOpenMaxReq int

	CacheEnabled bool
	CacheTTL     time.Duration

	FilterDebounce        time.Duration
	RecomputeWorkers      int
	LeaderboardSize       int
	LeaderboardMinSRBalls int

	PprofEnabled bool
	PprofAddr    string

	UptraceEnabled     bool
	UptraceDSN         string
	UptraceLogsEnabled bool

	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}

	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	playerStatsPath := strings.TrimSpace(getEnv("PLAYER_STATS_PATH", ""))
	matchResultsPath := strings.TrimSpace(getEnv("MATCH_RESULTS_PATH", ""))
	if (playerStatsPath == "") != (matchResultsPath == "") {
		return Config{}, fmt.Errorf("PLAYER_STATS_PATH and MATCH_RESULTS_PATH must be set together")
	}

	cricClubsEnabled, err := strconv.ParseBool(getEnv("CRICCLUBS_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CRICCLUBS_ENABLED: %w", err)
	}
	cricClubsBaseURL := strings.TrimSpace(getEnv("CRICCLUBS_BASE_URL", ""))
	if cricClubsEnabled && cricClubsBaseURL == "" {
		return Config{}, fmt.Errorf("CRICCLUBS_BASE_URL is required when CRICCLUBS_ENABLED=true")
	}
	cricClubsTimeout, err := time.ParseDuration(getEnv("CRICCLUBS_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CRICCLUBS_TIMEOUT: %w", err)
	}
	if cricClubsTimeout <= 0 {
		return Config{}, fmt.Errorf("CRICCLUBS_TIMEOUT must be > 0")
	}
	cricClubsMaxRetries, err := getEnvAsInt("CRICCLUBS_MAX_RETRIES", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse CRICCLUBS_MAX_RETRIES: %w", err)
	}
	if cricClubsMaxRetries < 0 {
		return Config{}, fmt.Errorf("CRICCLUBS_MAX_RETRIES must be >= 0")
	}
	cricClubsCircuitEnabled, err := strconv.ParseBool(getEnv("CRICCLUBS_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CRICCLUBS_CIRCUIT_ENABLED: %w", err)
	}
	cricClubsCircuitFailureCount, err := getEnvAsInt("CRICCLUBS_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse CRICCLUBS_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if cricClubsCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("CRICCLUBS_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	cricClubsCircuitOpenTimeout, err := time.ParseDuration(getEnv("CRICCLUBS_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CRICCLUBS_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if cricClubsCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("CRICCLUBS_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	cricClubsCircuitHalfOpenMaxReq, err := getEnvAsInt("CRICCLUBS_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse CRICCLUBS_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if cricClubsCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("CRICCLUBS_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}

	filterDebounce, err := time.ParseDuration(getEnv("FILTER_DEBOUNCE", "300ms"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FILTER_DEBOUNCE: %w", err)
	}
	if filterDebounce < 0 {
		return Config{}, fmt.Errorf("FILTER_DEBOUNCE must be >= 0")
	}

	recomputeWorkers, err := getEnvAsInt("RECOMPUTE_WORKERS", 8)
	if err != nil {
		return Config{}, fmt.Errorf("parse RECOMPUTE_WORKERS: %w", err)
	}
	if recomputeWorkers < 1 {
		return Config{}, fmt.Errorf("RECOMPUTE_WORKERS must be >= 1")
	}

	leaderboardSize, err := getEnvAsInt("LEADERBOARD_SIZE", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse LEADERBOARD_SIZE: %w", err)
	}
	if leaderboardSize < 1 {
		return Config{}, fmt.Errorf("LEADERBOARD_SIZE must be >= 1")
	}
	leaderboardMinSRBalls, err := getEnvAsInt("LEADERBOARD_MIN_SR_BALLS", 20)
	if err != nil {
		return Config{}, fmt.Errorf("parse LEADERBOARD_MIN_SR_BALLS: %w", err)
	}
	if leaderboardMinSRBalls < 0 {
		return Config{}, fmt.Errorf("LEADERBOARD_MIN_SR_BALLS must be >= 0")
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofAddr == "" {
		pprofAddr = ":6060"
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	uptraceLogsEnabled, err := strconv.ParseBool(getEnv("UPTRACE_LOGS_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_LOGS_ENABLED: %w", err)
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	cfg := Config{
		AppEnv:             appEnv,
		ServiceName:        getEnv("APP_SERVICE_NAME", "cricsight-api"),
		ServiceVersion:     getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:           getEnv("APP_HTTP_ADDR", ":8080"),
		ReadTimeout:        readTimeout,
		WriteTimeout:       writeTimeout,
		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		LogLevel:           logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")),

		PlayerStatsPath:  playerStatsPath,
		MatchResultsPath: matchResultsPath,
		SeriesListPath:   strings.TrimSpace(getEnv("SERIES_LIST_PATH", "")),
		DBURL:            strings.TrimSpace(getEnv("DB_URL", "")),

		CricClubsEnabled:               cricClubsEnabled,
		CricClubsBaseURL:               cricClubsBaseURL,
		CricClubsTimeout:               cricClubsTimeout,
		CricClubsMaxRetries:            cricClubsMaxRetries,
		CricClubsCircuitEnabled:        cricClubsCircuitEnabled,
		CricClubsCircuitFailureCount:   cricClubsCircuitFailureCount,
		CricClubsCircuitOpenTimeout:    cricClubsCircuitOpenTimeout,
		CricClubsCircuitHalfOpenMaxReq: cricClubsCircuitHalfOpenMaxReq,

		CacheEnabled: cacheEnabled,
		CacheTTL:     cacheTTL,

		FilterDebounce:        filterDebounce,
		RecomputeWorkers:      recomputeWorkers,
		LeaderboardSize:       leaderboardSize,
		LeaderboardMinSRBalls: leaderboardMinSRBalls,

		PprofEnabled: pprofEnabled,
		PprofAddr:    pprofAddr,

		UptraceEnabled:     uptraceEnabled,
		UptraceDSN:         uptraceDSN,
		UptraceLogsEnabled: uptraceLogsEnabled,

		PyroscopeEnabled:           pyroscopeEnabled,
		PyroscopeServerAddress:     pyroscopeServerAddress,
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:        pyroscopeUploadRate,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
}

// HasAssetPaths reports whether exporter files on disk are configured.
func (c Config) HasAssetPaths() bool {
	return c.PlayerStatsPath != "" && c.MatchResultsPath != ""
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
