package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/cricsight/cricsight/internal/domain/match"
	"github.com/cricsight/cricsight/internal/infrastructure/repository/postgres"
	"github.com/cricsight/cricsight/internal/infrastructure/snapshot"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	dbURL := strings.TrimSpace(os.Getenv("DB_URL"))
	if dbURL == "" {
		log.Fatal("DB_URL is required")
	}

	if strings.ToLower(strings.TrimSpace(os.Args[1])) == "load" {
		runSnapshotLoad(dbURL)
		return
	}

	migrationsDir, err := resolveMigrationsDir()
	if err != nil {
		log.Fatalf("resolve migrations dir: %v", err)
	}

	sourceURL := "file://" + filepath.ToSlash(migrationsDir)
	m, err := migrate.New(sourceURL, dbURL)
	if err != nil {
		log.Fatalf("create migrator: %v", err)
	}
	defer closeMigrator(m)

	switch strings.ToLower(strings.TrimSpace(os.Args[1])) {
	case "up":
		handleMigrationErr(m.Up())
		log.Printf("migrations applied (source=%s)", sourceURL)
	case "down":
		steps, parseErr := parseSteps(os.Args[2:])
		if parseErr != nil {
			log.Fatal(parseErr)
		}
		handleMigrationErr(m.Steps(-steps))
		log.Printf("rolled back %d migration(s)", steps)
	case "version":
		version, dirty, versionErr := m.Version()
		if errors.Is(versionErr, migrate.ErrNilVersion) {
			fmt.Println("version: none")
			fmt.Println("dirty: false")
			return
		}
		if versionErr != nil {
			log.Fatalf("read version: %v", versionErr)
		}
		fmt.Printf("version: %d\n", version)
		fmt.Printf("dirty: %t\n", dirty)
	default:
		printUsage()
		os.Exit(2)
	}
}

func printUsage() {
	fmt.Println("usage: migration <up|down [steps]|version|load>")
	fmt.Println("  DB_URL             postgres connection string (required)")
	fmt.Println("  MIGRATIONS_DIR     migration files directory (default ./db/migrations)")
	fmt.Println("  PLAYER_STATS_PATH  exporter player stats file (load)")
	fmt.Println("  MATCH_RESULTS_PATH exporter match results file (load)")
}

// runSnapshotLoad fills the snapshot tables from the exporter's bundle files,
// replacing whatever the previous load left behind.
func runSnapshotLoad(dbURL string) {
	playerPath := strings.TrimSpace(os.Getenv("PLAYER_STATS_PATH"))
	matchPath := strings.TrimSpace(os.Getenv("MATCH_RESULTS_PATH"))
	if playerPath == "" || matchPath == "" {
		log.Fatal("PLAYER_STATS_PATH and MATCH_RESULTS_PATH are required for load")
	}

	doc, matches, err := readSnapshotDocs(playerPath, matchPath)
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := postgres.Open(ctx, dbURL)
	if err != nil {
		log.Fatalf("open snapshot db: %v", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			log.Printf("close snapshot db: %v", closeErr)
		}
	}()

	if err := loadSnapshot(ctx, doc, matches, postgres.NewStatsRepository(db), postgres.NewMatchRepository(db)); err != nil {
		log.Fatal(err)
	}
	log.Printf("snapshot loaded: %d players, %d matches", len(doc), len(matches))
}

func readSnapshotDocs(playerPath, matchPath string) (snapshot.PlayerDoc, []match.Result, error) {
	playerData, err := os.ReadFile(playerPath)
	if err != nil {
		return nil, nil, fmt.Errorf("read player stats %q: %w", playerPath, err)
	}
	doc, err := snapshot.DecodePlayerDoc(playerData)
	if err != nil {
		return nil, nil, err
	}

	matchData, err := os.ReadFile(matchPath)
	if err != nil {
		return nil, nil, fmt.Errorf("read match results %q: %w", matchPath, err)
	}
	matches, err := snapshot.DecodeMatches(matchData)
	if err != nil {
		return nil, nil, err
	}

	return doc, matches, nil
}

type playerSnapshotWriter interface {
	ReplaceAll(ctx context.Context, doc snapshot.PlayerDoc) error
}

type matchSnapshotWriter interface {
	ReplaceAll(ctx context.Context, results []match.Result) error
}

func loadSnapshot(
	ctx context.Context,
	doc snapshot.PlayerDoc,
	matches []match.Result,
	playerWriter playerSnapshotWriter,
	matchWriter matchSnapshotWriter,
) error {
	if err := playerWriter.ReplaceAll(ctx, doc); err != nil {
		return fmt.Errorf("replace player snapshots: %w", err)
	}
	if err := matchWriter.ReplaceAll(ctx, matches); err != nil {
		return fmt.Errorf("replace match snapshots: %w", err)
	}
	return nil
}

func parseSteps(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}

	steps, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return 0, fmt.Errorf("invalid down steps %q: %w", args[0], err)
	}
	if steps <= 0 {
		return 0, fmt.Errorf("down steps must be > 0")
	}

	return steps, nil
}

func handleMigrationErr(err error) {
	if err == nil {
		return
	}
	if errors.Is(err, migrate.ErrNoChange) {
		log.Printf("no migration changes")
		return
	}
	log.Fatal(err)
}

func closeMigrator(m *migrate.Migrate) {
	srcErr, dbErr := m.Close()
	if srcErr != nil {
		log.Printf("close migration source: %v", srcErr)
	}
	if dbErr != nil {
		log.Printf("close migration db: %v", dbErr)
	}
}

func resolveMigrationsDir() (string, error) {
	candidates := []string{
		strings.TrimSpace(os.Getenv("MIGRATIONS_DIR")),
		"./db/migrations",
		"/app/db/migrations",
	}

	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		info, err := os.Stat(abs)
		if err != nil || !info.IsDir() {
			continue
		}
		return abs, nil
	}

	return "", fmt.Errorf("migration directory not found (checked MIGRATIONS_DIR, ./db/migrations, /app/db/migrations)")
}
