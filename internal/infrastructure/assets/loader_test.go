package assets

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	paths := Paths{
		PlayerStatsPath:  writeFile(t, dir, "player_stats.json", `{"Arjun Mehta": {"runs": 142, "balls": 98}}`),
		MatchResultsPath: writeFile(t, dir, "match_results.json", `[{"match_id": 101, "match_date": "2025-03-01", "opponent": "Rivals CC", "result": "Win"}]`),
		SeriesPath:       writeFile(t, dir, "series_list.json", `["HPT20L_SERIES_22"]`),
	}

	bundle, err := Load(context.Background(), paths)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
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

func TestLoadSeriesOptional(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	paths := Paths{
		PlayerStatsPath:  writeFile(t, dir, "player_stats.json", `{}`),
		MatchResultsPath: writeFile(t, dir, "match_results.json", `[]`),
	}

	bundle, err := Load(context.Background(), paths)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bundle.Series != nil {
		t.Fatalf("expected nil series, got %v", bundle.Series)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	paths := Paths{
		PlayerStatsPath:  filepath.Join(dir, "absent.json"),
		MatchResultsPath: writeFile(t, dir, "match_results.json", `[]`),
	}

	if _, err := Load(context.Background(), paths); err == nil {
		t.Fatalf("expected error for missing player stats file")
	}
}

func TestLoadRequiresPaths(t *testing.T) {
	t.Parallel()

	if _, err := Load(context.Background(), Paths{}); err == nil {
		t.Fatalf("expected error for empty paths")
	}
}
