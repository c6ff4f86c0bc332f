package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/cricsight/cricsight/internal/domain/stats"
	"github.com/cricsight/cricsight/internal/infrastructure/snapshot"
)

// StatsRepository reads player seasons from the snapshot database. Each row
// stores the exporter's per-player document verbatim; decoding goes through
// the same codec as the file and HTTP sources.
type StatsRepository struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) List(ctx context.Context) ([]stats.PlayerSeason, error) {
	const query = `
SELECT player_name, doc
FROM player_snapshots
ORDER BY player_name`

	var rows []struct {
		PlayerName string `db:"player_name"`
		Doc        []byte `db:"doc"`
	}
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list player snapshots: %w", err)
	}

	out := make([]stats.PlayerSeason, 0, len(rows))
	for _, row := range rows {
		season, err := decodePlayerRow(row.PlayerName, row.Doc)
		if err != nil {
			return nil, err
		}
		out = append(out, season)
	}

	return out, nil
}

func (r *StatsRepository) GetByName(ctx context.Context, name string) (stats.PlayerSeason, bool, error) {
	const query = `
SELECT player_name, doc
FROM player_snapshots
WHERE player_name = $1 OR lower(player_name) = lower($1)
ORDER BY (player_name = $1) DESC
LIMIT 1`

	var row struct {
		PlayerName string `db:"player_name"`
		Doc        []byte `db:"doc"`
	}
	if err := r.db.GetContext(ctx, &row, query, name); err != nil {
		if isNotFound(err) {
			return stats.PlayerSeason{}, false, nil
		}
		return stats.PlayerSeason{}, false, fmt.Errorf("get player snapshot: %w", err)
	}

	season, err := decodePlayerRow(row.PlayerName, row.Doc)
	if err != nil {
		return stats.PlayerSeason{}, false, err
	}

	return season, true, nil
}

// ReplaceAll swaps the stored snapshot for a freshly decoded bundle.
func (r *StatsRepository) ReplaceAll(ctx context.Context, doc snapshot.PlayerDoc) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for player snapshot replace: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM player_snapshots`); err != nil {
		return fmt.Errorf("clear player snapshots: %w", err)
	}

	const insert = `
INSERT INTO player_snapshots (player_name, doc, updated_at)
VALUES ($1, $2, now())`

	for name, entry := range doc {
		encoded, err := snapshot.EncodePlayerEntry(entry)
		if err != nil {
			return fmt.Errorf("encode player snapshot %q: %w", name, err)
		}
		if _, err := tx.ExecContext(ctx, insert, name, encoded); err != nil {
			return fmt.Errorf("insert player snapshot %q: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit player snapshot replace: %w", err)
	}

	return nil
}

func decodePlayerRow(name string, doc []byte) (stats.PlayerSeason, error) {
	entry, err := snapshot.DecodePlayerEntry(doc)
	if err != nil {
		return stats.PlayerSeason{}, fmt.Errorf("decode player snapshot %q: %w", name, err)
	}
	return snapshot.PlayerFromEntry(name, entry), nil
}
