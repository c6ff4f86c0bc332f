package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/cricsight/cricsight/internal/domain/match"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

type matchRow struct {
	MatchID       int            `db:"match_id"`
	MatchDate     sql.NullString `db:"match_date"`
	Opponent      sql.NullString `db:"opponent"`
	Result        sql.NullString `db:"result"`
	Ground        sql.NullString `db:"ground"`
	Series        sql.NullString `db:"series"`
	MatchType     sql.NullString `db:"match_type"`
	TossWinner    sql.NullString `db:"toss_winner"`
	TossDecision  sql.NullString `db:"toss_decision"`
	PlayerOfMatch sql.NullString `db:"player_of_match"`
}

func (r *MatchRepository) List(ctx context.Context) ([]match.Result, error) {
	const query = `
SELECT match_id, match_date, opponent, result, ground, series,
       match_type, toss_winner, toss_decision, player_of_match
FROM match_snapshots
ORDER BY match_date DESC NULLS LAST, match_id DESC`

	var rows []matchRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list match snapshots: %w", err)
	}

	out := make([]match.Result, 0, len(rows))
	for _, row := range rows {
		out = append(out, match.Result{
			ID:            row.MatchID,
			Date:          row.MatchDate.String,
			Opponent:      row.Opponent.String,
			Outcome:       match.Outcome(row.Result.String),
			Ground:        row.Ground.String,
			Series:        row.Series.String,
			MatchType:     row.MatchType.String,
			TossWinner:    row.TossWinner.String,
			TossDecision:  row.TossDecision.String,
			PlayerOfMatch: row.PlayerOfMatch.String,
		})
	}

	return out, nil
}

// ReplaceAll swaps the stored match list for a freshly decoded bundle.
func (r *MatchRepository) ReplaceAll(ctx context.Context, results []match.Result) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for match snapshot replace: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM match_snapshots`); err != nil {
		return fmt.Errorf("clear match snapshots: %w", err)
	}

	const insert = `
INSERT INTO match_snapshots (
    match_id, match_date, opponent, result, ground, series,
    match_type, toss_winner, toss_decision, player_of_match, updated_at
) VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''),
          NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''), NULLIF($9, ''), NULLIF($10, ''), now())`

	for _, m := range results {
		if _, err := tx.ExecContext(ctx, insert,
			m.ID, m.Date, m.Opponent, string(m.Outcome), m.Ground,
			m.Series, m.MatchType, m.TossWinner, m.TossDecision, m.PlayerOfMatch,
		); err != nil {
			return fmt.Errorf("insert match snapshot %d: %w", m.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit match snapshot replace: %w", err)
	}

	return nil
}
