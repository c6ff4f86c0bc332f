package stats

import "context"

type Repository interface {
	List(ctx context.Context) ([]PlayerSeason, error)
	// GetByName resolves by exact name first, then case-insensitively.
	GetByName(ctx context.Context, name string) (PlayerSeason, bool, error)
}
