// Package cache decorates snapshot repositories with read-through caching.
// Every recomputation pass lists the full snapshot, so when the backing store
// is Postgres the decorators keep those reads off the database.
package cache

import (
	"context"
	"strings"

	"github.com/cricsight/cricsight/internal/domain/match"
	"github.com/cricsight/cricsight/internal/domain/stats"
	basecache "github.com/cricsight/cricsight/internal/platform/cache"
)

type StatsRepository struct {
	next  stats.Repository
	cache *basecache.Store
}

func NewStatsRepository(next stats.Repository, cache *basecache.Store) *StatsRepository {
	return &StatsRepository{next: next, cache: cache}
}

func (r *StatsRepository) List(ctx context.Context) ([]stats.PlayerSeason, error) {
	v, err := r.cache.GetOrLoad(ctx, "stats:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]stats.PlayerSeason(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]stats.PlayerSeason)
	return append([]stats.PlayerSeason(nil), items...), nil
}

func (r *StatsRepository) GetByName(ctx context.Context, name string) (stats.PlayerSeason, bool, error) {
	key := "stats:name:" + strings.ToLower(name)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByName(ctx, name)
		if err != nil {
			return nil, err
		}
		return cachedPlayer{value: item, exists: exists}, nil
	})
	if err != nil {
		return stats.PlayerSeason{}, false, err
	}

	cached, _ := v.(cachedPlayer)
	return cached.value, cached.exists, nil
}

type cachedPlayer struct {
	value  stats.PlayerSeason
	exists bool
}

type MatchRepository struct {
	next  match.Repository
	cache *basecache.Store
}

func NewMatchRepository(next match.Repository, cache *basecache.Store) *MatchRepository {
	return &MatchRepository{next: next, cache: cache}
}

func (r *MatchRepository) List(ctx context.Context) ([]match.Result, error) {
	v, err := r.cache.GetOrLoad(ctx, "match:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]match.Result(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]match.Result)
	return append([]match.Result(nil), items...), nil
}
