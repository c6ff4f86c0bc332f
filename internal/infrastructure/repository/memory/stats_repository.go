package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/cricsight/cricsight/internal/domain/stats"
)

type StatsRepository struct {
	mu      sync.RWMutex
	players []stats.PlayerSeason
	byName  map[string]stats.PlayerSeason
	byFold  map[string]stats.PlayerSeason
}

func NewStatsRepository(players []stats.PlayerSeason) *StatsRepository {
	r := &StatsRepository{}
	r.Replace(players)
	return r
}

// Replace swaps the whole snapshot. Used at load time and on snapshot reload.
func (r *StatsRepository) Replace(players []stats.PlayerSeason) {
	byName := make(map[string]stats.PlayerSeason, len(players))
	byFold := make(map[string]stats.PlayerSeason, len(players))
	kept := make([]stats.PlayerSeason, 0, len(players))

	for _, p := range players {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			continue
		}
		p.Name = name
		kept = append(kept, p)
		byName[name] = p
		byFold[strings.ToLower(name)] = p
	}

	r.mu.Lock()
	r.players = kept
	r.byName = byName
	r.byFold = byFold
	r.mu.Unlock()
}

func (r *StatsRepository) List(_ context.Context) ([]stats.PlayerSeason, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]stats.PlayerSeason, len(r.players))
	copy(out, r.players)

	return out, nil
}

func (r *StatsRepository) GetByName(_ context.Context, name string) (stats.PlayerSeason, bool, error) {
	name = strings.TrimSpace(name)

	r.mu.RLock()
	defer r.mu.RUnlock()

	if p, ok := r.byName[name]; ok {
		return p, true, nil
	}
	if p, ok := r.byFold[strings.ToLower(name)]; ok {
		return p, true, nil
	}

	return stats.PlayerSeason{}, false, nil
}
