package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/cricsight/cricsight/internal/domain/match"
)

type MatchRepository struct {
	mu      sync.RWMutex
	results []match.Result
}

func NewMatchRepository(results []match.Result) *MatchRepository {
	r := &MatchRepository{}
	r.Replace(results)
	return r
}

// Replace swaps the whole match list, keeping it sorted most recent first.
// Undated matches sort after dated ones in their incoming order.
func (r *MatchRepository) Replace(results []match.Result) {
	sorted := make([]match.Result, len(results))
	copy(sorted, results)

	sort.SliceStable(sorted, func(i, j int) bool {
		di, iOK := sorted[i].ParsedDate()
		dj, jOK := sorted[j].ParsedDate()
		if iOK && jOK {
			return di.After(dj)
		}
		return iOK && !jOK
	})

	r.mu.Lock()
	r.results = sorted
	r.mu.Unlock()
}

func (r *MatchRepository) List(_ context.Context) ([]match.Result, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Result, len(r.results))
	copy(out, r.results)

	return out, nil
}
