package usecase

import (
	"context"
	"fmt"

	"github.com/cricsight/cricsight/internal/domain/filter"
	"github.com/cricsight/cricsight/internal/domain/match"
	"github.com/cricsight/cricsight/internal/domain/series"
)

// Evaluation is the outcome of applying a filter state to the match list.
// When Active is false the selection covers every joinable match, and
// downstream consumers must serve season totals verbatim instead of
// recomputing from the recent windows; recomputation would only lose
// precision without narrowing anything.
type Evaluation struct {
	Matches []match.Result
	Keys    map[match.Key]struct{}
	Active  bool
}

type FilterService struct {
	matchRepo match.Repository
	mapping   series.Mapping
}

func NewFilterService(matchRepo match.Repository, mapping series.Mapping) *FilterService {
	return &FilterService{
		matchRepo: matchRepo,
		mapping:   mapping,
	}
}

// Evaluate computes the subset of matches passing the filter and the join-key
// set those matches correspond to. A match passes when every set clause
// admits it; a match without a parseable date is exempt from the date clauses
// but still subject to the series clause.
func (s *FilterService) Evaluate(ctx context.Context, state filter.State) (Evaluation, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FilterService.Evaluate")
	defer span.End()

	all, err := s.matchRepo.List(ctx)
	if err != nil {
		return Evaluation{}, fmt.Errorf("list matches: %w", err)
	}

	passed := make([]match.Result, 0, len(all))
	keys := make(map[match.Key]struct{}, len(all))
	allKeys := make(map[match.Key]struct{}, len(all))

	for _, m := range all {
		if key, ok := m.Key(); ok {
			allKeys[key] = struct{}{}
		}
		if !s.passes(m, state) {
			continue
		}
		passed = append(passed, m)
		if key, ok := m.Key(); ok {
			keys[key] = struct{}{}
		}
	}

	return Evaluation{
		Matches: passed,
		Keys:    keys,
		Active:  len(keys) != len(allKeys),
	}, nil
}

func (s *FilterService) passes(m match.Result, state filter.State) bool {
	if date, ok := m.ParsedDate(); ok {
		if state.DateFrom != nil && date.Before(*state.DateFrom) {
			return false
		}
		if state.DateTo != nil && date.After(*state.DateTo) {
			return false
		}
	}

	return s.mapping.Contains(state.Series, m.Series)
}
