package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cricsight/cricsight/internal/domain/filter"
	"github.com/cricsight/cricsight/internal/domain/match"
	"github.com/cricsight/cricsight/internal/platform/cache"
)

// Dashboard is one full recomputation pass over the snapshot: the filtered
// match list plus every derived view, produced wholesale on each filter
// change. Passes are pure functions of (snapshot, filter state).
type Dashboard struct {
	Filter       filter.State
	FilterActive bool
	Matches      []match.Result
	Players      []PlayerView
	Leaderboards []Leaderboard
	Team         TeamReport
}

type SessionService struct {
	filterSvc *FilterService
	statsSvc  *StatsService
	boardSvc  *LeaderboardService
	teamSvc   *TeamReportService
	views     *cache.Store
	logger    *slog.Logger

	debounce time.Duration

	mu    sync.Mutex
	state filter.State
	timer *time.Timer

	// generation tokens let a pending debounced pass detect that a newer
	// edit or an explicit apply superseded it.
	generation atomic.Uint64
}

func NewSessionService(
	filterSvc *FilterService,
	statsSvc *StatsService,
	boardSvc *LeaderboardService,
	teamSvc *TeamReportService,
	views *cache.Store,
	debounce time.Duration,
	logger *slog.Logger,
) *SessionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionService{
		filterSvc: filterSvc,
		statsSvc:  statsSvc,
		boardSvc:  boardSvc,
		teamSvc:   teamSvc,
		views:     views,
		debounce:  debounce,
		logger:    logger,
	}
}

// SetFilter records a new filter selection and schedules a recomputation
// pass behind the debounce window. Rapid successive edits restart the window
// instead of stacking passes.
func (s *SessionService) SetFilter(ctx context.Context, state filter.State) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.SetFilter")
	defer span.End()

	generation := s.generation.Add(1)

	s.mu.Lock()
	s.state = state
	if s.timer != nil {
		s.timer.Stop()
	}
	if s.debounce <= 0 {
		s.timer = nil
		s.mu.Unlock()
		s.runScheduled(generation, state)
		return
	}
	s.timer = time.AfterFunc(s.debounce, func() {
		s.runScheduled(generation, state)
	})
	s.mu.Unlock()

	s.logger.DebugContext(ctx, "filter change scheduled",
		"fingerprint", state.Fingerprint(),
		"debounce_ms", s.debounce.Milliseconds(),
	)
}

// ApplyNow bypasses the debounce window: it cancels any pending pass and
// recomputes immediately for the given state.
func (s *SessionService) ApplyNow(ctx context.Context, state filter.State) (Dashboard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.ApplyNow")
	defer span.End()

	s.generation.Add(1)

	s.mu.Lock()
	s.state = state
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()

	return s.compute(ctx, state)
}

// Filter returns the session's current filter selection.
func (s *SessionService) Filter() filter.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dashboard returns the pass for the current filter state, computing it if
// no cached pass exists yet.
func (s *SessionService) Dashboard(ctx context.Context) (Dashboard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.Dashboard")
	defer span.End()

	return s.compute(ctx, s.Filter())
}

// runScheduled is the debounce timer callback. A pass whose generation is no
// longer current was superseded while waiting and is discarded unrun.
func (s *SessionService) runScheduled(generation uint64, state filter.State) {
	if s.generation.Load() != generation {
		return
	}

	if _, err := s.compute(context.Background(), state); err != nil {
		s.logger.Error("scheduled recompute failed",
			"fingerprint", state.Fingerprint(),
			"error", err,
		)
	}
}

func (s *SessionService) compute(ctx context.Context, state filter.State) (Dashboard, error) {
	key := state.Fingerprint()

	value, err := s.views.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		dashboard, passErr := s.pass(ctx, state)
		if passErr != nil {
			return nil, passErr
		}
		return dashboard, nil
	})
	if err != nil {
		return Dashboard{}, err
	}

	dashboard, ok := value.(Dashboard)
	if !ok {
		return Dashboard{}, fmt.Errorf("unexpected cached dashboard type %T", value)
	}
	return dashboard, nil
}

func (s *SessionService) pass(ctx context.Context, state filter.State) (Dashboard, error) {
	started := time.Now()

	eval, err := s.filterSvc.Evaluate(ctx, state)
	if err != nil {
		return Dashboard{}, fmt.Errorf("evaluate filter: %w", err)
	}

	players, err := s.statsSvc.RecomputeAll(ctx, eval)
	if err != nil {
		return Dashboard{}, fmt.Errorf("recompute player stats: %w", err)
	}

	dashboard := Dashboard{
		Filter:       state,
		FilterActive: eval.Active,
		Matches:      eval.Matches,
		Players:      players,
		Leaderboards: s.boardSvc.BuildAll(ctx, players),
		Team:         s.teamSvc.Report(ctx, eval.Matches),
	}

	s.logger.InfoContext(ctx, "recompute pass complete",
		"fingerprint", state.Fingerprint(),
		"filter_active", eval.Active,
		"matches", len(eval.Matches),
		"players", len(players),
		"duration_ms", time.Since(started).Milliseconds(),
	)

	return dashboard, nil
}

// Evaluate exposes the session's evaluator for callers that need a one-off
// evaluation outside the cached dashboard path (player detail lookups).
func (s *SessionService) Evaluate(ctx context.Context) (Evaluation, error) {
	return s.filterSvc.Evaluate(ctx, s.Filter())
}

// PlayerDetail derives one player's view under the session's current filter.
func (s *SessionService) PlayerDetail(ctx context.Context, name string) (PlayerView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.PlayerDetail")
	defer span.End()

	eval, err := s.Evaluate(ctx)
	if err != nil {
		return PlayerView{}, fmt.Errorf("evaluate filter: %w", err)
	}
	return s.statsSvc.GetPlayer(ctx, name, eval)
}
