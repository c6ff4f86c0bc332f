package usecase

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/cricsight/cricsight/internal/domain/match"
	"github.com/cricsight/cricsight/internal/domain/stats"
)

const defaultRecomputeWorkers = 8

// PlayerView is a player's batting/bowling numbers restricted to the active
// filter window. Exact fields are summed from the recent per-match entries;
// Estimated marks the views whose boundary and dot-ball counts were scaled
// from season totals because no match-level detail exists for them.
type PlayerView struct {
	Name      string
	Estimated bool

	Batting BattingView
	Bowling BowlingView

	// HasBatting / HasBowling distinguish "did not feature in the filtered
	// matches" from "featured with zero output"; excluded players carry
	// false and stay off the corresponding leaderboards.
	HasBatting bool
	HasBowling bool

	// Season is the untouched season aggregate, kept for detail display.
	Season stats.PlayerSeason
}

type BattingView struct {
	Runs       int
	Balls      int
	StrikeRate float64

	Fours        int
	Sixes        int
	DotBalls     int
	TrackedBalls int
	DotPct       float64
}

type BowlingView struct {
	Wickets      int
	Balls        int
	Overs        string
	RunsConceded int
	Economy      float64
	StrikeRate   float64
	DotBalls     int
	DotPct       float64

	// DotPctDefined separates a genuine 0% from a percentage with no
	// denominator behind it. Only defined percentages are ranked.
	DotPctDefined bool
}

type StatsService struct {
	statsRepo stats.Repository
	workers   int
}

func NewStatsService(statsRepo stats.Repository, workers int) *StatsService {
	if workers <= 0 {
		workers = defaultRecomputeWorkers
	}
	return &StatsService{
		statsRepo: statsRepo,
		workers:   workers,
	}
}

// RecomputeAll derives the filtered view of every player. Players are
// independent, so the pass fans out over a worker pool; result order matches
// repository order to keep leaderboard tie-breaks stable.
func (s *StatsService) RecomputeAll(ctx context.Context, eval Evaluation) ([]PlayerView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.RecomputeAll")
	defer span.End()

	players, err := s.statsRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list player season stats: %w", err)
	}

	views := make([]PlayerView, len(players))
	if len(players) == 0 {
		return views, nil
	}

	workerCount := s.workers
	if workerCount > len(players) {
		workerCount = len(players)
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, fmt.Errorf("create recompute worker pool: %w", err)
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i := range players {
		i := i
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			views[i] = Recompute(players[i], eval)
		}); err != nil {
			wg.Done()
			return nil, fmt.Errorf("submit recompute task: %w", err)
		}
	}
	wg.Wait()

	return views, nil
}

// GetPlayer resolves one player (exact name first, case-insensitive second)
// and derives their filtered view.
func (s *StatsService) GetPlayer(ctx context.Context, name string, eval Evaluation) (PlayerView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.GetPlayer")
	defer span.End()

	if strings.TrimSpace(name) == "" {
		return PlayerView{}, fmt.Errorf("%w: player name is required", ErrInvalidInput)
	}

	player, found, err := s.statsRepo.GetByName(ctx, name)
	if err != nil {
		return PlayerView{}, fmt.Errorf("get player season stats: %w", err)
	}
	if !found {
		return PlayerView{}, fmt.Errorf("%w: player %q", ErrNotFound, name)
	}

	return Recompute(player, eval), nil
}

// Recompute derives one player's filtered view. With an inactive evaluation
// the season aggregate is returned verbatim, exact and unestimated, regardless
// of what the recent windows contain.
func Recompute(player stats.PlayerSeason, eval Evaluation) PlayerView {
	if !eval.Active {
		return seasonView(player)
	}

	view := PlayerView{
		Name:      player.Name,
		Estimated: true,
		Season:    player,
	}
	view.Batting = recomputeBatting(player.Batting, eval.Keys)
	view.Bowling = recomputeBowling(player.Bowling, eval.Keys)
	view.HasBatting = view.Batting.Runs > 0 || view.Batting.Balls > 0
	view.HasBowling = view.Bowling.Wickets > 0 || view.Bowling.Balls > 0

	return view
}

func seasonView(player stats.PlayerSeason) PlayerView {
	bat := player.Batting
	bowl := player.Bowling

	return PlayerView{
		Name:   player.Name,
		Season: player,
		Batting: BattingView{
			Runs:         bat.Runs,
			Balls:        bat.Balls,
			StrikeRate:   bat.StrikeRate,
			Fours:        bat.Fours,
			Sixes:        bat.Sixes,
			DotBalls:     bat.DotBalls,
			TrackedBalls: bat.TrackedBalls,
			DotPct:       bat.DotPct,
		},
		Bowling: BowlingView{
			Wickets:       bowl.Wickets,
			Balls:         bowl.Balls,
			Overs:         bowl.Overs,
			RunsConceded:  bowl.RunsConceded,
			Economy:       bowl.Economy,
			StrikeRate:    bowl.StrikeRate,
			DotBalls:      bowl.DotBalls,
			DotPct:        bowl.DotPct,
			DotPctDefined: bowl.Balls > 0,
		},
		HasBatting: bat.Runs > 0 || bat.Balls > 0,
		HasBowling: bowl.Wickets > 0 || bowl.Balls > 0,
	}
}

func recomputeBatting(season stats.Batting, keys map[match.Key]struct{}) BattingView {
	var runs, balls int
	for _, innings := range season.Recent {
		key, ok := match.KeyOf(innings.Date, innings.Opponent)
		if !ok {
			continue
		}
		if _, in := keys[key]; !in {
			continue
		}
		runs += innings.Runs
		balls += innings.Balls
	}

	view := BattingView{
		Runs:       runs,
		Balls:      balls,
		StrikeRate: stats.StrikeRateValue(runs, balls),
	}

	// Boundary and dot counts exist only as season totals; scale them by the
	// filtered share. The runs ratio is preferred, the balls ratio is the
	// fallback, and a zero season denominator leaves the estimate at zero.
	ratio, ok := shareRatio(runs, season.Runs, balls, season.Balls)
	if !ok {
		return view
	}

	view.Fours = clampCount(scaleCount(season.Fours, ratio), balls)
	view.Sixes = clampCount(scaleCount(season.Sixes, ratio), balls)
	view.DotBalls = clampCount(scaleCount(season.DotBalls, ratio), balls)
	view.TrackedBalls = clampCount(scaleCount(season.TrackedBalls, ratio), balls)
	if view.TrackedBalls > 0 {
		if view.DotBalls > view.TrackedBalls {
			view.DotBalls = view.TrackedBalls
		}
		view.DotPct = float64(view.DotBalls) / float64(view.TrackedBalls) * 100
	}

	return view
}

func recomputeBowling(season stats.Bowling, keys map[match.Key]struct{}) BowlingView {
	var wickets, runsConceded, balls int
	for _, spell := range season.Recent {
		key, ok := match.KeyOf(spell.Date, spell.Opponent)
		if !ok {
			continue
		}
		if _, in := keys[key]; !in {
			continue
		}
		wickets += spell.Wickets
		runsConceded += spell.Runs
		balls += stats.BallsFromOvers(spell.Overs)
	}

	view := BowlingView{
		Wickets:      wickets,
		Balls:        balls,
		Overs:        stats.OversFromBalls(balls),
		RunsConceded: runsConceded,
		Economy:      stats.EconomyValue(runsConceded, balls),
		StrikeRate:   stats.BowlingStrikeRateValue(balls, wickets),
	}

	seasonBalls := season.Balls
	if seasonBalls <= 0 {
		seasonBalls = stats.BallsFromOvers(season.Overs)
	}
	ratio, ok := shareRatio(balls, seasonBalls, balls, seasonBalls)
	if !ok {
		return view
	}

	view.DotBalls = clampCount(scaleCount(season.DotBalls, ratio), balls)
	if balls > 0 {
		view.DotPct = float64(view.DotBalls) / float64(balls) * 100
		view.DotPctDefined = true
	}

	return view
}

// shareRatio returns the filtered share of the season, trying the primary
// numerator/denominator pair first and falling back to the secondary one.
// A ratio only counts when it is defined and non-zero.
func shareRatio(primaryNum, primaryDen, secondaryNum, secondaryDen int) (float64, bool) {
	if primaryDen > 0 && primaryNum > 0 {
		return float64(primaryNum) / float64(primaryDen), true
	}
	if secondaryDen > 0 && secondaryNum > 0 {
		return float64(secondaryNum) / float64(secondaryDen), true
	}
	return 0, false
}

func scaleCount(seasonTotal int, ratio float64) int {
	if seasonTotal <= 0 {
		return 0
	}
	return int(math.Round(float64(seasonTotal) * ratio))
}

func clampCount(estimated, ceiling int) int {
	if estimated < 0 {
		return 0
	}
	if estimated > ceiling {
		return ceiling
	}
	return estimated
}
