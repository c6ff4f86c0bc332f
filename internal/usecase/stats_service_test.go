package usecase

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/cricsight/cricsight/internal/domain/match"
	"github.com/cricsight/cricsight/internal/domain/stats"
)

type stubStatsRepo struct {
	players   []stats.PlayerSeason
	listCalls atomic.Int64
}

func (r *stubStatsRepo) List(context.Context) ([]stats.PlayerSeason, error) {
	r.listCalls.Add(1)
	out := make([]stats.PlayerSeason, len(r.players))
	copy(out, r.players)
	return out, nil
}

func (r *stubStatsRepo) GetByName(_ context.Context, name string) (stats.PlayerSeason, bool, error) {
	for _, p := range r.players {
		if strings.EqualFold(p.Name, name) {
			return p, true, nil
		}
	}
	return stats.PlayerSeason{}, false, nil
}

func activeEval(keys ...match.Key) Evaluation {
	set := make(map[match.Key]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return Evaluation{Keys: set, Active: true}
}

func TestRecomputeInactiveServesSeasonVerbatim(t *testing.T) {
	t.Parallel()

	player := stats.PlayerSeason{
		Name: "Arjun Mehta",
		Batting: stats.Batting{
			Runs: 150, Balls: 110, Fours: 12, Sixes: 3,
			StrikeRate: 136.36, DotBalls: 40, TrackedBalls: 100, DotPct: 40,
			Recent: []stats.RecentInnings{
				{Date: "2025-03-01", Opponent: "Rivals CC", Runs: 50, Balls: 30},
			},
		},
	}

	view := Recompute(player, Evaluation{Active: false})

	if view.Estimated {
		t.Fatalf("inactive filter must not mark estimates")
	}
	if view.Batting.Runs != 150 || view.Batting.Balls != 110 {
		t.Fatalf("expected season totals verbatim, got %+v", view.Batting)
	}
	if view.Batting.StrikeRate != 136.36 {
		t.Fatalf("expected stored strike rate untouched, got %v", view.Batting.StrikeRate)
	}
	if view.Batting.Fours != 12 {
		t.Fatalf("expected exact fours, got %d", view.Batting.Fours)
	}
}

func TestRecomputeActiveBattingSumsAndEstimates(t *testing.T) {
	t.Parallel()

	player := stats.PlayerSeason{
		Name: "Arjun Mehta",
		Batting: stats.Batting{
			Runs: 150, Balls: 110, Fours: 12, Sixes: 3,
			DotBalls: 30, TrackedBalls: 90,
			Recent: []stats.RecentInnings{
				{Date: "2025-03-22", Opponent: "Harbour Kings", Runs: 20, Balls: 10},
				{Date: "2025-03-01", Opponent: "Rivals CC", Runs: 30, Balls: 20},
				{Date: "2025-02-14", Opponent: "Outsiders", Runs: 40, Balls: 25},
			},
		},
	}

	eval := activeEval(
		match.Key{Date: "2025-03-22", Opponent: "Harbour Kings"},
		match.Key{Date: "2025-03-01", Opponent: "Rivals CC"},
	)
	view := Recompute(player, eval)

	if !view.Estimated {
		t.Fatalf("active filter must mark estimates")
	}
	if view.Batting.Runs != 50 || view.Batting.Balls != 30 {
		t.Fatalf("expected 50 runs off 30 balls, got %+v", view.Batting)
	}
	if sr := view.Batting.StrikeRate; sr < 166.6 || sr > 166.7 {
		t.Fatalf("expected strike rate from filtered sums ~166.67, got %v", sr)
	}
	// 50 of 150 season runs -> one third of 12 fours.
	if view.Batting.Fours != 4 {
		t.Fatalf("expected 4 estimated fours, got %d", view.Batting.Fours)
	}
	if view.Batting.Sixes != 1 {
		t.Fatalf("expected 1 estimated six, got %d", view.Batting.Sixes)
	}
	if !view.HasBatting {
		t.Fatalf("expected batting presence")
	}
}

func TestRecomputeEstimateClampedToFilteredBalls(t *testing.T) {
	t.Parallel()

	player := stats.PlayerSeason{
		Name: "Slogger",
		Batting: stats.Batting{
			Runs: 60, Balls: 200, Fours: 40,
			Recent: []stats.RecentInnings{
				{Date: "2025-03-01", Opponent: "Rivals CC", Runs: 55, Balls: 3},
			},
		},
	}

	view := Recompute(player, activeEval(match.Key{Date: "2025-03-01", Opponent: "Rivals CC"}))

	// 55/60 of 40 fours rounds to 37, impossible in 3 balls.
	if view.Batting.Fours != 3 {
		t.Fatalf("expected fours clamped to 3 balls, got %d", view.Batting.Fours)
	}
}

func TestRecomputeExcludesUnjoinableAndUnselectedEntries(t *testing.T) {
	t.Parallel()

	player := stats.PlayerSeason{
		Name: "Arjun Mehta",
		Batting: stats.Batting{
			Runs: 100, Balls: 80,
			Recent: []stats.RecentInnings{
				{Date: "", Opponent: "Rivals CC", Runs: 30, Balls: 20},
				{Date: "2025-03-01", Opponent: "", Runs: 25, Balls: 15},
				{Date: "2025-01-01", Opponent: "Outsiders", Runs: 45, Balls: 40},
			},
		},
	}

	view := Recompute(player, activeEval(match.Key{Date: "2025-03-01", Opponent: "Rivals CC"}))

	if view.Batting.Runs != 0 || view.Batting.Balls != 0 {
		t.Fatalf("expected no joinable entries to count, got %+v", view.Batting)
	}
	if view.HasBatting {
		t.Fatalf("player without filtered involvement must not report batting")
	}
}

func TestRecomputeActiveBowling(t *testing.T) {
	t.Parallel()

	player := stats.PlayerSeason{
		Name: "Sameer Kulkarni",
		Bowling: stats.Bowling{
			Wickets: 9, Balls: 84, Overs: "14", RunsConceded: 96, DotBalls: 42,
			Recent: []stats.RecentSpell{
				{Date: "2025-03-15", Opponent: "Rivals CC", Wickets: 3, Runs: 18, Overs: "2.3"},
				{Date: "2025-03-01", Opponent: "Rivals CC", Wickets: 1, Runs: 24, Overs: "4"},
			},
		},
	}

	view := Recompute(player, activeEval(match.Key{Date: "2025-03-15", Opponent: "Rivals CC"}))

	if view.Bowling.Wickets != 3 || view.Bowling.RunsConceded != 18 {
		t.Fatalf("unexpected bowling sums: %+v", view.Bowling)
	}
	if view.Bowling.Balls != 15 {
		t.Fatalf("expected 15 balls from 2.3 overs, got %d", view.Bowling.Balls)
	}
	if view.Bowling.Overs != "2.3" {
		t.Fatalf("expected overs round trip, got %q", view.Bowling.Overs)
	}
	if eco := view.Bowling.Economy; eco < 7.1 || eco > 7.3 {
		t.Fatalf("expected economy ~7.2, got %v", eco)
	}
	if sr := view.Bowling.StrikeRate; sr != 5 {
		t.Fatalf("expected bowling strike rate 5, got %v", sr)
	}
	// 15 of 84 season balls -> 42 dots scale to 7 or 8, clamped within balls.
	if view.Bowling.DotBalls < 7 || view.Bowling.DotBalls > 8 {
		t.Fatalf("unexpected dot estimate: %d", view.Bowling.DotBalls)
	}
	if !view.HasBowling {
		t.Fatalf("expected bowling presence")
	}
}

func TestRecomputeBowlingZeroDotsStillDefined(t *testing.T) {
	t.Parallel()

	player := stats.PlayerSeason{
		Name: "Dev Raval",
		Bowling: stats.Bowling{
			Wickets: 4, Balls: 48, Overs: "8", RunsConceded: 70, DotBalls: 0,
			Recent: []stats.RecentSpell{
				{Date: "2025-03-15", Opponent: "Rivals CC", Wickets: 2, Runs: 36, Overs: "4"},
			},
		},
	}

	view := Recompute(player, activeEval(match.Key{Date: "2025-03-15", Opponent: "Rivals CC"}))

	if view.Bowling.Balls != 24 {
		t.Fatalf("expected 24 filtered balls, got %d", view.Bowling.Balls)
	}
	if view.Bowling.DotPct != 0 {
		t.Fatalf("expected 0%% dots, got %v", view.Bowling.DotPct)
	}
	if !view.Bowling.DotPctDefined {
		t.Fatalf("a bowler with deliveries has a defined dot percentage")
	}

	rested := Recompute(player, activeEval(match.Key{Date: "2025-01-01", Opponent: "Outsiders"}))
	if rested.Bowling.DotPctDefined {
		t.Fatalf("no filtered deliveries must leave the dot percentage undefined")
	}
}

func TestRecomputeAllKeepsRepositoryOrder(t *testing.T) {
	t.Parallel()

	repo := &stubStatsRepo{players: []stats.PlayerSeason{
		{Name: "A", Batting: stats.Batting{Runs: 10, Balls: 10}},
		{Name: "B", Batting: stats.Batting{Runs: 20, Balls: 20}},
		{Name: "C", Batting: stats.Batting{Runs: 30, Balls: 30}},
	}}
	service := NewStatsService(repo, 2)

	views, err := service.RecomputeAll(context.Background(), Evaluation{Active: false})
	if err != nil {
		t.Fatalf("recompute all: %v", err)
	}
	if len(views) != 3 {
		t.Fatalf("expected 3 views, got %d", len(views))
	}
	for i, want := range []string{"A", "B", "C"} {
		if views[i].Name != want {
			t.Fatalf("unexpected order at %d: got=%s want=%s", i, views[i].Name, want)
		}
	}
}

func TestGetPlayerValidation(t *testing.T) {
	t.Parallel()

	repo := &stubStatsRepo{players: []stats.PlayerSeason{{Name: "Arjun Mehta"}}}
	service := NewStatsService(repo, 0)
	ctx := context.Background()

	if _, err := service.GetPlayer(ctx, "   ", Evaluation{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := service.GetPlayer(ctx, "Nobody", Evaluation{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	view, err := service.GetPlayer(ctx, "arjun mehta", Evaluation{})
	if err != nil {
		t.Fatalf("get player: %v", err)
	}
	if view.Name != "Arjun Mehta" {
		t.Fatalf("unexpected player: %q", view.Name)
	}
}
