package usecase

import (
	"context"
	"sort"
	"strconv"
)

type LeaderboardCategory string

const (
	CategoryMostRuns          LeaderboardCategory = "most_runs"
	CategoryMostFours         LeaderboardCategory = "most_fours"
	CategoryMostSixes         LeaderboardCategory = "most_sixes"
	CategoryBestStrikeRate    LeaderboardCategory = "best_strike_rate"
	CategoryMostWickets       LeaderboardCategory = "most_wickets"
	CategoryBestEconomy       LeaderboardCategory = "best_economy"
	CategoryBestDotPct        LeaderboardCategory = "best_dot_pct"
	CategoryBestBowlingStrike LeaderboardCategory = "best_bowling_strike_rate"
)

// Categories lists every leaderboard in display order.
var Categories = []LeaderboardCategory{
	CategoryMostRuns,
	CategoryBestStrikeRate,
	CategoryMostFours,
	CategoryMostSixes,
	CategoryMostWickets,
	CategoryBestEconomy,
	CategoryBestDotPct,
	CategoryBestBowlingStrike,
}

type LeaderboardEntry struct {
	Name      string
	Value     float64
	Display   string
	Estimated bool
}

type Leaderboard struct {
	Category LeaderboardCategory
	Entries  []LeaderboardEntry
}

type LeaderboardService struct {
	topN       int
	minSRBalls int
}

func NewLeaderboardService(topN, minStrikeRateBalls int) *LeaderboardService {
	if topN <= 0 {
		topN = 5
	}
	if minStrikeRateBalls <= 0 {
		minStrikeRateBalls = 20
	}
	return &LeaderboardService{
		topN:       topN,
		minSRBalls: minStrikeRateBalls,
	}
}

// BuildAll ranks every category from the given player views.
func (s *LeaderboardService) BuildAll(ctx context.Context, players []PlayerView) []Leaderboard {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.BuildAll")
	defer span.End()

	out := make([]Leaderboard, 0, len(Categories))
	for _, category := range Categories {
		out = append(out, s.Build(ctx, players, category))
	}
	return out
}

// Build ranks one category. Sorting is stable, so numerically equal values
// keep repository order; displayed precision is one decimal, which makes
// exact ties rare enough that no secondary key is applied.
func (s *LeaderboardService) Build(ctx context.Context, players []PlayerView, category LeaderboardCategory) Leaderboard {
	_, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.Build")
	defer span.End()

	spec := categorySpecs[category]
	if spec.value == nil {
		return Leaderboard{Category: category}
	}

	entries := make([]LeaderboardEntry, 0, len(players))
	for _, p := range players {
		if !spec.eligible(s, p) {
			continue
		}
		value := spec.value(p)
		entries = append(entries, LeaderboardEntry{
			Name:      p.Name,
			Value:     value,
			Display:   spec.display(value),
			Estimated: p.Estimated && spec.estimated,
		})
	}

	if spec.ascending {
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].Value < entries[j].Value })
	} else {
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].Value > entries[j].Value })
	}

	if len(entries) > s.topN {
		entries = entries[:s.topN]
	}

	return Leaderboard{Category: category, Entries: entries}
}

type categorySpec struct {
	eligible  func(*LeaderboardService, PlayerView) bool
	value     func(PlayerView) float64
	display   func(float64) string
	ascending bool
	// estimated marks categories whose ranked value was scaled from season
	// totals under an active filter.
	estimated bool
}

func countDisplay(v float64) string {
	return strconv.Itoa(int(v))
}

func rateDisplay(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

var categorySpecs = map[LeaderboardCategory]categorySpec{
	CategoryMostRuns: {
		eligible: func(_ *LeaderboardService, p PlayerView) bool { return p.HasBatting },
		value:    func(p PlayerView) float64 { return float64(p.Batting.Runs) },
		display:  countDisplay,
	},
	CategoryMostFours: {
		eligible:  func(_ *LeaderboardService, p PlayerView) bool { return p.HasBatting },
		value:     func(p PlayerView) float64 { return float64(p.Batting.Fours) },
		display:   countDisplay,
		estimated: true,
	},
	CategoryMostSixes: {
		eligible:  func(_ *LeaderboardService, p PlayerView) bool { return p.HasBatting },
		value:     func(p PlayerView) float64 { return float64(p.Batting.Sixes) },
		display:   countDisplay,
		estimated: true,
	},
	CategoryBestStrikeRate: {
		eligible: func(s *LeaderboardService, p PlayerView) bool {
			return p.HasBatting && p.Batting.Balls >= s.minSRBalls
		},
		value:   func(p PlayerView) float64 { return p.Batting.StrikeRate },
		display: rateDisplay,
	},
	CategoryMostWickets: {
		eligible: func(_ *LeaderboardService, p PlayerView) bool { return p.HasBowling },
		value:    func(p PlayerView) float64 { return float64(p.Bowling.Wickets) },
		display:  countDisplay,
	},
	CategoryBestEconomy: {
		eligible: func(_ *LeaderboardService, p PlayerView) bool {
			return p.HasBowling && p.Bowling.Balls > 0
		},
		value:     func(p PlayerView) float64 { return p.Bowling.Economy },
		display:   rateDisplay,
		ascending: true,
	},
	CategoryBestDotPct: {
		eligible: func(_ *LeaderboardService, p PlayerView) bool {
			return p.HasBowling && p.Bowling.DotPctDefined
		},
		value:     func(p PlayerView) float64 { return p.Bowling.DotPct },
		display:   rateDisplay,
		estimated: true,
	},
	CategoryBestBowlingStrike: {
		eligible: func(_ *LeaderboardService, p PlayerView) bool {
			return p.HasBowling && p.Bowling.Wickets > 0
		},
		value:     func(p PlayerView) float64 { return p.Bowling.StrikeRate },
		display:   rateDisplay,
		ascending: true,
	},
}
