package memory

import (
	"github.com/cricsight/cricsight/internal/domain/match"
	"github.com/cricsight/cricsight/internal/domain/stats"
)

// Seed data backs local development and tests when no snapshot source is
// configured. Figures are internally consistent: recent entries join to
// seeded matches by (date, opponent).

func SeedMatches() []match.Result {
	return []match.Result{
		{
			ID: 101, Date: "2025-03-01", Opponent: "Rivals CC", Outcome: match.OutcomeWin,
			Ground: "Lakeside Oval", Series: "HPT20L_SERIES_22", MatchType: "League",
			TossWinner: "Rivals CC", TossDecision: "bowled first", PlayerOfMatch: "Arjun Mehta",
		},
		{
			ID: 102, Date: "2025-03-08", Opponent: "Harbour Kings", Outcome: match.OutcomeLoss,
			Ground: "Lakeside Oval", Series: "HPT20L_SERIES_22", MatchType: "League",
			TossWinner: "Harbour Kings", TossDecision: "batted first",
		},
		{
			ID: 103, Date: "2025-03-15", Opponent: "Rivals CC", Outcome: match.OutcomeWin,
			Ground: "Eastgate Park", Series: "Season 3 - Premier Division (HUPL)", MatchType: "League",
			TossWinner: "Rivals CC", TossDecision: "batted first", PlayerOfMatch: "Sameer Kulkarni",
		},
		{
			ID: 104, Date: "2025-03-22", Opponent: "Harbour Kings", Outcome: match.OutcomeWin,
			Ground: "Eastgate Park", Series: "Season 3 - Premier Division (HUPL)", MatchType: "Playoff",
			TossWinner: "Harbour Kings", TossDecision: "bowled first", PlayerOfMatch: "Arjun Mehta",
		},
	}
}

func SeedPlayers() []stats.PlayerSeason {
	return []stats.PlayerSeason{
		{
			Name: "Arjun Mehta",
			Batting: stats.Batting{
				Runs: 142, Balls: 98, Fours: 14, Sixes: 5, Outs: 3,
				StrikeRate: 144.9, Average: 47.33,
				DotBalls: 30, TrackedBalls: 98, DotPct: 30.6,
				BestInnings: []string{"62 (38b)", "44 (30b)"},
				ByPosition: map[int]stats.PositionLine{
					1: {Innings: 3, Runs: 120, Balls: 80},
					3: {Innings: 1, Runs: 22, Balls: 18},
				},
				ByGround: map[string]stats.GroundBattingLine{
					"Lakeside Oval": {Innings: 2, Runs: 80, Balls: 55},
					"Eastgate Park": {Innings: 2, Runs: 62, Balls: 43},
				},
				Recent: []stats.RecentInnings{
					{Date: "2025-03-22", Opponent: "Harbour Kings", Runs: 44, Balls: 30},
					{Date: "2025-03-15", Opponent: "Rivals CC", Runs: 18, Balls: 15},
					{Date: "2025-03-08", Opponent: "Harbour Kings", Runs: 18, Balls: 15},
					{Date: "2025-03-01", Opponent: "Rivals CC", Runs: 62, Balls: 38},
				},
			},
			POMCount: 2,
			POMMatches: []stats.POMMatch{
				{MatchID: 104, Date: "2025-03-22", Opponent: "Harbour Kings"},
				{MatchID: 101, Date: "2025-03-01", Opponent: "Rivals CC"},
			},
			Dismissals: map[string]stats.DismissalShare{
				"catch":   {Count: 2, Pct: 50},
				"bowled":  {Count: 1, Pct: 25},
				"not out": {Count: 1, Pct: 25},
			},
		},
		{
			Name: "Sameer Kulkarni",
			Batting: stats.Batting{
				Runs: 35, Balls: 31, Fours: 3, Sixes: 0, Outs: 2,
				StrikeRate: 112.9, Average: 17.5,
				DotBalls: 14, TrackedBalls: 31, DotPct: 45.2,
				Recent: []stats.RecentInnings{
					{Date: "2025-03-15", Opponent: "Rivals CC", Runs: 21, Balls: 17},
					{Date: "2025-03-01", Opponent: "Rivals CC", Runs: 14, Balls: 14},
				},
			},
			Bowling: stats.Bowling{
				Wickets: 9, Balls: 84, Overs: "14", RunsConceded: 96,
				Economy: 6.86, StrikeRate: 9.33,
				DotBalls: 38, DotPct: 45.2, Wides: 4, NoBalls: 1,
				BestSpells: []string{"3/18 (3.3 ov)", "3/22 (3 ov)"},
				ByGround: map[string]stats.GroundBowlingLine{
					"Lakeside Oval": {Innings: 2, Overs: "7", Wickets: 4, DotPct: 42.9, Economy: 6.57},
					"Eastgate Park": {Innings: 2, Overs: "7", Wickets: 5, DotPct: 47.6, Economy: 7.14},
				},
				Recent: []stats.RecentSpell{
					{Date: "2025-03-22", Opponent: "Harbour Kings", Wickets: 2, Runs: 28, Overs: "4"},
					{Date: "2025-03-15", Opponent: "Rivals CC", Wickets: 3, Runs: 18, Overs: "3.3"},
					{Date: "2025-03-08", Opponent: "Harbour Kings", Wickets: 1, Runs: 28, Overs: "3.3"},
					{Date: "2025-03-01", Opponent: "Rivals CC", Wickets: 3, Runs: 22, Overs: "3"},
				},
			},
			POMCount: 1,
			POMMatches: []stats.POMMatch{
				{MatchID: 103, Date: "2025-03-15", Opponent: "Rivals CC"},
			},
			Dismissals: map[string]stats.DismissalShare{
				"lbw": {Count: 2, Pct: 100},
			},
		},
		{
			Name: "Dev Raval",
			Bowling: stats.Bowling{
				Wickets: 4, Balls: 66, Overs: "11", RunsConceded: 88,
				Economy: 8.0, StrikeRate: 16.5,
				DotBalls: 22, DotPct: 33.3, Wides: 6, NoBalls: 2,
				BestSpells: []string{"2/20 (4 ov)"},
				Recent: []stats.RecentSpell{
					{Date: "2025-03-22", Opponent: "Harbour Kings", Wickets: 2, Runs: 20, Overs: "4"},
					{Date: "2025-03-08", Opponent: "Harbour Kings", Wickets: 0, Runs: 34, Overs: "4"},
					{Date: "2025-03-01", Opponent: "Rivals CC", Wickets: 2, Runs: 34, Overs: "3"},
				},
			},
		},
	}
}
