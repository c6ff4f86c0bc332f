package snapshot

import "testing"

func TestDecodePlayers(t *testing.T) {
	t.Parallel()

	data := []byte(`{
		"Arjun Mehta": {
			"runs": 142, "balls": 98, "4s": 14, "6s": 5, "outs": 3,
			"sr": 144.9, "avg": 47.33,
			"bat_dot_pct": 30.6, "bat_dot_balls": 30, "bat_tracked_balls": 98,
			"best_batting": ["62 (38b)"],
			"position_stats": {"1": {"sr": 150.0, "avg": 60.0, "runs": 120, "balls": 80, "outs": 2, "innings": 3}},
			"ground_stats": {"Lakeside Oval": {"runs": 80, "balls": 55, "sr": 145.45, "avg": 40.0, "innings": 2}},
			"recent_batting": [{"runs": 44, "balls": 30, "date": "2025-03-22", "opponent": "Harbour Kings"}],
			"pom_matches": [{"match_id": 104, "date": "2025-03-22", "opponent": "Harbour Kings"}],
			"dismissal_stats": {"catch": {"count": 2, "pct": 66.7}}
		},
		"Sameer Kulkarni": {
			"wickets": 9, "overs": 14.0, "econ": 6.86,
			"bowl_dot_pct": 45.2, "dot_balls": 38, "bowl_total_balls": 84,
			"runs_conceded": 96, "wides": 4, "noballs": 1,
			"best_bowling": ["3/18 (3.3 ov)"],
			"recent_bowling": [{"wickets": 3, "runs": 18, "overs": "3.3", "date": "2025-03-15", "opponent": "Rivals CC"}],
			"bowl_ground_stats": {"Eastgate Park": {"innings": 2, "overs": 7.0, "dot_pct": 47.6, "wickets": 5, "econ": 7.14}}
		}
	}`)

	players, err := DecodePlayers(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(players) != 2 {
		t.Fatalf("expected 2 players, got %d", len(players))
	}

	arjun := players[0]
	if arjun.Name != "Arjun Mehta" {
		t.Fatalf("expected sorted order, got %q first", arjun.Name)
	}
	if arjun.Batting.Runs != 142 || arjun.Batting.Fours != 14 || arjun.Batting.Sixes != 5 {
		t.Fatalf("unexpected batting line: %+v", arjun.Batting)
	}
	if arjun.Batting.ByPosition[1].Runs != 120 {
		t.Fatalf("unexpected position line: %+v", arjun.Batting.ByPosition)
	}
	if arjun.POMCount != 1 {
		t.Fatalf("expected pom_count derived from pom_matches, got %d", arjun.POMCount)
	}
	if arjun.Dismissals["catch"].Count != 2 {
		t.Fatalf("unexpected dismissals: %+v", arjun.Dismissals)
	}

	sameer := players[1]
	if sameer.Bowling.Balls != 84 {
		t.Fatalf("expected bowl_total_balls carried, got %d", sameer.Bowling.Balls)
	}
	if sameer.Bowling.Overs != "14" {
		t.Fatalf("expected overs %q, got %q", "14", sameer.Bowling.Overs)
	}
	if sr := sameer.Bowling.StrikeRate; sr < 9.3 || sr > 9.4 {
		t.Fatalf("expected derived bowling strike rate ~9.33, got %v", sr)
	}
	if sameer.Bowling.ByGround["Eastgate Park"].Overs != "7" {
		t.Fatalf("unexpected ground line: %+v", sameer.Bowling.ByGround)
	}
}

func TestDecodePlayersFallsBackToOversForBalls(t *testing.T) {
	t.Parallel()

	players, err := DecodePlayers([]byte(`{"Dev Raval": {"wickets": 2, "overs": 3.3, "econ": 7.0, "runs_conceded": 24}}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := players[0].Bowling.Balls; got != 21 {
		t.Fatalf("expected 21 balls from overs 3.3, got %d", got)
	}
}

func TestDecodeMatches(t *testing.T) {
	t.Parallel()

	data := []byte(`[
		{"match_id": 101, "match_date": "2025-03-01", "opponent": "Rivals CC", "result": "Win",
		 "ground": "Lakeside Oval", "series": "HPT20L_SERIES_22", "toss_winner": "Rivals CC",
		 "toss_decision": "bowled", "player_of_match": "Arjun Mehta", "match_type": "League"},
		{"match_id": 102, "match_date": null, "opponent": "Harbour Kings", "result": "Loss"}
	]`)

	results, err := DecodeMatches(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].ID != 101 || results[0].Outcome != "Win" || results[0].Series != "HPT20L_SERIES_22" {
		t.Fatalf("unexpected result: %+v", results[0])
	}
	if results[1].Date != "" {
		t.Fatalf("expected null date to decode empty, got %q", results[1].Date)
	}
}

func TestDecodeSeries(t *testing.T) {
	t.Parallel()

	names, err := DecodeSeries([]byte(`["HPT20L_SERIES_22", "Season 3 - Premier Division (HUPL)"]`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(names) != 2 {
		t.Fatalf("expected 2 names, got %v", names)
	}

	if _, err := DecodeSeries([]byte(`{"not": "a list"}`)); err == nil {
		t.Fatalf("expected error for wrong shape")
	}
}
