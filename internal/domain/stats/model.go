package stats

// PlayerSeason is one player's season-long aggregate as produced by the
// scorecard exporter. It is the only exact source of truth for totals; match
// granularity exists solely in the bounded Recent windows.
type PlayerSeason struct {
	Name string

	Batting Batting
	Bowling Bowling

	POMCount   int
	POMMatches []POMMatch

	// Dismissals holds the simplified dismissal-type distribution
	// (catch, bowled, lbw, run out, stumped, not out, other).
	Dismissals map[string]DismissalShare
}

type Batting struct {
	Runs       int
	Balls      int
	Fours      int
	Sixes      int
	Outs       int
	StrikeRate float64
	Average    float64

	// Dot-ball tracking covers only innings where ball-by-ball data existed,
	// so DotBalls is a share of TrackedBalls, not of Balls.
	DotBalls     int
	TrackedBalls int
	DotPct       float64

	BestInnings []string
	ByPosition  map[int]PositionLine
	ByGround    map[string]GroundBattingLine

	// Recent is the player's most recent innings, newest first, bounded by
	// the exporter (last 5). It is a subset of the season, never the whole.
	Recent []RecentInnings
}

type Bowling struct {
	Wickets      int
	Balls        int // legal deliveries
	Overs        string
	RunsConceded int
	Economy      float64
	StrikeRate   float64 // legal deliveries per wicket
	DotBalls     int
	DotPct       float64
	Wides        int
	NoBalls      int

	BestSpells []string
	ByGround   map[string]GroundBowlingLine

	Recent []RecentSpell
}

type PositionLine struct {
	Innings    int
	Runs       int
	Balls      int
	Outs       int
	StrikeRate float64
	Average    float64
}

type GroundBattingLine struct {
	Innings    int
	Runs       int
	Balls      int
	StrikeRate float64
	Average    float64
}

type GroundBowlingLine struct {
	Innings int
	Overs   string
	Wickets int
	DotPct  float64
	Economy float64
}

// RecentInnings carries the only per-match batting detail available.
// Date is an ISO calendar date (2006-01-02); Date+Opponent is the join key
// back to a match result.
type RecentInnings struct {
	Date     string
	Opponent string
	Runs     int
	Balls    int
}

type RecentSpell struct {
	Date     string
	Opponent string
	Wickets  int
	Runs     int
	Overs    string
}

type DismissalShare struct {
	Count int
	Pct   float64
}

type POMMatch struct {
	MatchID  int
	Date     string
	Opponent string
}
