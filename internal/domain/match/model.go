package match

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

type Outcome string

const (
	OutcomeWin  Outcome = "Win"
	OutcomeLoss Outcome = "Loss"
	OutcomeDraw Outcome = "Draw"
	OutcomeTie  Outcome = "Tie"
)

// Result is one match of the tracked team as reported by the exporter. Toss
// decision is already contextualized to the tracked team ("batted first" /
// "bowled first"), and Outcome is from the tracked team's perspective.
type Result struct {
	ID            int
	Date          string // ISO calendar date; may be empty
	Opponent      string
	Outcome       Outcome
	Ground        string
	Series        string // raw series name as scraped
	MatchType     string // League / Playoff variant
	TossWinner    string
	TossDecision  string
	PlayerOfMatch string
}

// Key is the (date, opponent) join key shared with recent batting/bowling
// entries. The source carries no stable match identifier across exports, so
// two matches against the same opponent on the same date collide.
type Key struct {
	Date     string
	Opponent string
}

// KeyOf builds a join key, reporting false when either part is missing;
// such records cannot be joined and are excluded from filtered sums.
func KeyOf(date, opponent string) (Key, bool) {
	d := strings.TrimSpace(date)
	o := strings.TrimSpace(opponent)
	if d == "" || o == "" {
		return Key{}, false
	}
	return Key{Date: d, Opponent: o}, true
}

func (r Result) Key() (Key, bool) {
	return KeyOf(r.Date, r.Opponent)
}

// ParsedDate returns the calendar date, reporting false for missing or
// malformed dates. Matches without a date are exempt from date filtering.
func (r Result) ParsedDate() (time.Time, bool) {
	d := strings.TrimSpace(r.Date)
	if d == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(dateLayout, d)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func (r Result) HasOutcome() bool {
	switch r.Outcome {
	case OutcomeWin, OutcomeLoss, OutcomeDraw, OutcomeTie:
		return true
	default:
		return false
	}
}
