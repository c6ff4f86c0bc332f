// Package snapshot decodes the scorecard exporter's JSON bundle into domain
// types. The same documents arrive from asset files, the snapshot database,
// and the CricClubs bundle endpoint, so the wire shapes live here once.
package snapshot

import (
	"sort"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"

	"github.com/cricsight/cricsight/internal/domain/match"
	"github.com/cricsight/cricsight/internal/domain/stats"
)

// Bundle is one complete decoded snapshot: every source (asset files, the
// snapshot database, the CricClubs endpoint) produces this shape.
type Bundle struct {
	Players []stats.PlayerSeason
	Matches []match.Result
	Series  []string
}

// PlayerDoc is the player_stats.json document: player name to season entry.
type PlayerDoc map[string]PlayerEntry

// PlayerEntry mirrors the exporter's per-player object. Batting and bowling
// fields share one flat namespace; absent sections decode to zero values.
type PlayerEntry struct {
	Runs            int     `json:"runs"`
	Balls           int     `json:"balls"`
	Fours           int     `json:"4s"`
	Sixes           int     `json:"6s"`
	Outs            int     `json:"outs"`
	SR              float64 `json:"sr"`
	Avg             float64 `json:"avg"`
	BatDotPct       float64 `json:"bat_dot_pct"`
	BatDotBalls     int     `json:"bat_dot_balls"`
	BatTrackedBalls int     `json:"bat_tracked_balls"`

	BestBatting   []string                  `json:"best_batting"`
	PositionStats map[string]PositionEntry  `json:"position_stats"`
	GroundStats   map[string]GroundBatEntry `json:"ground_stats"`
	RecentBatting []RecentInningsEntry      `json:"recent_batting"`
	POMCount      int                       `json:"pom_count"`
	POMMatches    []POMEntry                `json:"pom_matches"`
	Dismissals    map[string]DismissalEntry `json:"dismissal_stats"`

	Wickets        int     `json:"wickets"`
	Overs          float64 `json:"overs"` // base-6 notation carried as a number
	Econ           float64 `json:"econ"`
	BowlDotPct     float64 `json:"bowl_dot_pct"`
	DotBalls       int     `json:"dot_balls"`
	BowlTotalBalls int     `json:"bowl_total_balls"`
	RunsConceded   int     `json:"runs_conceded"`
	Wides          int     `json:"wides"`
	NoBalls        int     `json:"noballs"`

	BestBowling     []string                   `json:"best_bowling"`
	RecentBowling   []RecentSpellEntry         `json:"recent_bowling"`
	BowlGroundStats map[string]GroundBowlEntry `json:"bowl_ground_stats"`
}

type PositionEntry struct {
	SR      float64 `json:"sr"`
	Avg     float64 `json:"avg"`
	Runs    int     `json:"runs"`
	Balls   int     `json:"balls"`
	Outs    int     `json:"outs"`
	Innings int     `json:"innings"`
}

type GroundBatEntry struct {
	Runs    int     `json:"runs"`
	Balls   int     `json:"balls"`
	SR      float64 `json:"sr"`
	Avg     float64 `json:"avg"`
	Innings int     `json:"innings"`
}

type GroundBowlEntry struct {
	Innings int     `json:"innings"`
	Overs   float64 `json:"overs"`
	DotPct  float64 `json:"dot_pct"`
	Wickets int     `json:"wickets"`
	Econ    float64 `json:"econ"`
}

type RecentInningsEntry struct {
	Runs     int    `json:"runs"`
	Balls    int    `json:"balls"`
	Date     string `json:"date"`
	Opponent string `json:"opponent"`
}

type RecentSpellEntry struct {
	Wickets  int    `json:"wickets"`
	Runs     int    `json:"runs"`
	Overs    string `json:"overs"`
	Date     string `json:"date"`
	Opponent string `json:"opponent"`
}

type POMEntry struct {
	MatchID  int    `json:"match_id"`
	Date     string `json:"date"`
	Opponent string `json:"opponent"`
}

type DismissalEntry struct {
	Count int     `json:"count"`
	Pct   float64 `json:"pct"`
}

// MatchEntry mirrors one element of match_results.json.
type MatchEntry struct {
	MatchID       int    `json:"match_id"`
	MatchDate     string `json:"match_date"`
	Opponent      string `json:"opponent"`
	Result        string `json:"result"`
	Ground        string `json:"ground"`
	Series        string `json:"series"`
	TossWinner    string `json:"toss_winner"`
	TossDecision  string `json:"toss_decision"`
	PlayerOfMatch string `json:"player_of_match"`
	MatchType     string `json:"match_type"`
}

// DecodePlayerEntry decodes a single stored per-player document.
func DecodePlayerEntry(data []byte) (PlayerEntry, error) {
	var entry PlayerEntry
	if err := sonic.Unmarshal(data, &entry); err != nil {
		return PlayerEntry{}, errors.Wrap(err, "decode player entry")
	}
	return entry, nil
}

// EncodePlayerEntry renders a per-player document for storage.
func EncodePlayerEntry(entry PlayerEntry) ([]byte, error) {
	data, err := sonic.Marshal(entry)
	if err != nil {
		return nil, errors.Wrap(err, "encode player entry")
	}
	return data, nil
}

// PlayerFromEntry converts one decoded entry into its domain season.
func PlayerFromEntry(name string, entry PlayerEntry) stats.PlayerSeason {
	return entry.toSeason(strings.TrimSpace(name))
}

// DecodePlayerDoc decodes the player_stats.json document without flattening
// it, keeping per-player entries addressable for storage.
func DecodePlayerDoc(data []byte) (PlayerDoc, error) {
	var doc PlayerDoc
	if err := sonic.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "decode player stats document")
	}
	return doc, nil
}

func DecodePlayers(data []byte) ([]stats.PlayerSeason, error) {
	doc, err := DecodePlayerDoc(data)
	if err != nil {
		return nil, err
	}
	return Players(doc), nil
}

func DecodeMatches(data []byte) ([]match.Result, error) {
	var entries []MatchEntry
	if err := sonic.Unmarshal(data, &entries); err != nil {
		return nil, errors.Wrap(err, "decode match results document")
	}
	return Matches(entries), nil
}

func DecodeSeries(data []byte) ([]string, error) {
	var names []string
	if err := sonic.Unmarshal(data, &names); err != nil {
		return nil, errors.Wrap(err, "decode series list document")
	}
	return names, nil
}

// Players converts a decoded document into domain seasons, sorted by name.
func Players(doc PlayerDoc) []stats.PlayerSeason {
	out := make([]stats.PlayerSeason, 0, len(doc))
	for name, entry := range doc {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		out = append(out, entry.toSeason(name))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func Matches(entries []MatchEntry) []match.Result {
	out := make([]match.Result, 0, len(entries))
	for _, e := range entries {
		out = append(out, match.Result{
			ID:            e.MatchID,
			Date:          strings.TrimSpace(e.MatchDate),
			Opponent:      strings.TrimSpace(e.Opponent),
			Outcome:       match.Outcome(strings.TrimSpace(e.Result)),
			Ground:        strings.TrimSpace(e.Ground),
			Series:        strings.TrimSpace(e.Series),
			MatchType:     strings.TrimSpace(e.MatchType),
			TossWinner:    strings.TrimSpace(e.TossWinner),
			TossDecision:  strings.TrimSpace(e.TossDecision),
			PlayerOfMatch: strings.TrimSpace(e.PlayerOfMatch),
		})
	}
	return out
}

func (e PlayerEntry) toSeason(name string) stats.PlayerSeason {
	season := stats.PlayerSeason{
		Name:     name,
		POMCount: e.POMCount,
	}

	season.Batting = stats.Batting{
		Runs:         e.Runs,
		Balls:        e.Balls,
		Fours:        e.Fours,
		Sixes:        e.Sixes,
		Outs:         e.Outs,
		StrikeRate:   e.SR,
		Average:      e.Avg,
		DotBalls:     e.BatDotBalls,
		TrackedBalls: e.BatTrackedBalls,
		DotPct:       e.BatDotPct,
		BestInnings:  e.BestBatting,
	}

	if len(e.PositionStats) > 0 {
		season.Batting.ByPosition = make(map[int]stats.PositionLine, len(e.PositionStats))
		for key, line := range e.PositionStats {
			pos, err := strconv.Atoi(key)
			if err != nil || pos < 1 {
				continue
			}
			season.Batting.ByPosition[pos] = stats.PositionLine{
				Innings:    line.Innings,
				Runs:       line.Runs,
				Balls:      line.Balls,
				Outs:       line.Outs,
				StrikeRate: line.SR,
				Average:    line.Avg,
			}
		}
	}

	if len(e.GroundStats) > 0 {
		season.Batting.ByGround = make(map[string]stats.GroundBattingLine, len(e.GroundStats))
		for ground, line := range e.GroundStats {
			season.Batting.ByGround[ground] = stats.GroundBattingLine{
				Innings:    line.Innings,
				Runs:       line.Runs,
				Balls:      line.Balls,
				StrikeRate: line.SR,
				Average:    line.Avg,
			}
		}
	}

	for _, r := range e.RecentBatting {
		season.Batting.Recent = append(season.Batting.Recent, stats.RecentInnings{
			Date:     strings.TrimSpace(r.Date),
			Opponent: strings.TrimSpace(r.Opponent),
			Runs:     r.Runs,
			Balls:    r.Balls,
		})
	}

	balls := e.BowlTotalBalls
	if balls == 0 {
		balls = stats.BallsFromOvers(formatOvers(e.Overs))
	}
	season.Bowling = stats.Bowling{
		Wickets:      e.Wickets,
		Balls:        balls,
		Overs:        formatOvers(e.Overs),
		RunsConceded: e.RunsConceded,
		Economy:      e.Econ,
		StrikeRate:   stats.BowlingStrikeRateValue(balls, e.Wickets),
		DotBalls:     e.DotBalls,
		DotPct:       e.BowlDotPct,
		Wides:        e.Wides,
		NoBalls:      e.NoBalls,
		BestSpells:   e.BestBowling,
	}

	if len(e.BowlGroundStats) > 0 {
		season.Bowling.ByGround = make(map[string]stats.GroundBowlingLine, len(e.BowlGroundStats))
		for ground, line := range e.BowlGroundStats {
			season.Bowling.ByGround[ground] = stats.GroundBowlingLine{
				Innings: line.Innings,
				Overs:   formatOvers(line.Overs),
				Wickets: line.Wickets,
				DotPct:  line.DotPct,
				Economy: line.Econ,
			}
		}
	}

	for _, r := range e.RecentBowling {
		season.Bowling.Recent = append(season.Bowling.Recent, stats.RecentSpell{
			Date:     strings.TrimSpace(r.Date),
			Opponent: strings.TrimSpace(r.Opponent),
			Wickets:  r.Wickets,
			Runs:     r.Runs,
			Overs:    strings.TrimSpace(r.Overs),
		})
	}

	for _, p := range e.POMMatches {
		season.POMMatches = append(season.POMMatches, stats.POMMatch{
			MatchID:  p.MatchID,
			Date:     strings.TrimSpace(p.Date),
			Opponent: strings.TrimSpace(p.Opponent),
		})
	}
	if season.POMCount == 0 {
		season.POMCount = len(season.POMMatches)
	}

	if len(e.Dismissals) > 0 {
		season.Dismissals = make(map[string]stats.DismissalShare, len(e.Dismissals))
		for kind, d := range e.Dismissals {
			season.Dismissals[kind] = stats.DismissalShare{Count: d.Count, Pct: d.Pct}
		}
	}

	return season
}

// formatOvers renders the exporter's numeric base-6 overs value ("14.3" means
// 14 overs and 3 balls) back into its canonical string form.
func formatOvers(v float64) string {
	if v <= 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
