package httpapi

import (
	"context"
	"fmt"
	"sort"

	"github.com/cricsight/cricsight/internal/domain/filter"
	"github.com/cricsight/cricsight/internal/domain/match"
	"github.com/cricsight/cricsight/internal/domain/stats"
	"github.com/cricsight/cricsight/internal/usecase"
)

type sessionFilterRequest struct {
	DateFrom string   `json:"date_from" validate:"omitempty,datetime=2006-01-02"`
	DateTo   string   `json:"date_to" validate:"omitempty,datetime=2006-01-02"`
	Series   []string `json:"series" validate:"omitempty,dive,required"`
}

type filterStateDTO struct {
	DateFrom string   `json:"date_from,omitempty"`
	DateTo   string   `json:"date_to,omitempty"`
	Series   []string `json:"series,omitempty"`
}

type seriesDTO struct {
	Code     string   `json:"code"`
	RawNames []string `json:"raw_names"`
}

type matchDTO struct {
	ID            int    `json:"id"`
	Date          string `json:"date,omitempty"`
	Opponent      string `json:"opponent"`
	Result        string `json:"result"`
	Ground        string `json:"ground,omitempty"`
	Series        string `json:"series,omitempty"`
	MatchType     string `json:"match_type,omitempty"`
	TossWinner    string `json:"toss_winner,omitempty"`
	TossDecision  string `json:"toss_decision,omitempty"`
	PlayerOfMatch string `json:"player_of_match,omitempty"`
}

type battingViewDTO struct {
	Runs         int     `json:"runs"`
	Balls        int     `json:"balls"`
	StrikeRate   float64 `json:"strike_rate"`
	Fours        int     `json:"fours"`
	Sixes        int     `json:"sixes"`
	DotBalls     int     `json:"dot_balls"`
	TrackedBalls int     `json:"tracked_balls"`
	DotPct       float64 `json:"dot_pct"`
}

type bowlingViewDTO struct {
	Wickets      int     `json:"wickets"`
	Balls        int     `json:"balls"`
	Overs        string  `json:"overs"`
	RunsConceded int     `json:"runs_conceded"`
	Economy      float64 `json:"economy"`
	StrikeRate   float64 `json:"strike_rate"`
	DotBalls     int     `json:"dot_balls"`
	DotPct       float64 `json:"dot_pct"`
}

type playerSummaryDTO struct {
	Name       string          `json:"name"`
	Estimated  bool            `json:"estimated"`
	HasBatting bool            `json:"has_batting"`
	HasBowling bool            `json:"has_bowling"`
	Batting    *battingViewDTO `json:"batting,omitempty"`
	Bowling    *bowlingViewDTO `json:"bowling,omitempty"`
}

type leaderboardEntryDTO struct {
	Name      string  `json:"name"`
	Value     float64 `json:"value"`
	Display   string  `json:"display"`
	Estimated bool    `json:"estimated"`
}

type leaderboardDTO struct {
	Category string                `json:"category"`
	Entries  []leaderboardEntryDTO `json:"entries"`
}

type resultLineDTO struct {
	Wins   int     `json:"wins"`
	Losses int     `json:"losses"`
	Draws  int     `json:"draws"`
	Total  int     `json:"total"`
	WinPct float64 `json:"win_pct"`
}

type teamReportDTO struct {
	MatchCount    int                      `json:"match_count"`
	OverallWinPct float64                  `json:"overall_win_pct"`
	Overall       resultLineDTO            `json:"overall"`
	ByGround      map[string]resultLineDTO `json:"by_ground"`
	ByToss        map[string]resultLineDTO `json:"by_toss"`
	ByMatchType   map[string]resultLineDTO `json:"by_match_type"`
}

type dashboardDTO struct {
	Filter       filterStateDTO     `json:"filter"`
	FilterActive bool               `json:"filter_active"`
	Matches      []matchDTO         `json:"matches"`
	Players      []playerSummaryDTO `json:"players"`
	Leaderboards []leaderboardDTO   `json:"leaderboards"`
	Team         teamReportDTO      `json:"team"`
}

type positionLineDTO struct {
	Innings    int     `json:"innings"`
	Runs       int     `json:"runs"`
	Balls      int     `json:"balls"`
	Outs       int     `json:"outs"`
	StrikeRate float64 `json:"strike_rate"`
	Average    float64 `json:"average"`
}

type groundBattingDTO struct {
	Innings    int     `json:"innings"`
	Runs       int     `json:"runs"`
	Balls      int     `json:"balls"`
	StrikeRate float64 `json:"strike_rate"`
	Average    float64 `json:"average"`
}

type groundBowlingDTO struct {
	Innings int     `json:"innings"`
	Overs   string  `json:"overs"`
	Wickets int     `json:"wickets"`
	DotPct  float64 `json:"dot_pct"`
	Economy float64 `json:"economy"`
}

type recentInningsDTO struct {
	Date     string `json:"date"`
	Opponent string `json:"opponent"`
	Runs     int    `json:"runs"`
	Balls    int    `json:"balls"`
}

type recentSpellDTO struct {
	Date     string `json:"date"`
	Opponent string `json:"opponent"`
	Wickets  int    `json:"wickets"`
	Runs     int    `json:"runs"`
	Overs    string `json:"overs"`
}

type dismissalShareDTO struct {
	Count int     `json:"count"`
	Pct   float64 `json:"pct"`
}

type pomMatchDTO struct {
	MatchID  int    `json:"match_id"`
	Date     string `json:"date,omitempty"`
	Opponent string `json:"opponent,omitempty"`
}

type seasonBattingDTO struct {
	Runs         int                         `json:"runs"`
	Balls        int                         `json:"balls"`
	Fours        int                         `json:"fours"`
	Sixes        int                         `json:"sixes"`
	Outs         int                         `json:"outs"`
	StrikeRate   float64                     `json:"strike_rate"`
	Average      float64                     `json:"average"`
	DotBalls     int                         `json:"dot_balls"`
	TrackedBalls int                         `json:"tracked_balls"`
	DotPct       float64                     `json:"dot_pct"`
	BestInnings  []string                    `json:"best_innings,omitempty"`
	ByPosition   map[int]positionLineDTO     `json:"by_position,omitempty"`
	ByGround     map[string]groundBattingDTO `json:"by_ground,omitempty"`
	Recent       []recentInningsDTO          `json:"recent,omitempty"`
}

type seasonBowlingDTO struct {
	Wickets      int                         `json:"wickets"`
	Balls        int                         `json:"balls"`
	Overs        string                      `json:"overs"`
	RunsConceded int                         `json:"runs_conceded"`
	Economy      float64                     `json:"economy"`
	StrikeRate   float64                     `json:"strike_rate"`
	DotBalls     int                         `json:"dot_balls"`
	DotPct       float64                     `json:"dot_pct"`
	Wides        int                         `json:"wides"`
	NoBalls      int                         `json:"noballs"`
	BestSpells   []string                    `json:"best_spells,omitempty"`
	ByGround     map[string]groundBowlingDTO `json:"by_ground,omitempty"`
	Recent       []recentSpellDTO            `json:"recent,omitempty"`
}

type playerDetailDTO struct {
	playerSummaryDTO

	SeasonBatting seasonBattingDTO             `json:"season_batting"`
	SeasonBowling seasonBowlingDTO             `json:"season_bowling"`
	Dismissals    map[string]dismissalShareDTO `json:"dismissals,omitempty"`
	POMCount      int                          `json:"pom_count"`
	POMMatches    []pomMatchDTO                `json:"pom_matches,omitempty"`
}

func filterStateFromRequest(req sessionFilterRequest) (filter.State, error) {
	var state filter.State
	if req.DateFrom != "" {
		from, err := filter.ParseDate(req.DateFrom)
		if err != nil {
			return filter.State{}, fmt.Errorf("%w: invalid date_from: %v", usecase.ErrInvalidInput, err)
		}
		state.DateFrom = &from
	}
	if req.DateTo != "" {
		to, err := filter.ParseDate(req.DateTo)
		if err != nil {
			return filter.State{}, fmt.Errorf("%w: invalid date_to: %v", usecase.ErrInvalidInput, err)
		}
		state.DateTo = &to
	}
	if state.DateFrom != nil && state.DateTo != nil && state.DateTo.Before(*state.DateFrom) {
		return filter.State{}, fmt.Errorf("%w: date_to precedes date_from", usecase.ErrInvalidInput)
	}
	state.Series = filter.WithSeries(req.Series)
	return state, nil
}

func filterStateToDTO(ctx context.Context, state filter.State) filterStateDTO {
	dto := filterStateDTO{}
	if state.DateFrom != nil {
		dto.DateFrom = state.DateFrom.Format("2006-01-02")
	}
	if state.DateTo != nil {
		dto.DateTo = state.DateTo.Format("2006-01-02")
	}
	if len(state.Series) > 0 {
		codes := make([]string, 0, len(state.Series))
		for code := range state.Series {
			codes = append(codes, code)
		}
		sort.Strings(codes)
		dto.Series = codes
	}
	return dto
}

func matchToDTO(ctx context.Context, m match.Result) matchDTO {
	return matchDTO{
		ID:            m.ID,
		Date:          m.Date,
		Opponent:      m.Opponent,
		Result:        string(m.Outcome),
		Ground:        m.Ground,
		Series:        m.Series,
		MatchType:     m.MatchType,
		TossWinner:    m.TossWinner,
		TossDecision:  m.TossDecision,
		PlayerOfMatch: m.PlayerOfMatch,
	}
}

func playerToSummaryDTO(ctx context.Context, p usecase.PlayerView) playerSummaryDTO {
	dto := playerSummaryDTO{
		Name:       p.Name,
		Estimated:  p.Estimated,
		HasBatting: p.HasBatting,
		HasBowling: p.HasBowling,
	}
	if p.HasBatting {
		dto.Batting = &battingViewDTO{
			Runs:         p.Batting.Runs,
			Balls:        p.Batting.Balls,
			StrikeRate:   p.Batting.StrikeRate,
			Fours:        p.Batting.Fours,
			Sixes:        p.Batting.Sixes,
			DotBalls:     p.Batting.DotBalls,
			TrackedBalls: p.Batting.TrackedBalls,
			DotPct:       p.Batting.DotPct,
		}
	}
	if p.HasBowling {
		dto.Bowling = &bowlingViewDTO{
			Wickets:      p.Bowling.Wickets,
			Balls:        p.Bowling.Balls,
			Overs:        p.Bowling.Overs,
			RunsConceded: p.Bowling.RunsConceded,
			Economy:      p.Bowling.Economy,
			StrikeRate:   p.Bowling.StrikeRate,
			DotBalls:     p.Bowling.DotBalls,
			DotPct:       p.Bowling.DotPct,
		}
	}
	return dto
}

func playerToDetailDTO(ctx context.Context, p usecase.PlayerView) playerDetailDTO {
	season := p.Season

	dto := playerDetailDTO{
		playerSummaryDTO: playerToSummaryDTO(ctx, p),
		SeasonBatting:    seasonBattingToDTO(season.Batting),
		SeasonBowling:    seasonBowlingToDTO(season.Bowling),
		POMCount:         season.POMCount,
	}

	if len(season.Dismissals) > 0 {
		dto.Dismissals = make(map[string]dismissalShareDTO, len(season.Dismissals))
		for kind, share := range season.Dismissals {
			dto.Dismissals[kind] = dismissalShareDTO{Count: share.Count, Pct: share.Pct}
		}
	}
	for _, pom := range season.POMMatches {
		dto.POMMatches = append(dto.POMMatches, pomMatchDTO{
			MatchID:  pom.MatchID,
			Date:     pom.Date,
			Opponent: pom.Opponent,
		})
	}

	return dto
}

func seasonBattingToDTO(b stats.Batting) seasonBattingDTO {
	dto := seasonBattingDTO{
		Runs:         b.Runs,
		Balls:        b.Balls,
		Fours:        b.Fours,
		Sixes:        b.Sixes,
		Outs:         b.Outs,
		StrikeRate:   b.StrikeRate,
		Average:      b.Average,
		DotBalls:     b.DotBalls,
		TrackedBalls: b.TrackedBalls,
		DotPct:       b.DotPct,
		BestInnings:  b.BestInnings,
	}
	if len(b.ByPosition) > 0 {
		dto.ByPosition = make(map[int]positionLineDTO, len(b.ByPosition))
		for pos, line := range b.ByPosition {
			dto.ByPosition[pos] = positionLineDTO{
				Innings:    line.Innings,
				Runs:       line.Runs,
				Balls:      line.Balls,
				Outs:       line.Outs,
				StrikeRate: line.StrikeRate,
				Average:    line.Average,
			}
		}
	}
	if len(b.ByGround) > 0 {
		dto.ByGround = make(map[string]groundBattingDTO, len(b.ByGround))
		for ground, line := range b.ByGround {
			dto.ByGround[ground] = groundBattingDTO{
				Innings:    line.Innings,
				Runs:       line.Runs,
				Balls:      line.Balls,
				StrikeRate: line.StrikeRate,
				Average:    line.Average,
			}
		}
	}
	for _, innings := range b.Recent {
		dto.Recent = append(dto.Recent, recentInningsDTO{
			Date:     innings.Date,
			Opponent: innings.Opponent,
			Runs:     innings.Runs,
			Balls:    innings.Balls,
		})
	}
	return dto
}

func seasonBowlingToDTO(b stats.Bowling) seasonBowlingDTO {
	dto := seasonBowlingDTO{
		Wickets:      b.Wickets,
		Balls:        b.Balls,
		Overs:        b.Overs,
		RunsConceded: b.RunsConceded,
		Economy:      b.Economy,
		StrikeRate:   b.StrikeRate,
		DotBalls:     b.DotBalls,
		DotPct:       b.DotPct,
		Wides:        b.Wides,
		NoBalls:      b.NoBalls,
		BestSpells:   b.BestSpells,
	}
	if len(b.ByGround) > 0 {
		dto.ByGround = make(map[string]groundBowlingDTO, len(b.ByGround))
		for ground, line := range b.ByGround {
			dto.ByGround[ground] = groundBowlingDTO{
				Innings: line.Innings,
				Overs:   line.Overs,
				Wickets: line.Wickets,
				DotPct:  line.DotPct,
				Economy: line.Economy,
			}
		}
	}
	for _, spell := range b.Recent {
		dto.Recent = append(dto.Recent, recentSpellDTO{
			Date:     spell.Date,
			Opponent: spell.Opponent,
			Wickets:  spell.Wickets,
			Runs:     spell.Runs,
			Overs:    spell.Overs,
		})
	}
	return dto
}

func leaderboardToDTO(ctx context.Context, board usecase.Leaderboard) leaderboardDTO {
	dto := leaderboardDTO{
		Category: string(board.Category),
		Entries:  make([]leaderboardEntryDTO, 0, len(board.Entries)),
	}
	for _, entry := range board.Entries {
		dto.Entries = append(dto.Entries, leaderboardEntryDTO{
			Name:      entry.Name,
			Value:     entry.Value,
			Display:   entry.Display,
			Estimated: entry.Estimated,
		})
	}
	return dto
}

func resultLineToDTO(line usecase.ResultLine) resultLineDTO {
	return resultLineDTO{
		Wins:   line.Wins,
		Losses: line.Losses,
		Draws:  line.Draws,
		Total:  line.Total,
		WinPct: line.WinPct,
	}
}

func teamReportToDTO(ctx context.Context, report usecase.TeamReport) teamReportDTO {
	dto := teamReportDTO{
		MatchCount:    report.MatchCount,
		OverallWinPct: report.OverallWinPct,
		Overall:       resultLineToDTO(report.Overall),
		ByGround:      make(map[string]resultLineDTO, len(report.ByGround)),
		ByToss:        make(map[string]resultLineDTO, len(report.ByToss)),
		ByMatchType:   make(map[string]resultLineDTO, len(report.ByMatchType)),
	}
	for key, line := range report.ByGround {
		dto.ByGround[key] = resultLineToDTO(line)
	}
	for key, line := range report.ByToss {
		dto.ByToss[key] = resultLineToDTO(line)
	}
	for key, line := range report.ByMatchType {
		dto.ByMatchType[key] = resultLineToDTO(line)
	}
	return dto
}

func dashboardToDTO(ctx context.Context, dashboard usecase.Dashboard) dashboardDTO {
	dto := dashboardDTO{
		Filter:       filterStateToDTO(ctx, dashboard.Filter),
		FilterActive: dashboard.FilterActive,
		Matches:      make([]matchDTO, 0, len(dashboard.Matches)),
		Players:      make([]playerSummaryDTO, 0, len(dashboard.Players)),
		Leaderboards: make([]leaderboardDTO, 0, len(dashboard.Leaderboards)),
		Team:         teamReportToDTO(ctx, dashboard.Team),
	}
	for _, m := range dashboard.Matches {
		dto.Matches = append(dto.Matches, matchToDTO(ctx, m))
	}
	for _, p := range dashboard.Players {
		dto.Players = append(dto.Players, playerToSummaryDTO(ctx, p))
	}
	for _, board := range dashboard.Leaderboards {
		dto.Leaderboards = append(dto.Leaderboards, leaderboardToDTO(ctx, board))
	}
	return dto
}
