package usecase

import (
	"context"
	"math"
	"strings"

	"github.com/cricsight/cricsight/internal/domain/match"
)

// ResultLine is one partition's win/loss/draw breakdown.
type ResultLine struct {
	Wins   int
	Losses int
	Draws  int
	Total  int
	WinPct float64
}

type TeamReport struct {
	MatchCount    int
	OverallWinPct float64
	Overall       ResultLine
	ByGround      map[string]ResultLine
	ByToss        map[string]ResultLine
	ByMatchType   map[string]ResultLine
}

type TeamReportService struct{}

func NewTeamReportService() *TeamReportService {
	return &TeamReportService{}
}

// Report computes win-rate breakdowns over the filtered match subset. A match
// missing a grouping field drops out of that dimension only; ties carry no
// winner and stay out of every win-percentage denominator.
func (s *TeamReportService) Report(ctx context.Context, matches []match.Result) TeamReport {
	_, span := startUsecaseSpan(ctx, "usecase.TeamReportService.Report")
	defer span.End()

	report := TeamReport{
		MatchCount:  len(matches),
		ByGround:    make(map[string]ResultLine),
		ByToss:      make(map[string]ResultLine),
		ByMatchType: make(map[string]ResultLine),
	}

	for _, m := range matches {
		report.Overall = tally(report.Overall, m.Outcome)

		if ground := strings.TrimSpace(m.Ground); ground != "" {
			report.ByGround[ground] = tally(report.ByGround[ground], m.Outcome)
		}
		if toss := strings.TrimSpace(m.TossDecision); toss != "" {
			report.ByToss[toss] = tally(report.ByToss[toss], m.Outcome)
		}
		if matchType := strings.TrimSpace(m.MatchType); matchType != "" {
			report.ByMatchType[matchType] = tally(report.ByMatchType[matchType], m.Outcome)
		}
	}

	report.Overall = finish(report.Overall)
	report.OverallWinPct = report.Overall.WinPct
	for k, line := range report.ByGround {
		report.ByGround[k] = finish(line)
	}
	for k, line := range report.ByToss {
		report.ByToss[k] = finish(line)
	}
	for k, line := range report.ByMatchType {
		report.ByMatchType[k] = finish(line)
	}

	return report
}

func tally(line ResultLine, outcome match.Outcome) ResultLine {
	switch outcome {
	case match.OutcomeWin:
		line.Wins++
	case match.OutcomeLoss:
		line.Losses++
	case match.OutcomeDraw:
		line.Draws++
	}
	return line
}

func finish(line ResultLine) ResultLine {
	line.Total = line.Wins + line.Losses + line.Draws
	if line.Total > 0 {
		line.WinPct = roundPct(float64(line.Wins) / float64(line.Total) * 100)
	}
	return line
}

func roundPct(v float64) float64 {
	return math.Round(v*10) / 10
}
