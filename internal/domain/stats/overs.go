package stats

import (
	"strconv"
	"strings"
)

// Overs notation is base-6 in the fractional digit: "2.3" means 2 whole overs
// plus 3 legal deliveries (15 balls), never 2.3 overs. The digit is clamped to
// 0..5 the same way the exporter clamps it.

// BallsFromOvers converts overs notation to a legal-delivery count. Accepts
// "12", "12.4" and the numeric spellings the exporter emits ("12.0", "12.40"
// truncates to the first fractional digit).
func BallsFromOvers(overs string) int {
	s := strings.TrimSpace(overs)
	if s == "" {
		return 0
	}

	whole := s
	partial := 0
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		whole = s[:dot]
		frac := s[dot+1:]
		if frac != "" {
			d := int(frac[0] - '0')
			if d < 0 || d > 9 {
				d = 0
			}
			if d > 5 {
				d = 5
			}
			partial = d
		}
	}

	o, err := strconv.Atoi(whole)
	if err != nil || o < 0 {
		o = 0
	}

	return o*6 + partial
}

// OversFromBalls renders a legal-delivery count back to overs notation.
// Whole overs render without the fractional digit ("4", not "4.0").
func OversFromBalls(balls int) string {
	if balls <= 0 {
		return "0"
	}
	o, b := balls/6, balls%6
	if b == 0 {
		return strconv.Itoa(o)
	}
	return strconv.Itoa(o) + "." + strconv.Itoa(b)
}

// StrikeRateValue is runs per hundred balls; 0 when no balls were faced.
func StrikeRateValue(runs, balls int) float64 {
	if balls <= 0 {
		return 0
	}
	return float64(runs) / float64(balls) * 100
}

// EconomyValue is runs conceded per over of legal deliveries; 0 when no
// deliveries were bowled.
func EconomyValue(runsConceded, balls int) float64 {
	if balls <= 0 {
		return 0
	}
	return float64(runsConceded) / float64(balls) * 6
}

// BowlingStrikeRateValue is legal deliveries per wicket; 0 when wicketless.
func BowlingStrikeRateValue(balls, wickets int) float64 {
	if wickets <= 0 {
		return 0
	}
	return float64(balls) / float64(wickets)
}

// AverageValue is runs per dismissal; 0 when never out.
func AverageValue(runs, outs int) float64 {
	if outs <= 0 {
		return 0
	}
	return float64(runs) / float64(outs)
}
