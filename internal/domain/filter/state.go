package filter

import (
	"sort"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// State is the session's active filter selection: an optional date range and
// an optional set of canonical series codes. It is an explicit value passed
// into every recomputation pass; there is no ambient filter state.
type State struct {
	DateFrom *time.Time
	DateTo   *time.Time
	Series   map[string]struct{} // canonical codes; empty means all
}

// WithSeries builds a selection set from canonical codes, dropping blanks.
func WithSeries(codes []string) map[string]struct{} {
	if len(codes) == 0 {
		return nil
	}
	out := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		code = strings.TrimSpace(code)
		if code == "" {
			continue
		}
		out[code] = struct{}{}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// IsZero reports whether no clause is set at all.
func (s State) IsZero() bool {
	return s.DateFrom == nil && s.DateTo == nil && len(s.Series) == 0
}

// Fingerprint is a stable cache key for the selection. Series codes are
// sorted so logically equal states always collide.
func (s State) Fingerprint() string {
	var b strings.Builder
	b.WriteString("from=")
	if s.DateFrom != nil {
		b.WriteString(s.DateFrom.Format(dateLayout))
	}
	b.WriteString(";to=")
	if s.DateTo != nil {
		b.WriteString(s.DateTo.Format(dateLayout))
	}
	b.WriteString(";series=")
	if len(s.Series) > 0 {
		codes := make([]string, 0, len(s.Series))
		for code := range s.Series {
			codes = append(codes, code)
		}
		sort.Strings(codes)
		b.WriteString(strings.Join(codes, ","))
	}
	return b.String()
}

// ParseDate parses an ISO calendar date for a filter bound.
func ParseDate(v string) (time.Time, error) {
	return time.Parse(dateLayout, strings.TrimSpace(v))
}
