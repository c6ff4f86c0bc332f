package series

import (
	"regexp"
	"sort"
	"strings"
)

// Two independent naming schemes show up in scraped tournament names. The
// CricClubs league registry uses "<PREFIX>_SERIES_<N>" while the newer site
// labels read "Season <N> - <division> (<CODE>)". Both collapse to a short
// canonical code so the same tournament is selectable regardless of which
// scheme a given match carried.

var (
	leagueSeriesPattern = regexp.MustCompile(`^([A-Z0-9]+)_SERIES_(\d+)$`)
	seasonTokenPattern  = regexp.MustCompile(`(?i)\bseason\s+\d+\b`)
	parenCodePattern    = regexp.MustCompile(`\(([A-Za-z0-9]+)\)`)
)

// shortCodes maps known league registry prefixes to their display short code.
// Unknown prefixes are deliberately left alone so they stay filterable by
// their literal text.
var shortCodes = map[string]string{
	"HPT20L": "HPTL",
}

const seasonShortCode = "HUPL"

// Normalize canonicalizes a raw tournament name. Names matching neither known
// scheme pass through unchanged; there is no fuzzy matching.
func Normalize(raw string) string {
	name := strings.TrimSpace(raw)
	if name == "" {
		return name
	}

	if m := leagueSeriesPattern.FindStringSubmatch(name); m != nil {
		if code, ok := shortCodes[m[1]]; ok {
			return code + "(S" + m[2] + ")"
		}
		return name
	}

	if seasonTokenPattern.MatchString(name) {
		if m := parenCodePattern.FindStringSubmatch(name); m != nil {
			return seasonShortCode + "(" + m[1] + ")"
		}
	}

	return name
}

// Mapping is the reverse index: canonical code to the set of raw names that
// normalize to it. Built once per data load from the full match list.
type Mapping struct {
	rawsByCode map[string][]string
	codes      []string
}

// BuildMapping groups every observed raw name under its canonical code and
// registers independently supplied canonical names that were never observed
// with themselves as their only raw form, so no canonical code is ever an
// empty filter target.
func BuildMapping(rawNames, canonical []string) Mapping {
	rawsByCode := make(map[string][]string)
	seen := make(map[string]map[string]struct{})

	add := func(code, raw string) {
		if code == "" || raw == "" {
			return
		}
		if seen[code] == nil {
			seen[code] = make(map[string]struct{})
		}
		if _, dup := seen[code][raw]; dup {
			return
		}
		seen[code][raw] = struct{}{}
		rawsByCode[code] = append(rawsByCode[code], raw)
	}

	for _, raw := range rawNames {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		add(Normalize(raw), raw)
	}

	for _, name := range canonical {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		code := Normalize(name)
		if _, ok := rawsByCode[code]; !ok {
			add(code, name)
		}
	}

	codes := make([]string, 0, len(rawsByCode))
	for code := range rawsByCode {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	return Mapping{rawsByCode: rawsByCode, codes: codes}
}

// Codes returns every canonical code in sorted order.
func (m Mapping) Codes() []string {
	out := make([]string, len(m.codes))
	copy(out, m.codes)
	return out
}

// RawNames returns the raw series names registered under a canonical code.
func (m Mapping) RawNames(code string) []string {
	raws := m.rawsByCode[code]
	out := make([]string, len(raws))
	copy(out, raws)
	return out
}

// Contains reports whether the raw name belongs to one of the selected
// canonical codes.
func (m Mapping) Contains(selected map[string]struct{}, raw string) bool {
	if len(selected) == 0 {
		return true
	}
	_, ok := selected[Normalize(raw)]
	return ok
}
