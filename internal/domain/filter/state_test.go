package filter

import (
	"testing"
	"time"
)

func TestFingerprintStableAcrossSeriesOrder(t *testing.T) {
	t.Parallel()

	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	a := State{DateFrom: &from, Series: WithSeries([]string{"HPTL(S22)", "HUPL(T20)"})}
	b := State{DateFrom: &from, Series: WithSeries([]string{"HUPL(T20)", "HPTL(S22)"})}

	if a.Fingerprint() != b.Fingerprint() {
		t.Fatalf("fingerprints differ: %q vs %q", a.Fingerprint(), b.Fingerprint())
	}
	want := "from=2025-03-01;to=;series=HPTL(S22),HUPL(T20)"
	if got := a.Fingerprint(); got != want {
		t.Fatalf("Fingerprint() = %q, want %q", got, want)
	}
}

func TestFingerprintDistinguishesStates(t *testing.T) {
	t.Parallel()

	to := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	zero := State{}
	dated := State{DateTo: &to}

	if zero.Fingerprint() == dated.Fingerprint() {
		t.Fatalf("expected distinct fingerprints")
	}
}

func TestIsZero(t *testing.T) {
	t.Parallel()

	if !(State{}).IsZero() {
		t.Fatalf("empty state must be zero")
	}
	if (State{Series: WithSeries([]string{"HPTL(S22)"})}).IsZero() {
		t.Fatalf("state with series must not be zero")
	}
}

func TestWithSeriesDropsBlanks(t *testing.T) {
	t.Parallel()

	if got := WithSeries([]string{"", "  "}); got != nil {
		t.Fatalf("expected nil for all-blank input, got %v", got)
	}
	got := WithSeries([]string{" HPTL(S22) ", "HPTL(S22)"})
	if len(got) != 1 {
		t.Fatalf("expected deduped single code, got %v", got)
	}
	if _, ok := got["HPTL(S22)"]; !ok {
		t.Fatalf("expected trimmed code, got %v", got)
	}
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	got, err := ParseDate(" 2025-03-01 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Year() != 2025 || got.Month() != time.March || got.Day() != 1 {
		t.Fatalf("unexpected date: %v", got)
	}
	if _, err := ParseDate("01/03/2025"); err == nil {
		t.Fatalf("expected error for unsupported layout")
	}
}
