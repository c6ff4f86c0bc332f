package match

import "testing"

func TestKeyOf(t *testing.T) {
	t.Parallel()

	if _, ok := KeyOf("", "Rivals CC"); ok {
		t.Fatalf("expected blank date to be unjoinable")
	}
	if _, ok := KeyOf("2025-03-01", ""); ok {
		t.Fatalf("expected blank opponent to be unjoinable")
	}
	key, ok := KeyOf(" 2025-03-01 ", " Rivals CC ")
	if !ok {
		t.Fatalf("expected joinable key")
	}
	if key.Date != "2025-03-01" || key.Opponent != "Rivals CC" {
		t.Fatalf("unexpected key: %+v", key)
	}
}

func TestResultParsedDate(t *testing.T) {
	t.Parallel()

	r := Result{Date: "2025-03-01"}
	parsed, ok := r.ParsedDate()
	if !ok {
		t.Fatalf("expected parseable date")
	}
	if parsed.Year() != 2025 {
		t.Fatalf("unexpected year: %d", parsed.Year())
	}

	if _, ok := (Result{Date: "sometime"}).ParsedDate(); ok {
		t.Fatalf("expected malformed date to report not-ok")
	}
}

func TestResultHasOutcome(t *testing.T) {
	t.Parallel()

	if (Result{}).HasOutcome() {
		t.Fatalf("blank outcome must report false")
	}
	if !(Result{Outcome: OutcomeWin}).HasOutcome() {
		t.Fatalf("win outcome must report true")
	}
}
