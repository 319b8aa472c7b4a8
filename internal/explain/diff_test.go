package explain

import (
	"strings"
	"testing"
)

func TestDiffViewHighlightsChosenOnlyTokens(t *testing.T) {
	got := DiffView("returns a copy", "returns a new list")

	if !strings.Contains(got, "<mark>copy</mark>") {
		t.Errorf("token unique to the chosen text not highlighted: %q", got)
	}
	if strings.Contains(got, "<mark>returns</mark>") || strings.Contains(got, "<mark>a</mark>") {
		t.Errorf("shared token was highlighted: %q", got)
	}
}

func TestDiffViewCaseInsensitive(t *testing.T) {
	got := DiffView("Sorted returns", "sorted RETURNS")
	if strings.Contains(got, "<mark>") {
		t.Errorf("case-variant tokens should match: %q", got)
	}
}

func TestDiffViewEmptyChosenFallback(t *testing.T) {
	got := DiffView("", "tuple is immutable")
	want := "The correct answer is: tuple is immutable"
	if got != want {
		t.Errorf("DiffView(\"\", ...) = %q, want %q", got, want)
	}

	// Whitespace-only counts as unanswered too.
	got = DiffView("   ", "tuple is immutable")
	if got != want {
		t.Errorf("DiffView(blank, ...) = %q, want %q", got, want)
	}
}

func TestDiffViewEscapesHTML(t *testing.T) {
	got := DiffView("x < 1", "x >= 1")
	if strings.Contains(got, "< 1") || strings.Contains(got, "<1") {
		t.Errorf("raw < leaked into markup: %q", got)
	}
	if !strings.Contains(got, "&lt;") {
		t.Errorf("expected escaped <: %q", got)
	}
}

func TestDiffViewSymbolsStandAlone(t *testing.T) {
	// "(" appears in both; "print" only in the chosen text.
	got := DiffView("print(x)", "len(x)")
	if !strings.Contains(got, "<mark>print</mark>") {
		t.Errorf("chosen-only word not highlighted: %q", got)
	}
	if strings.Contains(got, "<mark>(</mark>") || strings.Contains(got, "<mark>x</mark>") {
		t.Errorf("shared symbol or word highlighted: %q", got)
	}
}

func TestDiffViewDeterministic(t *testing.T) {
	a, b := "zip stops at the longer input", "zip stops at the shorter input"
	first := DiffView(a, b)
	for i := 0; i < 5; i++ {
		if got := DiffView(a, b); got != first {
			t.Fatalf("DiffView is not deterministic: %q vs %q", got, first)
		}
	}
}
