package explain

import (
	"reflect"
	"testing"
)

func TestExtractHintsFirstOccurrenceOrder(t *testing.T) {
	stem := "What does zip return when paired against enumerate?"
	correct := "zip yields tuples; sorted is unrelated"

	got := ExtractHints(stem, correct, 3)
	want := []string{hintKB["zip"], hintKB["enumerate"], hintKB["sorted"]}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractHints = %v, want %v", got, want)
	}
}

func TestExtractHintsCap(t *testing.T) {
	text := "sorted zip enumerate range dict set tuple len"

	got := ExtractHints(text, "", 3)
	if len(got) != 3 {
		t.Errorf("got %d hints, want at most 3", len(got))
	}

	got = ExtractHints(text, "", 5)
	if len(got) != 5 {
		t.Errorf("got %d hints, want 5", len(got))
	}
}

func TestExtractHintsNoRepeats(t *testing.T) {
	got := ExtractHints("zip zip zip", "zip again: zip", 3)
	want := []string{hintKB["zip"]}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("repeated keyword produced %v, want %v", got, want)
	}
}

func TestExtractHintsSliceNotation(t *testing.T) {
	for _, literal := range []string{"[::-1]", "[:]", "[ : ]", "[: : -1]"} {
		got := ExtractHints("What does s"+literal+" do?", "", 3)
		want := []string{hintKB["slice"]}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("literal %q: got %v, want %v", literal, got, want)
		}
	}
}

func TestExtractHintsDottedSortPreferred(t *testing.T) {
	got := ExtractHints("Compare sort and list.sort here", "", 3)
	want := []string{hintKB["list.sort"]}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestExtractHintsNoMatches(t *testing.T) {
	got := ExtractHints("Nothing relevant here", "still nothing", 3)
	if len(got) != 0 {
		t.Errorf("got %v, want no hints", got)
	}
}

func TestExtractHintsDefaultCap(t *testing.T) {
	text := "sorted zip enumerate range dict"
	got := ExtractHints(text, "", 0)
	if len(got) != DefaultMaxHints {
		t.Errorf("maxItems<=0 should fall back to %d, got %d hints", DefaultMaxHints, len(got))
	}
}

func TestExtractHintsDeterministic(t *testing.T) {
	stem, correct := "zip and dict and set", "tuple len open"
	first := ExtractHints(stem, correct, 3)
	for i := 0; i < 5; i++ {
		if got := ExtractHints(stem, correct, 3); !reflect.DeepEqual(got, first) {
			t.Fatalf("ExtractHints is not deterministic: %v vs %v", got, first)
		}
	}
}
