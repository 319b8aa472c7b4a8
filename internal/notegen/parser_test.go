package notegen

import (
	"strings"
	"testing"

	"github.com/pycert-prep/backend/internal/models"
)

func TestParseNote(t *testing.T) {
	note, err := ParseNote(`{"note": "sorted returns a new list."}`)
	if err != nil {
		t.Fatalf("ParseNote: %v", err)
	}
	if note != "sorted returns a new list." {
		t.Errorf("note = %q", note)
	}
}

func TestParseNoteStripsCodeFences(t *testing.T) {
	inputs := []string{
		"```json\n{\"note\": \"tuple is immutable.\"}\n```",
		"```\n{\"note\": \"tuple is immutable.\"}\n```",
		"  {\"note\": \"tuple is immutable.\"}  ",
	}
	for _, in := range inputs {
		note, err := ParseNote(in)
		if err != nil {
			t.Errorf("ParseNote(%q): %v", in, err)
			continue
		}
		if note != "tuple is immutable." {
			t.Errorf("ParseNote(%q) = %q", in, note)
		}
	}
}

func TestParseNoteRejectsBadPayloads(t *testing.T) {
	for _, in := range []string{
		"not json at all",
		`{"note": ""}`,
		`{"note": "   "}`,
		`{}`,
	} {
		if _, err := ParseNote(in); err == nil {
			t.Errorf("ParseNote(%q) should fail", in)
		}
	}
}

func TestBuildUserPromptMarksCorrectChoices(t *testing.T) {
	q := &models.Question{
		Kind: models.KindSingle,
		Stem: "What does len('abc') return?",
		Choices: []models.Choice{
			{Text: "3", IsCorrect: true},
			{Text: "2", IsCorrect: false},
		},
	}

	prompt := BuildUserPrompt(q)
	if !strings.Contains(prompt, "What does len('abc') return?") {
		t.Error("prompt is missing the stem")
	}
	if !strings.Contains(prompt, "* 1. 3") {
		t.Error("correct choice is not marked")
	}
	if !strings.Contains(prompt, "  2. 2") {
		t.Error("wrong choice should be unmarked")
	}
}
