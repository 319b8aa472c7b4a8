package notegen

import (
	"fmt"
	"strings"

	"github.com/pycert-prep/backend/internal/models"
)

func SystemPrompt() string {
	return `You write short explanation notes for Python certification practice questions.

A note explains why the correct choice is right in 2-4 sentences, in plain
English, citing the exact Python behavior involved (return values,
mutability, evaluation order). Never restate the question, never mention
the wrong choices by letter, never use filler like "as you can see".

Respond with JSON only, no markdown fences:
{"note": "..."}`
}

// BuildUserPrompt renders one question with its choices, the correct
// ones marked, for the drafting model.
func BuildUserPrompt(q *models.Question) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Question (kind: %s):\n%s\n\nChoices:\n", q.Kind, q.Stem)
	for i, c := range q.Choices {
		marker := " "
		if c.IsCorrect {
			marker = "*"
		}
		fmt.Fprintf(&b, "%s %d. %s\n", marker, i+1, c.Text)
	}
	b.WriteString("\nChoices marked with * are correct. Write the note.")
	return b.String()
}
