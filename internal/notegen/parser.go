package notegen

import (
	"encoding/json"
	"fmt"
	"strings"
)

type draftedNote struct {
	Note string `json:"note"`
}

// ParseNote extracts the drafted note from a model response, tolerating
// markdown code fences around the JSON.
func ParseNote(responseBody string) (string, error) {
	cleaned := stripCodeFences(responseBody)

	var d draftedNote
	if err := json.Unmarshal([]byte(cleaned), &d); err != nil {
		return "", fmt.Errorf("failed to parse JSON response: %w", err)
	}

	note := strings.TrimSpace(d.Note)
	if note == "" {
		return "", fmt.Errorf("response contains no note")
	}
	return note, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimSpace(strings.TrimPrefix(s, "```json"))
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimSpace(strings.TrimPrefix(s, "```"))
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "```"))
	}
	return s
}
