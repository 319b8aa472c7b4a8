package explain

import (
	"regexp"
	"strings"
)

// DefaultMaxHints caps how many hints accompany one wrong answer.
const DefaultMaxHints = 3

// hintKB maps keywords found in question text to one-line reminders.
// Keys are plain identifiers, dotted names, or the normalized "slice".
var hintKB = map[string]string{
	"sorted":    "sorted(iterable, ...) returns a new list; the original is left unchanged.",
	"list.sort": "list.sort() sorts in place and returns None.",
	"enumerate": "enumerate(iterable) yields (index, value) pairs.",
	"zip":       "zip(a, b) yields tuples and stops at the shorter input.",
	"range":     "range is lazy; wrap it in list(range(...)) to materialize.",
	"dict":      "dict keys are unique; insertion order is preserved since 3.7.",
	"set":       "set holds unique, unordered elements; use in for fast membership tests.",
	"tuple":     "tuple is immutable.",
	"slice":     "s[a:b:c] is slice notation; [::-1] reverses a sequence.",
	"len":       "len(x) returns the element count; custom types implement __len__.",
	"open":      "with open(...) as f closes the file automatically at block exit.",
	"with":      "with drives a context manager (__enter__/__exit__).",
}

// hintTokenRe picks up identifiers, dotted names, and the two slice
// literals ([:] and [::-1], whitespace-tolerant).
var hintTokenRe = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*(?:\.[A-Za-z_][A-Za-z0-9_]*)?|\[\s*:\s*\]|\[\s*:\s*:\s*-\s*1\s*\]`)

var spaceStripper = strings.NewReplacer(" ", "", "\t", "")

// ExtractHints scans the stem and the correct answer text for keywords
// known to the hint knowledge base and returns up to maxItems hints in
// first-occurrence order. A keyword contributes at most once no matter
// how often it repeats.
func ExtractHints(stem, correctText string, maxItems int) []string {
	if maxItems <= 0 {
		maxItems = DefaultMaxHints
	}

	text := stem + "\n" + correctText
	seen := make(map[string]bool)
	var hints []string

	for _, raw := range hintTokenRe.FindAllString(text, -1) {
		key := normalizeToken(raw, text)
		hint, ok := hintKB[key]
		if !ok || seen[key] {
			continue
		}
		seen[key] = true
		hints = append(hints, hint)
		if len(hints) >= maxItems {
			break
		}
	}
	return hints
}

func normalizeToken(token, text string) string {
	switch spaceStripper.Replace(token) {
	case "[::-1]", "[:]":
		return "slice"
	}
	// Prefer the dotted form when the text spells it out.
	if token == "sort" && strings.Contains(text, "list.sort") {
		return "list.sort"
	}
	return token
}
