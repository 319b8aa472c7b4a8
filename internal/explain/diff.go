package explain

import (
	"html"
	"regexp"
	"strings"
)

// wordRe splits text into word tokens and single non-space symbols.
// Alternation order matters: the word branch must win at a letter.
var wordRe = regexp.MustCompile(`[A-Za-z0-9_]+|\S`)

// DiffView renders the learner's chosen text with every token that does
// not appear (case-insensitively) in the correct text wrapped in a
// highlight marker. This is a token-set membership highlight, not a
// positional alignment: each token stands alone and order is ignored.
// An empty chosen text yields a plain fallback naming the correct answer.
// Output is HTML-escaped; the only markup emitted is <mark>.
func DiffView(chosenText, correctText string) string {
	if strings.TrimSpace(chosenText) == "" {
		return "The correct answer is: " + html.EscapeString(correctText)
	}

	correctTokens := tokenSet(correctText)

	var b strings.Builder
	last := 0
	for _, loc := range wordRe.FindAllStringIndex(chosenText, -1) {
		b.WriteString(html.EscapeString(chosenText[last:loc[0]]))
		token := chosenText[loc[0]:loc[1]]
		if correctTokens[strings.ToLower(token)] {
			b.WriteString(html.EscapeString(token))
		} else {
			b.WriteString("<mark>")
			b.WriteString(html.EscapeString(token))
			b.WriteString("</mark>")
		}
		last = loc[1]
	}
	b.WriteString(html.EscapeString(chosenText[last:]))
	return b.String()
}

func tokenSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, token := range wordRe.FindAllString(text, -1) {
		set[strings.ToLower(token)] = true
	}
	return set
}
