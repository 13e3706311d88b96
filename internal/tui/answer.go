package tui

import (
	"strings"
	"unicode"

	"github.com/verte-zerg/geodrill/internal/model"
)

// matchesAnswer compares answer against each localized name of the
// division, ignoring case, spacing and punctuation. The id is the prompt, so
// typing it back never counts.
func matchesAnswer(answer string, id model.DivisionID, names []string) bool {
	got := normalize(answer)
	if got == "" || got == normalize(string(id)) {
		return false
	}
	for _, name := range names {
		if got == normalize(name) {
			return true
		}
	}
	return false
}

func normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
