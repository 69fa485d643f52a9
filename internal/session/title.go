package session

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultTitle is used when no title can be derived from a question.
const DefaultTitle = "Nueva conversación"

const (
	maxTitleLength   = 50
	titleWordCount   = 5
	minTitleWordSize = 3
)

// DeriveTitle builds a display title from the first user question: strip
// punctuation, keep the first meaningful words, cap the length at a word
// boundary with an ellipsis.
func DeriveTitle(question string) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, question)

	var words []string
	for _, w := range strings.Fields(cleaned) {
		if utf8.RuneCountInString(w) >= minTitleWordSize {
			words = append(words, w)
			if len(words) == titleWordCount {
				break
			}
		}
	}
	if len(words) == 0 {
		return DefaultTitle
	}

	title := words[0]
	for _, w := range words[1:] {
		if utf8.RuneCountInString(title)+1+utf8.RuneCountInString(w) > maxTitleLength-3 {
			return title + "..."
		}
		title += " " + w
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return string([]rune(title)[:maxTitleLength-3]) + "..."
	}
	return title
}
