package session

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Heavy-query heuristics. A long or broad question is flagged so the
// presentation layer can soften its waiting message once the send has been
// running for a while. The flag never changes timeout behavior.
const (
	heavyQuestionLength = 100
	stillWorkingAfter   = 15 * time.Second
)

// heavyQueryKeywords are broad/explanatory request markers in the product's
// language.
var heavyQueryKeywords = []string{
	"todos", "todas", "lista", "listar", "muestra",
	"explica", "compara", "historia", "historial", "resumen",
}

// Status is the UI-facing projection of the send state. It is derived, never
// stored; recompute it on a fixed interval while a send is outstanding.
type Status struct {
	// IsTyping is true while a send is in flight.
	IsTyping bool
	// ElapsedSeconds is the age of the in-flight send; zero when idle.
	ElapsedSeconds int
	// IsHeavyQuery flags a question likely to take longer to answer.
	IsHeavyQuery bool
	// StillWorking is true once a heavy query has been running past the
	// threshold: show "the backend is still working" rather than a spinner.
	StillWorking bool
}

// ProjectStatus derives the status indicators from the in-flight send.
func ProjectStatus(sending *SendOperation, now time.Time) Status {
	if sending == nil {
		return Status{}
	}

	elapsed := now.Sub(sending.StartedAt)
	if elapsed < 0 {
		elapsed = 0
	}
	heavy := IsHeavyQuery(sending.Question)

	return Status{
		IsTyping:       true,
		ElapsedSeconds: int(elapsed / time.Second),
		IsHeavyQuery:   heavy,
		StillWorking:   heavy && elapsed >= stillWorkingAfter,
	}
}

// IsHeavyQuery reports whether a question looks like a broad or explanatory
// request: long text, or any of the known keywords.
func IsHeavyQuery(question string) bool {
	trimmed := strings.TrimSpace(question)
	if utf8.RuneCountInString(trimmed) > heavyQuestionLength {
		return true
	}

	lowered := strings.ToLower(trimmed)
	for _, keyword := range heavyQueryKeywords {
		if containsWord(lowered, keyword) {
			return true
		}
	}
	return false
}

// containsWord reports whether text contains word as a whole token.
func containsWord(text, word string) bool {
	for _, token := range strings.FieldsFunc(text, func(r rune) bool {
		return !isWordRune(r)
	}) {
		if token == word {
			return true
		}
	}
	return false
}

func isWordRune(r rune) bool {
	return r == '_' ||
		('a' <= r && r <= 'z') || ('0' <= r && r <= '9') ||
		('A' <= r && r <= 'Z') || r > 127
}

// Status returns the controller's current status projection.
func (c *Controller) Status() Status {
	c.mu.Lock()
	sending := c.sending
	c.mu.Unlock()
	return ProjectStatus(sending, c.now())
}
