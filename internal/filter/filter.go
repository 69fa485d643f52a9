// Package filter enforces a user's excluded-term list before a question
// leaves the client.
package filter

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/Crimsonfv/ChatIA-Frond/internal/model"
)

// Validation limits for a candidate term.
const (
	MinTermLength = 2
	MaxTermLength = 100
)

var invalidTermChars = regexp.MustCompile(`[<>"'&]`)

// IssueCode identifies a validation violation.
type IssueCode string

const (
	IssueEmpty             IssueCode = "empty"
	IssueTooShort          IssueCode = "too_short"
	IssueTooLong           IssueCode = "too_long"
	IssueInvalidCharacters IssueCode = "invalid_characters"
)

// Issue is a single validation violation. Violations are returned as a list
// so the caller can display all of them at once.
type Issue struct {
	Code    IssueCode
	Message string
}

// Error implements the error interface.
func (i Issue) Error() string {
	return i.Message
}

// Filter provides masking and detection over free text using a user's
// excluded terms. It is stateless; term lists are passed per call so the
// caller stays the single source of truth.
type Filter struct{}

// New creates a new term filter.
func New() *Filter {
	return &Filter{}
}

// Validate checks a candidate term and returns every violation found.
// An empty result means the term is acceptable.
func (f *Filter) Validate(candidate string) []Issue {
	var issues []Issue

	trimmed := strings.TrimSpace(candidate)
	if trimmed == "" {
		issues = append(issues, Issue{
			Code:    IssueEmpty,
			Message: "term cannot be empty",
		})
		return issues
	}

	if utf8.RuneCountInString(trimmed) < MinTermLength {
		issues = append(issues, Issue{
			Code:    IssueTooShort,
			Message: fmt.Sprintf("term must have at least %d characters", MinTermLength),
		})
	}
	if utf8.RuneCountInString(trimmed) > MaxTermLength {
		issues = append(issues, Issue{
			Code:    IssueTooLong,
			Message: fmt.Sprintf("term cannot exceed %d characters", MaxTermLength),
		})
	}
	if invalidTermChars.MatchString(candidate) {
		issues = append(issues, Issue{
			Code:    IssueInvalidCharacters,
			Message: `term cannot contain the characters < > " ' &`,
		})
	}

	return issues
}

// Normalize trims, lowercases and collapses internal whitespace.
func (f *Filter) Normalize(candidate string) string {
	return strings.Join(strings.Fields(strings.ToLower(candidate)), " ")
}

// AlreadyExists reports whether the candidate's normalized form matches any
// existing term. The active flag is ignored on purpose: a soft-disabled term
// cannot be re-added under a different casing.
func (f *Filter) AlreadyExists(candidate string, terms []model.ExcludedTerm) bool {
	normalized := f.Normalize(candidate)
	for _, t := range terms {
		if f.Normalize(t.Term) == normalized {
			return true
		}
	}
	return false
}

// ListActive filters to terms with the active flag set.
func (f *Filter) ListActive(terms []model.ExcludedTerm) []model.ExcludedTerm {
	var active []model.ExcludedTerm
	for _, t := range terms {
		if t.Active {
			active = append(active, t)
		}
	}
	return active
}

// ActiveTermStrings returns the active terms as plain strings.
func (f *Filter) ActiveTermStrings(terms []model.ExcludedTerm) []string {
	var out []string
	for _, t := range f.ListActive(terms) {
		out = append(out, t.Term)
	}
	return out
}

// Mask replaces every active-term match in text with an equal-length run of
// asterisks. Matching is case-insensitive and word-boundary anchored; terms
// are applied sequentially in list order. Text without matches is returned
// unchanged.
func (f *Filter) Mask(text string, terms []model.ExcludedTerm) string {
	masked := text
	for _, t := range f.ListActive(terms) {
		re, err := termPattern(t.Term)
		if err != nil {
			continue
		}
		masked = re.ReplaceAllStringFunc(masked, func(match string) string {
			return strings.Repeat("*", utf8.RuneCountInString(match))
		})
	}
	return masked
}

// Detect reports which active terms match the text, without transforming it.
func (f *Filter) Detect(text string, terms []model.ExcludedTerm) (bool, []string) {
	var hits []string
	for _, t := range f.ListActive(terms) {
		re, err := termPattern(t.Term)
		if err != nil {
			continue
		}
		if re.MatchString(text) {
			hits = append(hits, t.Term)
		}
	}
	return len(hits) > 0, hits
}

func termPattern(term string) (*regexp.Regexp, error) {
	return regexp.Compile(`(?i)\b` + regexp.QuoteMeta(term) + `\b`)
}
