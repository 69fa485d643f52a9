package session

import (
	"errors"
	"fmt"

	"github.com/Crimsonfv/ChatIA-Frond/internal/filter"
)

// ErrBusy signals that a send was attempted while another is in flight. It is
// a no-op condition, not a failure: nothing was mutated and nothing was sent.
var ErrBusy = errors.New("a send is already in flight")

// ErrTermExists signals that a candidate excluded term already exists in some
// casing, active or not.
var ErrTermExists = errors.New("term is already excluded")

// Message validation limits.
const (
	MinQuestionLength = 3
	MaxQuestionLength = 1000
)

// ValidationError reports every violation found in user input, so the caller
// can display all of them at once. Nothing was sent.
type ValidationError struct {
	Issues []filter.Issue
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "validation failed"
	}
	return "validation failed: " + e.Issues[0].Message
}

// SendFailedError wraps a classified gateway failure from a send. It carries
// the original question so the caller can restore the input for retry.
type SendFailedError struct {
	Question string
	Err      error
}

// Error implements the error interface.
func (e *SendFailedError) Error() string {
	return fmt.Sprintf("send failed: %v", e.Err)
}

// Unwrap returns the classified gateway error.
func (e *SendFailedError) Unwrap() error {
	return e.Err
}
