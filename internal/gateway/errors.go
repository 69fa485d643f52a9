package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

// Kind classifies a gateway failure.
type Kind string

const (
	// KindTimeout means no response arrived within the call's time budget.
	KindTimeout Kind = "timeout"
	// KindNetworkUnreachable means the connection itself failed.
	KindNetworkUnreachable Kind = "network_unreachable"
	// KindUnauthorized means the backend rejected the credential (401).
	KindUnauthorized Kind = "unauthorized"
	// KindClientRejected covers 4xx responses other than 401.
	KindClientRejected Kind = "client_rejected"
	// KindServerFault covers 5xx responses.
	KindServerFault Kind = "server_fault"
)

// Error is a classified gateway failure.
type Error struct {
	Kind      Kind
	Operation string
	Status    int    // HTTP status, zero when no response was received
	Detail    string // backend-provided detail when available
	err       error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("gateway %s: %s: %s", e.Operation, e.Kind, e.Detail)
	}
	if e.err != nil {
		return fmt.Sprintf("gateway %s: %s: %v", e.Operation, e.Kind, e.err)
	}
	return fmt.Sprintf("gateway %s: %s", e.Operation, e.Kind)
}

// Unwrap returns the underlying transport error, if any.
func (e *Error) Unwrap() error {
	return e.err
}

// IsKind reports whether err is a gateway error of the given kind.
func IsKind(err error, kind Kind) bool {
	var ge *Error
	return errors.As(err, &ge) && ge.Kind == kind
}

// classifyTransport classifies an error from a request that produced no
// response: budget exceeded means timeout, anything else at the connection
// level means the network is unreachable.
func classifyTransport(operation string, err error) *Error {
	kind := KindNetworkUnreachable
	if errors.Is(err, context.DeadlineExceeded) {
		kind = KindTimeout
	} else {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			kind = KindTimeout
		}
	}
	return &Error{Kind: kind, Operation: operation, err: err}
}

// classifyStatus maps a received HTTP status to a gateway error.
func classifyStatus(operation string, status int, body []byte) *Error {
	e := &Error{Operation: operation, Status: status, Detail: extractDetail(body)}
	switch {
	case status == http.StatusUnauthorized:
		e.Kind = KindUnauthorized
	case status >= 400 && status < 500:
		e.Kind = KindClientRejected
	default:
		e.Kind = KindServerFault
	}
	return e
}

// extractDetail pulls the human-readable message out of an error body: the
// backend uses {"detail": ...}, falling back to {"message": ...} or the raw
// text.
func extractDetail(body []byte) string {
	if len(body) == 0 {
		return ""
	}

	var envelope struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		if len(envelope.Detail) > 0 {
			var s string
			if json.Unmarshal(envelope.Detail, &s) == nil {
				return s
			}
			return string(envelope.Detail)
		}
		if envelope.Message != "" {
			return envelope.Message
		}
	}

	return strings.TrimSpace(string(body))
}
