package llm

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// Kind classifies why a model call failed. Callers branch on it through KindOf.
type Kind string

const (
	KindNotConfigured Kind = "not_configured"
	KindTransport     Kind = "transport"
	KindStatus        Kind = "status"
	KindMalformed     Kind = "malformed"
	KindEmpty         Kind = "empty"
)

// ErrNotConfigured is wrapped by every KindNotConfigured error.
var ErrNotConfigured = errors.New("model service not configured")

// Error is the failure signal of the adapter. It never escapes the public
// entry points of the categorizer or the assistant.
type Error struct {
	Op         string
	Kind       Kind
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("llm %s: %s (status %d): %v", e.Op, e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("llm %s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of err, or "" when err is not an adapter error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// classify maps go-openai and transport errors onto the adapter taxonomy.
func classify(op string, err error) *Error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &Error{Op: op, Kind: KindStatus, StatusCode: apiErr.HTTPStatusCode, Err: err}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &Error{Op: op, Kind: KindStatus, StatusCode: reqErr.HTTPStatusCode, Err: err}
	}
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return &Error{Op: op, Kind: KindMalformed, Err: err}
	}
	return &Error{Op: op, Kind: KindTransport, Err: err}
}
