package llm

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ErrRateLimit is a 429 from the provider. RetryAfter is zero when the
// provider gave no hint.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	if e.RetryAfter <= 0 {
		return fmt.Sprintf("rate limited: %v", e.Err)
	}
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse is content that does not fit the requested schema, or
// that the caller could not turn into what it asked for. Subject names what
// was being generated, such as a deck topic, so it can be shown to the user.
type ErrInvalidResponse struct {
	Schema  string
	Subject string
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	var b strings.Builder
	b.WriteString("invalid LLM response")
	if e.Subject != "" {
		fmt.Fprintf(&b, " for %q", e.Subject)
	}
	if e.Schema != "" {
		fmt.Fprintf(&b, " (schema %s)", e.Schema)
	}
	fmt.Fprintf(&b, ": %v", e.Err)
	return b.String()
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// About returns a copy of e with Subject set.
func (e *ErrInvalidResponse) About(subject string) *ErrInvalidResponse {
	c := *e
	c.Subject = subject
	return &c
}

// ErrProviderUnavailable means the provider is down or unreachable.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded is a response cut off by the request's MaxTokens.
type ErrMaxTokensExceeded struct {
	Limit   int
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	if e.Limit > 0 {
		return fmt.Sprintf("LLM response truncated at %d tokens", e.Limit)
	}
	return "LLM response truncated: max tokens exceeded"
}
