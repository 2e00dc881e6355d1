package llm

import (
	"context"
	"fmt"
)

// Purpose labels why a request was made. It is recorded with every request
// event and used to filter `lingodeck llm list`.
type Purpose string

const (
	PurposeDeckGeneration Purpose = "deck-generation"
	PurposeUnknown        Purpose = "unknown"
)

// Purposes lists the purposes requests are recorded under.
func Purposes() []Purpose {
	return []Purpose{PurposeDeckGeneration, PurposeUnknown}
}

// ParsePurpose accepts one of Purposes.
func ParsePurpose(s string) (Purpose, error) {
	for _, p := range Purposes() {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown purpose %q (want one of %v)", s, Purposes())
}

type purposeKey struct{}

// WithPurpose labels requests made with ctx.
func WithPurpose(ctx context.Context, p Purpose) context.Context {
	return context.WithValue(ctx, purposeKey{}, p)
}

// PurposeFrom returns the label set by WithPurpose, or PurposeUnknown.
func PurposeFrom(ctx context.Context) Purpose {
	if p, ok := ctx.Value(purposeKey{}).(Purpose); ok {
		return p
	}
	return PurposeUnknown
}
