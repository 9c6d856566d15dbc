// Package id generates request and trace identifiers.
package id

import (
	"github.com/google/uuid"
)

// New returns a time-ordered UUIDv7 string, so request IDs sort by arrival in logs.
func New() string {
	v, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return v.String()
}

// Valid reports whether s is a UUID accepted as an incoming request or trace ID.
func Valid(s string) bool {
	return uuid.Validate(s) == nil
}

// OrNew returns s when it is a valid UUID, otherwise a fresh ID.
// Caller-supplied headers are echoed back, so arbitrary text is not trusted.
func OrNew(s string) string {
	if s != "" && Valid(s) {
		return s
	}
	return New()
}
