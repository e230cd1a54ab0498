package generation

import (
	"errors"
	"fmt"
)

var (
	// ErrOverloadExhausted is returned when the generation service kept
	// answering 503 through every retry.
	ErrOverloadExhausted = errors.New("generation service overloaded, retries exhausted")

	// ErrEmptyGenerationResult is returned on a successful call whose text
	// payload is empty or missing.
	ErrEmptyGenerationResult = errors.New("generation returned an empty result")

	// ErrNoThemesResolved rejects a story record that yielded zero themes
	// even after the weekly-theme fallback. No story row is written for it.
	ErrNoThemesResolved = errors.New("no themes resolved for story record")
)

// TransportError is any non-overload failure from the generation service.
// It is never retried.
type TransportError struct {
	Status  int
	Message string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("generation service error (status %d): %s", e.Status, e.Message)
}
