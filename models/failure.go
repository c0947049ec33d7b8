package models

import (
	"errors"
	"fmt"
)

// Failure classes. The presentation layer maps warning-class failures
// (usage mistakes) and error-class failures (backend problems) to
// different HTTP statuses and UI treatments.
var (
	// ErrValidation covers malformed input before any I/O, such as a URL
	// without scheme or host.
	ErrValidation = errors.New("validation failure")

	// ErrFetch covers network or parse errors while retrieving a URL.
	ErrFetch = errors.New("fetch failure")

	// ErrInsufficientContent means a fetch succeeded but yielded too
	// little paragraph text to analyze. Warning-class.
	ErrInsufficientContent = errors.New("insufficient content at URL")

	// ErrExtraction covers file decode/parse problems. Non-fatal: the
	// acquirer degrades to empty text.
	ErrExtraction = errors.New("file extraction failure")

	// ErrModelUnavailable means the linguistic annotator or the keyword
	// model could not run; the whole analysis degrades rather than
	// partially completing.
	ErrModelUnavailable = errors.New("analysis model unavailable")
)

// ValidationErr wraps a cause as a warning-class validation failure.
func ValidationErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// IsWarning reports whether err is a usage mistake rather than a backend
// failure.
func IsWarning(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, ErrInsufficientContent)
}
