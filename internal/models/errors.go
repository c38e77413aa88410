package models

import (
	"errors"
	"fmt"
)

// Error kinds. Every soft failure during reload or activation wraps one of
// these so callers can classify it with errors.Is.
var (
	// ErrSourceUnavailable: a metadata store, root directory or list file is missing or unreadable.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrMalformedRecord: a single record (version marker, list entry) could not be parsed.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrLaunchFailure: the process could not be started.
	ErrLaunchFailure = errors.New("launch failure")

	// ErrConfigurationMissing: no Unity Hub or editor installation was found.
	ErrConfigurationMissing = errors.New("configuration missing")

	// ErrNoLauncher: neither the required editor nor a fallback launcher exists.
	ErrNoLauncher = errors.New("no usable launcher found")
)

// Warning is a non-fatal problem found while reloading or launching.
type Warning struct {
	Kind   error
	Source string
	Err    error
}

// NewWarning creates a Warning of the given kind.
func NewWarning(kind error, source string, err error) *Warning {
	return &Warning{Kind: kind, Source: source, Err: err}
}

func (w *Warning) Error() string {
	if w.Err == nil {
		return fmt.Sprintf("%s: %s", w.Kind, w.Source)
	}
	return fmt.Sprintf("%s: %s: %v", w.Kind, w.Source, w.Err)
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (w *Warning) Unwrap() []error {
	if w.Err == nil {
		return []error{w.Kind}
	}
	return []error{w.Kind, w.Err}
}
