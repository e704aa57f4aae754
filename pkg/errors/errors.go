// Package errors defines the sentinel errors shared across the engine and a
// wrapping AppError carrying a human-readable message.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrArtifactMissing is returned when a persisted index artifact does
	// not exist. Querying cannot proceed without it; the caller must
	// rebuild first.
	ErrArtifactMissing = errors.New("prerequisite artifact missing, rebuild required")
	// ErrArtifactCorrupt is returned when a persisted artifact fails
	// magic, version, kind, or checksum validation.
	ErrArtifactCorrupt = errors.New("artifact corrupt")
	// ErrEmbeddingsMissing is returned when the trimmed embedding model
	// does not exist; query expansion needs a trim run first.
	ErrEmbeddingsMissing = errors.New("embedding model missing, trim required")
	ErrInvalidInput      = errors.New("invalid input")
)

type AppError struct {
	Err     error
	Message string
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func Newf(sentinel error, format string, args ...any) *AppError {
	return &AppError{
		Err:     sentinel,
		Message: fmt.Sprintf(format, args...),
	}
}

// IsFatalArtifact reports whether err means a required on-disk artifact is
// absent or unreadable, which ends the query session.
func IsFatalArtifact(err error) bool {
	return errors.Is(err, ErrArtifactMissing) ||
		errors.Is(err, ErrArtifactCorrupt) ||
		errors.Is(err, ErrEmbeddingsMissing)
}
