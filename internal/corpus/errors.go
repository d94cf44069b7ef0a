package corpus

import (
	"errors"
	"fmt"
)

// ErrUnknownFormat is returned when a corpus encoding name is not recognised.
var ErrUnknownFormat = errors.New("corpus: unknown format")

// ErrEmptyDocument is returned when the source holds no document at all.
var ErrEmptyDocument = errors.New("corpus: empty document")

// LoadError reports a corpus source that could not be read or parsed.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("corpus: load %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
