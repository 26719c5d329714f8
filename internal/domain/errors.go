package domain

import (
	"errors"
	"fmt"
)

// ErrEmptyCommand indicates a translation produced no runnable command.
var ErrEmptyCommand = errors.New("translation produced an empty command")

// ErrNotInteractive indicates confirmation was required but no interactive
// terminal was available to ask on.
var ErrNotInteractive = errors.New("confirmation required but stdin is not a terminal")

// TranslationError reports a failed translation attempt against a model
// endpoint. It wraps the underlying cause.
type TranslationError struct {
	Model    string
	Endpoint string
	Err      error
}

func (e *TranslationError) Error() string {
	if e.Endpoint == "" {
		return fmt.Sprintf("translate with %s: %v", e.Model, e.Err)
	}
	return fmt.Sprintf("translate with %s (%s): %v", e.Model, e.Endpoint, e.Err)
}

func (e *TranslationError) Unwrap() error {
	return e.Err
}
