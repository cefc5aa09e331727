package mlmodel

import "errors"

var (
	// ErrModelUnavailable means the model or codec artifacts could not be
	// loaded. Predictions must not be served in this state.
	ErrModelUnavailable = errors.New("model unavailable: train and provision the artifacts first")

	// ErrUnknownCategory is reported by a codec when a category was not
	// present at training time. Callers decide the fallback.
	ErrUnknownCategory = errors.New("unknown category")
)
