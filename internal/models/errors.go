package models

import (
	"errors"
	"fmt"
)

// Error kinds. Only ErrInvalidInput (and errors wrapping it) is meant to reach API callers;
// every other kind degrades to a best-effort result.
var (
	ErrNotFound            = errors.New("record not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrTransientIO         = errors.New("transient storage error")
	ErrUpstreamUnavailable = errors.New("upstream data source unavailable")

	ErrInvalidDate           = fmt.Errorf("%w: invalid date", ErrInvalidInput)
	ErrInvalidPredictionType = fmt.Errorf("%w: invalid prediction type", ErrInvalidInput)
	ErrInvalidRating         = fmt.Errorf("%w: invalid rating", ErrInvalidInput)
)
