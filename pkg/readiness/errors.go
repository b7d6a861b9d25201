package readiness

import "errors"

// ErrAttemptsExhausted is returned when a dependency does not become ready
// within its attempt budget.
var ErrAttemptsExhausted = errors.New("attempts exhausted")

// ErrCancelled is returned when polling is aborted by context cancellation.
var ErrCancelled = errors.New("readiness polling cancelled")
