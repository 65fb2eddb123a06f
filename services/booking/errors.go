package booking

import (
	"errors"
	"fmt"
	"strings"

	"ninjaservices/services/scheduling"
)

// ErrSessionNotFound is returned when a booking session has expired or
// never existed.
var ErrSessionNotFound = errors.New("booking session not found or expired")

// InfeasibleError reports that a slot block could not be satisfied within
// the allocator's visible horizon. The partial result is attached for the
// UI to surface.
type InfeasibleError struct {
	Result scheduling.BlockResult
}

func (e *InfeasibleError) Error() string {
	return fmt.Sprintf("cannot satisfy slot request: %s", e.Result.Reason)
}

// SeriesConflictError reports recurring dates without provider capacity.
// The UI is expected to force replacement of exactly these dates.
type SeriesConflictError struct {
	ConflictingDates []string
	Advisory         string
}

func (e *SeriesConflictError) Error() string {
	return fmt.Sprintf("recurring series has conflicts on: %s", strings.Join(e.ConflictingDates, ", "))
}
