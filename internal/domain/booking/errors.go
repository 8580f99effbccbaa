package booking

import "errors"

// Selection contract violations.
var (
	ErrNoDateSelected = errors.New("no date selected")
	ErrSlotNotInDate  = errors.New("slot does not belong to the selected date")
)

// Submission failures. Local preconditions never reach the network.
var (
	ErrIncompleteSelection = errors.New("booking selection is incomplete")
	ErrUnauthenticated     = errors.New("authentication required")
	ErrSlotConflict        = errors.New("time slot is no longer available")
	ErrNetwork             = errors.New("network error")
	ErrServer              = errors.New("server error")
	ErrSubmitInProgress    = errors.New("a booking submission is already in progress")
)
