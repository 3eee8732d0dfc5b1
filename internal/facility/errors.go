package facility

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced by every core operation. Callers are expected
// to classify failures with errors.Is.
var (
	// ErrNotFound indicates that a staff, resident or bed identity does
	// not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyOccupied indicates that the target bed has a resident.
	ErrAlreadyOccupied = errors.New("bed already occupied")

	// ErrNotOccupied indicates that the bed has no resident.
	ErrNotOccupied = errors.New("bed not occupied")

	// ErrUnauthorized indicates that the actor's role is outside the
	// allowed set for the operation.
	ErrUnauthorized = errors.New("not authorized")

	// ErrNotOnDuty indicates that the actor has no shift covering the
	// current time.
	ErrNotOnDuty = errors.New("not on duty")

	// ErrIllegalState signals an invariant breach that the preceding
	// checks should have made unreachable. It is a programming-error
	// signal, not an expected outcome.
	ErrIllegalState = errors.New("illegal state")
)

// ComplianceError carries the description of exactly one violated
// roster rule. The roster check is fail-fast: the first violation found
// is reported and evaluation stops.
type ComplianceError struct {
	Description string
}

func (e *ComplianceError) Error() string {
	return fmt.Sprintf("compliance violation: %s", e.Description)
}
