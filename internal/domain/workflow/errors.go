package workflow

import "errors"

var (
	// ErrInvalidTransition is returned when a bill cannot leave its current status with the given trigger
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrInvalidState is returned for a status outside the bill lifecycle
	ErrInvalidState = errors.New("unknown bill status")

	// ErrGuardFailed is returned when every guard of a trigger rejected the transition
	ErrGuardFailed = errors.New("guard condition failed")
)
