package workflow

import "github.com/garyjia/bill-review/internal/domain/entity"

// State represents a bill state in the review lifecycle
type State string

const (
	StatePending  State = State(entity.StatusPending)
	StateAccepted State = State(entity.StatusAccepted)
	StateRefused  State = State(entity.StatusRefused)
)

// IsTerminal returns true if the state is a terminal state (no further transitions allowed)
func (s State) IsTerminal() bool {
	return s == StateAccepted || s == StateRefused
}

// String returns the string representation of the state
func (s State) String() string {
	return string(s)
}

// IsValid returns true if the state is a valid lifecycle state
func (s State) IsValid() bool {
	switch s {
	case StatePending, StateAccepted, StateRefused:
		return true
	default:
		return false
	}
}

// Status converts the state back to a bill status
func (s State) Status() entity.Status {
	return entity.Status(s)
}
