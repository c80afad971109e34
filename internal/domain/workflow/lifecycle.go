package workflow

import (
	"fmt"
	"sync"

	"github.com/garyjia/bill-review/internal/domain/entity"
)

// lifecycle is built on first use, once the package state maps are initialized
var lifecycle = sync.OnceValue(newLifecycleBuilder)

func newLifecycleBuilder() StateMachineBuilder {
	builder := NewBuilder()
	builder.Configure(StatePending).
		Permit(TriggerAccept, StateAccepted).
		Permit(TriggerRefuse, StateRefused)
	// accepted and refused are terminal: no transitions configured
	builder.Configure(StateAccepted)
	builder.Configure(StateRefused)
	return builder
}

// ForBill returns a lifecycle machine positioned at the bill's current status.
// Unknown statuses yield ErrInvalidState.
func ForBill(bill entity.Bill) (StateMachine, error) {
	state := State(bill.Status)
	if !state.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidState, bill.Status)
	}
	return lifecycle().Build(state), nil
}
