package workflow

import (
	"context"
	"errors"
	"testing"

	"github.com/garyjia/bill-review/internal/domain/entity"
)

func TestState_IsTerminal(t *testing.T) {
	tests := []struct {
		state    State
		expected bool
	}{
		{StatePending, false},
		{StateAccepted, true},
		{StateRefused, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			if got := tt.state.IsTerminal(); got != tt.expected {
				t.Errorf("State.IsTerminal() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestState_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		state    State
		expected bool
	}{
		{"pending", StatePending, true},
		{"refused", StateRefused, true},
		{"uppercase", State("PENDING"), false},
		{"empty state", State(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.IsValid(); got != tt.expected {
				t.Errorf("State.IsValid() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestState_Status(t *testing.T) {
	if got := StateAccepted.Status(); got != entity.StatusAccepted {
		t.Errorf("State.Status() = %v, want %v", got, entity.StatusAccepted)
	}
}

func TestBuilder_ConfigurePanicsOnInvalidState(t *testing.T) {
	builder := NewBuilder()

	defer func() {
		if r := recover(); r == nil {
			t.Error("Configure() should panic on invalid state")
		}
	}()

	builder.Configure(State("archived"))
}

func TestBuilder_BuildPanicsOnInvalidInitialState(t *testing.T) {
	builder := NewBuilder()

	defer func() {
		if r := recover(); r == nil {
			t.Error("Build() should panic on invalid initial state")
		}
	}()

	builder.Build(State("archived"))
}

func TestStateConfiguration_PermitPanicsOnInvalidTarget(t *testing.T) {
	builder := NewBuilder()

	defer func() {
		if r := recover(); r == nil {
			t.Error("Permit() should panic on invalid target state")
		}
	}()

	builder.Configure(StatePending).Permit(TriggerAccept, State("archived"))
}

func TestStateConfiguration_PermitIf(t *testing.T) {
	builder := NewBuilder()
	builder.Configure(StatePending).
		PermitIf(TriggerAccept, StateAccepted, func(ctx context.Context) bool { return false }).
		PermitIf(TriggerRefuse, StateRefused, func(ctx context.Context) bool { return true })

	machine := builder.Build(StatePending)

	err := machine.Fire(context.Background(), TriggerAccept)
	if !errors.Is(err, ErrGuardFailed) {
		t.Fatalf("Fire() error = %v, want %v", err, ErrGuardFailed)
	}
	if machine.State() != StatePending {
		t.Errorf("State should remain %v after failed Fire(), got %v", StatePending, machine.State())
	}

	if err := machine.Fire(context.Background(), TriggerRefuse); err != nil {
		t.Fatalf("Fire() failed: %v", err)
	}
	if machine.State() != StateRefused {
		t.Errorf("State after Fire() = %v, want %v", machine.State(), StateRefused)
	}
}

func TestStateMachine_Immutability(t *testing.T) {
	builder := NewBuilder()
	builder.Configure(StatePending).Permit(TriggerAccept, StateAccepted)

	machine1 := builder.Build(StatePending)
	machine2 := builder.Build(StatePending)

	// configuring after Build must not leak into built machines
	builder.Configure(StatePending).Permit(TriggerRefuse, StateRefused)

	if err := machine1.Fire(context.Background(), TriggerAccept); err != nil {
		t.Fatalf("Fire() failed: %v", err)
	}
	if machine2.State() != StatePending {
		t.Errorf("machine2 state = %v, want %v (machines should be independent)", machine2.State(), StatePending)
	}
	if machine2.CanFire(TriggerRefuse) {
		t.Error("machine2 should not see transitions configured after Build()")
	}
}

func TestForBill_PendingTransitions(t *testing.T) {
	tests := []struct {
		trigger Trigger
		want    State
	}{
		{TriggerAccept, StateAccepted},
		{TriggerRefuse, StateRefused},
	}

	for _, tt := range tests {
		t.Run(string(tt.trigger), func(t *testing.T) {
			machine, err := ForBill(entity.Bill{Status: entity.StatusPending})
			if err != nil {
				t.Fatalf("ForBill() failed: %v", err)
			}
			if err := machine.Fire(context.Background(), tt.trigger); err != nil {
				t.Fatalf("Fire() failed: %v", err)
			}
			if machine.State() != tt.want {
				t.Errorf("State after Fire() = %v, want %v", machine.State(), tt.want)
			}
		})
	}
}

func TestForBill_TerminalStatesRejectTransitions(t *testing.T) {
	for _, status := range []entity.Status{entity.StatusAccepted, entity.StatusRefused} {
		for _, trigger := range []Trigger{TriggerAccept, TriggerRefuse} {
			t.Run(string(status)+"/"+string(trigger), func(t *testing.T) {
				machine, err := ForBill(entity.Bill{Status: status})
				if err != nil {
					t.Fatalf("ForBill() failed: %v", err)
				}
				if machine.CanFire(trigger) {
					t.Errorf("CanFire(%s) = true from terminal state %s", trigger, status)
				}
				err = machine.Fire(context.Background(), trigger)
				if !errors.Is(err, ErrInvalidTransition) {
					t.Errorf("Fire() error = %v, want %v", err, ErrInvalidTransition)
				}
				if len(machine.PermittedTriggers()) != 0 {
					t.Errorf("PermittedTriggers() = %v, want none", machine.PermittedTriggers())
				}
			})
		}
	}
}

func TestForBill_PermittedTriggersSorted(t *testing.T) {
	machine, err := ForBill(entity.Bill{Status: entity.StatusPending})
	if err != nil {
		t.Fatalf("ForBill() failed: %v", err)
	}

	triggers := machine.PermittedTriggers()
	if len(triggers) != 2 || triggers[0] != TriggerAccept || triggers[1] != TriggerRefuse {
		t.Errorf("PermittedTriggers() = %v, want [ACCEPT REFUSE]", triggers)
	}
}

func TestForBill_UnknownStatus(t *testing.T) {
	_, err := ForBill(entity.Bill{Status: "archived"})
	if !errors.Is(err, ErrInvalidState) {
		t.Errorf("ForBill() error = %v, want %v", err, ErrInvalidState)
	}
}

func TestForBill_MachinesAreIndependent(t *testing.T) {
	if lifecycle() != lifecycle() {
		t.Fatal("lifecycle() built the configuration more than once")
	}

	first, err := ForBill(entity.Bill{Status: entity.StatusPending})
	if err != nil {
		t.Fatalf("ForBill() failed: %v", err)
	}
	second, err := ForBill(entity.Bill{Status: entity.StatusPending})
	if err != nil {
		t.Fatalf("ForBill() failed: %v", err)
	}

	if err := first.Fire(context.Background(), TriggerAccept); err != nil {
		t.Fatalf("Fire() failed: %v", err)
	}
	if second.State() != StatePending {
		t.Errorf("second machine state = %v, want %v", second.State(), StatePending)
	}
	if !second.CanFire(TriggerRefuse) {
		t.Error("second machine should still permit REFUSE")
	}
}
