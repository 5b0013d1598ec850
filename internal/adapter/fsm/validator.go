package fsm

import (
	"context"
	"errors"
	"strconv"

	loopfsm "github.com/looplab/fsm"

	"github.com/neomorfeo/offerforge/internal/domain"
)

// Compile-time check: Validator implements domain.StepValidator.
var _ domain.StepValidator = (*Validator)(nil)

// events converts domain.StepTransitions into looplab/fsm EventDesc
// format. Each transition keeps its own EventDesc because the same
// action leads to a different destination from every step.
var events = buildEvents()

func buildEvents() []loopfsm.EventDesc {
	out := make([]loopfsm.EventDesc, 0, len(domain.StepTransitions))
	for _, t := range domain.StepTransitions {
		out = append(out, loopfsm.EventDesc{
			Name: string(t.Action),
			Src:  []string{stepState(t.Src)},
			Dst:  stepState(t.Dst),
		})
	}
	return out
}

func stepState(s domain.Step) string {
	return strconv.Itoa(int(s))
}

// Validator implements domain.StepValidator using looplab/fsm.
// It creates a short-lived FSM instance per Apply call, initialized
// with the wizard's current step. This is necessary because
// looplab/fsm is stateful (it tracks the current state internally).
type Validator struct{}

// New creates a new FSM-backed step validator.
func New() *Validator {
	return &Validator{}
}

// Apply checks if the action is valid from the current step and returns
// the destination step. Returns a domain.NavigationError when the
// wizard is already at the relevant boundary.
func (v *Validator) Apply(ctx context.Context, current domain.Step, action domain.NavAction) (domain.Step, error) {
	machine := loopfsm.NewFSM(stepState(current), events, nil)

	if err := machine.Event(ctx, string(action)); err != nil {
		var invalidEvent loopfsm.InvalidEventError
		var noTransition loopfsm.NoTransitionError
		if errors.As(err, &invalidEvent) || errors.As(err, &noTransition) {
			return 0, &domain.NavigationError{
				Action:  action,
				Current: current,
			}
		}
		return 0, err
	}

	dst, err := strconv.Atoi(machine.Current())
	if err != nil {
		return 0, err
	}
	return domain.Step(dst), nil
}
