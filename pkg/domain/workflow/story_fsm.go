// Package workflow models the review lifecycle of a story as a state
// machine: a story is drafted, submitted for review, and either promoted to
// ready or sent back for rework based on its readiness rating.
package workflow

import (
	"fmt"

	"github.com/felixgeelhaar/statekit"
)

// Review states for a story.
const (
	StateDraft     = "draft"
	StateInReview  = "in_review"
	StateNeedsWork = "needs_work"
	StateReady     = "ready"
)

// ReviewContext carries state data.
type ReviewContext struct {
	StoryID string
	Guard   func(storyID string, event string) bool
}

// ReviewStateMachine defines the valid review transitions and rules.
type ReviewStateMachine struct {
	interpreter *statekit.Interpreter[ReviewContext]
}

// NewReviewStateMachine builds a review machine starting at initialState.
// The guard is consulted on promotion events (approve); a nil guard allows
// everything.
func NewReviewStateMachine(initialState string, storyID string, guard func(string, string) bool) (*ReviewStateMachine, error) {
	if guard == nil {
		guard = func(string, string) bool { return true }
	}

	builder := statekit.NewMachine[ReviewContext]("story-review").
		WithInitial(statekit.StateID(initialState)).
		WithContext(ReviewContext{
			StoryID: storyID,
			Guard:   guard,
		}).
		WithGuard("readinessGuard", func(ctx ReviewContext, e statekit.Event) bool {
			return ctx.Guard(ctx.StoryID, string(e.Type))
		})

	builder.State(StateDraft).
		On("submit").Target(StateInReview).
		Done()

	builder.State(StateInReview).
		On("approve").Target(StateReady).Guard("readinessGuard").
		On("rework").Target(StateNeedsWork).
		On("withdraw").Target(StateDraft).
		Done()

	builder.State(StateNeedsWork).
		On("resubmit").Target(StateInReview).
		Done()

	builder.State(StateReady).
		On("reopen").Target(StateDraft).
		Done()

	machine, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build review state machine: %w", err)
	}

	interpreter := statekit.NewInterpreter(machine)
	interpreter.Start()

	return &ReviewStateMachine{interpreter: interpreter}, nil
}

// Transition attempts to move the story review to a new state.
func (sm *ReviewStateMachine) Transition(event string) error {
	before := sm.Current()
	sm.interpreter.Send(statekit.Event{Type: statekit.EventType(event)})
	after := sm.Current()

	if before != after {
		return nil
	}

	// No transition matched or a guard rejected it; either way the state is
	// unchanged and the event was not applicable.
	return fmt.Errorf("the action '%s' is not allowed while the story is in the '%s' state", event, before)
}

// Current returns the current review state.
func (sm *ReviewStateMachine) Current() string {
	return string(sm.interpreter.State().Value)
}
