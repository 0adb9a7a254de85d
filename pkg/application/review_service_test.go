package application

import (
	"strings"
	"testing"

	"github.com/felixgeelhaar/storylint/pkg/domain/workflow"
)

func TestReviewService_ApproveRequiresRating(t *testing.T) {
	svc := NewReviewService(71)
	svc.RecordRating("story-1", 66)

	if _, err := svc.Transition("story-1", "submit"); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if _, err := svc.Transition("story-1", "approve"); err == nil {
		t.Fatal("expected approval to be blocked below threshold")
	} else if !strings.Contains(err.Error(), "below the threshold") {
		t.Errorf("unexpected error: %v", err)
	}

	svc.RecordRating("story-1", 85)
	state, err := svc.Transition("story-1", "approve")
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if state != workflow.StateReady {
		t.Errorf("state: got %q, want %q", state, workflow.StateReady)
	}
}

func TestReviewService_UnknownStoryStartsAsDraft(t *testing.T) {
	svc := NewReviewService(71)

	if state := svc.StateFor("new-story"); state != workflow.StateDraft {
		t.Errorf("got %q, want %q", state, workflow.StateDraft)
	}
}

func TestReviewService_ReworkCycle(t *testing.T) {
	svc := NewReviewService(71)
	svc.RecordRating("story-2", 40)

	steps := []struct {
		event string
		want  string
	}{
		{"submit", workflow.StateInReview},
		{"rework", workflow.StateNeedsWork},
		{"resubmit", workflow.StateInReview},
		{"withdraw", workflow.StateDraft},
	}
	for _, step := range steps {
		state, err := svc.Transition("story-2", step.event)
		if err != nil {
			t.Fatalf("transition %q: %v", step.event, err)
		}
		if state != step.want {
			t.Errorf("after %q: got %q, want %q", step.event, state, step.want)
		}
	}
}
