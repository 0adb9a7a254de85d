package application

import (
	"fmt"
	"sync"

	"github.com/felixgeelhaar/storylint/pkg/domain/workflow"
)

// ReviewService tracks the review lifecycle of stories across repeated
// analyses. State is held in memory for the lifetime of the process; past
// analyses themselves are never persisted.
type ReviewService struct {
	approveThreshold int

	mu      sync.Mutex
	states  map[string]string
	ratings map[string]int
}

// NewReviewService creates a review service. Stories can only be approved
// once their latest readiness rating meets approveThreshold.
func NewReviewService(approveThreshold int) *ReviewService {
	return &ReviewService{
		approveThreshold: approveThreshold,
		states:           make(map[string]string),
		ratings:          make(map[string]int),
	}
}

// RecordRating stores the latest readiness rating for a story. New stories
// start in the draft state.
func (s *ReviewService) RecordRating(storyID string, rating int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ratings[storyID] = rating
	if _, ok := s.states[storyID]; !ok {
		s.states[storyID] = workflow.StateDraft
	}
}

// StateFor returns the current review state of a story.
func (s *ReviewService) StateFor(storyID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if state, ok := s.states[storyID]; ok {
		return state
	}
	return workflow.StateDraft
}

// Transition applies a review event to a story. Approval is guarded by the
// story's latest readiness rating.
func (s *ReviewService) Transition(storyID, event string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.states[storyID]
	if !ok {
		current = workflow.StateDraft
	}

	guard := func(id, evt string) bool {
		if evt != "approve" {
			return true
		}
		return s.ratings[id] >= s.approveThreshold
	}

	sm, err := workflow.NewReviewStateMachine(current, storyID, guard)
	if err != nil {
		return current, fmt.Errorf("build review machine: %w", err)
	}

	if err := sm.Transition(event); err != nil {
		if event == "approve" && s.ratings[storyID] < s.approveThreshold {
			return current, fmt.Errorf("story '%s' cannot be approved: readiness rating %d is below the threshold of %d", storyID, s.ratings[storyID], s.approveThreshold)
		}
		return current, err
	}

	s.states[storyID] = sm.Current()
	return sm.Current(), nil
}
