package models

import "fmt"

// IntegrityErrorKind classifies a referential-integrity violation.
type IntegrityErrorKind string

const (
	IntegrityDanglingFrom        IntegrityErrorKind = "dangling_from"
	IntegrityDanglingTo          IntegrityErrorKind = "dangling_to"
	IntegrityDuplicateActivity   IntegrityErrorKind = "duplicate_activity"
	IntegrityDuplicateTransition IntegrityErrorKind = "duplicate_transition"
	IntegrityMissingStart        IntegrityErrorKind = "missing_start"
	IntegrityMultipleStart       IntegrityErrorKind = "multiple_start"
	IntegrityMissingEnd          IntegrityErrorKind = "missing_end"
)

// IntegrityError describes one violation found by ValidateWorkflow.
type IntegrityError struct {
	Kind         IntegrityErrorKind `json:"kind"`
	ActivityID   string             `json:"activity_id,omitempty"`
	TransitionID string             `json:"transition_id,omitempty"`
	Message      string             `json:"message"`
}

func (e IntegrityError) Error() string {
	return e.Message
}

// ValidateWorkflow reports every referential-integrity violation in the
// workflow graph. The converter deliberately tolerates malformed input, so
// callers run this before persisting rather than at conversion time.
func ValidateWorkflow(w *Workflow) []IntegrityError {
	var errs []IntegrityError

	activityIDs := make(map[string]bool, len(w.Activities))
	startCount := 0
	endCount := 0

	for i := range w.Activities {
		activity := &w.Activities[i]

		if activityIDs[activity.ID] {
			errs = append(errs, IntegrityError{
				Kind:       IntegrityDuplicateActivity,
				ActivityID: activity.ID,
				Message:    fmt.Sprintf("duplicate activity id %q", activity.ID),
			})
		}

		activityIDs[activity.ID] = true

		switch activity.Type {
		case ActivityTypeStart:
			startCount++
		case ActivityTypeEnd:
			endCount++
		}
	}

	transitionIDs := make(map[string]bool, len(w.Transitions))

	for i := range w.Transitions {
		transition := &w.Transitions[i]

		if transitionIDs[transition.ID] {
			errs = append(errs, IntegrityError{
				Kind:         IntegrityDuplicateTransition,
				TransitionID: transition.ID,
				Message:      fmt.Sprintf("duplicate transition id %q", transition.ID),
			})
		}

		transitionIDs[transition.ID] = true

		if !activityIDs[transition.FromID] {
			errs = append(errs, IntegrityError{
				Kind:         IntegrityDanglingFrom,
				TransitionID: transition.ID,
				ActivityID:   transition.FromID,
				Message:      fmt.Sprintf("transition %q references missing source activity %q", transition.ID, transition.FromID),
			})
		}

		if !activityIDs[transition.ToID] {
			errs = append(errs, IntegrityError{
				Kind:         IntegrityDanglingTo,
				TransitionID: transition.ID,
				ActivityID:   transition.ToID,
				Message:      fmt.Sprintf("transition %q references missing target activity %q", transition.ID, transition.ToID),
			})
		}
	}

	switch {
	case startCount == 0:
		errs = append(errs, IntegrityError{
			Kind:    IntegrityMissingStart,
			Message: "workflow has no start activity",
		})
	case startCount > 1:
		errs = append(errs, IntegrityError{
			Kind:    IntegrityMultipleStart,
			Message: fmt.Sprintf("workflow has %d start activities, expected exactly one", startCount),
		})
	}

	if endCount == 0 {
		errs = append(errs, IntegrityError{
			Kind:    IntegrityMissingEnd,
			Message: "workflow has no end activity",
		})
	}

	return errs
}
