package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func linearWorkflow() *Workflow {
	return &Workflow{
		ID:   "wf1",
		Name: "linear",
		Activities: []Activity{
			{ID: "a", Type: ActivityTypeStart},
			{ID: "b", Type: ActivityTypeEnd},
		},
		Transitions: []Transition{
			{ID: "t", FromID: "a", ToID: "b", Type: TransitionTypeStandard},
		},
	}
}

func TestValidateWorkflow_WellFormed(t *testing.T) {
	assert.Empty(t, ValidateWorkflow(linearWorkflow()))
}

func kindsOf(errs []IntegrityError) []IntegrityErrorKind {
	kinds := make([]IntegrityErrorKind, 0, len(errs))
	for _, e := range errs {
		kinds = append(kinds, e.Kind)
	}

	return kinds
}

func TestValidateWorkflow_DanglingReferences(t *testing.T) {
	workflow := linearWorkflow()
	workflow.Transitions = append(workflow.Transitions, Transition{
		ID:     "t2",
		FromID: "ghost",
		ToID:   "phantom",
		Type:   TransitionTypeStandard,
	})

	errs := ValidateWorkflow(workflow)
	require.Len(t, errs, 2)
	assert.Contains(t, kindsOf(errs), IntegrityDanglingFrom)
	assert.Contains(t, kindsOf(errs), IntegrityDanglingTo)
	assert.Equal(t, "t2", errs[0].TransitionID)
}

func TestValidateWorkflow_StartEndCardinality(t *testing.T) {
	tests := []struct {
		name     string
		types    []ActivityType
		expected []IntegrityErrorKind
	}{
		{
			name:     "no start",
			types:    []ActivityType{ActivityTypeEnd},
			expected: []IntegrityErrorKind{IntegrityMissingStart},
		},
		{
			name:     "two starts",
			types:    []ActivityType{ActivityTypeStart, ActivityTypeStart, ActivityTypeEnd},
			expected: []IntegrityErrorKind{IntegrityMultipleStart},
		},
		{
			name:     "no end",
			types:    []ActivityType{ActivityTypeStart, ActivityTypeSystem},
			expected: []IntegrityErrorKind{IntegrityMissingEnd},
		},
		{
			name:     "empty workflow",
			types:    nil,
			expected: []IntegrityErrorKind{IntegrityMissingStart, IntegrityMissingEnd},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			workflow := &Workflow{ID: "wf1", Name: "w"}
			for _, at := range tt.types {
				workflow.Activities = append(workflow.Activities, Activity{
					ID:   GenerateID("a"),
					Type: at,
				})
			}

			assert.Equal(t, tt.expected, kindsOf(ValidateWorkflow(workflow)))
		})
	}
}

func TestValidateWorkflow_DuplicateIDs(t *testing.T) {
	workflow := linearWorkflow()
	workflow.Activities = append(workflow.Activities, Activity{ID: "a", Type: ActivityTypeSystem})
	workflow.Transitions = append(workflow.Transitions, Transition{ID: "t", FromID: "a", ToID: "b"})

	kinds := kindsOf(ValidateWorkflow(workflow))
	assert.Contains(t, kinds, IntegrityDuplicateActivity)
	assert.Contains(t, kinds, IntegrityDuplicateTransition)
}
