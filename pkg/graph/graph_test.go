package graph

import (
	"testing"

	"github.com/canvaslab/flowcanvas/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestNodeTypeFor(t *testing.T) {
	tests := []struct {
		activityType models.ActivityType
		expected     string
	}{
		{models.ActivityTypeStart, NodeTypeStart},
		{models.ActivityTypeEnd, NodeTypeEnd},
		{models.ActivityTypeSystem, NodeTypeSystem},
		{models.ActivityTypeTimer, NodeTypeTimer},
		{models.ActivityTypeUser, NodeTypeActivity},
		{models.ActivityTypeMultiInnerWorkflow, NodeTypeActivity},
		{models.ActivityTypeAwaitParallel, NodeTypeActivity},
		{models.ActivityType(""), NodeTypeActivity},
	}

	for _, tt := range tests {
		t.Run(string(tt.activityType), func(t *testing.T) {
			assert.Equal(t, tt.expected, NodeTypeFor(tt.activityType))
		})
	}
}

func TestNewEmptyWorkflow(t *testing.T) {
	workflow := NewEmptyWorkflow("Onboarding")

	assert.NotEmpty(t, workflow.ID)
	assert.Equal(t, "Onboarding", workflow.Name)
	assert.Equal(t, "Onboarding", workflow.Title)
	assert.True(t, workflow.EnableLog)
	assert.Empty(t, workflow.Transitions)

	assert.Len(t, workflow.Activities, 2)
	start, end := workflow.Activities[0], workflow.Activities[1]
	assert.Equal(t, models.ActivityTypeStart, start.Type)
	assert.Equal(t, models.ActivityTypeEnd, end.Type)
	assert.NotEqual(t, start.ID, end.ID)
	assert.Equal(t, workflow.ID, start.WorkflowID)

	assert.Equal(t, start.Position.X, end.Position.X)
	assert.Greater(t, end.Position.Y, start.Position.Y, "end sits below start")

	assert.Empty(t, models.ValidateWorkflow(workflow), "starter workflow must be valid before the editor touches it")
}
