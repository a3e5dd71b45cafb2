package services_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/canvaslab/flowcanvas/pkg/eventbus"
	"github.com/canvaslab/flowcanvas/pkg/graph"
	"github.com/canvaslab/flowcanvas/pkg/models"
	"github.com/canvaslab/flowcanvas/pkg/persistence/file"
	"github.com/canvaslab/flowcanvas/pkg/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDesigner(t *testing.T) *services.Designer {
	t.Helper()

	bus := eventbus.NewGoChannelEventBus(slog.Default())
	t.Cleanup(func() {
		if err := bus.Close(); err != nil {
			t.Logf("failed to close bus: %v", err)
		}
	})

	return services.NewDesigner(file.NewPersistence(t.TempDir()), bus, slog.Default())
}

func TestDesigner_Create(t *testing.T) {
	designer := setupDesigner(t)
	ctx := context.Background()

	workflow, err := designer.Create(ctx, "Expense Approval")
	require.NoError(t, err)
	assert.NotEmpty(t, workflow.ID)
	assert.Equal(t, "Expense Approval", workflow.Name)
	assert.Len(t, workflow.Activities, 2)
	assert.True(t, workflow.EnableLog)
	assert.False(t, workflow.CreatedAt.IsZero())

	stored, err := designer.FetchByID(ctx, workflow.ID)
	require.NoError(t, err)
	assert.Equal(t, workflow.ID, stored.ID)
}

func TestDesigner_Create_EmptyName(t *testing.T) {
	designer := setupDesigner(t)

	_, err := designer.Create(context.Background(), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrNameRequired)
	assert.True(t, services.IsValidationError(err))
}

func TestDesigner_Update(t *testing.T) {
	designer := setupDesigner(t)
	ctx := context.Background()

	workflow, err := designer.Create(ctx, "Draft")
	require.NoError(t, err)

	newName := "Renamed"
	disabled := false

	updated, err := designer.Update(ctx, workflow.ID, services.UpdateRequest{
		Name:      &newName,
		EnableLog: &disabled,
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.False(t, updated.EnableLog)
	assert.Equal(t, workflow.Title, updated.Title, "unpatched fields stay")
}

func TestDesigner_Delete(t *testing.T) {
	designer := setupDesigner(t)
	ctx := context.Background()

	workflow, err := designer.Create(ctx, "Ephemeral")
	require.NoError(t, err)

	require.NoError(t, designer.Delete(ctx, workflow.ID))

	_, err = designer.FetchByID(ctx, workflow.ID)
	require.Error(t, err)
	assert.True(t, services.IsNotFound(err))

	err = designer.Delete(ctx, workflow.ID)
	assert.True(t, services.IsNotFound(err))
}

func TestDesigner_GraphAndSaveGraph(t *testing.T) {
	designer := setupDesigner(t)
	ctx := context.Background()

	workflow, err := designer.Create(ctx, "Approval")
	require.NoError(t, err)

	g, err := designer.Graph(ctx, workflow.ID)
	require.NoError(t, err)
	require.Len(t, g.Nodes, 2)
	assert.Empty(t, g.Edges)

	// The user wires start to end in the editor and saves.
	edge := graph.Edge{
		ID:     "e1",
		Source: g.Nodes[0].ID,
		Target: g.Nodes[1].ID,
		Data:   &graph.EdgeData{Type: models.TransitionTypeStandard},
	}

	saved, err := designer.SaveGraph(ctx, workflow.ID, g.Nodes, []graph.Edge{edge})
	require.NoError(t, err)
	assert.Len(t, saved.Activities, 2)
	require.Len(t, saved.Transitions, 1)
	assert.Equal(t, g.Nodes[0].ID, saved.Transitions[0].FromID)
	assert.True(t, saved.EnableLog, "log flag preserved from the stored row")
	assert.Equal(t, workflow.CreatedAt, saved.CreatedAt)
	assert.NotEmpty(t, saved.Design)

	// The next load serves the cached design exactly.
	reloaded, err := designer.Graph(ctx, workflow.ID)
	require.NoError(t, err)
	assert.Equal(t, g.Nodes, reloaded.Nodes)
	require.Len(t, reloaded.Edges, 1)
	assert.Equal(t, edge.ID, reloaded.Edges[0].ID)
}

func TestDesigner_SaveGraph_RejectsDanglingEdge(t *testing.T) {
	designer := setupDesigner(t)
	ctx := context.Background()

	workflow, err := designer.Create(ctx, "Approval")
	require.NoError(t, err)

	g, err := designer.Graph(ctx, workflow.ID)
	require.NoError(t, err)

	dangling := graph.Edge{ID: "e1", Source: g.Nodes[0].ID, Target: "ghost"}

	_, err = designer.SaveGraph(ctx, workflow.ID, g.Nodes, []graph.Edge{dangling})
	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrInvalidGraph)
	assert.True(t, services.IsValidationError(err))

	var integrityErr *services.IntegrityValidationError
	require.ErrorAs(t, err, &integrityErr)
	require.Len(t, integrityErr.Violations, 1)
	assert.Equal(t, models.IntegrityDanglingTo, integrityErr.Violations[0].Kind)
}

func TestDesigner_SaveGraph_UnknownWorkflow(t *testing.T) {
	designer := setupDesigner(t)

	_, err := designer.SaveGraph(context.Background(), "missing", nil, nil)
	require.Error(t, err)
	assert.True(t, services.IsNotFound(err))
}

func TestDesigner_HealthCheck(t *testing.T) {
	designer := setupDesigner(t)

	message, ok := designer.HealthCheck(context.Background())
	assert.True(t, ok)
	assert.Equal(t, "Persistence layer is healthy", message)
}
