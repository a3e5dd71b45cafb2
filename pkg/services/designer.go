package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/canvaslab/flowcanvas/pkg/events"
	"github.com/canvaslab/flowcanvas/pkg/eventbus"
	"github.com/canvaslab/flowcanvas/pkg/graph"
	"github.com/canvaslab/flowcanvas/pkg/models"
	"github.com/canvaslab/flowcanvas/pkg/persistence"
	"github.com/canvaslab/flowcanvas/pkg/tracing"
)

// Designer owns the workflow design lifecycle: CRUD, the editor load path
// (workflow to graph) and the editor save path (graph to workflow, integrity
// validation, persistence, notification).
type Designer struct {
	persistence persistence.Persistence
	eventBus    eventbus.EventPublisher
	logger      *slog.Logger
	tracer      trace.Tracer
}

// NewDesigner creates the designer service. The event bus is notification
// only: publish failures are logged, never propagated.
func NewDesigner(p persistence.Persistence, bus eventbus.EventPublisher, logger *slog.Logger) *Designer {
	return &Designer{
		persistence: p,
		eventBus:    bus,
		logger:      logger,
		tracer:      tracing.Tracer("flowcanvas/services"),
	}
}

// HealthCheck reports whether the persistence layer is reachable.
func (d *Designer) HealthCheck(ctx context.Context) (string, bool) {
	if d.persistence == nil {
		return "Persistence layer not initialized", false
	}

	if err := d.persistence.HealthCheck(ctx); err != nil {
		return "Persistence layer is unhealthy: " + err.Error(), false
	}

	return "Persistence layer is healthy", true
}

// List returns every stored workflow.
func (d *Designer) List(ctx context.Context) ([]*models.Workflow, error) {
	return d.persistence.Workflows(ctx)
}

// FetchByID returns one workflow.
func (d *Designer) FetchByID(ctx context.Context, id string) (*models.Workflow, error) {
	return d.persistence.WorkflowByID(ctx, id)
}

// Create builds and persists the starter workflow for the given display name.
func (d *Designer) Create(ctx context.Context, name string) (*models.Workflow, error) {
	ctx, span := d.tracer.Start(ctx, "designer.create",
		trace.WithAttributes(attribute.String(tracing.WorkflowNameKey, name)))
	defer span.End()

	if name == "" {
		return nil, ErrNameRequired
	}

	workflow := graph.NewEmptyWorkflow(name)

	now := time.Now().UTC()
	workflow.CreatedAt = now
	workflow.UpdatedAt = now

	if err := d.persistence.SaveWorkflow(ctx, workflow); err != nil {
		return nil, err
	}

	d.publish(ctx, events.WorkflowCreated{
		BaseEvent: events.NewBaseEvent(events.WorkflowCreatedEvent, workflow.ID),
		Name:      workflow.Name,
	})

	return workflow, nil
}

// UpdateRequest is a partial update of workflow metadata. Nil fields are left
// untouched.
type UpdateRequest struct {
	Name      *string
	Title     *string
	EnableLog *bool
}

// Update applies a metadata patch to a stored workflow.
func (d *Designer) Update(ctx context.Context, id string, req UpdateRequest) (*models.Workflow, error) {
	workflow, err := d.persistence.WorkflowByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, ErrNameRequired
		}

		workflow.Name = *req.Name
	}

	if req.Title != nil {
		workflow.Title = *req.Title
	}

	if req.EnableLog != nil {
		workflow.EnableLog = *req.EnableLog
	}

	workflow.UpdatedAt = time.Now().UTC()

	if err := d.persistence.SaveWorkflow(ctx, workflow); err != nil {
		return nil, err
	}

	d.publish(ctx, events.WorkflowUpdated{
		BaseEvent: events.NewBaseEvent(events.WorkflowUpdatedEvent, workflow.ID),
		Name:      workflow.Name,
	})

	return workflow, nil
}

// Delete removes a workflow.
func (d *Designer) Delete(ctx context.Context, id string) error {
	if err := d.persistence.DeleteWorkflow(ctx, id); err != nil {
		return err
	}

	d.publish(ctx, events.WorkflowDeleted{
		BaseEvent: events.NewBaseEvent(events.WorkflowDeletedEvent, id),
	})

	return nil
}

// Graph produces the editor graph for a stored workflow.
func (d *Designer) Graph(ctx context.Context, id string) (*graph.Graph, error) {
	workflow, err := d.persistence.WorkflowByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return graph.FromWorkflow(workflow), nil
}

// SaveGraph maps the editor graph back onto the stored workflow and persists
// it. The graph must pass integrity validation; metadata the editor does not
// own (name, title, log flag, creation time) is preserved from the stored row.
func (d *Designer) SaveGraph(ctx context.Context, id string, nodes []graph.Node, edges []graph.Edge) (*models.Workflow, error) {
	ctx, span := d.tracer.Start(ctx, "designer.save_graph", trace.WithAttributes(
		attribute.String(tracing.WorkflowIDKey, id),
		attribute.Int(tracing.NodeCountKey, len(nodes)),
		attribute.Int(tracing.EdgeCountKey, len(edges)),
	))
	defer span.End()

	existing, err := d.persistence.WorkflowByID(ctx, id)
	if err != nil {
		return nil, err
	}

	workflow := graph.ToWorkflow(nodes, edges, existing.ID, existing.Name)
	workflow.Title = existing.Title
	workflow.EnableLog = existing.EnableLog
	workflow.CreatedAt = existing.CreatedAt
	workflow.UpdatedAt = time.Now().UTC()

	if violations := models.ValidateWorkflow(workflow); len(violations) > 0 {
		return nil, &IntegrityValidationError{WorkflowID: id, Violations: violations}
	}

	if err := d.persistence.SaveWorkflow(ctx, workflow); err != nil {
		return nil, err
	}

	d.publish(ctx, events.WorkflowDesignSaved{
		BaseEvent:       events.NewBaseEvent(events.WorkflowDesignSavedEvent, workflow.ID),
		ActivityCount:   len(workflow.Activities),
		TransitionCount: len(workflow.Transitions),
	})

	return workflow, nil
}

func (d *Designer) publish(ctx context.Context, event eventbus.Event) {
	if d.eventBus == nil {
		return
	}

	if err := d.eventBus.Publish(ctx, string(event.GetType()), event); err != nil {
		d.logger.WarnContext(ctx, "Failed to publish event", "event_type", event.GetType(), "error", err)
	}
}

// IsNotFound reports whether the error is a missing-workflow error from any
// layer below.
func IsNotFound(err error) bool {
	return errors.Is(err, persistence.ErrWorkflowNotFound)
}
