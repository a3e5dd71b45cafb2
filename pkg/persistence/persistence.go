// Package persistence provides the storage abstraction for workflow designs.
package persistence

import (
	"context"

	"github.com/canvaslab/flowcanvas/pkg/models"
)

// Persistence stores and retrieves workflow designs. Implementations must
// return ErrWorkflowNotFound (wrapped or bare) when an id does not resolve,
// and must normalize legacy activity positions on load.
type Persistence interface {
	Workflows(ctx context.Context) ([]*models.Workflow, error)
	WorkflowByID(ctx context.Context, id string) (*models.Workflow, error)
	SaveWorkflow(ctx context.Context, workflow *models.Workflow) error
	DeleteWorkflow(ctx context.Context, id string) error
	HealthCheck(ctx context.Context) error

	Close(ctx context.Context) error
}
