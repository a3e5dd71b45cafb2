// Package services orchestrates the design console's load/save cycle on top
// of persistence, conversion, and the event bus.
package services

import (
	"errors"
	"fmt"

	"github.com/canvaslab/flowcanvas/pkg/models"
	"github.com/canvaslab/flowcanvas/pkg/persistence"
)

// Validation errors map to 4xx responses at the API boundary.
var (
	ErrWorkflowNotFound = persistence.ErrWorkflowNotFound
	ErrNameRequired     = errors.New("workflow name is required")
	ErrInvalidGraph     = errors.New("graph failed integrity validation")
)

// IntegrityValidationError carries the individual violations found when a
// graph save is rejected.
type IntegrityValidationError struct {
	WorkflowID string
	Violations []models.IntegrityError
}

func (e *IntegrityValidationError) Error() string {
	return fmt.Sprintf("workflow %s rejected: %d integrity violations", e.WorkflowID, len(e.Violations))
}

func (e *IntegrityValidationError) Is(target error) bool {
	return target == ErrInvalidGraph
}

// IsValidationError checks if an error should surface as HTTP 400/422 rather
// than 500.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrNameRequired) || errors.Is(err, ErrInvalidGraph)
}
