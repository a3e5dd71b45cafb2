// Package web provides the REST API the design console front end calls.
package web

import "github.com/canvaslab/flowcanvas/pkg/graph"

// CreateWorkflowRequest creates a starter workflow from a display name.
type CreateWorkflowRequest struct {
	Name string `json:"name" validate:"required,min=1"`
}

// UpdateWorkflowRequest is a partial metadata update. Absent fields are left
// untouched.
type UpdateWorkflowRequest struct {
	Name      *string `json:"name,omitempty"      validate:"omitempty,min=1"`
	Title     *string `json:"title,omitempty"`
	EnableLog *bool   `json:"enableLog,omitempty"`
}

// SaveGraphRequest is the editor save payload: the full node/edge state of
// the canvas.
type SaveGraphRequest struct {
	Nodes []graph.Node `json:"nodes"`
	Edges []graph.Edge `json:"edges"`
}
