// Package graph converts between the workflow model and the node-graph
// representation the visual editor renders.
package graph

import "github.com/canvaslab/flowcanvas/pkg/models"

// Node type strings select the rendering component on the editor side.
const (
	NodeTypeStart    = "startNode"
	NodeTypeEnd      = "endNode"
	NodeTypeSystem   = "systemNode"
	NodeTypeActivity = "activityNode"
	NodeTypeTimer    = "timerNode"
)

// NodeTypeFor maps an activity kind to its editor node type.
func NodeTypeFor(activityType models.ActivityType) string {
	switch activityType {
	case models.ActivityTypeStart:
		return NodeTypeStart
	case models.ActivityTypeEnd:
		return NodeTypeEnd
	case models.ActivityTypeSystem:
		return NodeTypeSystem
	case models.ActivityTypeTimer:
		return NodeTypeTimer
	default:
		return NodeTypeActivity
	}
}

// NodeData carries the kind-specific activity fields the editor shows.
type NodeData struct {
	Label          string               `json:"label,omitempty"`
	ActivityType   models.ActivityType  `json:"activityType,omitempty"`
	FormID         string               `json:"form_id,omitempty"`
	RoleID         string               `json:"role_id,omitempty"`
	PauseDuration  int                  `json:"pauseDuration,omitempty"`
	Functions      []models.FunctionRef `json:"functions,omitempty"`
	AfterFunctions []models.FunctionRef `json:"afterFunctions,omitempty"`
	PrevFunctions  []models.FunctionRef `json:"prevFunctions,omitempty"`
}

// Node is one editor canvas node.
type Node struct {
	ID       string          `json:"id"`
	Type     string          `json:"type"`
	Position models.Position `json:"position"`
	Data     NodeData        `json:"data"`
}

// EdgeMarker is the arrow decoration at an edge end.
type EdgeMarker struct {
	Type string `json:"type"`
}

// MarkerArrowClosed is the closed-arrow marker the editor draws on
// derived edges.
const MarkerArrowClosed = "arrowclosed"

// EdgeData carries the kind-specific transition fields.
type EdgeData struct {
	Type      models.TransitionType `json:"type,omitempty"`
	Route     string                `json:"route,omitempty"`
	Condition models.ConditionOp    `json:"condition,omitempty"`
	PropName  string                `json:"propName,omitempty"`
	ParamName string                `json:"paramName,omitempty"`
	Value     any                   `json:"value,omitempty"`
}

// Edge is one editor canvas edge. Data is nil on bare edges.
type Edge struct {
	ID        string      `json:"id"`
	Source    string      `json:"source"`
	Target    string      `json:"target"`
	Animated  bool        `json:"animated,omitempty"`
	MarkerEnd *EdgeMarker `json:"markerEnd,omitempty"`
	Data      *EdgeData   `json:"data,omitempty"`
}

// Graph is the editor's native format: a flat node/edge pair.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}
