package graph

import (
	"encoding/json"
	"fmt"

	"github.com/canvaslab/flowcanvas/pkg/models"
)

// Starter positions for a freshly created workflow.
var (
	startPosition = models.Position{X: 250, Y: 50}
	endPosition   = models.Position{X: 250, Y: 250}
)

// FromWorkflow produces the editor graph for a workflow. The cached design
// snapshot wins when it parses with both node and edge sequences present;
// otherwise the graph is derived from the normalized activity and transition
// lists. Never fails: malformed design falls through to derivation, and a
// transition referencing a missing activity passes through as a dangling
// edge (ValidateWorkflow exists to catch that before a save).
func FromWorkflow(workflow *models.Workflow) *Graph {
	if workflow.Design != "" {
		var cached Graph
		if err := json.Unmarshal([]byte(workflow.Design), &cached); err == nil &&
			cached.Nodes != nil && cached.Edges != nil {
			return &cached
		}
	}

	derived := &Graph{
		Nodes: make([]Node, 0, len(workflow.Activities)),
		Edges: make([]Edge, 0, len(workflow.Transitions)),
	}

	for i := range workflow.Activities {
		activity := &workflow.Activities[i]

		derived.Nodes = append(derived.Nodes, Node{
			ID:       activity.ID,
			Type:     NodeTypeFor(activity.Type),
			Position: activity.ResolvePosition(),
			Data: NodeData{
				Label:          activity.Label(),
				ActivityType:   activity.Type,
				FormID:         activity.FormID,
				RoleID:         activity.RoleID,
				PauseDuration:  activity.PauseDuration,
				Functions:      activity.Functions,
				AfterFunctions: activity.AfterFunctions,
				PrevFunctions:  activity.PrevFunctions,
			},
		})
	}

	for i := range workflow.Transitions {
		transition := &workflow.Transitions[i]

		derived.Edges = append(derived.Edges, Edge{
			ID:        transition.ID,
			Source:    transition.FromID,
			Target:    transition.ToID,
			Animated:  true,
			MarkerEnd: &EdgeMarker{Type: MarkerArrowClosed},
			Data: &EdgeData{
				Type:      transition.Type,
				Route:     transition.Route,
				Condition: transition.Condition,
				PropName:  transition.PropName,
				ParamName: transition.ParamName,
				Value:     transition.Value,
			},
		})
	}

	return derived
}

// ToWorkflow maps an editor graph back to a workflow. Every node yields one
// activity and every edge one transition; missing data is defaulted, never an
// error. The design field is set to the serialization of the exact input so
// the next FromWorkflow call round-trips via the cached path.
func ToWorkflow(nodes []Node, edges []Edge, workflowID, workflowName string) *models.Workflow {
	if nodes == nil {
		nodes = []Node{}
	}

	if edges == nil {
		edges = []Edge{}
	}

	workflow := &models.Workflow{
		ID:          workflowID,
		Name:        workflowName,
		Title:       workflowName,
		Activities:  make([]models.Activity, 0, len(nodes)),
		Transitions: make([]models.Transition, 0, len(edges)),
	}

	for i := range nodes {
		node := &nodes[i]

		label := node.Data.Label
		if label == "" {
			label = "Activity"
		}

		position := node.Position

		workflow.Activities = append(workflow.Activities, models.Activity{
			ID:             node.ID,
			Name:           label,
			Title:          label,
			Type:           node.Data.ActivityType,
			Position:       &position,
			FormID:         node.Data.FormID,
			RoleID:         node.Data.RoleID,
			PauseDuration:  node.Data.PauseDuration,
			Functions:      node.Data.Functions,
			AfterFunctions: node.Data.AfterFunctions,
			PrevFunctions:  node.Data.PrevFunctions,
			WorkflowID:     workflowID,
			SettingsStr:    settingsWithPosition(node.Position),
		})
	}

	for i := range edges {
		edge := &edges[i]

		transition := models.Transition{
			ID:     edge.ID,
			FromID: edge.Source,
			ToID:   edge.Target,
			Name:   fmt.Sprintf("%s to %s", edge.Source, edge.Target),
			Title:  fmt.Sprintf("%s to %s", edge.Source, edge.Target),
			Type:   models.TransitionTypeStandard,
		}

		if edge.Data != nil {
			if edge.Data.Type != "" {
				transition.Type = edge.Data.Type
			}

			transition.Route = edge.Data.Route
			transition.Condition = edge.Data.Condition
			transition.PropName = edge.Data.PropName
			transition.ParamName = edge.Data.ParamName
			transition.Value = edge.Data.Value
		}

		workflow.Transitions = append(workflow.Transitions, transition)
	}

	design, err := json.Marshal(Graph{Nodes: nodes, Edges: edges})
	if err == nil {
		workflow.Design = string(design)
	}

	return workflow
}

func settingsWithPosition(position models.Position) string {
	settings, err := json.Marshal(map[string]models.Position{"position": position})
	if err != nil {
		return ""
	}

	return string(settings)
}

// NewEmptyWorkflow builds the starter workflow handed to the editor on
// creation: one start activity, one end activity directly below it, no
// transitions, logging enabled.
func NewEmptyWorkflow(name string) *models.Workflow {
	workflowID := models.GenerateID("wf")

	start := startPosition
	end := endPosition

	return &models.Workflow{
		ID:        workflowID,
		Name:      name,
		Title:     name,
		EnableLog: true,
		Activities: []models.Activity{
			{
				ID:         models.GenerateID("activity"),
				Name:       "Start",
				Title:      "Start",
				Type:       models.ActivityTypeStart,
				Position:   &start,
				WorkflowID: workflowID,
			},
			{
				ID:         models.GenerateID("activity"),
				Name:       "End",
				Title:      "End",
				Type:       models.ActivityTypeEnd,
				Position:   &end,
				WorkflowID: workflowID,
			},
		},
		Transitions: []models.Transition{},
	}
}
