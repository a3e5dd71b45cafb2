// Package models defines the core domain models for visually designed workflows.
package models

import "time"

// ActivityType tags an activity with its behavioral kind. The tag decides
// which editor node renders it and which optional fields are meaningful.
type ActivityType string

const (
	ActivityTypeStart              ActivityType = "start"              // Entry point, no incoming transitions
	ActivityTypeEnd                ActivityType = "end"                // Terminal, no outgoing transitions
	ActivityTypeSystem             ActivityType = "system"             // Automated step running server-side functions
	ActivityTypeUser               ActivityType = "user"               // Manual step assigned to a role, presents a form
	ActivityTypeTimer              ActivityType = "timer"              // Waits PauseDuration minutes before continuing
	ActivityTypeMultiInnerWorkflow ActivityType = "multiInnerWorkflow" // Forks into sub-workflow branches
	ActivityTypeAwaitParallel      ActivityType = "awaitParallel"      // Joins parallel branches
)

// TransitionType tags a transition with its routing behavior.
type TransitionType string

const (
	TransitionTypeStandard    TransitionType = "standard"    // Unconditional
	TransitionTypeConditional TransitionType = "conditional" // Guarded by a property comparison
	TransitionTypeParallel    TransitionType = "parallel"    // One branch of a fork/join
)

// ConditionOp is the comparison applied by conditional transitions.
type ConditionOp string

const (
	ConditionEqual          ConditionOp = "eq"
	ConditionNotEqual       ConditionOp = "neq"
	ConditionGreaterThan    ConditionOp = "gt"
	ConditionGreaterOrEqual ConditionOp = "gte"
	ConditionLessThan       ConditionOp = "lt"
	ConditionLessOrEqual    ConditionOp = "lte"
)

// Position is an editor canvas coordinate.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// FunctionRef points at a server-side function invoked around an activity.
type FunctionRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Activity is a node in the workflow graph. Kind-specific fields are
// meaningful only for the matching Type and ignored otherwise.
type Activity struct {
	ID       string       `json:"id"           validate:"required"`
	Name     string       `json:"name"`
	Title    string       `json:"title,omitempty"`
	Type     ActivityType `json:"activityType" validate:"required"`
	Position *Position    `json:"position,omitempty"`

	RoleID        string `json:"role_id,omitempty"`       // user: role that must act
	FormID        string `json:"form_id,omitempty"`       // user: form to present
	PauseDuration int    `json:"pauseDuration,omitempty"` // timer: minutes to wait

	Functions      []FunctionRef `json:"functions,omitempty"`
	AfterFunctions []FunctionRef `json:"afterFunctions,omitempty"`
	PrevFunctions  []FunctionRef `json:"prevFunctions,omitempty"`

	// WorkflowID is a back-reference for flat storage. The owning Workflow's
	// Activities list remains the source of truth for membership.
	WorkflowID string `json:"workflow_id,omitempty"`

	// SettingsStr is the legacy free-form JSON channel. Superseded by the
	// typed fields above but still read as a position fallback.
	SettingsStr string `json:"settingsStr,omitempty"`
}

// Label returns the display label with the editor's fallback chain.
func (a *Activity) Label() string {
	if a.Title != "" {
		return a.Title
	}

	if a.Name != "" {
		return a.Name
	}

	return "Activity"
}

// Transition is a directed edge between two activities.
type Transition struct {
	ID     string         `json:"id"      validate:"required"`
	FromID string         `json:"from_id" validate:"required"`
	ToID   string         `json:"to_id"   validate:"required"`
	Name   string         `json:"name,omitempty"`
	Title  string         `json:"title,omitempty"`
	Type   TransitionType `json:"type"`

	Condition ConditionOp `json:"condition,omitempty"` // conditional: comparison operator
	PropName  string      `json:"propName,omitempty"`  // conditional: instance property to inspect
	Value     any         `json:"value,omitempty"`     // conditional: comparand

	Route string `json:"route,omitempty"` // parallel: branch name for join correlation

	ParamName string `json:"paramName,omitempty"` // binds a runtime parameter on parametric edges
}

// Workflow is the top-level aggregate persisted by the design console.
type Workflow struct {
	ID    string `json:"id"`
	Name  string `json:"name"  validate:"required,min=1"`
	Title string `json:"title,omitempty"`

	Activities  []Activity   `json:"activities"`
	Transitions []Transition `json:"transitions"`

	// Design caches the last-saved editor graph as JSON. It is presentation
	// state, never authoritative over Activities/Transitions.
	Design string `json:"design,omitempty"`

	EnableLog bool `json:"enableLog"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ActivityByID returns the activity with the given id, or nil.
func (w *Workflow) ActivityByID(id string) *Activity {
	for i := range w.Activities {
		if w.Activities[i].ID == id {
			return &w.Activities[i]
		}
	}

	return nil
}
