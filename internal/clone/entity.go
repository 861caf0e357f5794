package clone

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// OperationStatus is the lifecycle state of one clone run.
type OperationStatus string

const (
	OperationStatusQueued    OperationStatus = "queued"
	OperationStatusRunning   OperationStatus = "running"
	OperationStatusSucceeded OperationStatus = "succeeded"
	OperationStatusFailed    OperationStatus = "failed"
)

// Operation is the persisted record of a clone run, observable through the
// HTTP API while the run is in flight and afterwards.
type Operation struct {
	ID              string          `yaml:"id" json:"id"`
	TemplateProject string          `yaml:"template_project" json:"templateProject"`
	TargetName      string          `yaml:"target_name" json:"targetName"`
	Description     string          `yaml:"description,omitempty" json:"description,omitempty"`
	Visibility      string          `yaml:"visibility,omitempty" json:"visibility,omitempty"`
	Status          OperationStatus `yaml:"status" json:"status"`
	Message         string          `yaml:"message,omitempty" json:"message,omitempty"`
	Error           string          `yaml:"error,omitempty" json:"error,omitempty"`

	AreasMapped      int                `yaml:"areas_mapped" json:"areasMapped"`
	IterationsMapped int                `yaml:"iterations_mapped" json:"iterationsMapped"`
	TeamsCloned      int                `yaml:"teams_cloned" json:"teamsCloned"`
	Repositories     int                `yaml:"repositories" json:"repositories"`
	Imports          []RepositoryImport `yaml:"imports,omitempty" json:"imports,omitempty"`

	CreatedAt   time.Time  `yaml:"created_at" json:"createdAt"`
	UpdatedAt   time.Time  `yaml:"updated_at" json:"updatedAt"`
	CompletedAt *time.Time `yaml:"completed_at,omitempty" json:"completedAt,omitempty"`
}

func NewOperation(params CloneParams) *Operation {
	now := time.Now()
	return &Operation{
		ID:              ulid.Make().String(),
		TemplateProject: params.TemplateProject,
		TargetName:      params.Name,
		Description:     params.Description,
		Visibility:      params.Visibility,
		Status:          OperationStatusQueued,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func (o *Operation) Start() {
	o.Status = OperationStatusRunning
	o.UpdatedAt = time.Now()
}

func (o *Operation) Complete(result *CloneResult) {
	now := time.Now()
	o.Status = OperationStatusSucceeded
	o.Message = result.Message
	o.AreasMapped = result.AreasMapped
	o.IterationsMapped = result.IterationsMapped
	o.TeamsCloned = result.TeamsCloned
	o.Repositories = result.Repositories
	o.Imports = result.Imports
	o.UpdatedAt = now
	o.CompletedAt = &now
}

func (o *Operation) Fail(err error) {
	now := time.Now()
	o.Status = OperationStatusFailed
	if err != nil {
		o.Error = err.Error()
	}
	o.UpdatedAt = now
	o.CompletedAt = &now
}

func (o *Operation) Params() CloneParams {
	return CloneParams{
		TemplateProject: o.TemplateProject,
		Name:            o.TargetName,
		Description:     o.Description,
		Visibility:      o.Visibility,
	}
}
