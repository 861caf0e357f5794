package azdo

import "time"

// ProjectState is the lifecycle state of a team project.
type ProjectState string

const (
	ProjectStateNew           ProjectState = "new"
	ProjectStateCreatePending ProjectState = "createPending"
	ProjectStateWellFormed    ProjectState = "wellFormed"
	ProjectStateDeleting      ProjectState = "deleting"
	ProjectStateDeleted       ProjectState = "deleted"
)

type Project struct {
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	Description  string               `json:"description,omitempty"`
	State        ProjectState         `json:"state,omitempty"`
	Visibility   string               `json:"visibility,omitempty"`
	DefaultTeam  *TeamRef             `json:"defaultTeam,omitempty"`
	Capabilities *ProjectCapabilities `json:"capabilities,omitempty"`
}

type TeamRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ProjectCapabilities struct {
	VersionControl  *VersionControlCapability  `json:"versioncontrol,omitempty"`
	ProcessTemplate *ProcessTemplateCapability `json:"processTemplate,omitempty"`
}

type VersionControlCapability struct {
	SourceControlType string `json:"sourceControlType"`
}

type ProcessTemplateCapability struct {
	TemplateTypeID string `json:"templateTypeId"`
}

type CreateProjectRequest struct {
	Name         string               `json:"name"`
	Description  string               `json:"description,omitempty"`
	Visibility   string               `json:"visibility,omitempty"`
	Capabilities *ProjectCapabilities `json:"capabilities,omitempty"`
}

// OperationReference is returned by queued project operations. Message
// carries a non-fatal note from the platform (e.g. a warning emitted while
// the creation was accepted).
type OperationReference struct {
	ID      string `json:"id"`
	Status  string `json:"status"`
	URL     string `json:"url,omitempty"`
	Message string `json:"message,omitempty"`
}

// TreeStructureGroup discriminates the two classification trees of a
// project.
type TreeStructureGroup string

const (
	TreeStructureGroupAreas      TreeStructureGroup = "areas"
	TreeStructureGroupIterations TreeStructureGroup = "iterations"
)

type ClassificationNode struct {
	ID            int                           `json:"id"`
	Identifier    string                        `json:"identifier"`
	Name          string                        `json:"name"`
	StructureType string                        `json:"structureType,omitempty"`
	HasChildren   bool                          `json:"hasChildren,omitempty"`
	Path          string                        `json:"path,omitempty"`
	Attributes    *ClassificationNodeAttributes `json:"attributes,omitempty"`
	Children      []*ClassificationNode         `json:"children,omitempty"`
}

type ClassificationNodeAttributes struct {
	StartDate  *time.Time `json:"startDate,omitempty"`
	FinishDate *time.Time `json:"finishDate,omitempty"`
}

type CreateClassificationNodeRequest struct {
	Name       string                        `json:"name"`
	Attributes *ClassificationNodeAttributes `json:"attributes,omitempty"`
}

type Team struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ProjectID   string `json:"projectId,omitempty"`
}

type CreateTeamRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type TeamSettingsIteration struct {
	ID         string                   `json:"id"`
	Name       string                   `json:"name,omitempty"`
	Path       string                   `json:"path,omitempty"`
	Attributes *TeamIterationAttributes `json:"attributes,omitempty"`
}

type TeamIterationAttributes struct {
	StartDate  *time.Time `json:"startDate,omitempty"`
	FinishDate *time.Time `json:"finishDate,omitempty"`
	TimeFrame  string     `json:"timeFrame,omitempty"`
}

type TeamSettings struct {
	BacklogIteration      *TeamSettingsIteration `json:"backlogIteration,omitempty"`
	DefaultIteration      *TeamSettingsIteration `json:"defaultIteration,omitempty"`
	DefaultIterationMacro string                 `json:"defaultIterationMacro,omitempty"`
	BugsBehavior          string                 `json:"bugsBehavior,omitempty"`
	WorkingDays           []string               `json:"workingDays,omitempty"`
	BacklogVisibilities   map[string]bool        `json:"backlogVisibilities,omitempty"`
}

// TeamSettingsPatch carries only the members to update; nil pointers are
// omitted from the request body so the platform keeps its current value.
type TeamSettingsPatch struct {
	BacklogIteration      *string         `json:"backlogIteration,omitempty"`
	DefaultIteration      *string         `json:"defaultIteration,omitempty"`
	DefaultIterationMacro *string         `json:"defaultIterationMacro,omitempty"`
	BugsBehavior          *string         `json:"bugsBehavior,omitempty"`
	WorkingDays           []string        `json:"workingDays,omitempty"`
	BacklogVisibilities   map[string]bool `json:"backlogVisibilities,omitempty"`
}

type TeamFieldValues struct {
	DefaultValue string           `json:"defaultValue"`
	Values       []TeamFieldValue `json:"values,omitempty"`
}

type TeamFieldValue struct {
	Value           string `json:"value"`
	IncludeChildren bool   `json:"includeChildren"`
}

type Board struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// BoardColumnType tags a column as one of the platform-reserved edge
// columns or a regular in-progress column.
type BoardColumnType string

const (
	BoardColumnTypeIncoming   BoardColumnType = "incoming"
	BoardColumnTypeInProgress BoardColumnType = "inProgress"
	BoardColumnTypeOutgoing   BoardColumnType = "outgoing"
)

type BoardColumn struct {
	ID            string            `json:"id,omitempty"`
	Name          string            `json:"name"`
	ItemLimit     int               `json:"itemLimit,omitempty"`
	StateMappings map[string]string `json:"stateMappings,omitempty"`
	ColumnType    BoardColumnType   `json:"columnType"`
	IsSplit       bool              `json:"isSplit,omitempty"`
	Description   string            `json:"description,omitempty"`
}

type BoardRow struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// BoardCardSettings holds the card-field display rules per work item type.
type BoardCardSettings struct {
	Cards map[string][]CardFieldSetting `json:"cards"`
}

type CardFieldSetting map[string]string

// BoardCardRuleSettings holds fill and tag-style rules keyed by rule kind.
type BoardCardRuleSettings struct {
	Rules map[string][]CardRule `json:"rules"`
}

type CardRule struct {
	Name      string            `json:"name,omitempty"`
	IsEnabled string            `json:"isEnabled,omitempty"`
	Filter    string            `json:"filter,omitempty"`
	Clauses   []CardRuleClause  `json:"clauses,omitempty"`
	Settings  map[string]string `json:"settings,omitempty"`
}

type CardRuleClause struct {
	FieldName       string `json:"fieldName,omitempty"`
	LogicalOperator string `json:"logicalOperator,omitempty"`
	Operator        string `json:"operator,omitempty"`
	Value           string `json:"value,omitempty"`
	Index           int    `json:"index,omitempty"`
}

type GitRepository struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	RemoteURL     string `json:"remoteUrl,omitempty"`
	DefaultBranch string `json:"defaultBranch,omitempty"`
	Size          int64  `json:"size,omitempty"`
}

type CreateRepositoryRequest struct {
	Name    string   `json:"name"`
	Project *TeamRef `json:"project,omitempty"`
}

// GitImportStatus is the status of an asynchronous repository import.
type GitImportStatus string

const (
	GitImportStatusQueued     GitImportStatus = "queued"
	GitImportStatusInProgress GitImportStatus = "inProgress"
	GitImportStatusCompleted  GitImportStatus = "completed"
	GitImportStatusFailed     GitImportStatus = "failed"
	GitImportStatusAbandoned  GitImportStatus = "abandoned"
)

type GitImportRequest struct {
	ImportRequestID int                     `json:"importRequestId,omitempty"`
	Status          GitImportStatus         `json:"status,omitempty"`
	Parameters      *GitImportRequestParams `json:"parameters,omitempty"`
	DetailedStatus  *GitImportStatusDetail  `json:"detailedStatus,omitempty"`
	Repository      *GitRepository          `json:"repository,omitempty"`
}

type GitImportRequestParams struct {
	GitSource                              *GitImportGitSource `json:"gitSource,omitempty"`
	ServiceEndpointID                      string              `json:"serviceEndpointId,omitempty"`
	DeleteServiceEndpointAfterImportIsDone bool                `json:"deleteServiceEndpointAfterImportIsDone,omitempty"`
}

type GitImportGitSource struct {
	URL string `json:"url"`
}

type GitImportStatusDetail struct {
	CurrentStep  int    `json:"currentStep,omitempty"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

type ServiceEndpoint struct {
	ID            string                            `json:"id,omitempty"`
	Name          string                            `json:"name"`
	Type          string                            `json:"type"`
	URL           string                            `json:"url"`
	Authorization *ServiceEndpointAuthorization     `json:"authorization,omitempty"`
	ProjectRefs   []ServiceEndpointProjectReference `json:"serviceEndpointProjectReferences,omitempty"`
}

type ServiceEndpointAuthorization struct {
	Scheme     string            `json:"scheme"`
	Parameters map[string]string `json:"parameters,omitempty"`
}

type ServiceEndpointProjectReference struct {
	Name             string   `json:"name"`
	ProjectReference *TeamRef `json:"projectReference"`
}
