package clone

import (
	"context"

	"github.com/kazz187/blueprint/internal/azdo"
)

// Gateway interfaces are declared on the consumer side so every replication
// step can be exercised against fakes. *azdo.Client satisfies all of them.

type ProjectGateway interface {
	GetProject(ctx context.Context, projectIDOrName string) (*azdo.Project, error)
	CreateProject(ctx context.Context, req *azdo.CreateProjectRequest) (*azdo.OperationReference, error)
}

type ClassificationGateway interface {
	GetClassificationNode(ctx context.Context, project string, group azdo.TreeStructureGroup, path string) (*azdo.ClassificationNode, error)
	CreateClassificationNode(ctx context.Context, project string, group azdo.TreeStructureGroup, parentPath string, req *azdo.CreateClassificationNodeRequest) (*azdo.ClassificationNode, error)
	DeleteClassificationNode(ctx context.Context, project string, group azdo.TreeStructureGroup, path string) error
}

type TeamGateway interface {
	ListTeams(ctx context.Context, projectID string) ([]azdo.Team, error)
	CreateTeam(ctx context.Context, projectID string, req *azdo.CreateTeamRequest) (*azdo.Team, error)
}

type WorkGateway interface {
	GetTeamSettings(ctx context.Context, project, team string) (*azdo.TeamSettings, error)
	UpdateTeamSettings(ctx context.Context, project, team string, patch *azdo.TeamSettingsPatch) error
	GetTeamFieldValues(ctx context.Context, project, team string) (*azdo.TeamFieldValues, error)
	UpdateTeamFieldValues(ctx context.Context, project, team string, values *azdo.TeamFieldValues) error
	ListTeamIterations(ctx context.Context, project, team string) ([]azdo.TeamSettingsIteration, error)
	AddTeamIteration(ctx context.Context, project, team, iterationID string) error
	DeleteTeamIteration(ctx context.Context, project, team, iterationID string) error
	ListBoards(ctx context.Context, project, team string) ([]azdo.Board, error)
	GetBoardColumns(ctx context.Context, project, team, board string) ([]azdo.BoardColumn, error)
	UpdateBoardColumns(ctx context.Context, project, team, board string, columns []azdo.BoardColumn) error
	GetBoardRows(ctx context.Context, project, team, board string) ([]azdo.BoardRow, error)
	UpdateBoardRows(ctx context.Context, project, team, board string, rows []azdo.BoardRow) error
	GetCardSettings(ctx context.Context, project, team, board string) (*azdo.BoardCardSettings, error)
	UpdateCardSettings(ctx context.Context, project, team, board string, settings *azdo.BoardCardSettings) error
	GetCardRules(ctx context.Context, project, team, board string) (*azdo.BoardCardRuleSettings, error)
	UpdateCardRules(ctx context.Context, project, team, board string, rules *azdo.BoardCardRuleSettings) error
}

type GitGateway interface {
	ListRepositories(ctx context.Context, project string) ([]azdo.GitRepository, error)
	CreateRepository(ctx context.Context, project string, req *azdo.CreateRepositoryRequest) (*azdo.GitRepository, error)
	DeleteRepository(ctx context.Context, project, repositoryID string) error
	CreateImportRequest(ctx context.Context, project, repositoryID string, req *azdo.GitImportRequest) (*azdo.GitImportRequest, error)
	GetImportRequest(ctx context.Context, project, repositoryID string, importRequestID int) (*azdo.GitImportRequest, error)
}

type EndpointGateway interface {
	CreateServiceEndpoint(ctx context.Context, endpoint *azdo.ServiceEndpoint) (*azdo.ServiceEndpoint, error)
}

var (
	_ ProjectGateway        = (*azdo.Client)(nil)
	_ ClassificationGateway = (*azdo.Client)(nil)
	_ TeamGateway           = (*azdo.Client)(nil)
	_ WorkGateway           = (*azdo.Client)(nil)
	_ GitGateway            = (*azdo.Client)(nil)
	_ EndpointGateway       = (*azdo.Client)(nil)
)
