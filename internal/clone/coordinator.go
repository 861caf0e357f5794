package clone

import (
	"context"
	"log/slog"

	"github.com/kazz187/blueprint/internal/azdo"
	"github.com/kazz187/blueprint/pkg/cerr"
	"github.com/kazz187/blueprint/pkg/poll"
)

// Coordinator sequences a full project clone: project creation, both
// classification trees, team configuration, repositories. Dependency order
// matters: the target project must be well-formed before any child resource
// is touched, and the iteration tree must be fully mapped before any team
// settings write that references iteration ids.
type Coordinator struct {
	projects   ProjectGateway
	correlator *Correlator
	teams      *TeamReplicator
	repos      *RepoReplicator
	pollCfg    poll.Config
}

func NewCoordinator(projects ProjectGateway, correlator *Correlator, teams *TeamReplicator, repos *RepoReplicator, pollCfg poll.Config) *Coordinator {
	return &Coordinator{
		projects:   projects,
		correlator: correlator,
		teams:      teams,
		repos:      repos,
		pollCfg:    pollCfg,
	}
}

// CloneParams are the caller-supplied attributes of the new project.
type CloneParams struct {
	TemplateProject string
	Name            string
	Description     string
	Visibility      string
}

// CloneResult summarizes a completed clone run.
type CloneResult struct {
	Template         *azdo.Project
	Target           *azdo.Project
	Message          string
	AreasMapped      int
	IterationsMapped int
	TeamsCloned      int
	Repositories     int
	Imports          []RepositoryImport
}

// CloneProject reads the template project, queues creation of the target
// project with the template's capability descriptors, and waits until the
// target reaches the wellFormed state. It returns the target, the template
// snapshot, and any non-fatal message the create call produced.
func (c *Coordinator) CloneProject(ctx context.Context, params CloneParams) (*azdo.Project, *azdo.Project, string, error) {
	template, err := c.projects.GetProject(ctx, params.TemplateProject)
	if err != nil {
		return nil, nil, "", err
	}

	ref, err := c.projects.CreateProject(ctx, &azdo.CreateProjectRequest{
		Name:         params.Name,
		Description:  params.Description,
		Visibility:   params.Visibility,
		Capabilities: template.Capabilities,
	})
	if err != nil {
		return nil, template, "", err
	}

	target, err := poll.Until(ctx, c.pollCfg,
		func(ctx context.Context) (*azdo.Project, error) {
			p, err := c.projects.GetProject(ctx, params.Name)
			if cerr.IsCode(err, cerr.NotFound) {
				// The project may not be readable immediately after the
				// create is queued; treat absence as a not-yet-ready state.
				return &azdo.Project{Name: params.Name}, nil
			}
			return p, err
		},
		func(p *azdo.Project) bool { return p.State == azdo.ProjectStateWellFormed },
	)
	if err != nil {
		return target, template, ref.Message, err
	}
	return target, template, ref.Message, nil
}

// Run executes the whole clone in dependency order and returns the result
// summary. Any failing phase aborts the run; there is no partial-success
// bookkeeping or resumable retry.
func (c *Coordinator) Run(ctx context.Context, params CloneParams) (*CloneResult, error) {
	target, template, message, err := c.CloneProject(ctx, params)
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "project created", "template", template.Name, "target", target.Name)

	areas, err := c.correlator.CloneTree(ctx, template.Name, target.Name, azdo.TreeStructureGroupAreas)
	if err != nil {
		return nil, err
	}
	iterations, err := c.correlator.CloneTree(ctx, template.Name, target.Name, azdo.TreeStructureGroupIterations)
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "classification trees replicated", "areas", len(areas), "iterations", len(iterations))

	teams, err := c.teams.CloneTeams(ctx, template, target, iterations)
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "teams replicated", "count", teams)

	imports, err := c.repos.CloneRepositories(ctx, template, target)
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "repositories replicated", "count", len(imports))

	return &CloneResult{
		Template:         template,
		Target:           target,
		Message:          message,
		AreasMapped:      len(areas),
		IterationsMapped: len(iterations),
		TeamsCloned:      teams,
		Repositories:     len(imports),
		Imports:          imports,
	}, nil
}
