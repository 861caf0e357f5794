package clone

import (
	"context"
	"log/slog"
	"strings"

	"github.com/kazz187/blueprint/internal/azdo"
)

// TeamReplicator clones teams and their configuration (settings, field
// values, sprint assignments, boards) from the template project to the
// target project.
type TeamReplicator struct {
	teams TeamGateway
	work  WorkGateway
}

func NewTeamReplicator(teams TeamGateway, work WorkGateway) *TeamReplicator {
	return &TeamReplicator{teams: teams, work: work}
}

// CloneTeams maps all template teams into the target project and replicates
// each mapped team's configuration. The iterations map must come from a
// completed classification-tree clone of the same project pair. Returns the
// number of teams whose configuration was replicated.
func (t *TeamReplicator) CloneTeams(ctx context.Context, template, target *azdo.Project, iterations IdentityMap) (int, error) {
	templateTeams, err := t.teams.ListTeams(ctx, template.ID)
	if err != nil {
		return 0, err
	}
	mapped := t.MapTeams(ctx, target, templateTeams, template.DefaultTeam.ID, target.DefaultTeam.ID)

	cloned := 0
	for oldID, newID := range mapped {
		if newID == "" {
			continue
		}
		if err := t.cloneTeamConfiguration(ctx, template, target, oldID, newID, iterations); err != nil {
			return cloned, err
		}
		cloned++
	}
	return cloned, nil
}

// MapTeams creates every template team in the target project except the
// template's default team, which already exists there under the target's
// default team identity and is mapped without a create call. A failed
// create maps to the zero identifier so downstream steps skip that team.
func (t *TeamReplicator) MapTeams(ctx context.Context, target *azdo.Project, templateTeams []azdo.Team, templateDefaultTeamID, targetDefaultTeamID string) map[string]string {
	mapped := map[string]string{
		templateDefaultTeamID: targetDefaultTeamID,
	}
	for _, team := range templateTeams {
		if team.ID == templateDefaultTeamID {
			continue
		}
		created, err := t.teams.CreateTeam(ctx, target.ID, &azdo.CreateTeamRequest{
			Name:        team.Name,
			Description: team.Description,
		})
		if err != nil {
			slog.WarnContext(ctx, "failed to create team, skipping its configuration", "team", team.Name, "error", err)
			mapped[team.ID] = ""
			continue
		}
		mapped[team.ID] = created.ID
	}
	return mapped
}

func (t *TeamReplicator) cloneTeamConfiguration(ctx context.Context, template, target *azdo.Project, templateTeam, targetTeam string, iterations IdentityMap) error {
	if err := t.CloneTeamSettings(ctx, template, target, templateTeam, targetTeam, iterations); err != nil {
		return err
	}
	if err := t.CloneTeamFieldValues(ctx, template, target, templateTeam, targetTeam); err != nil {
		return err
	}
	if err := t.CloneTeamIterations(ctx, template, target, templateTeam, targetTeam, iterations); err != nil {
		return err
	}
	return t.CloneBoards(ctx, template, target, templateTeam, targetTeam)
}

// CloneTeamSettings reads the template team's settings and applies them to
// the target team with iteration references rewritten through the identity
// map. When the template carries a default-iteration macro the macro is
// copied verbatim and the default-iteration reference is omitted; the two
// are mutually exclusive on the platform side.
func (t *TeamReplicator) CloneTeamSettings(ctx context.Context, template, target *azdo.Project, templateTeam, targetTeam string, iterations IdentityMap) error {
	settings, err := t.work.GetTeamSettings(ctx, template.Name, templateTeam)
	if err != nil {
		return err
	}

	patch := &azdo.TeamSettingsPatch{
		WorkingDays:         settings.WorkingDays,
		BacklogVisibilities: settings.BacklogVisibilities,
	}
	if settings.BugsBehavior != "" {
		patch.BugsBehavior = &settings.BugsBehavior
	}
	if settings.BacklogIteration != nil {
		id := iterations.ResolveOrZero(settings.BacklogIteration.ID)
		patch.BacklogIteration = &id
	}
	if settings.DefaultIterationMacro != "" {
		patch.DefaultIterationMacro = &settings.DefaultIterationMacro
	} else if settings.DefaultIteration != nil {
		id := iterations.ResolveOrZero(settings.DefaultIteration.ID)
		patch.DefaultIteration = &id
	}

	return t.work.UpdateTeamSettings(ctx, target.Name, targetTeam, patch)
}

// CloneTeamFieldValues copies the template team's area-path assignments,
// rewriting the template project name to the target project name. This is a
// literal substring replace, not a path-segment-aware rewrite: a target
// name that also occurs inside an unrelated segment is rewritten too.
func (t *TeamReplicator) CloneTeamFieldValues(ctx context.Context, template, target *azdo.Project, templateTeam, targetTeam string) error {
	values, err := t.work.GetTeamFieldValues(ctx, template.Name, templateTeam)
	if err != nil {
		return err
	}

	rewritten := &azdo.TeamFieldValues{
		DefaultValue: strings.ReplaceAll(values.DefaultValue, template.Name, target.Name),
	}
	for _, v := range values.Values {
		rewritten.Values = append(rewritten.Values, azdo.TeamFieldValue{
			Value:           strings.ReplaceAll(v.Value, template.Name, target.Name),
			IncludeChildren: v.IncludeChildren,
		})
	}

	return t.work.UpdateTeamFieldValues(ctx, target.Name, targetTeam, rewritten)
}

// CloneTeamIterations replaces the target team's sprint list with the
// template team's, resolved through the iteration identity map. Template
// sprints with no mapped counterpart are skipped.
func (t *TeamReplicator) CloneTeamIterations(ctx context.Context, template, target *azdo.Project, templateTeam, targetTeam string, iterations IdentityMap) error {
	current, err := t.work.ListTeamIterations(ctx, target.Name, targetTeam)
	if err != nil {
		return err
	}
	for _, it := range current {
		if err := t.work.DeleteTeamIteration(ctx, target.Name, targetTeam, it.ID); err != nil {
			return err
		}
	}

	templateIterations, err := t.work.ListTeamIterations(ctx, template.Name, templateTeam)
	if err != nil {
		return err
	}
	for _, it := range templateIterations {
		id, ok := iterations.Resolve(it.ID)
		if !ok {
			slog.WarnContext(ctx, "template sprint has no mapped iteration, skipping", "iteration", it.Name)
			continue
		}
		if err := t.work.AddTeamIteration(ctx, target.Name, targetTeam, id); err != nil {
			return err
		}
	}
	return nil
}
