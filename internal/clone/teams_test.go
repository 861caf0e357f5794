package clone

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kazz187/blueprint/internal/azdo"
	"github.com/kazz187/blueprint/pkg/cerr"
)

type mockTeamGateway struct {
	teams      map[string][]azdo.Team
	failCreate map[string]error
	created    []string
}

func (m *mockTeamGateway) ListTeams(_ context.Context, projectID string) ([]azdo.Team, error) {
	return m.teams[projectID], nil
}

func (m *mockTeamGateway) CreateTeam(_ context.Context, _ string, req *azdo.CreateTeamRequest) (*azdo.Team, error) {
	if err := m.failCreate[req.Name]; err != nil {
		return nil, err
	}
	m.created = append(m.created, req.Name)
	return &azdo.Team{ID: "new-" + req.Name, Name: req.Name}, nil
}

// mockWorkGateway stores per-resource fixtures keyed by "project/team" (or
// "project/team/board") and records every write.
type mockWorkGateway struct {
	settings           map[string]*azdo.TeamSettings
	settingsPatches    map[string]*azdo.TeamSettingsPatch
	fieldValues        map[string]*azdo.TeamFieldValues
	updatedFieldValues map[string]*azdo.TeamFieldValues
	iterations         map[string][]azdo.TeamSettingsIteration
	addedIterations    map[string][]string
	deletedIterations  map[string][]string
	boards             map[string][]azdo.Board
	columns            map[string][]azdo.BoardColumn
	updatedColumns     map[string][]azdo.BoardColumn
	rows               map[string][]azdo.BoardRow
	updatedRows        map[string][]azdo.BoardRow
	cardSettings       map[string]*azdo.BoardCardSettings
	updatedSettings    map[string]*azdo.BoardCardSettings
	cardRules          map[string]*azdo.BoardCardRuleSettings
	updatedRules       map[string]*azdo.BoardCardRuleSettings
}

func newMockWorkGateway() *mockWorkGateway {
	return &mockWorkGateway{
		settings:           map[string]*azdo.TeamSettings{},
		settingsPatches:    map[string]*azdo.TeamSettingsPatch{},
		fieldValues:        map[string]*azdo.TeamFieldValues{},
		updatedFieldValues: map[string]*azdo.TeamFieldValues{},
		iterations:         map[string][]azdo.TeamSettingsIteration{},
		addedIterations:    map[string][]string{},
		deletedIterations:  map[string][]string{},
		boards:             map[string][]azdo.Board{},
		columns:            map[string][]azdo.BoardColumn{},
		updatedColumns:     map[string][]azdo.BoardColumn{},
		rows:               map[string][]azdo.BoardRow{},
		updatedRows:        map[string][]azdo.BoardRow{},
		cardSettings:       map[string]*azdo.BoardCardSettings{},
		updatedSettings:    map[string]*azdo.BoardCardSettings{},
		cardRules:          map[string]*azdo.BoardCardRuleSettings{},
		updatedRules:       map[string]*azdo.BoardCardRuleSettings{},
	}
}

func workKey(parts ...string) string {
	return strings.Join(parts, "/")
}

func (m *mockWorkGateway) GetTeamSettings(_ context.Context, project, team string) (*azdo.TeamSettings, error) {
	if s, ok := m.settings[workKey(project, team)]; ok {
		return s, nil
	}
	return &azdo.TeamSettings{}, nil
}

func (m *mockWorkGateway) UpdateTeamSettings(_ context.Context, project, team string, patch *azdo.TeamSettingsPatch) error {
	m.settingsPatches[workKey(project, team)] = patch
	return nil
}

func (m *mockWorkGateway) GetTeamFieldValues(_ context.Context, project, team string) (*azdo.TeamFieldValues, error) {
	if v, ok := m.fieldValues[workKey(project, team)]; ok {
		return v, nil
	}
	return &azdo.TeamFieldValues{}, nil
}

func (m *mockWorkGateway) UpdateTeamFieldValues(_ context.Context, project, team string, values *azdo.TeamFieldValues) error {
	m.updatedFieldValues[workKey(project, team)] = values
	return nil
}

func (m *mockWorkGateway) ListTeamIterations(_ context.Context, project, team string) ([]azdo.TeamSettingsIteration, error) {
	return m.iterations[workKey(project, team)], nil
}

func (m *mockWorkGateway) AddTeamIteration(_ context.Context, project, team, iterationID string) error {
	k := workKey(project, team)
	m.addedIterations[k] = append(m.addedIterations[k], iterationID)
	return nil
}

func (m *mockWorkGateway) DeleteTeamIteration(_ context.Context, project, team, iterationID string) error {
	k := workKey(project, team)
	m.deletedIterations[k] = append(m.deletedIterations[k], iterationID)
	return nil
}

func (m *mockWorkGateway) ListBoards(_ context.Context, project, team string) ([]azdo.Board, error) {
	return m.boards[workKey(project, team)], nil
}

func (m *mockWorkGateway) GetBoardColumns(_ context.Context, project, team, board string) ([]azdo.BoardColumn, error) {
	return m.columns[workKey(project, team, board)], nil
}

func (m *mockWorkGateway) UpdateBoardColumns(_ context.Context, project, team, board string, columns []azdo.BoardColumn) error {
	m.updatedColumns[workKey(project, team, board)] = columns
	return nil
}

func (m *mockWorkGateway) GetBoardRows(_ context.Context, project, team, board string) ([]azdo.BoardRow, error) {
	return m.rows[workKey(project, team, board)], nil
}

func (m *mockWorkGateway) UpdateBoardRows(_ context.Context, project, team, board string, rows []azdo.BoardRow) error {
	m.updatedRows[workKey(project, team, board)] = rows
	return nil
}

func (m *mockWorkGateway) GetCardSettings(_ context.Context, project, team, board string) (*azdo.BoardCardSettings, error) {
	if s, ok := m.cardSettings[workKey(project, team, board)]; ok {
		return s, nil
	}
	return &azdo.BoardCardSettings{}, nil
}

func (m *mockWorkGateway) UpdateCardSettings(_ context.Context, project, team, board string, settings *azdo.BoardCardSettings) error {
	m.updatedSettings[workKey(project, team, board)] = settings
	return nil
}

func (m *mockWorkGateway) GetCardRules(_ context.Context, project, team, board string) (*azdo.BoardCardRuleSettings, error) {
	if r, ok := m.cardRules[workKey(project, team, board)]; ok {
		return r, nil
	}
	return &azdo.BoardCardRuleSettings{}, nil
}

func (m *mockWorkGateway) UpdateCardRules(_ context.Context, project, team, board string, rules *azdo.BoardCardRuleSettings) error {
	m.updatedRules[workKey(project, team, board)] = rules
	return nil
}

func testProjects() (*azdo.Project, *azdo.Project) {
	template := &azdo.Project{
		ID:          "template-id",
		Name:        templateProject,
		DefaultTeam: &azdo.TeamRef{ID: "template-default", Name: "Template Team"},
	}
	target := &azdo.Project{
		ID:          "target-id",
		Name:        targetProject,
		DefaultTeam: &azdo.TeamRef{ID: "target-default", Name: "NewProject Team"},
	}
	return template, target
}

func TestTeamReplicator_MapTeams(t *testing.T) {
	template, target := testProjects()
	teams := &mockTeamGateway{
		failCreate: map[string]error{
			"Broken": cerr.NewError(cerr.InvalidArgument, "team name rejected", nil),
		},
	}
	replicator := NewTeamReplicator(teams, newMockWorkGateway())

	templateTeams := []azdo.Team{
		{ID: "template-default", Name: "Template Team"},
		{ID: "team-a", Name: "Alpha"},
		{ID: "team-b", Name: "Broken"},
	}

	mapped := replicator.MapTeams(context.Background(), target, templateTeams, template.DefaultTeam.ID, target.DefaultTeam.ID)

	assert.Equal(t, map[string]string{
		"template-default": "target-default",
		"team-a":           "new-Alpha",
		"team-b":           "",
	}, mapped)
	// The default team already exists in the target project.
	assert.Equal(t, []string{"Alpha"}, teams.created)
}

func TestTeamReplicator_CloneTeamSettings(t *testing.T) {
	template, target := testProjects()
	work := newMockWorkGateway()
	work.settings[workKey(template.Name, "team-a")] = &azdo.TeamSettings{
		BacklogIteration:    &azdo.TeamSettingsIteration{ID: "t-backlog"},
		DefaultIteration:    &azdo.TeamSettingsIteration{ID: "t-sprint1"},
		BugsBehavior:        "asRequirements",
		WorkingDays:         []string{"monday", "tuesday"},
		BacklogVisibilities: map[string]bool{"Microsoft.EpicCategory": true},
	}
	replicator := NewTeamReplicator(&mockTeamGateway{}, work)

	iterations := IdentityMap{
		"t-backlog": "g-backlog",
		"t-sprint1": "g-sprint1",
	}
	err := replicator.CloneTeamSettings(context.Background(), template, target, "team-a", "team-b", iterations)
	require.NoError(t, err)

	patch := work.settingsPatches[workKey(target.Name, "team-b")]
	require.NotNil(t, patch)
	require.NotNil(t, patch.BacklogIteration)
	assert.Equal(t, "g-backlog", *patch.BacklogIteration)
	require.NotNil(t, patch.DefaultIteration)
	assert.Equal(t, "g-sprint1", *patch.DefaultIteration)
	assert.Nil(t, patch.DefaultIterationMacro)
	require.NotNil(t, patch.BugsBehavior)
	assert.Equal(t, "asRequirements", *patch.BugsBehavior)
	assert.Equal(t, []string{"monday", "tuesday"}, patch.WorkingDays)
	assert.Equal(t, map[string]bool{"Microsoft.EpicCategory": true}, patch.BacklogVisibilities)
}

func TestTeamReplicator_CloneTeamSettings_MacroTakesPrecedence(t *testing.T) {
	template, target := testProjects()
	work := newMockWorkGateway()
	work.settings[workKey(template.Name, "team-a")] = &azdo.TeamSettings{
		DefaultIteration:      &azdo.TeamSettingsIteration{ID: "t-sprint1"},
		DefaultIterationMacro: "@currentIteration",
	}
	replicator := NewTeamReplicator(&mockTeamGateway{}, work)

	err := replicator.CloneTeamSettings(context.Background(), template, target, "team-a", "team-b", IdentityMap{"t-sprint1": "g-sprint1"})
	require.NoError(t, err)

	patch := work.settingsPatches[workKey(target.Name, "team-b")]
	require.NotNil(t, patch)
	require.NotNil(t, patch.DefaultIterationMacro)
	assert.Equal(t, "@currentIteration", *patch.DefaultIterationMacro)
	assert.Nil(t, patch.DefaultIteration)
}

func TestTeamReplicator_CloneTeamFieldValues(t *testing.T) {
	template, target := testProjects()
	work := newMockWorkGateway()
	work.fieldValues[workKey(template.Name, "team-a")] = &azdo.TeamFieldValues{
		DefaultValue: `Template\Web`,
		Values: []azdo.TeamFieldValue{
			{Value: `Template\Web`, IncludeChildren: true},
			{Value: `Template\API`, IncludeChildren: false},
		},
	}
	replicator := NewTeamReplicator(&mockTeamGateway{}, work)

	err := replicator.CloneTeamFieldValues(context.Background(), template, target, "team-a", "team-b")
	require.NoError(t, err)

	got := work.updatedFieldValues[workKey(target.Name, "team-b")]
	require.NotNil(t, got)
	assert.Equal(t, `NewProject\Web`, got.DefaultValue)
	assert.Equal(t, []azdo.TeamFieldValue{
		{Value: `NewProject\Web`, IncludeChildren: true},
		{Value: `NewProject\API`, IncludeChildren: false},
	}, got.Values)
}

func TestTeamReplicator_CloneTeamIterations(t *testing.T) {
	template, target := testProjects()
	work := newMockWorkGateway()
	work.iterations[workKey(template.Name, "team-a")] = []azdo.TeamSettingsIteration{
		{ID: "t-sprint1", Name: "Sprint 1"},
		{ID: "t-sprint2", Name: "Sprint 2"},
		{ID: "t-unmapped", Name: "Sprint 3"},
	}
	work.iterations[workKey(target.Name, "team-b")] = []azdo.TeamSettingsIteration{
		{ID: "g-stale", Name: "Stale Sprint"},
	}
	replicator := NewTeamReplicator(&mockTeamGateway{}, work)

	iterations := IdentityMap{
		"t-sprint1": "g-sprint1",
		"t-sprint2": "g-sprint2",
	}
	err := replicator.CloneTeamIterations(context.Background(), template, target, "team-a", "team-b", iterations)
	require.NoError(t, err)

	k := workKey(target.Name, "team-b")
	assert.Equal(t, []string{"g-stale"}, work.deletedIterations[k])
	// The unmapped template sprint is skipped.
	assert.Equal(t, []string{"g-sprint1", "g-sprint2"}, work.addedIterations[k])
}

func TestTeamReplicator_CloneTeams(t *testing.T) {
	template, target := testProjects()
	teams := &mockTeamGateway{
		teams: map[string][]azdo.Team{
			template.ID: {
				{ID: "template-default", Name: "Template Team"},
				{ID: "team-a", Name: "Alpha"},
				{ID: "team-b", Name: "Broken"},
			},
		},
		failCreate: map[string]error{
			"Broken": cerr.NewError(cerr.InvalidArgument, "team name rejected", nil),
		},
	}
	replicator := NewTeamReplicator(teams, newMockWorkGateway())

	cloned, err := replicator.CloneTeams(context.Background(), template, target, IdentityMap{})
	require.NoError(t, err)
	// Default team and Alpha were configured; Broken was skipped.
	assert.Equal(t, 2, cloned)
}
