package azdo

import (
	"context"
	"net/http"
)

func teamWorkURL(project, team, suffix string) string {
	return "/" + escape(project) + "/" + escape(team) + "/_apis/work/" + suffix
}

func (c *Client) GetTeamSettings(ctx context.Context, project, team string) (*TeamSettings, error) {
	var s TeamSettings
	if err := c.doJSON(ctx, http.MethodGet, teamWorkURL(project, team, "teamsettings"), nil, nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) UpdateTeamSettings(ctx context.Context, project, team string, patch *TeamSettingsPatch) error {
	return c.doJSON(ctx, http.MethodPatch, teamWorkURL(project, team, "teamsettings"), nil, patch, nil)
}

func (c *Client) GetTeamFieldValues(ctx context.Context, project, team string) (*TeamFieldValues, error) {
	var v TeamFieldValues
	if err := c.doJSON(ctx, http.MethodGet, teamWorkURL(project, team, "teamsettings/teamfieldvalues"), nil, nil, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (c *Client) UpdateTeamFieldValues(ctx context.Context, project, team string, values *TeamFieldValues) error {
	return c.doJSON(ctx, http.MethodPatch, teamWorkURL(project, team, "teamsettings/teamfieldvalues"), nil, values, nil)
}

// ListTeamIterations returns the iterations assigned to the team (the
// sprint list, distinct from the project iteration tree).
func (c *Client) ListTeamIterations(ctx context.Context, project, team string) ([]TeamSettingsIteration, error) {
	var resp listResponse[TeamSettingsIteration]
	if err := c.doJSON(ctx, http.MethodGet, teamWorkURL(project, team, "teamsettings/iterations"), nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Value, nil
}

// AddTeamIteration assigns the iteration node with the given identifier to
// the team.
func (c *Client) AddTeamIteration(ctx context.Context, project, team, iterationID string) error {
	body := map[string]string{"id": iterationID}
	return c.doJSON(ctx, http.MethodPost, teamWorkURL(project, team, "teamsettings/iterations"), nil, body, nil)
}

func (c *Client) DeleteTeamIteration(ctx context.Context, project, team, iterationID string) error {
	return c.doJSON(ctx, http.MethodDelete, teamWorkURL(project, team, "teamsettings/iterations/"+escape(iterationID)), nil, nil, nil)
}

// ListBoards returns one board per backlog level for the team.
func (c *Client) ListBoards(ctx context.Context, project, team string) ([]Board, error) {
	var resp listResponse[Board]
	if err := c.doJSON(ctx, http.MethodGet, teamWorkURL(project, team, "boards"), nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Value, nil
}

func (c *Client) GetBoardColumns(ctx context.Context, project, team, board string) ([]BoardColumn, error) {
	var resp listResponse[BoardColumn]
	if err := c.doJSON(ctx, http.MethodGet, teamWorkURL(project, team, "boards/"+escape(board)+"/columns"), nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Value, nil
}

// UpdateBoardColumns replaces the full column list of the board.
func (c *Client) UpdateBoardColumns(ctx context.Context, project, team, board string, columns []BoardColumn) error {
	return c.doJSON(ctx, http.MethodPut, teamWorkURL(project, team, "boards/"+escape(board)+"/columns"), nil, columns, nil)
}

func (c *Client) GetBoardRows(ctx context.Context, project, team, board string) ([]BoardRow, error) {
	var resp listResponse[BoardRow]
	if err := c.doJSON(ctx, http.MethodGet, teamWorkURL(project, team, "boards/"+escape(board)+"/rows"), nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Value, nil
}

// UpdateBoardRows replaces the full row list of the board.
func (c *Client) UpdateBoardRows(ctx context.Context, project, team, board string, rows []BoardRow) error {
	return c.doJSON(ctx, http.MethodPut, teamWorkURL(project, team, "boards/"+escape(board)+"/rows"), nil, rows, nil)
}

func (c *Client) GetCardSettings(ctx context.Context, project, team, board string) (*BoardCardSettings, error) {
	var s BoardCardSettings
	if err := c.doJSON(ctx, http.MethodGet, teamWorkURL(project, team, "boards/"+escape(board)+"/cardsettings"), nil, nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) UpdateCardSettings(ctx context.Context, project, team, board string, settings *BoardCardSettings) error {
	return c.doJSON(ctx, http.MethodPut, teamWorkURL(project, team, "boards/"+escape(board)+"/cardsettings"), nil, settings, nil)
}

func (c *Client) GetCardRules(ctx context.Context, project, team, board string) (*BoardCardRuleSettings, error) {
	var s BoardCardRuleSettings
	if err := c.doJSON(ctx, http.MethodGet, teamWorkURL(project, team, "boards/"+escape(board)+"/cardrulesettings"), nil, nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) UpdateCardRules(ctx context.Context, project, team, board string, rules *BoardCardRuleSettings) error {
	return c.doJSON(ctx, http.MethodPatch, teamWorkURL(project, team, "boards/"+escape(board)+"/cardrulesettings"), nil, rules, nil)
}
