package azdo

import (
	"context"
	"net/http"
)

func (c *Client) ListTeams(ctx context.Context, projectID string) ([]Team, error) {
	var resp listResponse[Team]
	if err := c.doJSON(ctx, http.MethodGet, "/_apis/projects/"+escape(projectID)+"/teams", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Value, nil
}

func (c *Client) CreateTeam(ctx context.Context, projectID string, req *CreateTeamRequest) (*Team, error) {
	var team Team
	if err := c.doJSON(ctx, http.MethodPost, "/_apis/projects/"+escape(projectID)+"/teams", nil, req, &team); err != nil {
		return nil, err
	}
	return &team, nil
}
