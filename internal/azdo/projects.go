package azdo

import (
	"context"
	"net/http"
	"net/url"
)

// GetProject reads one project by id or name, including its capability
// descriptors and default team.
func (c *Client) GetProject(ctx context.Context, projectIDOrName string) (*Project, error) {
	query := url.Values{}
	query.Set("includeCapabilities", "true")

	var p Project
	if err := c.doJSON(ctx, http.MethodGet, "/_apis/projects/"+escape(projectIDOrName), query, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	var resp listResponse[Project]
	if err := c.doJSON(ctx, http.MethodGet, "/_apis/projects", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Value, nil
}

// CreateProject queues creation of a project and returns the operation
// reference. Creation is asynchronous; callers poll GetProject until the
// project state reaches wellFormed.
func (c *Client) CreateProject(ctx context.Context, req *CreateProjectRequest) (*OperationReference, error) {
	var ref OperationReference
	if err := c.doJSON(ctx, http.MethodPost, "/_apis/projects", nil, req, &ref); err != nil {
		return nil, err
	}
	return &ref, nil
}

func (c *Client) DeleteProject(ctx context.Context, projectID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/_apis/projects/"+escape(projectID), nil, nil, nil)
}
