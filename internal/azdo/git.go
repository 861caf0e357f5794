package azdo

import (
	"context"
	"net/http"
	"strconv"
)

func (c *Client) ListRepositories(ctx context.Context, project string) ([]GitRepository, error) {
	var resp listResponse[GitRepository]
	if err := c.doJSON(ctx, http.MethodGet, "/"+escape(project)+"/_apis/git/repositories", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Value, nil
}

func (c *Client) CreateRepository(ctx context.Context, project string, req *CreateRepositoryRequest) (*GitRepository, error) {
	var repo GitRepository
	if err := c.doJSON(ctx, http.MethodPost, "/"+escape(project)+"/_apis/git/repositories", nil, req, &repo); err != nil {
		return nil, err
	}
	return &repo, nil
}

func (c *Client) DeleteRepository(ctx context.Context, project, repositoryID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/"+escape(project)+"/_apis/git/repositories/"+escape(repositoryID), nil, nil, nil)
}

// CreateImportRequest queues an import of a remote repository's content into
// an existing empty repository. The import runs asynchronously; its status
// is observable through GetImportRequest.
func (c *Client) CreateImportRequest(ctx context.Context, project, repositoryID string, req *GitImportRequest) (*GitImportRequest, error) {
	var created GitImportRequest
	if err := c.doJSON(ctx, http.MethodPost, "/"+escape(project)+"/_apis/git/repositories/"+escape(repositoryID)+"/importRequests", nil, req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) GetImportRequest(ctx context.Context, project, repositoryID string, importRequestID int) (*GitImportRequest, error) {
	var req GitImportRequest
	path := "/" + escape(project) + "/_apis/git/repositories/" + escape(repositoryID) + "/importRequests/" + strconv.Itoa(importRequestID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &req); err != nil {
		return nil, err
	}
	return &req, nil
}
