package azdo

import (
	"context"
	"net/http"
)

// CreateServiceEndpoint creates a project-scoped connection to an external
// git host. Import requests reference the returned endpoint id for
// credentials.
func (c *Client) CreateServiceEndpoint(ctx context.Context, endpoint *ServiceEndpoint) (*ServiceEndpoint, error) {
	var created ServiceEndpoint
	if err := c.doJSON(ctx, http.MethodPost, "/_apis/serviceendpoint/endpoints", nil, endpoint, &created); err != nil {
		return nil, err
	}
	return &created, nil
}
