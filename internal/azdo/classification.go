package azdo

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// treeDepthUnbounded is passed as $depth to read a whole tree in one call.
const treeDepthUnbounded = 2147483647

func classificationNodeURL(project string, group TreeStructureGroup, path string) string {
	u := "/" + escape(project) + "/_apis/wit/classificationnodes/" + string(group)
	for _, seg := range strings.Split(path, "\\") {
		if seg == "" {
			continue
		}
		u += "/" + escape(seg)
	}
	return u
}

// GetClassificationNode reads the node at path (empty path for the tree
// root) together with all of its descendants.
func (c *Client) GetClassificationNode(ctx context.Context, project string, group TreeStructureGroup, path string) (*ClassificationNode, error) {
	query := url.Values{}
	query.Set("$depth", strconv.Itoa(treeDepthUnbounded))

	var node ClassificationNode
	if err := c.doJSON(ctx, http.MethodGet, classificationNodeURL(project, group, path), query, nil, &node); err != nil {
		return nil, err
	}
	return &node, nil
}

// CreateClassificationNode creates a child node under parentPath. A node
// that already exists at that position surfaces as an AlreadyExists error;
// callers that tolerate collisions re-read the existing node.
func (c *Client) CreateClassificationNode(ctx context.Context, project string, group TreeStructureGroup, parentPath string, req *CreateClassificationNodeRequest) (*ClassificationNode, error) {
	var node ClassificationNode
	if err := c.doJSON(ctx, http.MethodPost, classificationNodeURL(project, group, parentPath), nil, req, &node); err != nil {
		return nil, err
	}
	return &node, nil
}

func (c *Client) DeleteClassificationNode(ctx context.Context, project string, group TreeStructureGroup, path string) error {
	return c.doJSON(ctx, http.MethodDelete, classificationNodeURL(project, group, path), nil, nil, nil)
}
