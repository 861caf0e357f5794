package clone

import (
	"context"
	"log/slog"

	"github.com/kazz187/blueprint/internal/azdo"
	"github.com/kazz187/blueprint/pkg/cerr"
)

// Correlator rebuilds a classification-node tree (areas or iterations) in
// the target project and correlates template node identifiers with target
// node identifiers by name.
type Correlator struct {
	gateway ClassificationGateway
}

func NewCorrelator(gateway ClassificationGateway) *Correlator {
	return &Correlator{gateway: gateway}
}

// CloneTree makes the target project's tree structurally equivalent to the
// template project's tree and returns the identity map between the two.
// The target tree is reset first, so matching only ever sees freshly
// created nodes.
func (c *Correlator) CloneTree(ctx context.Context, templateProject, targetProject string, group azdo.TreeStructureGroup) (IdentityMap, error) {
	templateTree, err := c.FetchTree(ctx, templateProject, group)
	if err != nil {
		return nil, err
	}
	if err := c.Reset(ctx, targetProject, group); err != nil {
		return nil, err
	}
	targetTree, err := c.ReplicateTree(ctx, targetProject, templateTree, group)
	if err != nil {
		return nil, err
	}
	return BuildMap(templateTree, targetTree), nil
}

// FetchTree reads the whole tree of the given structure group in one call.
func (c *Correlator) FetchTree(ctx context.Context, project string, group azdo.TreeStructureGroup) (*azdo.ClassificationNode, error) {
	return c.gateway.GetClassificationNode(ctx, project, group, "")
}

// Reset deletes every non-root node of the target tree. Deleting a root
// child removes its whole subtree.
func (c *Correlator) Reset(ctx context.Context, project string, group azdo.TreeStructureGroup) error {
	root, err := c.gateway.GetClassificationNode(ctx, project, group, "")
	if err != nil {
		return err
	}
	for _, child := range root.Children {
		if err := c.gateway.DeleteClassificationNode(ctx, project, group, child.Name); err != nil {
			return err
		}
	}
	return nil
}

// ReplicateTree recreates the template tree's non-root nodes in the target
// project and returns the resulting target tree. A creation conflict means
// the node already exists (the platform keeps one default node at the tree
// root); the existing node is re-read and reused. Other client errors skip
// the node and its subtree; server errors abort.
func (c *Correlator) ReplicateTree(ctx context.Context, project string, templateTree *azdo.ClassificationNode, group azdo.TreeStructureGroup) (*azdo.ClassificationNode, error) {
	root, err := c.gateway.GetClassificationNode(ctx, project, group, "")
	if err != nil {
		return nil, err
	}
	children, err := c.replicateChildren(ctx, project, group, "", templateTree.Children)
	if err != nil {
		return nil, err
	}
	root.Children = children
	return root, nil
}

func (c *Correlator) replicateChildren(ctx context.Context, project string, group azdo.TreeStructureGroup, parentPath string, templateChildren []*azdo.ClassificationNode) ([]*azdo.ClassificationNode, error) {
	var out []*azdo.ClassificationNode
	for _, child := range templateChildren {
		created, err := c.gateway.CreateClassificationNode(ctx, project, group, parentPath, &azdo.CreateClassificationNodeRequest{
			Name:       child.Name,
			Attributes: child.Attributes,
		})
		if err != nil {
			switch {
			case cerr.IsCode(err, cerr.AlreadyExists):
				created, err = c.gateway.GetClassificationNode(ctx, project, group, joinNodePath(parentPath, child.Name))
				if err != nil {
					return nil, err
				}
			case isDefinitiveClientError(err):
				slog.WarnContext(ctx, "skipping classification node", "name", child.Name, "parent", parentPath, "error", err)
				continue
			default:
				return nil, err
			}
		}
		grandchildren, err := c.replicateChildren(ctx, project, group, joinNodePath(parentPath, child.Name), child.Children)
		if err != nil {
			return nil, err
		}
		created.Children = grandchildren
		out = append(out, created)
	}
	return out, nil
}

// isDefinitiveClientError reports whether err is a 4xx-class condition that
// will not change on retry. Transport failures, server errors, timeouts and
// cancellation are not definitive and must abort the replication.
func isDefinitiveClientError(err error) bool {
	switch cerr.CodeOf(err) {
	case cerr.InvalidArgument, cerr.NotFound, cerr.AlreadyExists,
		cerr.PermissionDenied, cerr.FailedPrecondition, cerr.OutOfRange,
		cerr.Unauthenticated:
		return true
	default:
		return false
	}
}

func joinNodePath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "\\" + name
}

// BuildMap pairs every template node with the first target node of the same
// name among the corresponding siblings, depth-first in template order. The
// two roots are paired unconditionally since they carry the project names
// and never match by name. Unmatched template nodes are omitted; duplicate
// sibling names resolve to the first match.
func BuildMap(templateTree, targetTree *azdo.ClassificationNode) IdentityMap {
	m := IdentityMap{}
	if templateTree == nil || targetTree == nil {
		return m
	}
	m[templateTree.Identifier] = targetTree.Identifier
	pairChildren(m, templateTree.Children, targetTree.Children)
	return m
}

func pairChildren(m IdentityMap, templateChildren, targetChildren []*azdo.ClassificationNode) {
	for _, tmpl := range templateChildren {
		for _, tgt := range targetChildren {
			if tgt.Name == tmpl.Name {
				m[tmpl.Identifier] = tgt.Identifier
				pairChildren(m, tmpl.Children, tgt.Children)
				break
			}
		}
	}
}
