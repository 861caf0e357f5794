package clone

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kazz187/blueprint/internal/azdo"
	"github.com/kazz187/blueprint/pkg/cerr"
)

const (
	templateProject = "Template"
	targetProject   = "NewProject"
)

// mockClassificationGateway serves a fixed template tree and fabricates
// target nodes on create. Creates can be forced to fail by node name.
type mockClassificationGateway struct {
	template  *azdo.ClassificationNode
	target    *azdo.ClassificationNode
	existing  map[string]*azdo.ClassificationNode
	createErr map[string]error
	deleted   []string
	created   []string
}

func (m *mockClassificationGateway) GetClassificationNode(_ context.Context, project string, _ azdo.TreeStructureGroup, path string) (*azdo.ClassificationNode, error) {
	if project == templateProject {
		return m.template, nil
	}
	if path == "" {
		return m.target, nil
	}
	if n, ok := m.existing[path]; ok {
		return n, nil
	}
	return nil, cerr.NewError(cerr.NotFound, "node not found", nil)
}

func (m *mockClassificationGateway) CreateClassificationNode(_ context.Context, _ string, _ azdo.TreeStructureGroup, _ string, req *azdo.CreateClassificationNodeRequest) (*azdo.ClassificationNode, error) {
	if err := m.createErr[req.Name]; err != nil {
		return nil, err
	}
	m.created = append(m.created, req.Name)
	return &azdo.ClassificationNode{
		Identifier: "target-" + req.Name,
		Name:       req.Name,
		Attributes: req.Attributes,
	}, nil
}

func (m *mockClassificationGateway) DeleteClassificationNode(_ context.Context, _ string, _ azdo.TreeStructureGroup, path string) error {
	m.deleted = append(m.deleted, path)
	return nil
}

func node(identifier, name string, children ...*azdo.ClassificationNode) *azdo.ClassificationNode {
	return &azdo.ClassificationNode{Identifier: identifier, Name: name, Children: children}
}

func TestBuildMap_PairsRootsUnconditionally(t *testing.T) {
	m := BuildMap(node("t-root", "Template"), node("g-root", "NewProject"))
	assert.Equal(t, IdentityMap{"t-root": "g-root"}, m)
}

func TestBuildMap_MatchesChildrenByExactName(t *testing.T) {
	template := node("t-root", "Template",
		node("t-web", "Web",
			node("t-front", "Frontend"),
		),
		node("t-api", "api"),
		node("t-orphan", "Orphan"),
	)
	target := node("g-root", "NewProject",
		node("g-web", "Web",
			node("g-front", "Frontend"),
		),
		node("g-api", "API"), // case differs, must not pair
	)

	m := BuildMap(template, target)

	assert.Equal(t, IdentityMap{
		"t-root":  "g-root",
		"t-web":   "g-web",
		"t-front": "g-front",
	}, m)
}

func TestBuildMap_DuplicateSiblingNamesResolveToFirstMatch(t *testing.T) {
	template := node("t-root", "Template", node("t-dup", "Dup"))
	target := node("g-root", "NewProject",
		node("g-dup-1", "Dup"),
		node("g-dup-2", "Dup"),
	)

	m := BuildMap(template, target)
	assert.Equal(t, "g-dup-1", m["t-dup"])
}

func TestBuildMap_NilTrees(t *testing.T) {
	assert.Empty(t, BuildMap(nil, node("g-root", "NewProject")))
	assert.Empty(t, BuildMap(node("t-root", "Template"), nil))
}

func TestCorrelator_CloneTree(t *testing.T) {
	gateway := &mockClassificationGateway{
		template: node("t-root", "Template",
			node("t-web", "Web",
				node("t-front", "Frontend"),
			),
			node("t-api", "API"),
		),
		target: node("g-root", "NewProject",
			node("g-stale", "Stale"),
		),
	}
	correlator := NewCorrelator(gateway)

	m, err := correlator.CloneTree(context.Background(), templateProject, targetProject, azdo.TreeStructureGroupAreas)
	require.NoError(t, err)

	// The stale target node is removed before replication.
	assert.Equal(t, []string{"Stale"}, gateway.deleted)
	assert.Equal(t, []string{"Web", "Frontend", "API"}, gateway.created)
	assert.Equal(t, IdentityMap{
		"t-root":  "g-root",
		"t-web":   "target-Web",
		"t-front": "target-Frontend",
		"t-api":   "target-API",
	}, m)
}

func TestCorrelator_ReplicateTree_ReusesConflictingNode(t *testing.T) {
	gateway := &mockClassificationGateway{
		template: node("t-root", "Template",
			node("t-existing", "Existing",
				node("t-child", "Child"),
			),
		),
		target: node("g-root", "NewProject"),
		createErr: map[string]error{
			"Existing": cerr.NewError(cerr.AlreadyExists, "node exists", nil),
		},
		existing: map[string]*azdo.ClassificationNode{
			"Existing": node("g-existing", "Existing"),
		},
	}
	correlator := NewCorrelator(gateway)

	tree, err := correlator.ReplicateTree(context.Background(), targetProject, gateway.template, azdo.TreeStructureGroupAreas)
	require.NoError(t, err)

	require.Len(t, tree.Children, 1)
	assert.Equal(t, "g-existing", tree.Children[0].Identifier)
	// Children of the reused node are still replicated beneath it.
	require.Len(t, tree.Children[0].Children, 1)
	assert.Equal(t, "target-Child", tree.Children[0].Children[0].Identifier)
}

func TestCorrelator_ReplicateTree_SkipsSubtreeOnClientError(t *testing.T) {
	gateway := &mockClassificationGateway{
		template: node("t-root", "Template",
			node("t-bad", "Bad",
				node("t-bad-child", "BadChild"),
			),
			node("t-good", "Good"),
		),
		target: node("g-root", "NewProject"),
		createErr: map[string]error{
			"Bad": cerr.NewError(cerr.InvalidArgument, "invalid node name", nil),
		},
	}
	correlator := NewCorrelator(gateway)

	tree, err := correlator.ReplicateTree(context.Background(), targetProject, gateway.template, azdo.TreeStructureGroupAreas)
	require.NoError(t, err)

	require.Len(t, tree.Children, 1)
	assert.Equal(t, "Good", tree.Children[0].Name)
	assert.NotContains(t, gateway.created, "BadChild")
}

func TestCorrelator_ReplicateTree_AbortsOnServerError(t *testing.T) {
	gateway := &mockClassificationGateway{
		template: node("t-root", "Template", node("t-boom", "Boom")),
		target:   node("g-root", "NewProject"),
		createErr: map[string]error{
			"Boom": cerr.NewError(cerr.Internal, "internal server error", nil),
		},
	}
	correlator := NewCorrelator(gateway)

	_, err := correlator.ReplicateTree(context.Background(), targetProject, gateway.template, azdo.TreeStructureGroupAreas)
	require.Error(t, err)
	assert.True(t, cerr.IsCode(err, cerr.Internal))
}

func TestCorrelator_ReplicateTree_AbortsOnCancellation(t *testing.T) {
	gateway := &mockClassificationGateway{
		template: node("t-root", "Template", node("t-slow", "Slow")),
		target:   node("g-root", "NewProject"),
		createErr: map[string]error{
			"Slow": cerr.NewError(cerr.Canceled, "request canceled", nil),
		},
	}
	correlator := NewCorrelator(gateway)

	_, err := correlator.ReplicateTree(context.Background(), targetProject, gateway.template, azdo.TreeStructureGroupAreas)
	require.Error(t, err)
	assert.True(t, cerr.IsCode(err, cerr.Canceled))
}
