package clone

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kazz187/blueprint/internal/azdo"
	"github.com/kazz187/blueprint/pkg/cerr"
)

// memoryRepository is an in-process Repository for handler tests. Updates
// arrive from background clone runs, so access is locked.
type memoryRepository struct {
	mu  sync.Mutex
	ops map[string]*Operation
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{ops: map[string]*Operation{}}
}

func (r *memoryRepository) Create(_ context.Context, op *Operation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.ops[op.ID]; ok {
		return cerr.NewError(cerr.AlreadyExists, "operation already exists", nil)
	}
	copied := *op
	r.ops[op.ID] = &copied
	return nil
}

func (r *memoryRepository) Get(_ context.Context, id string) (*Operation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	op, ok := r.ops[id]
	if !ok {
		return nil, cerr.NewError(cerr.NotFound, "operation not found", nil)
	}
	copied := *op
	return &copied, nil
}

func (r *memoryRepository) List(_ context.Context) ([]*Operation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ops := make([]*Operation, 0, len(r.ops))
	for _, op := range r.ops {
		copied := *op
		ops = append(ops, &copied)
	}
	return ops, nil
}

func (r *memoryRepository) Update(_ context.Context, op *Operation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.ops[op.ID]; !ok {
		return cerr.NewError(cerr.NotFound, "operation not found", nil)
	}
	copied := *op
	r.ops[op.ID] = &copied
	return nil
}

func newTestServer(t *testing.T) (*Server, *memoryRepository) {
	t.Helper()
	template, _ := testProjects()
	projects := &mockProjectGateway{
		template: template,
		states:   []azdo.ProjectState{azdo.ProjectStateWellFormed},
	}
	classification := &mockClassificationGateway{
		template: node("t-root", template.Name, node("t-web", "Web")),
		target:   node("g-root", targetProject),
	}
	teams := &mockTeamGateway{
		teams: map[string][]azdo.Team{
			template.ID: {{ID: "template-default", Name: "Template Team"}},
		},
	}
	git := &mockGitGateway{repos: map[string][]azdo.GitRepository{}}

	coordinator := NewCoordinator(
		projects,
		NewCorrelator(classification),
		NewTeamReplicator(teams, newMockWorkGateway()),
		NewRepoReplicator(git, &mockEndpointGateway{}, "secret-token", 1),
		testPollConfig(),
	)
	repo := newMemoryRepository()
	return NewServer(coordinator, repo), repo
}

func newTestRouter(s *Server) http.Handler {
	r := chi.NewRouter()
	r.Use(cerr.NewJSONResponseChiMiddleware())
	r.Group(s.Routes)
	return r
}

func TestServer_CreateClone(t *testing.T) {
	server, repo := newTestServer(t)
	router := newTestRouter(server)

	body := `{"templateProject":"Template","name":"NewProject","visibility":"private"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/clones", strings.NewReader(body)))

	require.Equal(t, http.StatusAccepted, rec.Code)
	var op Operation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &op))
	assert.NotEmpty(t, op.ID)
	assert.Equal(t, "Template", op.TemplateProject)
	assert.Equal(t, "NewProject", op.TargetName)

	// Wait for the background run and check the stored outcome.
	server.Wait()
	stored, err := repo.Get(context.Background(), op.ID)
	require.NoError(t, err)
	assert.Equal(t, OperationStatusSucceeded, stored.Status)
	assert.Equal(t, 2, stored.AreasMapped)
	assert.Equal(t, 1, stored.TeamsCloned)
}

func TestServer_CreateClone_InvalidBody(t *testing.T) {
	server, _ := newTestServer(t)
	router := newTestRouter(server)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/clones", strings.NewReader("{not json")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_CreateClone_MissingFields(t *testing.T) {
	server, _ := newTestServer(t)
	router := newTestRouter(server)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/clones", strings.NewReader(`{"name":"NewProject"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_GetClone_NotFound(t *testing.T) {
	server, _ := newTestServer(t)
	router := newTestRouter(server)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/clones/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_ListClones(t *testing.T) {
	server, repo := newTestServer(t)
	router := newTestRouter(server)

	op := NewOperation(CloneParams{TemplateProject: "Template", Name: "NewProject"})
	require.NoError(t, repo.Create(context.Background(), op))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/clones", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var ops []*Operation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ops))
	require.Len(t, ops, 1)
	assert.Equal(t, op.ID, ops[0].ID)
}
