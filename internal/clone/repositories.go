package clone

import (
	"context"
	"fmt"
	"sync"

	"github.com/oklog/ulid/v2"
	"github.com/sourcegraph/conc/pool"

	"github.com/kazz187/blueprint/internal/azdo"
	"github.com/kazz187/blueprint/pkg/panicerr"
)

// RepositoryImport records one queued repository import so its progress can
// be looked up later through the import request resource.
type RepositoryImport struct {
	Repository      string               `yaml:"repository" json:"repository"`
	RepositoryID    string               `yaml:"repository_id" json:"repositoryId"`
	ImportRequestID int                  `yaml:"import_request_id" json:"importRequestId"`
	Status          azdo.GitImportStatus `yaml:"status,omitempty" json:"status,omitempty"`
}

// RepoReplicator recreates the template project's git repositories in the
// target project and seeds each one with an asynchronous import from the
// template repository's remote URL.
type RepoReplicator struct {
	git       GitGateway
	endpoints EndpointGateway
	token     string
	// concurrency bounds each batch so a large template does not flood the
	// rate-limited remote API.
	concurrency int
}

func NewRepoReplicator(git GitGateway, endpoints EndpointGateway, token string, concurrency int) *RepoReplicator {
	if concurrency < 1 {
		concurrency = 1
	}
	return &RepoReplicator{git: git, endpoints: endpoints, token: token, concurrency: concurrency}
}

// CloneRepositories runs two independent bounded batches: one creating and
// import-seeding a repository per template repository, one deleting every
// repository that existed in the target before cloning (the platform
// auto-creates an empty default repository per new project). The target
// list is snapshotted before creation starts so the deletion batch never
// sees the new repositories; beyond that the batches may interleave freely.
// Returns one import record per repository created.
func (r *RepoReplicator) CloneRepositories(ctx context.Context, template, target *azdo.Project) ([]RepositoryImport, error) {
	templateRepos, err := r.git.ListRepositories(ctx, template.Name)
	if err != nil {
		return nil, err
	}
	preexisting, err := r.git.ListRepositories(ctx, target.Name)
	if err != nil {
		return nil, err
	}

	var (
		mu      sync.Mutex
		imports []RepositoryImport
	)
	p := pool.New().WithErrors().WithContext(ctx)
	p.Go(panicerr.SafeContext(func(ctx context.Context) error {
		deletes := pool.New().WithErrors().WithContext(ctx).WithMaxGoroutines(r.concurrency)
		for _, repo := range preexisting {
			deletes.Go(panicerr.SafeContext(func(ctx context.Context) error {
				return r.git.DeleteRepository(ctx, target.Name, repo.ID)
			}))
		}
		return deletes.Wait()
	}))
	p.Go(panicerr.SafeContext(func(ctx context.Context) error {
		creates := pool.New().WithErrors().WithContext(ctx).WithMaxGoroutines(r.concurrency)
		for _, repo := range templateRepos {
			creates.Go(panicerr.SafeContext(func(ctx context.Context) error {
				imp, err := r.cloneRepository(ctx, target, repo)
				if err != nil {
					return err
				}
				mu.Lock()
				imports = append(imports, imp)
				mu.Unlock()
				return nil
			}))
		}
		return creates.Wait()
	}))
	if err := p.Wait(); err != nil {
		return nil, err
	}
	return imports, nil
}

// cloneRepository creates one same-named repository, a project-scoped
// service endpoint carrying the caller's token for the template remote URL,
// and queues the import. The import itself is fire-and-forget; its status
// stays observable through the import request resource.
func (r *RepoReplicator) cloneRepository(ctx context.Context, target *azdo.Project, templateRepo azdo.GitRepository) (RepositoryImport, error) {
	created, err := r.git.CreateRepository(ctx, target.Name, &azdo.CreateRepositoryRequest{
		Name:    templateRepo.Name,
		Project: &azdo.TeamRef{ID: target.ID, Name: target.Name},
	})
	if err != nil {
		return RepositoryImport{}, err
	}

	endpointName := fmt.Sprintf("import-%s-%s", templateRepo.Name, ulid.Make().String())
	endpoint, err := r.endpoints.CreateServiceEndpoint(ctx, &azdo.ServiceEndpoint{
		Name: endpointName,
		Type: "git",
		URL:  templateRepo.RemoteURL,
		Authorization: &azdo.ServiceEndpointAuthorization{
			Scheme: "UsernamePassword",
			Parameters: map[string]string{
				"username": "",
				"password": r.token,
			},
		},
		ProjectRefs: []azdo.ServiceEndpointProjectReference{
			{
				Name:             endpointName,
				ProjectReference: &azdo.TeamRef{ID: target.ID, Name: target.Name},
			},
		},
	})
	if err != nil {
		return RepositoryImport{}, err
	}

	queued, err := r.git.CreateImportRequest(ctx, target.Name, created.ID, &azdo.GitImportRequest{
		Parameters: &azdo.GitImportRequestParams{
			GitSource:         &azdo.GitImportGitSource{URL: templateRepo.RemoteURL},
			ServiceEndpointID: endpoint.ID,
			DeleteServiceEndpointAfterImportIsDone: true,
		},
	})
	if err != nil {
		return RepositoryImport{}, err
	}
	return RepositoryImport{
		Repository:      created.Name,
		RepositoryID:    created.ID,
		ImportRequestID: queued.ImportRequestID,
		Status:          queued.Status,
	}, nil
}

// ImportStatus re-reads one queued import so callers can observe progress
// after the clone run has finished.
func (r *RepoReplicator) ImportStatus(ctx context.Context, project string, imp RepositoryImport) (*azdo.GitImportRequest, error) {
	return r.git.GetImportRequest(ctx, project, imp.RepositoryID, imp.ImportRequestID)
}
