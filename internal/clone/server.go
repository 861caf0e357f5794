package clone

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sourcegraph/conc"

	"github.com/kazz187/blueprint/pkg/cerr"
	"github.com/kazz187/blueprint/pkg/clog"
)

// Server exposes clone operations over HTTP. A POST queues a run in the
// background and returns immediately; the record stays observable through
// the GET endpoints while the run proceeds.
type Server struct {
	coordinator *Coordinator
	repo        Repository
	wg          *conc.WaitGroup
}

func NewServer(coordinator *Coordinator, repo Repository) *Server {
	return &Server{
		coordinator: coordinator,
		repo:        repo,
		wg:          conc.NewWaitGroup(),
	}
}

func (s *Server) Routes(r chi.Router) {
	r.Post("/clones", s.handleCreate)
	r.Get("/clones", s.handleList)
	r.Get("/clones/{id}", s.handleGet)
}

// Wait blocks until all background clone runs have finished. Called during
// server shutdown.
func (s *Server) Wait() {
	s.wg.Wait()
}

type createCloneRequest struct {
	TemplateProject string `json:"templateProject"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	Visibility      string `json:"visibility"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createCloneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		cerr.SetNewJSONError(ctx, cerr.InvalidArgument, "invalid request body", err)
		return
	}
	if req.TemplateProject == "" || req.Name == "" {
		cerr.SetNewJSONError(ctx, cerr.InvalidArgument, "templateProject and name are required", nil)
		return
	}

	op := NewOperation(CloneParams{
		TemplateProject: req.TemplateProject,
		Name:            req.Name,
		Description:     req.Description,
		Visibility:      req.Visibility,
	})
	if err := s.repo.Create(ctx, op); err != nil {
		cerr.SetJSONError(ctx, err)
		return
	}

	// Snapshot the queued record before the background run starts
	// mutating it; the response is rendered after this handler returns.
	queued := *op
	s.wg.Go(func() {
		s.run(op)
	})

	cerr.SetJSONResponseWithStatus(ctx, &queued, http.StatusAccepted)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ops, err := s.repo.List(ctx)
	if err != nil {
		cerr.SetJSONError(ctx, err)
		return
	}
	cerr.SetJSONResponse(ctx, ops)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	op, err := s.repo.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		cerr.SetJSONError(ctx, err)
		return
	}
	cerr.SetJSONResponse(ctx, op)
}

// run executes one clone outside the request lifecycle; the record is the
// only channel reporting progress back to callers.
func (s *Server) run(op *Operation) {
	ctx := clog.ContextWithSlog(context.Background())
	clog.AddAttribute(ctx, "operation_id", op.ID)

	op.Start()
	if err := s.repo.Update(ctx, op); err != nil {
		slog.ErrorContext(ctx, "failed to mark operation running", "error", err)
	}

	result, err := s.coordinator.Run(ctx, op.Params())
	if err != nil {
		slog.ErrorContext(ctx, "clone failed", "error", err)
		op.Fail(err)
	} else {
		op.Complete(result)
	}
	if err := s.repo.Update(ctx, op); err != nil {
		slog.ErrorContext(ctx, "failed to store operation result", "error", err)
	}
}
