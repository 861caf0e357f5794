package repositoryimpl

import (
	"context"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/kazz187/blueprint/internal/clone"
	"github.com/kazz187/blueprint/pkg/cerr"
	"github.com/kazz187/blueprint/pkg/storage"
)

const operationsPrefix = "operations"

type YAMLRepository struct {
	storage storage.Storage
}

func NewYAMLRepository(s storage.Storage) *YAMLRepository {
	return &YAMLRepository{storage: s}
}

func path(id string) string {
	return fmt.Sprintf("%s/%s.yaml", operationsPrefix, id)
}

func (r *YAMLRepository) Create(ctx context.Context, op *clone.Operation) error {
	exists, err := r.storage.Exists(ctx, path(op.ID))
	if err != nil {
		return cerr.WrapStorageWriteError("operation", err)
	}
	if exists {
		return cerr.NewError(cerr.AlreadyExists, "operation already exists", nil)
	}
	return r.write(ctx, op)
}

func (r *YAMLRepository) Get(ctx context.Context, id string) (*clone.Operation, error) {
	data, err := r.storage.Read(ctx, path(id))
	if err != nil {
		return nil, cerr.WrapStorageReadError("operation", err)
	}
	var op clone.Operation
	if err := yaml.Unmarshal(data, &op); err != nil {
		return nil, cerr.NewError(cerr.Internal, "server error", fmt.Errorf("failed to unmarshal operation: %w", err))
	}
	return &op, nil
}

func (r *YAMLRepository) List(ctx context.Context) ([]*clone.Operation, error) {
	paths, err := r.storage.List(ctx, operationsPrefix)
	if err != nil {
		return nil, cerr.WrapStorageReadError("operation", err)
	}
	ops := make([]*clone.Operation, 0, len(paths))
	for _, p := range paths {
		data, err := r.storage.Read(ctx, p)
		if err != nil {
			continue
		}
		var op clone.Operation
		if err := yaml.Unmarshal(data, &op); err != nil {
			continue
		}
		ops = append(ops, &op)
	}
	sort.Slice(ops, func(i, j int) bool {
		return ops[i].CreatedAt.After(ops[j].CreatedAt)
	})
	return ops, nil
}

func (r *YAMLRepository) Update(ctx context.Context, op *clone.Operation) error {
	exists, err := r.storage.Exists(ctx, path(op.ID))
	if err != nil {
		return cerr.WrapStorageWriteError("operation", err)
	}
	if !exists {
		return cerr.NewError(cerr.NotFound, "operation not found", nil)
	}
	return r.write(ctx, op)
}

func (r *YAMLRepository) write(ctx context.Context, op *clone.Operation) error {
	data, err := yaml.Marshal(op)
	if err != nil {
		return cerr.NewError(cerr.Internal, "server error", fmt.Errorf("failed to marshal operation: %w", err))
	}
	if err := r.storage.Write(ctx, path(op.ID), data); err != nil {
		return cerr.WrapStorageWriteError("operation", err)
	}
	return nil
}
