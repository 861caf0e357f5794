package clone

import "context"

// Repository persists clone operation records.
type Repository interface {
	Create(ctx context.Context, op *Operation) error
	Get(ctx context.Context, id string) (*Operation, error)
	List(ctx context.Context) ([]*Operation, error)
	Update(ctx context.Context, op *Operation) error
}
