package view

import (
	"context"

	types "github.com/getmockd/storeadmin/pkg/api/types"
)

// Ops are the mutation operations of one resource. Any of them may be nil.
type Ops[R any] struct {
	Add    func(ctx context.Context, record R) (R, error)
	Edit   func(ctx context.Context, id types.ID, record R) (R, error)
	Remove func(ctx context.Context, id types.ID) error
}

// Controller is the shape of resource.Controller used by NewCRUD.
type Controller[R any] interface {
	Lister[R]
	Add(ctx context.Context, record R) (R, error)
	Edit(ctx context.Context, id types.ID, record R) (R, error)
	Remove(ctx context.Context, id types.ID) error
}

// CRUD pairs a Collection with its mutation operations so each mutation is
// followed by a refetch.
type CRUD[R any] struct {
	*Collection[R]
	ops Ops[R]
}

// NewCRUD builds a CRUD over a full controller.
func NewCRUD[R any](name string, ctrl Controller[R], opts ...Option) *CRUD[R] {
	return &CRUD[R]{
		Collection: NewCollection[R](name, ctrl, opts...),
		ops: Ops[R]{
			Add:    ctrl.Add,
			Edit:   ctrl.Edit,
			Remove: ctrl.Remove,
		},
	}
}

// NewCRUDWithOps builds a CRUD from a lister and a partial set of operations.
func NewCRUDWithOps[R any](name string, src Lister[R], ops Ops[R], opts ...Option) *CRUD[R] {
	return &CRUD[R]{Collection: NewCollection[R](name, src, opts...), ops: ops}
}

// Add creates record, then reloads. It returns the server's copy of the new
// record.
func (c *CRUD[R]) Add(ctx context.Context, record R) (R, error) {
	var created R
	if c.ops.Add == nil {
		return created, ErrUnsupported
	}
	err := c.Mutate(ctx, func(ctx context.Context) error {
		var err error
		created, err = c.ops.Add(ctx, record)
		return err
	})
	return created, err
}

// Edit replaces the record with id, then reloads.
func (c *CRUD[R]) Edit(ctx context.Context, id types.ID, record R) (R, error) {
	var updated R
	if c.ops.Edit == nil {
		return updated, ErrUnsupported
	}
	err := c.Mutate(ctx, func(ctx context.Context) error {
		var err error
		updated, err = c.ops.Edit(ctx, id, record)
		return err
	})
	return updated, err
}

// Remove deletes the record with id, then reloads.
func (c *CRUD[R]) Remove(ctx context.Context, id types.ID) error {
	if c.ops.Remove == nil {
		return ErrUnsupported
	}
	return c.Mutate(ctx, func(ctx context.Context) error {
		return c.ops.Remove(ctx, id)
	})
}
