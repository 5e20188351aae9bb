// Package resource maps list/add/edit/delete/get onto REST endpoints for one
// record kind. Controllers hold no state beyond their endpoint table and
// cache nothing; every call is one request through the shared client.
package resource

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	types "github.com/getmockd/storeadmin/pkg/api/types"
)

// Sentinel errors for controller operations.
var (
	// ErrMissingID is returned when a keyed operation gets an empty ID.
	ErrMissingID = errors.New("record id is required")
	// ErrUnsupported is returned when the resource has no endpoint for the
	// requested operation.
	ErrUnsupported = errors.New("operation not supported for this resource")
)

// IDPlaceholder marks where the record ID goes in an endpoint path.
const IDPlaceholder = "{id}"

// Doer performs one JSON request. *apiclient.Client satisfies it.
type Doer interface {
	Do(ctx context.Context, method, path string, body, out any) error
}

// Endpoints lists the paths for each operation. Edit, Delete and Get contain
// IDPlaceholder. An empty path means the operation is unsupported.
type Endpoints struct {
	List   string
	Add    string
	Edit   string
	Delete string
	Get    string
}

// Controller exposes CRUD operations for records of type R.
type Controller[R any] struct {
	name      string
	doer      Doer
	endpoints Endpoints
}

// New creates a controller. name is used in error messages ("products").
func New[R any](name string, doer Doer, endpoints Endpoints) *Controller[R] {
	return &Controller[R]{name: name, doer: doer, endpoints: endpoints}
}

// Name returns the resource name.
func (c *Controller[R]) Name() string {
	return c.name
}

// ListAll returns the full collection in server order. A failed fetch is
// always an error, never an empty slice; an empty collection is a non-nil
// empty slice.
func (c *Controller[R]) ListAll(ctx context.Context) ([]R, error) {
	if c.endpoints.List == "" {
		return nil, c.unsupported("list")
	}
	var items []R
	if err := c.doer.Do(ctx, http.MethodGet, c.endpoints.List, nil, &items); err != nil {
		return nil, fmt.Errorf("list %s: %w", c.name, err)
	}
	if items == nil {
		items = []R{}
	}
	return items, nil
}

// Add creates a record. The server assigns the ID and returns the stored
// record. If the server answers with an empty body the submitted record is
// returned as-is.
func (c *Controller[R]) Add(ctx context.Context, record R) (R, error) {
	if c.endpoints.Add == "" {
		var zero R
		return zero, c.unsupported("add")
	}
	var out *R
	if err := c.doer.Do(ctx, http.MethodPost, c.endpoints.Add, record, &out); err != nil {
		var zero R
		return zero, fmt.Errorf("add %s: %w", c.name, err)
	}
	if out == nil {
		return record, nil
	}
	return *out, nil
}

// Edit replaces the record with the given ID. record must be complete. As with
// Add, an empty reply yields the submitted record.
func (c *Controller[R]) Edit(ctx context.Context, id types.ID, record R) (R, error) {
	var zero R
	path, err := c.keyed(c.endpoints.Edit, "edit", id)
	if err != nil {
		return zero, err
	}
	var out *R
	if err := c.doer.Do(ctx, http.MethodPut, path, record, &out); err != nil {
		return zero, fmt.Errorf("edit %s %s: %w", c.name, id, err)
	}
	if out == nil {
		return record, nil
	}
	return *out, nil
}

// Remove deletes the record with the given ID.
func (c *Controller[R]) Remove(ctx context.Context, id types.ID) error {
	path, err := c.keyed(c.endpoints.Delete, "delete", id)
	if err != nil {
		return err
	}
	if err := c.doer.Do(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("delete %s %s: %w", c.name, id, err)
	}
	return nil
}

// GetOne fetches a single record.
func (c *Controller[R]) GetOne(ctx context.Context, id types.ID) (R, error) {
	var out R
	path, err := c.keyed(c.endpoints.Get, "get", id)
	if err != nil {
		return out, err
	}
	if err := c.doer.Do(ctx, http.MethodGet, path, nil, &out); err != nil {
		var zero R
		return zero, fmt.Errorf("get %s %s: %w", c.name, id, err)
	}
	return out, nil
}

func (c *Controller[R]) keyed(pattern, op string, id types.ID) (string, error) {
	if pattern == "" {
		return "", c.unsupported(op)
	}
	if id.IsZero() {
		return "", fmt.Errorf("%s %s: %w", op, c.name, ErrMissingID)
	}
	return strings.Replace(pattern, IDPlaceholder, url.PathEscape(id.String()), 1), nil
}

func (c *Controller[R]) unsupported(op string) error {
	return fmt.Errorf("%s %s: %w", op, c.name, ErrUnsupported)
}
