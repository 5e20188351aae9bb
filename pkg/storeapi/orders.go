package storeapi

import (
	"context"
	"fmt"

	types "github.com/getmockd/storeadmin/pkg/api/types"
	"github.com/getmockd/storeadmin/pkg/resource"
)

// Orders manages orders. Orders are created by the storefront; the admin
// surface lists them and changes their status. Save exists for tooling and
// imports.
type Orders struct {
	ctrl *resource.Controller[types.Order]
}

// NewOrders creates an order controller.
func NewOrders(doer resource.Doer) *Orders {
	return &Orders{ctrl: resource.New[types.Order]("orders", doer, OrderEndpoints)}
}

// ListAll returns every order with its details.
func (o *Orders) ListAll(ctx context.Context) ([]types.Order, error) {
	return o.ctrl.ListAll(ctx)
}

// Save creates an order.
func (o *Orders) Save(ctx context.Context, order types.Order) (types.Order, error) {
	return o.ctrl.Add(ctx, order)
}

// Find returns the order with the given ID from the current listing.
// The backend has no single-order route.
func (o *Orders) Find(ctx context.Context, id types.ID) (types.Order, error) {
	orders, err := o.ctrl.ListAll(ctx)
	if err != nil {
		return types.Order{}, err
	}
	for _, ord := range orders {
		if ord.ID == id {
			return ord, nil
		}
	}
	return types.Order{}, fmt.Errorf("order %s: %w", id, ErrNotFound)
}

// UpdateStatus sends order back with only its status replaced. Any status may
// follow any other.
func (o *Orders) UpdateStatus(ctx context.Context, order types.Order, status types.OrderStatus) (types.Order, error) {
	if !status.Valid() {
		return types.Order{}, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	order.Status = status
	return o.ctrl.Edit(ctx, order.ID, order)
}

// EditStatus changes the status of the order with the given ID, leaving every
// other field as the server reported it.
func (o *Orders) EditStatus(ctx context.Context, id types.ID, status types.OrderStatus) (types.Order, error) {
	if !status.Valid() {
		return types.Order{}, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	order, err := o.Find(ctx, id)
	if err != nil {
		return types.Order{}, err
	}
	return o.UpdateStatus(ctx, order, status)
}
