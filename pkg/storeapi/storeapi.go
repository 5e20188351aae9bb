// Package storeapi binds the store backend's REST routes to typed controllers
// for products, users, orders and authentication.
package storeapi

import (
	"errors"

	types "github.com/getmockd/storeadmin/pkg/api/types"
	"github.com/getmockd/storeadmin/pkg/resource"
)

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned when a record is missing from a listed collection.
	ErrNotFound = errors.New("not found")
	// ErrInvalidStatus is returned for an order status outside the enumeration.
	ErrInvalidStatus = errors.New("invalid order status")
)

// Route tables for each resource.
var (
	ProductEndpoints = resource.Endpoints{
		List:   "/products/all",
		Add:    "/products/add",
		Edit:   "/products/edit/{id}",
		Delete: "/products/delete/{id}",
	}
	UserEndpoints = resource.Endpoints{
		List:   "/user/getAll",
		Add:    "/user/addUser",
		Edit:   "/user/editUser/{id}",
		Delete: "/user/delete/{id}",
		Get:    "/user/get/{id}",
	}
	OrderEndpoints = resource.Endpoints{
		List: "/orders/allDetails",
		Add:  "/orders/save",
		Edit: "/orders/update/{id}",
	}
)

// Auth routes.
const (
	LoginPath    = "/login"
	RegisterPath = "/register"
)

// API groups the controllers for one backend.
type API struct {
	Products *resource.Controller[types.Product]
	Users    *resource.Controller[types.User]
	Orders   *Orders
	Auth     *Auth
}

// New creates an API over doer. Auth needs a Sender for raw token bodies;
// when doer also implements Sender (as *apiclient.Client does) it is used.
func New(doer resource.Doer) *API {
	api := &API{
		Products: resource.New[types.Product]("products", doer, ProductEndpoints),
		Users:    resource.New[types.User]("users", doer, UserEndpoints),
		Orders:   NewOrders(doer),
	}
	if sender, ok := doer.(Sender); ok {
		api.Auth = NewAuth(sender)
	}
	return api
}
