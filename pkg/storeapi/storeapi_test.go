package storeapi_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/storeadmin/internal/fakeapi"
	types "github.com/getmockd/storeadmin/pkg/api/types"
	"github.com/getmockd/storeadmin/pkg/apiclient"
	"github.com/getmockd/storeadmin/pkg/storeapi"
)

func newAPI(t *testing.T, opts ...fakeapi.Option) (*fakeapi.Server, *storeapi.API) {
	t.Helper()
	srv, ts := fakeapi.Start(t, opts...)
	client := apiclient.New(ts.URL, apiclient.WithToken(srv.Token()))
	return srv, storeapi.New(client)
}

func lamp() types.Product {
	return types.Product{
		Name:        "Lamp",
		Description: "Desk lamp",
		Category:    types.CategoryHome,
		Price:       20,
		Stock:       5,
		Tags:        "light,desk",
		Image:       "https://img.example/lamp.png",
	}
}

func TestProducts_AddThenList(t *testing.T) {
	srv, api := newAPI(t)
	srv.SeedProducts(types.Product{Name: "Chair", Category: types.CategoryFurniture, Price: 50, Stock: 2})
	ctx := context.Background()

	added, err := api.Products.Add(ctx, lamp())
	require.NoError(t, err)
	require.False(t, added.ID.IsZero(), "server must assign an id")

	all, err := api.Products.ListAll(ctx)
	require.NoError(t, err)

	var matches []types.Product
	for _, p := range all {
		if p.Name == "Lamp" {
			matches = append(matches, p)
		}
	}
	require.Len(t, matches, 1)
	assert.Equal(t, added.ID, matches[0].ID)
	want := lamp()
	want.ID = added.ID
	assert.Equal(t, want, matches[0])
}

func TestProducts_EditThenList(t *testing.T) {
	srv, api := newAPI(t)
	seeded := srv.SeedProducts(lamp())
	ctx := context.Background()

	edited := seeded[0]
	edited.Price = 25.5
	edited.Stock = 0
	edited.Tags = ""
	_, err := api.Products.Edit(ctx, edited.ID, edited)
	require.NoError(t, err)

	all, err := api.Products.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, edited, all[0])
}

func TestProducts_RemoveThenList(t *testing.T) {
	srv, api := newAPI(t)
	seeded := srv.SeedProducts(lamp(), types.Product{Name: "Sofa", Category: types.CategoryFurniture})
	ctx := context.Background()

	require.NoError(t, api.Products.Remove(ctx, seeded[0].ID))

	all, err := api.Products.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.NotEqual(t, seeded[0].ID, all[0].ID)
}

func TestProducts_EmptyListIsNotAnError(t *testing.T) {
	srv, api := newAPI(t)
	ctx := context.Background()

	all, err := api.Products.ListAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)

	srv.FailNext("/products/all", http.StatusInternalServerError, "db down")
	all, err = api.Products.ListAll(ctx)
	require.Error(t, err)
	assert.Nil(t, all)
	assert.Equal(t, http.StatusInternalServerError, apiclient.StatusCode(err))
}

func TestUsers_CRUD(t *testing.T) {
	srv, api := newAPI(t)
	ctx := context.Background()

	added, err := api.Users.Add(ctx, types.User{Name: "Ann", Email: "ann@example.com", Password: "pw", City: "Oslo"})
	require.NoError(t, err)
	require.False(t, added.ID.IsZero())
	assert.Empty(t, added.Password, "backend does not echo passwords")

	got, err := api.Users.GetOne(ctx, added.ID)
	require.NoError(t, err)
	assert.Equal(t, "Oslo", got.City)

	got.City = "Bergen"
	got.Zip = "5003"
	_, err = api.Users.Edit(ctx, got.ID, got)
	require.NoError(t, err)

	again, err := api.Users.GetOne(ctx, added.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bergen", again.City)
	assert.Equal(t, "5003", again.Zip)
	assert.Equal(t, "pw", srv.Users()[0].Password, "password kept when edit omits it")

	require.NoError(t, api.Users.Remove(ctx, added.ID))
	_, err = api.Users.GetOne(ctx, added.ID)
	assert.True(t, apiclient.IsNotFound(err))

	all, err := api.Users.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestOrders_EditStatusChangesOnlyStatus(t *testing.T) {
	srv, api := newAPI(t)
	seeded := srv.SeedOrders(types.Order{
		UserID:      "u1",
		Items:       []types.OrderItem{{ProductID: "p1", Qty: 2}},
		TotalAmount: 40,
		Status:      types.StatusPending,
		CreatedAt:   "2024-05-01T12:00:00Z",
		Address:     "1 Main St",
	})
	ctx := context.Background()

	_, err := api.Orders.EditStatus(ctx, seeded[0].ID, types.StatusShipped)
	require.NoError(t, err)

	all, err := api.Orders.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	want := seeded[0]
	want.Status = types.StatusShipped
	assertSameJSON(t, want, all[0])
}

func assertSameJSON(t *testing.T, want, got any) {
	t.Helper()
	w, err := json.Marshal(want)
	require.NoError(t, err)
	g, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, string(w), string(g))
}

func TestOrders_UpdateStatusKeepsServerFields(t *testing.T) {
	const stored = `{"id":1,"userId":5,"items":[{"productId":3,"qty":2}],"totalAmount":40,` +
		`"status":"pending","createdAt":"2024-05-01T12:00:00Z","address":"1 Main St",` +
		`"paymentId":"pay_9","user":{"name":"Ann","vip":true}}`

	var sent []byte
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/orders/allDetails":
			_, _ = io.WriteString(w, "["+stored+"]")
		case r.Method == http.MethodPut && r.URL.Path == "/orders/update/1":
			sent, _ = io.ReadAll(r.Body)
			_, _ = w.Write(sent)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(ts.Close)
	api := storeapi.New(apiclient.New(ts.URL))

	updated, err := api.Orders.EditStatus(context.Background(), "1", types.StatusShipped)
	require.NoError(t, err)
	assert.Equal(t, types.StatusShipped, updated.Status)

	var want map[string]any
	require.NoError(t, json.Unmarshal([]byte(stored), &want))
	want["status"] = "shipped"
	wantJSON, err := json.Marshal(want)
	require.NoError(t, err)
	assert.JSONEq(t, string(wantJSON), string(sent))

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(sent, &body))
	assert.Equal(t, "1", string(body["id"]), "numeric id stays numeric")
	assert.Equal(t, "5", string(body["userId"]))
}

func TestOrders_AnyStatusToAnyStatus(t *testing.T) {
	srv, api := newAPI(t)
	ctx := context.Background()

	for _, from := range types.OrderStatuses {
		for _, to := range types.OrderStatuses {
			order := srv.SeedOrders(types.Order{UserID: "u", Status: from})[0]
			updated, err := api.Orders.EditStatus(ctx, order.ID, to)
			require.NoError(t, err, "%s -> %s", from, to)
			assert.Equal(t, to, updated.Status)
		}
	}
}

func TestOrders_UpdateStatusSendsWholeOrder(t *testing.T) {
	srv, api := newAPI(t)
	order := srv.SeedOrders(types.Order{UserID: "u9", TotalAmount: 12.5, Status: types.StatusPending, Address: "x"})[0]

	updated, err := api.Orders.UpdateStatus(context.Background(), order, types.StatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, types.StatusDelivered, updated.Status)
	assert.Equal(t, "x", updated.Address)
}

func TestOrders_InvalidStatusRejectedLocally(t *testing.T) {
	srv, api := newAPI(t)
	order := srv.SeedOrders(types.Order{UserID: "u", Status: types.StatusPending})[0]
	before := len(srv.Requests())

	_, err := api.Orders.EditStatus(context.Background(), order.ID, "refunded")
	assert.ErrorIs(t, err, storeapi.ErrInvalidStatus)
	assert.Len(t, srv.Requests(), before)
}

func TestOrders_EditStatusUnknownOrder(t *testing.T) {
	_, api := newAPI(t)

	_, err := api.Orders.EditStatus(context.Background(), "missing", types.StatusShipped)
	assert.ErrorIs(t, err, storeapi.ErrNotFound)
}

func TestOrders_Save(t *testing.T) {
	_, api := newAPI(t)
	ctx := context.Background()

	saved, err := api.Orders.Save(ctx, types.Order{UserID: "u1", Items: []types.OrderItem{{ProductID: "p1", Qty: 1}}, TotalAmount: 9.99})
	require.NoError(t, err)
	assert.False(t, saved.ID.IsZero())

	found, err := api.Orders.Find(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, types.StatusPending, found.Status)
}

func TestNoCredentialStillSendsRequest(t *testing.T) {
	srv, ts := fakeapi.Start(t, fakeapi.RequireAuth())
	api := storeapi.New(apiclient.New(ts.URL, apiclient.WithTokenSource(func() string { return "" })))

	_, err := api.Products.ListAll(context.Background())
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, apiclient.StatusCode(err))

	reqs := srv.Requests()
	require.Len(t, reqs, 1, "request must reach the server")
	assert.Empty(t, reqs[0].Authorization)
}

func TestAuth_LoginThenAuthorizedCalls(t *testing.T) {
	srv, ts := fakeapi.Start(t, fakeapi.RequireAuth(), fakeapi.WithToken("jwt-abc"))
	srv.AddAccount("admin@example.com", "hunter2")

	var token string
	client := apiclient.New(ts.URL, apiclient.WithTokenSource(func() string { return token }))
	api := storeapi.New(client)
	ctx := context.Background()

	_, err := api.Auth.Login(ctx, types.LoginRequest{Email: "admin@example.com", Password: "wrong"})
	assert.True(t, apiclient.IsUnauthorized(err))

	token, err = api.Auth.Login(ctx, types.LoginRequest{Email: "admin@example.com", Password: "hunter2"})
	require.NoError(t, err)
	assert.Equal(t, "jwt-abc", token)

	_, err = api.Products.ListAll(ctx)
	require.NoError(t, err)
}

func TestAuth_Register(t *testing.T) {
	_, api := newAPI(t)
	ctx := context.Background()

	res, err := api.Auth.Register(ctx, types.RegisterRequest{Name: "Bo", Email: "bo@example.com", Password: "pw"})
	require.NoError(t, err)
	require.NotNil(t, res.Account)
	assert.Equal(t, "bo@example.com", res.Account.Email)
	assert.Empty(t, res.Account.Password)

	_, err = api.Auth.Register(ctx, types.RegisterRequest{Email: "bo@example.com"})
	assert.True(t, apiclient.IsStatus(err, http.StatusConflict))
}

func TestUUIDIdentifiers(t *testing.T) {
	_, api := newAPI(t, fakeapi.WithIDFunc(func(string) string { return uuid.NewString() }))

	added, err := api.Products.Add(context.Background(), lamp())
	require.NoError(t, err)
	_, err = uuid.Parse(added.ID.String())
	assert.NoError(t, err)
}
