// Package fakeapi is an in-memory implementation of the store backend's REST
// routes. It exists for tests: it keeps insertion order, assigns IDs, can
// require a bearer token, and can be told to fail the next request on a path.
package fakeapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	types "github.com/getmockd/storeadmin/pkg/api/types"
)

// DefaultToken is the token handed out by /login unless WithToken is used.
const DefaultToken = "fake-token"

// Request is a recorded inbound request.
type Request struct {
	Method        string
	Path          string
	Authorization string
}

type failure struct {
	status int
	body   string
	skip   int
}

// Server is the fake backend.
type Server struct {
	mu sync.Mutex

	products []types.Product
	users    []types.User
	orders   []types.Order
	accounts map[string]string // email -> password

	nextID      map[string]int
	idFunc      func(kind string) string
	token       string
	requireAuth bool
	failures    map[string]failure
	requests    []Request

	mux *http.ServeMux
}

// Option configures a Server.
type Option func(*Server)

// WithToken sets the token issued by /login and accepted when auth is required.
func WithToken(token string) Option {
	return func(s *Server) { s.token = token }
}

// RequireAuth makes every non-auth route answer 401 without the right token.
func RequireAuth() Option {
	return func(s *Server) { s.requireAuth = true }
}

// WithIDFunc replaces the sequential ID generator.
func WithIDFunc(fn func(kind string) string) Option {
	return func(s *Server) { s.idFunc = fn }
}

// New creates a fake backend.
func New(opts ...Option) *Server {
	s := &Server{
		accounts: make(map[string]string),
		nextID:   make(map[string]int),
		token:    DefaultToken,
		failures: make(map[string]failure),
		mux:      http.NewServeMux(),
	}
	s.idFunc = s.sequentialID
	for _, opt := range opts {
		opt(s)
	}
	s.routes()
	return s
}

// Start runs s on an httptest server that is closed when t finishes.
func Start(t testing.TB, opts ...Option) (*Server, *httptest.Server) {
	t.Helper()
	s := New(opts...)
	ts := httptest.NewServer(s)
	t.Cleanup(ts.Close)
	return s, ts
}

// ServeHTTP records the request, applies injected failures and auth, then
// dispatches to the route.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Method:        r.Method,
		Path:          r.URL.Path,
		Authorization: r.Header.Get("Authorization"),
	})
	f, failing := s.failures[r.URL.Path]
	switch {
	case failing && f.skip > 0:
		f.skip--
		s.failures[r.URL.Path] = f
		failing = false
	case failing:
		delete(s.failures, r.URL.Path)
	}
	s.mu.Unlock()

	if failing {
		writeJSON(w, f.status, types.ErrorResponse{Error: "injected", Message: f.body})
		return
	}
	if s.requireAuth && !isAuthRoute(r.URL.Path) && r.Header.Get("Authorization") != "Bearer "+s.token {
		writeJSON(w, http.StatusUnauthorized, types.ErrorResponse{Error: "unauthorized", Message: "missing or invalid token"})
		return
	}
	s.mux.ServeHTTP(w, r)
}

// FailNext makes the next request to path answer with status and message.
func (s *Server) FailNext(path string, status int, message string) {
	s.FailOn(path, 1, status, message)
}

// FailOn makes the nth request to path from now on answer with status and
// message. Earlier requests are served normally.
func (s *Server) FailOn(path string, nth, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[path] = failure{status: status, body: message, skip: max(nth-1, 0)}
}

// Requests returns a copy of every request received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// Token returns the token /login issues.
func (s *Server) Token() string {
	return s.token
}

// AddAccount registers login credentials.
func (s *Server) AddAccount(email, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[email] = password
}

// SeedProducts stores products, assigning IDs where missing, and returns them.
func (s *Server) SeedProducts(items ...types.Product) []types.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range items {
		if items[i].ID.IsZero() {
			items[i].ID = types.ID(s.idFunc("product"))
		}
		s.products = append(s.products, items[i])
	}
	return items
}

// SeedUsers stores users, assigning IDs where missing, and returns them.
func (s *Server) SeedUsers(items ...types.User) []types.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range items {
		if items[i].ID.IsZero() {
			items[i].ID = types.ID(s.idFunc("user"))
		}
		s.users = append(s.users, items[i])
	}
	return items
}

// SeedOrders stores orders, assigning IDs where missing, and returns them.
func (s *Server) SeedOrders(items ...types.Order) []types.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range items {
		if items[i].ID.IsZero() {
			items[i].ID = types.ID(s.idFunc("order"))
		}
		s.orders = append(s.orders, items[i])
	}
	return items
}

// Products returns a snapshot of the stored products.
func (s *Server) Products() []types.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]types.Product(nil), s.products...)
}

// Users returns a snapshot of the stored users, passwords included.
func (s *Server) Users() []types.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]types.User(nil), s.users...)
}

// Orders returns a snapshot of the stored orders.
func (s *Server) Orders() []types.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]types.Order(nil), s.orders...)
}

func (s *Server) sequentialID(kind string) string {
	s.nextID[kind]++
	return strconv.Itoa(s.nextID[kind])
}

func isAuthRoute(path string) bool {
	return path == "/login" || path == "/register"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func notFound(w http.ResponseWriter, kind, id string) {
	writeJSON(w, http.StatusNotFound, types.ErrorResponse{
		Error:   "not_found",
		Message: kind + " " + id + " not found",
	})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, types.ErrorResponse{
			Error:   "bad_request",
			Message: "invalid JSON: " + strings.TrimSpace(err.Error()),
		})
		return false
	}
	return true
}
