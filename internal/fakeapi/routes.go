package fakeapi

import (
	"net/http"

	types "github.com/getmockd/storeadmin/pkg/api/types"
)

func (s *Server) routes() {
	s.mux.HandleFunc("POST /login", s.handleLogin)
	s.mux.HandleFunc("POST /register", s.handleRegister)

	s.mux.HandleFunc("GET /products/all", s.handleListProducts)
	s.mux.HandleFunc("POST /products/add", s.handleAddProduct)
	s.mux.HandleFunc("PUT /products/edit/{id}", s.handleEditProduct)
	s.mux.HandleFunc("DELETE /products/delete/{id}", s.handleDeleteProduct)

	s.mux.HandleFunc("GET /user/getAll", s.handleListUsers)
	s.mux.HandleFunc("POST /user/addUser", s.handleAddUser)
	s.mux.HandleFunc("PUT /user/editUser/{id}", s.handleEditUser)
	s.mux.HandleFunc("DELETE /user/delete/{id}", s.handleDeleteUser)
	s.mux.HandleFunc("GET /user/get/{id}", s.handleGetUser)

	s.mux.HandleFunc("GET /orders/allDetails", s.handleListOrders)
	s.mux.HandleFunc("POST /orders/save", s.handleSaveOrder)
	s.mux.HandleFunc("PUT /orders/update/{id}", s.handleUpdateOrder)
}

// --- Auth ---

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if !decode(w, r, &req) {
		return
	}
	s.mu.Lock()
	password, ok := s.accounts[req.Email]
	s.mu.Unlock()
	if !ok || password != req.Password {
		writeJSON(w, http.StatusUnauthorized, types.ErrorResponse{Error: "unauthorized", Message: "invalid email or password"})
		return
	}
	writeJSON(w, http.StatusOK, types.TokenResponse{Token: s.token})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req types.RegisterRequest
	if !decode(w, r, &req) {
		return
	}
	s.mu.Lock()
	if _, exists := s.accounts[req.Email]; exists {
		s.mu.Unlock()
		writeJSON(w, http.StatusConflict, types.ErrorResponse{Error: "conflict", Message: "email already registered"})
		return
	}
	s.accounts[req.Email] = req.Password
	user := types.User{
		ID:       types.ID(s.idFunc("user")),
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Street:   req.Street,
		City:     req.City,
		Zip:      req.Zip,
	}
	s.users = append(s.users, user)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, user.Redacted())
}

// --- Products ---

func (s *Server) handleListProducts(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.products)
}

func (s *Server) handleAddProduct(w http.ResponseWriter, r *http.Request) {
	var p types.Product
	if !decode(w, r, &p) {
		return
	}
	s.mu.Lock()
	p.ID = types.ID(s.idFunc("product"))
	s.products = append(s.products, p)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleEditProduct(w http.ResponseWriter, r *http.Request) {
	id := types.ID(r.PathValue("id"))
	var p types.Product
	if !decode(w, r, &p) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID == id {
			p.ID = id
			s.products[i] = p
			writeJSON(w, http.StatusOK, p)
			return
		}
	}
	notFound(w, "product", id.String())
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := types.ID(r.PathValue("id"))
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			w.WriteHeader(http.StatusOK)
			return
		}
	}
	notFound(w, "product", id.String())
}

// --- Users ---

func (s *Server) handleListUsers(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.User, len(s.users))
	for i, u := range s.users {
		out[i] = u.Redacted()
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAddUser(w http.ResponseWriter, r *http.Request) {
	var u types.User
	if !decode(w, r, &u) {
		return
	}
	s.mu.Lock()
	u.ID = types.ID(s.idFunc("user"))
	s.users = append(s.users, u)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, u.Redacted())
}

func (s *Server) handleEditUser(w http.ResponseWriter, r *http.Request) {
	id := types.ID(r.PathValue("id"))
	var u types.User
	if !decode(w, r, &u) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == id {
			u.ID = id
			if u.Password == "" {
				u.Password = s.users[i].Password
			}
			s.users[i] = u
			writeJSON(w, http.StatusOK, u.Redacted())
			return
		}
	}
	notFound(w, "user", id.String())
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id := types.ID(r.PathValue("id"))
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			w.WriteHeader(http.StatusOK)
			return
		}
	}
	notFound(w, "user", id.String())
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id := types.ID(r.PathValue("id"))
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			writeJSON(w, http.StatusOK, u.Redacted())
			return
		}
	}
	notFound(w, "user", id.String())
}

// --- Orders ---

func (s *Server) handleListOrders(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.orders)
}

func (s *Server) handleSaveOrder(w http.ResponseWriter, r *http.Request) {
	var o types.Order
	if !decode(w, r, &o) {
		return
	}
	s.mu.Lock()
	o.ID = types.ID(s.idFunc("order"))
	if o.Status == "" {
		o.Status = types.StatusPending
	}
	s.orders = append(s.orders, o)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, o)
}

// handleUpdateOrder applies only the status from the submitted order; the
// backend treats every other field as read-only.
func (s *Server) handleUpdateOrder(w http.ResponseWriter, r *http.Request) {
	id := types.ID(r.PathValue("id"))
	var o types.Order
	if !decode(w, r, &o) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.orders {
		if s.orders[i].ID == id {
			s.orders[i].Status = o.Status
			writeJSON(w, http.StatusOK, s.orders[i])
			return
		}
	}
	notFound(w, "order", id.String())
}
