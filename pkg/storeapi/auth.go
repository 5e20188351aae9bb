package storeapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	types "github.com/getmockd/storeadmin/pkg/api/types"
	"github.com/getmockd/storeadmin/pkg/apiclient"
)

// ErrNoTokenInResponse is returned when /login succeeds without a token.
var ErrNoTokenInResponse = errors.New("login response did not contain a token")

// Sender sends one request and returns the raw response.
type Sender interface {
	Send(ctx context.Context, method, path string, body any) (*apiclient.Response, error)
}

// Auth performs login and registration. It only obtains tokens; storing them
// is the caller's job.
type Auth struct {
	sender Sender
}

// NewAuth creates an Auth.
func NewAuth(sender Sender) *Auth {
	return &Auth{sender: sender}
}

// Login exchanges credentials for a bearer token.
func (a *Auth) Login(ctx context.Context, req types.LoginRequest) (string, error) {
	resp, err := a.sender.Send(ctx, http.MethodPost, LoginPath, req)
	if err != nil {
		return "", err
	}
	token := types.ParseToken(resp.Body)
	if token == "" {
		return "", ErrNoTokenInResponse
	}
	return token, nil
}

// RegisterResult is the outcome of a registration. Depending on the backend
// the body holds the created account, a token, or both.
type RegisterResult struct {
	Account *types.User
	Token   string
	Raw     json.RawMessage
}

// Register creates an account.
func (a *Auth) Register(ctx context.Context, req types.RegisterRequest) (*RegisterResult, error) {
	resp, err := a.sender.Send(ctx, http.MethodPost, RegisterPath, req)
	if err != nil {
		return nil, err
	}
	result := &RegisterResult{Token: types.ParseToken(resp.Body)}
	if json.Valid(resp.Body) {
		result.Raw = json.RawMessage(resp.Body)
	}

	var user types.User
	if err := json.Unmarshal(resp.Body, &user); err == nil && (!user.ID.IsZero() || user.Email != "") {
		user.Password = ""
		result.Account = &user
	}
	return result, nil
}
