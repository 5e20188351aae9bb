// Package types provides the record shapes exchanged with the store backend.
// Every package that talks to the REST API uses these definitions so the wire
// contract lives in one place.
package types

import (
	"encoding/json"
	"strings"
)

// ErrorResponse is the error body the backend may send with a non-2xx status.
// Both fields are optional; many backends return plain text instead.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// TokenResponse is the token payload returned by /login and, for some
// backends, by /register.
type TokenResponse struct {
	Token       string `json:"token,omitempty"`
	AccessToken string `json:"accessToken,omitempty"`
	JWT         string `json:"jwt,omitempty"`
}

// Value returns the first non-empty token field.
func (t TokenResponse) Value() string {
	switch {
	case t.Token != "":
		return t.Token
	case t.AccessToken != "":
		return t.AccessToken
	default:
		return t.JWT
	}
}

// ParseToken extracts a bearer token from a login/register response body.
// It accepts a TokenResponse object, a bare JSON string, or a plain text body.
func ParseToken(body []byte) string {
	var resp TokenResponse
	if err := json.Unmarshal(body, &resp); err == nil {
		return resp.Value()
	}
	var s string
	if err := json.Unmarshal(body, &s); err == nil {
		return s
	}
	if len(body) > 0 && body[0] != '{' && body[0] != '[' {
		return strings.TrimSpace(string(body))
	}
	return ""
}
