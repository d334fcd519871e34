// Package models defines the wire types shared by the client and server:
// users, collections, QA pairs, documents, retrieval and generation payloads.
// JSON field names follow the backend API contract.
package models

// User is an authenticated account. Created on successful login or session
// restoration; immutable during a session.
type User struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	FullName string   `json:"full_name,omitempty"`
	Roles    []string `json:"roles,omitempty"`
}

// TokenResponse is returned by the login endpoint: an opaque bearer token
// plus the owning user.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}

// LoginRequest is the login endpoint payload.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest is the registration endpoint payload.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name,omitempty"`
}

// AuthProviders describes the active authentication provider.
type AuthProviders struct {
	Current   string   `json:"current"`
	Available []string `json:"available"`
}
