// Package services contains application services for the GT Studio client.
// This file defines the authentication service: login, logout, session
// restore on startup, and access to the signed-in user.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/gtstudio/internal/client/api"
	"github.com/dmitrijs2005/gtstudio/internal/client/session"
	"github.com/dmitrijs2005/gtstudio/internal/logging"
	"github.com/dmitrijs2005/gtstudio/internal/models"
)

// AuthStatus is the authentication lifecycle state of the client.
type AuthStatus string

const (
	// StatusLoading is the initial state, kept until CheckAuthStatus resolves.
	StatusLoading         AuthStatus = "loading"
	StatusAuthenticated   AuthStatus = "authenticated"
	StatusUnauthenticated AuthStatus = "unauthenticated"
)

// ErrInvalidCredentials is returned by Login when the server rejects the
// username/password pair. The text is shown to the user as is.
var ErrInvalidCredentials = errors.New("Invalid username or password")

// ErrEmptyCredentials is returned by Login before any network call when
// either field is blank.
var ErrEmptyCredentials = errors.New("username and password are required")

// AuthService tracks who is signed in. It owns the bearer token lifecycle:
// Login, Logout and CheckAuthStatus keep the API client token, the persisted
// session and the in-memory state in step with each other.
//
// Contract:
//   - Login: authenticate against the server, persist the session, install
//     the token on the API client.
//   - Logout: best-effort server notification, then unconditional local
//     cleanup (token and stored session go away together).
//   - CheckAuthStatus: restore a persisted session, once at startup. Any
//     restore failure signs the user out silently.
//   - Register: create a new account on the server.
//   - SetUser: out-of-band profile replacement.
//
// All methods are safe for concurrent use.
type AuthService interface {
	Login(ctx context.Context, username, password string) error
	Logout(ctx context.Context) error
	CheckAuthStatus(ctx context.Context) error
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)
	SetUser(u *models.User)
	Status() AuthStatus
	CurrentUser() *models.User
	IsAuthenticated() bool
	Err() error
}

type authService struct {
	client api.Client
	store  session.Store
	logger logging.Logger

	mu      sync.RWMutex
	status  AuthStatus
	user    *models.User
	lastErr error
}

// NewAuthService constructs an AuthService bound to the given API client and
// session store.
func NewAuthService(client api.Client, store session.Store, logger logging.Logger) AuthService {
	return &authService{
		client: client,
		store:  store,
		logger: logger,
		status: StatusLoading,
	}
}

// Login authenticates against the server and, on success, persists the
// session and installs the bearer token on the API client. Blank fields fail
// with ErrEmptyCredentials before any network call; a 401 from the server
// maps to ErrInvalidCredentials.
func (a *authService) Login(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return a.fail(ErrEmptyCredentials)
	}

	a.setStatus(StatusLoading)

	resp, err := a.client.Login(ctx, username, password)
	if err != nil {
		a.setStatus(StatusUnauthenticated)
		if errors.Is(err, api.ErrUnauthorized) {
			return a.fail(ErrInvalidCredentials)
		}
		a.logger.Error(ctx, "login request failed", "error", err)
		return a.fail(fmt.Errorf("login failed: %w", err))
	}

	a.client.SetToken(resp.AccessToken)

	user := resp.User
	if err := a.store.Save(&session.Session{Token: resp.AccessToken, User: &user}); err != nil {
		// логин уже состоялся, сессия просто не переживёт перезапуск
		a.logger.Warn(ctx, "cannot persist session", "error", err)
	}

	a.mu.Lock()
	a.status = StatusAuthenticated
	a.user = &user
	a.lastErr = nil
	a.mu.Unlock()

	return nil
}

// Logout notifies the server (best effort) and clears the token, the stored
// session and the in-memory user. The local state is reset even when the
// session file cannot be removed; that error is returned for reporting.
func (a *authService) Logout(ctx context.Context) error {
	if err := a.client.Logout(ctx); err != nil {
		a.logger.Debug(ctx, "logout request failed", "error", err)
	}

	a.client.SetToken("")

	var clearErr error
	if err := a.store.Clear(); err != nil {
		a.logger.Warn(ctx, "cannot clear session", "error", err)
		clearErr = err
	}

	a.mu.Lock()
	a.status = StatusUnauthenticated
	a.user = nil
	a.lastErr = nil
	a.mu.Unlock()

	return clearErr
}

// CheckAuthStatus restores a previously persisted session. Without a stored
// token the state becomes unauthenticated. With one, the token is installed
// and verified via the profile endpoint; any failure results in a silent
// logout rather than a surfaced error.
func (a *authService) CheckAuthStatus(ctx context.Context) error {
	sess, err := a.store.Load()
	if err != nil {
		a.logger.Warn(ctx, "cannot read stored session", "error", err)
	}
	if sess == nil || sess.Token == "" {
		a.setStatus(StatusUnauthenticated)
		return nil
	}

	a.client.SetToken(sess.Token)

	user, err := a.client.Me(ctx)
	if err != nil {
		a.logger.Info(ctx, "session restore failed, signing out", "error", err)
		a.client.SetToken("")
		if err := a.store.Clear(); err != nil {
			a.logger.Warn(ctx, "cannot clear session", "error", err)
		}
		a.setStatus(StatusUnauthenticated)
		return nil
	}

	a.mu.Lock()
	a.status = StatusAuthenticated
	a.user = user
	a.lastErr = nil
	a.mu.Unlock()

	return nil
}

// Register creates a new account on the server. It does not sign the new
// user in; the caller decides whether to follow up with Login.
func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	user, err := a.client.Register(ctx, req)
	if err != nil {
		return nil, a.fail(fmt.Errorf("registration failed: %w", err))
	}
	return user, nil
}

// SetUser replaces the in-memory user. The authentication state follows the
// value: non-nil means authenticated, nil means unauthenticated.
func (a *authService) SetUser(u *models.User) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.user = u
	if u != nil {
		a.status = StatusAuthenticated
	} else {
		a.status = StatusUnauthenticated
	}
}

func (a *authService) Status() AuthStatus {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.status
}

// CurrentUser returns a copy of the signed-in user, or nil.
func (a *authService) CurrentUser() *models.User {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.user == nil {
		return nil
	}
	u := *a.user
	u.Roles = append([]string(nil), a.user.Roles...)
	return &u
}

func (a *authService) IsAuthenticated() bool {
	return a.Status() == StatusAuthenticated
}

// Err returns the last recorded authentication error, if any.
func (a *authService) Err() error {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.lastErr
}

func (a *authService) setStatus(status AuthStatus) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.status = status
}

func (a *authService) fail(err error) error {
	a.mu.Lock()
	a.lastErr = err
	a.mu.Unlock()
	return err
}
