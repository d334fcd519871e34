package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/dmitrijs2005/gtstudio/internal/common"
	"github.com/dmitrijs2005/gtstudio/internal/cryptox"
	"github.com/dmitrijs2005/gtstudio/internal/models"
	"github.com/dmitrijs2005/gtstudio/internal/server/store"
)

// Provider authenticates users and resolves identities during token checks.
type Provider interface {
	Name() string
	Authenticate(ctx context.Context, username, password string) (models.User, error)
	Register(ctx context.Context, req models.RegisterRequest) (models.User, error)
	UserByEmail(ctx context.Context, email string) (models.User, error)
}

// UserStore is the subset of the store the simple provider uses for
// registered accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user store.User) (store.User, error)
	UserByEmail(ctx context.Context, email string) (store.User, error)
	UserByUsername(ctx context.Context, username string) (store.User, error)
}

type demoAccount struct {
	user     models.User
	password string
}

// SimpleProvider is the development provider: two built-in demo accounts plus
// registered accounts persisted in the store with bcrypt password hashes.
// Demo accounts sign in with either username or email.
type SimpleProvider struct {
	users UserStore
	demo  map[string]demoAccount
}

func NewSimpleProvider(users UserStore) *SimpleProvider {
	demoUser := models.User{
		ID:       "user_1",
		Username: "demo",
		Email:    "demo@example.com",
		FullName: "Demo User",
		Roles:    []string{"contributor"},
	}
	adminUser := models.User{
		ID:       "user_2",
		Username: "admin",
		Email:    "admin@example.com",
		FullName: "Admin User",
		Roles:    []string{"contributor", "admin"},
	}

	return &SimpleProvider{
		users: users,
		demo: map[string]demoAccount{
			"demo":              {user: demoUser, password: "password"},
			"demo@example.com":  {user: demoUser, password: "password"},
			"admin":             {user: adminUser, password: "admin123"},
			"admin@example.com": {user: adminUser, password: "admin123"},
		},
	}
}

func (p *SimpleProvider) Name() string {
	return "simple"
}

func storedUser(u store.User) models.User {
	return models.User{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		FullName: u.FullName,
		Roles:    u.Roles,
	}
}

func (p *SimpleProvider) Authenticate(ctx context.Context, username, password string) (models.User, error) {
	if acc, ok := p.demo[username]; ok {
		if subtle.ConstantTimeCompare([]byte(acc.password), []byte(password)) == 1 {
			return acc.user, nil
		}
		return models.User{}, common.ErrorUnauthorized
	}

	u, err := p.users.UserByUsername(ctx, username)
	if errors.Is(err, common.ErrorNotFound) {
		u, err = p.users.UserByEmail(ctx, username)
	}
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return models.User{}, common.ErrorUnauthorized
		}
		return models.User{}, err
	}

	if !cryptox.CheckPassword(password, u.PasswordHash) {
		return models.User{}, common.ErrorUnauthorized
	}
	return storedUser(u), nil
}

// Register creates a store-backed account. The demo accounts are reserved, so
// their usernames and emails always conflict. An empty full name defaults to
// the local part of the email.
func (p *SimpleProvider) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	if _, ok := p.demo[req.Username]; ok {
		return models.User{}, common.ErrorAlreadyExists
	}
	if _, ok := p.demo[req.Email]; ok {
		return models.User{}, common.ErrorAlreadyExists
	}

	hash, err := cryptox.HashPassword(req.Password)
	if err != nil {
		return models.User{}, err
	}

	fullName := req.FullName
	if fullName == "" {
		fullName, _, _ = strings.Cut(req.Email, "@")
	}

	created, err := p.users.CreateUser(ctx, store.User{
		Username:     req.Username,
		Email:        req.Email,
		FullName:     fullName,
		PasswordHash: hash,
		Roles:        []string{"contributor"},
	})
	if err != nil {
		return models.User{}, err
	}
	return storedUser(created), nil
}

func (p *SimpleProvider) UserByEmail(ctx context.Context, email string) (models.User, error) {
	if acc, ok := p.demo[email]; ok {
		return acc.user, nil
	}

	u, err := p.users.UserByEmail(ctx, email)
	if err != nil {
		return models.User{}, err
	}
	return storedUser(u), nil
}
