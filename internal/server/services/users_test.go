package services

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/dmitrijs2005/gtstudio/internal/common"
	"github.com/dmitrijs2005/gtstudio/internal/models"
	"github.com/dmitrijs2005/gtstudio/internal/server/auth"
	"github.com/dmitrijs2005/gtstudio/internal/server/config"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

type fakeAuthProvider struct {
	name string

	authOut models.User
	authErr error

	regOut models.User
	regErr error

	byEmailOut models.User
	byEmailErr error
}

func (f *fakeAuthProvider) Name() string {
	if f.name == "" {
		return "fake"
	}
	return f.name
}

func (f *fakeAuthProvider) Authenticate(ctx context.Context, username, password string) (models.User, error) {
	if f.authErr != nil {
		return models.User{}, f.authErr
	}
	return f.authOut, nil
}

func (f *fakeAuthProvider) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	if f.regErr != nil {
		return models.User{}, f.regErr
	}
	return f.regOut, nil
}

func (f *fakeAuthProvider) UserByEmail(ctx context.Context, email string) (models.User, error) {
	if f.byEmailErr != nil {
		return models.User{}, f.byEmailErr
	}
	return f.byEmailOut, nil
}

func newUserService(p auth.Provider) *UserService {
	cfg := &config.Config{
		SecretKey:                   "test-secret",
		AccessTokenValidityDuration: time.Hour,
	}
	return NewUserService(p, cfg)
}

func TestLogin_Success(t *testing.T) {
	user := models.User{ID: "u1", Username: "demo", Email: "demo@example.com", Roles: []string{"contributor"}}
	s := newUserService(&fakeAuthProvider{authOut: user})

	resp, err := s.Login(context.Background(), "demo", "password")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if resp.AccessToken == "" {
		t.Fatal("empty access token")
	}
	if resp.TokenType != common.TokenType {
		t.Errorf("token type = %q, want %q", resp.TokenType, common.TokenType)
	}
	if resp.User.ID != "u1" {
		t.Errorf("user = %+v, want u1", resp.User)
	}

	claims, err := auth.ParseToken(resp.AccessToken, []byte("test-secret"))
	if err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if claims.Subject != "demo@example.com" || claims.UserID != "u1" {
		t.Errorf("claims = %+v, want subject demo@example.com and user u1", claims)
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	s := newUserService(&fakeAuthProvider{authErr: common.ErrorUnauthorized})

	_, err := s.Login(context.Background(), "demo", "wrong")
	if !errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("want ErrorUnauthorized, got %v", err)
	}
}

func TestLogin_ProviderFailure(t *testing.T) {
	s := newUserService(&fakeAuthProvider{authErr: errBoom{}})

	_, err := s.Login(context.Background(), "demo", "password")
	if !errors.Is(err, common.ErrorInternal) {
		t.Fatalf("want ErrorInternal, got %v", err)
	}
}

func TestRegister_Success(t *testing.T) {
	s := newUserService(&fakeAuthProvider{regOut: models.User{ID: "u9", Username: "carol"}})

	user, err := s.Register(context.Background(), models.RegisterRequest{Username: "carol", Email: "carol@example.com", Password: "pw"})
	if err != nil || user.ID != "u9" {
		t.Fatalf("Register: got (%v, %v)", user, err)
	}
}

func TestRegister_Conflict(t *testing.T) {
	s := newUserService(&fakeAuthProvider{regErr: common.ErrorAlreadyExists})

	_, err := s.Register(context.Background(), models.RegisterRequest{Username: "demo"})
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("want ErrorAlreadyExists, got %v", err)
	}
}

func TestRegister_ProviderFailure(t *testing.T) {
	s := newUserService(&fakeAuthProvider{regErr: errBoom{}})

	_, err := s.Register(context.Background(), models.RegisterRequest{Username: "carol"})
	if err == nil || !regexp.MustCompile(`error registering user: .*boom`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestVerifyToken_Success(t *testing.T) {
	user := models.User{ID: "u1", Username: "demo", Email: "demo@example.com"}
	s := newUserService(&fakeAuthProvider{byEmailOut: user})

	token, err := auth.GenerateToken(user, []byte("test-secret"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	got, err := s.VerifyToken(context.Background(), token)
	if err != nil {
		t.Fatalf("VerifyToken error: %v", err)
	}
	if got.ID != "u1" || got.Email != "demo@example.com" {
		t.Errorf("user = %+v, want u1", got)
	}
}

func TestVerifyToken_Invalid(t *testing.T) {
	s := newUserService(&fakeAuthProvider{})

	_, err := s.VerifyToken(context.Background(), "not-a-token")
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("want ErrInvalidToken, got %v", err)
	}
}

func TestVerifyToken_UserGone(t *testing.T) {
	user := models.User{ID: "u1", Username: "demo", Email: "demo@example.com"}
	s := newUserService(&fakeAuthProvider{byEmailErr: common.ErrorNotFound})

	token, err := auth.GenerateToken(user, []byte("test-secret"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = s.VerifyToken(context.Background(), token)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want ErrorNotFound, got %v", err)
	}
}

func TestProviders(t *testing.T) {
	s := newUserService(&fakeAuthProvider{name: "simple"})

	got := s.Providers()
	if got.Current != "simple" {
		t.Errorf("current = %q, want simple", got.Current)
	}
	if len(got.Available) != 1 || got.Available[0] != "simple" {
		t.Errorf("available = %v, want [simple]", got.Available)
	}
}
