package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gtstudio/internal/common"
	"github.com/dmitrijs2005/gtstudio/internal/models"
	"github.com/dmitrijs2005/gtstudio/internal/server/auth"
	"github.com/dmitrijs2005/gtstudio/internal/server/config"
)

type UserService struct {
	provider                    auth.Provider
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

func NewUserService(provider auth.Provider, cfg *config.Config) *UserService {
	return &UserService{
		provider:                    provider,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

// Login authenticates the credentials and issues an access token for the
// resulting user.
func (s *UserService) Login(ctx context.Context, username, password string) (*models.TokenResponse, error) {
	user, err := s.provider.Authenticate(ctx, username, password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			return nil, err
		}
		return nil, common.ErrorInternal
	}

	token, err := auth.GenerateToken(user, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &models.TokenResponse{
		AccessToken: token,
		TokenType:   common.TokenType,
		User:        user,
	}, nil
}

func (s *UserService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	user, err := s.provider.Register(ctx, req)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error registering user: %v", err)
	}
	return &user, nil
}

// VerifyToken parses an access token and resolves its subject to the current
// profile. Token errors and a missing user pass through unchanged for the
// transport layer to map.
func (s *UserService) VerifyToken(ctx context.Context, tokenString string) (*models.User, error) {
	claims, err := auth.ParseToken(tokenString, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	user, err := s.provider.UserByEmail(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) Providers() models.AuthProviders {
	name := s.provider.Name()
	return models.AuthProviders{Current: name, Available: []string{name}}
}
