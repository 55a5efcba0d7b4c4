package users

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/diplomadesk/internal/devserver/auth"
	"github.com/dmitrijs2005/diplomadesk/internal/devserver/config"
)

const RoleAdmin = "admin"

type Service struct {
	repo                         Repository
	refreshTokenRepo             RefreshTokenRepository
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
	now                          func() time.Time
}

type Option func(*Service)

// WithClock replaces time.Now for issuing and verifying tokens.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(repo Repository, refreshTokenRepo RefreshTokenRepository, cfg *config.Config, opts ...Option) *Service {
	s := &Service{
		repo:                         repo,
		refreshTokenRepo:             refreshTokenRepo,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
		now:                          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RefreshTTL is how long a refresh cookie stays valid.
func (s *Service) RefreshTTL() time.Duration {
	return s.refreshTokenValidityDuration
}

// EnsureAdmin creates the admin account unless one with that name exists.
func (s *Service) EnsureAdmin(ctx context.Context, username, password string) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidInput
	}

	user, err := s.repo.GetUserByLogin(ctx, username)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user, err = s.repo.Create(ctx, &User{
		UserName:     username,
		DisplayName:  "Administrator",
		Role:         RoleAdmin,
		PasswordHash: hash,
		CreatedAt:    s.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return user, nil
}

func (s *Service) Login(ctx context.Context, userName, password string) (*TokenPair, error) {
	user, err := s.repo.GetUserByLogin(ctx, strings.TrimSpace(userName))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) != nil {
		return nil, ErrUnauthorized
	}

	return s.issueTokens(ctx, user)
}

// Refresh redeems a refresh cookie for a new token pair. The old cookie is
// consumed whether or not it was still valid.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, ErrUnauthorized
	}

	record, err := s.refreshTokenRepo.Take(ctx, hashRefreshToken(refreshToken))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	if !s.now().Before(record.Expires) {
		return nil, ErrUnauthorized
	}

	user, err := s.repo.GetUserByID(ctx, record.UserID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

// Logout revokes the refresh session behind the cookie, if there is one.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	if strings.TrimSpace(refreshToken) == "" {
		return nil
	}
	return s.refreshTokenRepo.Delete(ctx, hashRefreshToken(refreshToken))
}

// ParseAccessToken verifies a bearer token and returns its claims.
func (s *Service) ParseAccessToken(token string) (*auth.Claims, error) {
	return auth.ParseToken(token, s.jwtSecret, s.now())
}

func (s *Service) GetUser(ctx context.Context, id string) (*User, error) {
	return s.repo.GetUserByID(ctx, id)
}

// ActiveSessions reports how many refresh sessions are outstanding.
func (s *Service) ActiveSessions(ctx context.Context) (int, error) {
	return s.refreshTokenRepo.Count(ctx)
}

func (s *Service) issueTokens(ctx context.Context, user *User) (*TokenPair, error) {
	now := s.now()

	accessToken, err := auth.GenerateToken(auth.Claims{
		UserID:   user.ID,
		Username: user.UserName,
		Role:     user.Role,
	}, s.jwtSecret, now, s.accessTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("error signing access token: %w", err)
	}

	refreshToken := uuid.NewString()
	err = s.refreshTokenRepo.Create(ctx, &RefreshToken{
		UserID:    user.ID,
		TokenHash: hashRefreshToken(refreshToken),
		Expires:   now.Add(s.refreshTokenValidityDuration),
		CreatedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("error storing refresh token: %w", err)
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func hashRefreshToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
