// Package services contains server-side business logic. This file implements
// UserService, which handles login, registration, and profile lookup.
package services

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/fadhilmh/fadhil-app-api/internal/common"
	"github.com/fadhilmh/fadhil-app-api/internal/server/auth"
	"github.com/fadhilmh/fadhil-app-api/internal/server/config"
	"github.com/fadhilmh/fadhil-app-api/internal/server/models"
	"github.com/fadhilmh/fadhil-app-api/internal/server/repositories/users"
)

// Credentials is the transient login input. Never persisted.
type Credentials struct {
	Username string
	Password string
}

// Validate checks the input shape and reports the first failing field.
func (c Credentials) Validate() error {
	if c.Username == "" {
		return common.NewError(common.KindValidation, `"username" is required`)
	}
	if c.Password == "" {
		return common.NewError(common.KindValidation, `"password" is required`)
	}
	if len(c.Password) < 6 {
		return common.NewError(common.KindValidation, `"password" length must be at least 6 characters long`)
	}
	return nil
}

// LoginResult is a successful authentication: the sanitized user document
// and the session token to deliver out of band.
type LoginResult struct {
	Profile map[string]any
	Token   string
}

// UserService provides authentication-related operations:
//   - Login: verify credentials and mint a session token
//   - Register: create users with a bcrypt-hashed password
//   - Profile: resolve a session token back to its sanitized user document
type UserService struct {
	repo                  users.Repository
	jwtSecret             []byte
	tokenValidityDuration time.Duration
	legacyTokenClaims     bool
}

// NewUserService constructs a UserService using the user repository and
// server config. The signing secret is injected here once; Login still
// fails per request if it is empty.
func NewUserService(repo users.Repository, cfg *config.Config) *UserService {
	return &UserService{
		repo:                  repo,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
		legacyTokenClaims:     cfg.LegacyTokenClaims,
	}
}

// Login runs the full authentication sequence: validate input, resolve the
// user by email or username, verify the password, and issue a token. Each
// failure is a tagged error for the transport boundary to map.
func (s *UserService) Login(ctx context.Context, creds Credentials) (*LoginResult, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	user, err := s.repo.FindByLogin(ctx, creds.Username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NewError(common.KindNotFound, "User not found, wrong username!")
		}
		return nil, common.WrapError(common.KindInternal, "internal error", err)
	}

	if !s.checkPassword(user.PasswordHash, creds.Password) {
		return nil, common.NewError(common.KindUnauthorized, "Wrong password!")
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	return &LoginResult{Profile: user.PublicProfile(), Token: token}, nil
}

// Register creates a new user with the given username, email, and password.
func (s *UserService) Register(ctx context.Context, username, email, password string) (map[string]any, error) {
	if username == "" {
		return nil, common.NewError(common.KindValidation, `"username" is required`)
	}
	if email == "" {
		return nil, common.NewError(common.KindValidation, `"email" is required`)
	}
	if err := (Credentials{Username: username, Password: password}).Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, common.WrapError(common.KindInternal, "internal error", err)
	}

	user := &models.User{Username: username, Email: email, PasswordHash: string(hash)}
	user, err = s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, common.NewError(common.KindValidation, "User already exists!")
		}
		return nil, common.WrapError(common.KindInternal, "internal error", err)
	}

	return user.PublicProfile(), nil
}

// Profile verifies a session token and returns the sanitized document of
// the user it was issued for.
func (s *UserService) Profile(ctx context.Context, token string) (map[string]any, error) {
	if len(s.jwtSecret) == 0 {
		return nil, common.NewError(common.KindConfiguration, "Secret key not found, can't check password!")
	}

	userID, err := auth.GetUserIDFromToken(token, s.jwtSecret)
	if err != nil {
		return nil, common.WrapError(common.KindUnauthorized, "Invalid or expired token!", err)
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NewError(common.KindUnauthorized, "Invalid or expired token!")
		}
		return nil, common.WrapError(common.KindInternal, "internal error", err)
	}

	return user.PublicProfile(), nil
}

// TokenCookieMaxAge is the Max-Age for the token cookie. Existing API
// clients expect the original contract of expiry seconds multiplied by
// 1000, so that is what goes on the wire.
func (s *UserService) TokenCookieMaxAge() int {
	return int(s.tokenValidityDuration.Seconds()) * 1000
}

func (s *UserService) checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (s *UserService) issueToken(user *models.User) (string, error) {
	if len(s.jwtSecret) == 0 {
		return "", common.NewError(common.KindConfiguration, "Secret key not found, can't check password!")
	}

	var token string
	var err error
	if s.legacyTokenClaims {
		token, err = auth.GenerateLegacyToken(user.Document(), s.jwtSecret, s.tokenValidityDuration)
	} else {
		token, err = auth.GenerateToken(user.ID.Hex(), user.Username, s.jwtSecret, s.tokenValidityDuration)
	}
	if err != nil {
		return "", common.WrapError(common.KindInternal, "internal error", err)
	}
	return token, nil
}
