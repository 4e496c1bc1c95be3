// Package auth issues and checks the credentials that scope every habit
// request to one user.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/julianstephens/habitual/internal/errors"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/storage"
	"github.com/julianstephens/habitual/internal/validation"
)

const msgInvalidCredentials = "Invalid email or password"

// Session is returned by signup, login and refresh.
type Session struct {
	User         models.User `json:"user"`
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
	ExpiresIn    int64       `json:"expiresIn"`
}

type Service struct {
	store    storage.Provider
	tokens   *JWTManager
	hasher   *PasswordHasher
	validate *validation.Validator
	now      func() time.Time
}

func NewService(store storage.Provider, tokens *JWTManager, hasher *PasswordHasher) *Service {
	return &Service{
		store:    store,
		tokens:   tokens,
		hasher:   hasher,
		validate: validation.New(),
		now:      time.Now,
	}
}

func (s *Service) Tokens() *JWTManager {
	return s.tokens
}

// Register creates a user without issuing tokens.
func (s *Service) Register(ctx context.Context, in models.SignupInput) (models.User, error) {
	in, err := s.validate.Signup(in)
	if err != nil {
		var issues validation.Issues
		if errors.As(err, &issues) {
			return models.User{}, apperrors.Invalid(issues.First(), err)
		}
		return models.User{}, apperrors.Invalid(err.Error(), err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return models.User{}, apperrors.Store("auth.Register", "Failed to create account", err)
	}

	now := s.now().UTC()
	u := models.User{
		ID:           uuid.NewString(),
		Email:        in.Email,
		FullName:     in.FullName,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.AddUser(ctx, u); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return models.User{}, apperrors.Conflict("An account with this email already exists", err)
		}
		logger.Error("Failed to create account", "error", err)
		return models.User{}, apperrors.Store("auth.Register", "Failed to create account", err)
	}
	logger.Info("Registered user", "id", u.ID)
	return u, nil
}

func (s *Service) Signup(ctx context.Context, in models.SignupInput) (Session, error) {
	u, err := s.Register(ctx, in)
	if err != nil {
		return Session{}, err
	}
	return s.session(u)
}

func (s *Service) Login(ctx context.Context, in models.LoginInput) (Session, error) {
	in, err := s.validate.Login(in)
	if err != nil {
		return Session{}, apperrors.Unauthorized(msgInvalidCredentials)
	}

	u, err := s.store.GetUserByEmail(ctx, in.Email)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return Session{}, apperrors.Unauthorized(msgInvalidCredentials)
	case err != nil:
		logger.Error("Failed to look up user", "error", err)
		return Session{}, apperrors.Store("auth.Login", "Failed to sign in", err)
	}
	if !s.hasher.Verify(in.Password, u.PasswordHash) {
		return Session{}, apperrors.Unauthorized(msgInvalidCredentials)
	}
	return s.session(u)
}

// Refresh exchanges a refresh token for a new token pair.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (Session, error) {
	claims, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return Session{}, apperrors.Unauthorized("Invalid or expired refresh token")
	}
	u, err := s.Me(ctx, claims.UserID)
	if err != nil {
		return Session{}, err
	}
	return s.session(u)
}

// Me returns the user a token was issued to. A token for a deleted user is
// unauthorized, not missing.
func (s *Service) Me(ctx context.Context, userID string) (models.User, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return models.User{}, apperrors.Unauthorized("Unauthorized")
	}
	u, err := s.store.GetUser(ctx, userID)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return models.User{}, apperrors.Unauthorized("Unauthorized")
	case err != nil:
		logger.Error("Failed to load user", "error", err)
		return models.User{}, apperrors.Store("auth.Me", "Failed to load user", err)
	}
	return u, nil
}

func (s *Service) session(u models.User) (Session, error) {
	access, err := s.tokens.AccessToken(u.ID, u.Email)
	if err != nil {
		return Session{}, apperrors.Store("auth.session", "Failed to issue token", err)
	}
	refresh, err := s.tokens.RefreshToken(u.ID, u.Email)
	if err != nil {
		return Session{}, apperrors.Store("auth.session", "Failed to issue token", err)
	}
	return Session{User: u, AccessToken: access, RefreshToken: refresh, ExpiresIn: s.tokens.ExpiresIn()}, nil
}
