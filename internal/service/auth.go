package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sportsboard/sportsboard-go/internal/crypto"
	"github.com/sportsboard/sportsboard-go/internal/model"
	"github.com/sportsboard/sportsboard-go/internal/repository"
)

// AuthService handles registration, login and token verification.
type AuthService struct {
	users       repository.UserStore
	tokens      *crypto.TokenIssuer
	adminEmails map[string]struct{}
	now         func() time.Time
}

// NewAuthService creates a new AuthService. Accounts registered with one of
// adminEmails receive the admin role.
func NewAuthService(users repository.UserStore, tokens *crypto.TokenIssuer, adminEmails []string) *AuthService {
	admins := make(map[string]struct{}, len(adminEmails))
	for _, e := range adminEmails {
		if e = strings.ToLower(strings.TrimSpace(e)); e != "" {
			admins[e] = struct{}{}
		}
	}
	return &AuthService{
		users:       users,
		tokens:      tokens,
		adminEmails: admins,
		now:         time.Now,
	}
}

// TokenExpiry is how long issued tokens remain valid.
func (s *AuthService) TokenExpiry() time.Duration {
	return s.tokens.Expiry()
}

// Register creates a new user account and logs it in.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.LoginResult, error) {
	req.Email = strings.TrimSpace(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	if err := model.Validate(req); err != nil {
		return model.LoginResult{}, err
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return model.LoginResult{}, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC().Truncate(time.Millisecond)
	user := &model.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		Name:         req.Name,
		Role:         s.roleFor(req.Email),
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return model.LoginResult{}, ErrEmailTaken
		}
		return model.LoginResult{}, fmt.Errorf("create user: %w", err)
	}

	return s.issue(user)
}

// Login checks credentials and returns a fresh token.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.LoginResult, error) {
	if err := model.Validate(req); err != nil {
		return model.LoginResult{}, err
	}

	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.LoginResult{}, ErrInvalidCredentials
		}
		return model.LoginResult{}, fmt.Errorf("get user: %w", err)
	}

	if err := crypto.ComparePassword(user.PasswordHash, req.Password); err != nil {
		if errors.Is(err, crypto.ErrPasswordMismatch) {
			return model.LoginResult{}, ErrInvalidCredentials
		}
		return model.LoginResult{}, fmt.Errorf("compare password: %w", err)
	}

	return s.issue(user)
}

// VerifyToken resolves a token to the current user record.
//
// Every expected failure returns ErrNotAuthenticated. Any other error means the
// user store could not be reached and is wrapped as-is.
func (s *AuthService) VerifyToken(ctx context.Context, token string) (model.User, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return model.User{}, ErrNotAuthenticated
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.User{}, ErrNotAuthenticated
		}
		return model.User{}, fmt.Errorf("load user: %w", err)
	}

	return *user, nil
}

func (s *AuthService) issue(user *model.User) (model.LoginResult, error) {
	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return model.LoginResult{}, fmt.Errorf("generate token: %w", err)
	}
	return model.LoginResult{Token: token, User: user.Response()}, nil
}

func (s *AuthService) roleFor(email string) model.Role {
	if _, ok := s.adminEmails[strings.ToLower(email)]; ok {
		return model.RoleAdmin
	}
	return model.RoleUser
}
