package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cakehub/internal/config"
	"cakehub/internal/microservices/http-api/dto"
	"cakehub/internal/microservices/http-api/models"
	"cakehub/internal/microservices/http-api/repository"
	"cakehub/internal/middleware/auth"
)

// Identity is the resolved session owner. A nil *Identity means anonymous.
type Identity struct {
	UserID string
	Name   string
	Email  string
}

type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (user *models.User, token string, err error)
	Login(ctx context.Context, req dto.LoginRequest) (user *models.User, token string, err error)
	Resolve(ctx context.Context, token string) (*Identity, error)
	Invalidate(ctx context.Context, token string) error
	CurrentUser(ctx context.Context, identity *Identity) (*models.User, error)
}

type authService struct {
	userRepo   repository.UserRepository
	sessionTTL time.Duration
	bcryptCost int
	dummyHash  string
	now        func() time.Time
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) (AuthService, error) {
	// compared against when the email is unknown so both failure paths cost one bcrypt check
	dummyHash, err := auth.HashPassword("cakehub-timing-equalizer", cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("prepare dummy hash: %w", err)
	}
	return &authService{
		userRepo:   userRepo,
		sessionTTL: cfg.SessionTTL,
		bcryptCost: cfg.BcryptCost,
		dummyHash:  dummyHash,
		now:        time.Now,
	}, nil
}

// Register creates the user and returns a fresh session token.
func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*models.User, string, error) {
	req.Normalize()
	if err := validate(&req); err != nil {
		return nil, "", err
	}

	if _, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, "", ErrEmailInUse
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, "", err
	}

	hashedPassword, err := auth.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	token, tokenHash, expiresAt, err := s.issueToken()
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		Name:           req.Name,
		Email:          req.Email,
		Password:       hashedPassword,
		TokenHash:      &tokenHash,
		TokenExpiresAt: expiresAt,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, "", ErrEmailInUse
		}
		return nil, "", err
	}

	return user, token, nil
}

// Login verifies the credentials and rotates the session token. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*models.User, string, error) {
	req.Normalize()
	if err := validate(&req); err != nil {
		return nil, "", err
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			_ = auth.VerifyPassword(s.dummyHash, req.Password)
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := auth.VerifyPassword(user.Password, req.Password); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, tokenHash, expiresAt, err := s.issueToken()
	if err != nil {
		return nil, "", err
	}
	if err := s.userRepo.SetToken(ctx, user.ID, &tokenHash, expiresAt); err != nil {
		return nil, "", err
	}
	user.TokenHash = &tokenHash
	user.TokenExpiresAt = expiresAt

	return user, token, nil
}

// Resolve maps a raw token to its owner. Unknown, cleared and expired tokens
// all yield ErrInvalidToken.
func (s *authService) Resolve(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.FindByTokenHash(ctx, auth.HashToken(token))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	if user.TokenExpiresAt != nil && !s.now().Before(*user.TokenExpiresAt) {
		return nil, ErrInvalidToken
	}

	return &Identity{UserID: user.ID, Name: user.Name, Email: user.Email}, nil
}

// Invalidate clears the stored token so it can never resolve again.
func (s *authService) Invalidate(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.userRepo.ClearToken(ctx, auth.HashToken(token))
}

func (s *authService) CurrentUser(ctx context.Context, identity *Identity) (*models.User, error) {
	if identity == nil {
		return nil, ErrUnauthorized
	}
	user, err := s.userRepo.FindByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) issueToken() (token, tokenHash string, expiresAt *time.Time, err error) {
	token, err = auth.NewSessionToken()
	if err != nil {
		return "", "", nil, err
	}
	if s.sessionTTL > 0 {
		exp := s.now().Add(s.sessionTTL).UTC()
		expiresAt = &exp
	}
	return token, auth.HashToken(token), expiresAt, nil
}
