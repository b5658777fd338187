package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cakehub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

// UserRepository defines the interface for user and session-token data operations.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByTokenHash(ctx context.Context, tokenHash string) (*models.User, error)
	SetToken(ctx context.Context, userID string, tokenHash *string, expiresAt *time.Time) error
	ClearToken(ctx context.Context, tokenHash string) error
}

// userRepository is the GORM implementation of UserRepository.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of UserRepository in a GORM implementation
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if constraint, ok := uniqueViolation(err); ok && constraint == constraintUserEmail {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *userRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*models.User, error) {
	return r.findOne(ctx, "token_hash = ?", tokenHash)
}

// findOne returns nil and ErrNotFound rather than a zero-value user.
func (r *userRepository) findOne(ctx context.Context, query string, arg any) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where(query, arg).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) SetToken(ctx context.Context, userID string, tokenHash *string, expiresAt *time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"token_hash":       tokenHash,
			"token_expires_at": expiresAt,
		})
	if res.Error != nil {
		return fmt.Errorf("set session token: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ClearToken is idempotent: clearing an unknown hash is not an error.
func (r *userRepository) ClearToken(ctx context.Context, tokenHash string) error {
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("token_hash = ?", tokenHash).
		Updates(map[string]any{
			"token_hash":       nil,
			"token_expires_at": nil,
		}).Error
	if err != nil {
		return fmt.Errorf("clear session token: %w", err)
	}
	return nil
}
