package repository

import (
	"context"
	"errors"
	"fmt"

	"cakehub/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CakeRepository covers cakes and their comment threads. Every multi-row
// mutation runs in a single transaction.
type CakeRepository interface {
	List(ctx context.Context, page, limit int) ([]models.Cake, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Cake, error)
	GetWithComments(ctx context.Context, id int64) (*models.Cake, error)
	NameExists(ctx context.Context, name string) (bool, error)
	CreateWithComment(ctx context.Context, cake *models.Cake, comment *models.Comment) error
	AddComment(ctx context.Context, comment *models.Comment) error
	DeleteWithComments(ctx context.Context, id int64) error
}

type cakeRepository struct {
	db *gorm.DB
}

func NewCakeRepository(db *gorm.DB) CakeRepository {
	return &cakeRepository{db: db}
}

// List returns one page of cakes, newest first, plus the total count.
// The count is a separate query and may drift from the page under concurrent inserts.
func (r *cakeRepository) List(ctx context.Context, page, limit int) ([]models.Cake, int64, error) {
	var list []models.Cake
	var total int64

	// Count total records
	if err := r.db.WithContext(ctx).Model(&models.Cake{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count cakes: %w", err)
	}

	offset, ok := pageOffset(page, limit)
	if !ok {
		return []models.Cake{}, total, nil
	}

	// id breaks ties between equal timestamps
	if err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("list cakes: %w", err)
	}

	return list, total, nil
}

func (r *cakeRepository) GetByID(ctx context.Context, id int64) (*models.Cake, error) {
	var cake models.Cake
	if err := r.db.WithContext(ctx).Preload("User").First(&cake, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get cake: %w", err)
	}
	return &cake, nil
}

func (r *cakeRepository) GetWithComments(ctx context.Context, id int64) (*models.Cake, error) {
	var cake models.Cake
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC").Order("id DESC")
		}).
		Preload("Comments.User").
		First(&cake, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get cake with comments: %w", err)
	}
	return &cake, nil
}

func (r *cakeRepository) NameExists(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Cake{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check cake name: %w", err)
	}
	return count > 0, nil
}

// CreateWithComment inserts the cake and its first comment atomically.
func (r *cakeRepository) CreateWithComment(ctx context.Context, cake *models.Cake, comment *models.Comment) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(cake).Error; err != nil {
			return err
		}
		comment.CakeID = cake.ID
		return tx.Omit(clause.Associations).Create(comment).Error
	})
	if err != nil {
		if constraint, ok := uniqueViolation(err); ok && constraint == constraintCakeName {
			return ErrDuplicateCakeName
		}
		return fmt.Errorf("create cake: %w", err)
	}
	return nil
}

func (r *cakeRepository) AddComment(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(comment).Error; err != nil {
		// the cake was deleted between lookup and insert
		if foreignKeyViolation(err) {
			return ErrNotFound
		}
		return fmt.Errorf("create comment: %w", err)
	}
	return nil
}

// DeleteWithComments removes the comments and the cake in one transaction.
func (r *cakeRepository) DeleteWithComments(ctx context.Context, id int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cake_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Cake{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete cake: %w", err)
	}
	return nil
}
