package repository

import (
	"context"
	"fmt"
	"math"

	"gorm.io/gorm"
)

// Store is the storage handle injected into the services.
type Store struct {
	Users UserRepository
	Cakes CakeRepository

	ping func(ctx context.Context) error
}

// NewGormStore backs every repository with the same gorm handle.
func NewGormStore(db *gorm.DB) *Store {
	return &Store{
		Users: NewUserRepository(db),
		Cakes: NewCakeRepository(db),
		ping: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return fmt.Errorf("get sql.DB: %w", err)
			}
			return sqlDB.PingContext(ctx)
		},
	}
}

// NewInMemoryStore backs every repository with one MemoryStore.
func NewInMemoryStore() *Store {
	m := NewMemoryStore()
	return &Store{
		Users: m,
		Cakes: m,
		ping:  func(context.Context) error { return nil },
	}
}

// Ping checks that the underlying storage is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if s.ping == nil {
		return nil
	}
	return s.ping(ctx)
}

// pageOffset returns the row offset of a 1-based page. ok is false when the
// offset does not fit in an int; such a page is past any stored row.
func pageOffset(page, limit int) (offset int, ok bool) {
	if page < 1 || limit < 1 || page-1 > math.MaxInt/limit {
		return 0, false
	}
	return (page - 1) * limit, true
}
