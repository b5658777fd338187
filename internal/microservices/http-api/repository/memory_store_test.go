package repository

import (
	"context"
	"fmt"
	"math"
	"sync"
	"testing"
	"time"

	"cakehub/internal/microservices/http-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type MemoryStoreTestSuite struct {
	suite.Suite
	store *MemoryStore
	ctx   context.Context
	owner *models.User
	clock time.Time
}

func (s *MemoryStoreTestSuite) SetupTest() {
	s.store = NewMemoryStore()
	s.ctx = context.Background()
	s.clock = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	// each call advances one second so ordering is deterministic
	s.store.now = func() time.Time {
		s.clock = s.clock.Add(time.Second)
		return s.clock
	}

	s.owner = &models.User{Name: "Alice", Email: "alice@example.com", Password: "hash"}
	s.Require().NoError(s.store.Create(s.ctx, s.owner))
}

func (s *MemoryStoreTestSuite) createCake(name string) *models.Cake {
	cake := &models.Cake{Name: name, ImageURL: "https://example.com/" + name + ".jpg", UserID: s.owner.ID}
	comment := &models.Comment{Text: "First bite", YumFactor: 4, UserID: s.owner.ID}
	s.Require().NoError(s.store.CreateWithComment(s.ctx, cake, comment))
	return cake
}

func (s *MemoryStoreTestSuite) TestCreateUser_AssignsIDAndRejectsDuplicateEmail() {
	s.NotEmpty(s.owner.ID)

	dup := &models.User{Name: "Other", Email: "alice@example.com", Password: "hash"}
	s.ErrorIs(s.store.Create(s.ctx, dup), ErrDuplicateEmail)

	found, err := s.store.FindByEmail(s.ctx, "alice@example.com")
	s.Require().NoError(err)
	s.Equal("Alice", found.Name)

	_, err = s.store.FindByEmail(s.ctx, "nobody@example.com")
	s.ErrorIs(err, ErrNotFound)
}

func (s *MemoryStoreTestSuite) TestTokenLifecycle() {
	first := "hash-1"
	s.Require().NoError(s.store.SetToken(s.ctx, s.owner.ID, &first, nil))

	found, err := s.store.FindByTokenHash(s.ctx, first)
	s.Require().NoError(err)
	s.Equal(s.owner.ID, found.ID)

	// rotation replaces the old hash
	second := "hash-2"
	s.Require().NoError(s.store.SetToken(s.ctx, s.owner.ID, &second, nil))
	_, err = s.store.FindByTokenHash(s.ctx, first)
	s.ErrorIs(err, ErrNotFound)

	s.Require().NoError(s.store.ClearToken(s.ctx, second))
	_, err = s.store.FindByTokenHash(s.ctx, second)
	s.ErrorIs(err, ErrNotFound)

	// clearing twice is fine
	s.NoError(s.store.ClearToken(s.ctx, second))

	s.ErrorIs(s.store.SetToken(s.ctx, "missing", &first, nil), ErrNotFound)
}

func (s *MemoryStoreTestSuite) TestCreateWithComment() {
	cake := s.createCake("lemon-tart")
	s.NotZero(cake.ID)
	s.False(cake.CreatedAt.IsZero())

	exists, err := s.store.NameExists(s.ctx, "lemon-tart")
	s.Require().NoError(err)
	s.True(exists)

	dup := &models.Cake{Name: "lemon-tart", ImageURL: "https://example.com/x.jpg", UserID: s.owner.ID}
	s.ErrorIs(s.store.CreateWithComment(s.ctx, dup, &models.Comment{Text: "Again!", YumFactor: 1, UserID: s.owner.ID}), ErrDuplicateCakeName)

	detail, err := s.store.GetWithComments(s.ctx, cake.ID)
	s.Require().NoError(err)
	s.Equal("Alice", detail.User.Name)
	s.Require().Len(detail.Comments, 1)
	s.Equal("First bite", detail.Comments[0].Text)
	s.Equal("Alice", detail.Comments[0].User.Name)
}

func (s *MemoryStoreTestSuite) TestListPaginatesNewestFirst() {
	for i := 1; i <= 25; i++ {
		s.createCake(fmt.Sprintf("cake-%02d", i))
	}

	page1, total, err := s.store.List(s.ctx, 1, 10)
	s.Require().NoError(err)
	s.Equal(int64(25), total)
	s.Require().Len(page1, 10)
	s.Equal("cake-25", page1[0].Name)
	s.Equal("Alice", page1[0].User.Name)

	page3, _, err := s.store.List(s.ctx, 3, 10)
	s.Require().NoError(err)
	s.Require().Len(page3, 5)
	s.Equal("cake-01", page3[4].Name)

	page4, _, err := s.store.List(s.ctx, 4, 10)
	s.Require().NoError(err)
	s.Empty(page4)

	// (page-1)*limit would wrap around to a negative offset
	far, total, err := s.store.List(s.ctx, math.MaxInt/100+2, 100)
	s.Require().NoError(err)
	s.NotNil(far)
	s.Empty(far)
	s.Equal(int64(25), total)
}

func (s *MemoryStoreTestSuite) TestCommentsNewestFirst() {
	cake := s.createCake("lemon-tart")
	for _, text := range []string{"second", "third"} {
		s.Require().NoError(s.store.AddComment(s.ctx, &models.Comment{Text: text, YumFactor: 3, CakeID: cake.ID, UserID: s.owner.ID}))
	}

	detail, err := s.store.GetWithComments(s.ctx, cake.ID)
	s.Require().NoError(err)
	s.Require().Len(detail.Comments, 3)
	s.Equal("third", detail.Comments[0].Text)
	s.Equal("First bite", detail.Comments[2].Text)
}

func (s *MemoryStoreTestSuite) TestAddCommentToMissingCake() {
	err := s.store.AddComment(s.ctx, &models.Comment{Text: "hello", YumFactor: 3, CakeID: 404, UserID: s.owner.ID})
	s.ErrorIs(err, ErrNotFound)
}

func (s *MemoryStoreTestSuite) TestDeleteCascadesComments() {
	cake := s.createCake("lemon-tart")
	other := s.createCake("carrot-cake")
	s.Require().NoError(s.store.AddComment(s.ctx, &models.Comment{Text: "extra", YumFactor: 2, CakeID: cake.ID, UserID: s.owner.ID}))

	s.Require().NoError(s.store.DeleteWithComments(s.ctx, cake.ID))

	_, err := s.store.GetByID(s.ctx, cake.ID)
	s.ErrorIs(err, ErrNotFound)
	for _, c := range s.store.comments {
		s.NotEqual(cake.ID, c.CakeID)
	}

	// the name is free again
	exists, err := s.store.NameExists(s.ctx, "lemon-tart")
	s.Require().NoError(err)
	s.False(exists)

	remaining, err := s.store.GetWithComments(s.ctx, other.ID)
	s.Require().NoError(err)
	s.Len(remaining.Comments, 1)

	s.ErrorIs(s.store.DeleteWithComments(s.ctx, cake.ID), ErrNotFound)
}

func TestMemoryStoreTestSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreTestSuite))
}

func TestMemoryStore_ConcurrentUniqueName(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	owner := &models.User{Name: "Alice", Email: "alice@example.com"}
	require.NoError(t, store.Create(ctx, owner))

	const workers = 20
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cake := &models.Cake{Name: "Lemon Tart", ImageURL: "https://example.com/x.jpg", UserID: owner.ID}
			errs <- store.CreateWithComment(ctx, cake, &models.Comment{Text: "Zesty", YumFactor: 5, UserID: owner.ID})
		}()
	}
	wg.Wait()
	close(errs)

	var ok, dup int
	for err := range errs {
		switch err {
		case nil:
			ok++
		case ErrDuplicateCakeName:
			dup++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, workers-1, dup)
}

func TestInMemoryStore_Ping(t *testing.T) {
	assert.NoError(t, NewInMemoryStore().Ping(context.Background()))
}

func TestPageOffset(t *testing.T) {
	tests := []struct {
		name   string
		page   int
		limit  int
		offset int
		ok     bool
	}{
		{"first page", 1, 10, 0, true},
		{"third page", 3, 10, 20, true},
		{"largest representable", math.MaxInt/100 + 1, 100, (math.MaxInt / 100) * 100, true},
		{"overflowing page", math.MaxInt/100 + 2, 100, 0, false},
		{"max int page", math.MaxInt, 1, math.MaxInt - 1, true},
		{"max int page and limit", math.MaxInt, 100, 0, false},
		{"page zero", 0, 10, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, ok := pageOffset(tt.page, tt.limit)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.offset, offset)
		})
	}
}
