package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"cakehub/internal/microservices/http-api/models"

	"github.com/google/uuid"
)

// MemoryStore keeps users, cakes and comments in-process. It implements both
// UserRepository and CakeRepository and enforces the same uniqueness and
// cascade rules as the Postgres schema. Used for local runs and tests.
type MemoryStore struct {
	mu sync.RWMutex

	users  map[string]models.User // key: user ID
	emails map[string]string      // email -> user ID
	tokens map[string]string      // token hash -> user ID

	cakes     map[int64]models.Cake
	cakeNames map[string]int64
	comments  map[int64]models.Comment

	nextCakeID    int64
	nextCommentID int64

	now func() time.Time
}

// NewMemoryStore initializes an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:     make(map[string]models.User),
		emails:    make(map[string]string),
		tokens:    make(map[string]string),
		cakes:     make(map[int64]models.Cake),
		cakeNames: make(map[string]int64),
		comments:  make(map[int64]models.Comment),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (m *MemoryStore) Create(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, taken := m.emails[user.Email]; taken {
		return ErrDuplicateEmail
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	now := m.now()
	user.CreatedAt = now
	user.UpdatedAt = now

	m.users[user.ID] = *user
	m.emails[user.Email] = user.ID
	if user.TokenHash != nil {
		m.tokens[*user.TokenHash] = user.ID
	}
	return nil
}

func (m *MemoryStore) FindByID(_ context.Context, id string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.userByID(id)
}

func (m *MemoryStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.emails[email]
	if !ok {
		return nil, ErrNotFound
	}
	return m.userByID(id)
}

func (m *MemoryStore) FindByTokenHash(_ context.Context, tokenHash string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.tokens[tokenHash]
	if !ok {
		return nil, ErrNotFound
	}
	return m.userByID(id)
}

func (m *MemoryStore) userByID(id string) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (m *MemoryStore) SetToken(_ context.Context, userID string, tokenHash *string, expiresAt *time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[userID]
	if !ok {
		return ErrNotFound
	}
	if u.TokenHash != nil {
		delete(m.tokens, *u.TokenHash)
	}
	u.TokenHash = tokenHash
	u.TokenExpiresAt = expiresAt
	u.UpdatedAt = m.now()
	if tokenHash != nil {
		m.tokens[*tokenHash] = userID
	}
	m.users[userID] = u
	return nil
}

func (m *MemoryStore) ClearToken(_ context.Context, tokenHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, ok := m.tokens[tokenHash]
	if !ok {
		return nil
	}
	delete(m.tokens, tokenHash)
	if u, ok := m.users[id]; ok {
		u.TokenHash = nil
		u.TokenExpiresAt = nil
		u.UpdatedAt = m.now()
		m.users[id] = u
	}
	return nil
}

func (m *MemoryStore) List(_ context.Context, page, limit int) ([]models.Cake, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := make([]models.Cake, 0, len(m.cakes))
	for _, c := range m.cakes {
		all = append(all, m.withOwner(c))
	}
	sort.Slice(all, func(i, j int) bool {
		return newerFirst(all[i].CreatedAt, all[i].ID, all[j].CreatedAt, all[j].ID)
	})

	total := int64(len(all))
	offset, ok := pageOffset(page, limit)
	if !ok || offset >= len(all) {
		return []models.Cake{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *MemoryStore) GetByID(_ context.Context, id int64) (*models.Cake, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.cakes[id]
	if !ok {
		return nil, ErrNotFound
	}
	c = m.withOwner(c)
	return &c, nil
}

func (m *MemoryStore) GetWithComments(_ context.Context, id int64) (*models.Cake, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.cakes[id]
	if !ok {
		return nil, ErrNotFound
	}
	c = m.withOwner(c)

	c.Comments = []models.Comment{}
	for _, cm := range m.comments {
		if cm.CakeID != id {
			continue
		}
		cm.User = m.users[cm.UserID]
		c.Comments = append(c.Comments, cm)
	}
	sort.Slice(c.Comments, func(i, j int) bool {
		a, b := c.Comments[i], c.Comments[j]
		return newerFirst(a.CreatedAt, a.ID, b.CreatedAt, b.ID)
	})
	return &c, nil
}

func (m *MemoryStore) NameExists(_ context.Context, name string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.cakeNames[name]
	return ok, nil
}

func (m *MemoryStore) CreateWithComment(_ context.Context, cake *models.Cake, comment *models.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, taken := m.cakeNames[cake.Name]; taken {
		return ErrDuplicateCakeName
	}

	now := m.now()
	m.nextCakeID++
	cake.ID = m.nextCakeID
	cake.CreatedAt = now

	m.nextCommentID++
	comment.ID = m.nextCommentID
	comment.CakeID = cake.ID
	comment.CreatedAt = now

	stored := *cake
	stored.User = models.User{}
	stored.Comments = nil
	m.cakes[cake.ID] = stored
	m.cakeNames[cake.Name] = cake.ID

	storedComment := *comment
	storedComment.User = models.User{}
	m.comments[comment.ID] = storedComment
	return nil
}

func (m *MemoryStore) AddComment(_ context.Context, comment *models.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.cakes[comment.CakeID]; !ok {
		return ErrNotFound
	}
	m.nextCommentID++
	comment.ID = m.nextCommentID
	comment.CreatedAt = m.now()

	stored := *comment
	stored.User = models.User{}
	m.comments[comment.ID] = stored
	return nil
}

func (m *MemoryStore) DeleteWithComments(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.cakes[id]
	if !ok {
		return ErrNotFound
	}
	for cid, cm := range m.comments {
		if cm.CakeID == id {
			delete(m.comments, cid)
		}
	}
	delete(m.cakeNames, c.Name)
	delete(m.cakes, id)
	return nil
}

// withOwner must be called with the lock held.
func (m *MemoryStore) withOwner(c models.Cake) models.Cake {
	c.User = m.users[c.UserID]
	return c
}

func newerFirst(aAt time.Time, aID int64, bAt time.Time, bID int64) bool {
	if !aAt.Equal(bAt) {
		return aAt.After(bAt)
	}
	return aID > bID
}
