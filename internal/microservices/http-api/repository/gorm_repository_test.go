package repository

import (
	"context"
	"fmt"
	"math"
	"os"
	"testing"
	"time"

	"cakehub/database"
	"cakehub/internal/microservices/http-api/models"

	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// GormRepositoryTestSuite runs the gorm repositories against a real Postgres.
// Point CAKEHUB_TEST_DATABASE_URL at a disposable database to enable it; every
// test truncates the tables.
type GormRepositoryTestSuite struct {
	suite.Suite
	db    *gorm.DB
	users UserRepository
	cakes CakeRepository
	ctx   context.Context
	owner *models.User
}

func TestGormRepositoryTestSuite(t *testing.T) {
	dsn := os.Getenv("CAKEHUB_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("CAKEHUB_TEST_DATABASE_URL not set")
	}
	suite.Run(t, &GormRepositoryTestSuite{})
}

func (s *GormRepositoryTestSuite) SetupSuite() {
	db, err := gorm.Open(postgres.Open(os.Getenv("CAKEHUB_TEST_DATABASE_URL")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	s.Require().NoError(err)
	s.Require().NoError(database.Migrate(db))
	s.db = db
	s.users = NewUserRepository(db)
	s.cakes = NewCakeRepository(db)
	s.ctx = context.Background()
}

func (s *GormRepositoryTestSuite) TearDownSuite() {
	if s.db != nil {
		s.NoError(database.Close(s.db))
	}
}

func (s *GormRepositoryTestSuite) SetupTest() {
	s.Require().NoError(s.db.Exec("TRUNCATE comments, cakes, users RESTART IDENTITY CASCADE").Error)
	s.owner = &models.User{Name: "Alice", Email: "alice@example.com", Password: "hash"}
	s.Require().NoError(s.users.Create(s.ctx, s.owner))
}

func (s *GormRepositoryTestSuite) createCake(name string) *models.Cake {
	cake := &models.Cake{Name: name, ImageURL: "https://example.com/cake.jpg", UserID: s.owner.ID}
	comment := &models.Comment{Text: "First bite", YumFactor: 4, UserID: s.owner.ID}
	s.Require().NoError(s.cakes.CreateWithComment(s.ctx, cake, comment))
	return cake
}

func (s *GormRepositoryTestSuite) countComments() int64 {
	var n int64
	s.Require().NoError(s.db.Model(&models.Comment{}).Count(&n).Error)
	return n
}

func (s *GormRepositoryTestSuite) TestCreateUser_DuplicateEmail() {
	dup := &models.User{Name: "Other", Email: "alice@example.com", Password: "hash"}
	s.ErrorIs(s.users.Create(s.ctx, dup), ErrDuplicateEmail)

	_, err := s.users.FindByEmail(s.ctx, "nobody@example.com")
	s.ErrorIs(err, ErrNotFound)
}

func (s *GormRepositoryTestSuite) TestTokenLifecycle() {
	hash := "a3f1"
	expires := time.Now().Add(time.Hour).UTC()
	s.Require().NoError(s.users.SetToken(s.ctx, s.owner.ID, &hash, &expires))

	found, err := s.users.FindByTokenHash(s.ctx, hash)
	s.Require().NoError(err)
	s.Equal(s.owner.ID, found.ID)

	s.Require().NoError(s.users.ClearToken(s.ctx, hash))
	s.Require().NoError(s.users.ClearToken(s.ctx, hash))
	_, err = s.users.FindByTokenHash(s.ctx, hash)
	s.ErrorIs(err, ErrNotFound)

	s.ErrorIs(s.users.SetToken(s.ctx, "00000000-0000-0000-0000-000000000000", &hash, nil), ErrNotFound)
}

func (s *GormRepositoryTestSuite) TestCreateWithComment_DuplicateNameRollsBack() {
	s.createCake("Lemon Tart")
	s.Equal(int64(1), s.countComments())

	cake := &models.Cake{Name: "Lemon Tart", ImageURL: "https://example.com/b.jpg", UserID: s.owner.ID}
	comment := &models.Comment{Text: "Second try", YumFactor: 2, UserID: s.owner.ID}
	s.ErrorIs(s.cakes.CreateWithComment(s.ctx, cake, comment), ErrDuplicateCakeName)
	s.Equal(int64(1), s.countComments())

	exists, err := s.cakes.NameExists(s.ctx, "Lemon Tart")
	s.Require().NoError(err)
	s.True(exists)
}

func (s *GormRepositoryTestSuite) TestAddComment_MissingCake() {
	err := s.cakes.AddComment(s.ctx, &models.Comment{Text: "Orphan", YumFactor: 3, CakeID: 999, UserID: s.owner.ID})
	s.ErrorIs(err, ErrNotFound)
}

func (s *GormRepositoryTestSuite) TestDeleteWithComments() {
	cake := s.createCake("Lemon Tart")
	s.Require().NoError(s.cakes.AddComment(s.ctx, &models.Comment{Text: "Second", YumFactor: 3, CakeID: cake.ID, UserID: s.owner.ID}))

	detail, err := s.cakes.GetWithComments(s.ctx, cake.ID)
	s.Require().NoError(err)
	s.Require().Len(detail.Comments, 2)
	s.Equal("Second", detail.Comments[0].Text)
	s.Equal("Alice", detail.Comments[0].User.Name)

	s.Require().NoError(s.cakes.DeleteWithComments(s.ctx, cake.ID))
	s.Zero(s.countComments())
	_, err = s.cakes.GetByID(s.ctx, cake.ID)
	s.ErrorIs(err, ErrNotFound)
	s.ErrorIs(s.cakes.DeleteWithComments(s.ctx, cake.ID), ErrNotFound)
}

func (s *GormRepositoryTestSuite) TestList() {
	for i := 1; i <= 12; i++ {
		s.createCake(fmt.Sprintf("cake-%02d", i))
	}

	page, total, err := s.cakes.List(s.ctx, 3, 5)
	s.Require().NoError(err)
	s.Equal(int64(12), total)
	s.Require().Len(page, 2)
	s.Equal("cake-01", page[1].Name)
	s.Equal("Alice", page[1].User.Name)

	far, total, err := s.cakes.List(s.ctx, math.MaxInt/100+2, 100)
	s.Require().NoError(err)
	s.Empty(far)
	s.Equal(int64(12), total)
}
