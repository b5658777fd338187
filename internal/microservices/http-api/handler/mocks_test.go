package handler

import (
	"context"

	"cakehub/internal/microservices/http-api/dto"
	"cakehub/internal/microservices/http-api/middleware"
	"cakehub/internal/microservices/http-api/models"
	"cakehub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

// MockAuthService mocks the AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req dto.RegisterRequest) (*models.User, string, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*models.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) Login(ctx context.Context, req dto.LoginRequest) (*models.User, string, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*models.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) Resolve(ctx context.Context, token string) (*service.Identity, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Identity), args.Error(1)
}

func (m *MockAuthService) Invalidate(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockAuthService) CurrentUser(ctx context.Context, identity *service.Identity) (*models.User, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockCakeService mocks the CakeService interface
type MockCakeService struct {
	mock.Mock
}

func (m *MockCakeService) ListCakes(ctx context.Context, query dto.ListCakesQuery) (*dto.PaginatedCakeResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PaginatedCakeResponse), args.Error(1)
}

func (m *MockCakeService) GetCake(ctx context.Context, cakeID int64) (*dto.CakeDetailResponse, error) {
	args := m.Called(ctx, cakeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CakeDetailResponse), args.Error(1)
}

func (m *MockCakeService) CreateCake(ctx context.Context, identity *service.Identity, req dto.CreateCakeRequest) (*dto.CakeResponse, *dto.CommentResponse, error) {
	args := m.Called(ctx, identity, req)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*dto.CakeResponse), args.Get(1).(*dto.CommentResponse), args.Error(2)
}

func (m *MockCakeService) AddComment(ctx context.Context, identity *service.Identity, cakeID int64, req dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	args := m.Called(ctx, identity, cakeID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CommentResponse), args.Error(1)
}

func (m *MockCakeService) DeleteCake(ctx context.Context, identity *service.Identity, cakeID int64) error {
	args := m.Called(ctx, identity, cakeID)
	return args.Error(0)
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// withIdentity stands in for SessionMiddleware.
func withIdentity(identity *service.Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		if identity != nil {
			middleware.SetIdentity(c, identity)
		}
		c.Next()
	}
}
