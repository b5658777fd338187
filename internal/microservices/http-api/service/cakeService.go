package service

import (
	"context"
	"errors"

	"cakehub/internal/microservices/http-api/dto"
	"cakehub/internal/microservices/http-api/models"
	"cakehub/internal/microservices/http-api/repository"
)

type CakeService interface {
	ListCakes(ctx context.Context, query dto.ListCakesQuery) (*dto.PaginatedCakeResponse, error)
	GetCake(ctx context.Context, cakeID int64) (*dto.CakeDetailResponse, error)
	CreateCake(ctx context.Context, identity *Identity, req dto.CreateCakeRequest) (*dto.CakeResponse, *dto.CommentResponse, error)
	AddComment(ctx context.Context, identity *Identity, cakeID int64, req dto.CreateCommentRequest) (*dto.CommentResponse, error)
	DeleteCake(ctx context.Context, identity *Identity, cakeID int64) error
}

type cakeService struct {
	cakeRepo repository.CakeRepository
	policy   Policy
}

func NewCakeService(cakeRepo repository.CakeRepository, policy Policy) CakeService {
	return &cakeService{
		cakeRepo: cakeRepo,
		policy:   policy,
	}
}

// ListCakes returns one page of the feed, newest first.
func (s *cakeService) ListCakes(ctx context.Context, query dto.ListCakesQuery) (*dto.PaginatedCakeResponse, error) {
	if err := validate(&query); err != nil {
		return nil, err
	}
	page, limit := query.Resolved()

	cakes, total, err := s.cakeRepo.List(ctx, page, limit)
	if err != nil {
		return nil, err
	}

	cakeResponses := make([]dto.CakeResponse, 0, len(cakes))
	for i := range cakes {
		cakeResponses = append(cakeResponses, *dto.FromModelToCakeResponse(&cakes[i]))
	}

	return dto.NewPaginatedCakeResponse(cakeResponses, total, page, limit), nil
}

// GetCake returns the cake with its owner and comment thread.
func (s *cakeService) GetCake(ctx context.Context, cakeID int64) (*dto.CakeDetailResponse, error) {
	cake, err := s.cakeRepo.GetWithComments(ctx, cakeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCakeNotFound
		}
		return nil, err
	}
	return dto.FromModelToCakeDetailResponse(cake), nil
}

// CreateCake stores the cake and its first comment as one unit.
func (s *cakeService) CreateCake(ctx context.Context, identity *Identity, req dto.CreateCakeRequest) (*dto.CakeResponse, *dto.CommentResponse, error) {
	if !s.policy.CanCreateContent(identity) {
		return nil, nil, ErrUnauthorized
	}

	req.Normalize()
	if err := validate(&req); err != nil {
		return nil, nil, err
	}

	exists, err := s.cakeRepo.NameExists(ctx, req.Name)
	if err != nil {
		return nil, nil, err
	}
	if exists {
		return nil, nil, ErrCakeNameInUse
	}

	cake := &models.Cake{
		Name:     req.Name,
		ImageURL: req.ImageURL,
		UserID:   identity.UserID,
	}
	comment := &models.Comment{
		Text:      req.Comment,
		YumFactor: req.YumFactor,
		UserID:    identity.UserID,
	}

	if err := s.cakeRepo.CreateWithComment(ctx, cake, comment); err != nil {
		if errors.Is(err, repository.ErrDuplicateCakeName) {
			return nil, nil, ErrCakeNameInUse
		}
		return nil, nil, err
	}

	owner := models.User{ID: identity.UserID, Name: identity.Name}
	cake.User = owner
	comment.User = owner

	return dto.FromModelToCakeResponse(cake), dto.FromModelToCommentResponse(comment), nil
}

// AddComment appends a comment to an existing cake.
func (s *cakeService) AddComment(ctx context.Context, identity *Identity, cakeID int64, req dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	if !s.policy.CanCreateContent(identity) {
		return nil, ErrUnauthorized
	}

	req.Normalize()
	if err := validate(&req); err != nil {
		return nil, err
	}

	if _, err := s.cakeRepo.GetByID(ctx, cakeID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCakeNotFound
		}
		return nil, err
	}

	comment := &models.Comment{
		Text:      req.Comment,
		YumFactor: req.YumFactor,
		CakeID:    cakeID,
		UserID:    identity.UserID,
	}
	if err := s.cakeRepo.AddComment(ctx, comment); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCakeNotFound
		}
		return nil, err
	}
	comment.User = models.User{ID: identity.UserID, Name: identity.Name}

	return dto.FromModelToCommentResponse(comment), nil
}

// DeleteCake removes the cake and all its comments; only the owner may do it.
func (s *cakeService) DeleteCake(ctx context.Context, identity *Identity, cakeID int64) error {
	if !s.policy.CanCreateContent(identity) {
		return ErrUnauthorized
	}

	cake, err := s.cakeRepo.GetByID(ctx, cakeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCakeNotFound
		}
		return err
	}

	if !s.policy.CanDelete(identity, cake) {
		return ErrForbidden
	}

	if err := s.cakeRepo.DeleteWithComments(ctx, cakeID); err != nil {
		// a concurrent delete won
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCakeNotFound
		}
		return err
	}
	return nil
}
