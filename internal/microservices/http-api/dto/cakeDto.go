package dto

import (
	"strings"
	"time"

	"cakehub/internal/microservices/http-api/models"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// ListCakesQuery binds ?page=&limit=. Pointers tell "absent" apart from an explicit 0.
type ListCakesQuery struct {
	Page  *int `form:"page" json:"page" binding:"omitempty,min=1"`
	Limit *int `form:"limit" json:"limit" binding:"omitempty,min=1,max=100"`
}

// Resolved returns page and limit with defaults applied.
func (q ListCakesQuery) Resolved() (page, limit int) {
	page, limit = DefaultPage, DefaultLimit
	if q.Page != nil {
		page = *q.Page
	}
	if q.Limit != nil {
		limit = *q.Limit
	}
	return page, limit
}

// CreateCakeRequest creates a cake together with its first comment
type CreateCakeRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=100"`
	ImageURL  string `json:"imageUrl" binding:"required,max=2048,httpurl"`
	Comment   string `json:"comment" binding:"required,min=5,max=200"`
	YumFactor int    `json:"yumFactor" binding:"yumfactor"`
}

func (r *CreateCakeRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.ImageURL = strings.TrimSpace(r.ImageURL)
	r.Comment = strings.TrimSpace(r.Comment)
}

// OwnerResponse is the public {id,name} projection of a user attached to cakes and comments.
type OwnerResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CakeResponse struct {
	ID        int64         `json:"id"`
	Name      string        `json:"name"`
	ImageURL  string        `json:"imageUrl"`
	UserID    string        `json:"userId"`
	CreatedAt time.Time     `json:"createdAt"`
	User      OwnerResponse `json:"user"`
}

// CakeDetailResponse is a cake with its full comment thread, newest first.
type CakeDetailResponse struct {
	CakeResponse
	Comments []CommentResponse `json:"comments"`
}

// CakeCreatedResponse is returned by POST /cakes
type CakeCreatedResponse struct {
	Message string          `json:"message"`
	Cake    CakeResponse    `json:"cake"`
	Comment CommentResponse `json:"comment"`
}

func FromModelToCakeResponse(cake *models.Cake) *CakeResponse {
	return &CakeResponse{
		ID:        cake.ID,
		Name:      cake.Name,
		ImageURL:  cake.ImageURL,
		UserID:    cake.UserID,
		CreatedAt: cake.CreatedAt,
		User:      OwnerResponse{ID: cake.UserID, Name: cake.User.Name},
	}
}

func FromModelToCakeDetailResponse(cake *models.Cake) *CakeDetailResponse {
	comments := make([]CommentResponse, 0, len(cake.Comments))
	for i := range cake.Comments {
		comments = append(comments, *FromModelToCommentResponse(&cake.Comments[i]))
	}
	return &CakeDetailResponse{
		CakeResponse: *FromModelToCakeResponse(cake),
		Comments:     comments,
	}
}

// PaginationMetadata mirrors the feed's paging contract.
type PaginationMetadata struct {
	CurrentPage int   `json:"currentPage"`
	PageSize    int   `json:"pageSize"`
	TotalPages  int   `json:"totalPages"`
	TotalItems  int64 `json:"totalItems"`
}

// PaginatedCakeResponse for returning one page of the feed
type PaginatedCakeResponse struct {
	Cakes    []CakeResponse     `json:"cakes"`
	Metadata PaginationMetadata `json:"metadata"`
}

// NewPaginatedCakeResponse computes totalPages = ceil(total/pageSize).
func NewPaginatedCakeResponse(cakes []CakeResponse, total int64, page, pageSize int) *PaginatedCakeResponse {
	totalPages := int(total / int64(pageSize))
	if total%int64(pageSize) != 0 {
		totalPages++
	}

	if cakes == nil {
		cakes = []CakeResponse{}
	}

	return &PaginatedCakeResponse{
		Cakes: cakes,
		Metadata: PaginationMetadata{
			CurrentPage: page,
			PageSize:    pageSize,
			TotalPages:  totalPages,
			TotalItems:  total,
		},
	}
}
