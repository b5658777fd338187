package dto

import (
	"strings"
	"time"

	"cakehub/internal/microservices/http-api/models"
)

// CreateCommentRequest for adding a comment to an existing cake
type CreateCommentRequest struct {
	Comment   string `json:"comment" binding:"required,min=5,max=200"`
	YumFactor int    `json:"yumFactor" binding:"yumfactor"`
}

func (r *CreateCommentRequest) Normalize() {
	r.Comment = strings.TrimSpace(r.Comment)
}

// CommentResponse for returning comment information
type CommentResponse struct {
	ID        int64          `json:"id"`
	Comment   string         `json:"comment"`
	YumFactor int            `json:"yumFactor"`
	CakeID    int64          `json:"cakeId"`
	UserID    string         `json:"userId"`
	CreatedAt time.Time      `json:"createdAt"`
	User      *OwnerResponse `json:"user,omitempty"`
}

// CommentCreatedResponse is returned by POST /comment/:id
type CommentCreatedResponse struct {
	Message string          `json:"message"`
	Comment CommentResponse `json:"comment"`
}

// FromModelToCommentResponse converts a Comment model to CommentResponse DTO.
// The author is included only when it was loaded.
func FromModelToCommentResponse(comment *models.Comment) *CommentResponse {
	resp := &CommentResponse{
		ID:        comment.ID,
		Comment:   comment.Text,
		YumFactor: comment.YumFactor,
		CakeID:    comment.CakeID,
		UserID:    comment.UserID,
		CreatedAt: comment.CreatedAt,
	}
	if comment.User.ID != "" {
		resp.User = &OwnerResponse{ID: comment.User.ID, Name: comment.User.Name}
	}
	return resp
}
