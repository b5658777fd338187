package dto

import (
	"encoding/json"
	"strings"

	"cakehub/internal/microservices/http-api/models"
)

// Data Transfer Objects for authentication requests and responses

// RegisterRequest: payload for user registration
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=72,bcryptlen,password"`
}

// Normalize trims the name and lowercases the email before validation.
func (r *RegisterRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = NormalizeEmail(r.Email)
}

// UnmarshalJSON normalizes on decode so binding validates the cleaned values.
func (r *RegisterRequest) UnmarshalJSON(data []byte) error {
	type raw RegisterRequest
	if err := json.Unmarshal(data, (*raw)(r)); err != nil {
		return err
	}
	r.Normalize()
	return nil
}

// LoginRequest: payload for user login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

func (r *LoginRequest) Normalize() {
	r.Email = NormalizeEmail(r.Email)
}

func (r *LoginRequest) UnmarshalJSON(data []byte) error {
	type raw LoginRequest
	if err := json.Unmarshal(data, (*raw)(r)); err != nil {
		return err
	}
	r.Normalize()
	return nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// UserResponse is the public view of a user.
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AuthResponse: response payload after registration or login
type AuthResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

func FromModelToUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
}

// MessageResponse is used by endpoints that only confirm an action.
type MessageResponse struct {
	Message string `json:"message"`
}
