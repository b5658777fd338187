package service

import (
	"errors"
	"sort"
	"strings"

	"cakehub/internal/microservices/http-api/dto"
)

var (
	ErrEmailInUse         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUserNotFound       = errors.New("user not found")

	ErrCakeNameInUse = errors.New("cake name already in use")
	ErrCakeNotFound  = errors.New("cake not found")
	ErrUnauthorized  = errors.New("authentication required")
	ErrForbidden     = errors.New("not allowed")
)

// ValidationError carries field-level messages; it is returned before any write.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// validate runs the DTO schema and converts failures into a ValidationError.
func validate(obj any) error {
	if err := dto.Validate(obj); err != nil {
		fields := dto.FieldErrors(err)
		if fields == nil {
			fields = map[string]string{"request": err.Error()}
		}
		return &ValidationError{Fields: fields}
	}
	return nil
}
