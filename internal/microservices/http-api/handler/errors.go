package handler

import (
	"errors"
	"net/http"
	"strconv"

	"cakehub/internal/logger"
	"cakehub/internal/microservices/http-api/dto"
	"cakehub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto the API's error payload. Anything
// unrecognised is logged and reported as a generic 500.
func respondError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrorTypeValidation, "Validation failed", verr.Fields))
	case errors.Is(err, service.ErrEmailInUse):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrorTypeConflict, "Email already registered", nil))
	case errors.Is(err, service.ErrCakeNameInUse):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrorTypeConflict, "Cake name already exists", nil))
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.ErrorTypeUnauthorized, "Invalid email or password", nil))
	case errors.Is(err, service.ErrUnauthorized), errors.Is(err, service.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.ErrorTypeUnauthorized, "Authentication required", nil))
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, dto.NewErrorResponse(dto.ErrorTypeForbidden, "You can only delete your own cakes", nil))
	case errors.Is(err, service.ErrCakeNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(dto.ErrorTypeNotFound, "Cake not found", nil))
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(dto.ErrorTypeNotFound, "User not found", nil))
	default:
		logger.FromContext(c.Request.Context()).Error("request failed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"error", err,
		)
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(dto.ErrorTypeServer, "Internal server error", nil))
	}
}

// respondBindError reports a body or query that gin could not bind.
func respondBindError(c *gin.Context, err error) {
	fields := dto.FieldErrors(err)
	message := "Validation failed"
	if fields == nil {
		message = "Invalid request body"
	}
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrorTypeValidation, message, fields))
}

// parseID reads a positive integer path parameter.
func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrorTypeValidation, "Invalid cake ID",
			map[string]string{name: name + " must be a positive integer"}))
		return 0, false
	}
	return id, true
}

// MethodNotAllowed answers a known path hit with the wrong verb.
func MethodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, dto.NewErrorResponse(dto.ErrorTypeValidation, "Method not allowed", nil))
}

// NotFound answers an unknown path.
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, dto.NewErrorResponse(dto.ErrorTypeNotFound, "Route not found", nil))
}
