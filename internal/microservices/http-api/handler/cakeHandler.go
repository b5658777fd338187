package handler

import (
	"context"
	"net/http"
	"time"

	"cakehub/internal/microservices/http-api/dto"
	"cakehub/internal/microservices/http-api/middleware"
	"cakehub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type CakeHandler struct {
	cakeService service.CakeService
	timeout     time.Duration
}

func NewCakeHandler(cakeService service.CakeService, timeout time.Duration) *CakeHandler {
	dto.RegisterValidations()
	return &CakeHandler{
		cakeService: cakeService,
		timeout:     timeout,
	}
}

// RegisterRoutes registers cake and comment routes
func (h *CakeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	cakes := rg.Group("/cakes")
	{
		// Public routes
		cakes.GET("", h.List)
		cakes.GET("/:id", h.Get)

		// Logged-in routes
		cakes.POST("", middleware.RequireAuth(), h.Create)
		cakes.DELETE("/:id", middleware.RequireAuth(), h.Delete)
	}

	rg.POST("/comment/:id", middleware.RequireAuth(), h.AddComment)
}

// List returns one page of the feed
// GET /cakes?page=1&limit=10
func (h *CakeHandler) List(c *gin.Context) {
	var query dto.ListCakesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	page, err := h.cakeService.ListCakes(ctx, query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// Get returns a cake with its owner and comments
// GET /cakes/:id
func (h *CakeHandler) Get(c *gin.Context) {
	cakeID, ok := parseID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	cake, err := h.cakeService.GetCake(ctx, cakeID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, cake)
}

// Create stores a new cake with the author's first comment
// POST /cakes
func (h *CakeHandler) Create(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	var req dto.CreateCakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	cake, comment, err := h.cakeService.CreateCake(ctx, identity, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CakeCreatedResponse{
		Message: "Cake created successfully",
		Cake:    *cake,
		Comment: *comment,
	})
}

// Delete removes a cake and its comments; owner only
// DELETE /cakes/:id
func (h *CakeHandler) Delete(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	cakeID, ok := parseID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	if err := h.cakeService.DeleteCake(ctx, identity, cakeID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Cake deleted successfully"})
}

// AddComment comments on an existing cake
// POST /comment/:id
func (h *CakeHandler) AddComment(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	cakeID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	comment, err := h.cakeService.AddComment(ctx, identity, cakeID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CommentCreatedResponse{
		Message: "Comment added successfully",
		Comment: *comment,
	})
}
