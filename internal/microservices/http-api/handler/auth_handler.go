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

// CookieOptions controls the session cookie written on register and login.
type CookieOptions struct {
	Secure bool
	TTL    time.Duration // 0 writes a browser-session cookie
}

type AuthHandler struct {
	authService service.AuthService
	cookie      CookieOptions
	timeout     time.Duration
}

func NewAuthHandler(authService service.AuthService, cookie CookieOptions, timeout time.Duration) *AuthHandler {
	dto.RegisterValidations()
	return &AuthHandler{
		authService: authService,
		cookie:      cookie,
		timeout:     timeout,
	}
}

func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/register", h.Register)
	rg.POST("/login", h.Login)
	rg.POST("/logout", h.Logout)
	rg.GET("/user", middleware.RequireAuth(), h.Me)
}

// Register creates an account and starts a session
// POST /register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	user, token, err := h.authService.Register(ctx, req)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setSessionCookie(c, token)
	c.JSON(http.StatusCreated, dto.AuthResponse{
		Message: "Registration successful",
		User:    dto.FromModelToUserResponse(user),
	})
}

// Login verifies credentials and starts a new session
// POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	user, token, err := h.authService.Login(ctx, req)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setSessionCookie(c, token)
	c.JSON(http.StatusOK, dto.AuthResponse{
		Message: "Login successful",
		User:    dto.FromModelToUserResponse(user),
	})
}

// Logout invalidates the token server-side and clears the cookie. Logging out
// without a session still succeeds.
// POST /logout
func (h *AuthHandler) Logout(c *gin.Context) {
	token, _ := c.Cookie(middleware.SessionCookie)

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	err := h.authService.Invalidate(ctx, token)
	h.clearSessionCookie(c)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Logged out successfully"})
}

// Me returns the logged-in user
// GET /user
func (h *AuthHandler) Me(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	user, err := h.authService.CurrentUser(ctx, identity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromModelToUserResponse(user))
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, int(h.cookie.TTL.Seconds()), "/", "", h.cookie.Secure, true)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", h.cookie.Secure, true)
}

