// Package router assembles the cakehub HTTP API on a gin engine.
package router

import (
	"fmt"
	"log/slog"

	"cakehub/internal/config"
	"cakehub/internal/microservices/http-api/handler"
	"cakehub/internal/microservices/http-api/middleware"
	"cakehub/internal/microservices/http-api/repository"
	"cakehub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type Deps struct {
	Config *config.Config
	Logger *slog.Logger
	Store  *repository.Store
}

// New wires services and handlers over deps.Store and returns the engine.
// Every route is served at the root and again under /api.
func New(deps Deps) (*gin.Engine, error) {
	cfg := deps.Config

	authService, err := service.NewAuthService(deps.Store.Users, cfg)
	if err != nil {
		return nil, fmt.Errorf("build auth service: %w", err)
	}
	cakeService := service.NewCakeService(deps.Store.Cakes, service.NewPolicy())

	authHandler := handler.NewAuthHandler(authService, handler.CookieOptions{
		Secure: cfg.CookieSecure,
		TTL:    cfg.SessionTTL,
	}, cfg.RequestTimeout)
	cakeHandler := handler.NewCakeHandler(cakeService, cfg.RequestTimeout)
	healthHandler := handler.NewHealthHandler(deps.Store, cfg.RequestTimeout)

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.NoMethod(handler.MethodNotAllowed)
	r.NoRoute(handler.NotFound)

	r.Use(
		gin.Recovery(),
		middleware.RequestLogger(deps.Logger),
		middleware.CORS(cfg.CORSOrigins),
		middleware.SessionMiddleware(authService),
	)

	healthHandler.RegisterRoutes(&r.RouterGroup)

	for _, rg := range []*gin.RouterGroup{&r.RouterGroup, r.Group("/api")} {
		authHandler.RegisterRoutes(rg)
		cakeHandler.RegisterRoutes(rg)
	}

	return r, nil
}
