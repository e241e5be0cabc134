// Package router wires HTTP routes to their handlers.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/yut0n/ticketstock/internal/config"
	"github.com/yut0n/ticketstock/internal/handler"
	"github.com/yut0n/ticketstock/internal/middleware"
)

// RegisterRoutes registers the health check on the provided Echo instance.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterPublic registers the unauthenticated surface: catalog browsing,
// the buy endpoint and the recent-sales feed.  The buy endpoint is wrapped
// in a Redis token bucket to shape on-sale bursts; the limiter degrades
// open when Redis is unavailable.
func RegisterPublic(e *echo.Echo, browse *handler.BrowseHandler, buy *handler.BuyHandler, sales *handler.SalesHandler, rlCfg config.RateLimitConfig, rdb *redis.Client) {
	e.GET("/v1/artists", browse.ListArtists)
	e.GET("/v1/artists/:id", browse.GetArtist)
	e.GET("/v1/tickets/:id", browse.GetTicket)
	e.GET("/v1/sales/recent", sales.Recent)
	e.POST("/v1/buy", buy.Buy, middleware.NewTokenBucket(rlCfg, rdb))
}

// RegisterAdmin registers the administrative surface.  Login is open; the
// reseed/rebuild trigger and the ledger export require an admin token.
func RegisterAdmin(e *echo.Echo, auth *handler.AuthHandler, admin *handler.AdminHandler, jwtSecret string) {
	e.POST("/v1/admin/login", auth.Login)

	g := e.Group("/v1/admin")
	g.Use(middleware.AdminAuth(jwtSecret))
	g.POST("/init", admin.Init)
	g.GET("/orders.csv", admin.ExportCSV)
}
