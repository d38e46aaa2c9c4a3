// Package server exposes the gateway operations over the REST surface the
// dashboard consumes.
package server

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// New builds the Echo instance with all routes registered. An empty
// jwtSecret leaves the news routes unauthenticated.
func New(h *Handler, jwtSecret string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.GET("/api/v1/health", h.Health)

	news := e.Group("/api/v1/news")
	if jwtSecret != "" {
		news.Use(RequireJWT(jwtSecret))
	}
	news.POST("/search", h.SearchNews)
	news.GET("", h.ListNews)
	news.GET("/", h.ListNews)
	news.POST("/analysis/:id", h.AnalyzeNews)
	news.GET("/trending", h.TrendingKeywords)

	return e
}
