package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"newsinsight/internal/gateway"
	"newsinsight/internal/models"
)

const (
	defaultListLimit     = 100
	defaultTrendingLimit = 10
)

// NewsGateway is the gateway surface the HTTP layer consumes.
type NewsGateway interface {
	Search(ctx context.Context, q models.SearchQuery) ([]models.Article, error)
	ListLatest(ctx context.Context, limit, offset int) ([]models.Article, error)
	Analyze(ctx context.Context, id int64) (models.Article, error)
	TrendingKeywords(ctx context.Context, limit int) ([]string, error)
}

// TrendingCache caches the derived trending list. Result caching lives here
// in the calling layer, not in the gateway.
type TrendingCache interface {
	GetTrendingKeywords(ctx context.Context) ([]string, bool)
	CacheTrendingKeywords(ctx context.Context, keywords []string, ttl time.Duration) error
}

type Handler struct {
	gateway  NewsGateway
	cache    TrendingCache // nil when no cache is configured
	cacheTTL time.Duration
}

func NewHandler(gw NewsGateway, cache TrendingCache, cacheTTL time.Duration) *Handler {
	return &Handler{
		gateway:  gw,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// SearchNews handles POST /news/search?query=&category=&date_range=.
func (h *Handler) SearchNews(c echo.Context) error {
	if !c.QueryParams().Has("query") {
		return echo.NewHTTPError(http.StatusBadRequest, "query parameter is required")
	}

	q := models.SearchQuery{
		Text:      c.QueryParam("query"),
		Category:  models.Category(c.QueryParam("category")),
		DateRange: models.DateRange(c.QueryParam("date_range")),
	}

	articles, err := h.gateway.Search(c.Request().Context(), q)
	if err != nil {
		return translateError(err)
	}
	return c.JSON(http.StatusOK, articles)
}

// ListNews handles GET /news?skip=&limit=.
func (h *Handler) ListNews(c echo.Context) error {
	skip, err := intQueryParam(c, "skip", 0)
	if err != nil {
		return err
	}
	limit, err := intQueryParam(c, "limit", defaultListLimit)
	if err != nil {
		return err
	}

	articles, err := h.gateway.ListLatest(c.Request().Context(), limit, skip)
	if err != nil {
		return translateError(err)
	}
	return c.JSON(http.StatusOK, articles)
}

// AnalyzeNews handles POST /news/analysis/:id.
func (h *Handler) AnalyzeNews(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid news id")
	}

	article, err := h.gateway.Analyze(c.Request().Context(), id)
	if err != nil {
		return translateError(err)
	}
	return c.JSON(http.StatusOK, article)
}

// TrendingKeywords handles GET /news/trending?limit=. Served from the cache
// when warm; the gateway result is cached best-effort.
func (h *Handler) TrendingKeywords(c echo.Context) error {
	limit, err := intQueryParam(c, "limit", defaultTrendingLimit)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	if h.cache != nil {
		if cached, ok := h.cache.GetTrendingKeywords(ctx); ok {
			if limit < len(cached) {
				cached = cached[:limit]
			}
			return c.JSON(http.StatusOK, cached)
		}
	}

	keywords, err := h.gateway.TrendingKeywords(ctx, limit)
	if err != nil {
		return translateError(err)
	}

	if h.cache != nil {
		if err := h.cache.CacheTrendingKeywords(ctx, keywords, h.cacheTTL); err != nil {
			slog.Warn("[Handler] Failed to cache trending keywords",
				slog.String("error", err.Error()))
		}
	}

	return c.JSON(http.StatusOK, keywords)
}

func intQueryParam(c echo.Context, name string, fallback int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid %s parameter", name))
	}
	return value, nil
}

// translateError maps the gateway error taxonomy onto HTTP statuses.
func translateError(err error) error {
	var notFound *gateway.NotFoundError
	var rejection *gateway.UpstreamRejection
	var transport *gateway.TransportError

	switch {
	case errors.As(err, &notFound):
		return echo.NewHTTPError(http.StatusNotFound, "News not found")
	case errors.As(err, &rejection):
		return echo.NewHTTPError(http.StatusBadGateway,
			fmt.Sprintf("upstream rejected request (status %d)", rejection.Status))
	case errors.As(err, &transport):
		return echo.NewHTTPError(http.StatusGatewayTimeout, "upstream unreachable")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
