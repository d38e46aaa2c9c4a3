// Package store persists normalized articles. Live mode writes every fetch
// through a store so analysis can later address articles by id; demo
// deployments run on the in-memory implementation.
package store

import (
	"context"
	"errors"

	"newsinsight/internal/models"
)

// ErrNotFound is returned when an article id is absent from the store.
var ErrNotFound = errors.New("article not found")

type ArticleStore interface {
	// SaveAll upserts articles deduplicated by URL and returns the stored
	// rows (new or pre-existing) in input order, ids assigned.
	SaveAll(ctx context.Context, articles []models.Article) ([]models.Article, error)

	// List returns up to limit articles starting at offset, freshest first.
	List(ctx context.Context, limit, offset int) ([]models.Article, error)

	GetByID(ctx context.Context, id int64) (models.Article, error)

	// UpdateAnalysis applies an analysis result to the article with the
	// given id and returns the updated row.
	UpdateAnalysis(ctx context.Context, id int64, analysis models.Analysis) (models.Article, error)
}
