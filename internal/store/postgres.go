package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"newsinsight/internal/models"
)

const articleColumns = `id, title, url, content, image_url, summary,
	sentiment_label, sentiment_score, keywords, published_at, created_at`

// PostgresStore persists articles in a news table keyed by URL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("[PostgresStore] failed to create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("[PostgresStore] failed to ping PostgreSQL: %w", err)
	}

	slog.Info("[PostgresStore] Connected to PostgreSQL successfully")
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}

// EnsureSchema creates the news table when it does not exist yet.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS news (
			id              BIGSERIAL PRIMARY KEY,
			title           TEXT NOT NULL,
			url             TEXT NOT NULL UNIQUE,
			content         TEXT NOT NULL DEFAULT '',
			image_url       TEXT,
			summary         TEXT,
			sentiment_label TEXT,
			sentiment_score DOUBLE PRECISION,
			keywords        TEXT[] NOT NULL DEFAULT '{}',
			published_at    TIMESTAMPTZ NOT NULL,
			created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("[PostgresStore] failed to ensure schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) SaveAll(ctx context.Context, articles []models.Article) ([]models.Article, error) {
	if len(articles) == 0 {
		return []models.Article{}, nil
	}

	// The no-op DO UPDATE makes the conflicting row visible to RETURNING,
	// so the caller always gets the stored copy back.
	query := `INSERT INTO news
		(title, url, content, image_url, summary, sentiment_label, sentiment_score, keywords, published_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		ON CONFLICT (url) DO UPDATE SET url = EXCLUDED.url
		RETURNING ` + articleColumns

	batch := &pgx.Batch{}
	for _, a := range articles {
		batch.Queue(query, a.Title, a.URL, a.Content, a.ImageURL, a.Summary,
			a.SentimentLabel, a.SentimentScore, a.Keywords, a.PublishedAt)
	}

	results := s.pool.SendBatch(ctx, batch)
	defer results.Close()

	saved := make([]models.Article, 0, len(articles))
	for range articles {
		article, err := scanArticle(results.QueryRow())
		if err != nil {
			return nil, fmt.Errorf("[PostgresStore] failed to save article: %w", err)
		}
		saved = append(saved, article)
	}

	return saved, nil
}

func (s *PostgresStore) List(ctx context.Context, limit, offset int) ([]models.Article, error) {
	if limit <= 0 {
		return []models.Article{}, nil
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := s.pool.Query(ctx, `SELECT `+articleColumns+`
		FROM news
		ORDER BY created_at DESC, id DESC
		OFFSET $1 LIMIT $2`, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("[PostgresStore] failed to list articles: %w", err)
	}
	defer rows.Close()

	articles := []models.Article{}
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("[PostgresStore] failed to scan article: %w", err)
		}
		articles = append(articles, article)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("[PostgresStore] failed to list articles: %w", err)
	}

	return articles, nil
}

func (s *PostgresStore) GetByID(ctx context.Context, id int64) (models.Article, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+articleColumns+` FROM news WHERE id = $1`, id)

	article, err := scanArticle(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Article{}, ErrNotFound
	}
	if err != nil {
		return models.Article{}, fmt.Errorf("[PostgresStore] failed to get article: %w", err)
	}
	return article, nil
}

func (s *PostgresStore) UpdateAnalysis(ctx context.Context, id int64, analysis models.Analysis) (models.Article, error) {
	row := s.pool.QueryRow(ctx, `UPDATE news
		SET summary = $2,
		    sentiment_label = $3,
		    sentiment_score = $4,
		    keywords = CASE WHEN cardinality($5::text[]) > 0 THEN $5::text[] ELSE keywords END
		WHERE id = $1
		RETURNING `+articleColumns,
		id, analysis.Summary, analysis.SentimentLabel, analysis.SentimentScore, analysis.Keywords)

	article, err := scanArticle(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Article{}, ErrNotFound
	}
	if err != nil {
		return models.Article{}, fmt.Errorf("[PostgresStore] failed to update analysis: %w", err)
	}
	return article, nil
}

func scanArticle(row pgx.Row) (models.Article, error) {
	var a models.Article
	err := row.Scan(&a.ID, &a.Title, &a.URL, &a.Content, &a.ImageURL, &a.Summary,
		&a.SentimentLabel, &a.SentimentScore, &a.Keywords, &a.PublishedAt, &a.CreatedAt)
	if err != nil {
		return models.Article{}, err
	}
	return a, nil
}
