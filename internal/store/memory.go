package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"newsinsight/internal/models"
)

// MemoryStore keeps articles in process memory. It backs demo deployments
// that run without a database.
type MemoryStore struct {
	mu       sync.RWMutex
	articles []models.Article
	byURL    map[string]int
	byID     map[int64]int
	nextID   int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byURL:  make(map[string]int),
		byID:   make(map[int64]int),
		nextID: 1,
	}
}

func (s *MemoryStore) SaveAll(_ context.Context, articles []models.Article) ([]models.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	saved := make([]models.Article, 0, len(articles))
	for _, article := range articles {
		if idx, ok := s.byURL[article.URL]; ok && article.URL != "" {
			saved = append(saved, copyArticle(s.articles[idx]))
			continue
		}

		article.ID = s.nextID
		s.nextID++
		article.CreatedAt = now

		s.articles = append(s.articles, article)
		idx := len(s.articles) - 1
		if article.URL != "" {
			s.byURL[article.URL] = idx
		}
		s.byID[article.ID] = idx

		saved = append(saved, copyArticle(article))
	}

	return saved, nil
}

func (s *MemoryStore) List(_ context.Context, limit, offset int) ([]models.Article, error) {
	if limit <= 0 {
		return []models.Article{}, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	sorted := make([]models.Article, len(s.articles))
	copy(sorted, s.articles)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		}
		return sorted[i].ID > sorted[j].ID
	})

	if offset < 0 {
		offset = 0
	}
	if offset >= len(sorted) {
		return []models.Article{}, nil
	}

	end := offset + limit
	if end > len(sorted) {
		end = len(sorted)
	}

	page := make([]models.Article, 0, end-offset)
	for _, article := range sorted[offset:end] {
		page = append(page, copyArticle(article))
	}
	return page, nil
}

func (s *MemoryStore) GetByID(_ context.Context, id int64) (models.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.byID[id]
	if !ok {
		return models.Article{}, ErrNotFound
	}
	return copyArticle(s.articles[idx]), nil
}

func (s *MemoryStore) UpdateAnalysis(_ context.Context, id int64, analysis models.Analysis) (models.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.byID[id]
	if !ok {
		return models.Article{}, ErrNotFound
	}

	article := &s.articles[idx]
	summary := analysis.Summary
	label := analysis.SentimentLabel
	score := analysis.SentimentScore
	article.Summary = &summary
	article.SentimentLabel = &label
	article.SentimentScore = &score
	if len(analysis.Keywords) > 0 {
		article.Keywords = append([]string(nil), analysis.Keywords...)
	}

	return copyArticle(*article), nil
}

// copyArticle detaches the keywords slice so callers cannot mutate stored
// state through a returned article.
func copyArticle(a models.Article) models.Article {
	a.Keywords = append([]string(nil), a.Keywords...)
	return a
}
