// Package gateway is the single entry point for news data: it resolves each
// operation to a live upstream call or the dummy dataset, normalizes
// heterogeneous payloads into the Article model, and applies lightweight
// local enrichment (keywords, date filtering, trend aggregation).
package gateway

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"time"

	"newsinsight/internal/clients"
	"newsinsight/internal/dummy"
	"newsinsight/internal/models"
	"newsinsight/internal/store"
	"newsinsight/internal/textutil"
)

const (
	defaultPageSize   = 20
	trendingBatchSize = 20
)

// Delays are the artificial latencies applied to dummy-mode operations so
// loading UIs stay exercisable without credentials. Required behavior, not a
// nicety; tests shrink them.
type Delays struct {
	Search     time.Duration
	ListLatest time.Duration
	Analyze    time.Duration
	Trending   time.Duration
}

func DefaultDelays() Delays {
	return Delays{
		Search:     600 * time.Millisecond,
		ListLatest: 800 * time.Millisecond,
		Analyze:    1500 * time.Millisecond,
		Trending:   300 * time.Millisecond,
	}
}

// NewsSource is the external news-search upstream.
type NewsSource interface {
	Everything(ctx context.Context, apiKey string, p clients.EverythingParams) ([]models.NewsAPIArticle, error)
	TopHeadlines(ctx context.Context, apiKey string, pageSize, page int) ([]models.NewsAPIArticle, error)
}

// ArticleAnalyzer is the AI analysis upstream.
type ArticleAnalyzer interface {
	Analyze(ctx context.Context, apiKey, title, content string) (models.Analysis, error)
}

// Gateway holds no mutable state of its own: every call reads a fresh
// credentials snapshot, builds an independent result, and leaves caching and
// response ordering to the caller.
type Gateway struct {
	store    store.ArticleStore
	source   NewsSource
	analyzer ArticleAnalyzer
	creds    func() models.Credentials
	sample   []models.Article
	delays   Delays
	now      func() time.Time
}

type Option func(*Gateway)

// WithSampleSet replaces the dummy dataset.
func WithSampleSet(sample []models.Article) Option {
	return func(g *Gateway) { g.sample = sample }
}

func WithDelays(delays Delays) Option {
	return func(g *Gateway) { g.delays = delays }
}

func WithClock(now func() time.Time) Option {
	return func(g *Gateway) { g.now = now }
}

func New(articles store.ArticleStore, source NewsSource, analyzer ArticleAnalyzer, creds func() models.Credentials, opts ...Option) *Gateway {
	g := &Gateway{
		store:    articles,
		source:   source,
		analyzer: analyzer,
		creds:    creds,
		sample:   dummy.Articles(),
		delays:   DefaultDelays(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Search resolves a search query against the live upstream or the dummy set.
// Blank text is a no-op: no upstream call, the current result set comes back
// unchanged.
func (g *Gateway) Search(ctx context.Context, q models.SearchQuery) ([]models.Article, error) {
	if strings.TrimSpace(q.Text) == "" {
		return g.currentResults(ctx)
	}

	creds := g.creds()
	if ResolveMode(creds, OpSearch) == ModeDummy {
		if err := sleepCtx(ctx, g.delays.Search); err != nil {
			return nil, err
		}
		return g.searchSample(q), nil
	}

	from, to := q.DateRange.Window(g.now())
	upstream, err := g.source.Everything(ctx, creds.NewsAPIKey, clients.EverythingParams{
		Query:    q.Text,
		From:     from,
		To:       to,
		PageSize: defaultPageSize,
	})
	if err != nil {
		// A live-mode failure is a real failure; substituting dummy data
		// here would hide it from the caller.
		return nil, mapSourceError("search", err)
	}

	slog.Info("[NewsDataGateway] Search fetched articles",
		slog.String("query", q.Text),
		slog.Int("count", len(upstream)))

	saved, err := g.store.SaveAll(ctx, normalizeNewsAPIArticles(upstream, g.now()))
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// ListLatest returns up to limit articles starting at offset, freshest
// first. limit <= 0 yields an empty result, not an error.
func (g *Gateway) ListLatest(ctx context.Context, limit, offset int) ([]models.Article, error) {
	if limit <= 0 {
		return []models.Article{}, nil
	}

	creds := g.creds()
	if ResolveMode(creds, OpListLatest) == ModeDummy {
		if err := sleepCtx(ctx, g.delays.ListLatest); err != nil {
			return nil, err
		}
		// The fixed sample is small: offset is ignored, only the cap applies.
		sample := g.sampleCopy()
		if limit < len(sample) {
			sample = sample[:limit]
		}
		return sample, nil
	}

	page := offset/limit + 1
	upstream, err := g.source.TopHeadlines(ctx, creds.NewsAPIKey, limit, page)
	if err != nil {
		return nil, mapSourceError("listLatest", err)
	}

	saved, err := g.store.SaveAll(ctx, normalizeNewsAPIArticles(upstream, g.now()))
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// Analyze runs AI analysis for the article with the given id and returns the
// fully updated article. Without an AI credential the result is simulated
// after the configured delay. Analyzing the same id twice is safe; the
// second call simply re-derives the summary.
func (g *Gateway) Analyze(ctx context.Context, id int64) (models.Article, error) {
	creds := g.creds()
	if ResolveMode(creds, OpAnalyze) == ModeDummy {
		if err := sleepCtx(ctx, g.delays.Analyze); err != nil {
			return models.Article{}, err
		}
		return g.simulateAnalysis(id)
	}

	article, err := g.store.GetByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return models.Article{}, &NotFoundError{ID: id}
	}
	if err != nil {
		return models.Article{}, err
	}

	// Analyze the title when the body is empty; partial data beats nothing.
	text := article.Content
	if text == "" {
		text = article.Title
	}

	analysis, err := g.analyzer.Analyze(ctx, creds.OpenAIAPIKey, article.Title, text)
	if err != nil {
		return models.Article{}, mapSourceError("analyze", err)
	}

	updated, err := g.store.UpdateAnalysis(ctx, id, analysis)
	if errors.Is(err, store.ErrNotFound) {
		return models.Article{}, &NotFoundError{ID: id}
	}
	if err != nil {
		return models.Article{}, err
	}

	slog.Info("[NewsDataGateway] Article analyzed",
		slog.Int64("id", id),
		slog.String("sentiment", analysis.SentimentLabel))
	return updated, nil
}

// TrendingKeywords returns up to limit keywords. Dummy mode deduplicates the
// sample set preserving first-seen order; live mode counts frequency over
// the latest batch with stable ordering on ties.
func (g *Gateway) TrendingKeywords(ctx context.Context, limit int) ([]string, error) {
	if limit <= 0 {
		return []string{}, nil
	}

	creds := g.creds()
	if ResolveMode(creds, OpTrending) == ModeDummy {
		if err := sleepCtx(ctx, g.delays.Trending); err != nil {
			return nil, err
		}

		seen := make(map[string]struct{})
		keywords := []string{}
		for _, article := range g.sample {
			for _, kw := range article.Keywords {
				if _, dup := seen[kw]; dup {
					continue
				}
				seen[kw] = struct{}{}
				keywords = append(keywords, kw)
				if len(keywords) == limit {
					return keywords, nil
				}
			}
		}
		return keywords, nil
	}

	articles, err := g.ListLatest(ctx, trendingBatchSize, 0)
	if err != nil {
		return nil, err
	}

	return rankKeywords(articles, limit), nil
}

// rankKeywords counts keyword frequency across a batch, extracting keywords
// locally for articles whose upstream omitted them. Ties keep first-seen
// order.
func rankKeywords(articles []models.Article, limit int) []string {
	counts := make(map[string]int)
	order := []string{}

	for _, article := range articles {
		keywords := article.Keywords
		if len(keywords) == 0 {
			description := ""
			if article.Summary != nil {
				description = *article.Summary
			}
			keywords = textutil.ExtractKeywords(article.Title, description)
		}
		for _, kw := range keywords {
			if counts[kw] == 0 {
				order = append(order, kw)
			}
			counts[kw]++
		}
	}

	// order is already first-seen; a stable sort keeps that on equal counts.
	ranked := append([]string(nil), order...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return counts[ranked[i]] > counts[ranked[j]]
	})

	if limit < len(ranked) {
		ranked = ranked[:limit]
	}
	return ranked
}

// currentResults is the blank-query no-op: what a caller is already looking
// at, fetched without touching any upstream.
func (g *Gateway) currentResults(ctx context.Context) ([]models.Article, error) {
	if ResolveMode(g.creds(), OpSearch) == ModeDummy {
		return g.sampleCopy(), nil
	}
	return g.store.List(ctx, defaultPageSize, 0)
}

func (g *Gateway) searchSample(q models.SearchQuery) []models.Article {
	needle := strings.ToLower(q.Text)

	results := []models.Article{}
	for _, article := range g.sampleCopy() {
		if !matchesText(article, needle) {
			continue
		}
		if q.Category != "" && !matchesCategory(article, q.Category) {
			continue
		}
		if q.DateRange != "" {
			from, to := q.DateRange.Window(g.now())
			if article.PublishedAt.Before(from) || article.PublishedAt.After(to) {
				continue
			}
		}
		results = append(results, article)
	}
	return results
}

func matchesText(article models.Article, needle string) bool {
	if strings.Contains(strings.ToLower(article.Title), needle) {
		return true
	}
	if article.Summary != nil && strings.Contains(strings.ToLower(*article.Summary), needle) {
		return true
	}
	return strings.Contains(strings.ToLower(article.Content), needle)
}

// matchesCategory applies the fixed keyword-set-per-category membership
// test over title, content, and keywords.
func matchesCategory(article models.Article, category models.Category) bool {
	tokens := dummy.CategoryKeywords[category]
	if len(tokens) == 0 {
		return true
	}

	title := strings.ToLower(article.Title)
	content := strings.ToLower(article.Content)
	for _, token := range tokens {
		token = strings.ToLower(token)
		if strings.Contains(title, token) || strings.Contains(content, token) {
			return true
		}
		for _, kw := range article.Keywords {
			if strings.Contains(strings.ToLower(kw), token) {
				return true
			}
		}
	}
	return false
}

func (g *Gateway) simulateAnalysis(id int64) (models.Article, error) {
	for _, article := range g.sample {
		if article.ID != id {
			continue
		}

		result := article
		result.Keywords = append([]string(nil), article.Keywords...)

		summary := dummy.MockSummary
		result.Summary = &summary
		if result.SentimentLabel == nil {
			label := "neutral"
			result.SentimentLabel = &label
		}
		if result.SentimentScore == nil {
			score := 0.0
			result.SentimentScore = &score
		}
		return result, nil
	}
	return models.Article{}, &NotFoundError{ID: id}
}

func (g *Gateway) sampleCopy() []models.Article {
	sample := make([]models.Article, len(g.sample))
	copy(sample, g.sample)
	for i := range sample {
		sample[i].Keywords = append([]string(nil), g.sample[i].Keywords...)
	}
	return sample
}

// mapSourceError folds upstream failures into the gateway taxonomy: status
// responses become UpstreamRejection, everything else TransportError.
func mapSourceError(op string, err error) error {
	var statusErr *clients.StatusError
	if errors.As(err, &statusErr) {
		return &UpstreamRejection{Op: op, Status: statusErr.StatusCode, Message: statusErr.Message}
	}
	return &TransportError{Op: op, Err: err}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
