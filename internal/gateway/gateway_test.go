package gateway

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsinsight/internal/clients"
	"newsinsight/internal/models"
	"newsinsight/internal/store"
)

type fakeSource struct {
	everythingArticles []models.NewsAPIArticle
	headlineArticles   []models.NewsAPIArticle
	err                error

	everythingCalls int
	headlineCalls   int
}

func (f *fakeSource) Everything(_ context.Context, _ string, _ clients.EverythingParams) ([]models.NewsAPIArticle, error) {
	f.everythingCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.everythingArticles, nil
}

func (f *fakeSource) TopHeadlines(_ context.Context, _ string, _, _ int) ([]models.NewsAPIArticle, error) {
	f.headlineCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.headlineArticles, nil
}

type fakeAnalyzer struct {
	analysis models.Analysis
	err      error
	calls    int
}

func (f *fakeAnalyzer) Analyze(_ context.Context, _, _, _ string) (models.Analysis, error) {
	f.calls++
	if f.err != nil {
		return models.Analysis{}, f.err
	}
	return f.analysis, nil
}

func staticCreds(creds models.Credentials) func() models.Credentials {
	return func() models.Credentials { return creds }
}

func newDummyGateway(t *testing.T, opts ...Option) *Gateway {
	t.Helper()
	base := []Option{WithDelays(Delays{})}
	return New(store.NewMemoryStore(), &fakeSource{}, &fakeAnalyzer{}, staticCreds(models.Credentials{}), append(base, opts...)...)
}

func sampleArticle(id int64, title, content string, keywords []string) models.Article {
	return models.Article{
		ID:          id,
		Title:       title,
		URL:         "https://example.com/" + strings.ToLower(title),
		Content:     content,
		Keywords:    keywords,
		PublishedAt: time.Now().Add(-time.Hour),
		CreatedAt:   time.Now(),
	}
}

func newsAPIArticle(title, description, url, publishedAt string) models.NewsAPIArticle {
	a := models.NewsAPIArticle{}
	a.Title = title
	a.Description = description
	a.URL = url
	a.PublishedAt = publishedAt
	return a
}

func TestSearchDummyMode(t *testing.T) {
	ctx := context.Background()

	t.Run("matches title summary and content case-insensitively", func(t *testing.T) {
		g := newDummyGateway(t)

		results, err := g.Search(ctx, models.SearchQuery{Text: "ai"})
		require.NoError(t, err)
		require.NotEmpty(t, results)

		for _, article := range results {
			haystack := strings.ToLower(article.Title + article.Content)
			if article.Summary != nil {
				haystack += strings.ToLower(*article.Summary)
			}
			assert.Contains(t, haystack, "ai")
		}
	})

	t.Run("no match yields empty result", func(t *testing.T) {
		g := newDummyGateway(t)

		results, err := g.Search(ctx, models.SearchQuery{Text: "zzzzzz"})
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("category filter keeps only tagged articles", func(t *testing.T) {
		economyTesla := sampleArticle(1, "Tesla", "Tesla stock rallies as market confidence grows", []string{"stocks"})
		sportsTesla := sampleArticle(2, "Tesla-race", "Tesla sponsors the local soccer match this weekend", []string{"sports"})
		g := newDummyGateway(t, WithSampleSet([]models.Article{economyTesla, sportsTesla}))

		results, err := g.Search(ctx, models.SearchQuery{Text: "tesla", Category: models.CategoryEconomy})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, int64(1), results[0].ID)
	})

	t.Run("date range filter drops articles outside the window", func(t *testing.T) {
		recent := sampleArticle(1, "Recent", "breaking update", nil)
		recent.PublishedAt = time.Now().Add(-2 * time.Hour)
		stale := sampleArticle(2, "Stale", "breaking update", nil)
		stale.PublishedAt = time.Now().AddDate(0, 0, -30)
		g := newDummyGateway(t, WithSampleSet([]models.Article{recent, stale}))

		results, err := g.Search(ctx, models.SearchQuery{Text: "breaking", DateRange: models.DateRangeWeek})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, int64(1), results[0].ID)
	})
}

func TestSearchBlankQuery(t *testing.T) {
	ctx := context.Background()

	t.Run("dummy mode returns the sample set without filtering", func(t *testing.T) {
		g := newDummyGateway(t)

		results, err := g.Search(ctx, models.SearchQuery{Text: "   "})
		require.NoError(t, err)
		assert.Len(t, results, 8)
	})

	t.Run("live mode returns stored results without calling upstream", func(t *testing.T) {
		articles := store.NewMemoryStore()
		_, err := articles.SaveAll(ctx, []models.Article{sampleArticle(0, "Stored", "stored content", nil)})
		require.NoError(t, err)

		source := &fakeSource{}
		g := New(articles, source, &fakeAnalyzer{},
			staticCreds(models.Credentials{NewsAPIKey: "key"}), WithDelays(Delays{}))

		results, err := g.Search(ctx, models.SearchQuery{Text: ""})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Stored", results[0].Title)
		assert.Zero(t, source.everythingCalls)
	})
}

func TestSearchLiveMode(t *testing.T) {
	ctx := context.Background()
	creds := staticCreds(models.Credentials{NewsAPIKey: "key"})

	t.Run("normalizes and persists upstream articles", func(t *testing.T) {
		source := &fakeSource{everythingArticles: []models.NewsAPIArticle{
			newsAPIArticle("Tesla earnings beat estimates", "Quarterly profits surge", "https://example.com/tesla", "2026-08-20T10:00:00Z"),
			newsAPIArticle("", "No headline supplied", "https://example.com/untitled", "not-a-date"),
		}}
		articles := store.NewMemoryStore()
		g := New(articles, source, &fakeAnalyzer{}, creds, WithDelays(Delays{}))

		results, err := g.Search(ctx, models.SearchQuery{Text: "tesla"})
		require.NoError(t, err)
		require.Len(t, results, 2)

		assert.Equal(t, int64(1), results[0].ID)
		assert.Equal(t, "Tesla earnings beat estimates", results[0].Title)
		assert.NotEmpty(t, results[0].Keywords)
		require.NotNil(t, results[0].Summary)
		assert.Equal(t, "Quarterly profits surge", *results[0].Summary)

		// Partial records are defaulted, not dropped.
		assert.Equal(t, "제목 없음", results[1].Title)
		assert.False(t, results[1].PublishedAt.IsZero())

		stored, err := articles.List(ctx, 10, 0)
		require.NoError(t, err)
		assert.Len(t, stored, 2)
	})

	t.Run("repeated search deduplicates by url", func(t *testing.T) {
		source := &fakeSource{everythingArticles: []models.NewsAPIArticle{
			newsAPIArticle("Same story", "desc", "https://example.com/same", "2026-08-20T10:00:00Z"),
		}}
		articles := store.NewMemoryStore()
		g := New(articles, source, &fakeAnalyzer{}, creds, WithDelays(Delays{}))

		first, err := g.Search(ctx, models.SearchQuery{Text: "story"})
		require.NoError(t, err)
		second, err := g.Search(ctx, models.SearchQuery{Text: "story"})
		require.NoError(t, err)

		assert.Equal(t, first[0].ID, second[0].ID)

		stored, err := articles.List(ctx, 10, 0)
		require.NoError(t, err)
		assert.Len(t, stored, 1)
	})

	t.Run("status failures surface as UpstreamRejection", func(t *testing.T) {
		source := &fakeSource{err: &clients.StatusError{StatusCode: 401, Message: "invalid API key"}}
		g := New(store.NewMemoryStore(), source, &fakeAnalyzer{}, creds, WithDelays(Delays{}))

		_, err := g.Search(ctx, models.SearchQuery{Text: "tesla"})
		var rejection *UpstreamRejection
		require.ErrorAs(t, err, &rejection)
		assert.Equal(t, 401, rejection.Status)
	})

	t.Run("network failures surface as TransportError, never dummy data", func(t *testing.T) {
		source := &fakeSource{err: errors.New("connection refused")}
		g := New(store.NewMemoryStore(), source, &fakeAnalyzer{}, creds, WithDelays(Delays{}))

		results, err := g.Search(ctx, models.SearchQuery{Text: "tesla"})
		var transport *TransportError
		require.ErrorAs(t, err, &transport)
		assert.Nil(t, results)
	})
}

func TestListLatest(t *testing.T) {
	ctx := context.Background()

	t.Run("non-positive limit yields empty slice without erroring", func(t *testing.T) {
		g := newDummyGateway(t)

		results, err := g.ListLatest(ctx, 0, 0)
		require.NoError(t, err)
		assert.Empty(t, results)

		results, err = g.ListLatest(ctx, -5, 0)
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("dummy mode caps the sample set and ignores offset", func(t *testing.T) {
		g := newDummyGateway(t)

		results, err := g.ListLatest(ctx, 3, 100)
		require.NoError(t, err)
		assert.Len(t, results, 3)
	})

	t.Run("live mode fetches headlines and persists them", func(t *testing.T) {
		source := &fakeSource{headlineArticles: []models.NewsAPIArticle{
			newsAPIArticle("Headline one", "desc one", "https://example.com/h1", "2026-08-28T10:00:00Z"),
			newsAPIArticle("Headline two", "desc two", "https://example.com/h2", "2026-08-28T09:00:00Z"),
		}}
		articles := store.NewMemoryStore()
		g := New(articles, source, &fakeAnalyzer{},
			staticCreds(models.Credentials{NewsAPIKey: "key"}), WithDelays(Delays{}))

		results, err := g.ListLatest(ctx, 20, 0)
		require.NoError(t, err)
		assert.Len(t, results, 2)
		assert.Equal(t, 1, source.headlineCalls)

		stored, err := articles.List(ctx, 10, 0)
		require.NoError(t, err)
		assert.Len(t, stored, 2)
	})
}

func TestAnalyzeDummyMode(t *testing.T) {
	ctx := context.Background()

	t.Run("fills summary and sentiment for an unanalyzed article", func(t *testing.T) {
		g := newDummyGateway(t, WithDelays(Delays{Analyze: 10 * time.Millisecond}))

		start := time.Now()
		article, err := g.Analyze(ctx, 3)
		require.NoError(t, err)

		assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
		assert.Equal(t, int64(3), article.ID)
		require.NotNil(t, article.Summary)
		assert.NotEmpty(t, *article.Summary)
		require.NotNil(t, article.SentimentLabel)
		assert.Contains(t, []string{"positive", "neutral", "negative"}, *article.SentimentLabel)
		require.NotNil(t, article.SentimentScore)
	})

	t.Run("article without any sentiment gets neutral", func(t *testing.T) {
		blank := sampleArticle(7, "Unscored", "no sentiment yet", nil)
		g := newDummyGateway(t, WithSampleSet([]models.Article{blank}))

		article, err := g.Analyze(ctx, 7)
		require.NoError(t, err)
		require.NotNil(t, article.SentimentLabel)
		assert.Equal(t, "neutral", *article.SentimentLabel)
		require.NotNil(t, article.SentimentScore)
		assert.Zero(t, *article.SentimentScore)
	})

	t.Run("unknown id rejects with NotFoundError", func(t *testing.T) {
		g := newDummyGateway(t)

		_, err := g.Analyze(ctx, 999)
		var notFound *NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, int64(999), notFound.ID)
	})

	t.Run("analyzing twice is safe", func(t *testing.T) {
		g := newDummyGateway(t)

		first, err := g.Analyze(ctx, 3)
		require.NoError(t, err)
		second, err := g.Analyze(ctx, 3)
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		require.NotNil(t, second.Summary)
	})

	t.Run("cancelled context aborts the simulated delay", func(t *testing.T) {
		g := newDummyGateway(t, WithDelays(Delays{Analyze: time.Minute}))

		cancelCtx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := g.Analyze(cancelCtx, 3)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestAnalyzeLiveMode(t *testing.T) {
	ctx := context.Background()
	creds := staticCreds(models.Credentials{OpenAIAPIKey: "sk-test"})

	seed := func(t *testing.T) (*store.MemoryStore, int64) {
		t.Helper()
		articles := store.NewMemoryStore()
		saved, err := articles.SaveAll(ctx, []models.Article{sampleArticle(0, "Pending", "pending analysis", nil)})
		require.NoError(t, err)
		return articles, saved[0].ID
	}

	t.Run("updates the stored article with the analysis", func(t *testing.T) {
		articles, id := seed(t)
		ai := &fakeAnalyzer{analysis: models.Analysis{
			Summary:        "1. point\n2. point\n3. point",
			SentimentLabel: "positive",
			SentimentScore: 0.7,
			Keywords:       []string{"pending", "analysis"},
		}}
		g := New(articles, &fakeSource{}, ai, creds, WithDelays(Delays{}))

		article, err := g.Analyze(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, article.Summary)
		assert.Equal(t, "1. point\n2. point\n3. point", *article.Summary)
		assert.Equal(t, 1, ai.calls)

		stored, err := articles.GetByID(ctx, id)
		require.NoError(t, err)
		assert.True(t, stored.Analyzed())
	})

	t.Run("unknown id rejects before calling the upstream", func(t *testing.T) {
		articles, _ := seed(t)
		ai := &fakeAnalyzer{}
		g := New(articles, &fakeSource{}, ai, creds, WithDelays(Delays{}))

		_, err := g.Analyze(ctx, 999)
		var notFound *NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Zero(t, ai.calls)
	})

	t.Run("upstream failure propagates without touching the store", func(t *testing.T) {
		articles, id := seed(t)
		ai := &fakeAnalyzer{err: &clients.StatusError{StatusCode: 500, Message: "overloaded"}}
		g := New(articles, &fakeSource{}, ai, creds, WithDelays(Delays{}))

		_, err := g.Analyze(ctx, id)
		var rejection *UpstreamRejection
		require.ErrorAs(t, err, &rejection)
		assert.Equal(t, 500, rejection.Status)

		stored, err := articles.GetByID(ctx, id)
		require.NoError(t, err)
		assert.False(t, stored.Analyzed())
	})
}

func TestTrendingKeywords(t *testing.T) {
	ctx := context.Background()

	t.Run("dummy mode deduplicates preserving first-seen order", func(t *testing.T) {
		sample := []models.Article{
			sampleArticle(1, "A", "", []string{"경제", "금리"}),
			sampleArticle(2, "B", "", []string{"금리", "반도체"}),
		}
		g := newDummyGateway(t, WithSampleSet(sample))

		keywords, err := g.TrendingKeywords(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, []string{"경제", "금리", "반도체"}, keywords)
	})

	t.Run("never exceeds limit", func(t *testing.T) {
		g := newDummyGateway(t)

		keywords, err := g.TrendingKeywords(ctx, 2)
		require.NoError(t, err)
		assert.Len(t, keywords, 2)
	})

	t.Run("non-positive limit yields empty slice", func(t *testing.T) {
		g := newDummyGateway(t)

		keywords, err := g.TrendingKeywords(ctx, 0)
		require.NoError(t, err)
		assert.NotNil(t, keywords)
		assert.Empty(t, keywords)
	})

	t.Run("no keywords anywhere yields empty slice, never nil", func(t *testing.T) {
		g := newDummyGateway(t, WithSampleSet([]models.Article{}))

		keywords, err := g.TrendingKeywords(ctx, 5)
		require.NoError(t, err)
		assert.NotNil(t, keywords)
		assert.Empty(t, keywords)
	})

	t.Run("live mode ranks by frequency with stable ties", func(t *testing.T) {
		source := &fakeSource{headlineArticles: []models.NewsAPIArticle{
			newsAPIArticle("bitcoin rally continues", "", "https://example.com/1", "2026-08-28T10:00:00Z"),
			newsAPIArticle("bitcoin falls sharply", "", "https://example.com/2", "2026-08-28T09:00:00Z"),
			newsAPIArticle("ethereum gains ground", "", "https://example.com/3", "2026-08-28T08:00:00Z"),
		}}
		g := New(store.NewMemoryStore(), source, &fakeAnalyzer{},
			staticCreds(models.Credentials{NewsAPIKey: "key"}), WithDelays(Delays{}))

		keywords, err := g.TrendingKeywords(ctx, 3)
		require.NoError(t, err)
		require.Len(t, keywords, 3)
		assert.Equal(t, "bitcoin", keywords[0])
		// Ties keep first-seen order.
		assert.Equal(t, []string{"rally", "continues"}, keywords[1:])
	})
}

func TestResolveMode(t *testing.T) {
	tests := []struct {
		name     string
		creds    models.Credentials
		op       Operation
		expected Mode
	}{
		{"search without news key", models.Credentials{}, OpSearch, ModeDummy},
		{"search with news key", models.Credentials{NewsAPIKey: "k"}, OpSearch, ModeLive},
		{"analyze without openai key", models.Credentials{NewsAPIKey: "k"}, OpAnalyze, ModeDummy},
		{"analyze with openai key only", models.Credentials{OpenAIAPIKey: "k"}, OpAnalyze, ModeLive},
		{"trending without news key", models.Credentials{OpenAIAPIKey: "k"}, OpTrending, ModeDummy},
		{"list with news key", models.Credentials{NewsAPIKey: "k"}, OpListLatest, ModeLive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ResolveMode(tt.creds, tt.op))
		})
	}
}
