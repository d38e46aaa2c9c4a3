package gateway

import (
	"time"

	"newsinsight/internal/models"
	"newsinsight/internal/textutil"
)

const missingTitlePlaceholder = "제목 없음"

// normalizeNewsAPIArticles maps the NewsAPI payload shape into the Article
// model. This is the single place that changes if the upstream schema does.
// Partial records are defaulted rather than dropped: one bad record must not
// block the rest of the list.
func normalizeNewsAPIArticles(upstream []models.NewsAPIArticle, now time.Time) []models.Article {
	articles := make([]models.Article, 0, len(upstream))

	for _, raw := range upstream {
		title := textutil.CleanText(raw.Title)
		if title == "" {
			title = missingTitlePlaceholder
		}

		content := textutil.CleanText(raw.Content)
		if content == "" {
			content = textutil.CleanText(raw.Description)
		}

		article := models.Article{
			Title:       title,
			URL:         raw.URL,
			Content:     content,
			Keywords:    textutil.ExtractKeywords(raw.Title, raw.Description),
			PublishedAt: parsePublishedAt(raw.PublishedAt, now),
		}

		if raw.UrlToImage != "" {
			imageURL := raw.UrlToImage
			article.ImageURL = &imageURL
		}
		if description := textutil.CleanText(raw.Description); description != "" {
			// The upstream description stands in as a summary until an
			// analysis pass replaces it.
			article.Summary = &description
		}

		articles = append(articles, article)
	}

	return articles
}

// parsePublishedAt degrades an invalid or missing timestamp to ingestion
// time instead of failing the record.
func parsePublishedAt(value string, now time.Time) time.Time {
	if value == "" {
		return now
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return now
	}
	return parsed
}
