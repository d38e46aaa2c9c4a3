package models

import "time"

// Article is the normalized news entity every source maps into. Nullable
// columns from the backend schema (image, summary, sentiment) stay pointers
// so "not analyzed yet" is distinguishable from an empty value.
type Article struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	URL            string    `json:"url"`
	Content        string    `json:"content"`
	ImageURL       *string   `json:"image_url"`
	Summary        *string   `json:"summary"`
	SentimentLabel *string   `json:"sentiment_label"`
	SentimentScore *float64  `json:"sentiment_score"`
	Keywords       []string  `json:"keywords"`
	PublishedAt    time.Time `json:"published_at"`
	CreatedAt      time.Time `json:"created_at"`
}

// Analyzed reports whether an AI analysis has already run for this article.
// A non-nil summary is the sole signal; it is never cleared once set.
func (a Article) Analyzed() bool {
	return a.Summary != nil
}

// Analysis is the result of an AI (or simulated) analysis pass.
type Analysis struct {
	Summary        string   `json:"summary"`
	SentimentLabel string   `json:"sentiment_label"`
	SentimentScore float64  `json:"sentiment_score"`
	Keywords       []string `json:"keywords"`
}

type Category string

const (
	CategoryPolitics   Category = "politics"
	CategoryEconomy    Category = "economy"
	CategorySociety    Category = "society"
	CategoryTechnology Category = "technology"
	CategorySports     Category = "sports"
)

type DateRange string

const (
	DateRangeToday DateRange = "today"
	DateRangeWeek  DateRange = "week"
	DateRangeMonth DateRange = "month"
	DateRangeYear  DateRange = "year"
)

// SearchQuery is constructed per search action and discarded after the fetch
// resolves. Category and DateRange are optional refinements.
type SearchQuery struct {
	Text      string    `json:"text"`
	Category  Category  `json:"category,omitempty"`
	DateRange DateRange `json:"date_range,omitempty"`
}

// Window resolves the date range to a [from, now] interval. Today means the
// start of the current day; the rest are rolling windows ending now.
func (r DateRange) Window(now time.Time) (time.Time, time.Time) {
	switch r {
	case DateRangeToday:
		year, month, day := now.Date()
		return time.Date(year, month, day, 0, 0, 0, 0, now.Location()), now
	case DateRangeWeek:
		return now.AddDate(0, 0, -7), now
	case DateRangeMonth:
		return now.AddDate(0, -1, 0), now
	case DateRangeYear:
		return now.AddDate(-1, 0, 0), now
	default:
		// Default window mirrors the search upstream: last 7 days.
		return now.AddDate(0, 0, -7), now
	}
}

// Credentials is the per-call snapshot of stored API keys. Mode resolution
// reads a fresh snapshot before every operation, never a cached one.
type Credentials struct {
	NewsAPIKey   string
	OpenAIAPIKey string
}
