package models

// OpenAIAnalysisResponse is the JSON object the analysis prompt instructs the
// model to return.
type OpenAIAnalysisResponse = struct {
	Summary        string  `json:"summary"`
	SentimentLabel string  `json:"sentiment_label"`
	SentimentScore float64 `json:"sentiment_score"`
}
