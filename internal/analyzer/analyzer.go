// Package analyzer runs AI analysis of a single article: a short summary,
// a sentiment label/score, and locally extracted keywords.
package analyzer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"newsinsight/internal/clients"
	"newsinsight/internal/models"
	"newsinsight/internal/sentiment"
	"newsinsight/internal/textutil"
)

const (
	openAIModel         = openai.GPT3Dot5Turbo1106
	openAIRetryAttempts = 3
	maxContentChars     = 1500 // keep the prompt inside a small context window
	maxFallbackSummary  = 500
)

const systemPrompt = `You are a helpful news assistant. ` +
	`Summarize the news in 3 bullet points in Korean and analyze the sentiment. ` +
	`You must return a valid JSON object with the following keys: ` +
	`'summary' (string, the 3 bullet points combined), ` +
	`'sentiment_label' (string, one of 'positive', 'negative', 'neutral'), ` +
	`'sentiment_score' (float, between -1.0 and 1.0).`

type Analyzer struct{}

func New() *Analyzer {
	return &Analyzer{}
}

// Analyze summarizes and scores an article via OpenAI. Keywords are always
// extracted locally before the call, so even a degraded reply carries them.
// An unparseable model reply degrades to a truncated raw summary with VADER
// sentiment instead of failing the operation.
func (a *Analyzer) Analyze(ctx context.Context, apiKey, title, content string) (models.Analysis, error) {
	keywords := textutil.ExtractKeywords(title, content)

	text := content
	if len(text) > maxContentChars {
		text = text[:maxContentChars]
	}

	messages := []openai.ChatCompletionMessage{
		{
			Role:    openai.ChatMessageRoleSystem,
			Content: systemPrompt,
		},
		{
			Role:    openai.ChatMessageRoleUser,
			Content: fmt.Sprintf("Title: %s\nContent: %s", title, text),
		},
	}

	client := clients.GetOpenAIClient(apiKey)

	var resp openai.ChatCompletionResponse
	var completionErr error
	for i := 0; i < openAIRetryAttempts; i++ {
		start := time.Now()
		resp, completionErr = client.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:    openAIModel,
			Messages: messages,
			ResponseFormat: &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			},
		})
		if completionErr == nil {
			break
		}
		slog.Warn("[Analyzer] Failed to get a response from OpenAI, retrying...",
			slog.String("error", completionErr.Error()),
			slog.Int("attempt", i+1),
			slog.Duration("elapsed", time.Since(start)))
	}
	if completionErr != nil {
		return models.Analysis{}, translateOpenAIError(completionErr)
	}
	if len(resp.Choices) == 0 {
		return models.Analysis{}, errors.New("[Analyzer] OpenAI returned no choices")
	}

	reply := resp.Choices[0].Message.Content
	cleaned := cleanResponse(reply)

	var parsed models.OpenAIAnalysisResponse
	if cleaned == "" || json.Unmarshal([]byte(cleaned), &parsed) != nil {
		slog.Warn("[Analyzer] Model reply was not valid JSON, falling back to VADER sentiment")
		return fallbackAnalysis(reply, title, content, keywords), nil
	}

	return models.Analysis{
		Summary:        parsed.Summary,
		SentimentLabel: normalizeLabel(parsed.SentimentLabel),
		SentimentScore: parsed.SentimentScore,
		Keywords:       keywords,
	}, nil
}

// fallbackAnalysis keeps the operation useful when the model reply cannot be
// parsed: the raw reply becomes the summary and VADER supplies sentiment.
func fallbackAnalysis(reply, title, content string, keywords []string) models.Analysis {
	summary := strings.TrimSpace(reply)
	if len(summary) > maxFallbackSummary {
		summary = summary[:maxFallbackSummary]
	}
	if summary == "" {
		summary = title
	}

	score, label := sentiment.Analyze(title + " " + content)

	return models.Analysis{
		Summary:        summary,
		SentimentLabel: label,
		SentimentScore: score,
		Keywords:       keywords,
	}
}

func normalizeLabel(label string) string {
	switch label {
	case "positive", "negative", "neutral":
		return label
	default:
		return "neutral"
	}
}

// translateOpenAIError preserves the upstream HTTP status when one exists so
// callers can distinguish bad credentials from transport failures.
func translateOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &clients.StatusError{
			StatusCode: apiErr.HTTPStatusCode,
			Message:    apiErr.Message,
		}
	}
	return fmt.Errorf("[Analyzer] OpenAI request failed: %w", err)
}

// cleanResponse strips markdown code fences some models wrap around JSON.
func cleanResponse(response string) string {
	cleaned := strings.TrimSpace(response)

	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimPrefix(cleaned, "\n")
		cleaned = strings.TrimSuffix(cleaned, "```")
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimPrefix(cleaned, "\n")
		cleaned = strings.TrimSuffix(cleaned, "```")
	}
	cleaned = strings.TrimSpace(cleaned)

	if !(strings.HasPrefix(cleaned, "{") && strings.HasSuffix(cleaned, "}")) {
		return ""
	}

	return cleaned
}
