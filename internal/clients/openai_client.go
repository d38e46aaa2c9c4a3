package clients

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const (
	openAIRequestTimeout = 60 * time.Second // Timeout for individual OpenAI API requests
)

var openAIClients sync.Map

type OpenAIClient struct {
	Client *openai.Client
}

// GetOpenAIClient returns a client for the given API key. Keys live in
// collaborator-owned settings and can change between calls, so clients are
// cached per key rather than held as a single process-wide instance.
func GetOpenAIClient(apiKey string) *OpenAIClient {
	if cached, ok := openAIClients.Load(apiKey); ok {
		return cached.(*OpenAIClient)
	}

	config := openai.DefaultConfig(apiKey)
	config.HTTPClient = &http.Client{
		Timeout: openAIRequestTimeout,
	}

	client := &OpenAIClient{
		Client: openai.NewClientWithConfig(config),
	}
	actual, loaded := openAIClients.LoadOrStore(apiKey, client)
	if !loaded {
		slog.Info("[OpenAIClient] OpenAI client initialized with custom HTTP timeout",
			slog.Duration("timeout", openAIRequestTimeout))
	}
	return actual.(*OpenAIClient)
}
