package completion

import (
	"net/http"
	"sync"

	"github.com/sashabaranov/go-openai"

	"github.com/nguyentantai21042004/transcript-flow/internal/config"
	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
)

type implOpenRouter struct {
	client *openai.Client
	model  string
	logger logger.Logger
}

// NewOpenRouter creates a Service talking to an OpenAI compatible endpoint.
// OpenRouter attribution headers are attached to every call.
func NewOpenRouter(cfg config.CompletionConfig, log logger.Logger) Service {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = cfg.BaseURL
	clientCfg.HTTPClient = &http.Client{
		Timeout: cfg.Timeout,
		Transport: &headerTransport{
			base: http.DefaultTransport,
			headers: map[string]string{
				"HTTP-Referer": cfg.Referer,
				"X-Title":      cfg.Title,
			},
		},
	}

	return &implOpenRouter{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
		logger: log,
	}
}

type implGemini struct {
	mu         sync.Mutex
	apiKeys    []string
	currentKey int
	model      string
	baseURL    string
	httpClient *http.Client
	logger     logger.Logger
}

// NewGemini creates a Service backed by the Gemini API that rotates through
// the supplied API keys when one is rate limited.
func NewGemini(cfg config.GeminiConfig, httpClient *http.Client, log logger.Logger) Service {
	return &implGemini{
		apiKeys:    cfg.APIKeys,
		model:      cfg.Model,
		baseURL:    cfg.BaseURL,
		httpClient: httpClient,
		logger:     log,
	}
}
