package source

import (
	"net/http"
	"strings"

	"github.com/nguyentantai21042004/transcript-flow/internal/config"
	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
)

type implApify struct {
	baseURL        string
	token          string
	youtubeActor   string
	instagramActor string
	client         *http.Client
	logger         logger.Logger
}

// NewApify creates a Fetcher backed by the Apify synchronous actor API.
// cfg is expected to be validated.
func NewApify(cfg config.ApifyConfig, client *http.Client, log logger.Logger) Fetcher {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &implApify{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		token:          cfg.Token,
		youtubeActor:   cfg.YouTubeActor,
		instagramActor: cfg.InstagramActor,
		client:         client,
		logger:         log,
	}
}

type implDownloader struct {
	client    *http.Client
	userAgent string
}

// NewDownloader creates a Downloader using client for every request
func NewDownloader(client *http.Client) Downloader {
	if client == nil {
		client = http.DefaultClient
	}
	return &implDownloader{
		client:    client,
		userAgent: defaultUserAgent,
	}
}
