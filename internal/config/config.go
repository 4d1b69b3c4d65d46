package config

import (
	"fmt"
	"time"
)

const (
	DefaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	DefaultApifyBaseURL      = "https://api.apify.com"
	DefaultMaxMediaBytes     = 25 * 1024 * 1024
)

type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Completion    CompletionConfig    `yaml:"completion"`
	Transcription TranscriptionConfig `yaml:"transcription"`
	Language      LanguageConfig      `yaml:"language"`
	Apify         ApifyConfig         `yaml:"apify"`
	Gemini        GeminiConfig        `yaml:"gemini"`
	Paths         PathsConfig         `yaml:"paths"`
	Logging       LoggingConfig       `yaml:"logging"`
	Performance   PerformanceConfig   `yaml:"performance"`
}

type ServerConfig struct {
	Addr         string `yaml:"addr"`
	AllowOrigins string `yaml:"allow_origins"`
}

type CompletionConfig struct {
	BaseURL string        `yaml:"base_url"`
	APIKey  string        `yaml:"-"`
	Model   string        `yaml:"model"`
	Referer string        `yaml:"referer"`
	Title   string        `yaml:"title"`
	Timeout time.Duration `yaml:"timeout"`
}

type TranscriptionConfig struct {
	// Provider is "openrouter", "gemini" or "none"
	Provider        string        `yaml:"provider"`
	Model           string        `yaml:"model"`
	MaxMediaBytes   int64         `yaml:"max_media_bytes"`
	DownloadTimeout time.Duration `yaml:"download_timeout"`
}

type LanguageConfig struct {
	// Detector is "llm" or "lingua"
	Detector string `yaml:"detector"`
}

type ApifyConfig struct {
	BaseURL        string        `yaml:"base_url"`
	Token          string        `yaml:"-"`
	YouTubeActor   string        `yaml:"youtube_actor"`
	InstagramActor string        `yaml:"instagram_actor"`
	Timeout        time.Duration `yaml:"timeout"`
}

type GeminiConfig struct {
	APIKeys []string `yaml:"-"`
	Model   string   `yaml:"model"`
	// BaseURL overrides the Gemini API endpoint; empty uses the SDK default
	BaseURL string `yaml:"base_url"`
}

type PathsConfig struct {
	Input    string `yaml:"input"`
	Output   string `yaml:"output"`
	Archived string `yaml:"archived"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

func (c *Config) Validate() error {
	if c.Completion.APIKey == "" {
		return fmt.Errorf("completion api key is required (OPENROUTER_API_KEY)")
	}
	if c.Apify.Token == "" {
		return fmt.Errorf("apify token is required (APIFY_API_TOKEN)")
	}

	if c.Server.Addr == "" {
		c.Server.Addr = ":8000"
	}
	if c.Server.AllowOrigins == "" {
		c.Server.AllowOrigins = "*"
	}

	if c.Completion.BaseURL == "" {
		c.Completion.BaseURL = DefaultOpenRouterBaseURL
	}
	if c.Completion.Model == "" {
		c.Completion.Model = "openai/gpt-4o-mini"
	}
	if c.Completion.Timeout == 0 {
		c.Completion.Timeout = 5 * time.Minute
	}

	if c.Transcription.Provider == "" {
		c.Transcription.Provider = "openrouter"
	}
	switch c.Transcription.Provider {
	case "openrouter":
		if c.Transcription.Model == "" {
			c.Transcription.Model = "google/gemini-2.0-flash-001"
		}
	case "gemini":
		if len(c.Gemini.APIKeys) == 0 {
			return fmt.Errorf("transcription.provider gemini requires GEMINI_API_KEYS")
		}
	case "none":
	default:
		return fmt.Errorf("transcription.provider must be openrouter, gemini or none, got %q", c.Transcription.Provider)
	}
	if c.Transcription.MaxMediaBytes == 0 {
		c.Transcription.MaxMediaBytes = DefaultMaxMediaBytes
	}
	if c.Transcription.DownloadTimeout == 0 {
		c.Transcription.DownloadTimeout = 30 * time.Second
	}

	if c.Language.Detector == "" {
		c.Language.Detector = "llm"
	}
	if c.Language.Detector != "llm" && c.Language.Detector != "lingua" {
		return fmt.Errorf("language.detector must be llm or lingua, got %q", c.Language.Detector)
	}

	if c.Apify.BaseURL == "" {
		c.Apify.BaseURL = DefaultApifyBaseURL
	}
	if c.Apify.YouTubeActor == "" {
		c.Apify.YouTubeActor = "pintostudio/youtube-transcript-scraper"
	}
	if c.Apify.InstagramActor == "" {
		c.Apify.InstagramActor = "apify/instagram-scraper"
	}
	if c.Apify.Timeout == 0 {
		c.Apify.Timeout = 5 * time.Minute
	}

	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.0-flash"
	}
	if c.Transcription.Provider == "gemini" && c.Transcription.Model == "" {
		c.Transcription.Model = c.Gemini.Model
	}

	if c.Paths.Input == "" {
		c.Paths.Input = "data/input"
	}
	if c.Paths.Output == "" {
		c.Paths.Output = "data/output"
	}
	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}

	return nil
}
