package source

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

var (
	ErrNoData  = errors.New("no data returned by scraper")
	ErrScraper = errors.New("scraper error")
)

// Fetch runs the actor matching the reference platform and normalizes its
// first dataset item.
func (a *implApify) Fetch(ctx context.Context, ref Reference) (Bundle, error) {
	switch ref.Platform {
	case PlatformYouTube:
		input := map[string]any{
			"videoUrl":          ref.URL,
			"maxDepth":          1,
			"downloadSubtitles": false,
			"saveSubsToKVS":     false,
		}
		item, err := a.runActor(ctx, a.youtubeActor, input)
		if err != nil {
			return Bundle{}, fmt.Errorf("fetch youtube %s: %w", ref.URL, err)
		}
		return normalizeYouTube(item, ref.URL)

	case PlatformInstagram:
		input := map[string]any{
			"directUrls":   []string{ref.URL},
			"resultsLimit": 1,
			"proxy":        map[string]any{"useApifyProxy": true},
		}
		item, err := a.runActor(ctx, a.instagramActor, input)
		if err != nil {
			return Bundle{}, fmt.Errorf("fetch instagram %s: %w", ref.URL, err)
		}
		return normalizeInstagram(item), nil

	default:
		return Bundle{}, ErrUnsupportedPlatform
	}
}

// runActor starts the actor, waits for it to finish and returns the first
// item of its default dataset.
func (a *implApify) runActor(ctx context.Context, actor string, input map[string]any) (map[string]any, error) {
	body, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("marshal actor input: %w", err)
	}

	// Actor ids are "user/name" but the path form is "user~name"
	endpoint := fmt.Sprintf("%s/v2/acts/%s/run-sync-get-dataset-items?token=%s",
		a.baseURL, strings.ReplaceAll(actor, "/", "~"), url.QueryEscape(a.token))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create actor request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	a.logger.Info(ctx, "Running Apify actor %s", actor)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("run actor %s: %w", actor, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("run actor %s: status %d: %s", actor, resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var items []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode dataset items: %w", err)
	}
	if len(items) == 0 {
		return nil, ErrNoData
	}

	a.logger.Debug(ctx, "Actor %s returned %d items", actor, len(items))
	return items[0], nil
}
