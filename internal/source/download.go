package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

const (
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	defaultMediaType = "video/mp4"
)

var ErrMediaTooLarge = errors.New("media exceeds size limit")

// Media is a downloaded file held in memory
type Media struct {
	MIMEType string
	Data     []byte
}

// Download reads at most maxBytes of the resource at url. Larger bodies fail
// with ErrMediaTooLarge without being read to the end.
func (d *implDownloader) Download(ctx context.Context, url string, maxBytes int64) (Media, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Media{}, fmt.Errorf("create download request: %w", err)
	}
	req.Header.Set("User-Agent", d.userAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return Media{}, fmt.Errorf("download media: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Media{}, fmt.Errorf("download media: status %d", resp.StatusCode)
	}
	if maxBytes > 0 && resp.ContentLength > maxBytes {
		return Media{}, ErrMediaTooLarge
	}

	var r io.Reader = resp.Body
	if maxBytes > 0 {
		r = io.LimitReader(resp.Body, maxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return Media{}, fmt.Errorf("read media: %w", err)
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return Media{}, ErrMediaTooLarge
	}

	mime := resp.Header.Get("Content-Type")
	if mime == "" {
		mime = defaultMediaType
	}
	return Media{MIMEType: mime, Data: data}, nil
}
