package source

import "context"

// Fetcher retrieves the raw transcript bundle for a video reference.
type Fetcher interface {
	Fetch(ctx context.Context, ref Reference) (Bundle, error)
}

// Downloader fetches remote media into memory, bounded by maxBytes.
type Downloader interface {
	Download(ctx context.Context, url string, maxBytes int64) (Media, error)
}
