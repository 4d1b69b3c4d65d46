package source

import "context"

// MockFetcher is a Fetcher driven by FetchFunc
type MockFetcher struct {
	FetchFunc func(ctx context.Context, ref Reference) (Bundle, error)
	Calls     []Reference
}

func (m *MockFetcher) Fetch(ctx context.Context, ref Reference) (Bundle, error) {
	m.Calls = append(m.Calls, ref)
	if m.FetchFunc == nil {
		return Bundle{Platform: ref.Platform}, nil
	}
	return m.FetchFunc(ctx, ref)
}

// MockDownloader is a Downloader driven by DownloadFunc
type MockDownloader struct {
	DownloadFunc func(ctx context.Context, url string, maxBytes int64) (Media, error)
	Calls        []string
}

func (m *MockDownloader) Download(ctx context.Context, url string, maxBytes int64) (Media, error) {
	m.Calls = append(m.Calls, url)
	if m.DownloadFunc == nil {
		return Media{}, ErrMediaTooLarge
	}
	return m.DownloadFunc(ctx, url, maxBytes)
}
