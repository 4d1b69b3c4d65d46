package source

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/transcript-flow/internal/config"
	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
	"github.com/nguyentantai21042004/transcript-flow/internal/transcript"
)

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		url     string
		want    Platform
		wantErr bool
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", PlatformYouTube, false},
		{"https://youtu.be/dQw4w9WgXcQ", PlatformYouTube, false},
		{"https://www.instagram.com/reel/abc/", PlatformInstagram, false},
		{"HTTPS://WWW.YOUTUBE.COM/shorts/dQw4w9WgXcQ", PlatformYouTube, false},
		{"https://vimeo.com/123", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got, err := DetectPlatform(tt.url)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedPlatform)
				assert.Equal(t, "Unsupported platform. Use YouTube or Instagram.", err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFallbackText(t *testing.T) {
	b := Bundle{Captions: []transcript.Segment{{Text: "Hello."}, {Text: "World"}}}
	assert.Equal(t, "Hello. World", b.FallbackText())

	b.Text = "explicit"
	assert.Equal(t, "explicit", b.FallbackText())
}

func TestYouTubeID(t *testing.T) {
	for _, u := range []string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=1",
		"https://youtu.be/dQw4w9WgXcQ",
		"https://www.youtube.com/embed/dQw4w9WgXcQ",
		"https://www.youtube.com/shorts/dQw4w9WgXcQ",
	} {
		id, ok := YouTubeID(u)
		assert.True(t, ok, u)
		assert.Equal(t, "dQw4w9WgXcQ", id, u)
	}

	_, ok := YouTubeID("https://www.youtube.com/")
	assert.False(t, ok)
}

func decodeItem(t *testing.T, s string) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(s), &m))
	return m
}

func TestNormalizeYouTube(t *testing.T) {
	const videoURL = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

	tests := []struct {
		name    string
		item    string
		want    Bundle
		wantErr error
	}{
		{
			name: "flat item",
			item: `{"title":"T","channelName":"C","captions":[{"text":"Hello.","start":0,"dur":1},{"text":"World","start":"5","dur":"1.5"}]}`,
			want: Bundle{
				Title:    "T",
				Channel:  "C",
				Captions: []transcript.Segment{{Text: "Hello.", Start: 0, Duration: 1}, {Text: "World", Start: 5, Duration: 1.5}},
			},
		},
		{
			name: "wrapped dict",
			item: `{"data":{"title":"Inner","text":"plain"}}`,
			want: Bundle{Title: "Inner", Text: "plain", Captions: []transcript.Segment{}},
		},
		{
			name: "wrapped caption list",
			item: `{"data":[{"text":"a","start":0,"dur":1}]}`,
			want: Bundle{Captions: []transcript.Segment{{Text: "a", Start: 0, Duration: 1}}},
		},
		{
			name:    "scraper error",
			item:    `{"error":"video unavailable"}`,
			wantErr: ErrScraper,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeYouTube(decodeItem(t, tt.item), videoURL)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, PlatformYouTube, got.Platform)
			assert.Equal(t, tt.want.Title, got.Title)
			assert.Equal(t, tt.want.Channel, got.Channel)
			assert.Equal(t, tt.want.Text, got.Text)
			assert.Equal(t, tt.want.Captions, got.Captions)
			assert.Equal(t, "https://img.youtube.com/vi/dQw4w9WgXcQ/maxresdefault.jpg", got.ThumbnailURL)
			assert.Len(t, got.FrameURLs, 4)
			assert.Equal(t, "https://img.youtube.com/vi/dQw4w9WgXcQ/3.jpg", got.FrameURLs[3])
		})
	}
}

func TestNormalizeInstagram(t *testing.T) {
	tests := []struct {
		name      string
		item      string
		wantMedia string
		wantText  string
		wantOwner string
	}{
		{
			name:      "video url",
			item:      `{"videoUrl":"https://cdn/v.mp4","caption":"Great view today","ownerUsername":"bob","displayUrl":"https://cdn/t.jpg"}`,
			wantMedia: "https://cdn/v.mp4",
			wantText:  "Great view today",
			wantOwner: "bob",
		},
		{
			name:      "jpg rejected, versions used",
			item:      `{"videoUrl":"https://cdn/a.JPG?x=1","video_versions":[{"url":"https://cdn/v2.mp4"}],"username":"ann"}`,
			wantMedia: "https://cdn/v2.mp4",
			wantOwner: "ann",
		},
		{
			name:      "carousel child video",
			item:      `{"childPosts":[{"type":"Image","videoUrl":"https://cdn/no.mp4"},{"type":"Video","video_url":"https://cdn/c.mp4"}],"text":"from text"}`,
			wantMedia: "https://cdn/c.mp4",
			wantText:  "from text",
			wantOwner: "Unknown",
		},
		{
			name:      "no media",
			item:      `{"caption":"Great view today","ownerUsername":"bob"}`,
			wantText:  "Great view today",
			wantOwner: "bob",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeInstagram(decodeItem(t, tt.item))
			assert.Equal(t, PlatformInstagram, got.Platform)
			assert.Equal(t, tt.wantMedia, got.MediaURL)
			assert.Equal(t, tt.wantText, got.Text)
			assert.Equal(t, tt.wantOwner, got.Channel)
			assert.Equal(t, "Instagram Post by "+tt.wantOwner, got.Title)
		})
	}
}

func newTestApify(t *testing.T, handler http.HandlerFunc) Fetcher {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.ApifyConfig{
		BaseURL:        srv.URL + "/",
		Token:          "tok",
		YouTubeActor:   "pintostudio/youtube-transcript-scraper",
		InstagramActor: "apify/instagram-scraper",
	}
	return NewApify(cfg, srv.Client(), logger.Nop())
}

func TestApifyFetchYouTube(t *testing.T) {
	var gotInput map[string]any
	f := newTestApify(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2/acts/pintostudio~youtube-transcript-scraper/run-sync-get-dataset-items", r.URL.Path)
		assert.Equal(t, "tok", r.URL.Query().Get("token"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotInput))
		_, _ = w.Write([]byte(`[{"title":"T","channelName":"C","captions":[{"text":"Hello.","start":0,"dur":1}]}]`))
	})

	ref := Reference{URL: "https://youtu.be/dQw4w9WgXcQ", Platform: PlatformYouTube}
	b, err := f.Fetch(context.Background(), ref)
	require.NoError(t, err)
	assert.Equal(t, "T", b.Title)
	assert.Equal(t, "Hello.", b.FallbackText())
	assert.Equal(t, ref.URL, gotInput["videoUrl"])
}

func TestApifyFetchInstagram(t *testing.T) {
	f := newTestApify(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.Contains(r.URL.Path, "apify~instagram-scraper"))
		var in map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, []any{"https://www.instagram.com/p/x/"}, in["directUrls"])
		_, _ = w.Write([]byte(`[{"caption":"hi","ownerUsername":"bob"}]`))
	})

	b, err := f.Fetch(context.Background(), Reference{URL: "https://www.instagram.com/p/x/", Platform: PlatformInstagram})
	require.NoError(t, err)
	assert.Equal(t, "hi", b.Text)
	assert.Empty(t, b.MediaURL)
}

func TestApifyFetchErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"empty dataset", http.StatusOK, `[]`, ErrNoData},
		{"http failure", http.StatusUnauthorized, `{"error":"bad token"}`, nil},
		{"bad json", http.StatusOK, `{`, nil},
		{"scraper error", http.StatusOK, `[{"error":"private video"}]`, ErrScraper},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestApify(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			_, err := f.Fetch(context.Background(), Reference{URL: "https://youtu.be/dQw4w9WgXcQ", Platform: PlatformYouTube})
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("User-Agent"), "Mozilla")
		switch r.URL.Path {
		case "/ok":
			w.Header().Set("Content-Type", "video/webm")
			_, _ = w.Write([]byte("12345"))
		case "/notype":
			w.Header()["Content-Type"] = nil
			_, _ = w.Write([]byte("12345"))
		case "/missing":
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	d := NewDownloader(srv.Client())
	ctx := context.Background()

	m, err := d.Download(ctx, srv.URL+"/ok", 5)
	require.NoError(t, err)
	assert.Equal(t, "video/webm", m.MIMEType)
	assert.Equal(t, []byte("12345"), m.Data)

	_, err = d.Download(ctx, srv.URL+"/ok", 4)
	assert.True(t, errors.Is(err, ErrMediaTooLarge))

	m, err = d.Download(ctx, srv.URL+"/notype", 0)
	require.NoError(t, err)
	assert.Equal(t, "video/mp4", m.MIMEType)

	_, err = d.Download(ctx, srv.URL+"/missing", 5)
	assert.ErrorContains(t, err, "status 404")
}
