package httpapi

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/transcript-flow/internal/config"
	"github.com/nguyentantai21042004/transcript-flow/internal/event"
	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
	"github.com/nguyentantai21042004/transcript-flow/internal/pipeline"
	"github.com/nguyentantai21042004/transcript-flow/internal/source"
	"github.com/nguyentantai21042004/transcript-flow/internal/textgen"
)

type fakePipeline struct {
	events     []event.Event
	transcript pipeline.Transcript
	err        error
	got        pipeline.Request
}

func (f *fakePipeline) Stream(ctx context.Context, req pipeline.Request) <-chan event.Event {
	f.got = req
	out := make(chan event.Event)
	go func() {
		defer close(out)
		for _, ev := range f.events {
			select {
			case out <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

func (f *fakePipeline) Transcribe(ctx context.Context, req pipeline.Request) (pipeline.Transcript, error) {
	f.got = req
	return f.transcript, f.err
}

type fakeText struct {
	translated string
	chunks     []string
	streamErr  error
	topics     textgen.Topics
	err        error
}

func (f *fakeText) Translate(ctx context.Context, text, target string) (string, error) {
	return f.translated, f.err
}

func (f *fakeText) TranslateStream(ctx context.Context, text, target string, onChunk func(string) error) (string, error) {
	for _, c := range f.chunks {
		if err := onChunk(c); err != nil {
			return "", err
		}
	}
	return strings.Join(f.chunks, ""), f.streamErr
}

func (f *fakeText) ExtractTopics(ctx context.Context, text, target string) (textgen.Topics, error) {
	return f.topics, f.err
}

func (f *fakeText) GenerateTitle(ctx context.Context, text string) string {
	return textgen.DefaultTitle
}

func newTestApp(p pipeline.Pipeline, text textgen.Service) *fiber.App {
	log := logger.Nop()
	return NewApp(config.ServerConfig{AllowOrigins: "*"}, NewHandler(p, text, log), log)
}

func post(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var m map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&m))
	return m
}

func TestHealth(t *testing.T) {
	app := newTestApp(&fakePipeline{}, &fakeText{})

	for _, path := range []string{"/", "/health"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.NotEmpty(t, resp.Header.Get(headerRequestID))
		assert.Equal(t, "ok", decode(t, resp)["status"])
	}
}

func TestTranscribeStream(t *testing.T) {
	fp := &fakePipeline{events: []event.Event{
		event.Status("Initializing..."),
		event.MetadataEvent(event.Metadata{Title: "T", Platform: "youtube"}),
		event.Content("Hello"),
		event.Tags([]string{"a"}),
		event.Status(event.DoneMessage),
	}}
	app := newTestApp(fp, &fakeText{})

	resp := post(t, app, "/api/transcribe-stream", `{"url":"https://youtu.be/dQw4w9WgXcQ","target_language":"it"}`)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))
	assert.Equal(t, "it", fp.got.TargetLanguage)

	got := readEvents(t, resp)
	require.Len(t, got, 5)
	assert.Equal(t, event.TypeMetadata, got[1].Type)
	assert.Equal(t, "Hello", got[2].Text)
	assert.Equal(t, event.Status(event.DoneMessage), got[4])
}

func TestTranscribeStreamValidation(t *testing.T) {
	app := newTestApp(&fakePipeline{}, &fakeText{})

	tests := []struct {
		name string
		body string
	}{
		{"missing url", `{}`},
		{"blank url", `{"url":""}`},
		{"bad json", `{"url":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, app, "/api/transcribe-stream", tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, "error", decode(t, resp)["status"])
		})
	}
}

func readEvents(t *testing.T, resp *http.Response) []event.Event {
	t.Helper()
	var got []event.Event
	sc := bufio.NewScanner(resp.Body)
	for sc.Scan() {
		var ev event.Event
		require.NoError(t, json.Unmarshal(sc.Bytes(), &ev))
		got = append(got, ev)
	}
	require.NoError(t, sc.Err())
	return got
}

func TestTranscribeStreamSchemelessURL(t *testing.T) {
	for _, url := range []string{"youtu.be/dQw4w9WgXcQ", "www.youtube.com/watch?v=dQw4w9WgXcQ"} {
		t.Run(url, func(t *testing.T) {
			fp := &fakePipeline{events: []event.Event{event.Status("Initializing..."), event.Status(event.DoneMessage)}}
			app := newTestApp(fp, &fakeText{})

			resp := post(t, app, "/api/transcribe-stream", `{"url":"`+url+`"}`)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Len(t, readEvents(t, resp), 2)
			assert.Equal(t, url, fp.got.URL)
		})
	}
}

func TestTranscribeStreamUnsupportedURL(t *testing.T) {
	p := pipeline.New(config.TranscriptionConfig{}, pipeline.Deps{}, logger.Nop())
	app := newTestApp(p, &fakeText{})

	resp := post(t, app, "/api/transcribe-stream", `{"url":"not a url"}`)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	got := readEvents(t, resp)
	require.Len(t, got, 2)
	assert.Equal(t, event.Status("Initializing..."), got[0])
	assert.Equal(t, event.Error("Unsupported platform. Use YouTube or Instagram."), got[1])
}

func TestTranscribe(t *testing.T) {
	fp := &fakePipeline{transcript: pipeline.Transcript{
		Title:     "T",
		Channel:   "C",
		Text:      "Hello.\n\nWorld",
		VideoURL:  "https://youtu.be/dQw4w9WgXcQ",
		FrameURLs: []string{},
		Language:  "en",
		Platform:  "youtube",
	}}
	app := newTestApp(fp, &fakeText{})

	resp := post(t, app, "/api/transcribe", `{"url":"https://youtu.be/dQw4w9WgXcQ"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, "Hello.\n\nWorld", body["transcript"])
	assert.Equal(t, "en", body["language"])
	assert.Equal(t, "C", body["channel"])
}

func TestTranscribeErrors(t *testing.T) {
	app := newTestApp(&fakePipeline{err: &pipeline.StageError{Stage: pipeline.StageDetectPlatform, Err: source.ErrUnsupportedPlatform}}, &fakeText{})
	resp := post(t, app, "/api/transcribe", `{"url":"https://vimeo.com/1"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Unsupported platform. Use YouTube or Instagram.", decode(t, resp)["message"])

	app = newTestApp(&fakePipeline{err: errors.New("actor down")}, &fakeText{})
	resp = post(t, app, "/api/transcribe", `{"url":"https://youtu.be/dQw4w9WgXcQ"}`)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestTranslate(t *testing.T) {
	app := newTestApp(&fakePipeline{}, &fakeText{translated: "Ciao"})

	resp := post(t, app, "/api/translate", `{"text":"Hello","target_language":"it"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Ciao", decode(t, resp)["translated_text"])

	resp = post(t, app, "/api/translate", `{"text":"Hello"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errs := decode(t, resp)["errors"].([]any)
	assert.Equal(t, "Field 'TargetLanguage' failed on the 'required' tag", errs[0])
}

func TestTranslateStream(t *testing.T) {
	tests := []struct {
		name string
		text *fakeText
		want string
	}{
		{"chunks", &fakeText{chunks: []string{"Ci", "ao"}}, "Ciao"},
		{"error appended", &fakeText{chunks: []string{"Ci"}, streamErr: errors.New("cut off")}, "CiError: cut off"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(&fakePipeline{}, tt.text)
			resp := post(t, app, "/api/translate-stream", `{"text":"Hello","target_language":"it"}`)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/plain"))
			b, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(b))
		})
	}
}

func TestTopics(t *testing.T) {
	app := newTestApp(&fakePipeline{}, &fakeText{topics: textgen.Topics{Topics: []string{"Go", "Fiber"}}})
	resp := post(t, app, "/api/topics", `{"transcript":"..."}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []any{"Go", "Fiber"}, decode(t, resp)["topics"])

	app = newTestApp(&fakePipeline{}, &fakeText{topics: textgen.Topics{Error: "Failed to decode JSON", RawContent: "oops"}})
	resp = post(t, app, "/api/topics", `{"transcript":"..."}`)
	body := decode(t, resp)
	assert.Equal(t, "Failed to decode JSON", body["error"])
	assert.Equal(t, "oops", body["raw_content"])

	app = newTestApp(&fakePipeline{}, &fakeText{err: errors.New("down")})
	resp = post(t, app, "/api/topics", `{"transcript":"..."}`)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestNotFound(t *testing.T) {
	app := newTestApp(&fakePipeline{}, &fakeText{})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "error", decode(t, resp)["status"])
}
