package event

import (
	"bufio"
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		ev   Event
		want string
	}{
		{"status", Status("Initializing..."), `{"type":"status","message":"Initializing..."}`},
		{"error", Error("boom"), `{"type":"error","message":"boom"}`},
		{"content", Content("Hello & bye"), `{"type":"content","text":"Hello & bye"}`},
		{"paraphrase", Paraphrase("p"), `{"type":"paraphrase","text":"p"}`},
		{"translation", Translation("t"), `{"type":"translation","text":"t"}`},
		{"tags", Tags([]string{"a", "b"}), `{"type":"tags","tags":["a","b"]}`},
		{"nil tags", Tags(nil), `{"type":"tags","tags":[]}`},
		{
			"metadata without thumbnail",
			MetadataEvent(Metadata{Title: "T", Channel: "C", VideoURL: "v", Platform: "instagram"}),
			`{"type":"metadata","title":"T","channel":"C","video_url":"v","thumbnail_url":null,"frame_urls":[],"platform":"instagram"}`,
		},
		{
			"metadata with thumbnail",
			MetadataEvent(Metadata{Title: "T", Channel: "C", VideoURL: "v", ThumbnailURL: "th", FrameURLs: []string{"f0"}, Platform: "youtube"}),
			`{"type":"metadata","title":"T","channel":"C","video_url":"v","thumbnail_url":"th","frame_urls":["f0"],"platform":"youtube"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(tt.ev)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(b))
		})
	}
}

func TestMarshalUnknownType(t *testing.T) {
	_, err := json.Marshal(Event{Type: "bogus"})
	assert.Error(t, err)
}

func TestUnmarshalMetadata(t *testing.T) {
	var ev Event
	err := json.Unmarshal([]byte(`{"type":"metadata","title":"T","thumbnail_url":null,"frame_urls":["a"],"platform":"youtube"}`), &ev)
	require.NoError(t, err)
	require.NotNil(t, ev.Metadata)
	assert.Equal(t, "T", ev.Metadata.Title)
	assert.Empty(t, ev.Metadata.ThumbnailURL)
	assert.Equal(t, []string{"a"}, ev.Metadata.FrameURLs)
}

func TestTerminal(t *testing.T) {
	assert.True(t, Error("x").Terminal())
	assert.True(t, Status(DoneMessage).Terminal())
	assert.False(t, Status("Initializing...").Terminal())
	assert.False(t, Content("x").Terminal())
}

func TestEncoder(t *testing.T) {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	enc := NewEncoder(w)

	require.NoError(t, enc.Encode(Status("a")))
	// flushed per record, not only when the buffer fills
	assert.Equal(t, "{\"type\":\"status\",\"message\":\"a\"}\n", buf.String())

	require.NoError(t, enc.Encode(Content("<b>")))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `{"type":"content","text":"<b>"}`, lines[1])
}

func TestEncoderError(t *testing.T) {
	var buf bytes.Buffer
	err := NewEncoder(&buf).Encode(Event{Type: "bogus"})
	assert.ErrorContains(t, err, "encode bogus event")
}

func TestCollect(t *testing.T) {
	ch := make(chan Event, 10)
	ch <- Status("Initializing...")
	ch <- MetadataEvent(Metadata{Title: "T"})
	ch <- Content("Hel")
	ch <- Content("lo")
	ch <- Paraphrase("Hi")
	ch <- Translation("Ci")
	ch <- Translation("ao")
	ch <- Tags([]string{"x"})
	ch <- Status(DoneMessage)
	close(ch)

	r := Collect(ch)
	assert.Equal(t, "T", r.Metadata.Title)
	assert.Equal(t, "Hello", r.Transcript)
	assert.Equal(t, "Hi", r.Paraphrase)
	assert.Equal(t, "Ciao", r.Translation)
	assert.Equal(t, []string{"x"}, r.Tags)
	assert.True(t, r.Done)
	assert.Empty(t, r.Err)
	assert.Equal(t, []string{"Initializing...", DoneMessage}, r.Statuses)
}

func TestCollectError(t *testing.T) {
	ch := make(chan Event, 2)
	ch <- Status("Initializing...")
	ch <- Error("Unsupported platform. Use YouTube or Instagram.")
	close(ch)

	r := Collect(ch)
	assert.False(t, r.Done)
	assert.Equal(t, "Unsupported platform. Use YouTube or Instagram.", r.Err)
}
