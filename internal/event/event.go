package event

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Type classifies messages emitted during a pipeline run.
type Type string

const (
	TypeStatus      Type = "status"
	TypeMetadata    Type = "metadata"
	TypeContent     Type = "content"
	TypeParaphrase  Type = "paraphrase"
	TypeTranslation Type = "translation"
	TypeTags        Type = "tags"
	TypeError       Type = "error"
)

// Metadata describes the source video. It is sent once, before any content.
type Metadata struct {
	Title        string
	Channel      string
	VideoURL     string
	ThumbnailURL string
	FrameURLs    []string
	Platform     string
}

// Event is one immutable unit of progress. Only the fields belonging to
// Type are meaningful; MarshalJSON writes exactly those.
type Event struct {
	Type     Type
	Message  string
	Text     string
	Tags     []string
	Metadata *Metadata
}

func Status(message string) Event { return Event{Type: TypeStatus, Message: message} }

func Error(message string) Event { return Event{Type: TypeError, Message: message} }

func Content(text string) Event { return Event{Type: TypeContent, Text: text} }

func Paraphrase(text string) Event { return Event{Type: TypeParaphrase, Text: text} }

func Translation(text string) Event { return Event{Type: TypeTranslation, Text: text} }

func Tags(tags []string) Event { return Event{Type: TypeTags, Tags: tags} }

func MetadataEvent(m Metadata) Event { return Event{Type: TypeMetadata, Metadata: &m} }

// Terminal reports whether no event can follow e
func (e Event) Terminal() bool {
	return e.Type == TypeError || (e.Type == TypeStatus && e.Message == DoneMessage)
}

// DoneMessage is the status that closes a successful run
const DoneMessage = "Done!"

type messagePayload struct {
	Type    Type   `json:"type"`
	Message string `json:"message"`
}

type textPayload struct {
	Type Type   `json:"type"`
	Text string `json:"text"`
}

type tagsPayload struct {
	Type Type     `json:"type"`
	Tags []string `json:"tags"`
}

type metadataPayload struct {
	Type         Type     `json:"type"`
	Title        string   `json:"title"`
	Channel      string   `json:"channel"`
	VideoURL     string   `json:"video_url"`
	ThumbnailURL *string  `json:"thumbnail_url"`
	FrameURLs    []string `json:"frame_urls"`
	Platform     string   `json:"platform"`
}

// MarshalJSON encodes the wire record for the event's type
func (e Event) MarshalJSON() ([]byte, error) {
	switch e.Type {
	case TypeStatus, TypeError:
		return marshal(messagePayload{Type: e.Type, Message: e.Message})
	case TypeContent, TypeParaphrase, TypeTranslation:
		return marshal(textPayload{Type: e.Type, Text: e.Text})
	case TypeTags:
		tags := e.Tags
		if tags == nil {
			tags = []string{}
		}
		return marshal(tagsPayload{Type: e.Type, Tags: tags})
	case TypeMetadata:
		m := Metadata{}
		if e.Metadata != nil {
			m = *e.Metadata
		}
		p := metadataPayload{
			Type:      e.Type,
			Title:     m.Title,
			Channel:   m.Channel,
			VideoURL:  m.VideoURL,
			FrameURLs: m.FrameURLs,
			Platform:  m.Platform,
		}
		if m.ThumbnailURL != "" {
			p.ThumbnailURL = &m.ThumbnailURL
		}
		if p.FrameURLs == nil {
			p.FrameURLs = []string{}
		}
		return marshal(p)
	default:
		return nil, fmt.Errorf("unknown event type %q", e.Type)
	}
}

// marshal is json.Marshal without HTML escaping
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// UnmarshalJSON decodes any wire record produced by MarshalJSON
func (e *Event) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type         Type     `json:"type"`
		Message      string   `json:"message"`
		Text         string   `json:"text"`
		Tags         []string `json:"tags"`
		Title        string   `json:"title"`
		Channel      string   `json:"channel"`
		VideoURL     string   `json:"video_url"`
		ThumbnailURL *string  `json:"thumbnail_url"`
		FrameURLs    []string `json:"frame_urls"`
		Platform     string   `json:"platform"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*e = Event{Type: raw.Type, Message: raw.Message, Text: raw.Text, Tags: raw.Tags}
	if raw.Type == TypeMetadata {
		m := Metadata{
			Title:     raw.Title,
			Channel:   raw.Channel,
			VideoURL:  raw.VideoURL,
			FrameURLs: raw.FrameURLs,
			Platform:  raw.Platform,
		}
		if raw.ThumbnailURL != nil {
			m.ThumbnailURL = *raw.ThumbnailURL
		}
		e.Metadata = &m
	}
	return nil
}
