package source

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"

	"github.com/nguyentantai21042004/transcript-flow/internal/transcript"
)

const unknownOwner = "Unknown"

// normalizeYouTube maps a youtube-transcript-scraper item onto a Bundle.
// Some runs wrap the payload in "data", either as the item itself or as the
// bare caption list.
func normalizeYouTube(item map[string]any, videoURL string) (Bundle, error) {
	if data, ok := item["data"]; ok {
		switch v := data.(type) {
		case map[string]any:
			item = v
		case []any:
			item = map[string]any{"captions": v}
		}
	}

	if e, ok := item["error"]; ok && e != nil {
		return Bundle{}, fmt.Errorf("%w: %s", ErrScraper, cast.ToString(e))
	}

	b := Bundle{
		Platform: PlatformYouTube,
		Title:    cast.ToString(item["title"]),
		Channel:  cast.ToString(item["channelName"]),
		Captions: parseCaptions(item["captions"]),
		Text:     cast.ToString(item["text"]),
	}

	if id, ok := YouTubeID(videoURL); ok {
		b.ThumbnailURL, b.FrameURLs = youTubeImages(id)
	}
	return b, nil
}

// parseCaptions accepts numbers or numeric strings for start and dur
func parseCaptions(raw any) []transcript.Segment {
	list := cast.ToSlice(raw)
	segments := make([]transcript.Segment, 0, len(list))
	for _, c := range list {
		m := cast.ToStringMap(c)
		if len(m) == 0 {
			continue
		}
		segments = append(segments, transcript.Segment{
			Text:     cast.ToString(m["text"]),
			Start:    cast.ToFloat64(m["start"]),
			Duration: cast.ToFloat64(m["dur"]),
		})
	}
	return segments
}

// normalizeInstagram maps an instagram-scraper post onto a Bundle. The media
// URL is resolved from videoUrl, then video_versions, then carousel children.
func normalizeInstagram(item map[string]any) Bundle {
	mediaURL := firstString(item, "videoUrl", "video_url")
	if isImageURL(mediaURL) {
		mediaURL = ""
	}

	if mediaURL == "" {
		versions := cast.ToSlice(item["video_versions"])
		if len(versions) == 0 {
			versions = cast.ToSlice(item["video_url_versions"])
		}
		if len(versions) > 0 {
			mediaURL = cast.ToString(cast.ToStringMap(versions[0])["url"])
		}
	}

	if mediaURL == "" {
		for _, c := range cast.ToSlice(item["childPosts"]) {
			child := cast.ToStringMap(c)
			u := firstString(child, "videoUrl", "video_url")
			if u != "" && strings.Contains(strings.ToLower(cast.ToString(child["type"])), "video") {
				mediaURL = u
				break
			}
		}
	}

	var caption string
	if c, ok := item["caption"]; ok {
		caption = cast.ToString(c)
	} else {
		caption = cast.ToString(item["text"])
	}

	owner := firstString(item, "ownerUsername", "username")
	if owner == "" {
		owner = unknownOwner
	}

	return Bundle{
		Platform:     PlatformInstagram,
		Title:        "Instagram Post by " + owner,
		Channel:      owner,
		ThumbnailURL: cast.ToString(item["displayUrl"]),
		MediaURL:     mediaURL,
		Text:         caption,
	}
}

func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s := cast.ToString(m[k]); s != "" {
			return s
		}
	}
	return ""
}

func isImageURL(u string) bool {
	path, _, _ := strings.Cut(strings.ToLower(u), "?")
	return strings.Contains(path, ".jpg")
}
