package source

import (
	"errors"
	"strings"
)

// Platform identifies the video host a URL belongs to
type Platform string

const (
	PlatformYouTube   Platform = "youtube"
	PlatformInstagram Platform = "instagram"
)

var ErrUnsupportedPlatform = errors.New("Unsupported platform. Use YouTube or Instagram.")

// Reference is a video URL paired with the platform it was detected on
type Reference struct {
	URL      string
	Platform Platform
}

// DetectPlatform classifies a URL by substring matching on the host names.
func DetectPlatform(url string) (Platform, error) {
	u := strings.ToLower(url)
	switch {
	case strings.Contains(u, "youtube.com"), strings.Contains(u, "youtu.be"):
		return PlatformYouTube, nil
	case strings.Contains(u, "instagram.com"):
		return PlatformInstagram, nil
	default:
		return "", ErrUnsupportedPlatform
	}
}

// NewReference detects the platform of url
func NewReference(url string) (Reference, error) {
	p, err := DetectPlatform(url)
	if err != nil {
		return Reference{}, err
	}
	return Reference{URL: url, Platform: p}, nil
}
