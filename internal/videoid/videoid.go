package videoid

import (
	"errors"
	"net/url"
	"strings"
)

// ErrInvalidURL indicates the input is not a recognizable YouTube URL or ID.
var ErrInvalidURL = errors.New("invalid youtube url")

var watchHosts = map[string]struct{}{
	"www.youtube.com": {},
	"youtube.com":     {},
	"m.youtube.com":   {},
}

// FromURL extracts the video ID from a YouTube URL. A bare 11-character ID
// passes through unchanged so users can skip the URL entirely.
//
// Supported shapes:
//
//	https://www.youtube.com/watch?v=VIDEO_ID
//	https://www.youtube.com/embed/VIDEO_ID
//	https://www.youtube.com/v/VIDEO_ID
//	https://youtu.be/VIDEO_ID
func FromURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrInvalidURL
	}
	if looksLikeID(raw) {
		return raw, nil
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "", ErrInvalidURL
	}

	if _, ok := watchHosts[parsed.Hostname()]; ok {
		if parsed.Path == "/watch" {
			if id := parsed.Query().Get("v"); id != "" {
				return id, nil
			}
			return "", ErrInvalidURL
		}
		for _, prefix := range []string{"/embed/", "/v/", "/shorts/"} {
			if strings.HasPrefix(parsed.Path, prefix) {
				if id := strings.SplitN(strings.TrimPrefix(parsed.Path, prefix), "/", 2)[0]; id != "" {
					return id, nil
				}
			}
		}
		return "", ErrInvalidURL
	}

	if parsed.Hostname() == "youtu.be" {
		id := strings.Trim(parsed.Path, "/")
		if id != "" {
			return id, nil
		}
	}

	return "", ErrInvalidURL
}

// PlaylistFromURL extracts a playlist ID from a YouTube URL. It returns an
// empty string when the URL does not reference a playlist; a watch URL or
// youtu.be share link that carries a list parameter counts as a playlist
// reference.
func PlaylistFromURL(raw string) string {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	host := parsed.Hostname()
	if _, ok := watchHosts[host]; ok {
		if strings.Contains(parsed.Path, "playlist") || strings.Contains(parsed.Path, "/watch") {
			return parsed.Query().Get("list")
		}
		return ""
	}
	if host == "youtu.be" {
		return parsed.Query().Get("list")
	}
	return ""
}

// looksLikeID reports whether the value is plausibly a raw video ID rather
// than a URL. YouTube IDs are 11 characters of [A-Za-z0-9_-].
func looksLikeID(value string) bool {
	if len(value) != 11 {
		return false
	}
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_':
		default:
			return false
		}
	}
	return true
}

// WatchURL reconstructs the canonical watch URL for a video ID.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + url.QueryEscape(videoID)
}
