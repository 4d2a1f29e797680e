package model

import (
	"net/url"
	"strings"
)

// Thumbnail returns the best thumbnail URL for the video: server-supplied
// first, then pattern-matched from the source URL. Empty means no image is
// resolvable; render PlatformGlyph instead.
func (v Video) Thumbnail() string {
	if strings.TrimSpace(v.ThumbnailURL) != "" {
		return strings.TrimSpace(v.ThumbnailURL)
	}
	return ResolveThumbnail(v.URL)
}

func ResolveThumbnail(rawURL string) string {
	if id := youtubeVideoID(rawURL); id != "" {
		return "https://img.youtube.com/vi/" + id + "/mqdefault.jpg"
	}
	return ""
}

func youtubeVideoID(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" {
		return ""
	}
	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	switch host {
	case "youtu.be":
		return firstPathSegment(u.Path)
	case "youtube.com", "m.youtube.com", "music.youtube.com":
		if id := strings.TrimSpace(u.Query().Get("v")); id != "" {
			return id
		}
		for _, prefix := range []string{"/shorts/", "/embed/", "/live/"} {
			if strings.HasPrefix(u.Path, prefix) {
				return firstPathSegment(strings.TrimPrefix(u.Path, prefix))
			}
		}
	}
	return ""
}

func firstPathSegment(path string) string {
	path = strings.Trim(path, "/")
	if idx := strings.IndexByte(path, '/'); idx >= 0 {
		path = path[:idx]
	}
	return path
}

// PlatformGlyph guesses a display glyph for hosts without a resolvable
// thumbnail.
func PlatformGlyph(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" {
		return "▶ video"
	}
	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	switch {
	case host == "youtu.be" || strings.HasSuffix(host, "youtube.com"):
		return "▶ youtube"
	case strings.HasSuffix(host, "vimeo.com"):
		return "▶ vimeo"
	case strings.HasSuffix(host, "twitch.tv"):
		return "▶ twitch"
	case strings.HasSuffix(host, "rumble.com"):
		return "▶ rumble"
	default:
		return "▶ video"
	}
}
