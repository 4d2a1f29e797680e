package model

import "testing"

func TestResolveThumbnailYouTubeShapes(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://www.youtube.com/watch?v=abc123", "https://img.youtube.com/vi/abc123/mqdefault.jpg"},
		{"https://youtu.be/abc123", "https://img.youtube.com/vi/abc123/mqdefault.jpg"},
		{"https://youtube.com/shorts/xyz789", "https://img.youtube.com/vi/xyz789/mqdefault.jpg"},
		{"https://www.youtube.com/embed/xyz789?start=5", "https://img.youtube.com/vi/xyz789/mqdefault.jpg"},
		{"https://m.youtube.com/watch?v=abc123&t=12s", "https://img.youtube.com/vi/abc123/mqdefault.jpg"},
		{"https://vimeo.com/12345", ""},
		{"not a url", ""},
		{"", ""},
	}

	for _, tc := range cases {
		if got := ResolveThumbnail(tc.url); got != tc.want {
			t.Fatalf("ResolveThumbnail(%q) = %q, want %q", tc.url, got, tc.want)
		}
	}
}

func TestThumbnailPrefersServerSuppliedURL(t *testing.T) {
	v := Video{
		URL:          "https://www.youtube.com/watch?v=abc123",
		ThumbnailURL: "https://cdn.example.com/thumb.jpg",
	}
	if got := v.Thumbnail(); got != "https://cdn.example.com/thumb.jpg" {
		t.Fatalf("expected server thumbnail, got %q", got)
	}

	v.ThumbnailURL = "  "
	if got := v.Thumbnail(); got != "https://img.youtube.com/vi/abc123/mqdefault.jpg" {
		t.Fatalf("expected pattern-matched thumbnail, got %q", got)
	}
}

func TestPlatformGlyph(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://vimeo.com/12345", "▶ vimeo"},
		{"https://www.twitch.tv/videos/1", "▶ twitch"},
		{"https://youtu.be/abc", "▶ youtube"},
		{"https://example.com/clip.mp4", "▶ video"},
		{"", "▶ video"},
	}

	for _, tc := range cases {
		if got := PlatformGlyph(tc.url); got != tc.want {
			t.Fatalf("PlatformGlyph(%q) = %q, want %q", tc.url, got, tc.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		seconds int
		want    string
	}{
		{0, "0:00"},
		{59, "0:59"},
		{61, "1:01"},
		{3600, "1:00:00"},
		{3725, "1:02:05"},
	}

	for _, tc := range cases {
		if got := FormatDuration(tc.seconds); got != tc.want {
			t.Fatalf("FormatDuration(%d) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}
