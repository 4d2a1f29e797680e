package config

import (
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "warroom.json")

	s, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.APIBaseURL != DefaultAPIBaseURL {
		t.Fatalf("expected default base url, got %q", s.APIBaseURL)
	}
	if s.PollIntervalSeconds != DefaultPollIntervalSeconds {
		t.Fatalf("expected default poll interval, got %d", s.PollIntervalSeconds)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "warroom.json")

	in := Settings{
		APIBaseURL:            "https://warroom.example.com/",
		APIToken:              "tok-123",
		PollIntervalSeconds:   5,
		RequestTimeoutSeconds: 30,
	}
	if err := Save(path, in); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if out.APIBaseURL != "https://warroom.example.com" {
		t.Fatalf("expected trailing slash trimmed, got %q", out.APIBaseURL)
	}
	if out.APIToken != "tok-123" || out.PollIntervalSeconds != 5 || out.RequestTimeoutSeconds != 30 {
		t.Fatalf("roundtrip mismatch: %+v", out)
	}
}

func TestNormalizeClampsNonPositiveIntervals(t *testing.T) {
	s := Normalize(Settings{PollIntervalSeconds: -1, RequestTimeoutSeconds: 0})
	if s.PollIntervalSeconds != DefaultPollIntervalSeconds {
		t.Fatalf("expected clamped poll interval, got %d", s.PollIntervalSeconds)
	}
	if s.RequestTimeoutSeconds != DefaultRequestTimeoutSeconds {
		t.Fatalf("expected clamped request timeout, got %d", s.RequestTimeoutSeconds)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "warroom.json")
	if err := Save(path, Settings{APIBaseURL: "http://file.example.com"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	t.Setenv(EnvAPIBaseURL, "http://env.example.com/")
	t.Setenv(EnvAPIToken, "env-token")

	s, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.APIBaseURL != "http://env.example.com" {
		t.Fatalf("expected env base url to win, got %q", s.APIBaseURL)
	}
	if s.APIToken != "env-token" {
		t.Fatalf("expected env token, got %q", s.APIToken)
	}
}

func TestEnsureCreatesFileOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "warroom.json")

	_, created, err := Ensure(path)
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if !created {
		t.Fatal("expected settings file to be created")
	}

	_, created, err = Ensure(path)
	if err != nil {
		t.Fatalf("ensure again: %v", err)
	}
	if created {
		t.Fatal("expected existing settings file to be reused")
	}
}
