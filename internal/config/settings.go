package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"warroom/internal/store"
)

const (
	DefaultSettingsPath = "config/warroom.json"
	settingsSchema      = 1

	DefaultAPIBaseURL            = "http://localhost:8000"
	DefaultPollIntervalSeconds   = 2
	DefaultRequestTimeoutSeconds = 10

	EnvAPIBaseURL = "WARROOM_API_URL"
	EnvAPIToken   = "WARROOM_API_TOKEN"
)

type Settings struct {
	SchemaVersion         int    `json:"schema_version"`
	UpdatedAt             string `json:"updated_at,omitempty"`
	APIBaseURL            string `json:"api_base_url,omitempty"`
	APIToken              string `json:"api_token,omitempty"`
	PollIntervalSeconds   int    `json:"poll_interval_seconds,omitempty"`
	RequestTimeoutSeconds int    `json:"request_timeout_seconds,omitempty"`
}

func Defaults() Settings {
	return Settings{
		SchemaVersion:         settingsSchema,
		APIBaseURL:            DefaultAPIBaseURL,
		PollIntervalSeconds:   DefaultPollIntervalSeconds,
		RequestTimeoutSeconds: DefaultRequestTimeoutSeconds,
	}
}

func Normalize(raw Settings) Settings {
	norm := raw
	norm.SchemaVersion = settingsSchema
	norm.APIBaseURL = strings.TrimRight(strings.TrimSpace(norm.APIBaseURL), "/")
	if norm.APIBaseURL == "" {
		norm.APIBaseURL = DefaultAPIBaseURL
	}
	norm.APIToken = strings.TrimSpace(norm.APIToken)
	if norm.PollIntervalSeconds <= 0 {
		norm.PollIntervalSeconds = DefaultPollIntervalSeconds
	}
	if norm.RequestTimeoutSeconds <= 0 {
		norm.RequestTimeoutSeconds = DefaultRequestTimeoutSeconds
	}
	return norm
}

// Load reads the settings file, falling back to defaults when it does not
// exist, then applies environment overrides.
func Load(path string) (Settings, error) {
	path = normalizePath(path)
	var s Settings
	if err := store.ReadJSON(path, &s); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return applyEnv(Defaults()), nil
		}
		return Settings{}, err
	}
	return applyEnv(Normalize(s)), nil
}

// Save rewrites the settings file under a directory lock, so two commands
// racing on the same file cannot interleave read-modify-write cycles.
func Save(path string, s Settings) error {
	path = normalizePath(path)
	norm := Normalize(s)
	norm.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	lock, err := store.AcquireDirLock(filepath.Dir(path))
	if err != nil {
		return err
	}
	defer func() {
		_ = lock.Release()
	}()
	return store.WriteJSON(path, norm)
}

// Ensure creates the settings file with defaults when missing. The second
// return reports whether it was created.
func Ensure(path string) (Settings, bool, error) {
	path = normalizePath(path)
	var s Settings
	err := store.ReadJSON(path, &s)
	if err == nil {
		return applyEnv(Normalize(s)), false, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return Settings{}, false, err
	}
	if err := Save(path, Defaults()); err != nil {
		return Settings{}, false, err
	}
	return applyEnv(Defaults()), true, nil
}

func applyEnv(s Settings) Settings {
	if v := strings.TrimSpace(os.Getenv(EnvAPIBaseURL)); v != "" {
		s.APIBaseURL = strings.TrimRight(v, "/")
	}
	if v := strings.TrimSpace(os.Getenv(EnvAPIToken)); v != "" {
		s.APIToken = v
	}
	return s
}

func normalizePath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return DefaultSettingsPath
	}
	return path
}

func (s Settings) PollInterval() time.Duration {
	if s.PollIntervalSeconds <= 0 {
		return DefaultPollIntervalSeconds * time.Second
	}
	return time.Duration(s.PollIntervalSeconds) * time.Second
}

func (s Settings) RequestTimeout() time.Duration {
	if s.RequestTimeoutSeconds <= 0 {
		return DefaultRequestTimeoutSeconds * time.Second
	}
	return time.Duration(s.RequestTimeoutSeconds) * time.Second
}

// DebugLogPath is where panels append diagnostic fetch-failure lines.
func DebugLogPath() (string, error) {
	cacheRoot, err := os.UserCacheDir()
	if err != nil || strings.TrimSpace(cacheRoot) == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return "", homeErr
		}
		cacheRoot = filepath.Join(home, ".cache")
	}
	return filepath.Join(cacheRoot, "warroom", "debug.log"), nil
}
