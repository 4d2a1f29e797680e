package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"warroom/internal/api"
	"warroom/internal/config"
)

// newAPIClient builds the gateway client from the settings file, wiring its
// diagnostic log. Panels log fetch failures instead of surfacing them.
func newAPIClient(configPath string) (*api.Client, config.Settings, error) {
	settings, err := config.Load(configPath)
	if err != nil {
		return nil, config.Settings{}, err
	}
	client := api.New(settings.APIBaseURL, settings.APIToken, settings.RequestTimeout())
	client.Logf = debugLogf
	return client, settings, nil
}

var debugLogMu sync.Mutex

// debugLogf appends one timestamped line to the diagnostic log. Logging is
// best-effort: a broken cache dir must never break a panel.
func debugLogf(format string, args ...any) {
	path, err := config.DebugLogPath()
	if err != nil {
		return
	}

	debugLogMu.Lock()
	defer debugLogMu.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()

	line := fmt.Sprintf(format, args...)
	fmt.Fprintf(f, "%s %s\n", time.Now().UTC().Format(time.RFC3339), line)
}
