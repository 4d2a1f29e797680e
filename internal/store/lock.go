package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	dirLockName      = ".warroom.lock"
	dirLockOwnerFile = "owner.json"
)

// DirLock serializes writers of a settings directory across processes. It is
// a lock directory, which is the portable atomic primitive.
type DirLock struct {
	lockDir string
}

type dirLockOwner struct {
	PID       int    `json:"pid"`
	CreatedAt string `json:"created_at"`
	Hostname  string `json:"hostname,omitempty"`
}

func AcquireDirLock(dir string) (DirLock, error) {
	target := strings.TrimSpace(dir)
	if target == "" {
		return DirLock{}, fmt.Errorf("lock directory is required")
	}
	if err := Mkdir(target); err != nil {
		return DirLock{}, err
	}

	lockDir := filepath.Join(target, dirLockName)
	if err := os.Mkdir(lockDir, 0o755); err != nil {
		if os.IsExist(err) {
			ownerPath := filepath.Join(lockDir, dirLockOwnerFile)
			var owner dirLockOwner
			if readErr := ReadJSON(ownerPath, &owner); readErr == nil && owner.PID > 0 && owner.CreatedAt != "" {
				return DirLock{}, fmt.Errorf(
					"settings directory is locked: %s (pid=%d created_at=%s host=%s)",
					target, owner.PID, owner.CreatedAt, owner.Hostname,
				)
			}
			return DirLock{}, fmt.Errorf("settings directory is locked: %s", target)
		}
		return DirLock{}, fmt.Errorf("acquire lock for %s: %w", target, err)
	}

	owner := dirLockOwner{
		PID:       os.Getpid(),
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Hostname:  hostnameOrUnknown(),
	}
	ownerPath := filepath.Join(lockDir, dirLockOwnerFile)
	if err := WriteJSON(ownerPath, owner); err != nil {
		_ = os.Remove(lockDir)
		return DirLock{}, fmt.Errorf("write lock owner for %s: %w", target, err)
	}

	return DirLock{lockDir: lockDir}, nil
}

func (l DirLock) Release() error {
	if strings.TrimSpace(l.lockDir) == "" {
		return nil
	}
	_ = os.Remove(filepath.Join(l.lockDir, dirLockOwnerFile))
	if err := os.Remove(l.lockDir); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("release lock %s: %w", l.lockDir, err)
	}
	return nil
}

func hostnameOrUnknown() string {
	host, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	host = strings.TrimSpace(host)
	if host == "" {
		return "unknown"
	}
	return host
}
