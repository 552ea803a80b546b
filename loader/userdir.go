package loader

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
)

// UserConfigName is the config document generated in the
// user directory on first run.
const UserConfigName = "config.yaml"

// EnsureUserDir creates dir when missing and writes
// defaultConfig to its config document unless one exists.
// It reports whether the config document was generated.
func EnsureUserDir(dir string, defaultConfig []byte) (bool, error) {
	const errCtx = "preparing user directory"

	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:gosec // user owned directory
		return false, fmt.Errorf("%s: %w", errCtx, err)
	}

	pa := filepath.Join(dir, UserConfigName)

	_, err := os.Stat(pa)
	if err == nil {
		return false, nil
	}

	if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("%s: %w", errCtx, err)
	}

	slog.Info("generating config", "path", pa)

	if err := atomic.WriteFile(pa, bytes.NewReader(defaultConfig)); err != nil {
		return false, fmt.Errorf("%s: %w", errCtx, err)
	}

	return true, nil
}
