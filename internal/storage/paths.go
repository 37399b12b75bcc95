package storage

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const appName = "mnkplay"

// DataDir returns the per-user data directory of mnkplay, creating it:
// ~/Library/Application Support/mnkplay on macOS, %APPDATA%\mnkplay on
// Windows and $XDG_DATA_HOME/mnkplay (default ~/.local/share) elsewhere.
func DataDir() (string, error) {
	base, err := dataHome(runtime.GOOS)
	if err != nil {
		return "", errors.Wrap(err, "locating data directory")
	}
	dir := filepath.Join(base, appName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrapf(err, "creating %s", dir)
	}
	return dir, nil
}

func dataHome(goos string) (string, error) {
	switch goos {
	case "darwin":
		home, err := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support"), err
	case "windows":
		if dir := os.Getenv("APPDATA"); dir != "" {
			return dir, nil
		}
		home, err := os.UserHomeDir()
		return filepath.Join(home, "AppData", "Roaming"), err
	}
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	return filepath.Join(home, ".local", "share"), err
}

// DatabaseDir returns the BadgerDB directory inside DataDir.
func DatabaseDir() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	dbDir := filepath.Join(dataDir, "db")
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return "", errors.Wrapf(err, "creating %s", dbDir)
	}
	log.Debug().Str("dir", dbDir).Msg("database directory")
	return dbDir, nil
}
