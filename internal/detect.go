package internal

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
)

const (
	// DataFileName is the kiro-cli conversation database
	DataFileName = "data.sqlite3"
	// EnvDataPath overrides the detected database location
	EnvDataPath = "KIRO_DATA_PATH"
)

// SupportDirectory returns the kiro-cli support directory for this OS
func SupportDirectory() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "kiro-cli"), nil
	case "windows":
		return filepath.Join(home, "AppData", "Roaming", "kiro-cli"), nil
	default:
		return filepath.Join(home, ".kiro-cli"), nil
	}
}

// DetectDataPath locates the conversation database. custom may name the
// database file or the directory holding it; KIRO_DATA_PATH is consulted
// next, then the kiro-cli support directory.
func DetectDataPath(custom string) (string, error) {
	candidate := custom
	if candidate == "" {
		candidate = os.Getenv(EnvDataPath)
	}
	if candidate == "" {
		dir, err := SupportDirectory()
		if err != nil {
			return "", err
		}
		candidate = dir
	}

	info, err := os.Stat(candidate)
	if err != nil {
		return "", &StorageError{Path: candidate, Op: "stat", Err: err}
	}
	if info.IsDir() {
		candidate = filepath.Join(candidate, DataFileName)
		if _, err := os.Stat(candidate); err != nil {
			return "", &StorageError{Path: candidate, Op: "stat", Err: err}
		}
	}

	return candidate, nil
}

// CopyDatabase copies the database and its -wal/-shm siblings into a temp
// directory so reads do not contend with a running agent. The returned
// cleanup removes the copy.
func CopyDatabase(path string) (string, func() error, error) {
	tmpDir, err := os.MkdirTemp("", "kiro-session-*")
	if err != nil {
		return "", nil, &StorageError{Path: path, Op: "copy", Err: err}
	}
	cleanup := func() error { return os.RemoveAll(tmpDir) }

	dest := filepath.Join(tmpDir, filepath.Base(path))
	if err := copyFile(path, dest); err != nil {
		_ = cleanup()
		return "", nil, &StorageError{Path: path, Op: "copy", Err: err}
	}

	for _, suffix := range []string{"-wal", "-shm"} {
		if _, err := os.Stat(path + suffix); err != nil {
			continue
		}
		if err := copyFile(path+suffix, dest+suffix); err != nil {
			LogWarn("Failed to copy %s: %v", path+suffix, err)
		}
	}

	LogDebug("Copied database to %s", dest)
	return dest, cleanup, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
