// Package storage persists saved games, user preferences and result
// statistics in a BadgerDB database.
package storage

import (
	"log"
	"os"
	"path/filepath"
	"runtime"
)

const appName = "chesscore"

// GetDataDir returns the platform-specific data directory for the application.
// - macOS: ~/Library/Application Support/chesscore/
// - Linux: ~/.local/share/chesscore/
// - Windows: %APPDATA%/chesscore/
func GetDataDir() (string, error) {
	var baseDir string

	switch runtime.GOOS {
	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		baseDir = filepath.Join(homeDir, "Library", "Application Support")

	case "windows":
		baseDir = os.Getenv("APPDATA")
		if baseDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			baseDir = filepath.Join(homeDir, "AppData", "Roaming")
		}

	default:
		// Check XDG_DATA_HOME first
		baseDir = os.Getenv("XDG_DATA_HOME")
		if baseDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			baseDir = filepath.Join(homeDir, ".local", "share")
		}
	}

	dataDir := filepath.Join(baseDir, appName)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}

	return dataDir, nil
}

// GetPiecesDir returns the directory searched for custom piece images.
func GetPiecesDir() (string, error) {
	return subDir("pieces")
}

// GetDatabaseDir returns the directory for storing the BadgerDB database.
func GetDatabaseDir() (string, error) {
	dbDir, err := subDir("db")
	if err != nil {
		return "", err
	}
	log.Printf("Database directory: %s", dbDir)
	return dbDir, nil
}

func subDir(name string) (string, error) {
	dataDir, err := GetDataDir()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(dataDir, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}
