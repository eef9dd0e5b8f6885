package platform

import (
	"errors"
	"os"
	"os/user"
	"path/filepath"
	"runtime"
)

// ErrUnsupportedPlatform is returned when running on a platform without
// known trash semantics.
var ErrUnsupportedPlatform = errors.New("unsupported platform")

// Platform represents the operating system platform
type Platform string

const (
	MacOS   Platform = "darwin"
	Linux   Platform = "linux"
	Unknown Platform = "unknown"
)

// Info contains platform-specific information and paths
type Info struct {
	OS       Platform
	HomeDir  string
	Username string

	// TrashDir is the root of the user trash. On Linux this follows the
	// XDG trash layout with separate files/ and info/ subdirectories; on
	// macOS everything lands directly in ~/.Trash.
	TrashDir      string
	TrashFilesDir string
	TrashInfoDir  string
}

// Detect returns the current platform
func Detect() Platform {
	switch runtime.GOOS {
	case "darwin":
		return MacOS
	case "linux":
		return Linux
	default:
		return Unknown
	}
}

// GetInfo returns platform-specific information
func GetInfo() (*Info, error) {
	platform := Detect()

	currentUser, err := user.Current()
	if err != nil {
		return nil, err
	}

	homeDir := currentUser.HomeDir
	username := currentUser.Username

	switch platform {
	case MacOS:
		return getMacOSInfo(homeDir, username), nil
	case Linux:
		return getLinuxInfo(homeDir, username), nil
	default:
		return nil, ErrUnsupportedPlatform
	}
}

// getMacOSInfo returns platform-specific information for macOS
func getMacOSInfo(homeDir, username string) *Info {
	trash := filepath.Join(homeDir, ".Trash")
	return &Info{
		OS:            MacOS,
		HomeDir:       homeDir,
		Username:      username,
		TrashDir:      trash,
		TrashFilesDir: trash,
	}
}

// getLinuxInfo returns platform-specific information for Linux
func getLinuxInfo(homeDir, username string) *Info {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = filepath.Join(homeDir, ".local", "share")
	}
	trash := filepath.Join(dataHome, "Trash")
	return &Info{
		OS:            Linux,
		HomeDir:       homeDir,
		Username:      username,
		TrashDir:      trash,
		TrashFilesDir: filepath.Join(trash, "files"),
		TrashInfoDir:  filepath.Join(trash, "info"),
	}
}
