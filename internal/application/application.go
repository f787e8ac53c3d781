package application

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

const (
	// AppName is the application name used for directories and identification
	AppName = "i-didnt-park"

	// DirEnv overrides the data directory when set
	DirEnv = "I_DIDNT_PARK_DIR"

	// BackendEnv forces a persistence backend: "auto", "sqlite" or "kv"
	BackendEnv = "I_DIDNT_PARK_BACKEND"
)

var (
	once   sync.Once
	appDir string
	errDir error
)

// DataDirectory returns the application data directory path.
// Linux: ~/.config/i-didnt-park (via os.UserConfigDir)
// Windows: C:\Users\{username}\AppData\Local\i-didnt-park (via os.UserCacheDir)
// The I_DIDNT_PARK_DIR environment variable takes precedence.
func DataDirectory() (string, error) {
	once.Do(lazyLoad)

	if errDir != nil {
		return "", errDir
	}

	return appDir, errDir
}

func lazyLoad() {
	if dir := os.Getenv(DirEnv); dir != "" {
		appDir = dir
		return
	}

	var (
		baseDir string
		err     error
	)

	switch runtime.GOOS {
	case "windows":
		// Windows: use AppData\Local (via UserCacheDir)
		baseDir, err = os.UserCacheDir()
	default:
		// Linux/others: use ~/.config (via UserConfigDir)
		baseDir, err = os.UserConfigDir()
	}

	if err != nil {
		errDir = fmt.Errorf("failed to get config directory: %w", err)
	}

	appDir = filepath.Join(baseDir, AppName)
}
