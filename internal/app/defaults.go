package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// sharedStreamsContainer is the macOS container the photo-sharing agent
// keeps its shared-stream cache in, relative to the home directory.
var sharedStreamsContainer = filepath.Join(
	"Library", "Containers", "com.apple.cloudphotosd",
	"Data", "Library", "Application Support", "com.apple.cloudphotosd",
	"services", "com.apple.photo.icloud.sharedstreams",
)

// GetDefaults returns application default paths, checking environment variables first.
// Environment variables:
//   - PSB_CONFIG_PATH: config file location (default: ~/.config/psb.toml)
//   - PSB_HOME: base directory for psb data (default: ~/.local/share/psb)
//   - PSB_CACHE_ROOT: shared-stream cache root (default: the cloudphotosd container)
func GetDefaults() (map[string]string, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	baseDir, err := getBaseDir()
	if err != nil {
		return nil, err
	}

	cacheRoot, err := getCacheRoot()
	if err != nil {
		return nil, err
	}

	return map[string]string{
		"config_path": configPath,
		"base_dir":    baseDir,
		"log_dir":     filepath.Join(baseDir, "log"),
		"cache_root":  cacheRoot,
	}, nil
}

// getConfigPath returns the config file path, checking PSB_CONFIG_PATH env
// var first, then falling back to the default ~/.config/psb.toml.
func getConfigPath() (string, error) {
	if path := os.Getenv("PSB_CONFIG_PATH"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "psb.toml"), nil
}

// getBaseDir returns the base directory for psb data, checking PSB_HOME env
// var first, then falling back to the XDG default ~/.local/share/psb.
func getBaseDir() (string, error) {
	if path := os.Getenv("PSB_HOME"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "share", "psb"), nil
}

// getCacheRoot returns the photo-sharing cache root, checking PSB_CACHE_ROOT
// env var first, then falling back to the shared-streams container.
func getCacheRoot() (string, error) {
	if path := os.Getenv("PSB_CACHE_ROOT"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, sharedStreamsContainer), nil
}
