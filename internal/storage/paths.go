package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DirName is the per-application directory under each config root.
const DirName = "break-reminder"

var configFileNames = []string{"config.yaml", "config.yml", "config.toml"}

// ConfigDirs locates user and system configuration roots.
type ConfigDirs interface {
	GetConfigDir() (string, error)
	SystemConfigDirs() []string
}

// DefaultPath is where config init writes when no path is given.
func DefaultPath(dirs ConfigDirs) (string, error) {
	configDir, err := dirs.GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, DirName, configFileNames[0]), nil
}

// Candidates lists config file locations in lookup order: the user
// directory first, then each system directory.
func Candidates(dirs ConfigDirs) []string {
	var roots []string
	if configDir, err := dirs.GetConfigDir(); err == nil {
		roots = append(roots, configDir)
	}
	roots = append(roots, dirs.SystemConfigDirs()...)

	candidates := make([]string, 0, len(roots)*len(configFileNames))
	for _, root := range roots {
		for _, name := range configFileNames {
			candidates = append(candidates, filepath.Join(root, DirName, name))
		}
	}
	return candidates
}

// Resolve returns the config file to load. An explicit path must exist.
// Without one, the first existing candidate wins; an empty result means
// built-in defaults apply.
func Resolve(dirs ConfigDirs, explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file %s: %w", explicit, err)
		}
		return explicit, nil
	}

	for _, candidate := range Candidates(dirs) {
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("stat config file: %w", err)
		}
	}
	return "", nil
}
