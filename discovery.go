package configargparse

import (
	"os"
	"path/filepath"
)

// DefaultConfigPaths returns candidate config file paths for an
// application, suitable for Parser.DefaultPaths. Candidates are tried in
// order: the working directory, then XDG config directories. None of the
// paths need exist; the resolver uses the first one that does.
func DefaultConfigPaths(appName string, extensions ...string) []string {
	if len(extensions) == 0 {
		extensions = []string{".conf", ".ini", ".yaml", ".yml"}
	}

	var dirs []string
	if cwd, err := os.Getwd(); err == nil {
		dirs = append(dirs, cwd)
	}
	dirs = append(dirs, xdgConfigDirs(appName)...)

	paths := make([]string, 0, len(dirs)*len(extensions))
	for _, dir := range dirs {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(dir, appName+ext))
		}
	}
	return paths
}

// xdgConfigDirs returns XDG-compliant config directories for the app.
func xdgConfigDirs(appName string) []string {
	var dirs []string

	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		dirs = append(dirs, filepath.Join(xdgHome, appName))
	} else if home := os.Getenv("HOME"); home != "" {
		dirs = append(dirs, filepath.Join(home, ".config", appName))
	}

	if xdgDirs := os.Getenv("XDG_CONFIG_DIRS"); xdgDirs != "" {
		for _, dir := range filepath.SplitList(xdgDirs) {
			dirs = append(dirs, filepath.Join(dir, appName))
		}
	} else {
		dirs = append(dirs,
			filepath.Join("/etc/xdg", appName),
			filepath.Join("/etc", appName),
		)
	}

	return dirs
}
