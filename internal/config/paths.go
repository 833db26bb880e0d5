// ABOUTME: Where pledge-tui looks for settings files
// ABOUTME: Global file under the user config dir; project file in the working directory or its nearest ancestor

package config

import (
	"os"
	"path/filepath"
)

const (
	appDirName      = "pledge-tui"
	globalFileName  = "config.yaml"
	projectFileName = ".pledge-tui.yaml"
)

// GlobalConfigFile returns $XDG_CONFIG_HOME/pledge-tui/config.yaml (or the
// platform equivalent), falling back to ./pledge-tui/config.yaml.
func GlobalConfigFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, appDirName, globalFileName)
}

// ProjectConfigFile returns the project file in dir itself.
func ProjectConfigFile(dir string) string {
	return filepath.Join(dir, projectFileName)
}

// FindProjectConfig walks up from dir and returns the first project file
// that exists. With none found it returns the path in dir, so a file
// created there later is picked up by the watcher.
func FindProjectConfig(dir string) string {
	for d := filepath.Clean(dir); ; {
		p := ProjectConfigFile(d)
		if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
			return p
		}
		parent := filepath.Dir(d)
		if parent == d {
			return ProjectConfigFile(dir)
		}
		d = parent
	}
}
