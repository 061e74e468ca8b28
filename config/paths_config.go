// Package config holds the on-disk layout the mapstyle commands read presets, styles and traces from.
package config

import (
	"path/filepath"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/gofs"
	"github.com/jamesrr39/goutil/userextra"
)

const DefaultRootDir = "~/.local/share/github.com/jamesrr39/mapstyle/"

type PathsConfig struct {
	PresetsDir string
	StylesDir  string
	TraceDir   string
}

// NewPathsConfig lays the directories out under rootDir. A leading "~/" is expanded to the user's home directory.
func NewPathsConfig(rootDir string) (*PathsConfig, errorsx.Error) {
	expandedRootDir, err := userextra.ExpandUser(rootDir)
	if err != nil {
		return nil, errorsx.Wrap(err, "rootDir", rootDir)
	}

	return &PathsConfig{
		PresetsDir: filepath.Join(expandedRootDir, "presets"),
		StylesDir:  filepath.Join(expandedRootDir, "styles"),
		TraceDir:   filepath.Join(expandedRootDir, "trace"),
	}, nil
}

func (pc *PathsConfig) EnsurePaths(fs gofs.Fs) errorsx.Error {
	for _, dirPath := range []string{pc.PresetsDir, pc.StylesDir, pc.TraceDir} {
		err := fs.MkdirAll(dirPath, 0755)
		if err != nil {
			return errorsx.Wrap(err, "dirPath", dirPath)
		}
	}

	return nil
}
