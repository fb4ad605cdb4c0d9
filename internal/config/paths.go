// Package config locates slotwise's data directory and loads its settings.
//
// The default root is ~/.slotwise/, holding timetables/ and config.yaml.
// SLOTWISE_ROOT overrides the root.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// RootEnv overrides the data root.
const RootEnv = "SLOTWISE_ROOT"

// Paths contains all the filesystem paths used by slotwise.
type Paths struct {
	// Root is the base directory for all slotwise data (default: ~/.slotwise)
	Root string

	// Timetables is the directory containing timetable state files
	Timetables string

	// Config is the path to the settings file
	Config string
}

// DefaultPaths returns the default paths, honouring SLOTWISE_ROOT.
func DefaultPaths() (*Paths, error) {
	root := os.Getenv(RootEnv)
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		root = filepath.Join(home, ".slotwise")
	}
	return PathsAt(root), nil
}

// PathsAt returns the layout under root.
func PathsAt(root string) *Paths {
	return &Paths{
		Root:       root,
		Timetables: filepath.Join(root, "timetables"),
		Config:     filepath.Join(root, "config.yaml"),
	}
}

// EnsureDirectories creates all necessary directories if they don't exist.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.Root, p.Timetables} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}
