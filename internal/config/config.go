// Package config reads the project-level dmd.toml file that tells
// cmd/dmdc where to find DSL source and how to reach the target
// database. It never imports internal/types, internal/schema, or any
// other core package — this is host-level convenience only, exactly
// the line spec.md draws around cmd/.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Project is the top-level dmd.toml document, mirroring the teacher's
// tomlDatabase-style "one struct per TOML table" layout.
type Project struct {
	Source   SourceConfig   `toml:"source"`
	Database DatabaseConfig `toml:"database"`
}

// SourceConfig maps [source] — where the DSL .dmd/.dmdx files live.
type SourceConfig struct {
	Dirs []string `toml:"dirs"`
}

// DatabaseConfig maps [database] — how to reach the live schema.
type DatabaseConfig struct {
	DSN    string `toml:"dsn"`
	Schema string `toml:"schema"`
}

// Load reads and decodes path as a dmd.toml project file.
func Load(path string) (*Project, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	var p Project
	if _, err := toml.NewDecoder(f).Decode(&p); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return &p, nil
}
