package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "DMD"

const (
	defaultSchema       = "dbo"
	defaultProjectFile  = "dmd.toml"
)

// Resolved is the fully-merged configuration cmd/dmdc acts on, after
// combining CLI flags, environment variables, a .env file, and a
// dmd.toml project file — in that priority order, flags winning
// (mirrors the teacher pack's viper/godotenv overlay: CLI flags > env
// vars > config file > defaults).
type Resolved struct {
	DSN        string
	SchemaName string
	SourceDirs []string
}

// FlagOverrides carries whatever the caller's cobra flags resolved to;
// empty fields defer to env/config/defaults.
type FlagOverrides struct {
	DSN        string
	SchemaName string
	SourceDirs []string
	DotenvPath string
	ProjectFile string
}

// Resolve merges flags over environment (via viper, prefixed DMD_) over
// a dmd.toml project file (if present) over built-in defaults, and
// requires both a DSN and source directories to be resolvable — the
// shape "dmdc plan"/"dmdc apply" need.
func Resolve(flags FlagOverrides) (*Resolved, error) {
	return resolve(flags, true, true)
}

// ResolveTarget is Resolve without the source-directory requirement,
// for commands ("dmdc export") that only talk to the live database.
func ResolveTarget(flags FlagOverrides) (*Resolved, error) {
	return resolve(flags, true, false)
}

// ResolveSource is Resolve without the DSN requirement, for commands
// ("dmdc parse") that only read DSL source.
func ResolveSource(flags FlagOverrides) (*Resolved, error) {
	return resolve(flags, false, true)
}

func resolve(flags FlagOverrides, requireDSN, requireSource bool) (*Resolved, error) {
	dotenvPath := flags.DotenvPath
	if dotenvPath == "" {
		dotenvPath = ".env"
	}
	if _, err := os.Stat(dotenvPath); err == nil {
		if err := godotenv.Load(dotenvPath); err != nil {
			return nil, fmt.Errorf("config: loading %s: %w", dotenvPath, err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	projectFile := flags.ProjectFile
	if projectFile == "" {
		projectFile = defaultProjectFile
	}

	var project *Project
	if _, err := os.Stat(projectFile); err == nil {
		project, err = Load(projectFile)
		if err != nil {
			return nil, err
		}
	}

	resolved := &Resolved{SchemaName: defaultSchema}
	if project != nil {
		resolved.DSN = project.Database.DSN
		if project.Database.Schema != "" {
			resolved.SchemaName = project.Database.Schema
		}
		resolved.SourceDirs = project.Source.Dirs
	}

	if dsn := v.GetString("dsn"); dsn != "" {
		resolved.DSN = dsn
	}
	if schemaName := v.GetString("schema"); schemaName != "" {
		resolved.SchemaName = schemaName
	}

	if flags.DSN != "" {
		resolved.DSN = flags.DSN
	}
	if flags.SchemaName != "" {
		resolved.SchemaName = flags.SchemaName
	}
	if len(flags.SourceDirs) > 0 {
		resolved.SourceDirs = flags.SourceDirs
	}

	if requireDSN && resolved.DSN == "" {
		return nil, fmt.Errorf("config: no database DSN (set --dsn, DMD_DSN, or [database].dsn in %s)", projectFile)
	}
	if requireSource && len(resolved.SourceDirs) == 0 {
		return nil, fmt.Errorf("config: no DSL source directories (set --source, or [source].dirs in %s)", projectFile)
	}

	return resolved, nil
}
