// Package cli holds the flag structs cmd/dmdc's cobra commands bind
// into, kept separate from command wiring the same way the teacher's
// cmd/smf/main.go groups diffFlags/migrateFlags/applyFlags — plain
// data, no cobra/viper imports of its own.
package cli

// SourceFlags selects the DSL files or directories a command parses.
type SourceFlags struct {
	Source      []string
	ProjectFile string
	DotenvPath  string
}

// TargetFlags selects the live database a command talks to.
type TargetFlags struct {
	DSN         string
	SchemaName  string
	ProjectFile string
	DotenvPath  string
}

// PlanFlags configures "dmdc plan": diff the DSL model against the
// live schema and print the resulting steps.
type PlanFlags struct {
	SourceFlags
	TargetFlags
}

// ExportFlags configures "dmdc export": introspect the live schema and
// render it back as DSL source into OutDir.
type ExportFlags struct {
	TargetFlags
	OutDir string
}
