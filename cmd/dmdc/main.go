// Package main is dmdc, the command-line host for the dmd
// schema-reconciliation toolchain: cobra command tree mirroring the
// teacher's cmd/smf, wiring the core packages to a concrete SQL Server
// connection (the one dialect this tool is normative for).
package main

import (
	"fmt"
	"os"

	_ "github.com/microsoft/go-mssqldb"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dmdtool/dmd/cli"
	"github.com/dmdtool/dmd/internal/config"
)

func main() {
	log := logrus.New()

	rootCmd := &cobra.Command{
		Use:   "dmdc",
		Short: "Reconcile a DSL schema model against a live database",
	}
	rootCmd.PersistentFlags().String("dsn", "", "Database connection string")
	rootCmd.PersistentFlags().String("schema", "", "Schema name to introspect (default dbo)")
	rootCmd.PersistentFlags().StringSlice("source", nil, "DSL source directories (.dmd/.dmdx)")
	rootCmd.PersistentFlags().String("project", "", "Path to dmd.toml (default ./dmd.toml)")
	rootCmd.PersistentFlags().String("env-file", "", "Path to a .env file (default ./.env)")
	rootCmd.PersistentFlags().Bool("verbose", false, "Log debug-level detail")

	rootCmd.AddCommand(newParseCmd(log))
	rootCmd.AddCommand(newPlanCmd(log))
	rootCmd.AddCommand(newApplyCmd(log))
	rootCmd.AddCommand(newExportCmd(log))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func sourceFlags(cmd *cobra.Command) cli.SourceFlags {
	source, _ := cmd.Flags().GetStringSlice("source")
	project, _ := cmd.Flags().GetString("project")
	envFile, _ := cmd.Flags().GetString("env-file")
	return cli.SourceFlags{Source: source, ProjectFile: project, DotenvPath: envFile}
}

func targetFlags(cmd *cobra.Command) cli.TargetFlags {
	dsn, _ := cmd.Flags().GetString("dsn")
	schemaName, _ := cmd.Flags().GetString("schema")
	project, _ := cmd.Flags().GetString("project")
	envFile, _ := cmd.Flags().GetString("env-file")
	return cli.TargetFlags{DSN: dsn, SchemaName: schemaName, ProjectFile: project, DotenvPath: envFile}
}

func sourceOverrides(f cli.SourceFlags) config.FlagOverrides {
	return config.FlagOverrides{SourceDirs: f.Source, ProjectFile: f.ProjectFile, DotenvPath: f.DotenvPath}
}

func targetOverrides(f cli.TargetFlags) config.FlagOverrides {
	return config.FlagOverrides{DSN: f.DSN, SchemaName: f.SchemaName, ProjectFile: f.ProjectFile, DotenvPath: f.DotenvPath}
}

func planOverrides(f cli.PlanFlags) config.FlagOverrides {
	o := sourceOverrides(f.SourceFlags)
	t := targetOverrides(f.TargetFlags)
	o.DSN, o.SchemaName = t.DSN, t.SchemaName
	return o
}

func configureLogger(cmd *cobra.Command, log *logrus.Logger) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
}
