package main

import (
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dmdtool/dmd/cli"
	"github.com/dmdtool/dmd/internal/config"
	"github.com/dmdtool/dmd/internal/exporter"
)

func newExportCmd(log *logrus.Logger) *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Reverse-engineer DSL source from the live schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			configureLogger(cmd, log)

			flags := cli.ExportFlags{TargetFlags: targetFlags(cmd), OutDir: outDir}
			resolved, err := config.ResolveTarget(targetOverrides(flags.TargetFlags))
			if err != nil {
				return err
			}

			db, err := sql.Open("sqlserver", resolved.DSN)
			if err != nil {
				return fmt.Errorf("dmdc: opening database: %w", err)
			}
			defer db.Close()

			model, err := loadActualSchema(cmd.Context(), db, resolved.SchemaName, log)
			if err != nil {
				return err
			}

			if err := exporter.Export(model, flags.OutDir); err != nil {
				return fmt.Errorf("dmdc: exporting: %w", err)
			}
			fmt.Printf("exported %d table(s), %d mixin(s) to %s\n", len(model.Tables), len(model.Mixins), flags.OutDir)
			return nil
		},
	}
	cmd.Flags().StringVar(&outDir, "out", "./exported", "Output directory for exported DSL files")
	return cmd
}
