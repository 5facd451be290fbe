package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dmdtool/dmd/cli"
	"github.com/dmdtool/dmd/internal/config"
	"github.com/dmdtool/dmd/internal/diffplan"
	"github.com/dmdtool/dmd/internal/dslparser"
	"github.com/dmdtool/dmd/internal/loader"
	"github.com/dmdtool/dmd/internal/runner"
	"github.com/dmdtool/dmd/internal/schema"
)

func newPlanCmd(log *logrus.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Diff the DSL model against the live schema and print the plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			configureLogger(cmd, log)
			plan, _, err := buildPlan(cmd, log)
			if err != nil {
				return err
			}
			printPlan(plan)
			return nil
		},
	}
	return cmd
}

// buildPlan resolves config, parses the DSL model, introspects the
// live schema, and computes the migration plan — shared by "plan" and
// "apply".
func buildPlan(cmd *cobra.Command, log *logrus.Logger) (*diffplan.MigrationPlan, *sql.DB, error) {
	flags := cli.PlanFlags{SourceFlags: sourceFlags(cmd), TargetFlags: targetFlags(cmd)}
	resolved, err := config.Resolve(planOverrides(flags))
	if err != nil {
		return nil, nil, err
	}

	files, err := collectSourceFiles(resolved.SourceDirs)
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return nil, nil, fmt.Errorf("dmdc: no .dmd/.dmdx files found under %v", resolved.SourceDirs)
	}

	target, err := dslparser.Parse(files...)
	if err != nil {
		return nil, nil, fmt.Errorf("dmdc: parsing DSL source: %w", err)
	}

	db, err := sql.Open("sqlserver", resolved.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("dmdc: opening database: %w", err)
	}

	actual, err := loadActualSchema(cmd.Context(), db, resolved.SchemaName, log)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	plan, err := diffplan.Plan(target, actual)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("dmdc: planning: %w", err)
	}
	return plan, db, nil
}

func loadActualSchema(ctx context.Context, db *sql.DB, schemaName string, log *logrus.Logger) (*schema.DatabaseModel, error) {
	l := loader.New(&loader.DBQueryPort{DB: db}, log)
	actual, err := l.Load(ctx, schemaName)
	if err != nil {
		return nil, fmt.Errorf("dmdc: introspecting live schema: %w", err)
	}
	return actual, nil
}

func printPlan(plan *diffplan.MigrationPlan) {
	if len(plan.Steps) == 0 {
		fmt.Println("no changes")
	}
	for _, step := range plan.Steps {
		stmts, err := runner.PreviewStatements(step)
		if err != nil {
			fmt.Printf("-- %s %s: %v\n", step.Action, step.TableName, err)
			continue
		}
		for _, stmt := range stmts {
			fmt.Println(stmt)
		}
	}
	for _, extra := range plan.ExtrasReport.ExtraIndexes {
		fmt.Printf("-- extra index on %s not present in the model (not dropped)\n", extra.TableName)
	}
}
