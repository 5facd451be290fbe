package main

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dmdtool/dmd/internal/config"
	"github.com/dmdtool/dmd/internal/runner"
)

func newApplyCmd(log *logrus.Logger) *cobra.Command {
	var dryRun bool
	var file string
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Plan and apply the migration against the live schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			configureLogger(cmd, log)

			if file != "" {
				return applyRecordedFile(cmd, log, file, dryRun)
			}

			plan, db, err := buildPlan(cmd, log)
			if err != nil {
				return err
			}
			defer db.Close()

			if dryRun {
				printPlan(plan)
				return nil
			}

			results, err := runner.Run(cmd.Context(), &runner.DBExecPort{DB: db}, plan, log)
			if err != nil {
				return fmt.Errorf("dmdc: applying plan: %w", err)
			}
			return reportResults(results)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the statements without executing them")
	cmd.Flags().StringVar(&file, "file", "", "Replay a previously recorded SQL script instead of planning fresh")
	return cmd
}

// applyRecordedFile re-executes a SQL script earlier captured from
// "dmdc plan" output, splitting it into individual statements with
// runner.SplitStatements.
func applyRecordedFile(cmd *cobra.Command, log *logrus.Logger, file string, dryRun bool) error {
	content, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("dmdc: reading %s: %w", file, err)
	}
	statements := runner.SplitStatements(string(content))

	if dryRun {
		for _, stmt := range statements {
			fmt.Println(stmt)
		}
		return nil
	}

	resolved, err := config.ResolveTarget(targetOverrides(targetFlags(cmd)))
	if err != nil {
		return err
	}
	db, err := sql.Open("sqlserver", resolved.DSN)
	if err != nil {
		return fmt.Errorf("dmdc: opening database: %w", err)
	}
	defer db.Close()

	for _, stmt := range statements {
		if _, err := db.ExecContext(cmd.Context(), stmt); err != nil {
			return fmt.Errorf("dmdc: executing %q: %w", stmt, err)
		}
		fmt.Printf("OK      %s\n", stmt)
	}
	return nil
}

func reportResults(results []runner.StepResult) error {
	failures := 0
	for _, result := range results {
		switch {
		case result.Err != nil:
			failures++
			fmt.Printf("FAILED  %s %s: %v\n", result.Step.Action, result.Step.TableName, result.Err)
		case result.Skipped:
			fmt.Printf("SKIPPED %s %s: %s\n", result.Step.Action, result.Step.TableName, result.SkipReason)
		default:
			fmt.Printf("OK      %s %s\n", result.Step.Action, result.Step.TableName)
		}
	}
	if failures > 0 {
		return fmt.Errorf("dmdc: %d step(s) failed", failures)
	}
	return nil
}
