// Package runner lowers a diffplan.MigrationPlan into SQL Server
// dialect statements and executes them best-effort against a narrow
// ExecPort, collecting per-step failures rather than aborting (§4.6).
package runner

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/dmdtool/dmd/internal/diffplan"
)

// Rows is the narrow cursor contract the runner's safety probes
// consume; *sql.Rows satisfies it without modification.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Close() error
	Err() error
}

// ExecPort is the only capability the runner needs from a database
// connection: execute a statement, or query one for the data-safety
// probes.
type ExecPort interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (Rows, error)
}

// StepResult records what happened for one plan step: the statements
// attempted, any execution error, and whether a data-safety probe
// caused the step to be skipped instead of executed.
type StepResult struct {
	Step       diffplan.MigrationStep
	Statements []string
	Err        error
	Skipped    bool
	SkipReason string
}

// Run executes plan's steps in order against exec, stopping early only
// on context cancellation (checked between steps, never mid-step).
// Individual statement failures are collected per step, never
// returned as the function's own error (§7: "Execution errors are
// collected, not thrown").
func Run(ctx context.Context, exec ExecPort, plan *diffplan.MigrationPlan, log *logrus.Logger) ([]StepResult, error) {
	results := make([]StepResult, 0, len(plan.Steps))

	for _, step := range plan.Steps {
		select {
		case <-ctx.Done():
			return results, ctx.Err()
		default:
		}

		if err := step.Validate(); err != nil {
			results = append(results, StepResult{Step: step, Err: err})
			continue
		}

		results = append(results, runStep(ctx, exec, step, log))
	}

	return results, nil
}

func runStep(ctx context.Context, exec ExecPort, step diffplan.MigrationStep, log *logrus.Logger) StepResult {
	debugf(log, "runner: executing %s on %s", step.Action, step.TableName)

	switch step.Action {
	case diffplan.ActionCreateTable:
		return execStatements(ctx, exec, step, []string{buildCreateTableSQL(step.Table)})

	case diffplan.ActionAddColumn:
		return execStatements(ctx, exec, step, buildAddColumnStatements(step.TableName, step.Field))

	case diffplan.ActionAlterColumn:
		return runAlterColumn(ctx, exec, step, log)

	case diffplan.ActionAddForeignKey:
		return execStatements(ctx, exec, step, buildAddForeignKeyStatements(step.TableName, step.ForeignKey))

	case diffplan.ActionAddIndex:
		return execStatements(ctx, exec, step, []string{buildAddIndexSQL(step.TableName, step.Index)})

	default:
		return StepResult{Step: step, Err: fmt.Errorf("runner: unknown action %q", step.Action)}
	}
}

func execStatements(ctx context.Context, exec ExecPort, step diffplan.MigrationStep, statements []string) StepResult {
	result := StepResult{Step: step, Statements: statements}
	for _, stmt := range statements {
		if _, err := exec.ExecContext(ctx, stmt); err != nil {
			result.Err = fmt.Errorf("runner: executing %q: %w", stmt, err)
			return result
		}
	}
	return result
}

func debugf(log *logrus.Logger, format string, args ...any) {
	if log == nil {
		return
	}
	log.Debugf(format, args...)
}
