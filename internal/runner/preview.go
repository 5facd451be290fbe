package runner

import (
	"fmt"

	"github.com/dmdtool/dmd/internal/diffplan"
)

// PreviewStatements renders the SQL a step would execute, without
// touching a database connection — used by cmd/dmdc's dry-run output.
// AlterColumn previews only the unconditional ALTER; the data-loss
// probe and conditional UPDATE/ALTER sequence it may trigger at run
// time require a live ExecPort and aren't reproduced here.
func PreviewStatements(step diffplan.MigrationStep) ([]string, error) {
	if err := step.Validate(); err != nil {
		return nil, err
	}

	switch step.Action {
	case diffplan.ActionCreateTable:
		return []string{buildCreateTableSQL(step.Table)}, nil
	case diffplan.ActionAddColumn:
		return buildAddColumnStatements(step.TableName, step.Field), nil
	case diffplan.ActionAlterColumn:
		return []string{buildAlterColumnSQL(step.TableName, step.Field)}, nil
	case diffplan.ActionAddForeignKey:
		return buildAddForeignKeyStatements(step.TableName, step.ForeignKey), nil
	case diffplan.ActionAddIndex:
		return []string{buildAddIndexSQL(step.TableName, step.Index)}, nil
	default:
		return nil, fmt.Errorf("runner: unknown action %q", step.Action)
	}
}
