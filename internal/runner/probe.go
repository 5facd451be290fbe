package runner

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/dmdtool/dmd/internal/diffplan"
	"github.com/dmdtool/dmd/internal/schema"
	"github.com/dmdtool/dmd/internal/types"
)

// runAlterColumn runs the data-safety probe required before any
// AlterColumn (§4.6.1), then either performs the alter, skips it with
// a recorded warning, or — when @reducesize is present without
// @allowdataloss — attempts the alter anyway and lets the database
// reject it (§4.6.3).
func runAlterColumn(ctx context.Context, exec ExecPort, step diffplan.MigrationStep, log *logrus.Logger) StepResult {
	f := step.Field

	unsafe, err := probeUnsafe(ctx, exec, step.TableName, f)
	if err != nil {
		return StepResult{Step: step, Err: fmt.Errorf("runner: data-safety probe for %s.%s: %w", step.TableName, f.Name, err)}
	}

	if !unsafe {
		return execStatements(ctx, exec, step, []string{buildAlterColumnSQL(step.TableName, f)})
	}

	if !f.HasAttribute("allowdataloss") {
		if !f.HasAttribute("reducesize") {
			debugf(log, "runner: skipping unsafe narrowing alter on %s.%s (no @reducesize/@allowdataloss)", step.TableName, f.Name)
			return StepResult{Step: step, Skipped: true, SkipReason: "data would be truncated; narrowing requires @reducesize or @allowdataloss to proceed"}
		}
		// @reducesize without @allowdataloss: attempt the alter and
		// let the database reject rows that violate the new width.
		return execStatements(ctx, exec, step, []string{buildAlterColumnSQL(step.TableName, f)})
	}

	statements := []string{narrowingUpdateSQL(step.TableName, f), buildAlterColumnSQL(step.TableName, f)}
	return execStatements(ctx, exec, step, statements)
}

// probeUnsafe reports whether altering f to its target precision/scale
// would truncate live data, per the §4.6.1 rules. Narrowing to MAX is
// always safe and is never probed.
func probeUnsafe(ctx context.Context, exec ExecPort, table string, f *schema.FieldModel) (bool, error) {
	if f.Precision == types.MaxLengthMarker {
		return false, nil
	}

	switch {
	case types.IsSizedStringOrBinary(f.Type):
		return probeStringNarrowing(ctx, exec, table, f)
	case types.IsDecimalFamily(f.Type):
		return probeDecimalNarrowing(ctx, exec, table, f)
	default:
		return false, nil
	}
}

func probeStringNarrowing(ctx context.Context, exec ExecPort, table string, f *schema.FieldModel) (bool, error) {
	var predicate string
	switch f.Type {
	case types.SqlChar, types.SqlNChar:
		predicate = fmt.Sprintf("LEN(%s) > %d", quote(f.Name), f.Precision)
	default:
		limit := f.Precision
		if types.IsUnicode(f.Type) {
			limit *= 2
		}
		predicate = fmt.Sprintf("DATALENGTH(%s) > %d", quote(f.Name), limit)
	}

	query := fmt.Sprintf("SELECT TOP 1 1 FROM %s WITH (READPAST) WHERE %s", quote(table), predicate)
	return rowExists(ctx, exec, query)
}

func probeDecimalNarrowing(ctx context.Context, exec ExecPort, table string, f *schema.FieldModel) (bool, error) {
	target := fmt.Sprintf("decimal(%d,%d)", f.Precision, f.Scale)
	col := quote(f.Name)
	predicate := fmt.Sprintf("TRY_CONVERT(%s, %s) IS NULL OR TRY_CONVERT(%s, %s) <> %s", target, col, target, col, col)
	query := fmt.Sprintf("SELECT TOP 1 1 FROM %s WITH (READPAST) WHERE %s", quote(table), predicate)
	return rowExists(ctx, exec, query)
}

func rowExists(ctx context.Context, exec ExecPort, query string) (bool, error) {
	rows, err := exec.QueryContext(ctx, query)
	if err != nil {
		return false, err
	}
	defer rows.Close()

	exists := rows.Next()
	return exists, rows.Err()
}

// narrowingUpdateSQL converts live values to the target width before
// the ALTER, the @allowdataloss path of §4.6.3.
func narrowingUpdateSQL(table string, f *schema.FieldModel) string {
	col := quote(f.Name)
	if types.IsDecimalFamily(f.Type) {
		target := fmt.Sprintf("decimal(%d,%d)", f.Precision, f.Scale)
		return fmt.Sprintf("UPDATE %s SET %s = TRY_CONVERT(%s, %s)", quote(table), col, target, col)
	}
	return fmt.Sprintf("UPDATE %s SET %s = LEFT(%s, %d)", quote(table), col, col, f.Precision)
}
