package diffplan

import (
	"strings"

	"github.com/dmdtool/dmd/internal/schema"
	"github.com/dmdtool/dmd/internal/types"
)

// Plan compares target against actual and returns the ordered,
// additive-only migration plan plus an indexes-only extras report.
// Name comparisons are case-insensitive throughout (§4.5).
func Plan(target, actual *schema.DatabaseModel) (*MigrationPlan, error) {
	var (
		createSteps []MigrationStep
		columnSteps []MigrationStep
		alterSteps  []MigrationStep
		fkSteps     []MigrationStep
		indexSteps  []MigrationStep
	)
	var extras []ExtraIndex

	for _, targetTable := range target.Tables {
		actualTable := actual.TableByName(targetTable.Name)

		if actualTable == nil {
			createSteps = append(createSteps, MigrationStep{
				Action: ActionCreateTable, TableName: targetTable.Name, Table: targetTable,
			})
			for _, fk := range targetTable.ForeignKeys {
				if target.TableByName(fk.TargetTable) == nil {
					continue
				}
				fkCopy := *fk
				fkSteps = append(fkSteps, MigrationStep{
					Action: ActionAddForeignKey, TableName: targetTable.Name, ForeignKey: &fkCopy,
				})
			}
			for _, idx := range targetTable.Indexes {
				idxCopy := *idx
				idxCopy.Fields = resolveIndexFieldNames(idx.Fields, targetTable)
				indexSteps = append(indexSteps, MigrationStep{
					Action: ActionAddIndex, TableName: targetTable.Name, Index: &idxCopy,
				})
			}
			continue
		}

		planColumns(targetTable, actualTable, &columnSteps, &alterSteps)
		planForeignKeys(target, targetTable, actualTable, &fkSteps)
		tableExtras := planIndexes(targetTable, actualTable, &indexSteps)
		extras = append(extras, tableExtras...)
	}

	var steps []MigrationStep
	for _, bucket := range [][]MigrationStep{createSteps, columnSteps, alterSteps, fkSteps, indexSteps} {
		steps = append(steps, bucket...)
	}

	return &MigrationPlan{
		Steps:        steps,
		ExtrasReport: ExtrasReport{ExtraIndexes: extras},
	}, nil
}

// planColumns emits AddColumn for every target field absent from
// actual, and AlterColumn for widen/retype-only changes on fields
// present in both (§4.5 steps 2-3).
func planColumns(target, actual *schema.TableModel, columnSteps, alterSteps *[]MigrationStep) {
	for _, tf := range target.Fields {
		af := actual.FieldByName(tf.Name)
		if af == nil {
			fCopy := *tf
			*columnSteps = append(*columnSteps, MigrationStep{
				Action: ActionAddColumn, TableName: target.Name, Field: &fCopy,
			})
			continue
		}

		if shouldAlter(tf, af) {
			fCopy := *tf
			*alterSteps = append(*alterSteps, MigrationStep{
				Action: ActionAlterColumn, TableName: target.Name, Field: &fCopy,
			})
		}
	}
}

// shouldAlter reports whether target's declared type for a field that
// also exists in actual requires an AlterColumn: a widen/retype of a
// sized string/binary type, or a precision/scale change within the
// decimal family. Narrowing is only planned when the target field
// carries @reducesize (§4.6.3); widening is always planned.
func shouldAlter(target, actual *schema.FieldModel) bool {
	switch {
	case types.IsSizedStringOrBinary(target.Type) && target.Type == actual.Type:
		if target.Precision == actual.Precision {
			return false
		}
		if isNarrowingPrecision(target.Precision, actual.Precision) {
			return target.HasAttribute("reducesize")
		}
		return true

	case types.IsDecimalFamily(target.Type) && types.IsDecimalFamily(actual.Type):
		if target.Precision == actual.Precision && target.Scale == actual.Scale {
			return false
		}
		if target.Precision < actual.Precision || target.Scale < actual.Scale {
			return target.HasAttribute("reducesize")
		}
		return true

	default:
		return false
	}
}

// isNarrowingPrecision reports whether moving from actualPrecision to
// targetPrecision shrinks the column. MAX (-1) is always the widest
// value; narrowing away from MAX always counts as narrowing.
func isNarrowingPrecision(targetPrecision, actualPrecision int) bool {
	if actualPrecision == types.MaxLengthMarker {
		return targetPrecision != types.MaxLengthMarker
	}
	if targetPrecision == types.MaxLengthMarker {
		return false
	}
	return targetPrecision < actualPrecision
}

// planForeignKeys emits AddForeignKey for target FKs, matched by
// target-table identity (not column name), whose target table also
// exists in target and which are not already present in actual
// (§4.5 step 4).
func planForeignKeys(targetDB *schema.DatabaseModel, target, actual *schema.TableModel, fkSteps *[]MigrationStep) {
	for _, fk := range target.ForeignKeys {
		if targetDB.TableByName(fk.TargetTable) == nil {
			continue
		}
		if actual.ForeignKeyByTargetTable(fk.TargetTable) != nil {
			continue
		}
		fkCopy := *fk
		*fkSteps = append(*fkSteps, MigrationStep{
			Action: ActionAddForeignKey, TableName: target.Name, ForeignKey: &fkCopy,
		})
	}
}

// planIndexes emits AddIndex for every normalized target index with
// no matching actual index (same uniqueness, same ordered field list,
// case-insensitive), and returns the actual indexes that have no
// corresponding normalized target index as extras (§4.5 step 5).
func planIndexes(target, actual *schema.TableModel, indexSteps *[]MigrationStep) []ExtraIndex {
	type normalized struct {
		fields   []string
		isUnique bool
	}

	var normTargets []normalized
	for _, idx := range target.Indexes {
		normTargets = append(normTargets, normalized{
			fields:   resolveIndexFieldNames(idx.Fields, target),
			isUnique: idx.IsUnique,
		})
	}

	matchedActual := make([]bool, len(actual.Indexes))

	for i, nt := range normTargets {
		matched := false
		for j, ai := range actual.Indexes {
			if matchedActual[j] {
				continue
			}
			if ai.IsUnique == nt.isUnique && sameFieldsCaseInsensitive(ai.Fields, nt.fields) {
				matchedActual[j] = true
				matched = true
				break
			}
		}
		if !matched {
			idxCopy := *target.Indexes[i]
			idxCopy.Fields = nt.fields
			*indexSteps = append(*indexSteps, MigrationStep{
				Action: ActionAddIndex, TableName: target.Name, Index: &idxCopy,
			})
		}
	}

	var extras []ExtraIndex
	for j, ai := range actual.Indexes {
		if !matchedActual[j] {
			extras = append(extras, ExtraIndex{TableName: target.Name, Index: ai})
		}
	}
	return extras
}

func sameFieldsCaseInsensitive(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !strings.EqualFold(a[i], b[i]) {
			return false
		}
	}
	return true
}
