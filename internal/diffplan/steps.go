// Package diffplan computes a structural, additive-only migration
// plan from a target and an actual schema.DatabaseModel. It has no
// knowledge of SQL; every step is a pure data value the runner later
// lowers into a concrete dialect.
package diffplan

import (
	"fmt"

	"github.com/dmdtool/dmd/internal/schema"
)

// Action enumerates the five step kinds, in the order the runner must
// execute them (§4.5: "emission order... is by action enumeration
// order").
type Action string

const (
	ActionCreateTable   Action = "CreateTable"
	ActionAddColumn     Action = "AddColumn"
	ActionAlterColumn   Action = "AlterColumn"
	ActionAddForeignKey Action = "AddForeignKey"
	ActionAddIndex      Action = "AddIndex"
)

// actionOrder is the fixed emission order of Plan's final step list.
var actionOrder = []Action{
	ActionCreateTable,
	ActionAddColumn,
	ActionAlterColumn,
	ActionAddForeignKey,
	ActionAddIndex,
}

// MigrationStep is a single planned change. Only the fields relevant
// to Action are populated; the runner validates the required payload
// before executing (a missing payload is a plan invariant error, §7).
type MigrationStep struct {
	Action     Action
	TableName  string
	Table      *schema.TableModel    // CreateTable only: the full table, fields included
	Field      *schema.FieldModel    // AddColumn, AlterColumn
	ForeignKey *schema.ForeignKeyModel // AddForeignKey
	Index      *schema.IndexModel    // AddIndex
}

// Validate reports a plan invariant error if the step lacks the
// payload its Action requires.
func (s MigrationStep) Validate() error {
	switch s.Action {
	case ActionCreateTable:
		if s.Table == nil {
			return fmt.Errorf("diffplan: CreateTable step for %q missing Table payload", s.TableName)
		}
	case ActionAddColumn, ActionAlterColumn:
		if s.Field == nil {
			return fmt.Errorf("diffplan: %s step for %q missing Field payload", s.Action, s.TableName)
		}
	case ActionAddForeignKey:
		if s.ForeignKey == nil {
			return fmt.Errorf("diffplan: AddForeignKey step for %q missing ForeignKey payload", s.TableName)
		}
	case ActionAddIndex:
		if s.Index == nil {
			return fmt.Errorf("diffplan: AddIndex step for %q missing Index payload", s.TableName)
		}
	default:
		return fmt.Errorf("diffplan: step for %q has unknown action %q", s.TableName, s.Action)
	}
	return nil
}

// ExtrasReport records live-only artifacts the planner never emits
// removal steps for (§9 Open Questions: indexes-only).
type ExtrasReport struct {
	ExtraIndexes []ExtraIndex
}

// ExtraIndex is a live index with no corresponding normalized target
// index on the same table.
type ExtraIndex struct {
	TableName string
	Index     *schema.IndexModel
}

// MigrationPlan is the planner's full output.
type MigrationPlan struct {
	Steps        []MigrationStep
	ExtrasReport ExtrasReport
}
