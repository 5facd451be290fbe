package dslparser

import (
	"strings"

	"github.com/dmdtool/dmd/internal/schema"
	"github.com/dmdtool/dmd/internal/types"
)

// relationColumn resolves the local FK column name from the target
// table name and optional alias, per the three alias forms in §4.3:
//
//	alias absent        -> "{X}ID"
//	alias ends with "ID" -> alias verbatim
//	otherwise            -> "{alias}{X}ID"
func relationColumn(target, alias string) string {
	if alias == "" {
		return target + "ID"
	}
	if strings.HasSuffix(strings.ToLower(alias), "id") {
		return alias
	}
	return alias + target + "ID"
}

// buildRelation lowers a parsed relation line into both a FieldModel
// and a ForeignKeyModel, as required by §4.3: "Both a FieldModel and a
// ForeignKeyModel are emitted for each relationship line; type is
// int, targetColumnName = {X}ID."
func buildRelation(optional bool, plural bool, target string, targetNullable bool, alias string, aliasNullable bool) (*schema.FieldModel, *schema.ForeignKeyModel) {
	column := relationColumn(target, alias)
	nullable := targetNullable || aliasNullable

	relType := schema.OneToOne
	if plural {
		relType = schema.OneToMany
	}

	field := &schema.FieldModel{
		Name:       column,
		Type:       types.SqlInt,
		IsNullable: nullable,
		IsOptional: optional,
	}

	fk := &schema.ForeignKeyModel{
		ColumnName:       column,
		TargetTable:      target,
		TargetColumnName: target + "ID",
		IsNullable:       nullable,
		RelationshipType: relType,
	}

	return field, fk
}
