package exporter

import (
	"fmt"
	"strings"

	"github.com/dmdtool/dmd/internal/schema"
)

// renderRelationLines renders one relation line per foreign key, using
// "model"/"models" per relationshipType, a "?" marker when the
// relation is nullable, and an "as <semanticName>" clause when the
// local column name isn't the conventional "{Target}ID" (§4.7).
// excluded skips foreign keys owned by an applied mixin, keyed by
// lowercased local column name, the same way renderFieldLines excludes
// mixin-owned fields; pass nil when nothing needs excluding.
func renderRelationLines(table *schema.TableModel, excluded map[string]bool) []string {
	lines := make([]string, 0, len(table.ForeignKeys))
	for _, fk := range table.ForeignKeys {
		if excluded[strings.ToLower(fk.ColumnName)] {
			continue
		}

		keyword := "model"
		if fk.RelationshipType == schema.OneToMany {
			keyword = "models"
		}

		nullMark := ""
		if fk.IsNullable {
			nullMark = "?"
		}

		line := fmt.Sprintf("%s %s%s", keyword, fk.TargetTable, nullMark)
		if alias, ok := semanticAlias(fk.ColumnName, fk.TargetTable); ok {
			line = fmt.Sprintf("%s as %s", line, alias)
		}
		lines = append(lines, line)
	}
	return lines
}

// semanticAlias reverses relationColumn's three-way rule: if column is
// the conventional "{Target}ID", no alias is needed. If column ends
// with "{Target}ID" (the alias-plus-target-plus-ID form), the alias is
// whatever precedes that suffix. Otherwise column itself ends in "id"
// and was carried through verbatim, so the alias is column unchanged.
func semanticAlias(column, target string) (string, bool) {
	conventional := target + "ID"
	if strings.EqualFold(column, conventional) {
		return "", false
	}
	if alias, ok := stripSuffixFold(column, conventional); ok {
		return alias, true
	}
	return column, true
}

func stripSuffixFold(s, suffix string) (string, bool) {
	if len(s) <= len(suffix) || !strings.EqualFold(s[len(s)-len(suffix):], suffix) {
		return "", false
	}
	return s[:len(s)-len(suffix)], true
}
