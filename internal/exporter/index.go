package exporter

import (
	"fmt"
	"strings"

	"github.com/dmdtool/dmd/internal/schema"
)

// renderIndexLines renders every index that isn't the single-column PK
// index and isn't composed entirely of FK columns, mapping FK columns
// to their target table name for display (§4.7).
func renderIndexLines(table *schema.TableModel) []string {
	pk := table.PrimaryKeyField()

	var lines []string
	for _, idx := range table.Indexes {
		if pk != nil && len(idx.Fields) == 1 && strings.EqualFold(idx.Fields[0], pk.Name) {
			continue
		}

		displayFields := make([]string, len(idx.Fields))
		allFK := true
		for i, f := range idx.Fields {
			if fk := table.ForeignKeyByColumn(f); fk != nil {
				displayFields[i] = fk.TargetTable
			} else {
				displayFields[i] = f
				allFK = false
			}
		}
		if allFK {
			continue
		}

		keyword := "index"
		suffix := ""
		if idx.IsAlternateKey {
			keyword = "key"
		} else if idx.IsUnique {
			suffix = " @unique"
		}

		lines = append(lines, fmt.Sprintf("%s(%s)%s", keyword, strings.Join(displayFields, ", "), suffix))
	}
	return lines
}
