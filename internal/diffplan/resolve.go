package diffplan

import "github.com/dmdtool/dmd/internal/schema"

// resolveIndexFieldNames lowers a DSL-level index field list to column
// names: any field that names a foreign-key target table on this
// table (case-insensitive) is replaced by that foreign key's local
// column name; anything else passes through unchanged. This is the
// sole place model-name references are lowered for index comparison
// (§4.5.1).
func resolveIndexFieldNames(fields []string, table *schema.TableModel) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		if fk := table.ForeignKeyByTargetTable(f); fk != nil {
			out[i] = fk.ColumnName
			continue
		}
		out[i] = f
	}
	return out
}
