package exporter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dmdtool/dmd/internal/schema"
	"github.com/dmdtool/dmd/internal/types"
)

// renderFieldLines renders every field that is neither the PK nor an
// FK column, alphabetically by name; a field whose type falls outside
// the lattice becomes a "# <rawType> <name>" comment instead of a
// declaration (§4.7).
func renderFieldLines(table *schema.TableModel, excluded map[string]bool) []string {
	var plain []*schema.FieldModel
	for _, f := range table.Fields {
		if f.IsPrimaryKey || table.ForeignKeyByColumn(f.Name) != nil || excluded[strings.ToLower(f.Name)] {
			continue
		}
		plain = append(plain, f)
	}

	sort.Slice(plain, func(i, j int) bool {
		return strings.ToLower(plain[i].Name) < strings.ToLower(plain[j].Name)
	})

	lines := make([]string, 0, len(plain))
	for _, f := range plain {
		lines = append(lines, renderOneField(f))
	}
	return lines
}

func renderOneField(f *schema.FieldModel) string {
	if _, _, _, _, ok := types.Info(f.Type); !ok {
		rawType := f.RawType
		if rawType == "" {
			rawType = string(f.Type)
		}
		return fmt.Sprintf("# %s %s", rawType, f.Name)
	}

	decl := f.DmdTypeString()
	suffix := ""
	if f.IsNullable {
		suffix = "?"
	}
	return fmt.Sprintf("%s%s %s", decl, suffix, f.Name)
}
