package exporter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dmdtool/dmd/internal/schema"
)

// renderMixin reconstructs a ".dmdx" mixin file: a "mixin Name {"
// header, its relation lines, its fields (alphabetical, prefixed with
// "!" for isOptional fields mixin bodies accept on target tables), and
// its attributes.
func renderMixin(m *schema.MixinModel) string {
	var lines []string

	fakeTable := &schema.TableModel{Name: m.Name, Fields: m.Fields, ForeignKeys: m.ForeignKeys}
	lines = append(lines, renderRelationLines(fakeTable, nil)...)

	fields := make([]*schema.FieldModel, 0, len(m.Fields))
	for _, f := range m.Fields {
		if fakeTable.ForeignKeyByColumn(f.Name) != nil {
			continue
		}
		fields = append(fields, f)
	}
	sort.Slice(fields, func(i, j int) bool {
		return strings.ToLower(fields[i].Name) < strings.ToLower(fields[j].Name)
	})
	for _, f := range fields {
		line := renderOneField(f)
		if f.IsOptional {
			line = "!" + line
		}
		lines = append(lines, line)
	}

	attrNames := make([]string, 0, len(m.Attributes))
	for name := range m.Attributes {
		attrNames = append(attrNames, name)
	}
	sort.Strings(attrNames)
	for _, name := range attrNames {
		lines = append(lines, "@"+name)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "mixin %s {\n", m.Name)
	for _, line := range lines {
		fmt.Fprintf(&b, "\t%s\n", line)
	}
	b.WriteString("}\n")
	return b.String()
}
