package exporter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dmdtool/dmd/internal/schema"
)

// renderTable reconstructs a ".dmd" table file. Mixins aren't tracked
// by identity once a model has round-tripped through the loader, so
// the exporter re-detects which mixins apply the same structural way
// the parser's invariant checker would (§4.7, §9): every one of the
// mixin's non-optional fields must be present on the table by name.
func renderTable(table *schema.TableModel, mixins []*schema.MixinModel) string {
	var applied []*schema.MixinModel
	excluded := make(map[string]bool)
	for _, m := range mixins {
		if !m.AppliesTo(table) {
			continue
		}
		applied = append(applied, m)
		for _, f := range m.Fields {
			excluded[strings.ToLower(f.Name)] = true
		}
	}

	header := "model " + table.Name
	if len(applied) > 0 {
		names := make([]string, len(applied))
		for i, m := range applied {
			names[i] = m.Name
		}
		header += " with " + strings.Join(names, ", ")
	}

	var lines []string
	lines = append(lines, renderRelationLines(table, excluded)...)
	lines = append(lines, renderFieldLines(table, excluded)...)
	lines = append(lines, renderIndexLines(table)...)

	attrNames := make([]string, 0, len(table.Attributes))
	for name := range table.Attributes {
		attrNames = append(attrNames, name)
	}
	sort.Strings(attrNames)
	for _, name := range attrNames {
		lines = append(lines, "@"+name)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s {\n", header)
	for _, line := range lines {
		fmt.Fprintf(&b, "\t%s\n", line)
	}
	b.WriteString("}\n")
	return b.String()
}
