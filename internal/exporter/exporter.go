// Package exporter renders a schema.DatabaseModel back to DSL source,
// closing the round-trip the parser opens (§4.7). One file is emitted
// per table (conventionally ".dmd") and one per mixin (".dmdx"), so a
// table's "with <Mixin>" clause always resolves when the exported
// tree is re-parsed.
package exporter

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmdtool/dmd/internal/schema"
)

// Export writes one DSL file per table and one per mixin into dir.
func Export(model *schema.DatabaseModel, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("exporter: creating %s: %w", dir, err)
	}

	for _, mixin := range model.Mixins {
		body := renderMixin(mixin)
		path := filepath.Join(dir, mixin.Name+".dmdx")
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			return fmt.Errorf("exporter: writing %s: %w", path, err)
		}
	}

	for _, table := range model.Tables {
		body := renderTable(table, model.Mixins)
		path := filepath.Join(dir, table.Name+".dmd")
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			return fmt.Errorf("exporter: writing %s: %w", path, err)
		}
	}

	return nil
}
