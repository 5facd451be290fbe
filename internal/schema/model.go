// Package schema contains the single canonical, language-neutral
// in-memory representation of a database schema — the shared shape
// produced by the DSL parser, produced by the live-schema loader, and
// consumed by the diff planner, migration runner, and exporter.
//
// Schema models are immutable once built except by the parser during
// construction and the loader during introspection; the planner
// consumes two models and produces a plan without mutating either.
package schema

import (
	"fmt"
	"strings"

	"github.com/dmdtool/dmd/internal/types"
)

// RelationshipType distinguishes a single-valued relation from a
// collection relation declared with "model"/"models" in the DSL.
type RelationshipType string

const (
	OneToOne  RelationshipType = "OneToOne"
	OneToMany RelationshipType = "OneToMany"
)

// IndexKind distinguishes the storage kind of an index.
type IndexKind string

const (
	Clustered    IndexKind = "Clustered"
	NonClustered IndexKind = "NonClustered"
)

// FieldModel is a single column declaration.
type FieldModel struct {
	Name          string
	Type          types.SqlType
	RawType       string // only meaningful when Type falls outside the lattice
	IsNullable    bool
	IsPrimaryKey  bool
	IsIdentity    bool
	IsOptional    bool // mixin-only: field may be absent on target tables
	Precision     int  // -1 (types.MaxLengthMarker) encodes MAX
	Scale         int
	Attributes    map[string]bool
}

// HasAttribute reports whether the named per-field attribute is present.
func (f *FieldModel) HasAttribute(name string) bool {
	if f == nil || f.Attributes == nil {
		return false
	}
	return f.Attributes[strings.ToLower(name)]
}

// SetAttribute marks the named per-field attribute present.
func (f *FieldModel) SetAttribute(name string) {
	if f.Attributes == nil {
		f.Attributes = make(map[string]bool)
	}
	f.Attributes[strings.ToLower(name)] = true
}

// SqlTypeString renders the canonical SQL declaration suffix for this field.
func (f *FieldModel) SqlTypeString() string {
	return types.SqlTypeString(f.Type, f.Precision, f.Scale, f.RawType)
}

// DmdTypeString renders the DSL declaration for this field (exporter use).
func (f *FieldModel) DmdTypeString() string {
	return types.DmdTypeString(f.Type, f.Precision, f.Scale)
}

// ForeignKeyModel is a single foreign-key relationship.
type ForeignKeyModel struct {
	ColumnName       string
	TargetTable      string
	TargetColumnName string
	IsNullable       bool
	RelationshipType RelationshipType
}

// IndexModel is a single index or alternate key declaration. Fields
// are retained verbatim from the DSL (column names, or model names
// that resolve to FK columns); resolution happens in the planner and
// the runner, never here.
type IndexModel struct {
	Fields         []string
	IsUnique       bool
	IsAlternateKey bool
	Kind           IndexKind
}

// TableModel is a single table declaration.
type TableModel struct {
	Name          string
	Fields        []*FieldModel
	ForeignKeys   []*ForeignKeyModel
	Indexes       []*IndexModel
	Attributes    map[string]bool
	MixinsApplied []string
}

// HasAttribute reports whether the named table attribute is present.
func (t *TableModel) HasAttribute(name string) bool {
	if t == nil || t.Attributes == nil {
		return false
	}
	return t.Attributes[strings.ToLower(name)]
}

// SetAttribute marks the named table attribute present.
func (t *TableModel) SetAttribute(name string) {
	if t.Attributes == nil {
		t.Attributes = make(map[string]bool)
	}
	t.Attributes[strings.ToLower(name)] = true
}

// PrimaryKeyField returns the table's single primary-key field, or nil
// if the invariant (exactly one PK field) has not yet been established.
func (t *TableModel) PrimaryKeyField() *FieldModel {
	for _, f := range t.Fields {
		if f.IsPrimaryKey {
			return f
		}
	}
	return nil
}

// FieldByName looks up a field case-insensitively.
func (t *TableModel) FieldByName(name string) *FieldModel {
	for _, f := range t.Fields {
		if strings.EqualFold(f.Name, name) {
			return f
		}
	}
	return nil
}

// ForeignKeyByColumn looks up a foreign key by its local column name,
// case-insensitively.
func (t *TableModel) ForeignKeyByColumn(column string) *ForeignKeyModel {
	for _, fk := range t.ForeignKeys {
		if strings.EqualFold(fk.ColumnName, column) {
			return fk
		}
	}
	return nil
}

// ForeignKeyByTargetTable looks up a foreign key by its referenced
// table name, case-insensitively. This is the sole lookup the planner
// and the index-field resolver use (§4.5.1) — a table may declare at
// most one FK to a given target table under this convention.
func (t *TableModel) ForeignKeyByTargetTable(targetTable string) *ForeignKeyModel {
	for _, fk := range t.ForeignKeys {
		if strings.EqualFold(fk.TargetTable, targetTable) {
			return fk
		}
	}
	return nil
}

// MixinModel is a named, reusable set of fields and foreign keys. It
// has the same shape as TableModel minus identity/PK obligations.
type MixinModel struct {
	Name        string
	Fields      []*FieldModel
	ForeignKeys []*ForeignKeyModel
	Attributes  map[string]bool
}

// HasAttribute reports whether the named mixin attribute is present.
func (m *MixinModel) HasAttribute(name string) bool {
	if m == nil || m.Attributes == nil {
		return false
	}
	return m.Attributes[strings.ToLower(name)]
}

// SetAttribute marks the named mixin attribute present.
func (m *MixinModel) SetAttribute(name string) {
	if m.Attributes == nil {
		m.Attributes = make(map[string]bool)
	}
	m.Attributes[strings.ToLower(name)] = true
}

// FieldByName looks up a mixin field case-insensitively.
func (m *MixinModel) FieldByName(name string) *FieldModel {
	for _, f := range m.Fields {
		if strings.EqualFold(f.Name, name) {
			return f
		}
	}
	return nil
}

// DatabaseModel is the top-level container: tables and mixins by name.
// Name comparisons are case-insensitive throughout; canonical casing
// (first-seen spelling) is preserved for emission. Insertion order is
// preserved for deterministic CREATE TABLE / emission ordering.
type DatabaseModel struct {
	Tables []*TableModel
	Mixins []*MixinModel
}

// NewDatabaseModel returns an empty model ready for construction.
func NewDatabaseModel() *DatabaseModel {
	return &DatabaseModel{}
}

// TableByName looks up a table case-insensitively.
func (d *DatabaseModel) TableByName(name string) *TableModel {
	for _, t := range d.Tables {
		if strings.EqualFold(t.Name, name) {
			return t
		}
	}
	return nil
}

// MixinByName looks up a mixin case-insensitively.
func (d *DatabaseModel) MixinByName(name string) *MixinModel {
	for _, m := range d.Mixins {
		if strings.EqualFold(m.Name, name) {
			return m
		}
	}
	return nil
}

// AddTable appends a table, erroring if its name collides
// case-insensitively with an already-added table.
func (d *DatabaseModel) AddTable(t *TableModel) error {
	if existing := d.TableByName(t.Name); existing != nil {
		return fmt.Errorf("schema: duplicate table %q", t.Name)
	}
	d.Tables = append(d.Tables, t)
	return nil
}

// AddMixin appends a mixin, erroring if its name collides
// case-insensitively with an already-added mixin.
func (d *DatabaseModel) AddMixin(m *MixinModel) error {
	if existing := d.MixinByName(m.Name); existing != nil {
		return fmt.Errorf("schema: duplicate mixin %q", m.Name)
	}
	d.Mixins = append(d.Mixins, m)
	return nil
}

// ApplyMixin merges a mixin's fields and foreign keys into a table and
// records the mixin name in MixinsApplied, per §4.3's "with <Mixin>"
// rule and §9's "mixin merging... record the applied-mixin name on the
// table so the exporter can re-detect it structurally."
func (t *TableModel) ApplyMixin(m *MixinModel) {
	if m == nil {
		return
	}
	for _, f := range m.Fields {
		cp := *f
		t.Fields = append(t.Fields, &cp)
	}
	for _, fk := range m.ForeignKeys {
		cp := *fk
		t.ForeignKeys = append(t.ForeignKeys, &cp)
	}
	t.MixinsApplied = append(t.MixinsApplied, m.Name)
}

// AppliesTo reports whether every field of mixin m is either present
// on table t by name, or marked optional — the exporter's structural
// mixin-detection rule (§4.7).
func (m *MixinModel) AppliesTo(t *TableModel) bool {
	if m == nil || t == nil || len(m.Fields) == 0 {
		return false
	}
	for _, mf := range m.Fields {
		if mf.IsOptional {
			continue
		}
		if t.FieldByName(mf.Name) == nil {
			return false
		}
	}
	return true
}
