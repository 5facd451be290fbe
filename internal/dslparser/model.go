package dslparser

import (
	"strings"

	"github.com/dmdtool/dmd/internal/schema"
	"github.com/dmdtool/dmd/internal/types"
)

// pkOverrideTypes are the only simple types §4.3 allows to precede a
// "model <Name>" header and override the synthesized primary key type.
var pkOverrideTypes = map[string]types.DmdType{
	"guid":     types.DmdGuid,
	"long":     types.DmdLong,
	"bool":     types.DmdBool,
	"float":    types.DmdFloat,
	"datetime": types.DmdDateTime,
}

func buildTable(block rawBlock, mixins *schema.DatabaseModel) (*schema.TableModel, error) {
	m := modelHeaderRe.FindStringSubmatch(block.Header)
	if m == nil {
		return nil, newParseError(block.File, block.HeaderLine, "malformed model header %q", block.Header)
	}

	overrideTok, name, withMixin := m[1], m[2], m[3]

	table := &schema.TableModel{Name: name}

	pk, err := synthesizePrimaryKey(block.File, block.HeaderLine, name, overrideTok)
	if err != nil {
		return nil, err
	}
	table.Fields = append(table.Fields, pk)

	if err := processTableBody(table, block.Body); err != nil {
		return nil, err
	}

	if withMixin != "" {
		mixin := mixins.MixinByName(withMixin)
		if mixin == nil {
			return nil, newReferenceError(block.File, block.HeaderLine, "mixin %q referenced by model %q but not loaded", withMixin, name)
		}
		table.ApplyMixin(mixin)
	}

	finalizeTable(table)

	return table, nil
}

// synthesizePrimaryKey implements the PK-synthesis rule of §4.3: a
// bare "model <Name>" gets an int identity PK named "<Name>ID"; an
// optional simple-type prefix overrides the type; explicit "int" is a
// hard error; "guid" always disables identity.
func synthesizePrimaryKey(file string, line int, tableName, overrideTok string) (*schema.FieldModel, error) {
	pk := &schema.FieldModel{
		Name:         tableName + "ID",
		IsPrimaryKey: true,
		IsIdentity:   true,
	}

	if overrideTok == "" {
		pk.Type = types.SqlInt
		return pk, nil
	}

	if strings.EqualFold(overrideTok, "int") {
		return nil, newTypeError(file, line, "model %q: explicit 'int' primary key type is not allowed (omit the type to get the default int identity PK)", tableName)
	}

	dmd, ok := pkOverrideTypes[strings.ToLower(overrideTok)]
	if !ok {
		return nil, newTypeError(file, line, "model %q: unknown primary key type %q", tableName, overrideTok)
	}

	pk.Type = types.DmdToSql(dmd)
	if types.IsGuidLike(pk.Type) {
		pk.IsIdentity = false
	}
	return pk, nil
}

// finalizeTable applies post-parse, whole-table invariants: the
// @NoIdentity attribute clears identity on the PK regardless of type
// (§4.3).
func finalizeTable(table *schema.TableModel) {
	if !table.HasAttribute("noidentity") {
		return
	}
	if pk := table.PrimaryKeyField(); pk != nil {
		pk.IsIdentity = false
	}
}

func extendTable(block rawBlock, db *schema.DatabaseModel) error {
	m := extendsHeaderRe.FindStringSubmatch(block.Header)
	if m == nil {
		return newParseError(block.File, block.HeaderLine, "malformed extends header %q", block.Header)
	}

	name := m[1]
	table := db.TableByName(name)
	if table == nil {
		return newReferenceError(block.File, block.HeaderLine, "extends of unknown table %q", name)
	}

	if err := processTableBody(table, block.Body); err != nil {
		return err
	}
	finalizeTable(table)
	return nil
}
