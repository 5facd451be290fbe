package runner

import (
	"fmt"
	"strings"

	"github.com/dmdtool/dmd/internal/schema"
	"github.com/dmdtool/dmd/internal/types"
)

// quote brackets a single identifier, the canonical SQL Server style
// identifier quoting (§4.6).
func quote(ident string) string {
	return "[" + ident + "]"
}

func nullability(nullable bool) string {
	if nullable {
		return "NULL"
	}
	return "NOT NULL"
}

func columnDefSQL(f *schema.FieldModel) string {
	parts := []string{quote(f.Name), f.SqlTypeString()}
	if f.IsIdentity {
		parts = append(parts, "IDENTITY(1,1)")
	}
	parts = append(parts, nullability(f.IsNullable))
	return strings.Join(parts, " ")
}

// buildCreateTableSQL emits the table's single CREATE TABLE statement,
// fields in declaration order plus the PK constraint (§4.6).
func buildCreateTableSQL(table *schema.TableModel) string {
	var cols []string
	for _, f := range table.Fields {
		cols = append(cols, "\t"+columnDefSQL(f))
	}

	pk := table.PrimaryKeyField()
	pkConstraint := fmt.Sprintf("\tCONSTRAINT %s PRIMARY KEY (%s)", quote(pkName(table.Name)), quote(pk.Name))

	return fmt.Sprintf("CREATE TABLE %s (\n%s,\n%s\n)", quote(table.Name), strings.Join(cols, ",\n"), pkConstraint)
}

func pkName(table string) string {
	return "PK_" + table
}

// buildAddColumnStatements emits the ADD COLUMN statement plus, for a
// nullable column, a follow-up that drops the synthetic default
// constraint SQL Server names automatically (§4.6: the ADD always
// carries a default so existing rows get a value; only a NOT NULL
// column keeps it permanently).
func buildAddColumnStatements(table string, f *schema.FieldModel) []string {
	def := columnDefSQL(f)
	stmt := fmt.Sprintf("ALTER TABLE %s ADD %s DEFAULT %s", quote(table), def, defaultLiteral(f))

	if f.IsNullable {
		return []string{stmt, dropSyntheticDefaultSQL(table, f.Name)}
	}
	return []string{stmt}
}

func dropSyntheticDefaultSQL(table, column string) string {
	return fmt.Sprintf(`DECLARE @dmd_df nvarchar(256);
SELECT @dmd_df = dc.name
FROM sys.default_constraints dc
JOIN sys.columns c ON dc.parent_object_id = c.object_id AND dc.parent_column_id = c.column_id
WHERE dc.parent_object_id = OBJECT_ID(N'%s') AND c.name = N'%s';
IF @dmd_df IS NOT NULL
    EXEC('ALTER TABLE %s DROP CONSTRAINT [' + @dmd_df + ']')`, table, column, quote(table))
}

// buildAlterColumnSQL emits the ALTER COLUMN statement, independent of
// the data-safety probe (the probe decides whether this is called at
// all for a narrowing change).
func buildAlterColumnSQL(table string, f *schema.FieldModel) string {
	return fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s %s %s", quote(table), quote(f.Name), f.SqlTypeString(), nullability(f.IsNullable))
}

// buildAddForeignKeyStatements emits the NOCHECK-add / CHECK pair plus
// the companion non-clustered index on the FK column (§4.6).
func buildAddForeignKeyStatements(table string, fk *schema.ForeignKeyModel) []string {
	name := fkName(table, fk.ColumnName)
	add := fmt.Sprintf("ALTER TABLE %s WITH NOCHECK ADD CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s(%s)",
		quote(table), quote(name), quote(fk.ColumnName), quote(fk.TargetTable), quote(fk.TargetColumnName))
	check := fmt.Sprintf("ALTER TABLE %s CHECK CONSTRAINT %s", quote(table), quote(name))

	idx := &schema.IndexModel{Fields: []string{fk.ColumnName}, Kind: schema.NonClustered}
	return []string{add, check, buildAddIndexSQL(table, idx)}
}

func fkName(table, column string) string {
	return truncateIdentifier(fmt.Sprintf("FK_%s_%s", table, column))
}

// buildAddIndexSQL emits the existence-guarded CREATE INDEX statement
// (§4.6, AddIndex).
func buildAddIndexSQL(table string, idx *schema.IndexModel) string {
	name := indexName(table, idx)

	var kind string
	if idx.Kind == schema.Clustered {
		kind = "CLUSTERED"
	} else {
		kind = "NONCLUSTERED"
	}

	var uniqueKw string
	if idx.IsUnique {
		uniqueKw = "UNIQUE "
	}

	cols := make([]string, len(idx.Fields))
	for i, f := range idx.Fields {
		cols[i] = quote(f)
	}

	return fmt.Sprintf(
		"IF NOT EXISTS (SELECT 1 FROM sys.indexes WHERE name = N'%s' AND object_id = OBJECT_ID(N'[dbo].%s'))\nBEGIN\n\tCREATE %s%s INDEX %s ON [dbo].%s(%s)\nEND",
		name, quote(table), uniqueKw, kind, quote(name), quote(table), strings.Join(cols, ", "),
	)
}

// defaultLiteral picks the backfill default for a new NOT NULL column
// by type family (§4.6): integer/decimal/float default to 0 except an
// "ID"-suffixed column, which defaults to 1; bit defaults to 0;
// datetime families to GETDATE(); char/varchar/text families to '';
// uniqueidentifier to NEWID().
func defaultLiteral(f *schema.FieldModel) string {
	switch {
	case f.Type == types.SqlBit:
		return "0"
	case f.Type == types.SqlDateTime:
		return "GETDATE()"
	case f.Type == types.SqlUniqueIdentifier:
		return "NEWID()"
	case isCharFamily(f.Type):
		return "''"
	case isNumericFamily(f.Type):
		if strings.HasSuffix(strings.ToUpper(f.Name), "ID") {
			return "1"
		}
		return "0"
	default:
		return "0"
	}
}

func isCharFamily(t types.SqlType) bool {
	switch t {
	case types.SqlVarChar, types.SqlNVarChar, types.SqlChar, types.SqlNChar, types.SqlText, types.SqlNText:
		return true
	}
	return false
}

func isNumericFamily(t types.SqlType) bool {
	switch t {
	case types.SqlInt, types.SqlBigInt, types.SqlSmallInt, types.SqlTinyInt,
		types.SqlDecimal, types.SqlNumeric, types.SqlMoney, types.SqlSmallMoney, types.SqlFloat:
		return true
	}
	return false
}
