package loader

import (
	"context"
	"database/sql"

	"github.com/dmdtool/dmd/internal/schema"
)

const listTablesQuery = `
SELECT TABLE_NAME
FROM INFORMATION_SCHEMA.TABLES
WHERE TABLE_SCHEMA = @schema AND TABLE_TYPE = 'BASE TABLE'
ORDER BY TABLE_NAME`

func (l *MSSQLLoader) listTables(ctx context.Context, schemaName string) ([]string, error) {
	rows, err := l.db.QueryContext(ctx, listTablesQuery, sql.Named("schema", schemaName))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

const listColumnsQuery = `
SELECT TABLE_NAME, COLUMN_NAME, DATA_TYPE, IS_NULLABLE,
       CHARACTER_MAXIMUM_LENGTH, NUMERIC_PRECISION, NUMERIC_SCALE
FROM INFORMATION_SCHEMA.COLUMNS
WHERE TABLE_SCHEMA = @schema
ORDER BY TABLE_NAME, ORDINAL_POSITION`

func (l *MSSQLLoader) loadColumns(ctx context.Context, schemaName string, tables map[string]*schema.TableModel) error {
	rows, err := l.db.QueryContext(ctx, listColumnsQuery, sql.Named("schema", schemaName))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			tableName, columnName, dataType, isNullable string
			charMaxLen, numericPrecision, numericScale   sql.NullInt64
		)
		if err := rows.Scan(&tableName, &columnName, &dataType, &isNullable,
			&charMaxLen, &numericPrecision, &numericScale); err != nil {
			return err
		}

		table, ok := tables[tableName]
		if !ok {
			continue
		}

		field := normalizeColumn(dataType, isNullable == "YES", charMaxLen, numericPrecision, numericScale)
		field.Name = columnName
		table.Fields = append(table.Fields, field)
	}
	return rows.Err()
}

const listPrimaryKeysQuery = `
SELECT tc.TABLE_NAME, kcu.COLUMN_NAME
FROM INFORMATION_SCHEMA.TABLE_CONSTRAINTS tc
JOIN INFORMATION_SCHEMA.KEY_COLUMN_USAGE kcu
  ON kcu.CONSTRAINT_NAME = tc.CONSTRAINT_NAME AND kcu.TABLE_SCHEMA = tc.TABLE_SCHEMA
WHERE tc.CONSTRAINT_TYPE = 'PRIMARY KEY' AND tc.TABLE_SCHEMA = @schema`

func (l *MSSQLLoader) listPrimaryKeyColumns(ctx context.Context, schemaName string) ([]tableColumn, error) {
	rows, err := l.db.QueryContext(ctx, listPrimaryKeysQuery, sql.Named("schema", schemaName))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTableColumns(rows)
}

const listIdentityColumnsQuery = `
SELECT t.name, c.name
FROM sys.columns c
JOIN sys.tables t ON t.object_id = c.object_id
JOIN sys.schemas s ON s.schema_id = t.schema_id
WHERE c.is_identity = 1 AND s.name = @schema`

func (l *MSSQLLoader) listIdentityColumns(ctx context.Context, schemaName string) ([]tableColumn, error) {
	rows, err := l.db.QueryContext(ctx, listIdentityColumnsQuery, sql.Named("schema", schemaName))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTableColumns(rows)
}

func scanTableColumns(rows Rows) ([]tableColumn, error) {
	var out []tableColumn
	for rows.Next() {
		var tc tableColumn
		if err := rows.Scan(&tc.table, &tc.name); err != nil {
			return nil, err
		}
		out = append(out, tc)
	}
	return out, rows.Err()
}

const listForeignKeysQuery = `
SELECT tp.name, cp.name, tr.name, cr.name, cp.is_nullable
FROM sys.foreign_keys fk
JOIN sys.foreign_key_columns fkc ON fkc.constraint_object_id = fk.object_id
JOIN sys.tables tp ON tp.object_id = fkc.parent_object_id
JOIN sys.columns cp ON cp.object_id = fkc.parent_object_id AND cp.column_id = fkc.parent_column_id
JOIN sys.tables tr ON tr.object_id = fkc.referenced_object_id
JOIN sys.columns cr ON cr.object_id = fkc.referenced_object_id AND cr.column_id = fkc.referenced_column_id
JOIN sys.schemas s ON s.schema_id = tp.schema_id
WHERE s.name = @schema
ORDER BY tp.name, fk.name`

func (l *MSSQLLoader) loadForeignKeys(ctx context.Context, schemaName string, tables map[string]*schema.TableModel) error {
	rows, err := l.db.QueryContext(ctx, listForeignKeysQuery, sql.Named("schema", schemaName))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var tableName, columnName, targetTable, targetColumn string
		var nullable bool
		if err := rows.Scan(&tableName, &columnName, &targetTable, &targetColumn, &nullable); err != nil {
			return err
		}

		table, ok := tables[tableName]
		if !ok {
			continue
		}

		// metadata alone can't distinguish a OneToOne from a OneToMany
		// relation; the planner matches existing foreign keys by
		// target-table identity only (§4.5), never by relationship
		// type, so this default never affects diffing.
		table.ForeignKeys = append(table.ForeignKeys, &schema.ForeignKeyModel{
			ColumnName:       columnName,
			TargetTable:      targetTable,
			TargetColumnName: targetColumn,
			IsNullable:       nullable,
			RelationshipType: schema.OneToOne,
		})
	}
	return rows.Err()
}

const listIndexesQuery = `
SELECT t.name, i.name, i.is_unique, c.name
FROM sys.indexes i
JOIN sys.tables t ON t.object_id = i.object_id
JOIN sys.schemas s ON s.schema_id = t.schema_id
JOIN sys.index_columns ic ON ic.object_id = i.object_id AND ic.index_id = i.index_id
JOIN sys.columns c ON c.object_id = ic.object_id AND c.column_id = ic.column_id
WHERE i.is_primary_key = 0 AND i.name IS NOT NULL AND s.name = @schema
ORDER BY t.name, i.name, ic.key_ordinal`

func (l *MSSQLLoader) loadIndexes(ctx context.Context, schemaName string, tables map[string]*schema.TableModel) error {
	rows, err := l.db.QueryContext(ctx, listIndexesQuery, sql.Named("schema", schemaName))
	if err != nil {
		return err
	}
	defer rows.Close()

	order := make(map[string][]string)   // "table\x00index" -> column list, in scan order
	unique := make(map[string]bool)
	tableOfIndex := make(map[string]string)
	indexNamesByTable := make(map[string][]string)

	for rows.Next() {
		var tableName, indexName, columnName string
		var isUnique bool
		if err := rows.Scan(&tableName, &indexName, &isUnique, &columnName); err != nil {
			return err
		}

		key := tableName + "\x00" + indexName
		if _, seen := order[key]; !seen {
			tableOfIndex[key] = tableName
			indexNamesByTable[tableName] = append(indexNamesByTable[tableName], key)
		}
		order[key] = append(order[key], columnName)
		unique[key] = isUnique
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for tableName, keys := range indexNamesByTable {
		table, ok := tables[tableName]
		if !ok {
			continue
		}
		for _, key := range keys {
			table.Indexes = append(table.Indexes, &schema.IndexModel{
				Fields:   order[key],
				IsUnique: unique[key],
				Kind:     schema.NonClustered,
			})
		}
	}

	return nil
}
