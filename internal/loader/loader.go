// Package loader ingests a live database schema into a
// schema.DatabaseModel through a narrow query port, so the rest of the
// core never depends on a concrete driver (mirrors the teacher's
// introspect.Introspecter registry, narrowed to the one normative
// dialect this tool ships).
package loader

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/dmdtool/dmd/internal/schema"
)

// Loader returns a complete schema model for a given namespace.
type Loader interface {
	Load(ctx context.Context, schemaName string) (*schema.DatabaseModel, error)
}

// Rows is the narrow cursor contract the loader consumes; *sql.Rows
// satisfies it without modification.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Close() error
	Err() error
}

// QueryPort is the only capability the loader needs from a database
// connection.
type QueryPort interface {
	QueryContext(ctx context.Context, query string, args ...any) (Rows, error)
}

// MSSQLLoader introspects a SQL Server-style database: the one
// dialect this tool is normative for (§1 NON-GOALS).
type MSSQLLoader struct {
	db  QueryPort
	log *logrus.Logger
}

// New returns a Loader backed by db. log may be nil; a nil logger logs
// nothing.
func New(db QueryPort, log *logrus.Logger) *MSSQLLoader {
	return &MSSQLLoader{db: db, log: log}
}

func (l *MSSQLLoader) debugf(format string, args ...any) {
	if l.log == nil {
		return
	}
	l.log.Debugf(format, args...)
}

// Load introspects every base table in schemaName and returns the
// assembled model: tables and fields first, then primary keys and
// identity columns, then foreign keys, then non-PK indexes.
func (l *MSSQLLoader) Load(ctx context.Context, schemaName string) (*schema.DatabaseModel, error) {
	db := schema.NewDatabaseModel()

	tableNames, err := l.listTables(ctx, schemaName)
	if err != nil {
		return nil, fmt.Errorf("loader: listing tables: %w", err)
	}
	l.debugf("loader: found %d base tables in schema %q", len(tableNames), schemaName)

	tables := make(map[string]*schema.TableModel, len(tableNames))
	for _, name := range tableNames {
		t := &schema.TableModel{Name: name}
		tables[name] = t
		if err := db.AddTable(t); err != nil {
			return nil, fmt.Errorf("loader: %w", err)
		}
	}

	if err := l.loadColumns(ctx, schemaName, tables); err != nil {
		return nil, fmt.Errorf("loader: listing columns: %w", err)
	}

	pkColumns, err := l.listPrimaryKeyColumns(ctx, schemaName)
	if err != nil {
		return nil, fmt.Errorf("loader: listing primary keys: %w", err)
	}
	identityColumns, err := l.listIdentityColumns(ctx, schemaName)
	if err != nil {
		return nil, fmt.Errorf("loader: listing identity columns: %w", err)
	}
	applyKeyFlags(tables, pkColumns, identityColumns)

	if err := l.loadForeignKeys(ctx, schemaName, tables); err != nil {
		return nil, fmt.Errorf("loader: listing foreign keys: %w", err)
	}

	if err := l.loadIndexes(ctx, schemaName, tables); err != nil {
		return nil, fmt.Errorf("loader: listing indexes: %w", err)
	}

	return db, nil
}

type tableColumn struct {
	table string
	name  string
}

func applyKeyFlags(tables map[string]*schema.TableModel, pk, identity []tableColumn) {
	for _, tc := range pk {
		if t, ok := tables[tc.table]; ok {
			if f := t.FieldByName(tc.name); f != nil {
				f.IsPrimaryKey = true
			}
		}
	}
	for _, tc := range identity {
		if t, ok := tables[tc.table]; ok {
			if f := t.FieldByName(tc.name); f != nil {
				f.IsIdentity = true
			}
		}
	}
}
