package loader

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmdtool/dmd/internal/types"
)

// fakeRows is an in-memory Rows over a fixed set of rows, each a slice
// of values matching the column order the loader scans.
type fakeRows struct {
	rows [][]any
	pos  int
}

func (r *fakeRows) Next() bool {
	if r.pos >= len(r.rows) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	src := r.rows[r.pos-1]
	for i, d := range dest {
		switch v := d.(type) {
		case *string:
			*v = src[i].(string)
		case *bool:
			*v = src[i].(bool)
		case *sql.NullInt64:
			*v = src[i].(sql.NullInt64)
		default:
			panic("fakeRows: unsupported scan target")
		}
	}
	return nil
}

func (r *fakeRows) Close() error { return nil }
func (r *fakeRows) Err() error   { return nil }

// fakeQueryPort dispatches by a distinctive substring of the query
// text so a single fixture can back the whole Load call.
type fakeQueryPort struct {
	byQuery map[string][][]any
}

func (p *fakeQueryPort) QueryContext(_ context.Context, query string, _ ...any) (Rows, error) {
	for substr, rows := range p.byQuery {
		if strings.Contains(query, substr) {
			return &fakeRows{rows: rows}, nil
		}
	}
	return &fakeRows{}, nil
}

func nullInt(v int64) sql.NullInt64 {
	return sql.NullInt64{Int64: v, Valid: true}
}

func TestLoadAssemblesTablesColumnsKeysAndIndexes(t *testing.T) {
	port := &fakeQueryPort{byQuery: map[string][][]any{
		"FROM INFORMATION_SCHEMA.TABLES": {
			{"Post"},
			{"Author"},
		},
		"FROM INFORMATION_SCHEMA.COLUMNS": {
			{"Post", "PostID", "int", "NO", sql.NullInt64{}, sql.NullInt64{}, sql.NullInt64{}},
			{"Post", "Title", "nvarchar", "NO", nullInt(200), sql.NullInt64{}, sql.NullInt64{}},
			{"Post", "AuthorID", "int", "YES", sql.NullInt64{}, sql.NullInt64{}, sql.NullInt64{}},
			{"Author", "AuthorID", "int", "NO", sql.NullInt64{}, sql.NullInt64{}, sql.NullInt64{}},
		},
		"CONSTRAINT_TYPE = 'PRIMARY KEY'": {
			{"Post", "PostID"},
			{"Author", "AuthorID"},
		},
		"is_identity = 1": {
			{"Post", "PostID"},
			{"Author", "AuthorID"},
		},
		"sys.foreign_keys": {
			{"Post", "AuthorID", "Author", "AuthorID", true},
		},
		"sys.indexes": {
			{"Post", "IX_Post_Title", false, "Title"},
		},
	}}

	l := New(port, nil)
	db, err := l.Load(context.Background(), "dbo")
	require.NoError(t, err)

	require.NotNil(t, db.TableByName("Post"))
	require.NotNil(t, db.TableByName("Author"))

	post := db.TableByName("Post")
	pk := post.PrimaryKeyField()
	require.NotNil(t, pk)
	require.Equal(t, "PostID", pk.Name)
	require.True(t, pk.IsIdentity)

	title := post.FieldByName("Title")
	require.NotNil(t, title)
	require.Equal(t, types.SqlNVarChar, title.Type)
	require.Equal(t, 200, title.Precision)

	authorFK := post.ForeignKeyByColumn("AuthorID")
	require.NotNil(t, authorFK)
	require.Equal(t, "Author", authorFK.TargetTable)
	require.True(t, authorFK.IsNullable)

	require.Len(t, post.Indexes, 1)
	require.Equal(t, []string{"Title"}, post.Indexes[0].Fields)
	require.False(t, post.Indexes[0].IsUnique)
}

func TestNormalizeColumnMoneyBecomesFixedDecimal(t *testing.T) {
	f := normalizeColumn("money", false, sql.NullInt64{}, sql.NullInt64{}, sql.NullInt64{})
	require.Equal(t, types.SqlDecimal, f.Type)
	require.Equal(t, 19, f.Precision)
	require.Equal(t, 4, f.Scale)
}

func TestNormalizeColumnTextBecomesMaxVarchar(t *testing.T) {
	f := normalizeColumn("text", true, sql.NullInt64{}, sql.NullInt64{}, sql.NullInt64{})
	require.Equal(t, types.SqlVarChar, f.Type)
	require.Equal(t, types.MaxLengthMarker, f.Precision)
}

func TestNormalizeColumnUnsupportedTypeKeepsRawType(t *testing.T) {
	f := normalizeColumn("datetime2", false, sql.NullInt64{}, sql.NullInt64{}, sql.NullInt64{})
	require.Equal(t, "datetime2", f.RawType)
	_, _, _, _, ok := types.Info(f.Type)
	require.False(t, ok)
}

func TestNormalizeColumnMaxSizedVarcharFromNegativeLength(t *testing.T) {
	f := normalizeColumn("varchar", true, sql.NullInt64{Int64: -1, Valid: true}, sql.NullInt64{}, sql.NullInt64{})
	require.Equal(t, types.MaxLengthMarker, f.Precision)
}
