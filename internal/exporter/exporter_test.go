package exporter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmdtool/dmd/internal/schema"
	"github.com/dmdtool/dmd/internal/types"
)

func intField(name string, pk, identity bool) *schema.FieldModel {
	return &schema.FieldModel{Name: name, Type: types.SqlInt, IsPrimaryKey: pk, IsIdentity: identity}
}

func TestRenderTableHeaderWithoutMixin(t *testing.T) {
	table := &schema.TableModel{
		Name:   "Post",
		Fields: []*schema.FieldModel{intField("PostID", true, true)},
	}
	body := renderTable(table, nil)
	require.True(t, strings.HasPrefix(body, "model Post {\n"))
}

func TestRenderTableHeaderWithSingleMixin(t *testing.T) {
	mixin := &schema.MixinModel{
		Name: "Auditable",
		Fields: []*schema.FieldModel{
			{Name: "CreatedAt", Type: types.SqlDateTime},
		},
	}
	table := &schema.TableModel{
		Name: "Post",
		Fields: []*schema.FieldModel{
			intField("PostID", true, true),
			{Name: "CreatedAt", Type: types.SqlDateTime},
		},
	}
	body := renderTable(table, []*schema.MixinModel{mixin})
	require.True(t, strings.HasPrefix(body, "model Post with Auditable {\n"))
	require.NotContains(t, body, "CreatedAt")
}

func TestRenderTableHeaderWithMultipleMixins(t *testing.T) {
	auditable := &schema.MixinModel{
		Name:   "Auditable",
		Fields: []*schema.FieldModel{{Name: "CreatedAt", Type: types.SqlDateTime}},
	}
	sluggable := &schema.MixinModel{
		Name:   "Sluggable",
		Fields: []*schema.FieldModel{{Name: "Slug", Type: types.SqlNVarChar, Precision: 50}},
	}
	table := &schema.TableModel{
		Name: "Post",
		Fields: []*schema.FieldModel{
			intField("PostID", true, true),
			{Name: "CreatedAt", Type: types.SqlDateTime},
			{Name: "Slug", Type: types.SqlNVarChar, Precision: 50},
		},
	}
	body := renderTable(table, []*schema.MixinModel{auditable, sluggable})
	require.True(t, strings.HasPrefix(body, "model Post with Auditable, Sluggable {\n"))
	require.NotContains(t, body, "\tCreatedAt")
	require.NotContains(t, body, "\tSlug")
}

func TestRenderTableMixinDoesNotApplyWhenFieldMissing(t *testing.T) {
	mixin := &schema.MixinModel{
		Name:   "Auditable",
		Fields: []*schema.FieldModel{{Name: "CreatedAt", Type: types.SqlDateTime}},
	}
	table := &schema.TableModel{
		Name:   "Post",
		Fields: []*schema.FieldModel{intField("PostID", true, true)},
	}
	body := renderTable(table, []*schema.MixinModel{mixin})
	require.True(t, strings.HasPrefix(body, "model Post {\n"))
}

func TestRenderTableOptionalMixinFieldDoesNotBlockApplication(t *testing.T) {
	mixin := &schema.MixinModel{
		Name: "Auditable",
		Fields: []*schema.FieldModel{
			{Name: "CreatedAt", Type: types.SqlDateTime},
			{Name: "DeletedAt", Type: types.SqlDateTime, IsOptional: true},
		},
	}
	table := &schema.TableModel{
		Name: "Post",
		Fields: []*schema.FieldModel{
			intField("PostID", true, true),
			{Name: "CreatedAt", Type: types.SqlDateTime},
		},
	}
	body := renderTable(table, []*schema.MixinModel{mixin})
	require.Contains(t, body, "with Auditable")
}

func TestRenderTableFKAliasRoundTrip(t *testing.T) {
	table := &schema.TableModel{
		Name:   "Comment",
		Fields: []*schema.FieldModel{intField("CommentID", true, true)},
		ForeignKeys: []*schema.ForeignKeyModel{
			{ColumnName: "AuthorID", TargetTable: "Author", RelationshipType: schema.OneToOne},
			{ColumnName: "EditorID", TargetTable: "Author", RelationshipType: schema.OneToOne},
			{ColumnName: "ReviewerAuthorID", TargetTable: "Author", RelationshipType: schema.OneToOne},
		},
	}
	body := renderTable(table, nil)
	require.Contains(t, body, "\tmodel Author\n")
	require.Contains(t, body, "\tmodel Author as EditorID\n")
	require.Contains(t, body, "\tmodel Author as Reviewer\n")
}

func TestRenderTableFKCollectionUsesModelsKeyword(t *testing.T) {
	table := &schema.TableModel{
		Name:   "Comment",
		Fields: []*schema.FieldModel{intField("CommentID", true, true)},
		ForeignKeys: []*schema.ForeignKeyModel{
			{ColumnName: "AuthorID", TargetTable: "Author", RelationshipType: schema.OneToMany},
		},
	}
	body := renderTable(table, nil)
	require.Contains(t, body, "\tmodels Author\n")
}

func TestRenderTableNullableFKGetsQuestionMark(t *testing.T) {
	table := &schema.TableModel{
		Name:   "Comment",
		Fields: []*schema.FieldModel{intField("CommentID", true, true)},
		ForeignKeys: []*schema.ForeignKeyModel{
			{ColumnName: "AuthorID", TargetTable: "Author", IsNullable: true, RelationshipType: schema.OneToOne},
		},
	}
	body := renderTable(table, nil)
	require.Contains(t, body, "\tmodel Author?\n")
}

func TestRenderTableUnsupportedTypeBecomesComment(t *testing.T) {
	table := &schema.TableModel{
		Name: "Event",
		Fields: []*schema.FieldModel{
			intField("EventID", true, true),
			{Name: "Occurred", Type: types.SqlType("datetime2"), RawType: "datetime2"},
		},
	}
	body := renderTable(table, nil)
	require.Contains(t, body, "\t# datetime2 Occurred\n")
}

func TestRenderTableFieldsAreAlphabetical(t *testing.T) {
	table := &schema.TableModel{
		Name: "Post",
		Fields: []*schema.FieldModel{
			intField("PostID", true, true),
			{Name: "Zeta", Type: types.SqlInt},
			{Name: "Alpha", Type: types.SqlInt},
			{Name: "Mango", Type: types.SqlInt},
		},
	}
	body := renderTable(table, nil)
	alphaIdx := strings.Index(body, "Alpha")
	mangoIdx := strings.Index(body, "Mango")
	zetaIdx := strings.Index(body, "Zeta")
	require.True(t, alphaIdx < mangoIdx)
	require.True(t, mangoIdx < zetaIdx)
}

func TestRenderTableOmitsSingleColumnPKIndex(t *testing.T) {
	table := &schema.TableModel{
		Name:    "Post",
		Fields:  []*schema.FieldModel{intField("PostID", true, true)},
		Indexes: []*schema.IndexModel{{Fields: []string{"PostID"}}},
	}
	body := renderTable(table, nil)
	require.NotContains(t, body, "index(")
}

func TestRenderTableOmitsAllForeignKeyIndex(t *testing.T) {
	table := &schema.TableModel{
		Name:   "Comment",
		Fields: []*schema.FieldModel{intField("CommentID", true, true)},
		ForeignKeys: []*schema.ForeignKeyModel{
			{ColumnName: "AuthorID", TargetTable: "Author", RelationshipType: schema.OneToOne},
			{ColumnName: "PostID", TargetTable: "Post", RelationshipType: schema.OneToOne},
		},
		Indexes: []*schema.IndexModel{{Fields: []string{"AuthorID", "PostID"}}},
	}
	body := renderTable(table, nil)
	require.NotContains(t, body, "index(")
}

func TestRenderTableIndexMapsFKColumnToTargetTableName(t *testing.T) {
	table := &schema.TableModel{
		Name: "Comment",
		Fields: []*schema.FieldModel{
			intField("CommentID", true, true),
			{Name: "Rank", Type: types.SqlInt},
		},
		ForeignKeys: []*schema.ForeignKeyModel{
			{ColumnName: "AuthorID", TargetTable: "Author", RelationshipType: schema.OneToOne},
		},
		Indexes: []*schema.IndexModel{{Fields: []string{"AuthorID", "Rank"}}},
	}
	body := renderTable(table, nil)
	require.Contains(t, body, "index(Author, Rank)")
}

func TestRenderTableAttributesEmitted(t *testing.T) {
	table := &schema.TableModel{
		Name:       "Post",
		Fields:     []*schema.FieldModel{intField("PostID", true, true)},
		Attributes: map[string]bool{"noidentity": true},
	}
	body := renderTable(table, nil)
	require.Contains(t, body, "\t@noidentity\n")
}

func TestRenderMixinFile(t *testing.T) {
	mixin := &schema.MixinModel{
		Name: "Auditable",
		Fields: []*schema.FieldModel{
			{Name: "CreatedAt", Type: types.SqlDateTime},
			{Name: "DeletedAt", Type: types.SqlDateTime, IsOptional: true},
		},
	}
	body := renderMixin(mixin)
	require.True(t, strings.HasPrefix(body, "mixin Auditable {\n"))
	require.Contains(t, body, "\tdatetime CreatedAt\n")
	require.Contains(t, body, "\t!datetime DeletedAt\n")
}

func TestRenderMixinFileOwningRelationDoesNotDuplicateFKField(t *testing.T) {
	mixin := &schema.MixinModel{
		Name: "Auditable",
		Fields: []*schema.FieldModel{
			{Name: "CreatedByUserID", Type: types.SqlInt},
			{Name: "CreatedAt", Type: types.SqlDateTime},
		},
		ForeignKeys: []*schema.ForeignKeyModel{
			{ColumnName: "CreatedByUserID", TargetTable: "User", RelationshipType: schema.OneToOne},
		},
	}
	body := renderMixin(mixin)
	require.Contains(t, body, "\tmodel User as CreatedBy\n")
	require.Contains(t, body, "\tdatetime CreatedAt\n")
	require.NotContains(t, body, "int CreatedByUserID")
}

func TestRenderTableMixinOwnedRelationNotDuplicated(t *testing.T) {
	mixin := &schema.MixinModel{
		Name: "Auditable",
		Fields: []*schema.FieldModel{
			{Name: "CreatedByUserID", Type: types.SqlInt},
		},
		ForeignKeys: []*schema.ForeignKeyModel{
			{ColumnName: "CreatedByUserID", TargetTable: "User", RelationshipType: schema.OneToOne},
		},
	}
	table := &schema.TableModel{
		Name: "Post",
		Fields: []*schema.FieldModel{
			intField("PostID", true, true),
			{Name: "CreatedByUserID", Type: types.SqlInt},
		},
		ForeignKeys: []*schema.ForeignKeyModel{
			{ColumnName: "CreatedByUserID", TargetTable: "User", RelationshipType: schema.OneToOne},
		},
	}
	body := renderTable(table, []*schema.MixinModel{mixin})
	require.True(t, strings.HasPrefix(body, "model Post with Auditable {\n"))
	// the relation is owned by the applied mixin, so the table body
	// leaves it to the mixin file instead of repeating it.
	require.Equal(t, 0, strings.Count(body, "model User"))
	require.NotContains(t, body, "int CreatedByUserID")
}

func TestExportWritesOneFilePerTableAndMixin(t *testing.T) {
	dir := t.TempDir()
	model := &schema.DatabaseModel{
		Mixins: []*schema.MixinModel{
			{Name: "Auditable", Fields: []*schema.FieldModel{{Name: "CreatedAt", Type: types.SqlDateTime}}},
		},
		Tables: []*schema.TableModel{
			{Name: "Post", Fields: []*schema.FieldModel{intField("PostID", true, true)}},
		},
	}

	require.NoError(t, Export(model, dir))

	_, err := os.Stat(filepath.Join(dir, "Post.dmd"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "Auditable.dmdx"))
	require.NoError(t, err)
}
