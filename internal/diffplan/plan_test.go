package diffplan

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmdtool/dmd/internal/schema"
	"github.com/dmdtool/dmd/internal/types"
)

func field(name string, t types.SqlType, precision, scale int) *schema.FieldModel {
	return &schema.FieldModel{Name: name, Type: t, Precision: precision, Scale: scale}
}

func TestPlanCreatesMissingTableWithForeignKeysAndIndexes(t *testing.T) {
	target := schema.NewDatabaseModel()
	author := &schema.TableModel{Name: "Author", Fields: []*schema.FieldModel{
		{Name: "AuthorID", Type: types.SqlInt, IsPrimaryKey: true, IsIdentity: true},
	}}
	post := &schema.TableModel{
		Name: "Post",
		Fields: []*schema.FieldModel{
			{Name: "PostID", Type: types.SqlInt, IsPrimaryKey: true, IsIdentity: true},
			field("Title", types.SqlNVarChar, 200, 0),
			field("AuthorID", types.SqlInt, 0, 0),
		},
		ForeignKeys: []*schema.ForeignKeyModel{
			{ColumnName: "AuthorID", TargetTable: "Author", TargetColumnName: "AuthorID"},
		},
		Indexes: []*schema.IndexModel{
			{Fields: []string{"Title"}, IsUnique: false},
		},
	}
	require.NoError(t, target.AddTable(author))
	require.NoError(t, target.AddTable(post))

	actual := schema.NewDatabaseModel()

	plan, err := Plan(target, actual)
	require.NoError(t, err)

	var createActions, fkActions, idxActions int
	for _, s := range plan.Steps {
		switch s.Action {
		case ActionCreateTable:
			createActions++
		case ActionAddForeignKey:
			fkActions++
			require.Equal(t, "Post", s.TableName)
		case ActionAddIndex:
			idxActions++
		}
		require.NoError(t, s.Validate())
	}
	require.Equal(t, 2, createActions)
	require.Equal(t, 1, fkActions)
	require.Equal(t, 1, idxActions)
}

func TestPlanAddsMissingColumn(t *testing.T) {
	target := schema.NewDatabaseModel()
	targetTable := &schema.TableModel{Name: "Post", Fields: []*schema.FieldModel{
		{Name: "PostID", Type: types.SqlInt, IsPrimaryKey: true},
		field("Title", types.SqlNVarChar, 200, 0),
	}}
	require.NoError(t, target.AddTable(targetTable))

	actual := schema.NewDatabaseModel()
	actualTable := &schema.TableModel{Name: "Post", Fields: []*schema.FieldModel{
		{Name: "PostID", Type: types.SqlInt, IsPrimaryKey: true},
	}}
	require.NoError(t, actual.AddTable(actualTable))

	plan, err := Plan(target, actual)
	require.NoError(t, err)

	require.Len(t, plan.Steps, 1)
	require.Equal(t, ActionAddColumn, plan.Steps[0].Action)
	require.Equal(t, "Title", plan.Steps[0].Field.Name)
}

func TestPlanWidensColumnAlways(t *testing.T) {
	target := schema.NewDatabaseModel()
	require.NoError(t, target.AddTable(&schema.TableModel{Name: "Post", Fields: []*schema.FieldModel{
		field("Title", types.SqlNVarChar, 400, 0),
	}}))

	actual := schema.NewDatabaseModel()
	require.NoError(t, actual.AddTable(&schema.TableModel{Name: "Post", Fields: []*schema.FieldModel{
		field("Title", types.SqlNVarChar, 200, 0),
	}}))

	plan, err := Plan(target, actual)
	require.NoError(t, err)

	require.Len(t, plan.Steps, 1)
	require.Equal(t, ActionAlterColumn, plan.Steps[0].Action)
}

func TestPlanSkipsNarrowingWithoutReduceSize(t *testing.T) {
	target := schema.NewDatabaseModel()
	require.NoError(t, target.AddTable(&schema.TableModel{Name: "Post", Fields: []*schema.FieldModel{
		field("Title", types.SqlNVarChar, 50, 0),
	}}))

	actual := schema.NewDatabaseModel()
	require.NoError(t, actual.AddTable(&schema.TableModel{Name: "Post", Fields: []*schema.FieldModel{
		field("Title", types.SqlNVarChar, 200, 0),
	}}))

	plan, err := Plan(target, actual)
	require.NoError(t, err)
	require.Empty(t, plan.Steps)
}

func TestPlanEmitsNarrowingWithReduceSize(t *testing.T) {
	target := schema.NewDatabaseModel()
	narrowField := field("Title", types.SqlNVarChar, 50, 0)
	narrowField.SetAttribute("reducesize")
	require.NoError(t, target.AddTable(&schema.TableModel{Name: "Post", Fields: []*schema.FieldModel{narrowField}}))

	actual := schema.NewDatabaseModel()
	require.NoError(t, actual.AddTable(&schema.TableModel{Name: "Post", Fields: []*schema.FieldModel{
		field("Title", types.SqlNVarChar, 200, 0),
	}}))

	plan, err := Plan(target, actual)
	require.NoError(t, err)
	require.Len(t, plan.Steps, 1)
	require.Equal(t, ActionAlterColumn, plan.Steps[0].Action)
}

func TestPlanNarrowingFromMaxRequiresReduceSize(t *testing.T) {
	target := schema.NewDatabaseModel()
	require.NoError(t, target.AddTable(&schema.TableModel{Name: "Post", Fields: []*schema.FieldModel{
		field("Body", types.SqlNVarChar, 100, 0),
	}}))

	actual := schema.NewDatabaseModel()
	require.NoError(t, actual.AddTable(&schema.TableModel{Name: "Post", Fields: []*schema.FieldModel{
		field("Body", types.SqlNVarChar, types.MaxLengthMarker, 0),
	}}))

	plan, err := Plan(target, actual)
	require.NoError(t, err)
	require.Empty(t, plan.Steps)
}

func TestPlanWideningToMaxAlwaysEmitted(t *testing.T) {
	target := schema.NewDatabaseModel()
	require.NoError(t, target.AddTable(&schema.TableModel{Name: "Post", Fields: []*schema.FieldModel{
		field("Body", types.SqlNVarChar, types.MaxLengthMarker, 0),
	}}))

	actual := schema.NewDatabaseModel()
	require.NoError(t, actual.AddTable(&schema.TableModel{Name: "Post", Fields: []*schema.FieldModel{
		field("Body", types.SqlNVarChar, 100, 0),
	}}))

	plan, err := Plan(target, actual)
	require.NoError(t, err)
	require.Len(t, plan.Steps, 1)
	require.Equal(t, ActionAlterColumn, plan.Steps[0].Action)
}

func TestPlanAddsMissingForeignKeyMatchedByTargetTable(t *testing.T) {
	target := schema.NewDatabaseModel()
	require.NoError(t, target.AddTable(&schema.TableModel{Name: "Author"}))
	require.NoError(t, target.AddTable(&schema.TableModel{
		Name: "Post",
		ForeignKeys: []*schema.ForeignKeyModel{
			{ColumnName: "AuthorID", TargetTable: "Author", TargetColumnName: "AuthorID"},
		},
	}))

	actual := schema.NewDatabaseModel()
	require.NoError(t, actual.AddTable(&schema.TableModel{Name: "Author"}))
	require.NoError(t, actual.AddTable(&schema.TableModel{Name: "Post"}))

	plan, err := Plan(target, actual)
	require.NoError(t, err)
	require.Len(t, plan.Steps, 1)
	require.Equal(t, ActionAddForeignKey, plan.Steps[0].Action)
}

func TestPlanResolvesIndexFieldNamesThroughForeignKey(t *testing.T) {
	target := schema.NewDatabaseModel()
	require.NoError(t, target.AddTable(&schema.TableModel{Name: "Author"}))
	require.NoError(t, target.AddTable(&schema.TableModel{
		Name: "Post",
		ForeignKeys: []*schema.ForeignKeyModel{
			{ColumnName: "AuthorID", TargetTable: "Author", TargetColumnName: "AuthorID"},
		},
		Indexes: []*schema.IndexModel{{Fields: []string{"Author"}, IsUnique: false}},
	}))

	actual := schema.NewDatabaseModel()
	require.NoError(t, actual.AddTable(&schema.TableModel{Name: "Author"}))
	require.NoError(t, actual.AddTable(&schema.TableModel{Name: "Post"}))

	plan, err := Plan(target, actual)
	require.NoError(t, err)

	var idxStep *MigrationStep
	for i := range plan.Steps {
		if plan.Steps[i].Action == ActionAddIndex {
			idxStep = &plan.Steps[i]
		}
	}
	require.NotNil(t, idxStep)
	require.Equal(t, []string{"AuthorID"}, idxStep.Index.Fields)
}

func TestPlanRecordsExtraIndexWithoutRemoval(t *testing.T) {
	target := schema.NewDatabaseModel()
	require.NoError(t, target.AddTable(&schema.TableModel{Name: "Post"}))

	actual := schema.NewDatabaseModel()
	require.NoError(t, actual.AddTable(&schema.TableModel{
		Name:    "Post",
		Indexes: []*schema.IndexModel{{Fields: []string{"LegacyColumn"}, IsUnique: false}},
	}))

	plan, err := Plan(target, actual)
	require.NoError(t, err)
	require.Empty(t, plan.Steps)
	require.Len(t, plan.ExtrasReport.ExtraIndexes, 1)
	require.Equal(t, "Post", plan.ExtrasReport.ExtraIndexes[0].TableName)
}

func TestPlanStepsAreOrderedByActionThenDiscovery(t *testing.T) {
	target := schema.NewDatabaseModel()
	require.NoError(t, target.AddTable(&schema.TableModel{Name: "Existing", Fields: []*schema.FieldModel{
		field("NewCol", types.SqlInt, 0, 0),
	}}))
	require.NoError(t, target.AddTable(&schema.TableModel{Name: "New"}))

	actual := schema.NewDatabaseModel()
	require.NoError(t, actual.AddTable(&schema.TableModel{Name: "Existing"}))

	plan, err := Plan(target, actual)
	require.NoError(t, err)
	require.Len(t, plan.Steps, 2)
	require.Equal(t, ActionCreateTable, plan.Steps[0].Action)
	require.Equal(t, ActionAddColumn, plan.Steps[1].Action)
}
