package schema

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmdtool/dmd/internal/types"
)

func TestTableByNameCaseInsensitive(t *testing.T) {
	db := NewDatabaseModel()
	require.NoError(t, db.AddTable(&TableModel{Name: "User"}))

	require.NotNil(t, db.TableByName("user"))
	require.NotNil(t, db.TableByName("USER"))
	require.Nil(t, db.TableByName("Order"))
}

func TestAddTableDuplicateCaseInsensitive(t *testing.T) {
	db := NewDatabaseModel()
	require.NoError(t, db.AddTable(&TableModel{Name: "User"}))
	require.Error(t, db.AddTable(&TableModel{Name: "user"}))
}

func TestApplyMixinMergesFieldsAndRecordsName(t *testing.T) {
	table := &TableModel{Name: "User"}
	mixin := &MixinModel{
		Name: "Auditable",
		Fields: []*FieldModel{
			{Name: "CreatedAt", Type: types.SqlDateTime},
		},
	}

	table.ApplyMixin(mixin)

	require.Len(t, table.Fields, 1)
	require.Equal(t, "CreatedAt", table.Fields[0].Name)
	require.Equal(t, []string{"Auditable"}, table.MixinsApplied)
}

func TestMixinAppliesToHonorsOptionalFields(t *testing.T) {
	table := &TableModel{Name: "User", Fields: []*FieldModel{{Name: "CreatedAt"}}}
	mixin := &MixinModel{
		Name: "Auditable",
		Fields: []*FieldModel{
			{Name: "CreatedAt"},
			{Name: "DeletedAt", IsOptional: true},
		},
	}

	require.True(t, mixin.AppliesTo(table))

	mixin.Fields[1].IsOptional = false
	require.False(t, mixin.AppliesTo(table))
}

func TestPrimaryKeyField(t *testing.T) {
	table := &TableModel{Fields: []*FieldModel{
		{Name: "Username"},
		{Name: "UserID", IsPrimaryKey: true},
	}}

	pk := table.PrimaryKeyField()
	require.NotNil(t, pk)
	require.Equal(t, "UserID", pk.Name)
}

func TestForeignKeyByTargetTable(t *testing.T) {
	table := &TableModel{ForeignKeys: []*ForeignKeyModel{
		{ColumnName: "UserID", TargetTable: "User"},
	}}

	fk := table.ForeignKeyByTargetTable("user")
	require.NotNil(t, fk)
	require.Equal(t, "UserID", fk.ColumnName)
	require.Nil(t, table.ForeignKeyByTargetTable("Order"))
}
