package loader

import (
	"database/sql"
	"strings"

	"github.com/dmdtool/dmd/internal/schema"
	"github.com/dmdtool/dmd/internal/types"
)

// normalizeColumn lowers one INFORMATION_SCHEMA.COLUMNS row into a
// FieldModel, applying the normalization rules of §4.4: int family,
// bit, and datetime strip precision; money/smallmoney become fixed
// decimal(19,4)/decimal(10,4); text/ntext become (n)varchar(max).
// Types outside the lattice (datetime2, date, time, geometry,
// datetimeoffset, ...) pass through as a raw type string.
func normalizeColumn(dataType string, nullable bool, charMaxLen, numericPrecision, numericScale sql.NullInt64) *schema.FieldModel {
	field := &schema.FieldModel{IsNullable: nullable}

	switch strings.ToLower(dataType) {
	case "int":
		field.Type = types.SqlInt
	case "bigint":
		field.Type = types.SqlBigInt
	case "smallint":
		field.Type = types.SqlSmallInt
	case "tinyint":
		field.Type = types.SqlTinyInt
	case "bit":
		field.Type = types.SqlBit
	case "datetime":
		field.Type = types.SqlDateTime
	case "uniqueidentifier":
		field.Type = types.SqlUniqueIdentifier
	case "money":
		field.Type = types.SqlDecimal
		field.Precision, field.Scale = 19, 4
	case "smallmoney":
		field.Type = types.SqlDecimal
		field.Precision, field.Scale = 10, 4
	case "text":
		field.Type = types.SqlVarChar
		field.Precision = types.MaxLengthMarker
	case "ntext":
		field.Type = types.SqlNVarChar
		field.Precision = types.MaxLengthMarker
	case "varchar":
		field.Type = types.SqlVarChar
		field.Precision = sizeOrMax(charMaxLen)
	case "nvarchar":
		field.Type = types.SqlNVarChar
		field.Precision = sizeOrMax(charMaxLen)
	case "char":
		field.Type = types.SqlChar
		field.Precision = sizeOrMax(charMaxLen)
	case "nchar":
		field.Type = types.SqlNChar
		field.Precision = sizeOrMax(charMaxLen)
	case "binary":
		field.Type = types.SqlBinary
		field.Precision = sizeOrMax(charMaxLen)
	case "varbinary":
		field.Type = types.SqlVarBinary
		field.Precision = sizeOrMax(charMaxLen)
	case "decimal", "numeric":
		field.Type = types.SqlDecimal
		field.Precision = int(numericPrecision.Int64)
		field.Scale = int(numericScale.Int64)
	case "float", "real":
		field.Type = types.SqlFloat
		field.Precision = int(numericPrecision.Int64)
	default:
		field.Type = types.SqlType(strings.ToLower(dataType))
		field.RawType = dataType
	}

	return field
}

// sizeOrMax converts CHARACTER_MAXIMUM_LENGTH as reported by SQL
// Server (-1 for a MAX-sized column) into the lattice's MAX sentinel.
func sizeOrMax(n sql.NullInt64) int {
	if !n.Valid {
		return 0
	}
	if n.Int64 < 0 {
		return types.MaxLengthMarker
	}
	return int(n.Int64)
}
