// Package types contains the closed type lattice that bridges the DSL
// surface syntax, the canonical SQL type vocabulary, and any
// vendor-specific rendering. It is a constant table: no global state,
// no dependency on the parser, the schema model, or the database.
package types

import "strings"

// DmdType enumerates the DSL-surface type keywords a .model/.mixin file
// may use for a field declaration.
type DmdType string

const (
	DmdInt        DmdType = "int"
	DmdBigInt     DmdType = "bigint"
	DmdSmallInt   DmdType = "smallint"
	DmdTinyInt    DmdType = "tinyint"
	DmdBool       DmdType = "bool"
	DmdLong       DmdType = "long"
	DmdShort      DmdType = "short"
	DmdString     DmdType = "string"
	DmdUString    DmdType = "ustring"
	DmdCString    DmdType = "cstring"
	DmdUCString   DmdType = "ucstring"
	DmdText       DmdType = "text"
	DmdUText      DmdType = "utext"
	DmdDecimal    DmdType = "decimal"
	DmdMoney      DmdType = "money"
	DmdSmallMoney DmdType = "smallmoney"
	DmdFloat      DmdType = "float"
	DmdDateTime   DmdType = "datetime"
	DmdGuid       DmdType = "guid"
	DmdBinary     DmdType = "binary"
	DmdVarBinary  DmdType = "varbinary"
)

// SqlType enumerates the canonical SQL type vocabulary used throughout
// the schema model. Unsupported live-side types (geometry, datetime2,
// date, time, numeric variants outside this set, datetimeoffset) are
// not members of this enum; they travel as a raw string (see
// schema.FieldModel.RawType) and are never looked up here.
type SqlType string

const (
	SqlInt              SqlType = "int"
	SqlBigInt           SqlType = "bigint"
	SqlSmallInt         SqlType = "smallint"
	SqlTinyInt          SqlType = "tinyint"
	SqlBit              SqlType = "bit"
	SqlNVarChar         SqlType = "nvarchar"
	SqlVarChar          SqlType = "varchar"
	SqlNChar            SqlType = "nchar"
	SqlChar             SqlType = "char"
	SqlText             SqlType = "text"
	SqlNText            SqlType = "ntext"
	SqlDecimal          SqlType = "decimal"
	SqlNumeric          SqlType = "numeric"
	SqlMoney            SqlType = "money"
	SqlSmallMoney       SqlType = "smallmoney"
	SqlFloat            SqlType = "float"
	SqlDateTime         SqlType = "datetime"
	SqlUniqueIdentifier SqlType = "uniqueidentifier"
	SqlBinary           SqlType = "binary"
	SqlVarBinary        SqlType = "varbinary"
)

// PrecisionType classifies how a canonical SQL type's length/precision
// suffix must be rendered.
type PrecisionType int

const (
	// PrecisionNone means the type never takes a parenthesized suffix.
	PrecisionNone PrecisionType = iota
	// PrecisionRequired means a single precision argument is mandatory.
	PrecisionRequired
	// PrecisionWithScaleRequired means both precision and scale are
	// rendered together, e.g. decimal(p,s).
	PrecisionWithScaleRequired
	// PrecisionOptional means a bare type, type(p), or type(p,s) are
	// all legal; the field's own Precision/Scale decide which.
	PrecisionOptional
)

// MaxLengthMarker is the sentinel precision value meaning "the largest
// variable-length size the vendor supports" (rendered as "(max)").
// It is the single canonical marker used everywhere in the system —
// the model, the parser, the exporter, and the SQL emitter.
const MaxLengthMarker = -1

// sqlTypeInfo describes the rendering and default-precision rules for
// one canonical SQL type.
type sqlTypeInfo struct {
	precisionType    PrecisionType
	supportsMax      bool
	defaultPrecision int
	defaultScale     int
}

var sqlTypeTable = map[SqlType]sqlTypeInfo{
	SqlInt:              {PrecisionNone, false, 0, 0},
	SqlBigInt:            {PrecisionNone, false, 0, 0},
	SqlSmallInt:          {PrecisionNone, false, 0, 0},
	SqlTinyInt:           {PrecisionNone, false, 0, 0},
	SqlBit:               {PrecisionNone, false, 0, 0},
	SqlNVarChar:          {PrecisionOptional, true, 50, 0},
	SqlVarChar:           {PrecisionOptional, true, 50, 0},
	SqlNChar:             {PrecisionOptional, false, 10, 0},
	SqlChar:              {PrecisionOptional, false, 10, 0},
	SqlText:              {PrecisionNone, false, 0, 0},
	SqlNText:             {PrecisionNone, false, 0, 0},
	SqlDecimal:           {PrecisionOptional, false, 18, 0},
	SqlNumeric:           {PrecisionOptional, false, 18, 0},
	SqlMoney:             {PrecisionNone, false, 19, 4},
	SqlSmallMoney:        {PrecisionNone, false, 10, 4},
	SqlFloat:             {PrecisionOptional, false, 53, 0},
	SqlDateTime:          {PrecisionNone, false, 0, 0},
	SqlUniqueIdentifier:  {PrecisionNone, false, 0, 0},
	SqlBinary:            {PrecisionOptional, false, 50, 0},
	SqlVarBinary:         {PrecisionOptional, true, 50, 0},
}

// TryParseDmd parses a DSL type keyword case-insensitively.
func TryParseDmd(code string) (DmdType, bool) {
	lower := DmdType(strings.ToLower(strings.TrimSpace(code)))
	switch lower {
	case DmdInt, DmdBigInt, DmdSmallInt, DmdTinyInt, DmdBool, DmdLong, DmdShort,
		DmdString, DmdUString, DmdCString, DmdUCString, DmdText, DmdUText,
		DmdDecimal, DmdMoney, DmdSmallMoney, DmdFloat, DmdDateTime, DmdGuid,
		DmdBinary, DmdVarBinary:
		return lower, true
	}
	return "", false
}

// TryParseSql parses a canonical SQL type keyword case-insensitively.
func TryParseSql(code string) (SqlType, bool) {
	lower := SqlType(strings.ToLower(strings.TrimSpace(code)))
	if _, ok := sqlTypeTable[lower]; ok {
		return lower, true
	}
	return "", false
}

// Info returns the rendering rules for a canonical SQL type. The
// second return value is false for a type outside the closed lattice
// (callers fall back to the field's raw type string).
func Info(t SqlType) (precisionType PrecisionType, supportsMax bool, defaultPrecision, defaultScale int, ok bool) {
	info, ok := sqlTypeTable[t]
	if !ok {
		return PrecisionNone, false, 0, 0, false
	}
	return info.precisionType, info.supportsMax, info.defaultPrecision, info.defaultScale, true
}

// IsDecimalFamily reports whether t is decimal or numeric — the spec
// treats the two as interchangeable in equality checks.
func IsDecimalFamily(t SqlType) bool {
	return t == SqlDecimal || t == SqlNumeric
}

// IsSizedStringOrBinary reports whether t is one of the size-bearing
// string/binary families the diff planner and runner treat specially
// for widen/narrow detection.
func IsSizedStringOrBinary(t SqlType) bool {
	switch t {
	case SqlVarChar, SqlNVarChar, SqlChar, SqlNChar, SqlBinary, SqlVarBinary:
		return true
	}
	return false
}

// IsUnicode reports whether t is a Unicode-aware character type.
func IsUnicode(t SqlType) bool {
	return t == SqlNVarChar || t == SqlNChar || t == SqlNText
}

// IsGuidLike reports whether t forces identity off for a primary key
// (the PK-synthesis rule in dslparser.synthesizePrimaryKey).
func IsGuidLike(t SqlType) bool {
	return t == SqlUniqueIdentifier
}
