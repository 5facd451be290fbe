package types

// DmdToSql is the total function from the DSL surface to the canonical
// SQL type. "long" and "short" are DSL aliases for bigint/smallint;
// "text"/"utext" collapse to the MAX-sized varchar/nvarchar rather than
// the deprecated SQL text/ntext types (§4.1).
func DmdToSql(d DmdType) SqlType {
	switch d {
	case DmdInt:
		return SqlInt
	case DmdBigInt, DmdLong:
		return SqlBigInt
	case DmdSmallInt, DmdShort:
		return SqlSmallInt
	case DmdTinyInt:
		return SqlTinyInt
	case DmdBool:
		return SqlBit
	case DmdString:
		return SqlVarChar
	case DmdUString:
		return SqlNVarChar
	case DmdCString:
		return SqlChar
	case DmdUCString:
		return SqlNChar
	case DmdText:
		return SqlVarChar
	case DmdUText:
		return SqlNVarChar
	case DmdDecimal:
		return SqlDecimal
	case DmdMoney:
		return SqlMoney
	case DmdSmallMoney:
		return SqlSmallMoney
	case DmdFloat:
		return SqlFloat
	case DmdDateTime:
		return SqlDateTime
	case DmdGuid:
		return SqlUniqueIdentifier
	case DmdBinary:
		return SqlBinary
	case DmdVarBinary:
		return SqlVarBinary
	default:
		return SqlVarChar
	}
}

// IsTextDmd reports whether d is the "text"/"utext" MAX-sentinel
// keyword, i.e. its field should carry Precision = MaxLengthMarker.
func IsTextDmd(d DmdType) bool {
	return d == DmdText || d == DmdUText
}

// SqlToDmd is the total inverse used by the exporter: canonical SQL ->
// DSL keyword. Where dmdToSql is not injective (bigint <- bigint|long)
// the canonical, non-aliased keyword is returned. money/smallmoney
// always reconstruct as decimal — per §4.1 the exporter always emits
// them as decimals, never re-detecting the money/smallmoney keyword.
func SqlToDmd(s SqlType) DmdType {
	switch s {
	case SqlInt:
		return DmdInt
	case SqlBigInt:
		return DmdBigInt
	case SqlSmallInt:
		return DmdSmallInt
	case SqlTinyInt:
		return DmdTinyInt
	case SqlBit:
		return DmdBool
	case SqlVarChar:
		return DmdString
	case SqlNVarChar:
		return DmdUString
	case SqlChar:
		return DmdCString
	case SqlNChar:
		return DmdUCString
	case SqlText:
		return DmdText
	case SqlNText:
		return DmdUText
	case SqlDecimal, SqlNumeric, SqlMoney, SqlSmallMoney:
		return DmdDecimal
	case SqlFloat:
		return DmdFloat
	case SqlDateTime:
		return DmdDateTime
	case SqlUniqueIdentifier:
		return DmdGuid
	case SqlBinary:
		return DmdBinary
	case SqlVarBinary:
		return DmdVarBinary
	default:
		return DmdString
	}
}

// MoneyDecimalPrecision returns the fixed (precision, scale) a
// money/smallmoney canonical column is normalized to. Only money and
// smallmoney are meaningful inputs; other types return (0, 0, false).
func MoneyDecimalPrecision(s SqlType) (precision, scale int, ok bool) {
	switch s {
	case SqlMoney:
		return 19, 4, true
	case SqlSmallMoney:
		return 10, 4, true
	default:
		return 0, 0, false
	}
}
