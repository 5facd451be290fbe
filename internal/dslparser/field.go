package dslparser

import (
	"github.com/dmdtool/dmd/internal/schema"
	"github.com/dmdtool/dmd/internal/types"
)

// buildField lowers a parsed TYPE/IDENT pair into a FieldModel,
// applying the MAX-sentinel and default-precision rules of the type
// lattice (§4.1, §4.3).
func buildField(file string, lineNo int, name string, pft parsedFieldType, nullable bool) (*schema.FieldModel, error) {
	dmd, ok := types.TryParseDmd(pft.dmdRaw)
	if !ok {
		return nil, newTypeError(file, lineNo, "unknown field type %q", pft.dmdRaw)
	}

	sqlType := types.DmdToSql(dmd)
	field := &schema.FieldModel{
		Name:       name,
		Type:       sqlType,
		IsNullable: nullable,
	}

	precisionType, _, defaultPrecision, defaultScale, _ := types.Info(sqlType)

	switch {
	case types.IsTextDmd(dmd):
		field.Precision = types.MaxLengthMarker
	case pft.hasParen:
		field.Precision = pft.precision
		field.Scale = pft.scale
	case precisionType != types.PrecisionNone:
		field.Precision = defaultPrecision
		field.Scale = defaultScale
	}

	return field, nil
}
