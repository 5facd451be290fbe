package types

import (
	"fmt"
	"strings"
)

// SqlTypeString renders a canonical SQL declaration suffix for a field
// of type t with the given precision/scale, following the type's
// precisionType rule: no suffix, "(p)", "(p,s)", or "(max)" when
// precision == MaxLengthMarker. A type outside the lattice passes
// through unchanged using the raw type string supplied by the caller.
func SqlTypeString(t SqlType, precision, scale int, rawType string) string {
	precisionType, supportsMax, _, _, ok := Info(t)
	if !ok {
		return rawTypeOrCode(rawType, string(t))
	}

	base := string(t)

	if supportsMax && precision == MaxLengthMarker {
		return fmt.Sprintf("%s(max)", base)
	}

	switch precisionType {
	case PrecisionNone:
		return base
	case PrecisionRequired:
		return fmt.Sprintf("%s(%d)", base, precision)
	case PrecisionWithScaleRequired:
		return fmt.Sprintf("%s(%d,%d)", base, precision, scale)
	case PrecisionOptional:
		if precision <= 0 {
			return base
		}
		if IsDecimalFamily(t) || t == SqlFloat {
			if scale > 0 {
				return fmt.Sprintf("%s(%d,%d)", base, precision, scale)
			}
			return fmt.Sprintf("%s(%d)", base, precision)
		}
		return fmt.Sprintf("%s(%d)", base, precision)
	default:
		return base
	}
}

func rawTypeOrCode(rawType, code string) string {
	if strings.TrimSpace(rawType) != "" {
		return rawType
	}
	return code
}

// DmdTypeString renders the DSL declaration for a field, the inverse
// used by the exporter: "type", "type(p)", "type(p,s)", or
// "type(max)". Unsupported canonical types (outside the lattice) are
// rendered as a "# <rawType> <name>" comment line by the exporter,
// not here — this function assumes t is a recognized SqlType.
func DmdTypeString(t SqlType, precision, scale int) string {
	dmd := SqlToDmd(t)

	if (t == SqlVarChar || t == SqlNVarChar) && precision == MaxLengthMarker {
		if t == SqlNVarChar {
			return string(DmdUText)
		}
		return string(DmdText)
	}

	switch dmd {
	case DmdDecimal:
		p, s := precision, scale
		if t == SqlMoney {
			p, s = 19, 4
		} else if t == SqlSmallMoney {
			p, s = 10, 4
		}
		if p <= 0 {
			return string(DmdDecimal)
		}
		if s > 0 {
			return fmt.Sprintf("decimal(%d,%d)", p, s)
		}
		return fmt.Sprintf("decimal(%d)", p)
	case DmdString, DmdUString, DmdCString, DmdUCString, DmdBinary, DmdVarBinary:
		if precision == MaxLengthMarker {
			return fmt.Sprintf("%s(max)", dmd)
		}
		if precision > 0 {
			return fmt.Sprintf("%s(%d)", dmd, precision)
		}
		return string(dmd)
	case DmdFloat:
		if precision > 0 {
			return fmt.Sprintf("float(%d)", precision)
		}
		return string(DmdFloat)
	default:
		return string(dmd)
	}
}
