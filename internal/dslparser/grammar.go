package dslparser

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	mixinHeaderRe  = regexp.MustCompile(`(?i)^mixin\s+(\w+)$`)
	modelHeaderRe  = regexp.MustCompile(`(?i)^model\s+(?:(\w+)\s+)?(\w+)(?:\s+with\s+(\w+))?$`)
	extendsHeaderRe = regexp.MustCompile(`(?i)^extends\s+(\w+)$`)

	relationLineRe = regexp.MustCompile(`(?i)^(!)?\s*(models|model)\s+(\w+)(\?)?(?:\s+as\s+(\w+)(\?)?)?$`)
	fieldLineRe    = regexp.MustCompile(`(?i)^(\w+)(?:\(\s*(max|\d+)\s*(?:,\s*(\d+)\s*)?\))?(\?)?\s+(\w+)$`)
	indexLineRe    = regexp.MustCompile(`(?i)^index\s*\(([^)]*)\)\s*(@unique)?$`)
	keyLineRe      = regexp.MustCompile(`(?i)^key\s*\(([^)]*)\)$`)
	attrLineRe     = regexp.MustCompile(`^@(\w+)$`)
)

// parsedFieldType is the intermediate result of parsing a TYPE token,
// before it is lowered into a schema.FieldModel.
type parsedFieldType struct {
	dmdRaw    string
	precision int // 0 = unspecified, types.MaxLengthMarker = "max"
	scale     int
	hasParen  bool
}

func parseFieldTypeToken(typeTok, precisionTok, scaleTok string) parsedFieldType {
	pft := parsedFieldType{dmdRaw: typeTok}
	if precisionTok == "" {
		return pft
	}
	pft.hasParen = true
	if precisionTok == "max" {
		pft.precision = -1
		return pft
	}
	p, _ := strconv.Atoi(precisionTok)
	pft.precision = p
	if scaleTok != "" {
		s, _ := strconv.Atoi(scaleTok)
		pft.scale = s
	}
	return pft
}

func splitCSVIdents(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
