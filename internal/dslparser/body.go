package dslparser

import (
	"github.com/dmdtool/dmd/internal/schema"
)

type lineKind int

const (
	lineRelation lineKind = iota
	lineField
	lineIndex
	lineKey
	lineAttr
)

// parsedLine is the tagged result of classifying one body line against
// the five line productions in §4.3's grammar.
type parsedLine struct {
	kind  lineKind
	field *schema.FieldModel
	fk    *schema.ForeignKeyModel
	index *schema.IndexModel
	attr  string
}

func parseLine(line sourceLine) (*parsedLine, error) {
	if m := relationLineRe.FindStringSubmatch(line.Text); m != nil {
		optional := m[1] == "!"
		plural := m[2] == "models"
		target := m[3]
		targetNullable := m[4] == "?"
		alias := m[5]
		aliasNullable := m[6] == "?"

		field, fk := buildRelation(optional, plural, target, targetNullable, alias, aliasNullable)
		return &parsedLine{kind: lineRelation, field: field, fk: fk}, nil
	}

	if m := indexLineRe.FindStringSubmatch(line.Text); m != nil {
		idx := &schema.IndexModel{
			Fields:   splitCSVIdents(m[1]),
			IsUnique: m[2] != "",
			Kind:     schema.NonClustered,
		}
		return &parsedLine{kind: lineIndex, index: idx}, nil
	}

	if m := keyLineRe.FindStringSubmatch(line.Text); m != nil {
		idx := &schema.IndexModel{
			Fields:         splitCSVIdents(m[1]),
			IsUnique:       true,
			IsAlternateKey: true,
			Kind:           schema.NonClustered,
		}
		return &parsedLine{kind: lineKey, index: idx}, nil
	}

	if m := fieldLineRe.FindStringSubmatch(line.Text); m != nil {
		pft := parseFieldTypeToken(m[1], m[2], m[3])
		nullable := m[4] == "?"
		name := m[5]
		field, err := buildField(line.File, line.No, name, pft, nullable)
		if err != nil {
			return nil, err
		}
		return &parsedLine{kind: lineField, field: field}, nil
	}

	if m := attrLineRe.FindStringSubmatch(line.Text); m != nil {
		return &parsedLine{kind: lineAttr, attr: m[1]}, nil
	}

	return nil, newParseError(line.File, line.No, "unrecognized line %q", line.Text)
}

// processTableBody applies every body line to a table under
// construction. Index and key lines are legal here.
func processTableBody(table *schema.TableModel, lines []sourceLine) error {
	for _, line := range lines {
		pl, err := parseLine(line)
		if err != nil {
			return err
		}
		switch pl.kind {
		case lineRelation:
			table.Fields = append(table.Fields, pl.field)
			table.ForeignKeys = append(table.ForeignKeys, pl.fk)
		case lineField:
			table.Fields = append(table.Fields, pl.field)
		case lineIndex, lineKey:
			table.Indexes = append(table.Indexes, pl.index)
		case lineAttr:
			table.SetAttribute(pl.attr)
		}
	}
	return nil
}

// processMixinBody applies every body line to a mixin under
// construction. Mixins carry fields, relations, and attributes only —
// a mixin has no independent index storage in the schema model, so an
// index/key line inside a mixin block is a parse error.
func processMixinBody(mixin *schema.MixinModel, lines []sourceLine) error {
	for _, line := range lines {
		pl, err := parseLine(line)
		if err != nil {
			return err
		}
		switch pl.kind {
		case lineRelation:
			mixin.Fields = append(mixin.Fields, pl.field)
			mixin.ForeignKeys = append(mixin.ForeignKeys, pl.fk)
		case lineField:
			mixin.Fields = append(mixin.Fields, pl.field)
		case lineIndex, lineKey:
			return newParseError(line.File, line.No, "index/key declarations are not supported inside a mixin")
		case lineAttr:
			mixin.SetAttribute(pl.attr)
		}
	}
	return nil
}
