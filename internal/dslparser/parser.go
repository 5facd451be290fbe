// Package dslparser turns ".model"/".mixin" DSL source files into a
// schema.DatabaseModel. Parsing happens in two passes: every mixin
// block across every given file is built first, so a "with <Mixin>"
// or "extends <Name>" reference never depends on file or line
// ordering beyond its own kind (§4.3's "extends must follow model"
// rule still applies within pass two).
package dslparser

import (
	"fmt"

	"github.com/dmdtool/dmd/internal/schema"
)

// Parse reads and parses every given file and returns the assembled
// database model. Mixin blocks are collected first (pass A); model
// and extends blocks are then applied in file-then-line order
// (pass B), so "with <Mixin>" always resolves and "extends" always
// resolves against an already-declared table.
func Parse(paths ...string) (*schema.DatabaseModel, error) {
	var allBlocks []rawBlock
	for _, path := range paths {
		lines, err := readSourceLines(path)
		if err != nil {
			return nil, fmt.Errorf("dslparser: reading %s: %w", path, err)
		}
		blocks, err := splitBlocks(lines)
		if err != nil {
			return nil, err
		}
		allBlocks = append(allBlocks, blocks...)
	}

	db := schema.NewDatabaseModel()

	for _, block := range allBlocks {
		if !mixinHeaderRe.MatchString(block.Header) {
			continue
		}
		mixin, err := buildMixin(block)
		if err != nil {
			return nil, err
		}
		if err := db.AddMixin(mixin); err != nil {
			return nil, newParseError(block.File, block.HeaderLine, "%s", err)
		}
	}

	for _, block := range allBlocks {
		switch {
		case mixinHeaderRe.MatchString(block.Header):
			continue

		case modelHeaderRe.MatchString(block.Header):
			table, err := buildTable(block, db)
			if err != nil {
				return nil, err
			}
			if err := db.AddTable(table); err != nil {
				return nil, newParseError(block.File, block.HeaderLine, "%s", err)
			}

		case extendsHeaderRe.MatchString(block.Header):
			if err := extendTable(block, db); err != nil {
				return nil, err
			}

		default:
			return nil, newParseError(block.File, block.HeaderLine, "unrecognized block header %q", block.Header)
		}
	}

	return db, nil
}
