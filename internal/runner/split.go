package runner

import (
	"strings"

	"github.com/pingcap/tidb/pkg/parser"
	"github.com/pingcap/tidb/pkg/parser/format"
	_ "github.com/pingcap/tidb/pkg/parser/test_driver"
)

// SplitStatements splits a recorded SQL script (e.g. the output of a
// dry-run, re-fed via "dmdc apply --file") into individual statements.
// It tries the TiDB AST parser first and falls back to naive
// semicolon-splitting when the script doesn't parse as the grammar
// the parser understands — grounded on the same two-tier strategy the
// teacher's Applier uses for its own migration files.
func SplitStatements(content string) []string {
	content = strings.TrimSpace(content)
	if stmts := splitWithTiDBParser(content); len(stmts) > 0 {
		return stmts
	}
	return splitBySemicolon(content)
}

func splitWithTiDBParser(content string) []string {
	p := parser.New()
	nodes, _, err := p.Parse(content, "", "")
	if err != nil || len(nodes) == 0 {
		return nil
	}

	var statements []string
	for _, node := range nodes {
		if node == nil {
			continue
		}
		var sb strings.Builder
		ctx := format.NewRestoreCtx(format.DefaultRestoreFlags, &sb)
		if err := node.Restore(ctx); err != nil {
			continue
		}
		if stmt := strings.TrimSpace(sb.String()); stmt != "" {
			statements = append(statements, stmt)
		}
	}
	return statements
}

func splitBySemicolon(content string) []string {
	var statements []string
	var current strings.Builder

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "--") || trimmed == "" {
			continue
		}

		current.WriteString(line)
		current.WriteString("\n")
		if strings.HasSuffix(trimmed, ";") {
			if stmt := strings.TrimSpace(current.String()); stmt != "" {
				statements = append(statements, stmt)
			}
			current.Reset()
		}
	}

	if remaining := strings.TrimSpace(current.String()); remaining != "" {
		statements = append(statements, remaining)
	}
	return statements
}
