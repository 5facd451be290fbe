package dslparser

import (
	"os"
	"strings"
)

// sourceLine is one non-blank, comment-stripped, trimmed line from a
// .model or .mixin file, tagged with its origin for error reporting.
type sourceLine struct {
	File string
	No   int
	Text string
}

// rawBlock is a single top-level "<header> { ... }" declaration lifted
// from the source. Closing "}" must stand on its own line (§6).
type rawBlock struct {
	File       string
	HeaderLine int
	Header     string
	Body       []sourceLine
}

// readSourceLines reads a UTF-8 file, strips "//" and "#" comments,
// trims surrounding whitespace, and drops blank lines.
func readSourceLines(path string) ([]sourceLine, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var out []sourceLine
	for i, text := range strings.Split(string(raw), "\n") {
		text = strings.TrimRight(text, "\r")
		text = stripComment(text)
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		out = append(out, sourceLine{File: path, No: i + 1, Text: text})
	}
	return out, nil
}

// stripComment truncates a line at the first "//" or "#" sequence.
func stripComment(line string) string {
	if i := strings.Index(line, "//"); i >= 0 {
		line = line[:i]
	}
	if i := strings.Index(line, "#"); i >= 0 {
		line = line[:i]
	}
	return line
}

// splitBlocks groups a flat sequence of source lines into top-level
// blocks: every line ending in "{" opens a block; a line that is
// exactly "}" closes the innermost (and here, only) block.
func splitBlocks(lines []sourceLine) ([]rawBlock, error) {
	var blocks []rawBlock
	var i int
	for i < len(lines) {
		line := lines[i]
		if !strings.HasSuffix(line.Text, "{") {
			return nil, newParseError(line.File, line.No, "expected a block header ending in '{', got %q", line.Text)
		}

		block := rawBlock{File: line.File, HeaderLine: line.No, Header: strings.TrimSpace(strings.TrimSuffix(line.Text, "{"))}
		i++

		closed := false
		for i < len(lines) {
			if lines[i].Text == "}" {
				closed = true
				i++
				break
			}
			block.Body = append(block.Body, lines[i])
			i++
		}
		if !closed {
			return nil, newParseError(block.File, block.HeaderLine, "unterminated block %q: missing closing '}' on its own line", block.Header)
		}

		blocks = append(blocks, block)
	}
	return blocks, nil
}
