package inline

import (
	"slices"
	"strings"
)

const importKeyword = "@import"

// importStmt is one @import statement found in a stylesheet.
type importStmt struct {
	// start and end delimit the whole statement, including the trailing ';'.
	start, end int
	target     string
	isURL      bool
	options    []string
	media      string
}

func (s importStmt) has(option string) bool {
	return slices.Contains(s.options, option)
}

// syntaxError is a scan failure at a byte offset of the scanned text.
type syntaxError struct {
	msg string
	off int
}

// sourceText is a stylesheet together with its line index.
type sourceText struct {
	text       string
	lineStarts []int
}

func newSourceText(text string) *sourceText {
	starts := []int{0}
	for i := range len(text) {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &sourceText{text: text, lineStarts: starts}
}

// pos returns the zero-based line and column of a byte offset.
func (s *sourceText) pos(off int) (line, col int) {
	idx, found := slices.BinarySearch(s.lineStarts, off)
	if !found {
		idx--
	}
	return idx, off - s.lineStarts[idx]
}

// scan finds the import statements of a stylesheet and checks that strings,
// comments and blocks are terminated.
func scan(src *sourceText) ([]importStmt, *syntaxError) {
	text := src.text
	var (
		stmts  []importStmt
		blocks []int
	)

	for i := 0; i < len(text); {
		c := text[i]
		switch {
		case c == '"' || c == '\'':
			end, ok := skipString(text, i)
			if !ok {
				return nil, &syntaxError{msg: "unterminated string", off: i}
			}
			i = end
		case strings.HasPrefix(text[i:], "/*"):
			end := strings.Index(text[i+2:], "*/")
			if end < 0 {
				return nil, &syntaxError{msg: "unterminated comment", off: i}
			}
			i += end + 4
		case strings.HasPrefix(text[i:], "//"):
			end := strings.IndexByte(text[i:], '\n')
			if end < 0 {
				i = len(text)
			} else {
				i += end
			}
		case c == '{':
			blocks = append(blocks, i)
			i++
		case c == '}':
			if len(blocks) == 0 {
				return nil, &syntaxError{msg: "unexpected '}'", off: i}
			}
			blocks = blocks[:len(blocks)-1]
			i++
		case hasPrefixFold(text[i:], "url("):
			end, ok := skipURL(text, i)
			if !ok {
				return nil, &syntaxError{msg: "unterminated url()", off: i}
			}
			i = end
		case c == '@' && isImportKeyword(text[i:]):
			stmt, serr := parseImport(text, i)
			if serr != nil {
				return nil, serr
			}
			stmts = append(stmts, stmt)
			i = stmt.end
		default:
			i++
		}
	}

	if len(blocks) > 0 {
		return nil, &syntaxError{msg: "missing closing '}'", off: blocks[len(blocks)-1]}
	}
	return stmts, nil
}

func parseImport(text string, start int) (importStmt, *syntaxError) {
	stmt := importStmt{start: start}
	i := skipSpace(text, start+len(importKeyword))

	if i < len(text) && text[i] == '(' {
		end := strings.IndexByte(text[i:], ')')
		if end < 0 {
			return stmt, &syntaxError{msg: "unterminated import options", off: i}
		}
		for _, opt := range strings.Split(text[i+1:i+end], ",") {
			if opt = strings.TrimSpace(opt); opt != "" {
				stmt.options = append(stmt.options, opt)
			}
		}
		i = skipSpace(text, i+end+1)
	}

	switch {
	case i < len(text) && (text[i] == '"' || text[i] == '\''):
		end, ok := skipString(text, i)
		if !ok {
			return stmt, &syntaxError{msg: "unterminated string", off: i}
		}
		stmt.target = text[i+1 : end-1]
		i = end
	case hasPrefixFold(text[i:], "url("):
		end, ok := skipURL(text, i)
		if !ok {
			return stmt, &syntaxError{msg: "unterminated url()", off: i}
		}
		stmt.target = strings.Trim(strings.TrimSpace(text[i+4:end-1]), `"'`)
		stmt.isURL = true
		i = end
	default:
		return stmt, &syntaxError{msg: "expected string or url() after @import", off: start}
	}

	end := strings.IndexAny(text[i:], ";{}")
	if end < 0 || text[i+end] != ';' {
		return stmt, &syntaxError{msg: "missing ';' after @import", off: start}
	}
	stmt.media = strings.TrimSpace(text[i : i+end])
	stmt.end = i + end + 1
	return stmt, nil
}

func isImportKeyword(s string) bool {
	if !hasPrefixFold(s, importKeyword) {
		return false
	}
	if len(s) == len(importKeyword) {
		return true
	}
	next := s[len(importKeyword)]
	return next == ' ' || next == '\t' || next == '\n' || next == '\r' || next == '(' || next == '"' || next == '\''
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

func skipSpace(text string, i int) int {
	for i < len(text) && strings.IndexByte(" \t\r\n", text[i]) >= 0 {
		i++
	}
	return i
}

// skipString returns the offset just past the string literal starting at i.
func skipString(text string, i int) (int, bool) {
	quote := text[i]
	for j := i + 1; j < len(text); j++ {
		switch text[j] {
		case '\\':
			j++
		case '\n':
			return 0, false
		case quote:
			return j + 1, true
		}
	}
	return 0, false
}

// skipURL returns the offset just past the url(...) token starting at i.
func skipURL(text string, i int) (int, bool) {
	for j := i + len("url("); j < len(text); j++ {
		switch text[j] {
		case '"', '\'':
			end, ok := skipString(text, j)
			if !ok {
				return 0, false
			}
			j = end - 1
		case ')':
			return j + 1, true
		}
	}
	return 0, false
}
