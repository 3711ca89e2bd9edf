package corewhile

import (
	"strings"
	"testing"
)

// mustLex is a minimal scanner for test sources. The real lexer lives in
// internal/lexer and imports this package for the Token shape, so these
// in-package tests (which need unexported node fields) cannot import it
// back without a cycle; the token grammar is small enough to duplicate.
func mustLex(t *testing.T, src string) []Token {
	t.Helper()
	keywords := map[string]bool{
		"read": true, "write": true, "if": true, "else": true, "while": true,
		"switch": true, "case": true, "default": true,
	}
	operations := map[string]bool{"hd": true, "tl": true, "cons": true}

	var toks []Token
	row, col := 0, 0
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == '\n':
			row++
			col = 0
			i++
		case c == ' ' || c == '\t' || c == '\r':
			col++
			i++
		case c == ':' && i+1 < len(src) && src[i+1] == '=':
			toks = append(toks, Token{Type: TokSymbol, Value: ":=", Pos: Position{Row: row, Col: col}})
			col += 2
			i += 2
		case strings.ContainsRune("{}();:", rune(c)):
			toks = append(toks, Token{Type: TokSymbol, Value: string(c), Pos: Position{Row: row, Col: col}})
			col++
			i++
		case c >= '0' && c <= '9':
			start, startCol := i, col
			for i < len(src) && src[i] >= '0' && src[i] <= '9' {
				i++
				col++
			}
			toks = append(toks, Token{Type: TokNumber, Value: src[start:i], Pos: Position{Row: row, Col: startCol}})
		case c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'):
			start, startCol := i, col
			for i < len(src) && (src[i] == '_' ||
				(src[i] >= 'a' && src[i] <= 'z') || (src[i] >= 'A' && src[i] <= 'Z') ||
				(src[i] >= '0' && src[i] <= '9')) {
				i++
				col++
			}
			word := src[start:i]
			typ := TokIdentifier
			if keywords[word] {
				typ = TokSymbol
			} else if operations[word] {
				typ = TokOperation
			}
			toks = append(toks, Token{Type: typ, Value: word, Pos: Position{Row: row, Col: startCol}})
		default:
			t.Fatalf("test lexer: unexpected character %q at %d:%d", c, row, col)
		}
	}
	return toks
}
