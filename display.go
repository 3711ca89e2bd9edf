// display.go
//
// Textual rendering of a PAD value: bracketed,
// comma-separated tokens, with block-position lists (a program's body,
// and the then/else/body lists of if/while) broken one element per line
// and indented, while expression-position lists (var/quote/hd/tl/cons)
// always stay on one line regardless of nesting depth.
package corewhile

import (
	"fmt"
	"strconv"
	"strings"
)

// Format selects how display_pad renders symbolic tokens.
type Format struct {
	// TokenPrefix is prepended to keyword/operator tokens: "@" for
	// HWHILE, "" for PURE. Never applied to numbers or the nil literal.
	TokenPrefix string
	// IndentWidth is the number of spaces per nesting level.
	IndentWidth int
}

// FormatHWHILE prefixes symbolic tokens with '@'; FormatPURE renders
// them bare. Numbers and the literal nil are never prefixed in either.
var (
	FormatHWHILE = Format{TokenPrefix: "@", IndentWidth: 4}
	FormatPURE   = Format{TokenPrefix: "", IndentWidth: 4}
)

// DisplayPAD renders pad per format, terminated by a trailing newline.
func DisplayPAD(pad any, format Format) string {
	return renderTop(pad, format) + "\n"
}

// renderTop handles the outermost [input_idx, body, output_idx] shape,
// the one list whose middle element is a block position but whose first
// and last elements are plain indices rendered inline.
func renderTop(v any, format Format) string {
	list, ok := v.([]any)
	if !ok || len(list) != 3 {
		return renderExpr(v, format)
	}
	body, ok := list[1].([]any)
	if !ok {
		return renderExpr(v, format)
	}
	return "[" + renderAtom(list[0]) + ", " + renderBlock(body, format, 1) + ", " + renderAtom(list[2]) + "]"
}

// renderBlock renders a block-position list: one statement per line,
// indented to level, with the closing bracket back out at level-1. An
// empty block renders as "[]" with no line breaks.
func renderBlock(stmts []any, format Format, level int) string {
	if len(stmts) == 0 {
		return "[]"
	}
	var b strings.Builder
	b.WriteString("[\n")
	for i, s := range stmts {
		b.WriteString(indent(format, level))
		b.WriteString(renderStmt(s, format, level))
		if i < len(stmts)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString(indent(format, level-1))
	b.WriteString("]")
	return b.String()
}

// renderStmt renders one command tuple. level is the depth the statement
// itself sits at; its own nested blocks (if/while branches) render one
// level deeper, with their closing bracket realigned back to level.
func renderStmt(v any, format Format, level int) string {
	list, ok := v.([]any)
	if !ok || len(list) == 0 {
		return renderAtom(v)
	}
	tag, _ := list[0].(string)
	switch tag {
	case ":=":
		if len(list) != 3 {
			return renderExpr(v, format)
		}
		return "[" + tok(format, ":=") + ", " + renderAtom(list[1]) + ", " + renderExpr(list[2], format) + "]"
	case "if":
		if len(list) != 4 {
			return renderExpr(v, format)
		}
		then, _ := list[2].([]any)
		els, _ := list[3].([]any)
		return "[" + tok(format, "if") + ", " + renderExpr(list[1], format) + ", " +
			renderBlock(then, format, level+1) + ", " + renderBlock(els, format, level+1) + "]"
	case "while":
		if len(list) != 3 {
			return renderExpr(v, format)
		}
		body, _ := list[2].([]any)
		return "[" + tok(format, "while") + ", " + renderExpr(list[1], format) + ", " +
			renderBlock(body, format, level+1) + "]"
	default:
		return renderExpr(v, format)
	}
}

// renderExpr renders a var/quote/hd/tl/cons tuple inline, recursively;
// expression positions never break across lines.
func renderExpr(v any, format Format) string {
	list, ok := v.([]any)
	if !ok {
		return renderAtom(v)
	}
	if len(list) == 0 {
		return "[]"
	}
	tag, ok := list[0].(string)
	if !ok {
		return renderAtom(v)
	}
	switch {
	case tag == "var" && len(list) == 2:
		return "[" + tok(format, "var") + ", " + renderAtom(list[1]) + "]"
	case tag == "quote" && len(list) == 2:
		return "[" + tok(format, "quote") + ", nil]"
	case (tag == "hd" || tag == "tl") && len(list) == 2:
		return "[" + tok(format, tag) + ", " + renderExpr(list[1], format) + "]"
	case tag == "cons" && len(list) == 3:
		return "[" + tok(format, "cons") + ", " + renderExpr(list[1], format) + ", " + renderExpr(list[2], format) + "]"
	default:
		parts := make([]string, len(list))
		for i, e := range list {
			parts[i] = renderExpr(e, format)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
}

// renderAtom renders a leaf value: an index (int), or the bare "nil"
// atom, neither of which is ever prefixed.
func renderAtom(v any) string {
	switch n := v.(type) {
	case int:
		return strconv.Itoa(n)
	case string:
		return n
	default:
		return fmt.Sprint(n)
	}
}

func tok(format Format, s string) string { return format.TokenPrefix + s }

func indent(format Format, level int) string {
	if level <= 0 {
		return ""
	}
	return strings.Repeat(" ", level*format.IndentWidth)
}
