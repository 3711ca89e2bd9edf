// pad.go
//
// The programs-as-data codec: a bidirectional translation
// between the AST and a canonical, JSON-shaped list encoding so WHILE
// programs can take other WHILE programs as data. PAD values are built
// from plain Go values (int, string, and []any) deliberately, rather
// than a dedicated PAD type, since the codec's whole point is that this
// shape is what gets serialized, displayed, and fed back into decode; an
// opaque wrapper type would only get in the way of callers doing that.
package corewhile

import (
	"errors"
	"fmt"
)

// ErrMalformedPAD is returned by FromPAD when its input doesn't match the
// shape to_pad ever produces. There is no partial-PAD result:
// decode either succeeds completely or fails outright.
var ErrMalformedPAD = errors.New("corewhile: malformed PAD")

// ErrPADUnsupported is returned by ToPAD for AST shapes the PAD grammar
// has no encoding for: a Switch (extended-dialect syntax; Parse emits it
// and nothing in this package desugars it, so a parsed program containing
// a switch fails here) or an EqualExpr node (reserved, never produced by
// Parse).
var ErrPADUnsupported = errors.New("corewhile: AST node has no PAD encoding")

// ToPAD encodes program as [input_index, body, output_index]. Identifier
// indices are assigned in first-occurrence textual order, with the input
// variable fixed at index 0 regardless of where (or whether) it's
// otherwise referenced.
func ToPAD(program *Program) (any, error) {
	idx := newIndexer()
	idx.assign(program.Input)

	body, err := encodeBlockIndexed(idx, program.Body)
	if err != nil {
		return nil, err
	}
	outputIdx := idx.assign(program.Output)

	return []any{idx.assign(program.Input), body, outputIdx}, nil
}

// indexer assigns each identifier the index of its first occurrence.
type indexer struct {
	order map[string]int
	next  int
}

func newIndexer() *indexer { return &indexer{order: map[string]int{}} }

func (x *indexer) assign(name string) int {
	if i, ok := x.order[name]; ok {
		return i
	}
	i := x.next
	x.order[name] = i
	x.next++
	return i
}

func encodeBlockIndexed(idx *indexer, cmds []Cmd) ([]any, error) {
	out := make([]any, 0, len(cmds))
	for _, c := range cmds {
		enc, err := encodeCmdIndexed(idx, c)
		if err != nil {
			return nil, err
		}
		out = append(out, enc)
	}
	return out, nil
}

func encodeCmdIndexed(idx *indexer, c Cmd) (any, error) {
	switch n := c.(type) {
	case *Assign:
		i := idx.assign(n.Ident)
		e, err := encodeExprIndexed(idx, n.Arg)
		if err != nil {
			return nil, err
		}
		return []any{":=", i, e}, nil
	case *Cond:
		cond, err := encodeExprIndexed(idx, n.Condition)
		if err != nil {
			return nil, err
		}
		thenBlock, err := encodeBlockIndexed(idx, n.If)
		if err != nil {
			return nil, err
		}
		elseBlock, err := encodeBlockIndexed(idx, n.Else)
		if err != nil {
			return nil, err
		}
		return []any{"if", cond, thenBlock, elseBlock}, nil
	case *Loop:
		cond, err := encodeExprIndexed(idx, n.Condition)
		if err != nil {
			return nil, err
		}
		body, err := encodeBlockIndexed(idx, n.Body)
		if err != nil {
			return nil, err
		}
		return []any{"while", cond, body}, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrPADUnsupported, c)
	}
}

func encodeExprIndexed(idx *indexer, e Expr) (any, error) {
	switch n := e.(type) {
	case *Identifier:
		return []any{"var", idx.assign(n.Value)}, nil
	case *TreeLiteral:
		return encodeTree(n.Tree), nil
	case *Operation:
		switch n.Op {
		case OpHd:
			arg, err := encodeExprIndexed(idx, n.Args[0])
			if err != nil {
				return nil, err
			}
			return []any{"hd", arg}, nil
		case OpTl:
			arg, err := encodeExprIndexed(idx, n.Args[0])
			if err != nil {
				return nil, err
			}
			return []any{"tl", arg}, nil
		case OpCons:
			l, err := encodeExprIndexed(idx, n.Args[0])
			if err != nil {
				return nil, err
			}
			r, err := encodeExprIndexed(idx, n.Args[1])
			if err != nil {
				return nil, err
			}
			return []any{"cons", l, r}, nil
		default:
			return nil, fmt.Errorf("%w: operation %q", ErrPADUnsupported, n.Op)
		}
	default:
		return nil, fmt.Errorf("%w: %T", ErrPADUnsupported, e)
	}
}

// encodeTree renders a constant Tree value (a numeral literal or a bare
// nil) as nested quote/cons expression forms: a numeral n becomes n
// nested conses whose left children are quoted nil.
func encodeTree(t Tree) any {
	if t.IsNil() {
		return []any{"quote", "nil"}
	}
	return []any{"cons", encodeTree(t.Left()), encodeTree(t.Right())}
}

// TreeToPAD renders a bare Tree value (not a full program) in the same
// quote/cons shape ToPAD uses for literals. It is the form the CLI exchanges
// input/output trees in, independent of any program AST.
func TreeToPAD(t Tree) any { return encodeTree(t) }

// TreeFromPAD inverts TreeToPAD.
func TreeFromPAD(v any) (Tree, error) {
	list, ok := v.([]any)
	if !ok || len(list) == 0 {
		return Nil, ErrMalformedPAD
	}
	tag, ok := list[0].(string)
	if !ok {
		return Nil, ErrMalformedPAD
	}
	switch tag {
	case "quote":
		if len(list) != 2 {
			return Nil, ErrMalformedPAD
		}
		if s, ok := list[1].(string); !ok || s != "nil" {
			return Nil, ErrMalformedPAD
		}
		return Nil, nil
	case "cons":
		if len(list) != 3 {
			return Nil, ErrMalformedPAD
		}
		l, err := TreeFromPAD(list[1])
		if err != nil {
			return Nil, err
		}
		r, err := TreeFromPAD(list[2])
		if err != nil {
			return Nil, err
		}
		return Cons(l, r), nil
	default:
		return Nil, ErrMalformedPAD
	}
}

// FromPAD decodes pad back into a Program AST. Synthesized identifier
// names are deterministic functions of their PAD index (0 becomes A, 1
// becomes B, ... then AA, AB, ...), so repeated decodes of the same PAD
// value are themselves equal, and from_pad(to_pad(p)) is equal to p up
// to that renaming.
func FromPAD(pad any) (*Program, error) {
	top, ok := pad.([]any)
	if !ok || len(top) != 3 {
		return nil, ErrMalformedPAD
	}
	inputIdx, ok := asInt(top[0])
	if !ok {
		return nil, ErrMalformedPAD
	}
	outputIdx, ok := asInt(top[2])
	if !ok {
		return nil, ErrMalformedPAD
	}
	bodyPad, ok := top[1].([]any)
	if !ok {
		return nil, ErrMalformedPAD
	}
	body, err := decodeBlock(bodyPad)
	if err != nil {
		return nil, err
	}
	return &Program{
		Name:     "prog",
		Input:    varName(inputIdx),
		Output:   varName(outputIdx),
		Body:     body,
		complete: true,
	}, nil
}

// varName maps an index to a spreadsheet-column style name: A..Z, AA..
func varName(idx int) string {
	name := ""
	for {
		name = string(rune('A'+idx%26)) + name
		idx = idx/26 - 1
		if idx < 0 {
			return name
		}
	}
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

func decodeBlock(items []any) ([]Cmd, error) {
	cmds := make([]Cmd, 0, len(items))
	for _, item := range items {
		c, err := decodeCmd(item)
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, c)
	}
	return cmds, nil
}

func decodeCmd(v any) (Cmd, error) {
	list, ok := v.([]any)
	if !ok || len(list) == 0 {
		return nil, ErrMalformedPAD
	}
	tag, ok := list[0].(string)
	if !ok {
		return nil, ErrMalformedPAD
	}
	switch tag {
	case ":=":
		if len(list) != 3 {
			return nil, ErrMalformedPAD
		}
		idx, ok := asInt(list[1])
		if !ok {
			return nil, ErrMalformedPAD
		}
		arg, err := decodeExpr(list[2])
		if err != nil {
			return nil, err
		}
		return &Assign{Ident: varName(idx), Arg: arg, complete: true}, nil
	case "if":
		if len(list) != 4 {
			return nil, ErrMalformedPAD
		}
		cond, err := decodeExpr(list[1])
		if err != nil {
			return nil, err
		}
		thenItems, ok := list[2].([]any)
		if !ok {
			return nil, ErrMalformedPAD
		}
		elseItems, ok := list[3].([]any)
		if !ok {
			return nil, ErrMalformedPAD
		}
		thenBody, err := decodeBlock(thenItems)
		if err != nil {
			return nil, err
		}
		elseBody, err := decodeBlock(elseItems)
		if err != nil {
			return nil, err
		}
		return &Cond{Condition: cond, If: thenBody, Else: elseBody, complete: true}, nil
	case "while":
		if len(list) != 3 {
			return nil, ErrMalformedPAD
		}
		cond, err := decodeExpr(list[1])
		if err != nil {
			return nil, err
		}
		bodyItems, ok := list[2].([]any)
		if !ok {
			return nil, ErrMalformedPAD
		}
		body, err := decodeBlock(bodyItems)
		if err != nil {
			return nil, err
		}
		return &Loop{Condition: cond, Body: body, complete: true}, nil
	default:
		return nil, ErrMalformedPAD
	}
}

func decodeExpr(v any) (Expr, error) {
	list, ok := v.([]any)
	if !ok || len(list) == 0 {
		return nil, ErrMalformedPAD
	}
	tag, ok := list[0].(string)
	if !ok {
		return nil, ErrMalformedPAD
	}
	switch tag {
	case "var":
		if len(list) != 2 {
			return nil, ErrMalformedPAD
		}
		idx, ok := asInt(list[1])
		if !ok {
			return nil, ErrMalformedPAD
		}
		return &Identifier{Value: varName(idx)}, nil
	case "quote":
		if len(list) != 2 {
			return nil, ErrMalformedPAD
		}
		if s, ok := list[1].(string); !ok || s != "nil" {
			return nil, ErrMalformedPAD
		}
		return &TreeLiteral{Tree: Nil, complete: true}, nil
	case "hd", "tl":
		if len(list) != 2 {
			return nil, ErrMalformedPAD
		}
		arg, err := decodeExpr(list[1])
		if err != nil {
			return nil, err
		}
		o := OpHd
		if tag == "tl" {
			o = OpTl
		}
		return &Operation{Op: o, Args: []Expr{arg}, complete: true}, nil
	case "cons":
		if len(list) != 3 {
			return nil, ErrMalformedPAD
		}
		l, err := decodeExpr(list[1])
		if err != nil {
			return nil, err
		}
		r, err := decodeExpr(list[2])
		if err != nil {
			return nil, err
		}
		return &Operation{Op: OpCons, Args: []Expr{l, r}, complete: true}, nil
	default:
		return nil, ErrMalformedPAD
	}
}
