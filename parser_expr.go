// parser_expr.go
//
// The expression grammar:
//
//	E ::= ident | '(' E ')' | hd E | tl E | cons E E | number
//
// number is only legal in the extended dialect; parseExpr still builds the
// literal under pure_only, but flags it and the surrounding node
// incomplete so a host can tell the dialect was violated.
package corewhile

import "strconv"

// parseExpr reads one expression, recovering locally: a missing closing
// paren or a missing cons/hd/tl argument doesn't abort the call, it just
// marks the constructed node incomplete and returns what it has. Only a
// wholly unrecognized leading token yields nil.
func (p *parser) parseExpr() Expr {
	t, ok := p.c.peek()
	if !ok {
		p.errs.add(p.c.eoiPos(), "Expected an expression or an identifier")
		return nil
	}

	switch {
	case t.Type == TokIdentifier:
		p.c.next()
		return &Identifier{Value: t.Value, position: t.Pos}

	case t.Type == TokSymbol && t.Value == "(":
		return p.parseParenExpr()

	case t.Type == TokOperation && t.Value == string(OpHd):
		return p.parseUnaryOp(OpHd)

	case t.Type == TokOperation && t.Value == string(OpTl):
		return p.parseUnaryOp(OpTl)

	case t.Type == TokOperation && t.Value == string(OpCons):
		return p.parseConsOp()

	case t.Type == TokNumber:
		p.c.next()
		return p.parseNumberLiteral(t)

	default:
		// Not consumed: the offending token is usually a separator or
		// closing brace the enclosing statement list needs for recovery.
		p.errs.add(t.Pos, "Expected an expression or an identifier")
		return nil
	}
}

// parseParenExpr handles '(' E ')'. Parentheses are pure grouping: the
// inner expression is returned unwrapped regardless of whether the
// closing ')' was present.
func (p *parser) parseParenExpr() Expr {
	p.c.next() // consume '('
	inner := p.parseExpr()
	p.c.expect(sym(")"))
	return inner
}

// parseUnaryOp handles `hd E` / `tl E`.
func (p *parser) parseUnaryOp(o Op) Expr {
	kw, _ := p.c.next()
	arg := p.parseExpr()
	args := []Expr{arg}
	return &Operation{Op: o, Args: args, complete: operationComplete(args...), position: kw.Pos}
}

// parseConsOp handles `cons E E`: left child first, then right.
func (p *parser) parseConsOp() Expr {
	kw, _ := p.c.next()
	left := p.parseExpr()
	right := p.parseExpr()
	args := []Expr{left, right}
	return &Operation{Op: OpCons, Args: args, complete: operationComplete(args...), position: kw.Pos}
}

// parseNumberLiteral translates a numeric lexeme into a tree literal via
// the Church-style encoding in tree.go. The pure_only gate lives here,
// not scattered at the call sites.
func (p *parser) parseNumberLiteral(t Token) Expr {
	n, err := strconv.Atoi(t.Value)
	if err != nil || n < 0 {
		p.errs.add(t.Pos, "Invalid numeric literal "+describe(t))
		return &TreeLiteral{Tree: Nil, complete: false, position: t.Pos}
	}
	if p.opts.PureOnly {
		p.errs.add(t.Pos, "Numeric literals are not allowed in pure mode")
		return &TreeLiteral{Tree: EncodeNumber(n), complete: false, position: t.Pos}
	}
	return &TreeLiteral{Tree: EncodeNumber(n), complete: true, position: t.Pos}
}
