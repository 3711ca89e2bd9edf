// parser_stmt.go
//
// The statement and block grammar: if/else, while, assignment, the
// extended switch, and the `{ ... }` block/statement-list
// machinery they share, including the local error-recovery rule ("drain
// to the next ';' or '}'") that keeps one broken statement from taking its
// siblings down with it.
package corewhile

// parseStmt dispatches on the leading token and returns the parsed
// command plus a status that mirrors its Complete() value (OK iff
// complete, ERROR iff malformed-but-present, EOI iff the stream ran out
// partway through). parseStmtList relies on that mirroring to decide
// when to drain for recovery.
func (p *parser) parseStmt() (Cmd, status) {
	t, ok := p.c.peek()
	if !ok {
		p.errs.add(p.c.eoiPos(), "Expected if while or an assignment statement")
		return nil, statusEOI
	}

	switch {
	case t.Type == TokSymbol && t.Value == "if":
		return p.parseCond()
	case t.Type == TokSymbol && t.Value == "while":
		return p.parseLoop()
	case t.Type == TokSymbol && t.Value == "switch":
		return p.parseSwitchStmt(t)
	case t.Type == TokIdentifier:
		return p.parseAssign()
	default:
		p.c.next()
		p.errs.add(t.Pos, "Expected if while or an assignment statement")
		return nil, statusError
	}
}

// parseAssign handles `ident := E`.
func (p *parser) parseAssign() (Cmd, status) {
	identTok, _ := p.c.next()
	_, assignSt := p.c.expect(sym(":="))
	if assignSt == statusEOI {
		return &Assign{Ident: identTok.Value, complete: false, position: identTok.Pos}, statusEOI
	}

	arg := p.parseExpr()
	complete := assignSt == statusOK && arg != nil && arg.Complete()
	node := &Assign{Ident: identTok.Value, Arg: arg, complete: complete, position: identTok.Pos}
	if complete {
		return node, statusOK
	}
	return node, statusError
}

// parseCond handles `if E { ... } [else { ... }]`. A missing else is
// `else {}` and does not make the node incomplete.
func (p *parser) parseCond() (Cmd, status) {
	kw, _ := p.c.next()
	cond := p.parseExpr()
	ifStatus, ifBody := p.parseBlock()

	elseStatus := statusOK
	var elseBody []Cmd
	if t, ok := p.c.peek(); ok && t.Type == TokSymbol && t.Value == "else" {
		p.c.next()
		elseStatus, elseBody = p.parseBlock()
	}

	condOK := cond != nil && cond.Complete()
	node := &Cond{
		Condition: cond,
		If:        ifBody,
		Else:      elseBody,
		complete:  condOK && ifStatus == statusOK && elseStatus == statusOK,
		position:  kw.Pos,
	}
	switch {
	case ifStatus == statusEOI || elseStatus == statusEOI:
		return node, statusEOI
	case !node.complete:
		return node, statusError
	default:
		return node, statusOK
	}
}

// parseLoop handles `while E { ... }`.
func (p *parser) parseLoop() (Cmd, status) {
	kw, _ := p.c.next()
	cond := p.parseExpr()
	bodyStatus, body := p.parseBlock()

	condOK := cond != nil && cond.Complete()
	node := &Loop{
		Condition: cond,
		Body:      body,
		complete:  condOK && bodyStatus == statusOK,
		position:  kw.Pos,
	}
	switch {
	case bodyStatus == statusEOI:
		return node, statusEOI
	case !node.complete:
		return node, statusError
	default:
		return node, statusOK
	}
}

// parseSwitchStmt wraps parseSwitch with the pure_only dialect gate.
func (p *parser) parseSwitchStmt(kw Token) (Cmd, status) {
	node, st := p.parseSwitch()
	if p.opts.PureOnly {
		p.errs.add(kw.Pos, "Switch statements are not allowed in pure mode")
		if sw, ok := node.(*Switch); ok {
			sw.complete = false
		}
		if st == statusOK {
			st = statusError
		}
	}
	return node, st
}

// parseSwitch handles `switch E { (case E: stmts)* (default: stmts)? }`.
func (p *parser) parseSwitch() (Cmd, status) {
	kw, _ := p.c.next()
	cond := p.parseExpr()
	_, openStatus := p.c.expect(sym("{"))
	if openStatus == statusEOI {
		return &Switch{Condition: cond, Default: emptySwitchDefault(kw.Pos), complete: false, position: kw.Pos}, statusEOI
	}

	var cases []*SwitchCase
	var def *SwitchDefault
	hadError := openStatus == statusError
	eoiHit := false

loop:
	for {
		t, ok := p.c.peek()
		if !ok {
			eoiHit = true
			break
		}
		switch {
		case t.Type == TokSymbol && t.Value == "}":
			p.c.next()
			break loop

		case t.Type == TokSymbol && t.Value == "case":
			p.c.next()
			if def != nil {
				p.errs.add(t.Pos, "case clause after default clause")
				hadError = true
			}
			ccond := p.parseExpr()
			_, colonStatus := p.c.expect(sym(":"))
			if colonStatus == statusEOI {
				eoiHit = true
				break loop
			}
			body, bodyStatus := p.parseCaseStmts()
			complete := ccond != nil && ccond.Complete() && colonStatus == statusOK && bodyStatus == statusOK
			cases = append(cases, &SwitchCase{Cond: ccond, Body: body, complete: complete, position: t.Pos})
			if bodyStatus == statusEOI {
				eoiHit = true
				break loop
			}
			if !complete {
				hadError = true
			}

		case t.Type == TokSymbol && t.Value == "default":
			p.c.next()
			_, colonStatus := p.c.expect(sym(":"))
			if colonStatus == statusEOI {
				eoiHit = true
				break loop
			}
			body, bodyStatus := p.parseCaseStmts()
			complete := colonStatus == statusOK && bodyStatus == statusOK
			if def != nil {
				p.errs.add(t.Pos, "multiple default clauses")
				hadError = true
			}
			def = &SwitchDefault{Body: body, complete: complete, position: t.Pos}
			if bodyStatus == statusEOI {
				eoiHit = true
				break loop
			}
			if !complete {
				hadError = true
			}

		default:
			p.c.next()
			p.errs.add(t.Pos, "Expected case default or end of switch")
			hadError = true
			p.c.consumeUntil(sym("case"), sym("default"), sym("}"))
		}
	}

	if def == nil {
		def = emptySwitchDefault(kw.Pos)
	}

	condOK := cond != nil && cond.Complete()
	complete := condOK && openStatus == statusOK && !hadError
	node := &Switch{Condition: cond, Cases: cases, Default: def, complete: complete, position: kw.Pos}
	switch {
	case eoiHit:
		return node, statusEOI
	case !complete:
		return node, statusError
	default:
		return node, statusOK
	}
}

func emptySwitchDefault(pos Position) *SwitchDefault {
	return &SwitchDefault{complete: true, position: pos}
}

// parseCaseStmts reads a semicolon-separated statement list terminated by
// the next case/default/}, the switch-clause analog of parseStmtList.
func (p *parser) parseCaseStmts() ([]Cmd, status) {
	var cmds []Cmd
	hadError := false
	for {
		t, ok := p.c.peek()
		if !ok {
			return cmds, statusEOI
		}
		if t.Type == TokSymbol && (t.Value == "case" || t.Value == "default" || t.Value == "}") {
			if hadError {
				return cmds, statusError
			}
			return cmds, statusOK
		}
		cmd, st := p.parseStmt()
		cmds = append(cmds, cmd)
		if st == statusEOI {
			return cmds, statusEOI
		}
		if st == statusError {
			hadError = true
			p.c.consumeUntil(sym(";"), sym("}"), sym("case"), sym("default"))
		}
		if t2, ok2 := p.c.peek(); ok2 && t2.Type == TokSymbol && t2.Value == ";" {
			p.c.next()
		}
	}
}

// parseStmtList reads a semicolon-separated statement list terminated by
// `}` (not consumed). A statement that fails drains to the next `;` or
// `}`; the separator, if present, is then consumed and the list
// continues; one broken statement never stops its siblings from being
// parsed.
func (p *parser) parseStmtList() ([]Cmd, status) {
	var cmds []Cmd
	hadError := false
	for {
		t, ok := p.c.peek()
		if !ok {
			return cmds, statusEOI
		}
		if t.Type == TokSymbol && t.Value == "}" {
			if hadError {
				return cmds, statusError
			}
			return cmds, statusOK
		}
		cmd, st := p.parseStmt()
		cmds = append(cmds, cmd)
		if st == statusEOI {
			return cmds, statusEOI
		}
		if st == statusError {
			hadError = true
			p.c.consumeUntil(sym(";"), sym("}"))
		}
		if t2, ok2 := p.c.peek(); ok2 && t2.Type == TokSymbol && t2.Value == ";" {
			p.c.next()
		}
	}
}

// parseBlock handles `{ ... }`: missing braces are diagnosed
// but the statements parsed so far are still returned.
func (p *parser) parseBlock() (status, []Cmd) {
	_, openStatus := p.c.expect(sym("{"))
	if openStatus == statusEOI {
		return statusEOI, nil
	}

	if t, ok := p.c.peek(); ok && t.Type == TokSymbol && t.Value == "}" {
		p.c.next()
		return openStatus, nil
	}

	cmds, listStatus := p.parseStmtList()
	if listStatus == statusEOI {
		return statusEOI, cmds
	}

	_, closeStatus := p.c.expect(sym("}"))
	if closeStatus == statusEOI {
		return statusEOI, cmds
	}

	if openStatus == statusError || listStatus == statusError || closeStatus == statusError {
		return statusError, cmds
	}
	return statusOK, cmds
}
