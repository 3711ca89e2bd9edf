// parser.go
//
// The public parser entry point and the program-level grammar:
//
//	name read input { body } write output
//
// Three degraded openings get targeted diagnostics: a missing name, a
// missing `read`, and a program that opens directly with `{`. Wherever a
// field can't be captured the parser still tries to capture the rest.
//
// The parser never raises. It always returns a *Program (possibly
// Complete()==false) and the ErrorList accumulated along the way.
package corewhile

// Options configures dialect gating. The zero value is the extended
// dialect (numeric literals and switch statements allowed).
type Options struct {
	// PureOnly disables numeric literals and switch statements. Both
	// gates route through this one flag rather than ad-hoc booleans.
	PureOnly bool
}

// parser holds the mutable state one Parse call threads through the
// mutually recursive expression/statement/program rules.
type parser struct {
	c    *cursor
	opts Options
	errs *ErrorList
}

// Parse turns a token stream into a program AST plus the diagnostics
// gathered while building it. It is a pure function of (tokens, options):
// repeated calls on the same input return equal results.
func Parse(tokens []Token, opts Options) (*Program, ErrorList) {
	errs := ErrorList{}
	p := &parser{c: newCursor(tokens, &errs), opts: opts, errs: &errs}
	prog := p.parseProgram()
	return prog, errs
}

func (p *parser) parseProgram() *Program {
	startPos := p.c.eoiPos()
	if t, ok := p.c.peek(); ok {
		startPos = t.Pos
	}

	name, input, introOK := p.parseIntro()
	bodyStatus, body := p.parseBlock()
	output, outroOK := p.parseOutro()

	complete := introOK && bodyStatus == statusOK && outroOK
	return &Program{
		Name:     name,
		Input:    input,
		Output:   output,
		Body:     body,
		complete: complete,
		position: startPos,
	}
}

// parseIntro reads `name read input`, handling three degraded openings:
// missing name, missing `read`, and a program opening directly with `{`.
func (p *parser) parseIntro() (name, input string, ok bool) {
	t, has := p.c.peek()
	if !has {
		p.errs.add(p.c.eoiPos(), "Missing program name")
		return "", "", false
	}

	if t.Type == TokSymbol && t.Value == "{" {
		// Program opens directly with '{': name and read/input are both
		// absent. Both fields are reported independently, matching how
		// every other missing-field case in this parser behaves.
		p.errs.add(t.Pos, "Missing program name")
		p.errs.add(t.Pos, "Missing input variable")
		return "", "", false
	}

	nameOK := true
	if t.Type == TokIdentifier {
		p.c.next()
		name = t.Value
	} else {
		p.errs.add(t.Pos, "Missing program name")
		nameOK = false
	}

	t2, has2 := p.c.peek()
	if has2 && t2.Type == TokSymbol && t2.Value == "read" {
		p.c.next()
		t3, st3 := p.c.expect(match{Type: TokIdentifier})
		if st3 == statusOK {
			input = t3.Value
		}
		return name, input, nameOK && st3 == statusOK
	}

	// 'read' is missing. If the next token is itself an identifier, take
	// it as the input variable (symmetric with parseOutro's treatment of
	// a `write`-less output identifier).
	missingPos := t.Pos
	if has2 {
		missingPos = t2.Pos
	}
	p.errs.add(missingPos, "Missing read")
	if has2 && t2.Type == TokIdentifier {
		p.c.next()
		input = t2.Value
	}
	return name, input, false
}

// parseOutro reads `write output`, tolerating a missing `write` keyword
// and any trailing tokens.
func (p *parser) parseOutro() (output string, ok bool) {
	t, has := p.c.peek()
	if !has {
		p.errs.add(p.c.eoiPos(), "Missing write")
		return "", false
	}

	switch {
	case t.Type == TokSymbol && t.Value == "write":
		p.c.next()
		t2, st2 := p.c.expect(match{Type: TokIdentifier})
		if st2 == statusOK {
			output = t2.Value
		}
		ok = st2 == statusOK
	case t.Type == TokIdentifier:
		p.errs.add(t.Pos, "Missing write")
		p.c.next()
		output = t.Value
		ok = false
	default:
		p.errs.add(t.Pos, "Missing write")
		ok = false
	}

	// A trailing token is diagnosed but never fails the parse; it
	// deliberately does not feed back into `ok`.
	if t3, has3 := p.c.peek(); has3 {
		p.errs.add(t3.Pos, "Expected end of input")
	}
	return output, ok
}
