package corewhile

import "testing"

// --- helpers ---------------------------------------------------------------

func mustParse(t *testing.T, src string) *Program {
	t.Helper()
	prog, errs := Parse(mustLex(t, src), Options{})
	if len(errs) != 0 {
		t.Fatalf("unexpected diagnostics: %v\nsource:\n%s", errs, src)
	}
	if !prog.Complete() {
		t.Fatalf("program not complete with no diagnostics\nsource:\n%s", src)
	}
	return prog
}

func parseWithOpts(t *testing.T, src string, opts Options) (*Program, ErrorList) {
	t.Helper()
	return Parse(mustLex(t, src), opts)
}

// --- program shape -----------------------------------------------------

func Test_Parser_MinimalProgram(t *testing.T) {
	prog := mustParse(t, `ident read X { } write X`)
	if prog.Name != "ident" || prog.Input != "X" || prog.Output != "X" {
		t.Fatalf("got Name=%q Input=%q Output=%q", prog.Name, prog.Input, prog.Output)
	}
	if len(prog.Body) != 0 {
		t.Fatalf("expected empty body, got %d commands", len(prog.Body))
	}
}

func Test_Parser_AssignCondLoop(t *testing.T) {
	src := `p read X {
		Y := X;
		if Y {
			Z := hd Y
		} else {
			Z := tl Y
		};
		while Y {
			Y := tl Y
		}
	} write Z`
	prog := mustParse(t, src)
	if len(prog.Body) != 3 {
		t.Fatalf("expected 3 top-level commands, got %d", len(prog.Body))
	}
	if _, ok := prog.Body[0].(*Assign); !ok {
		t.Fatalf("expected first command to be Assign, got %T", prog.Body[0])
	}
	cond, ok := prog.Body[1].(*Cond)
	if !ok {
		t.Fatalf("expected second command to be Cond, got %T", prog.Body[1])
	}
	if len(cond.If) != 1 || len(cond.Else) != 1 {
		t.Fatalf("expected one command per branch, got if=%d else=%d", len(cond.If), len(cond.Else))
	}
	loop, ok := prog.Body[2].(*Loop)
	if !ok {
		t.Fatalf("expected third command to be Loop, got %T", prog.Body[2])
	}
	if len(loop.Body) != 1 {
		t.Fatalf("expected one command in loop body, got %d", len(loop.Body))
	}
}

func Test_Parser_ConsHdTl(t *testing.T) {
	prog := mustParse(t, `p read X { Y := cons (hd X) (tl X) } write Y`)
	assign := prog.Body[0].(*Assign)
	op, ok := assign.Arg.(*Operation)
	if !ok || op.Op != OpCons {
		t.Fatalf("expected top-level cons, got %#v", assign.Arg)
	}
	if len(op.Args) != 2 {
		t.Fatalf("cons must have 2 args, got %d", len(op.Args))
	}
}

func Test_Parser_Determinism(t *testing.T) {
	src := `p read X { Y := hd X } write Y`
	p1, e1 := Parse(mustLex(t, src), Options{})
	p2, e2 := Parse(mustLex(t, src), Options{})
	if p1.Input != p2.Input || p1.Output != p2.Output || len(p1.Body) != len(p2.Body) {
		t.Fatalf("repeated parses diverged: %+v vs %+v", p1, p2)
	}
	if len(e1) != len(e2) {
		t.Fatalf("repeated parses produced different diagnostic counts: %d vs %d", len(e1), len(e2))
	}
}

// --- completeness lattice ------------------------------------------------

func Test_Parser_CompletenessLattice_MissingRHS(t *testing.T) {
	// A missing right-hand side leaves the assignment without an Arg.
	prog, errs := parseWithOpts(t, `prog read X { Y :=; } write Y`, Options{})
	if len(errs) != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d: %v", len(errs), errs)
	}
	if errs[0].Position != (Position{Row: 0, Col: 18}) {
		t.Fatalf("diagnostic should point just past ':=', got %+v", errs[0].Position)
	}
	assign, ok := prog.Body[0].(*Assign)
	if !ok {
		t.Fatalf("expected Assign, got %T", prog.Body[0])
	}
	if assign.Arg != nil {
		t.Fatalf("expected nil Arg, got %#v", assign.Arg)
	}
	if assign.Complete() {
		t.Fatalf("Assign with missing RHS must be incomplete")
	}
	if prog.Complete() {
		t.Fatalf("Program containing an incomplete Assign must itself be incomplete")
	}
}

func Test_Parser_CompletenessLattice_IffNoErrors(t *testing.T) {
	ok := `p read X { Y := hd X } write Y`
	prog, errs := parseWithOpts(t, ok, Options{})
	if len(errs) != 0 || !prog.Complete() {
		t.Fatalf("well-formed program must parse complete with no diagnostics: errs=%v complete=%v", errs, prog.Complete())
	}

	bad := `p read X { Y := hd } write Y`
	prog2, errs2 := parseWithOpts(t, bad, Options{})
	if len(errs2) == 0 {
		t.Fatalf("malformed program must produce at least one diagnostic")
	}
	if prog2.Complete() {
		t.Fatalf("malformed program must not be reported complete")
	}
}

func Test_Parser_OperationPropagatesIncompleteness(t *testing.T) {
	// cons with one missing argument: the outer Operation must itself be
	// incomplete, not just silently "fine" because its present argument
	// is an Identifier.
	prog, errs := parseWithOpts(t, `p read X { Y := cons X } write Y`, Options{})
	if len(errs) == 0 {
		t.Fatalf("expected a diagnostic for the missing second cons argument")
	}
	assign := prog.Body[0].(*Assign)
	op := assign.Arg.(*Operation)
	if op.Complete() {
		t.Fatalf("cons with a missing argument must be incomplete")
	}
	if assign.Complete() || prog.Complete() {
		t.Fatalf("incompleteness must propagate up through Assign and Program")
	}
}

func Test_Parser_IfWithoutElse(t *testing.T) {
	prog := mustParse(t, `prog read X { if X { Y := hd X } } write Y`)
	cond, ok := prog.Body[0].(*Cond)
	if !ok {
		t.Fatalf("expected Cond, got %T", prog.Body[0])
	}
	if len(cond.Else) != 0 {
		t.Fatalf("a missing else must behave as an empty else block, got %d commands", len(cond.Else))
	}
	if !cond.Complete() {
		t.Fatalf("a missing else must not mark the node partial")
	}
}

// --- recovery --------------------------------------------------------------

func Test_Parser_RecoveryIsLocal(t *testing.T) {
	// Scenario 4: a broken statement should not prevent
	// its well-formed siblings from being parsed.
	src := `p read X {
		Y :=;
		Z := X
	} write Z`
	prog, errs := parseWithOpts(t, src, Options{})
	if len(errs) == 0 {
		t.Fatalf("expected a diagnostic for the broken first statement")
	}
	if len(prog.Body) != 2 {
		t.Fatalf("expected both statements to be present, got %d", len(prog.Body))
	}
	second, ok := prog.Body[1].(*Assign)
	if !ok || !second.Complete() {
		t.Fatalf("second statement should have parsed complete, got %#v", prog.Body[1])
	}
}

// --- program intro/outro degraded cases -----------------------------------

func Test_Parser_MissingProgramName(t *testing.T) {
	_, errs := parseWithOpts(t, `read X { } write X`, Options{})
	found := false
	for _, e := range errs {
		if e.Message == "Missing program name" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a 'Missing program name' diagnostic, got %v", errs)
	}
}

func Test_Parser_MissingRead(t *testing.T) {
	_, errs := parseWithOpts(t, `p X { } write X`, Options{})
	found := false
	for _, e := range errs {
		if e.Message == "Missing read" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a 'Missing read' diagnostic, got %v", errs)
	}
}

func Test_Parser_TrailingTokenDoesNotFailParse(t *testing.T) {
	prog, errs := parseWithOpts(t, `p read X { } write X extra`, Options{})
	if !prog.Complete() {
		t.Fatalf("a trailing token must not make the program incomplete")
	}
	found := false
	for _, e := range errs {
		if e.Message == "Expected end of input" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an 'Expected end of input' diagnostic, got %v", errs)
	}
}

// --- dialect gating ----------------------------------------------------

func Test_Parser_PureOnlyRejectsNumbers(t *testing.T) {
	prog, errs := parseWithOpts(t, `p read X { Y := 3 } write Y`, Options{PureOnly: true})
	if len(errs) == 0 {
		t.Fatalf("expected a dialect-violation diagnostic for a numeral under pure_only")
	}
	if prog.Complete() {
		t.Fatalf("a numeral under pure_only must make the program incomplete")
	}
	lit := prog.Body[0].(*Assign).Arg.(*TreeLiteral)
	got, ok := DecodeNumber(lit.Tree)
	if !ok || got != 3 {
		t.Fatalf("the literal's tree value should still decode to 3, got %d ok=%v", got, ok)
	}
}

func Test_Parser_ExtendedAllowsNumbers(t *testing.T) {
	prog := mustParse(t, `p read X { Y := 3 } write Y`)
	lit := prog.Body[0].(*Assign).Arg.(*TreeLiteral)
	n, ok := DecodeNumber(lit.Tree)
	if !ok || n != 3 {
		t.Fatalf("expected literal 3, got %d ok=%v", n, ok)
	}
}

func Test_Parser_PureOnlyRejectsSwitch(t *testing.T) {
	src := `p read X { switch X { case 0: Y := X } } write Y`
	prog, errs := parseWithOpts(t, src, Options{PureOnly: true})
	if len(errs) == 0 {
		t.Fatalf("expected a dialect-violation diagnostic for switch under pure_only")
	}
	if prog.Complete() {
		t.Fatalf("a switch statement under pure_only must make the program incomplete")
	}
}

func Test_Parser_ExtendedAllowsSwitch(t *testing.T) {
	src := `p read X {
		switch X {
			case 0: Y := X;
			default: Y := hd X
		}
	} write Y`
	prog := mustParse(t, src)
	sw, ok := prog.Body[0].(*Switch)
	if !ok {
		t.Fatalf("expected Switch, got %T", prog.Body[0])
	}
	if len(sw.Cases) != 1 {
		t.Fatalf("expected 1 case, got %d", len(sw.Cases))
	}
	if sw.Default == nil || !sw.Default.Complete() {
		t.Fatalf("expected a complete default clause")
	}
}

func Test_Parser_SwitchDefaultSynthesizedWhenAbsent(t *testing.T) {
	prog := mustParse(t, `p read X { switch X { case 0: Y := X } } write Y`)
	sw := prog.Body[0].(*Switch)
	if sw.Default == nil {
		t.Fatalf("Default must never be nil after parsing")
	}
	if len(sw.Default.Body) != 0 || !sw.Default.Complete() {
		t.Fatalf("synthesized default must be empty and complete")
	}
}
