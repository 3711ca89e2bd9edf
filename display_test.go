package corewhile

import "testing"

// Test_DisplayPAD_HWHILEWorkedExample pins the HWHILE rendering of a
// one-assignment program byte for byte.
func Test_DisplayPAD_HWHILEWorkedExample(t *testing.T) {
	pad := []any{0, []any{[]any{":=", 1, []any{"quote", "nil"}}}, 1}
	got := DisplayPAD(pad, FormatHWHILE)
	want := "[0, [\n    [@:=, 1, [@quote, nil]]\n], 1]\n"
	if got != want {
		t.Fatalf("got:\n%q\nwant:\n%q", got, want)
	}
}

func Test_DisplayPAD_PureFormatOmitsPrefix(t *testing.T) {
	pad := []any{0, []any{[]any{":=", 1, []any{"quote", "nil"}}}, 1}
	got := DisplayPAD(pad, FormatPURE)
	want := "[0, [\n    [:=, 1, [quote, nil]]\n], 1]\n"
	if got != want {
		t.Fatalf("got:\n%q\nwant:\n%q", got, want)
	}
}

func Test_DisplayPAD_NumbersNeverPrefixed(t *testing.T) {
	pad := []any{0, []any{}, 0}
	got := DisplayPAD(pad, FormatHWHILE)
	want := "[0, [], 0]\n"
	if got != want {
		t.Fatalf("got:\n%q\nwant:\n%q", got, want)
	}
}

func Test_DisplayPAD_ExpressionsStayInline(t *testing.T) {
	// cons/var nesting, however deep, must never break across lines.
	expr := []any{"cons", []any{"var", 0}, []any{"hd", []any{"var", 1}}}
	pad := []any{0, []any{[]any{":=", 2, expr}}, 2}
	got := DisplayPAD(pad, FormatHWHILE)
	want := "[0, [\n    [@:=, 2, [@cons, [@var, 0], [@hd, [@var, 1]]]]\n], 2]\n"
	if got != want {
		t.Fatalf("got:\n%q\nwant:\n%q", got, want)
	}
}

func Test_DisplayPAD_IfWhileBlocksNestIndentation(t *testing.T) {
	ifStmt := []any{"if", []any{"var", 0}, []any{[]any{":=", 1, []any{"quote", "nil"}}}, []any{}}
	pad := []any{0, []any{ifStmt}, 1}
	got := DisplayPAD(pad, FormatHWHILE)
	want := "[0, [\n    [@if, [@var, 0], [\n        [@:=, 1, [@quote, nil]]\n    ], []]\n], 1]\n"
	if got != want {
		t.Fatalf("got:\n%q\nwant:\n%q", got, want)
	}
}

func Test_DisplayPAD_ConfigurableIndentWidth(t *testing.T) {
	pad := []any{0, []any{[]any{":=", 1, []any{"quote", "nil"}}}, 1}
	f := FormatHWHILE
	f.IndentWidth = 2
	got := DisplayPAD(pad, f)
	want := "[0, [\n  [@:=, 1, [@quote, nil]]\n], 1]\n"
	if got != want {
		t.Fatalf("got:\n%q\nwant:\n%q", got, want)
	}
}

func Test_DisplayPAD_MultipleStatementsCommaSeparated(t *testing.T) {
	pad := []any{0, []any{
		[]any{":=", 1, []any{"quote", "nil"}},
		[]any{":=", 2, []any{"var", 1}},
	}, 2}
	got := DisplayPAD(pad, FormatHWHILE)
	want := "[0, [\n    [@:=, 1, [@quote, nil]],\n    [@:=, 2, [@var, 1]]\n], 2]\n"
	if got != want {
		t.Fatalf("got:\n%q\nwant:\n%q", got, want)
	}
}
