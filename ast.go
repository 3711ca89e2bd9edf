// ast.go
//
// The AST: a tagged set of node variants, each carrying a Complete flag.
// Nodes are created by the parser and never mutated afterward. Missing
// child slots are represented as a nil Expr/Cmd; there is no separate
// "missing" sentinel type, since a typed nil already says "absent"
// unambiguously at every call site that checks it.
//
// Two parallel node families:
//   - Expr: identifier, tree literal, operation, equal (reserved, unparsed).
//   - Cmd: assignment, conditional, loop, switch.
//
// Both carry Pos() for diagnostics and Complete() for the completeness
// invariant (derivable bottom-up; stored at construction
// time rather than recomputed, since the parser already knows it the
// moment it finishes a node).
package corewhile

// Expr is any WHILE expression node.
type Expr interface {
	Pos() Position
	Complete() bool
	exprNode()
}

// Cmd is any WHILE statement node.
type Cmd interface {
	Pos() Position
	Complete() bool
	cmdNode()
}

// Identifier is a variable reference. Always complete: referencing an
// unset variable is a runtime concern (yields nil), not a parse error.
type Identifier struct {
	Value    string
	position Position
}

func (n *Identifier) Pos() Position  { return n.position }
func (n *Identifier) Complete() bool { return true }
func (n *Identifier) exprNode()      {}

// TreeLiteral is a tree value produced from a numeric literal in the
// extended dialect. Complete unless it was parsed while pure_only
// disallowed it; the dialect diagnostic has to make some node incomplete
// so that a clean Complete() still implies an empty error list.
type TreeLiteral struct {
	Tree     Tree
	complete bool
	position Position
}

func (n *TreeLiteral) Pos() Position  { return n.position }
func (n *TreeLiteral) Complete() bool { return n.complete }
func (n *TreeLiteral) exprNode()      {}

// Op names the three WHILE primitives. hd/tl are unary (one Arg); cons is
// binary (two Args).
type Op string

const (
	OpHd   Op = "hd"
	OpTl   Op = "tl"
	OpCons Op = "cons"
)

// Operation is an hd/tl/cons application. Args has length 1 for hd/tl, 2
// for cons. A nil element means that argument is missing.
type Operation struct {
	Op       Op
	Args     []Expr
	complete bool
	position Position
}

func (n *Operation) Pos() Position  { return n.position }
func (n *Operation) Complete() bool { return n.complete }
func (n *Operation) exprNode()      {}

// EqualExpr is reserved for an equality expression the AST type admits but the
// parser never emits, kept for forward compatibility with a future
// grammar extension, deliberately dead code today.
type EqualExpr struct {
	Left, Right Expr
	complete    bool
	position    Position
}

func (n *EqualExpr) Pos() Position  { return n.position }
func (n *EqualExpr) Complete() bool { return n.complete }
func (n *EqualExpr) exprNode()      {}

// operationComplete is the completeness predicate for operations: an
// operation is complete iff every argument is present and itself
// complete. Identifiers always are; a tree literal is not when pure_only
// rejected it.
func operationComplete(args ...Expr) bool {
	for _, a := range args {
		if a == nil || !a.Complete() {
			return false
		}
	}
	return true
}

// Assign is `ident := arg`. Arg is nil if the right-hand side is missing.
type Assign struct {
	Ident    string
	Arg      Expr
	complete bool
	position Position
}

func (n *Assign) Pos() Position  { return n.position }
func (n *Assign) Complete() bool { return n.complete }
func (n *Assign) cmdNode()       {}

// Cond is `if Condition { If } [else { Else }]`. A missing else is an
// empty, complete slice, not itself a completeness failure.
type Cond struct {
	Condition Expr
	If        []Cmd
	Else      []Cmd
	complete  bool
	position  Position
}

func (n *Cond) Pos() Position  { return n.position }
func (n *Cond) Complete() bool { return n.complete }
func (n *Cond) cmdNode()       {}

// Loop is `while Condition { Body }`.
type Loop struct {
	Condition Expr
	Body      []Cmd
	complete  bool
	position  Position
}

func (n *Loop) Pos() Position  { return n.position }
func (n *Loop) Complete() bool { return n.complete }
func (n *Loop) cmdNode()       {}

// SwitchCase is one `case Cond: Body` clause of a Switch. It is not itself
// a Cmd; it only ever appears inside a Switch's Cases slice.
type SwitchCase struct {
	Cond     Expr
	Body     []Cmd
	complete bool
	position Position
}

func (n *SwitchCase) Pos() Position  { return n.position }
func (n *SwitchCase) Complete() bool { return n.complete }

// SwitchDefault is the optional `default: Body` clause of a Switch.
type SwitchDefault struct {
	Body     []Cmd
	complete bool
	position Position
}

func (n *SwitchDefault) Pos() Position  { return n.position }
func (n *SwitchDefault) Complete() bool { return n.complete }

// Switch is the extended dialect's switch statement. Default is never nil
// after parsing: a missing `default` clause is synthesized as an empty,
// complete SwitchDefault.
type Switch struct {
	Condition Expr
	Cases     []*SwitchCase
	Default   *SwitchDefault
	complete  bool
	position  Position
}

func (n *Switch) Pos() Position  { return n.position }
func (n *Switch) Complete() bool { return n.complete }
func (n *Switch) cmdNode()       {}

// Program is the top-level `name read input { body } write output` frame.
type Program struct {
	Name     string
	Input    string
	Output   string
	Body     []Cmd
	complete bool
	position Position
}

func (n *Program) Pos() Position  { return n.position }
func (n *Program) Complete() bool { return n.complete }

// blockComplete reports whether every command in cmds is complete, the
// shared rule used by Cond/Loop/Switch/Program bodies.
func blockComplete(cmds []Cmd) bool {
	for _, c := range cmds {
		if c == nil || !c.Complete() {
			return false
		}
	}
	return true
}
