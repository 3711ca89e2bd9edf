// interpreter.go: explicit-stack evaluator for WHILE programs.
//
// OVERVIEW
// --------
// WHILE programs can loop to arbitrary depth and build arbitrarily deep
// trees; a naively recursive evaluator walks the host call stack in lock
// step and eventually overflows it. This evaluator instead keeps two heap-allocated LIFO stacks of its own:
//
//   - a command stack, holding block/assign/cond/loop frames;
//   - an expression stack, holding one frame per operation still being
//     resolved, rebuilt fresh for every expression evaluated.
//
// Neither stack's depth is bounded by Go's own stack, only by available
// memory.
//
// Scope
// -----
// Public: Interpreter, NewInterpreter, (*Interpreter).Run, RunOptions,
// ErrMalformedAST.
// Private: the frame types and the two evaluation loops.
package corewhile

import "errors"

// ErrMalformedAST is returned by Run when the program AST violates a
// structural invariant the interpreter depends on: a Switch node (the
// interpreter has no rule to execute one) or a nil expression/command
// slot. This indicates a caller contract violation, not a user program
// bug. For an AST returned by this package's own Parser it occurs only
// when the program is incomplete or contains a switch statement, which
// Parse emits in the extended dialect and nothing in this package
// desugars.
var ErrMalformedAST = errors.New("corewhile: malformed AST")

// RunOptions is reserved for future interpreter configuration.
// The zero value is the only behavior defined today.
type RunOptions struct{}

// Interpreter executes WHILE programs. It holds no state between calls to
// Run; construction is only present so the API shape matches hosts that
// want to configure an interpreter once and reuse it.
type Interpreter struct{}

// NewInterpreter returns a ready-to-use Interpreter.
func NewInterpreter() *Interpreter { return &Interpreter{} }

// Run executes program against input and returns the output variable's
// final binding. It initializes the variable store with
// program.Input ↦ input and every other identifier implicitly nil,
// executes the body, then reads back program.Output (nil if never
// assigned).
func (ip *Interpreter) Run(program *Program, input Tree, _ RunOptions) (Tree, error) {
	store := map[string]Tree{program.Input: input}

	stack := []cmdFrame{&blockFrame{remaining: program.Body}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		next, err := top.step(store)
		if err != nil {
			return Nil, err
		}
		stack = append(stack, next...)
	}

	if v, ok := store[program.Output]; ok {
		return v, nil
	}
	return Nil, nil
}

// cmdFrame is one element of the command stack. step executes the frame
// against store and returns the frames to push in its place (possibly
// none, possibly several), pushed in the given order so the last element
// runs first, matching how block re-pushes itself before its head.
type cmdFrame interface {
	step(store map[string]Tree) ([]cmdFrame, error)
}

// blockFrame runs a command list: pop the head, push itself back with
// the tail (if non-empty) so the head's own pushes run to completion
// first, then push a frame for the head.
type blockFrame struct {
	remaining []Cmd
}

func (f *blockFrame) step(map[string]Tree) ([]cmdFrame, error) {
	if len(f.remaining) == 0 {
		return nil, nil
	}
	head, tail := f.remaining[0], f.remaining[1:]
	headFrame, err := cmdToFrame(head)
	if err != nil {
		return nil, err
	}
	if len(tail) == 0 {
		return []cmdFrame{headFrame}, nil
	}
	return []cmdFrame{&blockFrame{remaining: tail}, headFrame}, nil
}

// assignFrame evaluates arg and writes it into store under ident.
type assignFrame struct {
	ident string
	arg   Expr
}

func (f *assignFrame) step(store map[string]Tree) ([]cmdFrame, error) {
	v, err := evalExpr(f.arg, store)
	if err != nil {
		return nil, err
	}
	store[f.ident] = v
	return nil, nil
}

// condFrame evaluates its condition once and pushes the matching branch
// as a block.
type condFrame struct {
	condition Expr
	ifBody    []Cmd
	elseBody  []Cmd
}

func (f *condFrame) step(store map[string]Tree) ([]cmdFrame, error) {
	v, err := evalExpr(f.condition, store)
	if err != nil {
		return nil, err
	}
	if !v.IsNil() {
		return []cmdFrame{&blockFrame{remaining: f.ifBody}}, nil
	}
	return []cmdFrame{&blockFrame{remaining: f.elseBody}}, nil
}

// loopFrame evaluates its condition; while true it pushes itself back
// THEN the body, so the body runs before the condition is re-tested.
type loopFrame struct {
	condition Expr
	body      []Cmd
}

func (f *loopFrame) step(store map[string]Tree) ([]cmdFrame, error) {
	v, err := evalExpr(f.condition, store)
	if err != nil {
		return nil, err
	}
	if v.IsNil() {
		return nil, nil
	}
	return []cmdFrame{f, &blockFrame{remaining: f.body}}, nil
}

// cmdToFrame converts one parsed Cmd into the frame that executes it.
func cmdToFrame(c Cmd) (cmdFrame, error) {
	switch n := c.(type) {
	case nil:
		return nil, ErrMalformedAST
	case *Assign:
		if n.Arg == nil {
			return nil, ErrMalformedAST
		}
		return &assignFrame{ident: n.Ident, arg: n.Arg}, nil
	case *Cond:
		if n.Condition == nil {
			return nil, ErrMalformedAST
		}
		return &condFrame{condition: n.Condition, ifBody: n.If, elseBody: n.Else}, nil
	case *Loop:
		if n.Condition == nil {
			return nil, ErrMalformedAST
		}
		return &loopFrame{condition: n.Condition, body: n.Body}, nil
	default:
		// *Switch and any future variant: not a command the core knows
		// how to execute directly (see ErrMalformedAST's doc comment).
		return nil, ErrMalformedAST
	}
}

// evalFrame is one node of the expression stack: an operation whose args
// are resolved left-to-right, writing its eventual literal result into
// slotIdx of parent.args once every argument is itself a literal.
// args is a clone of the AST's own argument slice, so writing literal
// results into it cannot leak into siblings of the original AST.
type evalFrame struct {
	op      Op
	args    []Expr
	parent  *evalFrame
	slotIdx int
}

// evalExpr evaluates e against store using an explicit stack of
// evalFrames rather than host recursion. The root frame holds e as its
// sole argument slot and is never popped; the loop terminates
// when the root's slot holds a resolved literal.
func evalExpr(e Expr, store map[string]Tree) (Tree, error) {
	if e == nil {
		return Nil, ErrMalformedAST
	}
	root := &evalFrame{args: []Expr{e}}
	stack := []*evalFrame{root}

	for {
		top := stack[len(stack)-1]

		idx := -1
		for i, a := range top.args {
			if _, ok := a.(*TreeLiteral); !ok {
				idx = i
				break
			}
		}

		if idx == -1 {
			if top == root {
				return root.args[0].(*TreeLiteral).Tree, nil
			}
			val, err := applyOp(top.op, top.args)
			if err != nil {
				return Nil, err
			}
			top.parent.args[top.slotIdx] = &TreeLiteral{Tree: val, complete: true}
			stack = stack[:len(stack)-1]
			continue
		}

		switch n := top.args[idx].(type) {
		case nil:
			return Nil, ErrMalformedAST
		case *Identifier:
			top.args[idx] = &TreeLiteral{Tree: lookupIdentifier(n.Value, store), complete: true}
		case *Operation:
			child := &evalFrame{op: n.Op, args: cloneArgs(n.Args), parent: top, slotIdx: idx}
			stack = append(stack, child)
		default:
			// *EqualExpr (reserved, never emitted by this package's parser)
			// or any other future variant: the interpreter doesn't know
			// how to resolve it.
			return Nil, ErrMalformedAST
		}
	}
}

func cloneArgs(args []Expr) []Expr {
	return append([]Expr(nil), args...)
}

// lookupIdentifier resolves a variable reference: the reserved name nil
// is always Nil; every other name defaults to Nil if never assigned.
func lookupIdentifier(name string, store map[string]Tree) Tree {
	if name == "nil" {
		return Nil
	}
	if v, ok := store[name]; ok {
		return v
	}
	return Nil
}

// applyOp computes an operation whose args have all resolved to
// TreeLiteral values. hd/tl of nil are nil, never errors.
func applyOp(o Op, args []Expr) (Tree, error) {
	switch o {
	case OpCons:
		if len(args) != 2 {
			return Nil, ErrMalformedAST
		}
		l := args[0].(*TreeLiteral).Tree
		r := args[1].(*TreeLiteral).Tree
		return Cons(l, r), nil
	case OpHd:
		if len(args) != 1 {
			return Nil, ErrMalformedAST
		}
		return Hd(args[0].(*TreeLiteral).Tree), nil
	case OpTl:
		if len(args) != 1 {
			return Nil, ErrMalformedAST
		}
		return Tl(args[0].(*TreeLiteral).Tree), nil
	default:
		return Nil, ErrMalformedAST
	}
}
