// ==============================================================================================
// FILE: eval/eval.go
// ==============================================================================================
// PACKAGE: eval
// PURPOSE: The stepwise, cooperative Evaluator. Holds a LIFO node stack of block names and
//          drives Statement.Execute one node at a time, interpreting the returned NextAction
//          against the stack and post-processing emitted values (symbol substitution and
//          backtick string interpolation). Mirrors the teacher's eval.Eval in spirit -- a single
//          driver type walking program nodes against an environment -- but trades the teacher's
//          tree-walking recursion for an explicit, suspendable node stack, since a host must be
//          able to pause and resume iteration between steps.
// ==============================================================================================

package eval

import (
	"strings"
	"unicode"

	"lichen/ast"
	"lichen/env"
	"lichen/logic"
	"lichen/mutate"
	"lichen/value"
)

// Evaluator drives a program: a node stack over a fixed set of source
// blocks, sharing one data store and host-function registry.
type Evaluator struct {
	store     *env.Store
	blocks    map[string]*ast.Block
	functions mutate.Functions
	stack     []string
}

// New creates an Evaluator over blocks and store, with the stack seeded to
// ["root"] per the initial state.
func New(store *env.Store, blocks map[string]*ast.Block, functions mutate.Functions) *Evaluator {
	return &Evaluator{
		store:     store,
		blocks:    blocks,
		functions: functions,
		stack:     []string{"root"},
	}
}

// Store exposes the underlying data store, e.g. for a host to seed or
// inspect data blocks directly.
func (e *Evaluator) Store() *env.Store { return e.store }

// Advance pushes name onto the stack. It is how a host resumes an Await or
// chooses a Select option: neither next-action auto-pushes its target, so
// the host must call Advance with the node it picked.
func (e *Evaluator) Advance(name string) {
	e.stack = append(e.stack, name)
}

// Next runs the step algorithm until a statement yields values or a
// next-action, or the stack empties. ok is false once iteration has ended.
func (e *Evaluator) Next() (values []value.Value, next *ast.NextAction, ok bool) {
	for {
		if len(e.stack) == 0 {
			return nil, nil, false
		}
		top := len(e.stack) - 1
		n := e.stack[top]

		blk, exists := e.blocks[n]
		if !exists || blk.Cursor >= len(blk.Stmts) {
			if exists {
				blk.Cursor = 0
			}
			e.stack = e.stack[:top]
			continue
		}

		stmt := blk.Stmts[blk.Cursor]

		if stmt.Kind == ast.OrKind && !blk.OrValid {
			blk.Cursor++
			continue
		}
		blk.Cursor++

		ctx := stepContext{e: e, nodeName: n}
		vals, na := stmt.Execute(ctx)
		vals = e.postProcess(ctx, vals)

		e.applyNext(n, na)

		if len(vals) == 0 && na == nil {
			continue
		}
		return vals, na, true
	}
}

// applyNext interprets a statement's next-action against the stack. n is
// the node that was current when the statement ran.
func (e *Evaluator) applyNext(n string, na *ast.NextAction) {
	if na == nil {
		return
	}
	switch na.Kind {
	case ast.NowKind:
		e.stack = []string{na.Node}

	case ast.CallKind:
		e.stack = append(e.stack, na.Node)

	case ast.BackKind:
		if len(e.stack) > 0 {
			e.stack = e.stack[:len(e.stack)-1]
		}

	case ast.RestartKind:
		target := n
		if na.RestartHasNode {
			target = na.Node
		}
		if blk, ok := e.blocks[target]; ok {
			blk.Cursor = 0
		}

	case ast.ClearKind:
		e.stack = []string{n}

	case ast.ExitKind:
		e.stack = nil

	case ast.AwaitKind, ast.SelectKind:
		// Neither pushes automatically; the host must call Advance.
	}
}

// postProcess resolves every emitted Sym to its terminal value and splices
// backtick-delimited symbol references inside emitted strings.
func (e *Evaluator) postProcess(ctx stepContext, values []value.Value) []value.Value {
	out := make([]value.Value, len(values))
	for i, v := range values {
		switch v.Kind {
		case value.SymKind:
			if resolved, ok := ctx.Resolve(v.Sym); ok {
				out[i] = resolved
			} else {
				out[i] = v
			}
		case value.StringKind:
			out[i] = spliceString(ctx, v.Str)
		default:
			out[i] = v
		}
	}
	return out
}

// backtickSpan is one "`symbol" run found inside a string being spliced.
type backtickSpan struct {
	start, end int
	name       string
}

// spliceString implements the interpolation rule: a lone backtick begins a
// symbol segment terminated by whitespace or another backtick; each segment
// is replaced by its resolved value's rendered text, except that a string
// consisting of exactly one backtick-word is replaced by the resolved value
// itself, preserving its type.
func spliceString(r logic.NameResolver, s string) value.Value {
	runes := []rune(s)
	var spans []backtickSpan

	for i := 0; i < len(runes); i++ {
		if runes[i] != '`' {
			continue
		}
		j := i + 1
		for j < len(runes) && runes[j] != '`' && !unicode.IsSpace(runes[j]) {
			j++
		}
		end := j
		if j < len(runes) && runes[j] == '`' {
			end = j + 1 // closing delimiter: consume it rather than rescanning it as a new span
		}
		spans = append(spans, backtickSpan{start: i, end: end, name: string(runes[i+1 : j])})
		i = end - 1
	}

	if len(spans) == 0 {
		return value.String(s)
	}

	if len(spans) == 1 && spans[0].start == 0 && spans[0].end == len(runes) {
		if resolved, ok := r.Resolve(spans[0].name); ok {
			return resolved
		}
		return value.String(s)
	}

	var b strings.Builder
	last := 0
	for _, sp := range spans {
		b.WriteString(string(runes[last:sp.start]))
		if resolved, ok := r.Resolve(sp.name); ok {
			b.WriteString(resolved.Text())
		} else {
			// Unbound: fall back to the original word, backtick included.
			b.WriteString(string(runes[sp.start : sp.end]))
		}
		last = sp.end
	}
	b.WriteString(string(runes[last:]))
	return value.String(b.String())
}
