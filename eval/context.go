// ==============================================================================================
// FILE: eval/context.go
// ==============================================================================================
// PACKAGE: eval
// PURPOSE: stepContext is the sole implementer of ast.Context: it binds one Step call's current
//          block to the shared data store, giving Resolve its two-stage lookup order (the
//          block's compiled-predicate table first, then the store's symbol chain) per the
//          evaluator's resolve() algorithm.
// ==============================================================================================

package eval

import (
	"lichen/ast"
	"lichen/logic"
	"lichen/mutate"
	"lichen/value"
)

// stepContext is a thin, no-alloc-beyond-itself view over the Evaluator
// bound to whichever node is current for this Step call.
type stepContext struct {
	e        *Evaluator
	nodeName string
}

var _ ast.Context = stepContext{}

func (c stepContext) block() *ast.Block {
	return c.e.blocks[c.nodeName]
}

// Resolve implements the evaluator's two-stage lookup: the current block's
// compiled-predicate table shadows the data store per invariant (3).
func (c stepContext) Resolve(name string) (value.Value, bool) {
	if blk := c.block(); blk != nil {
		if v, ok := blk.ResolveLocal(name, c); ok {
			return v, ok
		}
	}
	return c.e.store.ResolveChain(name)
}

// ResolveChain satisfies value.Resolver / mutate.Store: numeric operand
// resolution always walks the data store directly, bypassing the
// block-local predicate table (predicates produce booleans, not numbers).
func (c stepContext) ResolveChain(name string) (value.Value, bool) {
	return c.e.store.ResolveChain(name)
}

func (c stepContext) Set(path string, v value.Value) {
	c.e.store.Set(path, v)
}

func (c stepContext) CloneBlock(src, dest string) bool {
	return c.e.store.CloneBlock(src, dest)
}

func (c stepContext) Functions() mutate.Functions {
	return c.e.functions
}

func (c stepContext) HasPredicate(name string) bool {
	blk := c.block()
	return blk != nil && blk.HasPredicate(name)
}

func (c stepContext) CompilePredicate(name string, l logic.Logic) {
	if blk := c.block(); blk != nil {
		blk.CompilePredicate(name, l)
	}
}

func (c stepContext) OrValid() bool {
	blk := c.block()
	return blk != nil && blk.OrValid
}

func (c stepContext) SetOrValid(v bool) {
	if blk := c.block(); blk != nil {
		blk.OrValid = v
	}
}
