// ==============================================================================================
// FILE: eval/state.go
// ==============================================================================================
// PACKAGE: eval
// PURPOSE: Save/restore captures only the node stack, per the spec's division of
//          responsibility: the environment (blocks + data store) is the host's to keep, a saved
//          State is just "where was I" and can be paired with any compatible environment.
// ==============================================================================================

package eval

import (
	"lichen/ast"
	"lichen/env"
	"lichen/mutate"
)

// State is a saved evaluator position: the node stack alone.
type State struct {
	Stack []string
}

// Save captures the current node stack.
func (e *Evaluator) Save() State {
	stack := make([]string, len(e.stack))
	copy(stack, e.stack)
	return State{Stack: stack}
}

// Restore builds a new Evaluator with this saved stack, paired with blocks,
// store, and functions supplied by the host (which need not be the same
// instances the state was saved from, so long as they're shape-compatible).
func (s State) Restore(store *env.Store, blocks map[string]*ast.Block, functions mutate.Functions) *Evaluator {
	stack := make([]string, len(s.Stack))
	copy(stack, s.Stack)
	return &Evaluator{store: store, blocks: blocks, functions: functions, stack: stack}
}
