// ==============================================================================================
// FILE: ast/exec.go
// ==============================================================================================
// PACKAGE: ast
// PURPOSE: Per-statement execution. Each Statement reads and writes only through the narrow
//          Context interface so the evaluator's concrete environment type is the sole
//          implementer; ast itself never touches env/eval directly, avoiding an import cycle.
// ==============================================================================================

package ast

import (
	"lichen/logic"
	"lichen/mutate"
	"lichen/value"
)

// Context is everything a Statement needs to execute: name resolution (the
// block-predicate-then-store-chain order), the data store, the function
// registry, and the block's own or-valid flag.
type Context interface {
	logic.FullResolver
	mutate.Store
	Functions() mutate.Functions
	HasPredicate(name string) bool
	CompilePredicate(name string, l logic.Logic)
	OrValid() bool
	SetOrValid(bool)
}

// Execute runs s against ctx and returns the values it emits plus an
// optional next-action. It never returns an error: every failure mode
// (unresolved symbol, type mismatch) is absorbed into a default outcome per
// the core evaluation contract.
func (s Statement) Execute(ctx Context) ([]value.Value, *NextAction) {
	switch s.Kind {
	case LogicBindKind:
		ctx.SetOrValid(false)
		if !ctx.HasPredicate(s.Name) {
			ctx.CompilePredicate(s.Name, s.Logic)
		}
		return nil, nil

	case IfKind:
		if resolveTruthy(ctx, s.Name) {
			ctx.SetOrValid(false)
			return s.Values, s.Next
		}
		ctx.SetOrValid(true)
		return nil, nil

	case OrKind:
		// Reaching Execute means the evaluator already confirmed or-valid
		// was set; Or always fires here and clears the flag afterward.
		ctx.SetOrValid(false)
		return s.Values, s.Next

	case EmitKind:
		ctx.SetOrValid(false)
		return s.Values, nil

	case NextKind:
		ctx.SetOrValid(false)
		return nil, s.Next

	case MutateKind:
		ctx.SetOrValid(false)
		s.Mutation.Apply(ctx, ctx.Functions())
		return nil, nil

	case WhenKind:
		ctx.SetOrValid(false)
		for key, m := range s.When {
			if resolveTruthy(ctx, key) {
				m.Apply(ctx, ctx.Functions())
			}
		}
		return nil, nil

	default:
		return nil, nil
	}
}

// resolveTruthy implements the If/When lookup rule: a resolved Bool is
// truthy iff true; a resolved non-bool is truthy iff its rendered text
// differs from the lookup name itself (guards against a symbol resolving
// to its own name, which would otherwise read as permanently true); an
// unresolved name is falsy.
func resolveTruthy(ctx Context, name string) bool {
	v, ok := ctx.Resolve(name)
	if !ok {
		return false
	}
	if v.Kind == value.BoolKind {
		return v.Bool
	}
	return name != v.Text()
}
