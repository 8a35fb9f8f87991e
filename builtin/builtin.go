// ==============================================================================================
// FILE: builtin/builtin.go
// ==============================================================================================
// PACKAGE: builtin
// PURPOSE: The host-function registry a Mutation's "(name)" form dispatches into. Mirrors the
//          teacher's object.Builtins table (name -> callable, looked up by GetBuiltin) but keyed
//          against mutate.Functions' contract instead of the teacher's variadic Object signature:
//          a Func here takes already-resolved Values and the active data store, returning a
//          Value plus an ok flag rather than an Error object, matching the evaluator's "absorb
//          failures silently" calling convention.
// ==============================================================================================

package builtin

import (
	"math/rand"
	"strings"

	"lichen/mutate"
	"lichen/value"
)

// Func is one host function. It receives its already-resolved arguments (Sym
// arguments are substituted before Call is invoked, per mutate.Mutation.Apply)
// and the store in effect, for functions that need to read other paths.
type Func func(args []value.Value, store mutate.Store) (value.Value, bool)

// Registry is a name -> Func table satisfying mutate.Functions.
type Registry struct {
	fns map[string]Func
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{fns: map[string]Func{}}
}

// Register adds or replaces the function named name.
func (r *Registry) Register(name string, fn Func) {
	r.fns[name] = fn
}

// Call implements mutate.Functions.
func (r *Registry) Call(name string, args []value.Value, store mutate.Store) (value.Value, bool) {
	fn, ok := r.fns[name]
	if !ok {
		return value.Value{}, false
	}
	return fn(args, store)
}

var _ mutate.Functions = (*Registry)(nil)

// Default returns a Registry seeded with the stock function set: numeric
// clamping and extrema, a dice roll, and a handful of string helpers, the
// same flavor of toolkit as the teacher's Builtins table adapted to Lichen's
// game-logic domain.
func Default() *Registry {
	r := New()
	r.Register("clamp", clampFn)
	r.Register("min", minFn)
	r.Register("max", maxFn)
	r.Register("roll", rollFn)
	r.Register("upper", upperFn)
	r.Register("lower", lowerFn)
	r.Register("concat", concatFn)
	return r
}

func clampFn(args []value.Value, store mutate.Store) (value.Value, bool) {
	if len(args) != 3 {
		return value.Value{}, false
	}
	n, err := args[0].GetNum(store)
	if err != nil {
		return value.Value{}, false
	}
	lo, err := args[1].GetNum(store)
	if err != nil {
		return value.Value{}, false
	}
	hi, err := args[2].GetNum(store)
	if err != nil {
		return value.Value{}, false
	}
	switch {
	case n < lo:
		return value.Num(lo), true
	case n > hi:
		return value.Num(hi), true
	default:
		return value.Num(n), true
	}
}

func minFn(args []value.Value, store mutate.Store) (value.Value, bool) {
	return extremeFn(args, store, false)
}

func maxFn(args []value.Value, store mutate.Store) (value.Value, bool) {
	return extremeFn(args, store, true)
}

func extremeFn(args []value.Value, store mutate.Store, wantMax bool) (value.Value, bool) {
	if len(args) == 0 {
		return value.Value{}, false
	}
	best, err := args[0].GetNum(store)
	if err != nil {
		return value.Value{}, false
	}
	for _, a := range args[1:] {
		n, err := a.GetNum(store)
		if err != nil {
			return value.Value{}, false
		}
		if (wantMax && n > best) || (!wantMax && n < best) {
			best = n
		}
	}
	return value.Num(best), true
}

// rollFn simulates rolling a die of args[0] sides, returning a uniform
// integer in [1, sides].
func rollFn(args []value.Value, store mutate.Store) (value.Value, bool) {
	if len(args) != 1 {
		return value.Value{}, false
	}
	sides, err := args[0].GetNum(store)
	if err != nil || sides < 1 {
		return value.Value{}, false
	}
	return value.Num(float32(rand.Intn(int(sides)) + 1)), true
}

func upperFn(args []value.Value, _ mutate.Store) (value.Value, bool) {
	if len(args) != 1 || args[0].Kind != value.StringKind {
		return value.Value{}, false
	}
	return value.String(strings.ToUpper(args[0].Str)), true
}

func lowerFn(args []value.Value, _ mutate.Store) (value.Value, bool) {
	if len(args) != 1 || args[0].Kind != value.StringKind {
		return value.Value{}, false
	}
	return value.String(strings.ToLower(args[0].Str)), true
}

func concatFn(args []value.Value, _ mutate.Store) (value.Value, bool) {
	if len(args) == 0 {
		return value.Value{}, false
	}
	var b strings.Builder
	for _, a := range args {
		b.WriteString(a.Text())
	}
	return value.String(b.String()), true
}
