// ==============================================================================================
// FILE: mutate/mutate.go
// ==============================================================================================
// PACKAGE: mutate
// PURPOSE: Data-store mutation: arithmetic, assignment, block cloning, and host-function
//          invocation. A Mutation is parsed once from a statement's tail tokens and applied
//          against whatever concrete store the evaluator supplies.
// ==============================================================================================

package mutate

import (
	"fmt"
	"strings"

	"lichen/ir"
	"lichen/value"
)

// Kind distinguishes the seven mutation shapes.
type Kind int

const (
	Add Kind = iota
	Sub
	Mul
	Div
	Swap
	New
	Fn
)

// Mutation is a parsed, unapplied mutation: the target path, the kind, and
// its already-value-converted arguments. FnName is only meaningful when
// Kind == Fn.
type Mutation struct {
	Kind   Kind
	Target string
	Args   []value.Value
	FnName string
}

// Store is the data-store contract a Mutation needs to apply itself: numeric
// chain resolution (to read the target's current value and Sym arguments),
// plain assignment, and block cloning for New.
type Store interface {
	value.Resolver
	Set(path string, v value.Value)
	CloneBlock(src, dest string) bool
}

// Functions is the host-function registry contract for Fn mutations.
type Functions interface {
	Call(name string, args []value.Value, store Store) (value.Value, bool)
}

// Parse builds a Mutation from a statement's tokens, including the leading
// "@"-prefixed target token. Exactly two tokens is a Swap (target, value).
// More than two is arithmetic/new/fn: (target, operator-or-tag, args...).
func Parse(tokens []ir.Token) (Mutation, error) {
	if len(tokens) < 2 {
		return Mutation{}, fmt.Errorf("mutate: missing mutation value")
	}

	target := strings.TrimPrefix(tokens[0].String(), "@")

	if len(tokens) == 2 {
		v, err := value.FromIR(tokens[1])
		if err != nil {
			return Mutation{}, fmt.Errorf("mutate: invalid swap value: %w", err)
		}
		return Mutation{Kind: Swap, Target: target, Args: []value.Value{v}}, nil
	}

	op := tokens[1].String()
	args := make([]value.Value, 0, len(tokens)-2)
	for _, t := range tokens[2:] {
		v, err := value.FromIR(t)
		if err != nil {
			return Mutation{}, fmt.Errorf("mutate: invalid argument: %w", err)
		}
		args = append(args, v)
	}

	switch op {
	case "+":
		return Mutation{Kind: Add, Target: target, Args: args}, nil
	case "-":
		return Mutation{Kind: Sub, Target: target, Args: args}, nil
	case "*":
		return Mutation{Kind: Mul, Target: target, Args: args}, nil
	case "/":
		return Mutation{Kind: Div, Target: target, Args: args}, nil
	case "new":
		return Mutation{Kind: New, Target: target, Args: args}, nil
	default:
		if fn, ok := parseFnTag(op); ok {
			return Mutation{Kind: Fn, Target: target, Args: args, FnName: fn}, nil
		}
		return Mutation{}, fmt.Errorf("mutate: unknown mutation operator %q", op)
	}
}

// parseFnTag recognizes a parenthesized host-function reference, e.g. "(heal)".
func parseFnTag(s string) (string, bool) {
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") && len(s) >= 2 {
		return s[1 : len(s)-1], true
	}
	return "", false
}

// Apply executes the mutation against store (and fns, for Fn mutations).
// Every failure mode here is absorbed silently per the core evaluation
// contract: a mutation that cannot resolve its operands simply does nothing.
func (m Mutation) Apply(store Store, fns Functions) {
	switch m.Kind {
	case Add, Sub, Mul, Div:
		m.applyArithmetic(store)
	case Swap:
		store.Set(m.Target, m.Args[0])
	case New:
		if len(m.Args) == 1 && m.Args[0].Kind == value.SymKind {
			store.CloneBlock(m.Args[0].Sym, m.Target)
		}
	case Fn:
		m.applyFn(store, fns)
	}
}

func (m Mutation) applyArithmetic(store Store) {
	if len(m.Args) == 0 {
		return
	}
	current, err := value.Sym(m.Target).GetNum(store)
	if err != nil {
		return
	}
	arg, err := m.Args[0].GetNum(store)
	if err != nil {
		return
	}

	var result float32
	switch m.Kind {
	case Add:
		result = current + arg
	case Sub:
		result = current - arg
	case Mul:
		result = current * arg
	case Div:
		result = current / arg
	}
	store.Set(m.Target, value.Num(result))
}

func (m Mutation) applyFn(store Store, fns Functions) {
	resolved := make([]value.Value, 0, len(m.Args))
	for _, a := range m.Args {
		if a.Kind == value.SymKind {
			v, ok := store.ResolveChain(a.Sym)
			if !ok {
				continue // unresolved Fn argument symbols are silently dropped
			}
			resolved = append(resolved, v)
			continue
		}
		resolved = append(resolved, a)
	}

	if fns == nil {
		return
	}
	if result, ok := fns.Call(m.FnName, resolved, store); ok {
		store.Set(m.Target, result)
	}
}
