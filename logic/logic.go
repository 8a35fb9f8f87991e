// ==============================================================================================
// FILE: logic/logic.go
// ==============================================================================================
// PACKAGE: logic
// PURPOSE: Boolean predicates: identity, negation, ordering, and composite aggregation.
//          A Logic value is parsed once and compiled lazily into a closure cached by the
//          owning source block; the closure's contract is "true/false/no-result" with
//          no-result folded to false by every caller (Gt/Lt). Unresolved names are
//          asymmetric: an unresolved Is is false, an unresolved IsNot is true (see Compile).
// ==============================================================================================

package logic

import (
	"fmt"
	"strings"

	"lichen/ir"
	"lichen/value"
)

// Kind distinguishes the five predicate shapes.
type Kind int

const (
	IsKind Kind = iota
	IsNotKind
	GtKind
	LtKind
	CompositeKind
)

// CompositeOp names the aggregation rule for a Composite predicate.
type CompositeOp int

const (
	All CompositeOp = iota
	Any
	None
)

func ParseCompositeOp(s string) (CompositeOp, bool) {
	switch s {
	case "all":
		return All, true
	case "any":
		return Any, true
	case "none":
		return None, true
	default:
		return 0, false
	}
}

// Logic is the parsed, uncompiled predicate. Name is used by IsKind/IsNotKind;
// Left/Right by GtKind/LtKind; Op/Members by CompositeKind.
type Logic struct {
	Kind    Kind
	Name    string
	Left    value.Value
	Right   value.Value
	Op      CompositeOp
	Members []string
}

func Is(name string) Logic    { return Logic{Kind: IsKind, Name: name} }
func IsNot(name string) Logic { return Logic{Kind: IsNotKind, Name: name} }
func Gt(left, right value.Value) Logic {
	return Logic{Kind: GtKind, Left: left, Right: right}
}
func Lt(left, right value.Value) Logic {
	return Logic{Kind: LtKind, Left: left, Right: right}
}
func Composite(op CompositeOp, members []string) Logic {
	return Logic{Kind: CompositeKind, Op: op, Members: members}
}

// Resolver is the minimal numeric-resolution contract needed by Gt/Lt
// operands (value.GetNum).
type Resolver = value.Resolver

// NameResolver resolves a bare name against the evaluator's lookup order:
// the owning block's compiled-predicate table first, then the data store's
// symbol chain. It is the same contract the evaluator's own resolve()
// exposes, narrowed to what Is/IsNot/Composite need.
type NameResolver interface {
	Resolve(name string) (value.Value, bool)
}

// FullResolver is what Compile needs: name-based lookup for Is/IsNot/
// Composite, plus chain-following numeric resolution for Gt/Lt operands.
type FullResolver interface {
	NameResolver
	Resolver
}

// Predicate is a compiled, cacheable Logic. Evaluating it never panics and
// never propagates an error; "no result" collapses to false, matching the
// spec's directive that Gt/Lt ambiguity is "treated as false by callers."
type Predicate func(FullResolver) bool

// Parse builds a simple (non-composite) Logic from a statement's tail
// tokens. A single token is Is/IsNot depending on a leading '!' (this path
// is only reached when the eager-negation sugar did not already rewrite the
// token, e.g. when Logic.Parse is exercised directly). Three tokens are
// "key > value" or "key < value".
func Parse(tokens []ir.Token) (Logic, error) {
	switch len(tokens) {
	case 1:
		name := tokens[0].String()
		if strings.HasPrefix(name, "!") {
			return IsNot(strings.TrimPrefix(name, "!")), nil
		}
		return Is(name), nil
	case 3:
		left, err := value.FromIR(tokens[0])
		if err != nil {
			return Logic{}, fmt.Errorf("logic: invalid left operand: %w", err)
		}
		op := tokens[1].String()
		right, err := value.FromIR(tokens[2])
		if err != nil {
			return Logic{}, fmt.Errorf("logic: invalid right operand: %w", err)
		}
		switch op {
		case ">":
			return Gt(left, right), nil
		case "<":
			return Lt(left, right), nil
		default:
			return Logic{}, fmt.Errorf("logic: invalid comparison operator %q", op)
		}
	default:
		return Logic{}, fmt.Errorf("logic: unbalanced logic syntax (%d tokens)", len(tokens))
	}
}

// ParseComposite builds a Composite Logic from a "name:kind" header's kind
// string and the statement's member tokens.
func ParseComposite(kind string, tokens []ir.Token) (Logic, error) {
	op, ok := ParseCompositeOp(kind)
	if !ok {
		return Logic{}, fmt.Errorf("logic: unknown composite kind %q", kind)
	}
	members := make([]string, 0, len(tokens))
	for _, t := range tokens {
		members = append(members, t.String())
	}
	if len(members) == 0 {
		return Logic{}, fmt.Errorf("logic: composite predicate has no members")
	}
	return Composite(op, members), nil
}

// Compile turns l into a cacheable Predicate. Compilation is pure (no
// resolution happens until the returned Predicate is invoked).
func (l Logic) Compile() Predicate {
	switch l.Kind {
	case IsKind:
		name := l.Name
		return func(r FullResolver) bool {
			v, ok := r.Resolve(name)
			if !ok {
				return false
			}
			if v.Kind == value.BoolKind {
				return v.Bool
			}
			return true
		}
	case IsNotKind:
		name := l.Name
		return func(r FullResolver) bool {
			v, ok := r.Resolve(name)
			if !ok {
				return true
			}
			if v.Kind == value.BoolKind {
				return !v.Bool
			}
			return false
		}
	case GtKind:
		left, right := l.Left, l.Right
		return func(r FullResolver) bool {
			lv, lerr := left.GetNum(r)
			rv, rerr := right.GetNum(r)
			if lerr != nil || rerr != nil {
				return false
			}
			return lv > rv
		}
	case LtKind:
		left, right := l.Left, l.Right
		return func(r FullResolver) bool {
			lv, lerr := left.GetNum(r)
			rv, rerr := right.GetNum(r)
			if lerr != nil || rerr != nil {
				return false
			}
			return lv < rv
		}
	case CompositeKind:
		op, members := l.Op, l.Members
		return func(r FullResolver) bool {
			truths, falses := 0, 0
			for _, name := range members {
				v, ok := r.Resolve(name)
				if !ok {
					continue
				}
				if v.Kind == value.BoolKind {
					if v.Bool {
						truths++
					} else {
						falses++
					}
					continue
				}
				truths++ // existence of a non-bool resolved value counts as truthy
			}
			switch op {
			case All:
				return truths >= 1 && falses == 0
			case Any:
				return truths >= 1
			case None:
				return truths == 0 && falses >= 1
			default:
				return false
			}
		}
	default:
		return func(FullResolver) bool { return false }
	}
}
