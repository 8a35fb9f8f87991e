// ==============================================================================================
// FILE: value/value.go
// ==============================================================================================
// PACKAGE: value
// PURPOSE: Defines the tagged runtime value of the Lichen language: String, Num, Bool,
//          Sym. Values are freely copied (plain structs, no pointers), mirroring the
//          teacher's primitive object types but collapsed into one sum type instead of
//          one Go type per kind, since Lichen has no user-visible type hierarchy to
//          dispatch on beyond this.
// ==============================================================================================

package value

import (
	"strconv"

	"lichen/ir"
)

// Kind identifies which arm of the Value sum is populated.
type Kind int

const (
	StringKind Kind = iota
	NumKind
	BoolKind
	SymKind
)

func (k Kind) String() string {
	switch k {
	case StringKind:
		return "String"
	case NumKind:
		return "Num"
	case BoolKind:
		return "Bool"
	case SymKind:
		return "Sym"
	default:
		return "Unknown"
	}
}

// Value is the tagged sum: exactly one of Str/Num/Bool/Sym is meaningful,
// selected by Kind.
type Value struct {
	Kind Kind
	Str  string
	Num  float32
	Bool bool
	Sym  string
}

// String constructs a String value.
func String(s string) Value { return Value{Kind: StringKind, Str: s} }

// Num constructs a Num value. Lichen uses the host's native 32-bit real.
func Num(n float32) Value { return Value{Kind: NumKind, Num: n} }

// Bool constructs a Bool value.
func Bool(b bool) Value { return Value{Kind: BoolKind, Bool: b} }

// Sym constructs a Sym value: an unresolved reference to a data-store entry
// or compiled predicate.
func Sym(name string) Value { return Value{Kind: SymKind, Sym: name} }

// Text returns the value's serialized form. Numbers use Go's shortest
// round-trippable formatting (no trailing zeros); booleans print
// "true"/"false"; strings and symbols print their text verbatim.
func (v Value) Text() string {
	switch v.Kind {
	case StringKind:
		return v.Str
	case SymKind:
		return v.Sym
	case NumKind:
		return strconv.FormatFloat(float64(v.Num), 'g', -1, 32)
	case BoolKind:
		return strconv.FormatBool(v.Bool)
	default:
		return ""
	}
}

// ErrMapLiteral is returned by FromIR when asked to convert a MapLiteral,
// which has no Value equivalent.
type ErrMapLiteral struct{}

func (ErrMapLiteral) Error() string { return "a map literal is not a valid value in this context" }

// FromIR converts a lexer-level IR token into a Value. The conversion is
// deterministic: Quoted becomes String; Raw becomes Num if it parses as a
// real, else Bool if it parses as a boolean literal, else Sym; MapLiteral is
// always an error.
func FromIR(t ir.Token) (Value, error) {
	switch t.Kind {
	case ir.Quoted:
		return String(t.Text), nil
	case ir.Raw:
		if n, err := strconv.ParseFloat(t.Text, 32); err == nil {
			return Num(float32(n)), nil
		}
		if b, err := strconv.ParseBool(t.Text); err == nil {
			return Bool(b), nil
		}
		return Sym(t.Text), nil
	default:
		return Value{}, ErrMapLiteral{}
	}
}

// Resolver is the minimal data-store contract Value needs in order to chase
// a Sym through chained symbol references. It is satisfied by env.Store;
// kept as a narrow interface here (rather than importing env) so that value
// has no dependency on the store's own implementation.
type Resolver interface {
	// ResolveChain follows name through zero or more Sym indirections in the
	// data store and returns the terminal value. ok is false if the chain
	// cannot be resolved at all (the initial lookup itself fails).
	ResolveChain(name string) (Value, bool)
}

// NotANumberError reports that a resolved value was not a Num.
type NotANumberError struct{ Got Kind }

func (e NotANumberError) Error() string { return "value is not a number: " + e.Got.String() }

// UnboundError reports that a symbol chain could not be resolved at all.
type UnboundError struct{ Name string }

func (e UnboundError) Error() string { return "unbound symbol: " + e.Name }

// GetNum returns the numeric value of v. A Num returns directly; a Sym
// walks store resolving chained symbol references. Fails with
// NotANumberError when the terminal value is not a Num, and UnboundError
// when the chain cannot be resolved.
func (v Value) GetNum(store Resolver) (float32, error) {
	switch v.Kind {
	case NumKind:
		return v.Num, nil
	case SymKind:
		resolved, ok := store.ResolveChain(v.Sym)
		if !ok {
			return 0, UnboundError{Name: v.Sym}
		}
		if resolved.Kind != NumKind {
			return 0, NotANumberError{Got: resolved.Kind}
		}
		return resolved.Num, nil
	default:
		return 0, NotANumberError{Got: v.Kind}
	}
}
