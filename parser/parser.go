// ==============================================================================================
// FILE: parser/parser.go
// ==============================================================================================
// PACKAGE: parser
// PURPOSE: Block-level syntactic construction. Consumes lexer statement events, applies the
//          two statement-building sugars (eager '!' negation, If/Or trailing next-tag parse),
//          and produces typed ast.Block / data-block values ready to be inserted into an
//          environment.
// ==============================================================================================

package parser

import (
	"fmt"
	"strings"

	"lichen/ast"
	"lichen/ir"
	"lichen/lexer"
	"lichen/logic"
	"lichen/mutate"
	"lichen/value"
)

// BlockKind distinguishes a parsed block's two possible shapes.
type BlockKind int

const (
	SourceBlockKind BlockKind = iota
	DataBlockKind
)

// ParsedBlock is one top-level, ';'-terminated unit produced by the parser.
type ParsedBlock struct {
	Kind     BlockKind
	Source   *ast.Block
	DataName string
	Data     ast.Data
}

// ParseString parses a complete source document into its blocks.
func ParseString(src string) ([]ParsedBlock, error) {
	blocks, err := parseString(src)
	if err != nil {
		return nil, wrapParseError(err)
	}
	return blocks, nil
}

func parseString(src string) ([]ParsedBlock, error) {
	lx := lexer.New(src)
	var blocks []ParsedBlock

	var headerDone bool
	var cur ParsedBlock
	seen := map[string]bool{}
	wasIf := false

	finishBlock := func() error {
		if !headerDone {
			return nil // no statements accumulated since the last ';': nothing to finish
		}
		blocks = append(blocks, cur)
		cur = ParsedBlock{}
		headerDone = false
		seen = map[string]bool{}
		wasIf = false
		return nil
	}

	for {
		ev := lx.Next()
		switch ev.Kind {
		case lexer.EventEOF:
			return blocks, nil

		case lexer.EventBlockEnd:
			if err := finishBlock(); err != nil {
				return nil, err
			}

		case lexer.EventStatement:
			tokens := ev.Tokens
			if !headerDone {
				blk, err := parseHeader(tokens)
				if err != nil {
					return nil, err
				}
				cur = blk
				headerDone = true
				continue
			}

			if cur.Kind == DataBlockKind {
				if err := applyDataStatement(&cur, tokens); err != nil {
					return nil, err
				}
				continue
			}

			synthetics, main, err := parseStatement(tokens, seen)
			if err != nil {
				return nil, err
			}
			for _, s := range synthetics {
				if err := appendSourceStatement(cur.Source, s, &wasIf); err != nil {
					return nil, err
				}
			}
			if err := appendSourceStatement(cur.Source, main, &wasIf); err != nil {
				return nil, err
			}
		}
	}
}

func appendSourceStatement(b *ast.Block, s ast.Statement, wasIf *bool) error {
	if s.Kind == ast.OrKind && !*wasIf {
		return fmt.Errorf("parser: 'or' must immediately follow 'if' in block %q", b.Name)
	}
	b.Stmts = append(b.Stmts, s)
	*wasIf = s.Kind == ast.IfKind
	return nil
}

func parseHeader(tokens []ir.Token) (ParsedBlock, error) {
	if len(tokens) == 0 {
		return ParsedBlock{}, fmt.Errorf("parser: empty block header")
	}
	if tokens[0].IsRaw("def") {
		if len(tokens) < 2 {
			return ParsedBlock{}, fmt.Errorf("parser: 'def' header requires a name")
		}
		blk := ParsedBlock{Kind: DataBlockKind, DataName: tokens[1].String(), Data: ast.Data{}}
		rest := tokens[2:]
		if len(rest)%2 != 0 {
			return ParsedBlock{}, fmt.Errorf("parser: 'def' header inline entries in block %q need a key and a value for each", blk.DataName)
		}
		for i := 0; i+1 < len(rest); i += 2 {
			v, err := value.FromIR(rest[i+1])
			if err != nil {
				return ParsedBlock{}, fmt.Errorf("parser: data entry in block %q: %w", blk.DataName, err)
			}
			blk.Data[rest[i].String()] = v
		}
		return blk, nil
	}
	if len(tokens) != 1 {
		return ParsedBlock{}, fmt.Errorf("parser: source block header requires exactly one name, got %d tokens", len(tokens))
	}
	return ParsedBlock{Kind: SourceBlockKind, Source: ast.NewBlock(tokens[0].String())}, nil
}

func applyDataStatement(b *ParsedBlock, tokens []ir.Token) error {
	if len(tokens) < 2 {
		return fmt.Errorf("parser: data entry in block %q needs a key and a value", b.DataName)
	}
	v, err := value.FromIR(tokens[len(tokens)-1])
	if err != nil {
		return fmt.Errorf("parser: data entry in block %q: %w", b.DataName, err)
	}
	key := tokens[len(tokens)-2].String()
	b.Data[key] = v
	return nil
}

// parseStatement applies the eager-negation sugar and dispatches to the
// correct statement-form builder. synthetics holds any not_<rest> LogicBind
// statements this statement's '!' sugar newly requires (deduplicated across
// the enclosing block via seen).
func parseStatement(tokens []ir.Token, seen map[string]bool) (synthetics []ast.Statement, main ast.Statement, err error) {
	tokens, synthetics = applyNegationSugar(tokens, seen)

	if len(tokens) == 0 {
		return nil, ast.Statement{}, fmt.Errorf("parser: empty statement")
	}

	head := tokens[0].String()

	switch {
	case tokens[0].Kind == ir.Raw && strings.HasPrefix(head, "@"):
		m, err := mutate.Parse(tokens)
		if err != nil {
			return nil, ast.Statement{}, err
		}
		return synthetics, ast.Mutate(m), nil

	case head == "when":
		if len(tokens) != 2 || tokens[1].Kind != ir.MapLiteral {
			return nil, ast.Statement{}, fmt.Errorf("parser: 'when' requires a single map literal")
		}
		whenMap, err := parseWhenMap(tokens[1])
		if err != nil {
			return nil, ast.Statement{}, err
		}
		return synthetics, ast.When(whenMap), nil

	case head == "if":
		if len(tokens) < 3 {
			return nil, ast.Statement{}, fmt.Errorf("parser: 'if' requires a name and at least one value")
		}
		name := tokens[1].String()
		rest, next, err := extractNext(tokens[2:])
		if err != nil {
			return nil, ast.Statement{}, err
		}
		values, err := valuesFromIR(rest)
		if err != nil {
			return nil, ast.Statement{}, err
		}
		return synthetics, ast.If(name, values, next), nil

	case head == "or":
		if len(tokens) < 2 {
			return nil, ast.Statement{}, fmt.Errorf("parser: 'or' requires at least one value")
		}
		rest, next, err := extractNext(tokens[1:])
		if err != nil {
			return nil, ast.Statement{}, err
		}
		values, err := valuesFromIR(rest)
		if err != nil {
			return nil, ast.Statement{}, err
		}
		return synthetics, ast.Or(values, next), nil

	case colonPrefix(head) == "next":
		_, next, err := extractNext(tokens)
		if err != nil {
			return nil, ast.Statement{}, err
		}
		if next == nil {
			return nil, ast.Statement{}, fmt.Errorf("parser: invalid next-tag %q", head)
		}
		return synthetics, ast.NextStmt(*next), nil

	case head == "emit":
		if len(tokens) < 2 {
			return nil, ast.Statement{}, fmt.Errorf("parser: 'emit' requires at least one value")
		}
		values, err := valuesFromIR(tokens[1:])
		if err != nil {
			return nil, ast.Statement{}, err
		}
		return synthetics, ast.Emit(values), nil

	default:
		if idx := strings.Index(head, ":"); idx >= 0 {
			name, kind := head[:idx], head[idx+1:]
			l, err := logic.ParseComposite(kind, tokens[1:])
			if err != nil {
				return nil, ast.Statement{}, err
			}
			return synthetics, ast.LogicBind(name, l), nil
		}
		l, err := logic.Parse(tokens[1:])
		if err != nil {
			return nil, ast.Statement{}, err
		}
		return synthetics, ast.LogicBind(head, l), nil
	}
}

// applyNegationSugar rewrites any Raw token (including one level into a
// MapLiteral's members) beginning with '!' to "not_<rest>" in place, and
// returns the synthetic LogicBind statements needed to make newly-seen
// rewrites resolvable. seen is the enclosing block's dedup set and is
// mutated as new qualified names are emitted.
func applyNegationSugar(tokens []ir.Token, seen map[string]bool) ([]ir.Token, []ast.Statement) {
	var synthetics []ast.Statement

	adjust := func(t *ir.Token) {
		if t.Kind != ir.Raw || !strings.HasPrefix(t.Text, "!") {
			return
		}
		original := t.Text
		rest := strings.TrimPrefix(original, "!")
		qualified := "not_" + rest
		t.Text = qualified

		if !seen[qualified] {
			seen[qualified] = true
			synthetics = append(synthetics, ast.LogicBind(qualified, logic.IsNot(rest)))
		}
	}

	out := make([]ir.Token, len(tokens))
	copy(out, tokens)
	for i := range out {
		if out[i].Kind == ir.MapLiteral {
			members := make([]ir.Token, len(out[i].Map))
			copy(members, out[i].Map)
			for j := range members {
				adjust(&members[j])
			}
			out[i].Map = members
			continue
		}
		adjust(&out[i])
	}

	return out, synthetics
}

func colonPrefix(s string) string {
	if i := strings.Index(s, ":"); i >= 0 {
		return s[:i]
	}
	return s
}

func valuesFromIR(tokens []ir.Token) ([]value.Value, error) {
	values := make([]value.Value, 0, len(tokens))
	for _, t := range tokens {
		v, err := value.FromIR(t)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

// splitCommaGroups splits a map literal's flat member list on trailing-comma
// tokens (the comma is part of the token's text, e.g. "hike,"), mirroring
// the lexer's behavior of treating ',' as ordinary non-whitespace text.
func splitCommaGroups(members []ir.Token) [][]ir.Token {
	var groups [][]ir.Token
	var cur []ir.Token

	for _, t := range members {
		if t.Kind == ir.Raw && strings.HasSuffix(t.Text, ",") {
			trimmed := t
			trimmed.Text = strings.TrimSuffix(t.Text, ",")
			cur = append(cur, trimmed)
			groups = append(groups, cur)
			cur = nil
			continue
		}
		cur = append(cur, t)
	}
	if len(cur) > 0 {
		groups = append(groups, cur)
	}
	return groups
}

// parseWhenMap builds a When statement's key -> mutation map. Each group's
// first token is the predicate key; the remaining tokens are parsed as a
// mutation in the same "@path op args" form as a standalone mutate
// statement, leading '@' included.
func parseWhenMap(mapTok ir.Token) (map[string]mutate.Mutation, error) {
	groups := splitCommaGroups(mapTok.Map)
	out := map[string]mutate.Mutation{}
	for _, g := range groups {
		if len(g) < 2 {
			return nil, fmt.Errorf("parser: 'when' entry needs a key and a mutation")
		}
		key := g[0].String()
		m, err := mutate.Parse(g[1:])
		if err != nil {
			return nil, fmt.Errorf("parser: 'when' entry %q: %w", key, err)
		}
		out[key] = m
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("parser: 'when' map has no entries")
	}
	return out, nil
}

// parseSelectMap builds a Select next-action's option list. Each group's
// LAST token is the destination node name (what the host passes to
// advance); the preceding tokens are the display values shown for that
// option, per the next:select worked example.
func parseSelectMap(mapTok ir.Token) ([]ast.SelectOption, error) {
	groups := splitCommaGroups(mapTok.Map)
	opts := make([]ast.SelectOption, 0, len(groups))
	for _, g := range groups {
		if len(g) == 0 {
			continue
		}
		label := g[len(g)-1].String()
		values, err := valuesFromIR(g[:len(g)-1])
		if err != nil {
			return nil, err
		}
		opts = append(opts, ast.SelectOption{Label: label, Values: values})
	}
	if len(opts) == 0 {
		return nil, fmt.Errorf("parser: 'next:select' map has no entries")
	}
	return opts, nil
}

// extractNext implements the two-pass Next-tag extraction: a "next:select"
// token is searched for anywhere in tokens first (it pairs with whatever
// map literal immediately follows it); failing that, the last two tokens
// are checked for a "next:<kind> node" pair, then the last token alone for
// a bare next-tag. Returns tokens unchanged with a nil action when no tag
// is present at all -- that is not an error, since the tag is optional.
func extractNext(tokens []ir.Token) ([]ir.Token, *ast.NextAction, error) {
	for i, t := range tokens {
		if t.Kind == ir.Raw && t.Text == "next:select" {
			if i+1 >= len(tokens) || tokens[i+1].Kind != ir.MapLiteral {
				return nil, nil, fmt.Errorf("parser: 'next:select' must be followed by a map literal")
			}
			opts, err := parseSelectMap(tokens[i+1])
			if err != nil {
				return nil, nil, err
			}
			next := ast.Select(opts)
			rest := make([]ir.Token, 0, len(tokens)-2)
			rest = append(rest, tokens[:i]...)
			rest = append(rest, tokens[i+2:]...)
			return rest, &next, nil
		}
	}

	if len(tokens) >= 2 {
		tag := tokens[len(tokens)-2]
		node := tokens[len(tokens)-1]
		if tag.Kind == ir.Raw && colonPrefix(tag.Text) == "next" {
			kind := strings.TrimPrefix(tag.Text, "next:")
			var next ast.NextAction
			switch kind {
			case "now":
				next = ast.Now(node.String())
			case "await":
				next = ast.Await(node.String())
			case "restart":
				next = ast.RestartNamed(node.String())
			case "call":
				next = ast.Call(node.String())
			default:
				return nil, nil, fmt.Errorf("parser: unknown next-tag %q", tag.Text)
			}
			return tokens[:len(tokens)-2], &next, nil
		}
	}

	if len(tokens) >= 1 {
		last := tokens[len(tokens)-1]
		if last.Kind == ir.Raw {
			var next ast.NextAction
			matched := true
			switch last.Text {
			case "next:back":
				next = ast.Back()
			case "next:restart":
				next = ast.RestartCurrent()
			case "next:exit":
				next = ast.Exit()
			case "next:clear":
				next = ast.Clear()
			default:
				matched = false
			}
			if matched {
				return tokens[:len(tokens)-1], &next, nil
			}
		}
	}

	return tokens, nil, nil
}
