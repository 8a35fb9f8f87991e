package lexer

import (
	"testing"

	"lichen/ir"
)

func collectStatements(t *testing.T, src string) ([][]ir.Token, int) {
	t.Helper()
	l := New(src)
	var stmts [][]ir.Token
	blockEnds := 0
	for {
		ev := l.Next()
		switch ev.Kind {
		case EventStatement:
			stmts = append(stmts, ev.Tokens)
		case EventBlockEnd:
			blockEnds++
		case EventEOF:
			return stmts, blockEnds
		}
	}
}

func TestLexerSimpleStatement(t *testing.T) {
	stmts, ends := collectStatements(t, "root\n  emit \"step\"\n;")
	if len(stmts) != 2 {
		t.Fatalf("got %d statements, want 2: %+v", len(stmts), stmts)
	}
	if stmts[0][0].String() != "root" {
		t.Errorf("header = %q", stmts[0][0].String())
	}
	if stmts[1][0].String() != "emit" || stmts[1][1].Kind != ir.Quoted || stmts[1][1].Text != "step" {
		t.Errorf("emit statement = %+v", stmts[1])
	}
	if ends != 1 {
		t.Errorf("got %d block ends, want 1", ends)
	}
}

func TestLexerComment(t *testing.T) {
	stmts, _ := collectStatements(t, "root\n  emit \"x\" # a comment\n;")
	if len(stmts) != 2 {
		t.Fatalf("got %d statements: %+v", len(stmts), stmts)
	}
}

func TestLexerVectorSpansNewlines(t *testing.T) {
	stmts, _ := collectStatements(t, "root\n  emit [\n    \"a\"\n    \"b\"\n  ]\n;")
	if len(stmts) != 2 {
		t.Fatalf("got %d statements: %+v", len(stmts), stmts)
	}
	emit := stmts[1]
	if len(emit) != 3 {
		t.Fatalf("emit statement tokens = %+v", emit)
	}
}

func TestLexerMapLiteral(t *testing.T) {
	stmts, _ := collectStatements(t, "root\n  when { a @x + 1 , }\n;")
	if len(stmts) != 2 {
		t.Fatalf("got %d statements: %+v", len(stmts), stmts)
	}
	when := stmts[1]
	if when[0].String() != "when" {
		t.Errorf("first token = %q", when[0].String())
	}
	last := when[len(when)-1]
	if last.Kind != ir.MapLiteral {
		t.Errorf("last token kind = %v, want MapLiteral", last.Kind)
	}
}

func TestLexerStringPreservesLiteralChars(t *testing.T) {
	stmts, _ := collectStatements(t, "root\n  emit \"has # and ] and } inside\"\n;")
	if len(stmts) != 2 {
		t.Fatalf("got %d statements: %+v", len(stmts), stmts)
	}
	emit := stmts[1]
	if emit[1].Text != "has # and ] and } inside" {
		t.Errorf("quoted text = %q", emit[1].Text)
	}
}

func TestLexerBlockBoundary(t *testing.T) {
	_, ends := collectStatements(t, "root\n  emit \"a\"\n;\nstep2\n  emit \"b\"\n;")
	if ends != 2 {
		t.Errorf("got %d block ends, want 2", ends)
	}
}
