package parser

import (
	"strings"
	"testing"

	"lichen/ast"
	"lichen/mutate"
	"lichen/value"
)

func findSource(t *testing.T, blocks []ParsedBlock, name string) *ast.Block {
	t.Helper()
	for _, b := range blocks {
		if b.Kind == SourceBlockKind && b.Source.Name == name {
			return b.Source
		}
	}
	t.Fatalf("no source block named %q in %+v", name, blocks)
	return nil
}

func findData(t *testing.T, blocks []ParsedBlock, name string) ast.Data {
	t.Helper()
	for _, b := range blocks {
		if b.Kind == DataBlockKind && b.DataName == name {
			return b.Data
		}
	}
	t.Fatalf("no data block named %q in %+v", name, blocks)
	return nil
}

func TestParseArithmeticScenario(t *testing.T) {
	src := `def global ;
root
  @global.coins 1
  emit "step"
  @global.coins + 5
  emit global.coins
;
`
	blocks, err := ParseString(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	root := findSource(t, blocks, "root")
	if len(root.Stmts) != 4 {
		t.Fatalf("got %d statements, want 4: %+v", len(root.Stmts), root.Stmts)
	}
	if root.Stmts[0].Kind != ast.MutateKind || root.Stmts[0].Mutation.Kind != mutate.Swap {
		t.Errorf("stmt0 = %+v, want a Swap mutation", root.Stmts[0])
	}
	if root.Stmts[2].Kind != ast.MutateKind || root.Stmts[2].Mutation.Kind != mutate.Add {
		t.Errorf("stmt2 = %+v, want an Add mutation", root.Stmts[2])
	}
	if root.Stmts[1].Kind != ast.EmitKind {
		t.Errorf("stmt1 = %+v", root.Stmts[1])
	}
}

func TestParseWhenDispatchScenario(t *testing.T) {
	src := `root
  needs_coins global.coins < 1
  has_no_name !global.name
  when { needs_coins @global.coins + 2 ,
         has_no_name @global.name "new-name" }
  emit global.name global.coins
;
def global
  coins 0
;
`
	blocks, err := ParseString(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	root := findSource(t, blocks, "root")

	// needs_coins, synthetic not_global.name, has_no_name, when, emit
	var kinds []ast.StatementKind
	for _, s := range root.Stmts {
		kinds = append(kinds, s.Kind)
	}
	if len(root.Stmts) != 5 {
		t.Fatalf("got %d statements, want 5: %+v", len(root.Stmts), kinds)
	}

	whenStmt := root.Stmts[3]
	if whenStmt.Kind != ast.WhenKind {
		t.Fatalf("expected When at index 3, got %+v", whenStmt)
	}
	if len(whenStmt.When) != 2 {
		t.Fatalf("when map = %+v", whenStmt.When)
	}

	data := findData(t, blocks, "global")
	if data["coins"] != value.Num(0) {
		t.Errorf("global.coins = %v", data["coins"])
	}
}

func TestParseOrFallThroughScenario(t *testing.T) {
	src := `root
  if !global.drunk "not drunk"
  or "is drunk"
  @global.drunk true
  if !global.drunk "not drunk"
  or "is drunk"
;
def global drunk false ;
`
	blocks, err := ParseString(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	root := findSource(t, blocks, "root")

	var kinds []ast.StatementKind
	for _, s := range root.Stmts {
		kinds = append(kinds, s.Kind)
	}
	want := []ast.StatementKind{
		ast.LogicBindKind, // synthetic not_global.drunk
		ast.IfKind,
		ast.OrKind,
		ast.MutateKind,
		ast.IfKind,
		ast.OrKind,
	}
	if len(kinds) != len(want) {
		t.Fatalf("got kinds %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("stmt[%d] kind = %v, want %v", i, kinds[i], want[i])
		}
	}
}

func TestParseOrWithoutIfIsError(t *testing.T) {
	src := `root
  or "oops"
;
`
	if _, err := ParseString(src); err == nil {
		t.Error("expected error when 'or' has no preceding 'if'")
	}
}

func TestParseCallBackRestartScenario(t *testing.T) {
	src := `root
  next:call step2
  next:restart
;
step2
  next:back
  emit "something"
;
`
	blocks, err := ParseString(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	root := findSource(t, blocks, "root")
	if len(root.Stmts) != 2 {
		t.Fatalf("got %d statements: %+v", len(root.Stmts), root.Stmts)
	}
	if root.Stmts[0].Next.Kind != ast.CallKind || root.Stmts[0].Next.Node != "step2" {
		t.Errorf("stmt0 next = %+v", root.Stmts[0].Next)
	}
	if root.Stmts[1].Next.Kind != ast.RestartKind || root.Stmts[1].Next.RestartHasNode {
		t.Errorf("stmt1 next = %+v", root.Stmts[1].Next)
	}

	step2 := findSource(t, blocks, "step2")
	if step2.Stmts[0].Next.Kind != ast.BackKind {
		t.Errorf("step2 stmt0 next = %+v", step2.Stmts[0].Next)
	}
}

func TestParseSelectScenario(t *testing.T) {
	src := `root
  next:select { "Head to Store?" store,
                5 hike,
                "Leave the town?" exit-town }
;
`
	blocks, err := ParseString(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	root := findSource(t, blocks, "root")
	if len(root.Stmts) != 1 {
		t.Fatalf("got %d statements: %+v", len(root.Stmts), root.Stmts)
	}
	next := root.Stmts[0].Next
	if next == nil || next.Kind != ast.SelectKind {
		t.Fatalf("next = %+v", next)
	}
	if len(next.Select) != 3 {
		t.Fatalf("select options = %+v", next.Select)
	}
	labels := map[string]bool{}
	for _, opt := range next.Select {
		labels[opt.Label] = true
	}
	for _, want := range []string{"store", "hike", "exit-town"} {
		if !labels[want] {
			t.Errorf("missing select label %q among %v", want, labels)
		}
	}
}

func TestParseStringInterpolationScenario(t *testing.T) {
	src := "def global name \"Io\" size 1.5 ;\n" +
		"root\n" +
		"  has_weight global.size < 5\n" +
		"  if has_weight \"you weigh `global.size kg, `global.name\"\n" +
		";\n"
	blocks, err := ParseString(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	root := findSource(t, blocks, "root")
	ifStmt := root.Stmts[len(root.Stmts)-1]
	if ifStmt.Kind != ast.IfKind || len(ifStmt.Values) != 1 {
		t.Fatalf("if statement = %+v", ifStmt)
	}
	if !strings.Contains(ifStmt.Values[0].Str, "`global.size") {
		t.Errorf("emitted string lost its backtick markers: %q", ifStmt.Values[0].Str)
	}
}

func TestStreamParsesAcrossChunks(t *testing.T) {
	src := "root\n  emit \"a\"\n;\nstep2\n  emit \"b\"\n;\n"
	r := strings.NewReader(src)
	stream := NewStream(r, 7) // force multiple short reads mid-block

	var total []ParsedBlock
	for {
		_, err := stream.Parse()
		if err != nil {
			break
		}
	}
	total, err := stream.Sink()
	if err != nil {
		t.Fatalf("sink failed: %v", err)
	}
	if len(total) != 2 {
		t.Fatalf("got %d blocks, want 2: %+v", len(total), total)
	}
}
