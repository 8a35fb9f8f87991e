package env

import (
	"testing"

	"lichen/ast"
	"lichen/value"
)

func TestSplitPath(t *testing.T) {
	cases := []struct {
		path, block, key string
	}{
		{"global.coins", "global", "coins"},
		{"a.b.c", "a.b", "c"},
		{"lonekey", "", "lonekey"},
	}
	for _, c := range cases {
		block, key := SplitPath(c.path)
		if block != c.block || key != c.key {
			t.Errorf("SplitPath(%q) = (%q,%q), want (%q,%q)", c.path, block, key, c.block, c.key)
		}
	}
}

func TestSetAutoCreatesBlock(t *testing.T) {
	s := New()
	s.Set("global.coins", value.Num(5))
	v, ok := s.Get("global.coins")
	if !ok || v != value.Num(5) {
		t.Fatalf("got (%v,%v), want (5,true)", v, ok)
	}
}

func TestNewFromDataSeedsBlocks(t *testing.T) {
	s := NewFromData(map[string]ast.Data{
		"global": {"name": value.String("Io"), "coins": value.Num(0)},
	})
	v, ok := s.Get("global.name")
	if !ok || v != value.String("Io") {
		t.Fatalf("got (%v,%v)", v, ok)
	}
}

func TestCloneBlock(t *testing.T) {
	s := New()
	s.Set("templates.enemy.hp", value.Num(10))
	if ok := s.CloneBlock("templates.enemy", "mobs.goblin1"); !ok {
		t.Fatal("CloneBlock returned false")
	}
	v, ok := s.Get("mobs.goblin1.hp")
	if !ok || v != value.Num(10) {
		t.Fatalf("got (%v,%v)", v, ok)
	}

	// Mutating the clone must not affect the source.
	s.Set("mobs.goblin1.hp", value.Num(1))
	v, _ = s.Get("templates.enemy.hp")
	if v != value.Num(10) {
		t.Errorf("source block mutated via clone: %v", v)
	}
}

func TestCloneBlockMissingSource(t *testing.T) {
	s := New()
	if ok := s.CloneBlock("nope", "dest"); ok {
		t.Error("expected false cloning a nonexistent block")
	}
}

func TestResolveChainFollowsSym(t *testing.T) {
	s := New()
	s.Set("global.coins", value.Num(7))
	s.Set("global.alias", value.Sym("global.coins"))

	v, ok := s.ResolveChain("global.alias")
	if !ok || v != value.Num(7) {
		t.Fatalf("got (%v,%v), want (7,true)", v, ok)
	}
}

func TestResolveChainDetectsCycle(t *testing.T) {
	s := New()
	s.Set("a.x", value.Sym("a.y"))
	s.Set("a.y", value.Sym("a.x"))

	if _, ok := s.ResolveChain("a.x"); ok {
		t.Error("expected cycle to resolve as unbound")
	}
}

func TestResolveChainUnbound(t *testing.T) {
	s := New()
	if _, ok := s.ResolveChain("nothing.here"); ok {
		t.Error("expected unbound lookup to fail")
	}
}
