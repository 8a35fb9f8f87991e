// ==============================================================================================
// FILE: env/env.go
// ==============================================================================================
// PACKAGE: env
// PURPOSE: Owns the data store (dotted-path block/key map) and the source-block table. Paths of
//          the form "a.b.c" split into block "a.b" and key "c"; assignment auto-creates the
//          block if it is missing. Mirrors the teacher's object.Environment in shape (a map plus
//          small accessor methods) but replaces lexical scope chaining with Lichen's flat,
//          dotted-path block addressing.
// ==============================================================================================

package env

import (
	"strings"

	"lichen/ast"
	"lichen/value"
)

// Store owns every data block in a running program. Block names are the
// portion of a path before its final '.'; the final component is the key
// within that block.
type Store struct {
	blocks map[string]ast.Data
}

// New creates an empty Store.
func New() *Store {
	return &Store{blocks: map[string]ast.Data{}}
}

// NewFromData seeds a Store from already-parsed data blocks, keyed by block
// name (as produced by the parser's "def" blocks).
func NewFromData(seed map[string]ast.Data) *Store {
	s := New()
	for name, data := range seed {
		s.blocks[name] = data.Clone()
	}
	return s
}

// SplitPath divides a dotted path into its block and key components. A path
// with no '.' has no block (the empty string) and the whole path as its key.
func SplitPath(path string) (block, key string) {
	i := strings.LastIndex(path, ".")
	if i < 0 {
		return "", path
	}
	return path[:i], path[i+1:]
}

// Get looks up a single path directly, without following Sym chains.
func (s *Store) Get(path string) (value.Value, bool) {
	block, key := SplitPath(path)
	data, ok := s.blocks[block]
	if !ok {
		return value.Value{}, false
	}
	v, ok := data[key]
	return v, ok
}

// Set assigns path := v, auto-creating the containing block if it does not
// yet exist.
func (s *Store) Set(path string, v value.Value) {
	block, key := SplitPath(path)
	data, ok := s.blocks[block]
	if !ok {
		data = ast.Data{}
		s.blocks[block] = data
	}
	data[key] = v
}

// Block returns the named block's data, creating it if absent. The returned
// map aliases the Store's own storage.
func (s *Store) Block(name string) ast.Data {
	data, ok := s.blocks[name]
	if !ok {
		data = ast.Data{}
		s.blocks[name] = data
	}
	return data
}

// CloneBlock copies every key in src into dest, overwriting dest if it
// already exists. Returns false if src does not exist.
func (s *Store) CloneBlock(src, dest string) bool {
	data, ok := s.blocks[src]
	if !ok {
		return false
	}
	s.blocks[dest] = data.Clone()
	return true
}

// ResolveChain follows path through zero or more Sym indirections to its
// terminal value. A cycle or an unresolvable link reports ok=false.
func (s *Store) ResolveChain(path string) (value.Value, bool) {
	seen := map[string]bool{}
	cur := path
	for {
		if seen[cur] {
			return value.Value{}, false
		}
		seen[cur] = true

		v, ok := s.Get(cur)
		if !ok {
			return value.Value{}, false
		}
		if v.Kind != value.SymKind {
			return v, true
		}
		cur = v.Sym
	}
}
