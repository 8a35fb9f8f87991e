// ==============================================================================================
// FILE: env/environment.go
// ==============================================================================================
// PACKAGE: env
// PURPOSE: Environment bundles the pieces an Evaluator needs: the source-block table, the data
//          Store, and the host-function registry. Insert groups a parser.ParseString result by
//          block kind into the two maps in one pass, mirroring the original's Env::insert.
// ==============================================================================================

package env

import (
	"lichen/ast"
	"lichen/mutate"
	"lichen/parser"
)

// Environment is the complete runtime world an Evaluator operates over.
type Environment struct {
	Store     *Store
	Blocks    map[string]*ast.Block
	Functions mutate.Functions
}

// NewEnvironment creates an empty Environment. functions may be nil if no host
// functions are registered.
func NewEnvironment(functions mutate.Functions) *Environment {
	return &Environment{
		Store:     New(),
		Blocks:    map[string]*ast.Block{},
		Functions: functions,
	}
}

// Insert groups parsed blocks by kind: source blocks populate Blocks, data
// blocks are merged into Store (a later "def" for the same name overwrites
// entries key-by-key rather than replacing the whole block).
func (e *Environment) Insert(blocks []parser.ParsedBlock) {
	for _, b := range blocks {
		switch b.Kind {
		case parser.SourceBlockKind:
			e.Blocks[b.Source.Name] = b.Source
		case parser.DataBlockKind:
			existing, ok := e.Store.blocks[b.DataName]
			if !ok {
				existing = ast.Data{}
				e.Store.blocks[b.DataName] = existing
			}
			for k, v := range b.Data {
				existing[k] = v
			}
		}
	}
}
