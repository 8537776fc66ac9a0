package database

import (
	"fmt"

	"github.com/CWBudde/go-kidl-lsp/internal/ast"
	"github.com/CWBudde/go-kidl-lsp/internal/parser"
	"github.com/CWBudde/go-kidl-lsp/internal/syntax"
)

// Parsed is the memoized parse of one file version.
type Parsed struct {
	File   *SchemaFile
	Root   *syntax.GreenNode
	Errors []syntax.SyntaxError
}

// Syntax returns a cursor over the parsed tree.
func (p *Parsed) Syntax() *syntax.SyntaxNode {
	return syntax.NewRoot(p.Root)
}

// Schema returns the typed view of the parsed tree.
func (p *Parsed) Schema() ast.Schema {
	schema, _ := ast.CastSchema(p.Syntax())
	return schema
}

// Parse returns the parse of file. The result is computed once per file
// version; concurrent callers for the same version share one computation.
func (e *engine) Parse(file *SchemaFile) *Parsed {
	if p := e.lookup(file); p != nil {
		e.hits.Add(1)
		return p
	}

	key := fmt.Sprintf("%d@%d", file.ID, file.Version)
	v, _, _ := e.group.Do(key, func() (any, error) {
		if p := e.lookup(file); p != nil {
			return p, nil
		}
		e.misses.Add(1)

		src := syntax.NewRopeSource(file.Text, 0, file.Text.Len())
		result := parser.Parse(src, e.cache)
		p := &Parsed{File: file, Root: result.Root, Errors: result.Errors}
		log.Debugf("parsed %s version %d: %d errors", file.Path, file.Version, len(p.Errors))

		e.store(p)
		return p, nil
	})
	return v.(*Parsed)
}

func (e *engine) lookup(file *SchemaFile) *Parsed {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.memo[file.ID]
	if !ok || p.File.Version != file.Version {
		return nil
	}
	return p
}

// store records p unless a newer version is already memoized, which happens
// when a stale snapshot parses after the database moved on, or the file has
// been removed since the parse started.
func (e *engine) store(p *Parsed) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if f, ok := e.live.Load().schemaFile(p.File.Path); !ok || f.ID != p.File.ID {
		log.Debugf("not memoizing %s: file was removed", p.File.Path)
		return
	}
	if cur, ok := e.memo[p.File.ID]; ok && cur.File.Version > p.File.Version {
		return
	}
	e.memo[p.File.ID] = p
}
