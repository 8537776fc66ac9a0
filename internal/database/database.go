// Package database holds the open schema files as versioned inputs and
// memoizes parsing per file version.
//
// Writers replace a file's text wholesale, which produces a new immutable
// SchemaFile with a bumped version. Parse results are keyed by file
// identity and version, so asking twice for the same version returns the
// very same *Parsed, and results for older versions stay valid for as long
// as someone holds them. Snapshots freeze the set of inputs in O(1) and may
// be read from any goroutine while the owner keeps editing.
package database

import (
	"iter"
	"maps"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/tliron/commonlog"
	"golang.org/x/sync/singleflight"

	"github.com/CWBudde/go-kidl-lsp/internal/rope"
	"github.com/CWBudde/go-kidl-lsp/internal/syntax"
)

var log = commonlog.GetLogger("kidl.database")

// FileID identifies a file across versions.
type FileID uint64

// SchemaFile is one version of a file's text. It is immutable; changing the
// text produces a new SchemaFile with the same ID and a higher Version.
type SchemaFile struct {
	ID      FileID
	Path    string
	Text    rope.Rope
	Version uint64
}

// inputs is the committed set of files. It is never mutated after it has
// been published.
type inputs struct {
	files  map[string]*SchemaFile
	nextID FileID
}

func (in *inputs) schemaFile(path string) (*SchemaFile, bool) {
	f, ok := in.files[path]
	return f, ok
}

func (in *inputs) all() iter.Seq[*SchemaFile] {
	return func(yield func(*SchemaFile) bool) {
		for _, path := range slices.Sorted(maps.Keys(in.files)) {
			if !yield(in.files[path]) {
				return
			}
		}
	}
}

// Database owns the current inputs and the state shared with snapshots.
// Writes are serialized; reads never block on writes.
type Database struct {
	writeMu sync.Mutex
	current atomic.Pointer[inputs]
	*engine
}

// New returns an empty database whose parses share cache. A nil cache
// gets a fresh one.
func New(cache *syntax.NodeCache) *Database {
	if cache == nil {
		cache = syntax.NewNodeCache()
	}
	db := &Database{}
	db.engine = newEngine(cache, &db.current)
	db.current.Store(&inputs{files: map[string]*SchemaFile{}, nextID: 1})
	return db
}

// SchemaFile returns the current version of the file at path.
func (db *Database) SchemaFile(path string) (*SchemaFile, bool) {
	return db.current.Load().schemaFile(path)
}

// Files yields the current version of every file, ordered by path.
func (db *Database) Files() iter.Seq[*SchemaFile] {
	return db.current.Load().all()
}

// PushFile creates or replaces the file at path.
func (db *Database) PushFile(path, text string) *SchemaFile {
	return db.PushRope(path, rope.FromString(text))
}

// PushRope creates or replaces the file at path. Pushing the text the file
// already has keeps its version.
func (db *Database) PushRope(path string, text rope.Rope) *SchemaFile {
	var file *SchemaFile
	db.update(func(next *inputs) {
		file = next.put(path, text)
	})
	return file
}

// PushFiles creates or replaces several files in one commit.
func (db *Database) PushFiles(files map[string]string) {
	db.update(func(next *inputs) {
		for _, path := range slices.Sorted(maps.Keys(files)) {
			next.put(path, rope.FromString(files[path]))
		}
	})
}

// SetText replaces the text of file and returns the new version.
func (db *Database) SetText(file *SchemaFile, text rope.Rope) *SchemaFile {
	return db.PushRope(file.Path, text)
}

// Remove drops the file at path and forgets its parse.
func (db *Database) Remove(path string) {
	var removed *SchemaFile
	db.update(func(next *inputs) {
		removed = next.files[path]
		delete(next.files, path)
	})
	if removed != nil {
		db.forget(removed.ID)
	}
}

// Snapshot returns a read-only view of the currently committed inputs.
func (db *Database) Snapshot() *Snapshot {
	return &Snapshot{in: db.current.Load(), engine: db.engine}
}

// update applies fn to a copy of the current inputs and publishes it.
func (db *Database) update(fn func(next *inputs)) {
	db.writeMu.Lock()
	defer db.writeMu.Unlock()

	cur := db.current.Load()
	next := &inputs{files: maps.Clone(cur.files), nextID: cur.nextID}
	fn(next)
	db.current.Store(next)
}

func (in *inputs) put(path string, text rope.Rope) *SchemaFile {
	old, ok := in.files[path]
	if ok && old.Text.Equals(text) {
		return old
	}

	file := &SchemaFile{Path: path, Text: text, Version: 1}
	if ok {
		file.ID = old.ID
		file.Version = old.Version + 1
	} else {
		file.ID = in.nextID
		in.nextID++
	}
	in.files[path] = file
	log.Debugf("file %s is now version %d", path, file.Version)
	return file
}

// Snapshot is a frozen view of the database's inputs. It shares the parse
// memo with the database it came from.
type Snapshot struct {
	in *inputs
	*engine
}

// SchemaFile returns the file at path as of the snapshot.
func (s *Snapshot) SchemaFile(path string) (*SchemaFile, bool) {
	return s.in.schemaFile(path)
}

// Files yields every file as of the snapshot, ordered by path.
func (s *Snapshot) Files() iter.Seq[*SchemaFile] {
	return s.in.all()
}

// engine is the derived-query state shared by a database and its
// snapshots.
type engine struct {
	cache *syntax.NodeCache
	group singleflight.Group

	// live is the database's committed inputs. Parses of files it no
	// longer holds are not memoized.
	live *atomic.Pointer[inputs]

	mu   sync.Mutex
	memo map[FileID]*Parsed

	hits, misses atomic.Uint64
}

func newEngine(cache *syntax.NodeCache, live *atomic.Pointer[inputs]) *engine {
	return &engine{cache: cache, live: live, memo: map[FileID]*Parsed{}}
}

func (e *engine) forget(id FileID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.memo, id)
}

// Cache returns the node cache shared by every parse.
func (e *engine) Cache() *syntax.NodeCache {
	return e.cache
}

// Stats reports memo counters.
type Stats struct {
	Hits    uint64
	Misses  uint64
	Entries int
}

// Stats returns the current memo counters.
func (e *engine) Stats() Stats {
	e.mu.Lock()
	entries := len(e.memo)
	e.mu.Unlock()
	return Stats{Hits: e.hits.Load(), Misses: e.misses.Load(), Entries: entries}
}
