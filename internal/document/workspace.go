package document

import (
	"errors"
	"fmt"
	"sync"

	"github.com/spf13/afero"
	"github.com/tliron/commonlog"

	"github.com/CWBudde/go-kidl-lsp/internal/database"
	"github.com/CWBudde/go-kidl-lsp/internal/rope"
)

var log = commonlog.GetLogger("kidl.document")

// ErrNotOpen is returned when an edit targets a document that was never
// opened and does not carry the full text.
var ErrNotOpen = errors.New("document is not open")

// Workspace is the editing surface over a database: it opens documents,
// applies edits in arrival order and hands out parses.
//
// A document is either owned by the editor (opened) or tracked from disk.
// Closing an editor document that is also tracked reverts it to the disk
// contents instead of dropping it.
type Workspace struct {
	mu      sync.Mutex
	db      *database.Database
	fs      afero.Fs
	open    map[string]struct{}
	tracked map[string]struct{}
}

// NewWorkspace returns a workspace over db that reads files from fs.
func NewWorkspace(db *database.Database, fs afero.Fs) *Workspace {
	return &Workspace{
		db:      db,
		fs:      fs,
		open:    make(map[string]struct{}),
		tracked: make(map[string]struct{}),
	}
}

// Database returns the underlying database.
func (w *Workspace) Database() *database.Database { return w.db }

// Fs returns the filesystem documents are read from.
func (w *Workspace) Fs() afero.Fs { return w.fs }

// Open makes text the current content of path.
func (w *Workspace) Open(path, text string) *database.SchemaFile {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.open[path] = struct{}{}
	return w.db.PushFile(path, text)
}

// OpenFromDisk loads path from the workspace filesystem as an editor
// document.
func (w *Workspace) OpenFromDisk(path string) (*database.SchemaFile, error) {
	text, err := ReadFile(w.fs, path)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.open[path] = struct{}{}
	return w.db.PushRope(path, text), nil
}

// Track loads path from disk unless the editor owns it. Tracking a path
// again picks up changes made on disk.
func (w *Workspace) Track(path string) (*database.SchemaFile, error) {
	text, err := ReadFile(w.fs, path)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.tracked[path] = struct{}{}
	if _, open := w.open[path]; open {
		file, _ := w.db.SchemaFile(path)
		return file, nil
	}
	return w.db.PushRope(path, text), nil
}

// Edit applies changes to the document at path in order. Either every
// change applies or none does. An unopened document only accepts a single
// full-text change, which opens it.
func (w *Workspace) Edit(path string, changes []any) (*database.SchemaFile, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	file, ok := w.db.SchemaFile(path)
	if _, open := w.open[path]; !ok || !open {
		if len(changes) != 1 || !isWholeChange(changes[0]) {
			log.Warningf("rejecting %d change(s) for unopened document %s", len(changes), path)
			return nil, fmt.Errorf("%s: %w", path, ErrNotOpen)
		}
		text, err := ApplyContentChange(rope.New(), changes[0])
		if err != nil {
			return nil, err
		}
		w.open[path] = struct{}{}
		return w.db.PushRope(path, text), nil
	}

	text, err := ApplyContentChanges(file.Text, changes)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return w.db.SetText(file, text), nil
}

// Close releases the editor's hold on path. A tracked file reverts to its
// disk contents; anything else is forgotten.
func (w *Workspace) Close(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	delete(w.open, path)
	if _, tracked := w.tracked[path]; tracked {
		text, err := ReadFile(w.fs, path)
		if err == nil {
			w.db.PushRope(path, text)
			return
		}
		log.Warningf("dropping tracked file %s: %s", path, err)
		delete(w.tracked, path)
	}
	w.db.Remove(path)
}

// IsOpen reports whether the editor owns path.
func (w *Workspace) IsOpen(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	_, open := w.open[path]
	return open
}

// SchemaFile returns the current version of path.
func (w *Workspace) SchemaFile(path string) (*database.SchemaFile, bool) {
	return w.db.SchemaFile(path)
}

// Parse returns the memoized parse of file.
func (w *Workspace) Parse(file *database.SchemaFile) *database.Parsed {
	return w.db.Parse(file)
}

// Snapshot returns a consistent view of every document.
func (w *Workspace) Snapshot() *database.Snapshot {
	return w.db.Snapshot()
}

// ReadFile reads path from fs into a rope.
func ReadFile(fs afero.Fs, path string) (rope.Rope, error) {
	f, err := fs.Open(path)
	if err != nil {
		return rope.Rope{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	text, err := rope.FromReader(f)
	if err != nil {
		return rope.Rope{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return text, nil
}
