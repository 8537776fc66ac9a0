// Package workspace discovers schema files under workspace folders and
// answers workspace-wide symbol queries.
package workspace

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/tliron/commonlog"

	"github.com/CWBudde/go-kidl-lsp/internal/document"
)

var log = commonlog.GetLogger("kidl.workspace")

// SchemaExtension is the file extension of schema files.
const SchemaExtension = ".kidl"

const (
	defaultMaxDepth = 10
	defaultMaxFiles = 10000
)

// Indexer loads schema files found under workspace folders into a
// document workspace.
type Indexer struct {
	ws        *document.Workspace
	maxDepth  int
	maxFiles  int
	fileCount int
}

// NewIndexer creates an indexer for ws.
func NewIndexer(ws *document.Workspace) *Indexer {
	return &Indexer{
		ws:       ws,
		maxDepth: defaultMaxDepth,
		maxFiles: defaultMaxFiles,
	}
}

// Index walks every folder and tracks the schema files it finds. It
// returns the number of files loaded. Unreadable files are skipped.
func (idx *Indexer) Index(ctx context.Context, folders []string) (int, error) {
	if len(folders) == 0 {
		log.Debug("no workspace folders to index")
		return 0, nil
	}

	log.Infof("indexing %d workspace folder(s)", len(folders))

	idx.fileCount = 0
	for _, folder := range folders {
		paths, err := Discover(ctx, idx.ws.Fs(), folder, idx.maxDepth, idx.maxFiles-idx.fileCount)
		if err != nil {
			return idx.fileCount, err
		}
		for _, path := range paths {
			if _, err := idx.ws.Track(path); err != nil {
				log.Warningf("could not load %s: %s", path, err)
				continue
			}
			idx.fileCount++
		}
	}

	log.Infof("workspace indexing complete, %d file(s) loaded", idx.fileCount)
	return idx.fileCount, nil
}

// Discover returns the schema files under root, at most maxFiles of them,
// descending at most maxDepth directories. Hidden entries and common build
// output directories are skipped. A root that is itself a schema file is
// returned as is.
func Discover(ctx context.Context, fs afero.Fs, root string, maxDepth, maxFiles int) ([]string, error) {
	info, err := fs.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		if IsSchemaFile(root) {
			return []string{root}, nil
		}
		return nil, nil
	}

	var paths []string
	err = discoverDirectory(ctx, fs, root, 0, maxDepth, maxFiles, &paths)
	return paths, err
}

func discoverDirectory(ctx context.Context, fs afero.Fs, dir string, depth, maxDepth, maxFiles int, paths *[]string) error {
	if depth > maxDepth || len(*paths) >= maxFiles {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		// Skip directories we can't read
		log.Debugf("skipping %s: %s", dir, err)
		return nil
	}

	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		fullPath := filepath.Join(dir, name)
		if entry.IsDir() {
			switch name {
			case "node_modules", "vendor", "bin", "obj", "dist", "build", "out", "target":
				continue
			}
			if err := discoverDirectory(ctx, fs, fullPath, depth+1, maxDepth, maxFiles, paths); err != nil {
				return err
			}
			continue
		}

		if !IsSchemaFile(name) {
			continue
		}
		if len(*paths) >= maxFiles {
			return nil
		}
		*paths = append(*paths, fullPath)
	}
	return nil
}

// IsSchemaFile reports whether path names a schema file.
func IsSchemaFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), SchemaExtension)
}

// PathToURI converts a filesystem path to a file:// URI. Document keys
// that already carry a scheme, such as untitled:1, are returned unchanged.
func PathToURI(path string) string {
	if hasScheme(path) {
		return path
	}

	path = filepath.ToSlash(path)

	// On Windows, prepend an extra slash
	if len(path) > 1 && path[1] == ':' {
		return "file:///" + path
	}

	return "file://" + path
}

// hasScheme reports whether s starts with a URI scheme of at least two
// letters followed by a colon. Drive letters are one letter long.
func hasScheme(s string) bool {
	for i, r := range s {
		switch {
		case r == ':':
			return i > 1
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '+' || r == '-' || r == '.'):
		default:
			return false
		}
	}
	return false
}
