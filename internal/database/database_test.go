package database

import (
	"fmt"
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/sync/errgroup"

	"github.com/CWBudde/go-kidl-lsp/internal/rope"
	"github.com/CWBudde/go-kidl-lsp/internal/syntax"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestPushFileVersions(t *testing.T) {
	db := New(nil)

	v1 := db.PushFile("a.kidl", "struct A {}")
	assert.Equal(t, uint64(1), v1.Version)

	same := db.PushFile("a.kidl", "struct A {}")
	assert.Same(t, v1, same, "identical text keeps the version")

	v2 := db.PushFile("a.kidl", "struct B {}")
	assert.Equal(t, v1.ID, v2.ID)
	assert.Equal(t, uint64(2), v2.Version)
	assert.Equal(t, "struct A {}", v1.Text.String(), "old version is untouched")

	got, ok := db.SchemaFile("a.kidl")
	require.True(t, ok)
	assert.Same(t, v2, got)

	_, ok = db.SchemaFile("missing.kidl")
	assert.False(t, ok)
}

func TestPushFiles(t *testing.T) {
	db := New(nil)
	db.PushFiles(map[string]string{
		"b.kidl": "struct B {}",
		"a.kidl": "struct A {}",
	})

	var paths []string
	for f := range db.Files() {
		paths = append(paths, f.Path)
	}
	assert.Equal(t, []string{"a.kidl", "b.kidl"}, paths)

	a, _ := db.SchemaFile("a.kidl")
	b, _ := db.SchemaFile("b.kidl")
	assert.NotEqual(t, a.ID, b.ID)
}

func TestParseIsMemoized(t *testing.T) {
	db := New(nil)
	file := db.PushFile("a.kidl", "struct { a: Int }")

	first := db.Parse(file)
	second := db.Parse(file)
	assert.Same(t, first, second)
	require.Len(t, first.Errors, 1)
	assert.Same(t, &first.Errors[0], &second.Errors[0], "error list is the cached one")

	stats := db.Stats()
	assert.Equal(t, uint64(1), stats.Misses)
	assert.Equal(t, uint64(1), stats.Hits)
	assert.Equal(t, 1, stats.Entries)
}

func TestSetTextInvalidates(t *testing.T) {
	db := New(nil)
	file := db.PushFile("a.kidl", "struct Foo { a: Int, b?: String }")
	before := db.Parse(file)

	next := db.SetText(file, file.Text.Replace(16, 19, "Long"))
	after := db.Parse(next)

	assert.NotSame(t, before, after)
	assert.Equal(t, "struct Foo { a: Long, b?: String }", after.Syntax().Text())

	// The old result is still valid for whoever holds it.
	assert.Equal(t, "struct Foo { a: Int, b?: String }", before.Syntax().Text())

	fields := func(p *Parsed) []*syntax.GreenNode {
		var out []*syntax.GreenNode
		for decl := range p.Schema().Declarations() {
			for f := range decl.Fields() {
				out = append(out, f.Syntax().Green())
			}
		}
		return out
	}
	b, a := fields(before), fields(after)
	require.Len(t, a, 2)
	assert.NotSame(t, b[0], a[0])
	assert.Same(t, b[1], a[1], "sibling field is shared across versions")
}

func TestSnapshotIsolation(t *testing.T) {
	db := New(nil)
	db.PushFile("a.kidl", "struct A {}")
	snap := db.Snapshot()

	db.PushFile("a.kidl", "struct A2 {}")
	db.PushFile("b.kidl", "struct B {}")

	old, ok := snap.SchemaFile("a.kidl")
	require.True(t, ok)
	assert.Equal(t, "struct A {}", old.Text.String())
	_, ok = snap.SchemaFile("b.kidl")
	assert.False(t, ok)
	assert.Len(t, slices.Collect(snap.Files()), 1)

	cur, _ := db.SchemaFile("a.kidl")
	newParse := db.Parse(cur)
	oldParse := snap.Parse(old)
	assert.Equal(t, "struct A {}", oldParse.Syntax().Text())

	// A stale snapshot must not evict the newer memo entry.
	assert.Same(t, newParse, db.Parse(cur))
}

func TestRemove(t *testing.T) {
	db := New(nil)
	file := db.PushFile("a.kidl", "struct A {}")
	db.Parse(file)

	db.Remove("a.kidl")
	_, ok := db.SchemaFile("a.kidl")
	assert.False(t, ok)
	assert.Equal(t, 0, db.Stats().Entries)

	again := db.PushFile("a.kidl", "struct A {}")
	assert.NotEqual(t, file.ID, again.ID)
}

func TestRemove_LateParseIsNotMemoized(t *testing.T) {
	db := New(nil)
	file := db.PushFile("a.kidl", "struct A {}")
	snap := db.Snapshot()

	db.Remove("a.kidl")

	// A parse through an older snapshot finishes after the removal.
	parsed := snap.Parse(file)
	require.NotNil(t, parsed)
	assert.Same(t, file, parsed.File)
	assert.Equal(t, 0, db.Stats().Entries)

	again := db.PushFile("a.kidl", "struct A {}")
	db.Parse(again)
	assert.Equal(t, 1, db.Stats().Entries)
}

func TestConcurrentParses(t *testing.T) {
	db := New(nil)
	for i := 0; i < 8; i++ {
		db.PushFile(fmt.Sprintf("f%d.kidl", i), fmt.Sprintf("struct S%d { a: List<Int>, b?: String }", i))
	}

	snap := db.Snapshot()
	var g errgroup.Group
	results := make([][]*Parsed, 4)
	for w := range results {
		g.Go(func() error {
			for f := range snap.Files() {
				results[w] = append(results[w], snap.Parse(f))
			}
			return nil
		})
	}

	// Writers keep going while readers parse the snapshot.
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 20; i++ {
			db.PushRope("f0.kidl", rope.FromString(fmt.Sprintf("struct W%d {}", i)))
		}
	}()

	require.NoError(t, g.Wait())
	wg.Wait()

	for _, r := range results[1:] {
		require.Len(t, r, 8)
		for i := range r {
			assert.Same(t, results[0][i], r[i], "every reader sees the single memoized parse")
		}
	}
	for _, p := range results[0] {
		assert.Empty(t, p.Errors)
	}

	cur, _ := db.SchemaFile("f0.kidl")
	assert.Equal(t, "struct W19 {}", db.Parse(cur).Syntax().Text())
}
