package scan

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x\n"), 0o644))
	return path
}

func collectWalk(t *testing.T, root string) []string {
	t.Helper()
	w, err := NewSortedWalk(root)
	require.NoError(t, err)

	var got []string
	for {
		p, ok := w.Next()
		if !ok {
			return got
		}
		got = append(got, p)
	}
}

func TestSortedWalk_GlobalOrdering(t *testing.T) {
	root := t.TempDir()

	// Deliberately interleaved across directory levels: the
	// walk must order by full path globally, not sort each
	// directory in isolation. "a/z.jsonl" sorts before
	// "ab.jsonl" and "b.txt" before "b/sub/deep.txt".
	var want []string
	for _, rel := range []string{
		"ab.jsonl",
		"a/z.jsonl",
		"a/m/inner.jsonl",
		"b.txt",
		"b/sub/deep.txt",
		"c.jsonl",
	} {
		want = append(want, writeFile(t, root, rel))
	}
	sort.Strings(want)

	got := collectWalk(t, root)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("walk order mismatch (-want +got):\n%s", diff)
	}

	for i := 1; i < len(got); i++ {
		assert.Less(t, got[i-1], got[i],
			"paths must be strictly ascending")
	}
}

func TestSortedWalk_NeverYieldsDirectories(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "d/file.jsonl")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "empty"), 0o755))

	for _, p := range collectWalk(t, root) {
		info, err := os.Lstat(p)
		require.NoError(t, err)
		assert.True(t, info.Mode().IsRegular(), "yielded %s", p)
	}
}

func TestSortedWalk_SkipsSymlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation requires privileges on Windows")
	}

	root := t.TempDir()
	outside := t.TempDir()

	real := writeFile(t, root, "real.jsonl")
	target := writeFile(t, outside, "target.jsonl")
	linkedDir := filepath.Join(outside, "dir")
	require.NoError(t, os.MkdirAll(linkedDir, 0o755))
	writeFile(t, outside, "dir/inside.jsonl")

	require.NoError(t, os.Symlink(target, filepath.Join(root, "link.jsonl")))
	require.NoError(t, os.Symlink(linkedDir, filepath.Join(root, "dirlink")))

	got := collectWalk(t, root)
	assert.Equal(t, []string{real}, got)
}

func TestSortedWalk_UnreadableSubdirSkipped(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not enforced the same way on Windows")
	}
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}

	root := t.TempDir()
	writeFile(t, root, "a/ok.jsonl")
	writeFile(t, root, "blocked/hidden.jsonl")
	writeFile(t, root, "z/ok.jsonl")

	blocked := filepath.Join(root, "blocked")
	require.NoError(t, os.Chmod(blocked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(blocked, 0o755) })

	got := collectWalk(t, root)
	want := []string{
		filepath.Join(root, "a", "ok.jsonl"),
		filepath.Join(root, "z", "ok.jsonl"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("walk mismatch (-want +got):\n%s", diff)
	}
}

func TestSortedWalk_RootErrors(t *testing.T) {
	t.Run("missing root", func(t *testing.T) {
		_, err := NewSortedWalk(filepath.Join(t.TempDir(), "nope"))
		require.Error(t, err)
	})

	t.Run("root is a file", func(t *testing.T) {
		root := t.TempDir()
		file := writeFile(t, root, "file.jsonl")
		_, err := NewSortedWalk(file)
		require.Error(t, err)
	})
}

func TestSortedWalk_EarlyAbandon(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.jsonl")
	writeFile(t, root, "b.jsonl")

	w, err := NewSortedWalk(root)
	require.NoError(t, err)

	p, ok := w.Next()
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, "a.jsonl"), p)
	// Dropping the walker here must be safe; nothing to close.
}
