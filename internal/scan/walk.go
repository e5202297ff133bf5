package scan

import (
	"container/heap"
	"fmt"
	"os"
	"path/filepath"
)

// pathHeap is a min-heap of filesystem paths ordered by the full
// path string.
type pathHeap []string

func (h pathHeap) Len() int           { return len(h) }
func (h pathHeap) Less(i, j int) bool { return h[i] < h[j] }
func (h pathHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *pathHeap) Push(x any) {
	*h = append(*h, x.(string))
}

func (h *pathHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// SortedWalk yields the regular files under a root directory in
// ascending full-path lexicographic order, roughly matching fd's
// default output ordering. The order is global across the whole
// tree: directories are expanded into the frontier and their
// children compete with every other pending path, so a consumer
// can stop after the first interesting file and trust that
// nothing lexicographically earlier remains.
//
// Symlinks are never yielded or followed. Directories and paths
// that cannot be read mid-walk are skipped silently; only an
// unreadable root is an error.
type SortedWalk struct {
	frontier pathHeap
}

// NewSortedWalk returns a walker rooted at root. It fails when
// root itself cannot be listed; unreadable directories deeper in
// the tree are skipped during traversal instead.
func NewSortedWalk(root string) (*SortedWalk, error) {
	if _, err := os.ReadDir(root); err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", root, err)
	}
	return &SortedWalk{frontier: pathHeap{root}}, nil
}

// Next returns the next regular file in walk order, or ok=false
// when the tree is exhausted. Abandoning the walker before
// exhaustion is always safe; it holds no open handles between
// calls.
func (w *SortedWalk) Next() (path string, ok bool) {
	for w.frontier.Len() > 0 {
		p := heap.Pop(&w.frontier).(string)

		info, err := os.Lstat(p)
		if err != nil {
			continue
		}
		if info.Mode()&os.ModeSymlink != 0 {
			continue
		}
		if info.IsDir() {
			entries, err := os.ReadDir(p)
			if err != nil {
				continue
			}
			for _, e := range entries {
				heap.Push(&w.frontier, filepath.Join(p, e.Name()))
			}
			continue
		}
		if info.Mode().IsRegular() {
			return p, true
		}
	}
	return "", false
}
