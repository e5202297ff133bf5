// Package scan locates resumable Codex sessions by scanning a
// directory tree of JSONL session files in lexicographic order.
// Only the first line of each file is read; it carries the
// session_meta payload with the session id, working directory,
// and git branch recorded at session creation.
package scan

import (
	"bufio"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
)

const (
	initialScanBufSize = 64 * 1024
	maxScanTokenSize   = 16 * 1024 * 1024
)

// Session is a resumable Codex session extracted from the first
// line of a JSONL session file.
type Session struct {
	// Cwd is the working directory the session was created in.
	Cwd string
	// ID is the session identifier passed to codex resume.
	ID string
	// SourceJSONL is the file the session came from, kept for
	// diagnostics only.
	SourceJSONL string
}

// FindFirstSession scans codexDir for JSONL files in full-path
// lexicographic order and returns the first session whose first
// line has payload.git.branch equal to branch with non-empty cwd
// and id. It returns nil when nothing matches. The only error is
// a codexDir that cannot be listed; unreadable or malformed
// files along the way are skipped.
func FindFirstSession(codexDir, branch string) (*Session, error) {
	walk, err := NewSortedWalk(codexDir)
	if err != nil {
		return nil, err
	}

	for {
		path, ok := walk.Next()
		if !ok {
			return nil, nil
		}
		if filepath.Ext(path) != ".jsonl" {
			continue
		}
		if sess := sessionFromJSONL(path, branch); sess != nil {
			return sess, nil
		}
	}
}

// sessionFromJSONL reads the first line of a JSONL file and
// returns the session it describes when it matches branch.
// Any failure to open, read, or decode is a non-match.
func sessionFromJSONL(path, branch string) *Session {
	line, ok := readFirstLine(path)
	if !ok {
		return nil
	}
	cwd, id, ok := parseSessionFirstLine(line, branch)
	if !ok {
		return nil
	}
	return &Session{Cwd: cwd, ID: id, SourceJSONL: path}
}

// readFirstLine returns the first line of path, or ok=false for
// an empty or unreadable file.
func readFirstLine(path string) (string, bool) {
	f, err := openNoFollow(path)
	if err != nil {
		return "", false
	}
	defer f.Close()

	s := bufio.NewScanner(f)
	s.Buffer(make([]byte, 0, initialScanBufSize), maxScanTokenSize)
	if !s.Scan() {
		return "", false
	}
	return s.Text(), true
}

// parseSessionFirstLine extracts (cwd, id) from a session_meta
// line when payload.git.branch equals branch exactly and both
// cwd and id are non-empty after trimming.
func parseSessionFirstLine(line, branch string) (cwd, id string, ok bool) {
	// Fast path: the branch value appears verbatim inside the
	// encoded line, so skip JSON parsing when it is absent.
	// A branch whose JSON encoding escapes characters would be
	// missed here; no known Codex writer produces such lines.
	if !strings.Contains(line, branch) {
		return "", "", false
	}
	if !gjson.Valid(line) {
		return "", "", false
	}

	got := gjson.Get(line, "payload.git.branch")
	if got.Type != gjson.String || got.Str != branch {
		return "", "", false
	}

	cwdField := gjson.Get(line, "payload.cwd")
	idField := gjson.Get(line, "payload.id")
	if cwdField.Type != gjson.String || idField.Type != gjson.String {
		return "", "", false
	}

	cwd = strings.TrimSpace(cwdField.Str)
	id = strings.TrimSpace(idField.Str)
	if cwd == "" || id == "" {
		return "", "", false
	}
	return cwd, id, true
}
