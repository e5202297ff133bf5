// Package testjsonl provides JSONL fixture builders for Codex
// session test data, shared by the scan and cmd test packages.
package testjsonl

import (
	"encoding/json"
	"strings"
)

// CodexSessionMetaJSON returns a Codex session_meta line whose
// payload carries the given id, cwd, and git branch.
func CodexSessionMetaJSON(id, cwd, branch string) string {
	m := map[string]any{
		"type":      "session_meta",
		"timestamp": "2026-01-02T03:04:05.000Z",
		"payload": map[string]any{
			"id":  id,
			"cwd": cwd,
			"git": map[string]any{
				"branch": branch,
			},
		},
	}
	return mustMarshal(m)
}

// CodexSessionMetaNoGitJSON returns a session_meta line without
// a git sub-object.
func CodexSessionMetaNoGitJSON(id, cwd string) string {
	m := map[string]any{
		"type":      "session_meta",
		"timestamp": "2026-01-02T03:04:05.000Z",
		"payload": map[string]any{
			"id":  id,
			"cwd": cwd,
		},
	}
	return mustMarshal(m)
}

// CodexMsgJSON returns a Codex response_item line. Session
// matching only reads the first line; these make fixtures look
// like real multi-line session files.
func CodexMsgJSON(role, text string) string {
	contentType := "output_text"
	if role == "user" {
		contentType = "input_text"
	}
	m := map[string]any{
		"type":      "response_item",
		"timestamp": "2026-01-02T03:04:06.000Z",
		"payload": map[string]any{
			"role": role,
			"content": []map[string]string{
				{
					"type": contentType,
					"text": text,
				},
			},
		},
	}
	return mustMarshal(m)
}

// JoinJSONL joins JSON lines into JSONL file content with a
// trailing newline.
func JoinJSONL(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

func mustMarshal(m map[string]any) string {
	b, err := json.Marshal(m)
	if err != nil {
		panic(err)
	}
	return string(b)
}
