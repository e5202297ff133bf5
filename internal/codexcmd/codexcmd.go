// Package codexcmd builds the codex invocation that resumes a
// matched session inside a workspace-write sandbox.
package codexcmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/Cardosaum/amg/internal/proc"
	"github.com/Cardosaum/amg/internal/scan"
)

const (
	dotCodexDir = ".codex"
	dotGit      = ".git"
)

// homeSandboxDirs are home-relative directories granted sandbox
// access when they exist, so toolchains keep working inside the
// resumed session.
var homeSandboxDirs = []string{
	".cargo",
	".rustup",
	"Library/Caches/Mozilla.sccache",
	".npm",
}

// extraSandboxDirs are absolute paths granted sandbox access
// when they exist.
var extraSandboxDirs = []string{
	"/tmp",
	"/var/folders",
}

// Build constructs the codex command resuming sess. repo and
// codexDir are always granted sandbox access; the session cwd's
// git directory, its .codex directory, and the usual toolchain
// caches under home are granted only when they exist. extra args
// are appended verbatim before the trailing "resume <id>".
func Build(repo, codexDir string, sess *scan.Session, home string, extra []string) proc.Cmd {
	args := []string{
		"--search",
		"-a", "on-failure",
		"-s", "workspace-write",
		"--config", "model=gpt-5.2-codex",
		"--config", "model_reasoning_effort=high",
		"--config", "sandbox_workspace_write.network_access=true",
	}

	// Required adds.
	args = addDir(args, repo)
	args = addGitDir(args, repo)
	args = addDir(args, codexDir)
	args = addDir(args, sess.Cwd)

	args = append(args, "--cd", sess.Cwd)

	// Optional adds.
	args = addGitDir(args, sess.Cwd)
	args = addDirIfDir(args, filepath.Join(sess.Cwd, dotCodexDir))

	if home != "" {
		for _, rel := range homeSandboxDirs {
			args = addDirIfDir(args, filepath.Join(home, rel))
		}
	}
	for _, abs := range extraSandboxDirs {
		args = addDirIfDir(args, abs)
	}

	args = append(args, extra...)
	args = append(args, "resume", sess.ID)

	return proc.Cmd{Program: "codex", Args: args}
}

func addDir(args []string, dir string) []string {
	return append(args, "--add-dir", dir)
}

func addDirIfDir(args []string, dir string) []string {
	if isDir(dir) {
		args = addDir(args, dir)
	}
	return args
}

func addGitDir(args []string, worktree string) []string {
	if gitdir := gitDirForWorktree(worktree); gitdir != "" {
		args = addDir(args, gitdir)
	}
	return args
}

// gitDirForWorktree resolves the git directory backing worktree.
// A .git directory is returned as-is; a .git file (linked
// worktree) is resolved through its gitdir: line. Returns ""
// when there is no resolvable git directory.
func gitDirForWorktree(worktree string) string {
	path := filepath.Join(worktree, dotGit)
	info, err := os.Lstat(path)
	if err != nil {
		return ""
	}
	switch {
	case info.IsDir():
		return path
	case info.Mode().IsRegular():
		return gitDirFromGitfile(worktree, path)
	}
	return ""
}

// gitDirFromGitfile parses the "gitdir:" line of a .git file,
// resolving a relative target against the worktree. The target
// must be an existing directory.
func gitDirFromGitfile(worktree, gitfile string) string {
	data, err := os.ReadFile(gitfile)
	if err != nil {
		return ""
	}

	first, _, _ := strings.Cut(string(data), "\n")
	target, ok := strings.CutPrefix(strings.TrimSpace(first), "gitdir:")
	if !ok {
		return ""
	}
	target = strings.TrimSpace(target)
	if target == "" {
		return ""
	}

	if !filepath.IsAbs(target) {
		target = filepath.Join(worktree, target)
	}
	if !isDir(target) {
		return ""
	}
	return target
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
