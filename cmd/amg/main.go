package main

import (
	"fmt"
	"log"
	"os"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildDate = ""
)

func main() {
	log.SetFlags(0)
	log.SetOutput(os.Stderr)

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "resume-branch", "rb", "resume":
			os.Exit(runResumeBranch(os.Args[2:]))
		case "version", "--version", "-v":
			fmt.Printf("amg %s (commit %s, built %s)\n",
				version, commit, buildDate)
			return
		case "help", "--help", "-h":
			printUsage()
			return
		default:
			fmt.Fprintf(os.Stderr, "amg: unknown command %q\n\n", os.Args[1])
		}
	}

	printUsage()
	os.Exit(2)
}

func printUsage() {
	fmt.Printf(`amg %s - resume Codex sessions by git branch

Scans a tree of Codex JSONL session files in lexicographic order
and resumes the first session whose first line was recorded on a
given git branch, inside a workspace-write Codex sandbox. Inside
tmux the session opens in a new window.

Usage:
  amg resume-branch <branch> [flags]   Resume the first matching session
  amg rb <branch> [flags]              Alias for resume-branch
  amg resume <branch> [flags]          Alias for resume-branch
  amg version                          Show version information
  amg help                             Show this help

Resume-branch flags:
  -repo string        Repo to grant Codex sandbox access to (required)
  -codexdir string    Codex directory with JSONL sessions (default "$HOME/.codex")
  -codex-args string  Extra codex arguments, shell-style quoted
  -n, -dry-run        Print the command without executing it
  -no-tmux            Run inline even when $TMUX is set

Environment variables:
  CODEX_REPO          Default for -repo
  CODEX_CODEXDIR      Default for -codexdir
  CODEX_EXTRA_ARGS    Default for -codex-args
`, version)
}
