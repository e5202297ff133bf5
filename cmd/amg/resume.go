package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/shlex"

	"github.com/Cardosaum/amg/internal/codexcmd"
	"github.com/Cardosaum/amg/internal/config"
	"github.com/Cardosaum/amg/internal/proc"
	"github.com/Cardosaum/amg/internal/scan"
)

// ResumeConfig holds the parsed CLI options for resume-branch.
type ResumeConfig struct {
	Branch string
	config.Config
}

func parseResumeFlags(args []string) (ResumeConfig, error) {
	fs := flag.NewFlagSet("resume-branch", flag.ContinueOnError)
	fs.String(
		"repo", "",
		"Repo to grant Codex sandbox access to",
	)
	fs.String(
		"codexdir", "",
		`Codex directory containing JSONL sessions (default "$HOME/.codex")`,
	)
	fs.String(
		"codex-args", "",
		"Extra codex arguments, shell-style quoted",
	)
	dryRun := fs.Bool(
		"dry-run", false,
		"Print the command without executing it",
	)
	fs.BoolVar(dryRun, "n", false, "Shorthand for -dry-run")
	fs.Bool(
		"no-tmux", false,
		"Run inline even when $TMUX is set",
	)

	if err := fs.Parse(args); err != nil {
		return ResumeConfig{}, err
	}

	// The branch is positional and may come before or after the
	// flags; stdlib flag stops at the first non-flag argument,
	// so reparse whatever followed the branch.
	rest := fs.Args()
	if len(rest) == 0 {
		return ResumeConfig{}, fmt.Errorf("missing <branch> argument")
	}
	branch := rest[0]
	if err := fs.Parse(rest[1:]); err != nil {
		return ResumeConfig{}, err
	}
	if fs.NArg() != 0 {
		return ResumeConfig{}, fmt.Errorf(
			"unexpected argument %q", fs.Arg(0),
		)
	}

	return ResumeConfig{Branch: branch, Config: config.Load(fs)}, nil
}

func runResumeBranch(args []string) int {
	cfg, err := parseResumeFlags(args)
	if err != nil {
		log.Printf("amg: %v", err)
		return 2
	}

	code, err := resumeBranch(cfg)
	if err != nil {
		log.Printf("amg: %v", err)
		return 1
	}
	return code
}

func resumeBranch(cfg ResumeConfig) (int, error) {
	codexDir := cfg.CodexDir
	if codexDir == "" {
		var err error
		codexDir, err = config.DefaultCodexDir()
		if err != nil {
			return 0, err
		}
	}

	if cfg.Repo == "" {
		return 0, fmt.Errorf(
			"repo is required; pass -repo or set %s", config.EnvRepo,
		)
	}
	if err := requireDir(cfg.Repo, "repo", config.EnvRepo); err != nil {
		return 0, err
	}
	if err := requireDir(codexDir, "codexdir", config.EnvCodexDir); err != nil {
		return 0, err
	}

	sess, err := scan.FindFirstSession(codexDir, cfg.Branch)
	if err != nil {
		return 0, err
	}
	if sess == nil {
		return 0, fmt.Errorf(
			"no matching session found for branch %q under %s",
			cfg.Branch, codexDir,
		)
	}
	if err := requireDir(sess.Cwd, "session cwd", ""); err != nil {
		return 0, err
	}

	extra, err := shlex.Split(cfg.ExtraArgs)
	if err != nil {
		return 0, fmt.Errorf("parsing extra codex args: %w", err)
	}

	cmd := codexcmd.Build(
		cfg.Repo, codexDir, sess, config.HomeDir(), extra,
	)

	log.Printf(
		"matched session id=%s cwd=%s source=%s",
		sess.ID, sess.Cwd, sess.SourceJSONL,
	)

	useTmux := config.UseTmux(cfg.NoTmux)
	switch {
	case cfg.DryRun && useTmux:
		fmt.Println(proc.TmuxNewWindowCmd(sess.Cwd, cmd).ShellString())
		return 0, nil
	case cfg.DryRun:
		fmt.Println(cmd.ShellString())
		return 0, nil
	case useTmux:
		if err := proc.RunTmuxNewWindow(sess.Cwd, cmd); err != nil {
			return 0, err
		}
		return 0, nil
	default:
		code, err := proc.RunInDir(sess.Cwd, cmd)
		if err != nil {
			return 0, fmt.Errorf("failed to run codex: %w", err)
		}
		return code, nil
	}
}

// requireDir fails with a user-facing message when path is not
// an existing directory, naming the env var that configures it
// when there is one.
func requireDir(path, label, envVar string) error {
	info, err := os.Stat(path)
	if err == nil && info.IsDir() {
		return nil
	}
	if envVar != "" {
		return fmt.Errorf(
			"%s is not a directory: %s (set %s)", label, path, envVar,
		)
	}
	return fmt.Errorf("%s is not a directory: %s", label, path)
}
