// Package config resolves amg settings by layering defaults,
// environment variables, and explicitly set CLI flags.
package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
)

// Environment variables consulted by amg.
const (
	EnvRepo      = "CODEX_REPO"
	EnvCodexDir  = "CODEX_CODEXDIR"
	EnvExtraArgs = "CODEX_EXTRA_ARGS"
	EnvTmux      = "TMUX"
	EnvHome      = "HOME"
)

const dotCodexDir = ".codex"

// Config holds the settings for a resume-branch run.
type Config struct {
	// Repo is granted Codex sandbox access.
	Repo string
	// CodexDir is the root of the JSONL session tree. Empty
	// means "use DefaultCodexDir at run time".
	CodexDir string
	// ExtraArgs is a shell-style string of extra codex
	// arguments, split with shlex by the caller.
	ExtraArgs string
	DryRun    bool
	NoTmux    bool
}

// Load builds a Config by layering environment < flags. The
// FlagSet must already be parsed; only flags the user actually
// set override the environment.
func Load(fs *flag.FlagSet) Config {
	var cfg Config
	cfg.loadEnv()
	applyFlags(&cfg, fs)
	return cfg
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvRepo); v != "" {
		c.Repo = v
	}
	if v := os.Getenv(EnvCodexDir); v != "" {
		c.CodexDir = v
	}
	if v := os.Getenv(EnvExtraArgs); v != "" {
		c.ExtraArgs = v
	}
}

func applyFlags(cfg *Config, fs *flag.FlagSet) {
	if fs == nil {
		return
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "repo":
			cfg.Repo = f.Value.String()
		case "codexdir":
			cfg.CodexDir = f.Value.String()
		case "codex-args":
			cfg.ExtraArgs = f.Value.String()
		case "dry-run", "n":
			cfg.DryRun = f.Value.String() == "true"
		case "no-tmux":
			cfg.NoTmux = f.Value.String() == "true"
		}
	})
}

// DefaultCodexDir returns $HOME/.codex, or an error when HOME
// is unset or empty.
func DefaultCodexDir() (string, error) {
	home := os.Getenv(EnvHome)
	if home == "" {
		return "", fmt.Errorf(
			"%s is not set and $%s is empty; please set %s",
			EnvCodexDir, EnvHome, EnvCodexDir,
		)
	}
	return filepath.Join(home, dotCodexDir), nil
}

// HomeDir returns $HOME, or "" when unset.
func HomeDir() string {
	return os.Getenv(EnvHome)
}

// UseTmux reports whether the resume command should open a new
// tmux window: $TMUX set non-empty and tmux not disabled.
func UseTmux(noTmux bool) bool {
	return !noTmux && os.Getenv(EnvTmux) != ""
}
