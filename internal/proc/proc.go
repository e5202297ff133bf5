// Package proc builds, prints, and runs external commands,
// including the tmux new-window wrapping used to open a resumed
// session in its own window.
package proc

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Cmd is a program invocation that can be rendered as a shell
// command or executed.
type Cmd struct {
	Program string
	Args    []string
}

// ShellString renders the command with every word single-quoted,
// safe to copy-paste into a shell.
func (c Cmd) ShellString() string {
	words := make([]string, 0, len(c.Args)+1)
	words = append(words, shQuote(c.Program))
	for _, a := range c.Args {
		words = append(words, shQuote(a))
	}
	return strings.Join(words, " ")
}

func shQuote(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// TmuxNewWindowCmd wraps cmd in the tmux new-window invocation
// that RunTmuxNewWindow would spawn, for dry-run display.
func TmuxNewWindowCmd(startDir string, cmd Cmd) Cmd {
	args := make([]string, 0, len(cmd.Args)+4)
	args = append(args, "new-window", "-c", startDir, cmd.Program)
	args = append(args, cmd.Args...)
	return Cmd{Program: "tmux", Args: args}
}

// RunTmuxNewWindow opens a new tmux window at startDir running
// cmd, and fails when tmux exits non-zero.
func RunTmuxNewWindow(startDir string, cmd Cmd) error {
	tmux := TmuxNewWindowCmd(startDir, cmd)
	c := exec.Command(tmux.Program, tmux.Args...)
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr

	err := c.Run()
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return fmt.Errorf("tmux exited with status %d", exitErr.ExitCode())
	}
	return fmt.Errorf("launching tmux new-window: %w", err)
}

// RunInDir executes cmd in cwd with inherited stdio and returns
// the child's exit code. A non-zero child exit is not an error;
// only a failure to start the process is.
func RunInDir(cwd string, cmd Cmd) (int, error) {
	c := exec.Command(cmd.Program, cmd.Args...)
	c.Dir = cwd
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr

	err := c.Run()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return 1, fmt.Errorf("running %s: %w", cmd.Program, err)
}
