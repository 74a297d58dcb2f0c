// Package gitexec invokes the installed git binary and parses its output
// into an incremental commit stream. Date-string handling is delegated
// entirely to git; this package never interprets date formats itself.
package gitexec

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"iter"
	"os/exec"
	"strings"
)

// Scanner buffer sizing. A single diff line can be a whole minified file,
// so the token cap is generous.
const (
	scanBufferSize   = 64 * 1024
	maxScanTokenSize = 16 * 1024 * 1024
)

// SubprocessErr carries the exit code and captured stderr of a failed git
// invocation.
type SubprocessErr struct {
	ExitCode int
	Stderr   string
	Err      error
}

func (err SubprocessErr) Error() string {
	if err.Stderr != "" {
		return fmt.Sprintf("git exited with code %d: %s", err.ExitCode, err.Stderr)
	}

	return fmt.Sprintf("git exited with code %d", err.ExitCode)
}

func (err SubprocessErr) Unwrap() error {
	return err.Err
}

// Subprocess is a running git command with its stdout available for
// incremental consumption.
type Subprocess struct {
	cmd    *exec.Cmd
	stdout io.ReadCloser
	stderr io.ReadCloser
}

// StdoutLines returns a single-use iterator over stdout lines and a
// finish func reporting any scan error.
func (s *Subprocess) StdoutLines() (iter.Seq[string], func() error) {
	var iterErr error

	seq := func(yield func(string) bool) {
		scanner := bufio.NewScanner(s.stdout)
		scanner.Buffer(make([]byte, scanBufferSize), maxScanTokenSize)

		for scanner.Scan() {
			if !yield(scanner.Text()) {
				return
			}
		}

		iterErr = scanner.Err()
	}

	finish := func() error {
		if iterErr != nil {
			return fmt.Errorf("scan git output: %w", iterErr)
		}

		return nil
	}

	return seq, finish
}

// Wait drains stderr and reaps the process, converting a non-zero exit
// into a SubprocessErr.
func (s *Subprocess) Wait() error {
	stderr, err := io.ReadAll(s.stderr)
	if err != nil {
		return fmt.Errorf("read git stderr: %w", err)
	}

	err = s.cmd.Wait()
	if err != nil {
		return SubprocessErr{
			ExitCode: s.cmd.ProcessState.ExitCode(),
			Stderr:   strings.TrimSpace(string(stderr)),
			Err:      err,
		}
	}

	return nil
}

// run starts git with the given arguments. The caller owns the returned
// subprocess and must call Wait.
func run(ctx context.Context, args []string) (*Subprocess, error) {
	cmd := exec.CommandContext(ctx, "git", args...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("open stdout pipe: %w", err)
	}

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("open stderr pipe: %w", err)
	}

	err = cmd.Start()
	if err != nil {
		return nil, fmt.Errorf("start git %s: %w", strings.Join(args, " "), err)
	}

	return &Subprocess{cmd: cmd, stdout: stdout, stderr: stderr}, nil
}
