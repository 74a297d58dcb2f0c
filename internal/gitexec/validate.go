package gitexec

import (
	"context"
	"fmt"
)

// CheckDate asks git to parse a user-supplied date string by running a
// trivial one-commit log probe with the same ref selection the real run
// will use. Git accepting the date with zero matching commits is success;
// only a parse rejection fails. flag is "--since" or "--until".
func CheckDate(ctx context.Context, flag, value, refArg string) error {
	args := []string{"log", "--pretty=format:%H", "-n", "1", flag + "=" + value, refArg}

	subprocess, err := run(ctx, args)
	if err != nil {
		return err
	}

	lines, finishScan := subprocess.StdoutLines()
	for range lines {
		// Drain; the probe output is at most one hash.
	}

	if scanErr := finishScan(); scanErr != nil {
		return scanErr
	}

	if waitErr := subprocess.Wait(); waitErr != nil {
		return fmt.Errorf("git rejected %s=%s: %w", flag, value, waitErr)
	}

	return nil
}
