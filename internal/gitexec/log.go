package gitexec

import (
	"context"
	"iter"
)

// logFormat marks each commit header with \x01 and separates fields with
// NUL. Diff content lines always carry a prefix character, so a line
// starting with \x01 unambiguously opens a new commit record.
// %aN/%aE apply .mailmap the same way git log does.
const logFormat = "--pretty=format:%x01%H%x00%aN%x00%aE"

// LogOptions selects the commit range for enumeration. Since and Until
// are passed through to git verbatim; git owns date parsing.
type LogOptions struct {
	Branch        string
	Since         string
	Until         string
	IncludeMerges bool
}

// RefArg returns the ref selection argument: the branch when one was
// given, otherwise --all.
func (o LogOptions) RefArg() string {
	if o.Branch != "" {
		return o.Branch
	}

	return "--all"
}

// toArgs builds the git log invocation. --unified=0 drops context lines
// so the classifier sees only changed lines.
func (o LogOptions) toArgs() []string {
	args := []string{"log", logFormat, "-p", "--unified=0"}

	if !o.IncludeMerges {
		args = append(args, "--no-merges")
	}

	if o.Since != "" {
		args = append(args, "--since="+o.Since)
	}

	if o.Until != "" {
		args = append(args, "--until="+o.Until)
	}

	return append(args, o.RefArg())
}

// RunLog starts the git log subprocess for the given options.
func RunLog(ctx context.Context, opts LogOptions) (*Subprocess, error) {
	return run(ctx, opts.toArgs())
}

// Commits returns an incremental iterator over the selected commit range
// and a closer that must be called after iteration to reap the
// subprocess. Peak memory is bounded by a single commit's patch.
func Commits(ctx context.Context, opts LogOptions) (
	iter.Seq2[CommitRecord, error],
	func() error,
	error,
) {
	subprocess, err := RunLog(ctx, opts)
	if err != nil {
		return nil, nil, err
	}

	lines, finishScan := subprocess.StdoutLines()
	records := ParseCommits(lines)

	closer := func() error {
		if scanErr := finishScan(); scanErr != nil {
			return scanErr
		}

		return subprocess.Wait()
	}

	return records, closer, nil
}
