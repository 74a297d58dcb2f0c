// Package classify converts unified diff text into character-level change
// metrics. Removed and added line runs within one hunk region are paired
// positionally; paired lines are aligned character by character, surplus
// lines count as pure deletions or additions.
package classify

import (
	"log/slog"
	"strings"
	"unicode/utf8"
)

// noNewlineMarker is the diff annotation for files without a trailing newline.
const noNewlineMarker = "\\ No newline"

// CommitDelta holds the raw counters produced by classifying one commit's
// diff. Derived values (net lines, added_or_modified chars) are computed
// at reporting time, never stored here.
type CommitDelta struct {
	AddedLines    int
	DeletedLines  int
	AddedChars    int
	DeletedChars  int
	ModifiedChars int

	// Warnings counts hunk regions that were skipped as unparseable.
	Warnings int
}

// Add folds another delta into this one.
func (d *CommitDelta) Add(other CommitDelta) {
	d.AddedLines += other.AddedLines
	d.DeletedLines += other.DeletedLines
	d.AddedChars += other.AddedChars
	d.DeletedChars += other.DeletedChars
	d.ModifiedChars += other.ModifiedChars
	d.Warnings += other.Warnings
}

// Classifier parses unified diff text into CommitDelta values.
type Classifier struct {
	logger *slog.Logger
}

// NewClassifier creates a classifier that reports recoverable parse
// problems through the given logger.
func NewClassifier(logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}

	return &Classifier{logger: logger}
}

// Classify walks the unified diff of a single commit and accumulates
// line and character counters. An empty diff (binary file, empty commit)
// yields a zero delta. Malformed hunk content never aborts the walk; the
// offending region is skipped and counted in Warnings.
func (c *Classifier) Classify(diffText string) CommitDelta {
	var (
		delta  CommitDelta
		delBuf []string
		addBuf []string
		inHunk bool
	)

	flush := func() {
		flushRuns(&delta, delBuf, addBuf)
		delBuf = delBuf[:0]
		addBuf = addBuf[:0]
	}

	for line := range strings.Lines(diffText) {
		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")

		if isFileHeader(line) {
			flush()

			inHunk = false

			continue
		}

		if strings.HasPrefix(line, "@@") {
			flush()

			// A hunk header without a closing marker means the patch
			// stream is corrupt from here to the next file header.
			if !strings.Contains(line[2:], "@@") {
				c.logger.Warn("skipping malformed hunk header", "line", line)

				delta.Warnings++
				inHunk = false

				continue
			}

			inHunk = true

			continue
		}

		if !inHunk {
			continue
		}

		if line == "" {
			flush()

			continue
		}

		switch line[0] {
		case '-':
			content := line[1:]
			if strings.HasPrefix(content, noNewlineMarker) {
				continue
			}

			delta.DeletedLines++
			delBuf = append(delBuf, content)
		case '+':
			content := line[1:]
			if strings.HasPrefix(content, noNewlineMarker) {
				continue
			}

			delta.AddedLines++
			addBuf = append(addBuf, content)
		case '\\':
			// "\ No newline at end of file" without +/- prefix.
			continue
		default:
			// Context line: closes the current removed/added runs.
			flush()
		}
	}

	flush()

	return delta
}

// flushRuns pairs the buffered removed and added lines positionally and
// folds their character counts into the delta.
func flushRuns(delta *CommitDelta, delBuf, addBuf []string) {
	pairs := min(len(delBuf), len(addBuf))

	for i := range pairs {
		alignment := AlignChars(delBuf[i], addBuf[i])
		delta.AddedChars += alignment.Inserted
		delta.DeletedChars += alignment.Removed
		delta.ModifiedChars += alignment.Substituted
	}

	for _, line := range addBuf[pairs:] {
		delta.AddedChars += utf8.RuneCountInString(line)
	}

	for _, line := range delBuf[pairs:] {
		delta.DeletedChars += utf8.RuneCountInString(line)
	}
}

// isFileHeader reports whether the line belongs to the per-file diff
// preamble rather than hunk content.
func isFileHeader(line string) bool {
	return strings.HasPrefix(line, "diff ") ||
		strings.HasPrefix(line, "index ") ||
		strings.HasPrefix(line, "--- ") ||
		strings.HasPrefix(line, "+++ ") ||
		strings.HasPrefix(line, "old mode ") ||
		strings.HasPrefix(line, "new mode ") ||
		strings.HasPrefix(line, "deleted file mode ") ||
		strings.HasPrefix(line, "new file mode ") ||
		strings.HasPrefix(line, "similarity index ") ||
		strings.HasPrefix(line, "rename from ") ||
		strings.HasPrefix(line, "rename to ") ||
		strings.HasPrefix(line, "Binary files ")
}
