package gitexec

import (
	"errors"
	"fmt"
	"iter"
	"strings"
)

// Header layout per logFormat: \x01 marker, then hash/name/email split on NUL.
const (
	headerMarker = "\x01"
	fieldSep     = "\x00"
	headerFields = 3
)

// ErrMalformedHeader indicates a commit header line that did not match
// the expected field layout. The stream continues past it.
var ErrMalformedHeader = errors.New("malformed commit header")

// CommitRecord is one enumerated commit: author identity plus the raw
// unified diff body. Produced once, discarded after classification.
type CommitRecord struct {
	Hash        string
	AuthorName  string
	AuthorEmail string
	Diff        string
}

// ParseCommits turns a line iterator over git log output into an iterator
// of commit records. Recoverable anomalies (malformed headers) are
// yielded as non-nil errors with a zero record; the stream continues.
func ParseCommits(lines iter.Seq[string]) iter.Seq2[CommitRecord, error] {
	return func(yield func(CommitRecord, error) bool) {
		var (
			current CommitRecord
			diff    strings.Builder
			open    bool
		)

		emit := func() bool {
			if !open {
				return true
			}

			current.Diff = diff.String()
			diff.Reset()
			open = false

			return yield(current, nil)
		}

		for line := range lines {
			if !strings.HasPrefix(line, headerMarker) {
				if open {
					diff.WriteString(line)
					diff.WriteString("\n")
				}

				continue
			}

			if !emit() {
				return
			}

			fields := strings.Split(line[len(headerMarker):], fieldSep)
			if len(fields) != headerFields {
				if !yield(CommitRecord{}, fmt.Errorf("%w: %q", ErrMalformedHeader, line)) {
					return
				}

				continue
			}

			current = CommitRecord{
				Hash:        strings.TrimSpace(fields[0]),
				AuthorName:  strings.TrimSpace(fields[1]),
				AuthorEmail: strings.TrimSpace(fields[2]),
			}
			open = true
		}

		emit()
	}
}
