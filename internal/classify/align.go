package classify

import (
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Alignment holds the character-level change counts between two versions
// of a line. Substituted counts aligned replacements once, so a full-line
// rewrite is not double-counted as both an insertion and a deletion.
type Alignment struct {
	Inserted    int
	Removed     int
	Substituted int
}

// AlignChars computes a common-subsequence alignment between the old and
// new version of a line and classifies the differing characters into
// insertions, deletions and substitutions. Counts are Unicode code
// points. Within each replaced region the shorter of the removed and
// inserted runs counts as substituted and the surplus as a pure insertion
// or deletion.
func AlignChars(oldLine, newLine string) Alignment {
	var alignment Alignment

	if oldLine == newLine {
		return alignment
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(oldLine, newLine, false)

	// diffmatchpatch normalizes adjacent edits so a deletion always
	// precedes the insertion it was replaced by.
	pendingRemoved := 0

	for _, diff := range diffs {
		length := utf8.RuneCountInString(diff.Text)

		switch diff.Type {
		case diffmatchpatch.DiffEqual:
			alignment.Removed += pendingRemoved
			pendingRemoved = 0
		case diffmatchpatch.DiffDelete:
			alignment.Removed += pendingRemoved
			pendingRemoved = length
		case diffmatchpatch.DiffInsert:
			substituted := min(pendingRemoved, length)
			alignment.Substituted += substituted
			alignment.Removed += pendingRemoved - substituted
			alignment.Inserted += length - substituted
			pendingRemoved = 0
		}
	}

	alignment.Removed += pendingRemoved

	return alignment
}
