// Package tally folds per-commit classification deltas into per-author
// running totals. Accumulation is additive and order-independent: the
// result does not change under reordering of the commit stream.
package tally

import (
	"strings"

	"github.com/Sumatoshi-tech/charstat/internal/classify"
)

// variantSeparator joins alternate names or emails in a display field.
const variantSeparator = ";"

// AuthorStats is the mutable accumulator for one aggregation key.
type AuthorStats struct {
	Commits       int
	AddedLines    int
	DeletedLines  int
	AddedChars    int
	DeletedChars  int
	ModifiedChars int

	names  *variantSet
	emails *variantSet
}

// Row is a finalized, display-ready per-author result. Key is the folded
// aggregation key, retained for deterministic tie-breaking.
type Row struct {
	Key           string
	Author        string
	Email         string
	Commits       int
	AddedLines    int
	DeletedLines  int
	AddedChars    int
	DeletedChars  int
	ModifiedChars int
}

// Accumulator aggregates commit deltas per author key.
type Accumulator struct {
	groupBy GroupBy
	stats   map[string]*AuthorStats
}

// NewAccumulator creates an accumulator for the given grouping mode.
func NewAccumulator(groupBy GroupBy) *Accumulator {
	return &Accumulator{
		groupBy: groupBy,
		stats:   map[string]*AuthorStats{},
	}
}

// Record folds one commit's delta into the totals for its author. The
// commit count always advances, even for a zero delta (binary or empty
// diffs still count toward the commit total).
func (a *Accumulator) Record(authorName, authorEmail string, delta classify.CommitDelta) {
	key := foldKey(authorName)
	if a.groupBy == GroupByEmail {
		key = foldKey(authorEmail)
	}

	stats := a.stats[key]
	if stats == nil {
		stats = &AuthorStats{names: newVariantSet(), emails: newVariantSet()}
		a.stats[key] = stats
	}

	stats.names.add(authorName)
	stats.emails.add(authorEmail)

	stats.Commits++
	stats.AddedLines += delta.AddedLines
	stats.DeletedLines += delta.DeletedLines
	stats.AddedChars += delta.AddedChars
	stats.DeletedChars += delta.DeletedChars
	stats.ModifiedChars += delta.ModifiedChars
}

// Len returns the number of distinct author keys seen so far.
func (a *Accumulator) Len() int {
	return len(a.stats)
}

// Rows finalizes the accumulated totals into display rows, unsorted.
//
// Grouping by email lists every name seen for that email (most frequent
// first) and shows the first-seen email spelling; grouping by name shows
// the first-seen name and lists every email seen for it.
func (a *Accumulator) Rows() []Row {
	rows := make([]Row, 0, len(a.stats))

	for key, stats := range a.stats {
		row := Row{
			Key:           key,
			Commits:       stats.Commits,
			AddedLines:    stats.AddedLines,
			DeletedLines:  stats.DeletedLines,
			AddedChars:    stats.AddedChars,
			DeletedChars:  stats.DeletedChars,
			ModifiedChars: stats.ModifiedChars,
		}

		if a.groupBy == GroupByEmail {
			row.Author = strings.Join(stats.names.byFrequency(), variantSeparator)
			row.Email = stats.emails.canonical()
		} else {
			row.Author = stats.names.canonical()
			row.Email = strings.Join(stats.emails.byFrequency(), variantSeparator)
		}

		rows = append(rows, row)
	}

	return rows
}
