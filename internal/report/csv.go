// Package report renders finalized author statistics: the CSV contract on
// the output file and a human summary on the diagnostics stream.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/Sumatoshi-tech/charstat/internal/tally"
)

// Header is the documented CSV column order. Derived columns
// (added+deleted_lines, net_lines, added_or_modified_chars, net_chars)
// are computed here at emission time, never stored in the accumulator.
var Header = []string{
	"author",
	"email",
	"commits",
	"added_lines",
	"deleted_lines",
	"added+deleted_lines",
	"net_lines",
	"added_chars",
	"deleted_chars",
	"modified_chars",
	"added_or_modified_chars",
	"net_chars",
}

// SortRows orders rows by commit count descending; ties break on the
// folded author key so output is deterministic.
func SortRows(rows []tally.Row) {
	slices.SortFunc(rows, func(a, b tally.Row) int {
		if a.Commits != b.Commits {
			if a.Commits > b.Commits {
				return -1
			}

			return 1
		}

		return strings.Compare(a.Key, b.Key)
	})
}

// Limit keeps the first n rows; n <= 0 keeps everything.
func Limit(rows []tally.Row, n int) []tally.Row {
	if n <= 0 || n >= len(rows) {
		return rows
	}

	return rows[:n]
}

// WriteCSV emits the header and one record per row, in the given order.
// An empty row set produces a header-only file.
func WriteCSV(w io.Writer, rows []tally.Row) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, row := range rows {
		if err := writer.Write(record(row)); err != nil {
			return fmt.Errorf("write csv row for %q: %w", row.Author, err)
		}
	}

	writer.Flush()

	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	return nil
}

func record(row tally.Row) []string {
	addedOrModified := row.AddedChars + row.ModifiedChars
	netChars := addedOrModified - row.DeletedChars

	return []string{
		row.Author,
		row.Email,
		strconv.Itoa(row.Commits),
		strconv.Itoa(row.AddedLines),
		strconv.Itoa(row.DeletedLines),
		strconv.Itoa(row.AddedLines + row.DeletedLines),
		strconv.Itoa(row.AddedLines - row.DeletedLines),
		strconv.Itoa(row.AddedChars),
		strconv.Itoa(row.DeletedChars),
		strconv.Itoa(row.ModifiedChars),
		strconv.Itoa(addedOrModified),
		strconv.Itoa(netChars),
	}
}
