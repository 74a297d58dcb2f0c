package report

import (
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/Sumatoshi-tech/charstat/internal/tally"
)

// summaryTopAuthors caps the author table in the stderr summary.
const summaryTopAuthors = 10

// Summary aggregates run-level totals for the diagnostics stream.
type Summary struct {
	Commits  int
	Warnings int
}

// RenderSummary formats totals and a top-authors table for stderr. Rows
// must already be sorted. The result never touches the CSV stream.
func RenderSummary(rows []tally.Row, summary Summary) string {
	var b strings.Builder

	header := color.New(color.FgGreen)
	if summary.Warnings > 0 {
		header = color.New(color.FgYellow)
	}

	b.WriteString(header.Sprintf(
		"Processed %s commits across %s authors (%s warnings)\n",
		humanize.Comma(int64(summary.Commits)),
		humanize.Comma(int64(len(rows))),
		humanize.Comma(int64(summary.Warnings)),
	))

	var totalAdded, totalDeleted, totalModified int64

	for _, row := range rows {
		totalAdded += int64(row.AddedChars)
		totalDeleted += int64(row.DeletedChars)
		totalModified += int64(row.ModifiedChars)
	}

	b.WriteString("Totals: ")
	b.WriteString(humanize.Comma(totalAdded))
	b.WriteString(" chars added, ")
	b.WriteString(humanize.Comma(totalDeleted))
	b.WriteString(" deleted, ")
	b.WriteString(humanize.Comma(totalModified))
	b.WriteString(" modified\n")

	if len(rows) == 0 {
		return b.String()
	}

	writer := table.NewWriter()
	writer.AppendHeader(table.Row{"author", "commits", "net lines", "net chars"})

	for i, row := range rows {
		if i >= summaryTopAuthors {
			break
		}

		netChars := row.AddedChars + row.ModifiedChars - row.DeletedChars
		writer.AppendRow(table.Row{
			row.Author,
			humanize.Comma(int64(row.Commits)),
			humanize.Comma(int64(row.AddedLines - row.DeletedLines)),
			humanize.Comma(int64(netChars)),
		})
	}

	b.WriteString(writer.Render())
	b.WriteString("\n")

	return b.String()
}
