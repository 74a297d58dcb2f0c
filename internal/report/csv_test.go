package report

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/charstat/internal/tally"
)

func TestWriteCSV_HeaderOnlyWhenEmpty(t *testing.T) {
	t.Parallel()

	var b strings.Builder

	err := WriteCSV(&b, nil)
	require.NoError(t, err)

	assert.Equal(t,
		"author,email,commits,added_lines,deleted_lines,added+deleted_lines,net_lines,"+
			"added_chars,deleted_chars,modified_chars,added_or_modified_chars,net_chars\n",
		b.String(),
	)
}

func TestWriteCSV_DerivedColumns(t *testing.T) {
	t.Parallel()

	rows := []tally.Row{
		{
			Key:           "ada lovelace",
			Author:        "Ada Lovelace",
			Email:         "ada@example.com",
			Commits:       4,
			AddedLines:    10,
			DeletedLines:  3,
			AddedChars:    100,
			DeletedChars:  30,
			ModifiedChars: 12,
		},
	}

	var b strings.Builder

	err := WriteCSV(&b, rows)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	require.Len(t, lines, 2)

	// added+deleted=13, net_lines=7, added_or_modified=112, net_chars=82.
	assert.Equal(t,
		"Ada Lovelace,ada@example.com,4,10,3,13,7,100,30,12,112,82",
		lines[1],
	)
}

func TestWriteCSV_InvariantAddedOrModified(t *testing.T) {
	t.Parallel()

	rows := []tally.Row{
		{Key: "a", Author: "a", AddedChars: 7, ModifiedChars: 5, DeletedChars: 2},
		{Key: "b", Author: "b", AddedChars: 0, ModifiedChars: 0, DeletedChars: 9},
		{Key: "c", Author: "c", AddedChars: 3, ModifiedChars: 11, DeletedChars: 0},
	}

	var b strings.Builder

	err := WriteCSV(&b, rows)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(b.String()), "\n")[1:]
	require.Len(t, lines, len(rows))

	for i, line := range lines {
		fields := strings.Split(line, ",")
		require.Len(t, fields, len(Header))

		// added_or_modified_chars == added_chars + modified_chars.
		assert.Equal(t,
			strconv.Itoa(rows[i].AddedChars+rows[i].ModifiedChars),
			fields[10],
		)
		// net_chars = added + modified - deleted.
		assert.Equal(t,
			strconv.Itoa(rows[i].AddedChars+rows[i].ModifiedChars-rows[i].DeletedChars),
			fields[11],
		)
	}
}

func TestWriteCSV_QuotesFieldsWithSeparators(t *testing.T) {
	t.Parallel()

	rows := []tally.Row{
		{Key: "x", Author: "Last, First", Email: "x@example.com", Commits: 1},
	}

	var b strings.Builder

	err := WriteCSV(&b, rows)
	require.NoError(t, err)

	assert.Contains(t, b.String(), `"Last, First"`)
}

func TestSortRows_CommitsDescendingTiesByKey(t *testing.T) {
	t.Parallel()

	rows := []tally.Row{
		{Key: "charlie", Commits: 2},
		{Key: "alice", Commits: 5},
		{Key: "bob", Commits: 2},
		{Key: "dave", Commits: 9},
	}

	SortRows(rows)

	keys := make([]string, len(rows))
	for i, row := range rows {
		keys[i] = row.Key
	}

	assert.Equal(t, []string{"dave", "alice", "bob", "charlie"}, keys)
}

func TestLimit(t *testing.T) {
	t.Parallel()

	rows := []tally.Row{
		{Key: "a", Commits: 5},
		{Key: "b", Commits: 4},
		{Key: "c", Commits: 3},
		{Key: "d", Commits: 2},
		{Key: "e", Commits: 1},
	}

	t.Run("keeps_top_n", func(t *testing.T) {
		t.Parallel()

		got := Limit(rows, 2)
		require.Len(t, got, 2)
		assert.Equal(t, "a", got[0].Key)
		assert.Equal(t, "b", got[1].Key)
	})

	t.Run("zero_keeps_all", func(t *testing.T) {
		t.Parallel()

		assert.Len(t, Limit(rows, 0), 5)
	})

	t.Run("overshoot_keeps_all", func(t *testing.T) {
		t.Parallel()

		assert.Len(t, Limit(rows, 50), 5)
	})
}
