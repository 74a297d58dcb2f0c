package tally

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/charstat/internal/classify"
)

type recordedCommit struct {
	name  string
	email string
	delta classify.CommitDelta
}

func sampleCommits() []recordedCommit {
	return []recordedCommit{
		{"Ada Lovelace", "ada@example.com", classify.CommitDelta{AddedLines: 3, AddedChars: 40}},
		{"Ada Lovelace", "ada@example.com", classify.CommitDelta{DeletedLines: 1, DeletedChars: 10}},
		{"ada lovelace", "ada@example.com", classify.CommitDelta{ModifiedChars: 7}},
		{"Grace Hopper", "grace@example.com", classify.CommitDelta{AddedLines: 1, AddedChars: 5}},
		{"Grace Hopper", "grace@navy.mil", classify.CommitDelta{AddedLines: 2, AddedChars: 12, ModifiedChars: 2}},
	}
}

func rowsByKey(rows []Row) map[string]Row {
	byKey := make(map[string]Row, len(rows))
	for _, row := range rows {
		byKey[row.Key] = row
	}

	return byKey
}

func TestParseGroupBy(t *testing.T) {
	t.Parallel()

	t.Run("valid_modes", func(t *testing.T) {
		t.Parallel()

		got, err := ParseGroupBy("name")
		require.NoError(t, err)
		assert.Equal(t, GroupByName, got)

		got, err = ParseGroupBy("email")
		require.NoError(t, err)
		assert.Equal(t, GroupByEmail, got)
	})

	t.Run("unknown_mode", func(t *testing.T) {
		t.Parallel()

		_, err := ParseGroupBy("login")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnknownGroupBy)
	})
}

func TestAccumulator_OrderIndependent(t *testing.T) {
	t.Parallel()

	commits := sampleCommits()

	forward := NewAccumulator(GroupByEmail)
	for _, c := range commits {
		forward.Record(c.name, c.email, c.delta)
	}

	rng := rand.New(rand.NewSource(42))

	for range 5 {
		shuffled := make([]recordedCommit, len(commits))
		copy(shuffled, commits)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		reordered := NewAccumulator(GroupByEmail)
		for _, c := range shuffled {
			reordered.Record(c.name, c.email, c.delta)
		}

		want := rowsByKey(forward.Rows())
		got := rowsByKey(reordered.Rows())

		require.Len(t, got, len(want))

		for key, wantRow := range want {
			gotRow := got[key]
			assert.Equal(t, wantRow.Commits, gotRow.Commits)
			assert.Equal(t, wantRow.AddedLines, gotRow.AddedLines)
			assert.Equal(t, wantRow.DeletedLines, gotRow.DeletedLines)
			assert.Equal(t, wantRow.AddedChars, gotRow.AddedChars)
			assert.Equal(t, wantRow.DeletedChars, gotRow.DeletedChars)
			assert.Equal(t, wantRow.ModifiedChars, gotRow.ModifiedChars)
		}
	}
}

func TestAccumulator_CaseFoldedKeys(t *testing.T) {
	t.Parallel()

	acc := NewAccumulator(GroupByName)
	acc.Record("Ada Lovelace", "ada@example.com", classify.CommitDelta{AddedLines: 1})
	acc.Record("ADA LOVELACE", "ada@example.com", classify.CommitDelta{AddedLines: 1})

	rows := acc.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].Commits)
	// Canonical display keeps the first spelling seen.
	assert.Equal(t, "Ada Lovelace", rows[0].Author)
}

func TestAccumulator_GroupingModesAgreeOnTotals(t *testing.T) {
	t.Parallel()

	// One person commits under two names but a single email:
	// email grouping yields one row, name grouping two, equal totals.
	commits := []recordedCommit{
		{"Alonzo Church", "alonzo@example.com", classify.CommitDelta{AddedLines: 2, AddedChars: 20}},
		{"A. Church", "alonzo@example.com", classify.CommitDelta{AddedLines: 1, AddedChars: 5, ModifiedChars: 3}},
	}

	byEmail := NewAccumulator(GroupByEmail)
	byName := NewAccumulator(GroupByName)

	for _, c := range commits {
		byEmail.Record(c.name, c.email, c.delta)
		byName.Record(c.name, c.email, c.delta)
	}

	emailRows := byEmail.Rows()
	nameRows := byName.Rows()

	require.Len(t, emailRows, 1)
	require.Len(t, nameRows, 2)

	sum := func(rows []Row) (commits, added, modified int) {
		for _, row := range rows {
			commits += row.Commits
			added += row.AddedChars
			modified += row.ModifiedChars
		}

		return commits, added, modified
	}

	emailCommits, emailAdded, emailModified := sum(emailRows)
	nameCommits, nameAdded, nameModified := sum(nameRows)

	assert.Equal(t, emailCommits, nameCommits)
	assert.Equal(t, emailAdded, nameAdded)
	assert.Equal(t, emailModified, nameModified)
}

func TestAccumulator_EmailGroupingListsNamesByFrequency(t *testing.T) {
	t.Parallel()

	acc := NewAccumulator(GroupByEmail)
	acc.Record("A. Church", "alonzo@example.com", classify.CommitDelta{})
	acc.Record("Alonzo Church", "alonzo@example.com", classify.CommitDelta{})
	acc.Record("Alonzo Church", "alonzo@example.com", classify.CommitDelta{})

	rows := acc.Rows()
	require.Len(t, rows, 1)

	assert.Equal(t, "Alonzo Church;A. Church", rows[0].Author)
	assert.Equal(t, "alonzo@example.com", rows[0].Email)
}

func TestAccumulator_NameGroupingListsEmailsByFrequency(t *testing.T) {
	t.Parallel()

	acc := NewAccumulator(GroupByName)
	acc.Record("Grace Hopper", "grace@navy.mil", classify.CommitDelta{})
	acc.Record("Grace Hopper", "grace@example.com", classify.CommitDelta{})
	acc.Record("Grace Hopper", "grace@example.com", classify.CommitDelta{})

	rows := acc.Rows()
	require.Len(t, rows, 1)

	assert.Equal(t, "Grace Hopper", rows[0].Author)
	assert.Equal(t, "grace@example.com;grace@navy.mil", rows[0].Email)
}

func TestAccumulator_EmptyDeltaStillCountsCommit(t *testing.T) {
	t.Parallel()

	acc := NewAccumulator(GroupByName)
	acc.Record("Ada Lovelace", "ada@example.com", classify.CommitDelta{})

	rows := acc.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].Commits)
	assert.Equal(t, 0, rows[0].AddedChars)
}
