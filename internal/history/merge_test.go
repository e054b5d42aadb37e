package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/svnstat/svnstat/internal/errors"
	"github.com/svnstat/svnstat/internal/models"
)

func mkCommit(rev int64, author string, day int) *models.Commit {
	return &models.Commit{
		Revision: rev,
		Author:   author,
		Date:     time.Date(2024, 3, day, 12, 0, 0, 0, time.UTC),
		Message:  "change",
	}
}

func TestMerge_DedupKeepsExistingRecord(t *testing.T) {
	existing := []*models.Commit{
		mkCommit(1, "a", 1),
		mkCommit(2, "b", 2),
	}
	incoming := []*models.Commit{
		mkCommit(2, "rewritten", 2), // duplicate revision, different author
		mkCommit(3, "c", 3),
	}

	merged, newCount := Merge(existing, incoming)

	assert.Equal(t, 1, newCount)
	require.Len(t, merged, 3)

	var matches []*models.Commit
	for _, c := range merged {
		if c.Revision == 2 {
			matches = append(matches, c)
		}
	}
	require.Len(t, matches, 1)
	assert.Equal(t, "b", matches[0].Author, "existing record must win")
}

func TestMerge_OrderIsExistingThenFilteredIncoming(t *testing.T) {
	existing := []*models.Commit{mkCommit(5, "a", 5)}
	incoming := []*models.Commit{
		mkCommit(7, "b", 7),
		mkCommit(5, "a", 5),
		mkCommit(6, "b", 6),
	}

	merged, newCount := Merge(existing, incoming)

	assert.Equal(t, 2, newCount)
	revs := make([]int64, len(merged))
	for i, c := range merged {
		revs[i] = c.Revision
	}
	assert.Equal(t, []int64{5, 7, 6}, revs)
}

func TestMerge_Idempotent(t *testing.T) {
	a := []*models.Commit{mkCommit(1, "a", 1), mkCommit(2, "b", 2)}
	b := []*models.Commit{mkCommit(2, "b", 2), mkCommit(3, "c", 3)}

	merged, _ := Merge(a, b)
	_, newCount := Merge(merged, b)
	assert.Equal(t, 0, newCount)
}

func TestMerge_EmptyInputs(t *testing.T) {
	merged, newCount := Merge(nil, nil)
	assert.Empty(t, merged)
	assert.Zero(t, newCount)

	incoming := []*models.Commit{mkCommit(1, "a", 1)}
	merged, newCount = Merge(nil, incoming)
	assert.Len(t, merged, 1)
	assert.Equal(t, 1, newCount)
}

func TestMerge_IncomingSelfDuplicates(t *testing.T) {
	// Documented assumption: dedup is against existing only. A batch that
	// violates the parser contract with a repeated revision keeps both.
	incoming := []*models.Commit{mkCommit(1, "a", 1), mkCommit(1, "a", 1)}

	merged, newCount := Merge(nil, incoming)
	assert.Len(t, merged, 2)
	assert.Equal(t, 2, newCount)
}

func TestSpan(t *testing.T) {
	commits := []*models.Commit{
		mkCommit(2, "a", 15),
		mkCommit(1, "a", 3),
		mkCommit(3, "b", 28),
	}

	span, err := Span(commits)
	require.NoError(t, err)
	assert.Equal(t, commits[1].Date, span.Start)
	assert.Equal(t, commits[2].Date, span.End)
}

func TestSpan_EmptyInput(t *testing.T) {
	_, err := Span(nil)
	require.Error(t, err)
	assert.True(t, errors.IsEmptyInput(err))
}
