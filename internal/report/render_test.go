package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/svnstat/svnstat/internal/models"
	"github.com/svnstat/svnstat/internal/stats"
)

func buildSummary(t *testing.T) *stats.Summary {
	t.Helper()
	commits := []*models.Commit{
		{Revision: 1, Author: "alice", Date: time.Date(2024, 3, 1, 10, 0, 0, 0, time.Local)},
		{Revision: 2, Author: "bob", Date: time.Date(2024, 3, 1, 15, 0, 0, 0, time.Local)},
		{Revision: 3, Author: "alice", Date: time.Date(2024, 3, 2, 9, 0, 0, 0, time.Local)},
	}
	rng := models.DateRange{Start: commits[0].Date, End: commits[2].Date}

	sum, err := stats.Aggregate(commits, rng, time.Date(2024, 3, 2, 12, 0, 0, 0, time.Local), stats.ModeAll)
	require.NoError(t, err)
	return sum
}

func TestWriteDashboard(t *testing.T) {
	var buf bytes.Buffer
	err := WriteDashboard(&buf, "https://svn.example.org/repo", buildSummary(t))
	require.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, "echarts")
	assert.Contains(t, html, "Commits per Day")
	assert.Contains(t, html, "Commits by Author")
	assert.Contains(t, html, "Commits by Weekday")
	assert.Contains(t, html, "alice")
}

func TestWriteDashboard_EmptySummary(t *testing.T) {
	rng := models.DateRange{
		Start: time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local),
		End:   time.Date(2024, 3, 2, 0, 0, 0, 0, time.Local),
	}
	sum, err := stats.Aggregate(nil, rng, time.Date(2024, 3, 2, 0, 0, 0, 0, time.Local), stats.ModeAll)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteDashboard(&buf, "https://svn.example.org/empty", sum))
	assert.NotZero(t, buf.Len())
}
