// Package store persists the merged commit record set per repository.
package store

import (
	"context"

	"github.com/svnstat/svnstat/internal/models"
)

// Store defines the persistence contract for commit record sets. A record set
// round-trips unchanged: revisions exactly, timestamps to at least one-second
// precision.
type Store interface {
	// LoadCommits returns the persisted set for a repository, or an empty
	// slice when the repository has never been synced.
	LoadCommits(ctx context.Context, repoURL string) ([]*models.Commit, error)

	// LoadRange returns the persisted min/max span, or nil when no commits
	// are recorded.
	LoadRange(ctx context.Context, repoURL string) (*models.DateRange, error)

	// SaveCommits replaces the persisted set with the merged set and its
	// recomputed span.
	SaveCommits(ctx context.Context, repoURL string, commits []*models.Commit, span models.DateRange) error

	// ListCommits returns a page of commits ordered by revision descending,
	// plus the total count.
	ListCommits(ctx context.Context, repoURL string, limit, offset int) ([]*models.Commit, int64, error)

	// TopAuthors returns per-author totals ordered by commit count descending.
	TopAuthors(ctx context.Context, repoURL string, limit int) ([]*models.AuthorStats, error)

	// DeleteCommits removes all persisted data for a repository. Operator
	// action; the only way records ever leave the set.
	DeleteCommits(ctx context.Context, repoURL string) error
}
