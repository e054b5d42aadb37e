package models

import "time"

// Commit is a single Subversion revision. Identity is the revision number,
// which the upstream repository assigns monotonically and never reuses.
// Records are immutable once parsed.
type Commit struct {
	Revision int64     `json:"revision"`
	Author   string    `json:"author"`
	Date     time.Time `json:"date"`
	Message  string    `json:"message"`
}

// AuthorStats summarizes one author's activity in a repository.
type AuthorStats struct {
	Name          string    `json:"name"`
	CommitCount   int       `json:"commit_count"`
	FirstCommitAt time.Time `json:"first_commit_at,omitempty"`
	LastCommitAt  time.Time `json:"last_commit_at,omitempty"`
}
