package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// SyncResult reports the outcome of one incremental sync run.
type SyncResult struct {
	RepositoryURL string        `json:"repository_url"`
	TotalCommits  int           `json:"total_commits"`
	NewCommits    int           `json:"new_commits"`
	Span          *DateRange    `json:"span,omitempty"`
	Fetched       bool          `json:"fetched"`
	Duration      time.Duration `json:"duration"`
	FinishedAt    time.Time     `json:"finished_at"`
}

// String returns the JSON representation of the sync result.
func (r *SyncResult) String() string {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Sprintf(`{"error":"failed to marshal sync result: %v"}`, err)
	}
	return string(data)
}
