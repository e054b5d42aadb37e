// Package history implements the incremental-synchronization core: merging
// fetched commit batches into the persisted set, recomputing the persisted
// date span, and planning the next fetch window.
package history

import (
	"github.com/svnstat/svnstat/internal/errors"
	"github.com/svnstat/svnstat/internal/models"
)

// Merge combines the persisted set with a newly fetched batch, keyed by
// revision. Every existing record is retained unconditionally; incoming
// records whose revision is already present are dropped, keeping the existing
// record. The kept subset preserves incoming order and is appended after
// existing. newCount is the number of records actually added, for reporting
// only.
//
// Incoming is deduped against existing only, not against itself: the parser
// contract guarantees at most one record per revision per batch.
func Merge(existing, incoming []*models.Commit) (merged []*models.Commit, newCount int) {
	seen := make(map[int64]struct{}, len(existing))
	for _, c := range existing {
		seen[c.Revision] = struct{}{}
	}

	merged = make([]*models.Commit, 0, len(existing)+len(incoming))
	merged = append(merged, existing...)
	for _, c := range incoming {
		if _, ok := seen[c.Revision]; ok {
			continue
		}
		merged = append(merged, c)
		newCount++
	}

	return merged, newCount
}

// Span returns the min/max timestamp range of a commit set. Callers must
// branch on the empty case before calling; an empty set is an error, not a
// zero range.
func Span(commits []*models.Commit) (models.DateRange, error) {
	if len(commits) == 0 {
		return models.DateRange{}, errors.NewEmptyInputError("cannot compute date span of an empty commit set")
	}

	span := models.DateRange{Start: commits[0].Date, End: commits[0].Date}
	for _, c := range commits[1:] {
		if c.Date.Before(span.Start) {
			span.Start = c.Date
		}
		if c.Date.After(span.End) {
			span.End = c.Date
		}
	}

	return span, nil
}
