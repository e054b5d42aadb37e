package history

import (
	"time"

	"github.com/svnstat/svnstat/internal/models"
)

// PlanWindow computes the next fetch window from the last persisted span.
//
// Three outcomes, which callers must distinguish:
//   - prior == nil: (nil, true) — no prior data, fetch all history with no
//     date filter.
//   - candidate window non-empty: (&window, true) — fetch just the window.
//   - candidate start >= end: (nil, false) — nothing new can exist, skip the
//     fetch entirely.
//
// The window starts one second past the prior span's end so the boundary
// commit is not re-fetched. This assumes no two commits straddle the boundary
// at sub-second spacing; an accepted approximation, not a guarantee (a
// re-fetched boundary commit would be dropped by Merge anyway).
func PlanWindow(prior *models.DateRange, now time.Time) (*models.DateRange, bool) {
	if prior == nil {
		return nil, true
	}

	start := prior.End.Add(time.Second)
	if !start.Before(now) {
		return nil, false
	}

	return &models.DateRange{Start: start, End: now}, true
}
