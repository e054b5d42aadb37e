// Package stats implements the commit aggregation engine: range-filtered
// dense time bucketing with per-author breakdowns, plus the now-anchored
// dashboard views.
package stats

import (
	"fmt"
	"time"

	"github.com/svnstat/svnstat/internal/errors"
	"github.com/svnstat/svnstat/internal/models"
)

// Mode selects which dimension set Aggregate produces.
type Mode string

const (
	// ModeRange produces the fixed-range day/week/month views.
	ModeRange Mode = "range"
	// ModeDashboard produces the now-anchored rolling and distribution views.
	ModeDashboard Mode = "dashboard"
	// ModeAll produces both sets.
	ModeAll Mode = "all"
)

// WeekdayOrder is the fixed rendering order for the weekday distribution.
// Monday-first, unlike the calendar order WeekdayName follows.
var WeekdayOrder = [7]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// RangeStats holds the fixed-range views. The overall maps are dense: every
// day/week/month label intersecting the normalized range is present, zero or
// not. The per-author maps are sparse: an author's map holds only the labels
// that author actually touched.
type RangeStats struct {
	ByDay   map[string]int `json:"by_day"`
	ByWeek  map[string]int `json:"by_week"`
	ByMonth map[string]int `json:"by_month"`

	AuthorByDay   map[string]map[string]int `json:"author_by_day"`
	AuthorByWeek  map[string]map[string]int `json:"author_by_week"`
	AuthorByMonth map[string]map[string]int `json:"author_by_month"`
}

// DashboardStats holds the views anchored at the invocation instant rather
// than the reporting range.
type DashboardStats struct {
	Last30Days   map[string]int `json:"last_30_days"`
	Last12Months map[string]int `json:"last_12_months"`
	AuthorTotals map[string]int `json:"author_totals"`
	ByWeekday    map[string]int `json:"by_weekday"`
	ByHour       map[int]int    `json:"by_hour"`
}

// Summary is the full aggregation output for one run. Only the sets selected
// by the mode are populated.
type Summary struct {
	Range        models.DateRange `json:"range"`
	TotalCommits int              `json:"total_commits"`
	RangeStats   *RangeStats      `json:"range_stats,omitempty"`
	Dashboard    *DashboardStats  `json:"dashboard,omitempty"`
	GeneratedAt  time.Time        `json:"generated_at"`
}

// Aggregate buckets commits over the given reporting range. The range is
// normalized (start floored to local midnight, end ceiled to 23:59:59.999)
// before filtering; commits outside the normalized span contribute to no
// view. now anchors the rolling windows and is injected so aggregation stays
// pure and testable.
func Aggregate(commits []*models.Commit, rng models.DateRange, now time.Time, mode Mode) (*Summary, error) {
	switch mode {
	case ModeRange, ModeDashboard, ModeAll:
	default:
		return nil, errors.NewCallerContractError(fmt.Sprintf("unknown aggregation mode %q", mode)).WithStage("aggregate")
	}

	norm := rng.Normalized()
	if norm.Start.After(norm.End) {
		return nil, errors.NewCallerContractError(fmt.Sprintf(
			"reporting range start %s is after end %s", norm.Start.Format(time.RFC3339), norm.End.Format(time.RFC3339))).
			WithStage("aggregate")
	}

	filtered := make([]*models.Commit, 0, len(commits))
	for _, c := range commits {
		if norm.Contains(c.Date) {
			filtered = append(filtered, c)
		}
	}

	sum := &Summary{
		Range:        norm,
		TotalCommits: len(filtered),
		GeneratedAt:  now,
	}

	if mode == ModeRange || mode == ModeAll {
		sum.RangeStats = aggregateRange(filtered, norm)
	}
	if mode == ModeDashboard || mode == ModeAll {
		sum.Dashboard = aggregateDashboard(filtered, now)
	}

	return sum, nil
}

func aggregateRange(filtered []*models.Commit, norm models.DateRange) *RangeStats {
	rs := &RangeStats{
		ByDay:         make(map[string]int),
		ByWeek:        make(map[string]int),
		ByMonth:       make(map[string]int),
		AuthorByDay:   make(map[string]map[string]int),
		AuthorByWeek:  make(map[string]map[string]int),
		AuthorByMonth: make(map[string]map[string]int),
	}

	// Seed the dense overall domains by stepping day-by-day through the
	// normalized range. Week and month labels repeat across consecutive days;
	// the maps dedupe them.
	for d := norm.Start; !d.After(norm.End); d = d.AddDate(0, 0, 1) {
		rs.ByDay[FormatDay(d)] = 0
		rs.ByWeek[FormatISOWeek(d)] = 0
		rs.ByMonth[FormatMonth(d)] = 0
	}

	for _, c := range filtered {
		day := FormatDay(c.Date)
		week := FormatISOWeek(c.Date)
		month := FormatMonth(c.Date)

		rs.ByDay[day]++
		rs.ByWeek[week]++
		rs.ByMonth[month]++

		// Author sub-maps are created lazily and hold only the labels the
		// author touched; they are not zero-seeded across the full domain.
		bumpAuthor(rs.AuthorByDay, c.Author, day)
		bumpAuthor(rs.AuthorByWeek, c.Author, week)
		bumpAuthor(rs.AuthorByMonth, c.Author, month)
	}

	return rs
}

func bumpAuthor(m map[string]map[string]int, author, label string) {
	sub, ok := m[author]
	if !ok {
		sub = make(map[string]int)
		m[author] = sub
	}
	sub[label]++
}

func aggregateDashboard(filtered []*models.Commit, now time.Time) *DashboardStats {
	ds := &DashboardStats{
		Last30Days:   make(map[string]int),
		Last12Months: make(map[string]int),
		AuthorTotals: make(map[string]int),
		ByWeekday:    make(map[string]int),
		ByHour:       make(map[int]int),
	}

	local := now.Local()
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, local.Location())

	for i := 29; i >= 0; i-- {
		ds.Last30Days[FormatDay(today.AddDate(0, 0, -i))] = 0
	}
	// Inclusion bound is midnight 30 days back, one day earlier than the
	// first seeded bucket.
	dayBound := today.AddDate(0, 0, -30)

	monthStart := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, local.Location())
	monthBound := monthStart.AddDate(0, -11, 0)
	for i := 11; i >= 0; i-- {
		ds.Last12Months[FormatMonth(monthStart.AddDate(0, -i, 0))] = 0
	}

	for _, name := range WeekdayOrder {
		ds.ByWeekday[name] = 0
	}
	for h := 0; h < 24; h++ {
		ds.ByHour[h] = 0
	}

	for _, c := range filtered {
		if !c.Date.Before(dayBound) {
			ds.Last30Days[FormatDay(c.Date)]++
		}
		cm := time.Date(c.Date.Year(), c.Date.Month(), 1, 0, 0, 0, 0, c.Date.Location())
		if !cm.Before(monthBound) {
			ds.Last12Months[FormatMonth(c.Date)]++
		}
		ds.AuthorTotals[c.Author]++
		ds.ByWeekday[WeekdayName(c.Date)]++
		ds.ByHour[HourOfDay(c.Date)]++
	}

	return ds
}
