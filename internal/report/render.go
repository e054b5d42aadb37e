// Package report renders aggregated commit statistics as a standalone HTML
// dashboard. Bucket ordering is decided here, not in the aggregation engine:
// day/week/month labels sort lexicographically, the weekday axis follows the
// fixed Monday-first domain.
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/svnstat/svnstat/internal/stats"
)

const (
	chartWidth   = "1100px"
	chartHeight  = "420px"
	maxPieSlices = 10
)

// WriteDashboard renders the full dashboard for one repository to w. Nil
// dimension sets are simply omitted from the page.
func WriteDashboard(w io.Writer, repoURL string, sum *stats.Summary) error {
	page := components.NewPage()
	page.PageTitle = fmt.Sprintf("Commit Statistics - %s", repoURL)

	if sum.RangeStats != nil {
		page.AddCharts(
			dailyActivityChart(sum.RangeStats.ByDay),
			countBarChart("Commits per Week", sum.RangeStats.ByWeek),
			countBarChart("Commits per Month", sum.RangeStats.ByMonth),
		)
	}
	if sum.Dashboard != nil {
		page.AddCharts(
			countLineChart("Last 30 Days", sum.Dashboard.Last30Days),
			countBarChart("Last 12 Months", sum.Dashboard.Last12Months),
			authorPieChart(sum.Dashboard.AuthorTotals),
			weekdayBarChart(sum.Dashboard.ByWeekday),
			hourBarChart(sum.Dashboard.ByHour),
		)
	}

	if err := page.Render(w); err != nil {
		return fmt.Errorf("failed to render dashboard: %w", err)
	}
	return nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func globalOptions(title string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
	}
}

func dailyActivityChart(byDay map[string]int) *charts.Line {
	return lineChart("Commits per Day", sortedKeys(byDay), byDay)
}

func countLineChart(title string, m map[string]int) *charts.Line {
	return lineChart(title, sortedKeys(m), m)
}

func lineChart(title string, labels []string, m map[string]int) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(globalOptions(title)...)

	data := make([]opts.LineData, len(labels))
	for i, label := range labels {
		data[i] = opts.LineData{Value: m[label]}
	}

	line.SetXAxis(labels).
		AddSeries("Commits", data).
		SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))

	return line
}

func countBarChart(title string, m map[string]int) *charts.Bar {
	return barChart(title, sortedKeys(m), m)
}

func weekdayBarChart(byWeekday map[string]int) *charts.Bar {
	return barChart("Commits by Weekday", stats.WeekdayOrder[:], byWeekday)
}

func barChart(title string, labels []string, m map[string]int) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(globalOptions(title)...)

	data := make([]opts.BarData, len(labels))
	for i, label := range labels {
		data[i] = opts.BarData{Value: m[label]}
	}

	bar.SetXAxis(labels).AddSeries("Commits", data)

	return bar
}

func hourBarChart(byHour map[int]int) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(globalOptions("Commits by Hour of Day")...)

	labels := make([]string, 24)
	data := make([]opts.BarData, 24)
	for h := 0; h < 24; h++ {
		labels[h] = fmt.Sprintf("%02d", h)
		data[h] = opts.BarData{Value: byHour[h]}
	}

	bar.SetXAxis(labels).AddSeries("Commits", data)

	return bar
}

func authorPieChart(totals map[string]int) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Commits by Author"}),
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Orient: "vertical", Left: "left"}),
	)

	type slice struct {
		name  string
		count int
	}
	slices := make([]slice, 0, len(totals))
	for name, count := range totals {
		slices = append(slices, slice{name, count})
	}
	sort.Slice(slices, func(i, j int) bool {
		if slices[i].count != slices[j].count {
			return slices[i].count > slices[j].count
		}
		return slices[i].name < slices[j].name
	})

	var data []opts.PieData
	others := 0
	for i, s := range slices {
		if i < maxPieSlices {
			data = append(data, opts.PieData{Name: s.name, Value: s.count})
			continue
		}
		others += s.count
	}
	if others > 0 {
		data = append(data, opts.PieData{Name: "Others", Value: others})
	}

	pie.AddSeries("Authors", data).
		SetSeriesOptions(charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}: {c}"}))

	return pie
}
