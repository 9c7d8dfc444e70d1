package chart

import (
	"cloud.google.com/go/civil"

	"github.com/firejune/notion-github-embed/internal/calendar"
	"github.com/firejune/notion-github-embed/internal/models"
)

// monthFold is the accumulator of PlanMonthLabels.
type monthFold struct {
	last    civil.Date
	emitted bool
	labels  []models.MonthLabel
}

// PlanMonthLabels decides which columns get a month label, using the month of
// each column's first row.
//
// A label is emitted whenever the month changes, except for a leading column
// whose month ends before the second column and for the final column; both
// would label a single stray week.
func PlanMonthLabels(grid models.Grid) []models.MonthLabel {
	acc := monthFold{}
	for i := range grid {
		acc = acc.step(grid, i)
	}
	return acc.labels
}

func (f monthFold) step(grid models.Grid, i int) monthFold {
	first := grid[i][0].Date
	if f.emitted && calendar.SameMonth(first, f.last) {
		return f
	}
	if i == 0 && len(grid) > 1 && !calendar.SameMonth(first, grid[1][0].Date) {
		return f
	}
	if i > 0 && i == len(grid)-1 {
		return f
	}
	return monthFold{
		last:    first,
		emitted: true,
		labels:  append(f.labels[:len(f.labels):len(f.labels)], models.MonthLabel{Column: i, Text: monthAbbrev(first)}),
	}
}

func monthAbbrev(d civil.Date) string {
	return d.Month.String()[:3]
}
