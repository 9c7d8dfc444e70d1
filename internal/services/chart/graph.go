package chart

import (
	"time"

	"cloud.google.com/go/civil"

	"github.com/firejune/notion-github-embed/internal/calendar"
	"github.com/firejune/notion-github-embed/internal/models"
)

// Graph is everything the renderer needs, computed fresh per request.
type Graph struct {
	Start     civil.Date          `json:"start"`
	Last      civil.Date          `json:"last"`
	WeekStart string              `json:"weekStart"`
	Grid      models.Grid         `json:"grid"`
	Labels    []models.MonthLabel `json:"labels"`
	Total     int                 `json:"total"`
}

// Build maps records onto the window and derives labels and the total.
func Build(records []models.ContributionRecord, w calendar.Window) (Graph, error) {
	grid, err := AssembleGrid(MapContributions(w, records))
	if err != nil {
		return Graph{}, err
	}
	return Graph{
		Start:     w.Start,
		Last:      w.Last,
		WeekStart: w.WeekStart.String(),
		Grid:      grid,
		Labels:    PlanMonthLabels(grid),
		Total:     TotalCount(grid),
	}, nil
}

// RenderGraph runs the whole pipeline for the trailing year ending on now's
// date in loc.
func (r *Renderer) RenderGraph(records []models.ContributionRecord, username string, o models.RenderOptions, now time.Time, loc *time.Location) (string, error) {
	g, err := Build(records, calendar.NewWindow(now, loc, calendar.DefaultWeekStart))
	if err != nil {
		return "", err
	}
	return r.Render(g, username, o)
}
