package chart

import (
	"github.com/firejune/notion-github-embed/internal/calendar"
	"github.com/firejune/notion-github-embed/internal/models"
)

// IndexRecords keys records by normalised date. The first record seen for a
// date wins; records with unparsable dates are dropped.
func IndexRecords(records []models.ContributionRecord) map[models.DateKey]models.ContributionRecord {
	index := make(map[models.DateKey]models.ContributionRecord, len(records))
	for _, rec := range records {
		d, err := calendar.ParseDate(string(rec.Date))
		if err != nil {
			continue
		}
		key := models.DateKey(d.String())
		if _, seen := index[key]; seen {
			continue
		}
		rec.Date = key
		index[key] = rec
	}
	return index
}

// MapContributions returns one cell per window date in column-major order.
// Future dates carry no data; dates without a record are real days with zero activity.
func MapContributions(w calendar.Window, records []models.ContributionRecord) []models.DayCell {
	index := IndexRecords(records)
	dates := w.Dates()
	cells := make([]models.DayCell, 0, len(dates))
	for _, d := range dates {
		cell := models.DayCell{Date: d}
		if w.IsFuture(d) {
			cell.IsFuture = true
			cells = append(cells, cell)
			continue
		}
		if rec, ok := index[cell.Key()]; ok {
			cell.Count = max(rec.Count, 0)
			cell.Intensity = rec.Intensity.Clamp()
		}
		cells = append(cells, cell)
	}
	return cells
}
