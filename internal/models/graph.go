package models

import (
	"errors"
	"fmt"

	"cloud.google.com/go/civil"
)

// DaysPerWeek is the number of rows in every week column.
const DaysPerWeek = 7

// ErrInvalidGrid is returned by Grid.Validate.
var ErrInvalidGrid = errors.New("invalid contribution grid")

// DayCell is one square of the graph.
// Future cells always carry Count 0 and Intensity 0.
type DayCell struct {
	Date      civil.Date `json:"date"`
	Count     int        `json:"count"`
	Intensity Intensity  `json:"intensity"`
	IsFuture  bool       `json:"isFuture"`
}

// Key returns the cell's join key.
func (c DayCell) Key() DateKey {
	return DateKey(c.Date.String())
}

// Level is the colour bucket used for drawing. Days without activity use bucket 0
// regardless of what the provider reported.
func (c DayCell) Level() Intensity {
	if c.IsFuture || c.Count <= 0 {
		return 0
	}
	return c.Intensity.Clamp()
}

// WeekColumn is one calendar week; index 0 is the configured week-start weekday.
type WeekColumn [DaysPerWeek]DayCell

// Grid is the chronological (left to right) list of week columns.
type Grid []WeekColumn

// Cells returns the number of cells in the grid.
func (g Grid) Cells() int {
	return len(g) * DaysPerWeek
}

// Validate checks that every column holds consecutive days and that adjacent
// columns are exactly one week apart.
func (g Grid) Validate() error {
	for i, col := range g {
		for r := 1; r < DaysPerWeek; r++ {
			if col[r].Date != col[r-1].Date.AddDays(1) {
				return fmt.Errorf("%w: column %d row %d is %s, want %s", ErrInvalidGrid, i, r, col[r].Date, col[r-1].Date.AddDays(1))
			}
		}
		if i == 0 {
			continue
		}
		for r := 0; r < DaysPerWeek; r++ {
			if want := g[i-1][r].Date.AddDays(DaysPerWeek); col[r].Date != want {
				return fmt.Errorf("%w: column %d row %d is %s, want %s", ErrInvalidGrid, i, r, col[r].Date, want)
			}
		}
	}
	return nil
}

// MonthLabel marks the column where a month's label is drawn.
type MonthLabel struct {
	Column int    `json:"column"`
	Text   string `json:"text"`
}
