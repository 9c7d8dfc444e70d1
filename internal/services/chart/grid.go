package chart

import (
	"fmt"

	"github.com/firejune/notion-github-embed/internal/models"
)

// AssembleGrid groups column-major cells into week columns of seven rows.
func AssembleGrid(cells []models.DayCell) (models.Grid, error) {
	if len(cells)%models.DaysPerWeek != 0 {
		return nil, fmt.Errorf("%w: %d cells is not a whole number of weeks", models.ErrInvalidGrid, len(cells))
	}
	grid := make(models.Grid, len(cells)/models.DaysPerWeek)
	for i := range grid {
		copy(grid[i][:], cells[i*models.DaysPerWeek:(i+1)*models.DaysPerWeek])
	}
	return grid, nil
}

// TotalCount sums the counts of every day that has already happened.
func TotalCount(grid models.Grid) int {
	total := 0
	for _, col := range grid {
		for _, cell := range col {
			if !cell.IsFuture {
				total += cell.Count
			}
		}
	}
	return total
}
