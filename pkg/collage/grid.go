package collage

import (
	"fmt"
	"image"
	"math"
)

// preferredColumns maps a cell count to a column count tuned for visual
// balance. Counts outside the table fall back to ceil(sqrt(n)).
var preferredColumns = map[int]int{
	1: 1, 2: 2, 3: 2, 4: 2, 5: 3, 6: 3, 7: 4, 8: 4, 9: 3,
}

// ComputeGrid partitions a width x height rectangle into n non-overlapping
// cells arranged in rows, in row-major order. Rows all share the same height
// (height/rows, integer division); a short last row is horizontally centered.
// The integer remainder of the height division is not redistributed, so a thin
// strip at the bottom may stay uncovered. Callers paste onto a black canvas,
// which renders the strip as a black margin.
func ComputeGrid(n, width, height int) ([]image.Rectangle, error) {
	if n < 1 {
		return nil, fmt.Errorf("cell count must be at least 1, got %d", n)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("target rectangle must have positive dimensions, got %dx%d", width, height)
	}

	cols, ok := preferredColumns[n]
	if !ok {
		cols = int(math.Ceil(math.Sqrt(float64(n))))
		if cols < 1 {
			cols = 1
		}
	}
	rows := (n + cols - 1) / cols
	cellH := height / rows

	cells := make([]image.Rectangle, 0, n)
	placed := 0
	for r := 0; r < rows; r++ {
		rowCols := cols
		if remaining := n - placed; remaining < cols {
			rowCols = remaining
		}
		cellW := width / rowCols
		offsetX := (width - rowCols*cellW) / 2
		for c := 0; c < rowCols; c++ {
			x := offsetX + c*cellW
			y := r * cellH
			cells = append(cells, image.Rect(x, y, x+cellW, y+cellH))
			placed++
		}
	}
	return cells, nil
}
