package game

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/verte-zerg/tuibingo/internal/errs"
	"github.com/verte-zerg/tuibingo/internal/model"
)

// ValidateGrid checks a hand-entered grid: every non-free cell in
// [1, maxNumber] and no repeats. Column ranges are not enforced. The free
// space is forced to 0 whatever was supplied.
func ValidateGrid(grid model.Grid, maxNumber int) (model.Grid, error) {
	seen := make(map[int]struct{}, model.GridSize*model.GridSize)
	for row := 0; row < model.GridSize; row++ {
		for col := 0; col < model.GridSize; col++ {
			if model.IsFree(row, col) {
				continue
			}
			n := grid[row][col]
			if n < 1 || n > maxNumber {
				return model.Grid{}, errs.WithMetadata(errs.CodeValidation,
					fmt.Sprintf("cell (%d,%d) is %d; numbers must be between 1 and %d", row+1, col+1, n, maxNumber),
					map[string]string{"row": fmt.Sprint(row), "col": fmt.Sprint(col)})
			}
			if _, ok := seen[n]; ok {
				return model.Grid{}, errs.WithMetadata(errs.CodeValidation,
					fmt.Sprintf("number %d is duplicated", n),
					map[string]string{"number": fmt.Sprint(n)})
			}
			seen[n] = struct{}{}
		}
	}
	grid[model.FreeRow][model.FreeCol] = model.FreeSpace
	return grid, nil
}

// ParseGrid builds a grid from numbers in row-major order. 24 fields skip the
// free space; 25 fields include it and the center value is ignored. Fields may
// also be separated by commas.
func ParseGrid(fields []string) (model.Grid, error) {
	var values []string
	for _, f := range fields {
		for _, part := range strings.FieldsFunc(f, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' }) {
			values = append(values, part)
		}
	}
	total := model.GridSize * model.GridSize
	if len(values) != total && len(values) != total-1 {
		return model.Grid{}, errs.New(errs.CodeValidation,
			fmt.Sprintf("expected %d or %d numbers, got %d", total-1, total, len(values)))
	}
	skipFree := len(values) == total-1

	var grid model.Grid
	i := 0
	for row := 0; row < model.GridSize; row++ {
		for col := 0; col < model.GridSize; col++ {
			if model.IsFree(row, col) {
				grid[row][col] = model.FreeSpace
				if skipFree {
					continue
				}
				i++
				continue
			}
			n, err := strconv.Atoi(values[i])
			if err != nil {
				return model.Grid{}, errs.New(errs.CodeValidation, fmt.Sprintf("%q is not a number", values[i]))
			}
			grid[row][col] = n
			i++
		}
	}
	return grid, nil
}
