// Package generator builds bingo cards and supplies the random source for draws.
package generator

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
	"time"

	"github.com/verte-zerg/tuibingo/internal/errs"
	"github.com/verte-zerg/tuibingo/internal/model"
)

// Generator produces randomized cards and numbers.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed returns a Generator with a fixed seed, for reproducible games.
func NewWithSeed(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// NewSeed reads a seed from crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// Intn returns a uniform integer in [0, n).
func (g *Generator) Intn(n int) int {
	return g.rnd.Intn(n)
}

// SampleWithoutReplacement selects count distinct integers uniformly from
// [min, max], in the order they were picked.
func (g *Generator) SampleWithoutReplacement(min, max, count int) ([]int, error) {
	if min > max || count < 0 || count > max-min+1 {
		return nil, errs.WithMetadata(errs.CodeOutOfRange,
			fmt.Sprintf("cannot pick %d distinct numbers from [%d, %d]", count, min, max),
			map[string]string{"min": fmt.Sprint(min), "max": fmt.Sprint(max), "count": fmt.Sprint(count)})
	}
	available := make([]int, max-min+1)
	for i := range available {
		available[i] = min + i
	}
	result := make([]int, 0, count)
	for i := 0; i < count; i++ {
		idx := g.rnd.Intn(len(available))
		result = append(result, available[idx])
		available[idx] = available[len(available)-1]
		available = available[:len(available)-1]
	}
	return result, nil
}

// ColumnRange returns the inclusive number range of a column. Columns are
// maxNumber/5 wide (truncated), so 75 gives the classic 1-15, 16-30, ... layout.
func ColumnRange(maxNumber, col int) (lo, hi int) {
	width := maxNumber / model.GridSize
	lo = col*width + 1
	hi = lo + width - 1
	return lo, hi
}

// GenerateCard fills each column with 5 numbers from its range and sets the
// free space.
func (g *Generator) GenerateCard(maxNumber int) (model.Grid, error) {
	var grid model.Grid
	if maxNumber < model.MinMaxNumber || maxNumber > model.MaxMaxNumber {
		return grid, errs.New(errs.CodeOutOfRange,
			fmt.Sprintf("max number must be between %d and %d", model.MinMaxNumber, model.MaxMaxNumber))
	}
	for col := 0; col < model.GridSize; col++ {
		lo, hi := ColumnRange(maxNumber, col)
		numbers, err := g.SampleWithoutReplacement(lo, hi, model.GridSize)
		if err != nil {
			return model.Grid{}, err
		}
		for row := 0; row < model.GridSize; row++ {
			grid[row][col] = numbers[row]
		}
	}
	grid[model.FreeRow][model.FreeCol] = model.FreeSpace
	return grid, nil
}
