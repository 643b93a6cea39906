package generator

import (
	"errors"
	"fmt"
	"testing"

	"github.com/verte-zerg/tuibingo/internal/errs"
	"github.com/verte-zerg/tuibingo/internal/model"
)

func TestSampleWithoutReplacementDistinct(t *testing.T) {
	g := NewWithSeed(1)
	for i := 0; i < 50; i++ {
		got, err := g.SampleWithoutReplacement(10, 24, 15)
		if err != nil {
			t.Fatalf("sample: %v", err)
		}
		if len(got) != 15 {
			t.Fatalf("expected 15 numbers, got %d", len(got))
		}
		seen := map[int]struct{}{}
		for _, n := range got {
			if n < 10 || n > 24 {
				t.Fatalf("number %d out of range", n)
			}
			if _, ok := seen[n]; ok {
				t.Fatalf("duplicate number %d in %v", n, got)
			}
			seen[n] = struct{}{}
		}
	}
}

func TestSampleWithoutReplacementTooMany(t *testing.T) {
	g := NewWithSeed(1)
	if _, err := g.SampleWithoutReplacement(1, 5, 6); !errors.Is(err, errs.ErrOutOfRange) {
		t.Fatalf("expected out of range error, got %v", err)
	}
	if _, err := g.SampleWithoutReplacement(5, 1, 1); !errors.Is(err, errs.ErrOutOfRange) {
		t.Fatalf("expected out of range error for inverted bounds, got %v", err)
	}
	got, err := g.SampleWithoutReplacement(3, 3, 0)
	if err != nil || len(got) != 0 {
		t.Fatalf("expected empty sample, got %v, %v", got, err)
	}
}

func TestSampleIsReproducibleWithSeed(t *testing.T) {
	a, _ := NewWithSeed(42).SampleWithoutReplacement(1, 75, 10)
	b, _ := NewWithSeed(42).SampleWithoutReplacement(1, 75, 10)
	if fmt.Sprint(a) != fmt.Sprint(b) {
		t.Fatalf("expected same sequence for same seed: %v vs %v", a, b)
	}
}

func TestColumnRange(t *testing.T) {
	tests := []struct {
		max, col, lo, hi int
	}{
		{75, 0, 1, 15},
		{75, 4, 61, 75},
		{25, 2, 11, 15},
		{99, 4, 77, 95},
		{60, 1, 13, 24},
	}
	for _, tt := range tests {
		lo, hi := ColumnRange(tt.max, tt.col)
		if lo != tt.lo || hi != tt.hi {
			t.Fatalf("ColumnRange(%d, %d) = [%d, %d], want [%d, %d]", tt.max, tt.col, lo, hi, tt.lo, tt.hi)
		}
	}
}

func TestGenerateCardCells(t *testing.T) {
	for _, maxNumber := range []int{25, 50, 75, 90, 99} {
		t.Run(fmt.Sprintf("%d", maxNumber), func(t *testing.T) {
			g := NewWithSeed(int64(maxNumber))
			for i := 0; i < 100; i++ {
				grid, err := g.GenerateCard(maxNumber)
				if err != nil {
					t.Fatalf("generate: %v", err)
				}
				if grid[model.FreeRow][model.FreeCol] != model.FreeSpace {
					t.Fatalf("free space not set: %v", grid)
				}
				seen := map[int]struct{}{}
				for row := 0; row < model.GridSize; row++ {
					for col := 0; col < model.GridSize; col++ {
						if model.IsFree(row, col) {
							continue
						}
						n := grid[row][col]
						lo, hi := ColumnRange(maxNumber, col)
						if n < lo || n > hi {
							t.Fatalf("cell (%d,%d)=%d outside column range [%d,%d]", row, col, n, lo, hi)
						}
						if n < 1 || n > maxNumber {
							t.Fatalf("cell (%d,%d)=%d outside [1,%d]", row, col, n, maxNumber)
						}
						if _, ok := seen[n]; ok {
							t.Fatalf("duplicate %d on card %v", n, grid)
						}
						seen[n] = struct{}{}
					}
				}
				if len(seen) != 24 {
					t.Fatalf("expected 24 distinct numbers, got %d", len(seen))
				}
			}
		})
	}
}

func TestGenerateCardRejectsBadMax(t *testing.T) {
	g := NewWithSeed(1)
	for _, maxNumber := range []int{0, 24, 100} {
		if _, err := g.GenerateCard(maxNumber); !errors.Is(err, errs.ErrOutOfRange) {
			t.Fatalf("GenerateCard(%d): expected out of range, got %v", maxNumber, err)
		}
	}
}
