// Package pool tracks drawn numbers and the numbers still available.
package pool

import (
	"fmt"
	"sort"

	"github.com/verte-zerg/tuibingo/internal/errs"
)

// Picker supplies uniform indexes for random draws.
type Picker interface {
	Intn(n int) int
}

// Pool holds the draw history and the sorted set of undrawn numbers in
// [1, maxNumber]. available is maintained incrementally.
type Pool struct {
	maxNumber int
	history   []int
	drawn     map[int]struct{}
	available []int
}

// New returns an empty pool over [1, maxNumber].
func New(maxNumber int) *Pool {
	p := &Pool{maxNumber: maxNumber}
	p.Reset()
	return p
}

// Restore rebuilds a pool from a draw history.
func Restore(maxNumber int, history []int) (*Pool, error) {
	p := &Pool{
		maxNumber: maxNumber,
		history:   make([]int, 0, len(history)),
		drawn:     make(map[int]struct{}, len(history)),
	}
	for _, n := range history {
		if err := p.checkRange(n); err != nil {
			return nil, err
		}
		if _, ok := p.drawn[n]; ok {
			return nil, errs.New(errs.CodeDuplicate, fmt.Sprintf("number %d appears twice in the draw history", n))
		}
		p.history = append(p.history, n)
		p.drawn[n] = struct{}{}
	}
	p.recompute()
	return p, nil
}

// Reset clears the history and refills the pool.
func (p *Pool) Reset() {
	p.history = nil
	p.drawn = map[int]struct{}{}
	p.recompute()
}

func (p *Pool) recompute() {
	p.available = make([]int, 0, p.maxNumber-len(p.drawn))
	for n := 1; n <= p.maxNumber; n++ {
		if _, ok := p.drawn[n]; !ok {
			p.available = append(p.available, n)
		}
	}
}

// DrawRandom removes a uniformly chosen number from the pool and appends it to
// the history.
func (p *Pool) DrawRandom(picker Picker) (int, error) {
	if len(p.available) == 0 {
		return 0, errs.New(errs.CodeEmptyPool, "all numbers have been drawn")
	}
	idx := picker.Intn(len(p.available))
	n := p.available[idx]
	p.available = append(p.available[:idx], p.available[idx+1:]...)
	p.history = append(p.history, n)
	p.drawn[n] = struct{}{}
	return n, nil
}

// Mark records a number announced outside the tool.
func (p *Pool) Mark(n int) error {
	if err := p.checkRange(n); err != nil {
		return err
	}
	if _, ok := p.drawn[n]; ok {
		return errs.WithMetadata(errs.CodeAlreadyDrawn,
			fmt.Sprintf("number %d was already drawn", n),
			map[string]string{"number": fmt.Sprint(n)})
	}
	p.removeAvailable(n)
	p.history = append(p.history, n)
	p.drawn[n] = struct{}{}
	return nil
}

// Edit replaces the history entry at index and returns the value it replaced.
// Writing the same value back is a no-op.
func (p *Pool) Edit(index, newValue int) (int, error) {
	if index < 0 || index >= len(p.history) {
		return 0, errs.New(errs.CodeOutOfRange,
			fmt.Sprintf("draw position %d does not exist (history has %d numbers)", index+1, len(p.history)))
	}
	if err := p.checkRange(newValue); err != nil {
		return 0, err
	}
	old := p.history[index]
	if newValue == old {
		return old, nil
	}
	if _, ok := p.drawn[newValue]; ok {
		return 0, errs.WithMetadata(errs.CodeDuplicate,
			fmt.Sprintf("number %d was already drawn", newValue),
			map[string]string{"number": fmt.Sprint(newValue)})
	}
	p.history[index] = newValue
	delete(p.drawn, old)
	p.drawn[newValue] = struct{}{}
	p.insertAvailable(old)
	p.removeAvailable(newValue)
	return old, nil
}

func (p *Pool) checkRange(n int) error {
	if n < 1 || n > p.maxNumber {
		return errs.WithMetadata(errs.CodeOutOfRange,
			fmt.Sprintf("number must be between 1 and %d", p.maxNumber),
			map[string]string{"number": fmt.Sprint(n), "max": fmt.Sprint(p.maxNumber)})
	}
	return nil
}

func (p *Pool) removeAvailable(n int) {
	idx := sort.SearchInts(p.available, n)
	if idx < len(p.available) && p.available[idx] == n {
		p.available = append(p.available[:idx], p.available[idx+1:]...)
	}
}

func (p *Pool) insertAvailable(n int) {
	idx := sort.SearchInts(p.available, n)
	if idx < len(p.available) && p.available[idx] == n {
		return
	}
	p.available = append(p.available, 0)
	copy(p.available[idx+1:], p.available[idx:])
	p.available[idx] = n
}

// MaxNumber returns the upper bound of the pool.
func (p *Pool) MaxNumber() int {
	return p.maxNumber
}

// History returns a copy of the draw history in draw order.
func (p *Pool) History() []int {
	return append([]int(nil), p.history...)
}

// Available returns a copy of the undrawn numbers, ascending.
func (p *Pool) Available() []int {
	return append([]int(nil), p.available...)
}

// Drawn returns a copy of the drawn set.
func (p *Pool) Drawn() map[int]struct{} {
	out := make(map[int]struct{}, len(p.drawn))
	for n := range p.drawn {
		out[n] = struct{}{}
	}
	return out
}

// Contains reports whether n has been drawn.
func (p *Pool) Contains(n int) bool {
	_, ok := p.drawn[n]
	return ok
}

// Len returns the number of draws so far.
func (p *Pool) Len() int {
	return len(p.history)
}

// Remaining returns how many numbers are left to draw.
func (p *Pool) Remaining() int {
	return len(p.available)
}
