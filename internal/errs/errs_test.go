package errs

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsMatchesByCode(t *testing.T) {
	err := New(CodeAlreadyDrawn, "number 7 was already drawn")
	if !errors.Is(err, ErrAlreadyDrawn) {
		t.Fatalf("expected match on ErrAlreadyDrawn")
	}
	if errors.Is(err, ErrDuplicate) {
		t.Fatalf("unexpected match on ErrDuplicate")
	}
}

func TestCodeOfWrapped(t *testing.T) {
	err := fmt.Errorf("mark: %w", New(CodeOutOfRange, "out of range"))
	if got := CodeOf(err); got != CodeOutOfRange {
		t.Fatalf("expected %s, got %q", CodeOutOfRange, got)
	}
	if got := CodeOf(errors.New("plain")); got != "" {
		t.Fatalf("expected empty code, got %q", got)
	}
}

func TestErrorMessageFallsBackToCode(t *testing.T) {
	if got := ErrEmptyPool.Error(); got != string(CodeEmptyPool) {
		t.Fatalf("unexpected message %q", got)
	}
}
