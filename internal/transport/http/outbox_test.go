package http

import (
	"errors"
	"testing"
)

func TestOutboxRejectsWhenFull(t *testing.T) {
	out := newOutbox(2)

	if err := out.push("a"); err != nil {
		t.Fatalf("push a: %v", err)
	}
	if err := out.push("b"); err != nil {
		t.Fatalf("push b: %v", err)
	}
	if err := out.push("c"); !errors.Is(err, errOutboxFull) {
		t.Fatalf("expected errOutboxFull, got %v", err)
	}
	if got := <-out.frames; got != "a" {
		t.Fatalf("expected fifo order, got %q", got)
	}
}

func TestOutboxCloseIsIdempotent(t *testing.T) {
	out := newOutbox(1)
	out.close()
	out.close()

	if err := out.push("late"); !errors.Is(err, errOutboxClosed) {
		t.Fatalf("expected errOutboxClosed, got %v", err)
	}
	if _, ok := <-out.frames; ok {
		t.Fatal("frames channel should be closed")
	}
}
