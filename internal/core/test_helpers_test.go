package core

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/vovakirdan/roomrelay/internal/proto"
)

var errConnClosed = errors.New("connection closed")

// recorder stands in for a transport connection.
type recorder struct {
	mu       sync.Mutex
	frames   []string
	attempts int
	fail     bool
}

func (r *recorder) send(data string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attempts++
	if r.fail {
		return errConnClosed
	}
	r.frames = append(r.frames, data)
	return nil
}

func (r *recorder) messages(t *testing.T) []proto.Outbound {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]proto.Outbound, 0, len(r.frames))
	for _, f := range r.frames {
		msg, err := proto.DecodeOutbound([]byte(f))
		if err != nil {
			t.Fatalf("decode outbound %q: %v", f, err)
		}
		out = append(out, msg)
	}
	return out
}

func (r *recorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = nil
	r.attempts = 0
}

type fakeJokes struct {
	joke  string
	err   error
	block chan struct{}
}

func (f *fakeJokes) Fetch(ctx context.Context) (string, error) {
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.joke, f.err
}

func newTestSession(t *testing.T, reg *Registry, id, room string, jokes JokeSource) (*Session, *recorder) {
	t.Helper()
	rec := &recorder{}
	return NewSession(id, rec.send, reg, room, jokes), rec
}

func joinedPair(t *testing.T) (*Registry, *Session, *recorder, *Session, *recorder) {
	t.Helper()
	reg := NewRegistry(nil)
	alice, recA := newTestSession(t, reg, "a", "lobby", nil)
	bob, recB := newTestSession(t, reg, "b", "lobby", nil)
	alice.Join("alice")
	bob.Join("bob")
	recA.reset()
	recB.reset()
	return reg, alice, recA, bob, recB
}

func mustMessages(t *testing.T, rec *recorder, want ...proto.Outbound) {
	t.Helper()
	got := rec.messages(t)
	if len(got) != len(want) {
		t.Fatalf("expected %d messages, got %d: %+v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("message %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}
