package core

import (
	"sync"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/vovakirdan/roomrelay/internal/proto"
)

// Room groups sessions connected to the same channel.
type Room struct {
	name    string
	log     zerolog.Logger
	mu      sync.RWMutex
	members map[*Session]struct{}
}

func newRoom(name string, logger *zerolog.Logger) *Room {
	return &Room{
		name:    name,
		log:     logger.With().Str("room", name).Logger(),
		members: make(map[*Session]struct{}),
	}
}

// Name returns the room name.
func (r *Room) Name() string {
	return r.name
}

// Join inserts a session into the room. Returns true if newly added.
func (r *Room) Join(s *Session) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.members[s]; exists {
		return false
	}
	r.members[s] = struct{}{}
	return true
}

// Leave deletes a session from the room. Returns true if removed.
func (r *Room) Leave(s *Session) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.members[s]; !exists {
		return false
	}
	delete(r.members, s)
	return true
}

// GetUser returns the first member whose display name is name. Names are not
// unique, so with duplicates any one of them may be returned.
func (r *Room) GetUser(name string) (*Session, error) {
	for _, s := range r.Members() {
		if s.Name() == name {
			return s, nil
		}
	}
	return nil, memberNotFound(name)
}

// Members returns a snapshot of the current members in no particular order.
func (r *Room) Members() []*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return lo.Keys(r.members)
}

// MemberNames returns the display names of the current members.
func (r *Room) MemberNames() []string {
	return lo.Map(r.Members(), func(s *Session, _ int) string {
		return s.Name()
	})
}

// Len returns the member count.
func (r *Room) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.members)
}

// Broadcast encodes msg once and pushes it to every current member. A failed
// send is logged and dropped; it never stops delivery to the others.
func (r *Room) Broadcast(msg proto.Outbound) {
	data, err := proto.EncodeOutbound(msg)
	if err != nil {
		r.log.Error().Err(err).Msg("encode broadcast")
		return
	}

	members := r.Members()
	failed := 0
	for _, s := range members {
		if err := s.deliver(data); err != nil {
			failed++
			r.log.Debug().Err(err).Str("session_id", s.ID()).Msg("broadcast send dropped")
		}
	}
	if failed > 0 {
		r.log.Debug().Int("recipients", len(members)).Int("failed", failed).Msg("broadcast partially delivered")
	}
}
