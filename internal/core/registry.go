package core

import (
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// Registry maps room names to rooms for the whole process. Rooms are created
// on first reference and never removed.
type Registry struct {
	mu    sync.Mutex
	rooms map[string]*Room
	log   *zerolog.Logger
}

// NewRegistry creates an empty registry. A nil logger disables logging.
func NewRegistry(logger *zerolog.Logger) *Registry {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Registry{
		rooms: make(map[string]*Room),
		log:   logger,
	}
}

// Get returns the room called name, creating it if needed.
func (r *Registry) Get(name string) *Room {
	r.mu.Lock()
	defer r.mu.Unlock()

	if room, ok := r.rooms[name]; ok {
		return room
	}
	room := newRoom(name, r.log)
	r.rooms[name] = room
	r.log.Debug().Str("room", name).Int("rooms", len(r.rooms)).Msg("room created")
	return room
}

// Lookup returns the room called name without creating it.
func (r *Registry) Lookup(name string) (*Room, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[name]
	return room, ok
}

// Rooms returns every room created so far, sorted by name.
func (r *Registry) Rooms() []*Room {
	r.mu.Lock()
	rooms := lo.Values(r.rooms)
	r.mu.Unlock()

	slices.SortFunc(rooms, func(a, b *Room) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return rooms
}

// Len returns the number of rooms.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rooms)
}
