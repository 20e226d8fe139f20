package http

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/vovakirdan/roomrelay/internal/core"
)

// RoomHandlers exposes read-only views of the room registry.
type RoomHandlers struct {
	registry *core.Registry
	log      *zerolog.Logger
}

// NewRoomHandlers creates a new room handlers instance.
func NewRoomHandlers(registry *core.Registry, logger *zerolog.Logger) *RoomHandlers {
	return &RoomHandlers{
		registry: registry,
		log:      logger,
	}
}

// RoomResponse represents a room in API responses.
type RoomResponse struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ListRooms returns every room created since startup.
// GET /api/rooms
func (h *RoomHandlers) ListRooms(c *gin.Context) {
	c.JSON(http.StatusOK, lo.Map(h.registry.Rooms(), func(room *core.Room, _ int) RoomResponse {
		return toRoomResponse(room)
	}))
}

// GetRoom returns one room without creating it.
// GET /api/rooms/:room
func (h *RoomHandlers) GetRoom(c *gin.Context) {
	name := c.Param("room")
	room, ok := h.registry.Lookup(name)
	if !ok {
		h.log.Debug().Str("room", name).Msg("room lookup miss")
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "room not found"})
		return
	}
	c.JSON(http.StatusOK, toRoomResponse(room))
}

func toRoomResponse(room *core.Room) RoomResponse {
	names := room.MemberNames()
	slices.Sort(names)
	return RoomResponse{Name: room.Name(), Members: names}
}
