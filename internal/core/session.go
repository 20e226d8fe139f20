package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/vovakirdan/roomrelay/internal/proto"
)

// SendFunc pushes one encoded frame to a connection. It is owned by the
// transport and returns an error when the frame cannot be queued or written.
type SendFunc func(data string) error

// JokeSource fetches one joke as plain text.
type JokeSource interface {
	Fetch(ctx context.Context) (string, error)
}

// Session is one client connection as seen by the core layer. Its room is
// fixed at construction; its display name is empty until the first join.
//
// Dispatch must not be called concurrently for the same session.
type Session struct {
	id    string
	send  SendFunc
	room  *Room
	jokes JokeSource
	log   zerolog.Logger

	mu     sync.RWMutex
	name   string
	joined bool
	closed bool
}

// NewSession binds a connection to the room called roomName in registry.
// jokes may be nil, in which case joke requests get an error reply.
func NewSession(id string, send SendFunc, registry *Registry, roomName string, jokes JokeSource) *Session {
	room := registry.Get(roomName)
	s := &Session{
		id:    id,
		send:  send,
		room:  room,
		jokes: jokes,
		log:   registry.log.With().Str("session_id", id).Str("room", room.Name()).Logger(),
	}
	s.log.Info().Msg("session created")
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Name returns the display name, empty before join.
func (s *Session) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

// Room returns the room the session belongs to.
func (s *Session) Room() *Room {
	return s.room
}

// Closed reports whether Close has run.
func (s *Session) Closed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

// Send encodes msg and pushes it to this session only.
func (s *Session) Send(msg proto.Outbound) error {
	data, err := proto.EncodeOutbound(msg)
	if err != nil {
		return err
	}
	return s.deliver(data)
}

// deliver pushes an already encoded frame. A panicking transport callback is
// reported as a send failure.
func (s *Session) deliver(data string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = sendFailed(s.id, r)
		}
	}()
	if sendErr := s.send(data); sendErr != nil {
		return sendFailed(s.id, sendErr)
	}
	return nil
}

func (s *Session) reply(msg proto.Outbound) {
	if err := s.Send(msg); err != nil {
		s.log.Debug().Err(err).Msg("reply dropped")
	}
}

// Join sets the display name, adds the session to its room and announces it
// to every member, the joiner included.
func (s *Session) Join(name string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.name = name
	s.joined = true
	s.room.Join(s)
	s.mu.Unlock()

	s.log.Info().Str("name", name).Int("members", s.room.Len()).Msg("joined room")
	s.room.Broadcast(proto.Note(fmt.Sprintf("%s joined \"%s\".", name, s.room.Name())))
}

// Chat broadcasts text to the room, the sender included.
func (s *Session) Chat(text string) {
	name := s.Name()
	if !s.isJoined() {
		s.log.Warn().Msg("chat before join")
	}
	s.room.Broadcast(proto.ChatLine(name, text))
}

// Joke fetches a joke and sends it to this session only. No locks are held
// while the fetch is in flight.
func (s *Session) Joke(ctx context.Context) {
	if s.jokes == nil {
		s.reply(proto.ServerChat(coreError(ErrCodeJokeUnavailable, "jokes are not available", ErrJokeUnavailable).Error()))
		return
	}

	joke, err := s.jokes.Fetch(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("joke fetch failed")
		s.reply(proto.ServerChat(fmt.Sprintf("could not fetch a joke: %v", err)))
		return
	}
	s.reply(proto.ServerChat(joke))
}

// Members sends the comma-joined display names of the room to this session only.
func (s *Session) Members() {
	names := s.room.MemberNames()
	s.reply(proto.ServerChat("in room: " + strings.Join(names, ", ")))
}

// Private sends text to the member called username and echoes it to the
// sender. When no member matches, the sender gets a server reply instead.
func (s *Session) Private(text, username string) {
	target, err := s.room.GetUser(username)
	if err != nil {
		s.log.Debug().Err(err).Str("username", username).Msg("private target missing")
		s.reply(proto.ServerChat(err.Error()))
		return
	}

	msg := proto.ChatLine(s.Name(), text)
	if err := target.Send(msg); err != nil {
		s.log.Debug().Err(err).Str("target_id", target.ID()).Msg("private send dropped")
	}
	s.reply(msg)
}

// Close removes the session from its room and tells the remaining members.
// Calling it again does nothing. A session that never joined leaves silently.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	joined, name := s.joined, s.name
	s.room.Leave(s)
	s.mu.Unlock()

	s.log.Info().Str("name", name).Msg("session closed")
	if joined {
		s.room.Broadcast(proto.Note(fmt.Sprintf("%s left %s.", name, s.room.Name())))
	}
}

// Dispatch decodes one raw frame and runs the matching operation. It returns
// a *proto.DecodeError or *proto.BadMessageTypeError for frames it cannot route.
func (s *Session) Dispatch(ctx context.Context, raw []byte) error {
	if s.Closed() {
		return coreError(ErrCodeSessionClosed, "session closed", ErrSessionClosed)
	}

	msg, err := proto.DecodeInbound(raw)
	if err != nil {
		return err
	}

	switch m := msg.(type) {
	case proto.Join:
		s.Join(m.Name)
	case proto.Chat:
		s.Chat(m.Text)
	case proto.GetJoke:
		s.Joke(ctx)
	case proto.GetMembers:
		s.Members()
	case proto.Private:
		s.Private(m.Text, m.Username)
	default:
		return &proto.BadMessageTypeError{Type: msg.Type()}
	}
	return nil
}

// HandleMessage dispatches raw and reports routing failures back to this
// session as a server chat line. The error is returned for logging; none of
// them should end the connection.
func (s *Session) HandleMessage(ctx context.Context, raw []byte) error {
	err := s.Dispatch(ctx, raw)
	if err == nil {
		return nil
	}
	if errors.Is(err, proto.ErrDecode) || errors.Is(err, proto.ErrBadMessageType) {
		s.log.Warn().Err(err).Msg("rejected inbound message")
		s.reply(proto.ServerChat(err.Error()))
	}
	return err
}

func (s *Session) isJoined() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.joined
}
