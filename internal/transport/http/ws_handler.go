package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/coder/websocket"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/roomrelay/internal/config"
	"github.com/vovakirdan/roomrelay/internal/core"
	"github.com/vovakirdan/roomrelay/internal/utils"
)

const chatPathPrefix = "/chat/"

// WSHandler upgrades HTTP connections and bridges them to core.Session.
type WSHandler struct {
	registry        *core.Registry
	jokes           core.JokeSource
	log             *zerolog.Logger
	maxMessageBytes int64
	sendBuffer      int
}

// NewWSHandler builds a new WebSocket handler.
func NewWSHandler(registry *core.Registry, jokes core.JokeSource, cfg config.Config, logger *zerolog.Logger) *WSHandler {
	return &WSHandler{
		registry:        registry,
		jokes:           jokes,
		log:             logger,
		maxMessageBytes: cfg.MaxMessageBytes,
		sendBuffer:      cfg.SendBuffer,
	}
}

// roomFromPath extracts the room from /chat/<room>. Nested paths are rejected.
func roomFromPath(path string) (string, bool) {
	name, ok := strings.CutPrefix(path, chatPathPrefix)
	if !ok || name == "" || strings.Contains(name, "/") {
		return "", false
	}
	return name, true
}

// ServeHTTP serves GET /chat/<room>. One session lives for the whole connection.
func (h *WSHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	roomName, ok := roomFromPath(r.URL.Path)
	if !ok {
		http.Error(w, "room is required", http.StatusBadRequest)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("ws accept error")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "internal error")
	if h.maxMessageBytes > 0 {
		conn.SetReadLimit(h.maxMessageBytes)
	}

	out := newOutbox(h.sendBuffer)
	session := core.NewSession(utils.NewID(), out.push, h.registry, roomName, h.jokes)

	h.log.Info().Str("session_id", session.ID()).Str("room", roomName).Str("remote", r.RemoteAddr).Msg("ws connection accepted")

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	errCh := make(chan error, 2)
	go func() {
		errCh <- h.readLoop(ctx, conn, session)
	}()
	go func() {
		errCh <- h.writeLoop(ctx, conn, out, session)
	}()

	err = <-errCh
	session.Close()
	out.close()
	cancel()
	<-errCh

	status := websocket.StatusNormalClosure
	reason := "closing"
	if err != nil && !errors.Is(err, context.Canceled) {
		if errors.Is(err, io.EOF) {
			err = nil
		}
		if s := websocket.CloseStatus(err); s != -1 {
			status = s
		}
		if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
			err = nil
		}
		if err != nil {
			if status == websocket.StatusNormalClosure {
				status = websocket.StatusInternalError
			}
			reason = err.Error()
			h.log.Warn().Err(err).Str("session_id", session.ID()).Msg("ws connection closed with error")
		}
	}

	conn.Close(status, reason)
}

func (h *WSHandler) readLoop(ctx context.Context, conn *websocket.Conn, session *core.Session) error {
	for {
		typ, data, err := conn.Read(ctx)
		if err != nil {
			return err
		}
		if typ != websocket.MessageText {
			h.log.Debug().Str("session_id", session.ID()).Msg("ignoring binary frame")
			continue
		}
		if err := session.HandleMessage(ctx, data); err != nil {
			h.log.Debug().Err(err).Str("session_id", session.ID()).Msg("inbound message not handled")
		}
	}
}

func (h *WSHandler) writeLoop(ctx context.Context, conn *websocket.Conn, out *outbox, session *core.Session) error {
	for {
		select {
		case frame, ok := <-out.frames:
			if !ok {
				return nil
			}
			if err := conn.Write(ctx, websocket.MessageText, []byte(frame)); err != nil {
				h.log.Error().Err(err).Str("session_id", session.ID()).Msg("write ws frame")
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
