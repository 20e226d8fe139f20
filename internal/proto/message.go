// Package proto defines the JSON messages exchanged with chat clients.
//
// Every frame is a JSON object with a "type" field. Inbound frames decode into
// one of the Inbound variants; outbound frames are either a NoteMessage or a
// ChatMessage.
package proto

const (
	InboundTypeJoin       = "join"
	InboundTypeChat       = "chat"
	InboundTypeGetJoke    = "get-joke"
	InboundTypeGetMembers = "get-members"
	InboundTypePrivate    = "private"

	OutboundTypeNote = "note"
	OutboundTypeChat = "chat"

	// ServerName is the sender name of system-originated chat lines.
	ServerName = "Server"
)

// Inbound is a decoded client message. The concrete type is one of
// Join, Chat, GetJoke, GetMembers or Private.
type Inbound interface {
	Type() string
	isInbound()
}

// Join sets the sender's display name and adds it to the room.
type Join struct {
	Name string
}

// Chat is a line for everyone in the room.
type Chat struct {
	Text string
}

// GetJoke asks the server for a joke.
type GetJoke struct{}

// GetMembers asks for the display names currently in the room.
type GetMembers struct{}

// Private is a line for one named member.
type Private struct {
	Text     string
	Username string
}

func (Join) Type() string       { return InboundTypeJoin }
func (Chat) Type() string       { return InboundTypeChat }
func (GetJoke) Type() string    { return InboundTypeGetJoke }
func (GetMembers) Type() string { return InboundTypeGetMembers }
func (Private) Type() string    { return InboundTypePrivate }

func (Join) isInbound()       {}
func (Chat) isInbound()       {}
func (GetJoke) isInbound()    {}
func (GetMembers) isInbound() {}
func (Private) isInbound()    {}

// Outbound is a message pushed to a client. The concrete type is
// NoteMessage or ChatMessage.
type Outbound interface {
	Type() string
	isOutbound()
}

// NoteMessage is a system notice without a sender.
type NoteMessage struct {
	Text string
}

// ChatMessage is a chat line from a member or from the server.
type ChatMessage struct {
	Name string
	Text string
}

func (NoteMessage) Type() string { return OutboundTypeNote }
func (ChatMessage) Type() string { return OutboundTypeChat }

func (NoteMessage) isOutbound() {}
func (ChatMessage) isOutbound() {}

// Note builds a system notice.
func Note(text string) NoteMessage {
	return NoteMessage{Text: text}
}

// ChatLine builds a chat line from name.
func ChatLine(name, text string) ChatMessage {
	return ChatMessage{Name: name, Text: text}
}

// ServerChat builds a chat line attributed to the server.
func ServerChat(text string) ChatMessage {
	return ChatMessage{Name: ServerName, Text: text}
}
