package proto

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

type envelope struct {
	Type json.RawMessage `json:"type"`
}

// DecodeInbound parses one client frame. It returns a *DecodeError for
// malformed JSON or missing required fields and a *BadMessageTypeError when
// the type is absent, not a string, or not recognized.
func DecodeInbound(raw []byte) (Inbound, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &DecodeError{Err: err}
	}

	msgType, err := envelopeType(env.Type)
	if err != nil {
		return nil, err
	}

	switch msgType {
	case InboundTypeJoin:
		return decodeVariant(raw, func(w joinWire) Inbound { return Join{Name: w.Name} })
	case InboundTypeChat:
		return decodeVariant(raw, func(w chatWire) Inbound { return Chat{Text: *w.Text} })
	case InboundTypeGetJoke:
		return GetJoke{}, nil
	case InboundTypeGetMembers:
		return GetMembers{}, nil
	case InboundTypePrivate:
		return decodeVariant(raw, func(w privateWire) Inbound {
			return Private{Text: *w.Text, Username: w.Username}
		})
	default:
		return nil, &BadMessageTypeError{Type: msgType}
	}
}

func envelopeType(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", &BadMessageTypeError{}
	}
	var msgType string
	if err := json.Unmarshal(raw, &msgType); err != nil {
		return "", &BadMessageTypeError{Type: string(raw)}
	}
	return msgType, nil
}

// Wire shapes of the inbound variants. A pointer with "required" only demands
// the key be present; a plain string with "required" also rejects "".
type joinWire struct {
	Name string `json:"name" validate:"required"`
}

type chatWire struct {
	Text *string `json:"text" validate:"required"`
}

type privateWire struct {
	Text     *string `json:"text" validate:"required"`
	Username string  `json:"username" validate:"required"`
}

func decodeVariant[W any](raw []byte, build func(W) Inbound) (Inbound, error) {
	var w W
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, &DecodeError{Err: err}
	}
	if err := validate.Struct(w); err != nil {
		return nil, &DecodeError{Err: describeValidation(err)}
	}
	return build(w), nil
}

func describeValidation(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		parts = append(parts, fmt.Sprintf("%s is %s", fe.Field(), fe.Tag()))
	}
	return errors.New(strings.Join(parts, ", "))
}

type wireInbound struct {
	Type     string  `json:"type"`
	Name     string  `json:"name,omitempty"`
	Text     *string `json:"text,omitempty"`
	Username string  `json:"username,omitempty"`
}

// EncodeInbound serializes a client message. Used by clients and tests.
func EncodeInbound(msg Inbound) ([]byte, error) {
	w := wireInbound{Type: msg.Type()}
	switch m := msg.(type) {
	case Join:
		w.Name = m.Name
	case Chat:
		w.Text = &m.Text
	case Private:
		w.Text = &m.Text
		w.Username = m.Username
	case GetJoke, GetMembers:
	default:
		return nil, fmt.Errorf("encode inbound: unsupported type %T", msg)
	}
	return json.Marshal(w)
}

type wireOutbound struct {
	Type string  `json:"type"`
	Name *string `json:"name,omitempty"`
	Text string  `json:"text"`
}

// EncodeOutbound serializes a server message. Notes carry no name; chat
// lines always carry one, even when it is empty.
func EncodeOutbound(msg Outbound) (string, error) {
	var w wireOutbound
	switch m := msg.(type) {
	case NoteMessage:
		w = wireOutbound{Type: OutboundTypeNote, Text: m.Text}
	case ChatMessage:
		name := m.Name
		w = wireOutbound{Type: OutboundTypeChat, Name: &name, Text: m.Text}
	default:
		return "", fmt.Errorf("encode outbound: unsupported type %T", msg)
	}
	data, err := json.Marshal(w)
	if err != nil {
		return "", fmt.Errorf("encode outbound: %w", err)
	}
	return string(data), nil
}

// DecodeOutbound parses a server frame on the client side.
func DecodeOutbound(raw []byte) (Outbound, error) {
	var w wireOutbound
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, &DecodeError{Err: err}
	}
	switch w.Type {
	case OutboundTypeNote:
		return NoteMessage{Text: w.Text}, nil
	case OutboundTypeChat:
		msg := ChatMessage{Text: w.Text}
		if w.Name != nil {
			msg.Name = *w.Name
		}
		return msg, nil
	default:
		return nil, &BadMessageTypeError{Type: w.Type}
	}
}
