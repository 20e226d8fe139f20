package proto

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeInboundVariants(t *testing.T) {
	cases := []struct {
		raw  string
		want Inbound
	}{
		{`{"type":"join","name":"alice"}`, Join{Name: "alice"}},
		{`{"type":"chat","text":"hi"}`, Chat{Text: "hi"}},
		{`{"type":"get-joke"}`, GetJoke{}},
		{`{"type":"get-members","extra":1}`, GetMembers{}},
		{`{"type":"private","text":"secret","username":"bob"}`, Private{Text: "secret", Username: "bob"}},
	}
	for _, tc := range cases {
		got, err := DecodeInbound([]byte(tc.raw))
		require.NoError(t, err, tc.raw)
		require.Equal(t, tc.want, got)
	}
}

func TestDecodeInboundMalformedJSON(t *testing.T) {
	_, err := DecodeInbound([]byte(`{"type":`))

	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	require.ErrorIs(t, err, ErrDecode)
	require.NotErrorIs(t, err, ErrBadMessageType)
}

func TestDecodeInboundMissingRequiredField(t *testing.T) {
	_, err := DecodeInbound([]byte(`{"type":"private","text":"x"}`))

	require.ErrorIs(t, err, ErrDecode)
	require.EqualError(t, err, "invalid message: username is required")

	_, err = DecodeInbound([]byte(`{"type":"join","name":""}`))
	require.EqualError(t, err, "invalid message: name is required")
}

func TestDecodeInboundEmptyTextIsPresent(t *testing.T) {
	got, err := DecodeInbound([]byte(`{"type":"chat","text":""}`))
	require.NoError(t, err)
	require.Equal(t, Chat{Text: ""}, got)

	got, err = DecodeInbound([]byte(`{"type":"private","text":"","username":"bob"}`))
	require.NoError(t, err)
	require.Equal(t, Private{Text: "", Username: "bob"}, got)

	_, err = DecodeInbound([]byte(`{"type":"chat"}`))
	require.EqualError(t, err, "invalid message: text is required")

	_, err = DecodeInbound([]byte(`{"type":"chat","text":null}`))
	require.ErrorIs(t, err, ErrDecode)
}

func TestDecodeInboundBadType(t *testing.T) {
	cases := map[string]string{
		`{"type":"dance"}`: "dance",
		`{"text":"hi"}`:    "",
		`{"type":null}`:    "",
		`{"type":42}`:      "42",
	}
	for raw, wantType := range cases {
		_, err := DecodeInbound([]byte(raw))

		var badType *BadMessageTypeError
		require.ErrorAs(t, err, &badType, raw)
		require.Equal(t, wantType, badType.Type)
		require.False(t, errors.Is(err, ErrDecode))
	}
}

func TestInboundRoundTrip(t *testing.T) {
	msgs := []Inbound{
		Join{Name: "alice"},
		Chat{Text: "hello"},
		Chat{Text: ""},
		Private{Text: "", Username: "carol"},
		GetJoke{},
		GetMembers{},
		Private{Text: "psst", Username: "bob"},
	}
	for _, msg := range msgs {
		raw, err := EncodeInbound(msg)
		require.NoError(t, err)

		got, err := DecodeInbound(raw)
		require.NoError(t, err)
		require.Equal(t, msg, got)
	}
}

func TestEncodeOutboundShapes(t *testing.T) {
	note, err := EncodeOutbound(Note(`alice joined "lobby".`))
	require.NoError(t, err)
	require.JSONEq(t, `{"type":"note","text":"alice joined \"lobby\"."}`, note)

	chat, err := EncodeOutbound(ChatLine("", "before join"))
	require.NoError(t, err)
	require.JSONEq(t, `{"type":"chat","name":"","text":"before join"}`, chat)

	var fields map[string]any
	require.NoError(t, json.Unmarshal([]byte(note), &fields))
	require.NotContains(t, fields, "name")
}

func TestOutboundRoundTrip(t *testing.T) {
	msgs := []Outbound{
		Note("bob left lobby."),
		ChatLine("alice", "hi"),
		ServerChat("in room: alice, bob"),
		ChatLine("alice", ""),
	}
	for _, msg := range msgs {
		raw, err := EncodeOutbound(msg)
		require.NoError(t, err)

		got, err := DecodeOutbound([]byte(raw))
		require.NoError(t, err)
		require.Equal(t, msg, got)
	}
}

func TestDecodeOutboundUnknownType(t *testing.T) {
	_, err := DecodeOutbound([]byte(`{"type":"event","text":"x"}`))
	require.ErrorIs(t, err, ErrBadMessageType)
}
