package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/roomrelay/internal/proto"
)

func TestParseLine(t *testing.T) {
	cases := map[string]proto.Inbound{
		"   ":                 nil,
		"/joke":               proto.GetJoke{},
		"/members":            proto.GetMembers{},
		"/msg bob see you":    proto.Private{Text: "see you", Username: "bob"},
		"hello everyone":      proto.Chat{Text: "hello everyone"},
		"  /msg  bob   hey  ": proto.Private{Text: "hey", Username: "bob"},
	}
	for line, want := range cases {
		got, err := parseLine(line)
		require.NoError(t, err, line)
		require.Equal(t, want, got, line)
	}
}

func TestParseLineRejectsIncompletePrivate(t *testing.T) {
	for _, line := range []string{"/msg bob", "/msg "} {
		_, err := parseLine(line)
		require.Error(t, err, line)
	}
}

func TestRenderPlainNote(t *testing.T) {
	require.Contains(t, render(proto.Note("bob left lobby.")), "bob left lobby.")
	require.Contains(t, render(proto.ChatLine("alice", "hi")), "hi")
}
