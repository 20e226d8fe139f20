package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/roomrelay/internal/config"
)

func TestResolveConfigFlagOverridesFixInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("send_buffer: -1\nmax_message_bytes: 0\n"), 0o600))

	_, _, err := resolveConfig(nil, path, config.Config{})
	require.ErrorContains(t, err, "send_buffer must be positive")

	cfg, _, err := resolveConfig(nil, path, config.Config{SendBuffer: 16, MaxMessageBytes: 2048})
	require.NoError(t, err)
	require.Equal(t, 16, cfg.SendBuffer)
	require.Equal(t, int64(2048), cfg.MaxMessageBytes)
}

func TestRootCmdExposesBufferFlags(t *testing.T) {
	flags := newRootCmd().Flags()

	for _, name := range []string{"send-buffer", "max-message-bytes", "addr", "joke-url", "joke-timeout"} {
		require.NotNil(t, flags.Lookup(name), name)
	}
	require.NoError(t, flags.Set("send-buffer", "4"))
	require.NoError(t, flags.Set("max-message-bytes", "512"))
}
