package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradedesk/internal/config"
	"tradedesk/internal/logging"
)

func TestSetupWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.SetupWriter(config.LogConfig{Level: "warn", Format: "json"}, &buf)
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.DebugLevel) })

	logger.Info().Msg("dropped")
	logger.Warn().Str("request_id", "abc").Msg("kept")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "kept", entry["message"])
	assert.Equal(t, "abc", entry["request_id"])
	assert.Equal(t, "warn", entry["level"])
}

func TestSetupWriter_UnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	logging.SetupWriter(config.LogConfig{Level: "loud", Format: "console"}, &buf)
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.DebugLevel) })

	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
