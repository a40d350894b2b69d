package logger

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreLogging(t *testing.T) {
	oldLogger := log.Logger
	oldContextLogger := zerolog.DefaultContextLogger
	oldLevel := zerolog.GlobalLevel()
	oldStderr := stderr

	t.Cleanup(func() {
		log.Logger = oldLogger
		zerolog.DefaultContextLogger = oldContextLogger
		zerolog.SetGlobalLevel(oldLevel)
		stderr = oldStderr
	})
}

func TestConfigureLogging_Text(t *testing.T) {
	restoreLogging(t)

	var logging strings.Builder
	configureLogging("info", TypeText, func(w *zerolog.ConsoleWriter) {
		w.Out = &logging
		w.NoColor = true
	})

	log.Info().Str("strategy", "bit").Msg("encoded image")

	actual := logging.String()
	assert.Contains(t, actual, "encoded image")
	assert.Contains(t, actual, "[strategy:bit]")
	assert.Contains(t, actual, "logger/logger_test.go", "caller should be trimmed to two path elements")
}

func TestConfigureLogging_JSON(t *testing.T) {
	restoreLogging(t)

	var buf bytes.Buffer
	stderr = &buf
	Configure("debug", "JSON")

	log.Debug().Int("width", 200).Msg("loaded")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "loaded", entry["message"])
	assert.Equal(t, float64(200), entry["width"])
}

func TestConfigureLogging_LevelFilters(t *testing.T) {
	restoreLogging(t)

	var buf bytes.Buffer
	stderr = &buf
	Configure("error", TypeJSON)

	log.Info().Msg("hidden")
	assert.Empty(t, buf.String())

	log.Error().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		" warn ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"fatal":   zerolog.FatalLevel,
		"info":    zerolog.InfoLevel,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}

	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "ParseLevel(%q)", in)
	}
}

func TestConfigureTestLogging_Restores(t *testing.T) {
	restoreLogging(t)

	stderr = io.Discard
	Configure("warn", TypeJSON)

	t.Run("inner", func(t *testing.T) {
		ConfigureTestLogging(t)
		assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
		log.Debug().Msg("routed to t.Log")
	})

	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
}

func TestShortCaller(t *testing.T) {
	assert.Equal(t, "steg/lsb.go:12", shortCaller(0, "/src/internal/steg/lsb.go", 12))
	assert.Equal(t, "main.go:3", shortCaller(0, "main.go", 3))
}
