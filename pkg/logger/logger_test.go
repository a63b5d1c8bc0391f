package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevel(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, Level(false, false))
	assert.Equal(t, zerolog.DebugLevel, Level(true, false))
	assert.Equal(t, zerolog.ErrorLevel, Level(false, true))
	assert.Equal(t, zerolog.ErrorLevel, Level(true, true))
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Writer: &buf, Format: FormatJSON})

	log.Warn().Str("url", "https://x/.env").Msg("Error fetching")
	log.Debug().Msg("hidden")

	out := buf.String()
	assert.Contains(t, out, `"level":"warn"`)
	assert.Contains(t, out, `"url":"https://x/.env"`)
	assert.Contains(t, out, `"message":"Error fetching"`)
	assert.NotContains(t, out, "hidden")
}

func TestNew_ConsoleVerbose(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Writer: &buf, Verbose: true})

	log.Debug().Int("page", 2).Msg("Fetching page")

	out := buf.String()
	assert.Contains(t, out, "Fetching page")
	assert.Contains(t, out, "page=2")
	assert.NotContains(t, out, "\x1b[", "non-terminal writers get no color codes")
}

func TestNew_Quiet(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Writer: &buf, Quiet: true, Verbose: true})

	log.Warn().Msg("suppressed")
	log.Error().Msg("shown")

	assert.NotContains(t, buf.String(), "suppressed")
	assert.Contains(t, buf.String(), "shown")
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatConsole, f)

	f, err = ParseFormat("json")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

func TestNew_NoColor(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Writer: &buf, NoColor: true})

	log.Warn().Msg("plain")

	assert.Contains(t, buf.String(), "plain")
	assert.NotContains(t, buf.String(), "\x1b[")
}
