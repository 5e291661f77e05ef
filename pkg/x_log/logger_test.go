package x_log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestInit tests if the Init function initializes the logger with default config.
func TestInit(t *testing.T) {
	t.Setenv(EnvConfigPath, filepath.Join(t.TempDir(), "missing.json"))
	Init()
	assert.NotNil(t, L())
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

// TestInitWithConfig tests if InitWithConfig correctly sets up the logger.
func TestInitWithConfig(t *testing.T) {
	InitWithConfig(&Config{Level: "debug"}, "testModule")
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	InitWithConfig(&Config{Level: "bogus"}, "testModule")
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

// TestNew tests if the New function creates a scoped logger.
func TestNew(t *testing.T) {
	var buf bytes.Buffer
	logger := New("testModule").Output(&buf)

	logger.Info().Msg("Testing logger")

	assert.Contains(t, buf.String(), `"module":"testModule"`)
	assert.Equal(t, 1, strings.Count(buf.String(), `"module"`))
}

// TestConsoleLogging tests if console logging works as expected.
func TestConsoleLogging(t *testing.T) {
	var buf bytes.Buffer
	consoleWriter := ConsoleWriterWithStyles(&Styles{Out: &buf})
	logger := zerolog.New(consoleWriter).With().Timestamp().Logger()

	logger.Info().Msg("Test message")

	assert.Contains(t, buf.String(), "Test message")
}

// TestFileLogging tests if the file logging works correctly.
func TestFileLogging(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")

	InitWithConfig(&Config{
		ToFile:  true,
		LogFile: path,
		Level:   "info",
	}, "testModule")
	defer func() { _ = Close() }()

	Info().Str("dataset", "car").Msg("Test file logging")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Test file logging")
	assert.Contains(t, string(content), `"dataset":"car"`)
	assert.Contains(t, string(content), `"module":"testModule"`)
}

// TestContextLogger tests logging with context integration.
func TestContextLogger(t *testing.T) {
	var buf bytes.Buffer
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	logger := New("testModule").Output(&buf)
	ctx := WithLogger(context.Background(), &logger)

	logger.Info().Msg("Testing context logger")
	From(ctx).Info().Msg("Message from context logger")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		assert.Equal(t, "testModule", entry["module"])
	}
}

// TestFromWithoutLogger falls back to the global logger.
func TestFromWithoutLogger(t *testing.T) {
	InitWithConfig(&Config{Level: "info"}, "fallback")
	l := From(context.Background())
	require.NotNil(t, l)
	assert.NotEqual(t, zerolog.Disabled, l.GetLevel())
}

// TestLoggingLevels tests if the logger respects different logging levels.
func TestLoggingLevels(t *testing.T) {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	var buf bytes.Buffer
	logger := zerolog.New(ConsoleWriterWithStyles(&Styles{Out: &buf})).With().Timestamp().Logger()

	logger.Debug().Msg("Debug message")
	logger.Info().Msg("Info message")
	logger.Warn().Msg("Warn message")
	logger.Error().Msg("Error message")

	assert.Contains(t, buf.String(), "Debug message")
	assert.Contains(t, buf.String(), "Info message")
	assert.Contains(t, buf.String(), "Warn message")
	assert.Contains(t, buf.String(), "Error message")
}

// TestWithFields tests structured logging with custom fields.
func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(ConsoleWriterWithStyles(&Styles{Out: &buf})).With().Timestamp().Logger()

	logger.Info().Str("dataset", "car").Int("support", 40).Msg("mining")

	assert.Contains(t, buf.String(), "dataset=car")
	assert.Contains(t, buf.String(), "support=40")
	assert.Contains(t, buf.String(), "mining")
}

// TestErrorLogging tests logging errors correctly.
func TestErrorLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(ConsoleWriterWithStyles(&Styles{Out: &buf})).With().Timestamp().Logger()

	logger.Error().Err(fmt.Errorf("sample error")).Msg("Test error logging")

	assert.Contains(t, buf.String(), "sample error")
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("WARN")
	assert.NoError(t, err)
	assert.Equal(t, WarnLevel, lvl)

	lvl, err = ParseLevel("")
	assert.NoError(t, err)
	assert.Equal(t, InfoLevel, lvl)

	_, err = ParseLevel("loud")
	assert.ErrorIs(t, err, ErrInvalidLevelValue)
}
