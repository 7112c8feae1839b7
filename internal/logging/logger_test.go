package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewWithWriter_RenamesErrorKey(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, slog.LevelInfo)

	logger.Error("request failed", "error", errors.New("boom"))
	logger.Debug("hidden")

	assert.Contains(t, buf.String(), "err=boom")
	assert.NotContains(t, buf.String(), "error=")
	assert.NotContains(t, buf.String(), "hidden")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug", slog.LevelInfo))
	assert.Equal(t, slog.LevelInfo, ParseLevel("INFO", slog.LevelWarn))
	assert.Equal(t, slog.LevelWarn, ParseLevel(" WARNING ", slog.LevelInfo))
	assert.Equal(t, slog.LevelError, ParseLevel("CRITICAL", slog.LevelInfo))
	assert.Equal(t, slog.LevelWarn, ParseLevel("", slog.LevelWarn))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose", slog.LevelInfo))
}

func TestNewWithWriter_LevelVar(t *testing.T) {
	var buf bytes.Buffer
	var level slog.LevelVar
	level.Set(slog.LevelInfo)
	logger := NewWithWriter(&buf, &level)

	logger.Debug("before")
	level.Set(slog.LevelDebug)
	logger.Debug("after")

	assert.NotContains(t, buf.String(), "before")
	assert.Contains(t, buf.String(), "after")
}
