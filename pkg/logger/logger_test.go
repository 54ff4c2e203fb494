package logger

import (
	"bytes"
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogs(t *testing.T, l Level) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetLevel(l)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		SetLevel(LevelInfo)
	})
	return &buf
}

func TestLevelFiltering(t *testing.T) {
	buf := captureLogs(t, LevelWarn)

	Debug("debug %d", 1)
	Info("info %d", 2)
	Warn("warn %d", 3)
	Error("error %d", 4)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "warn 3")
	assert.Contains(t, lines[1], "error 4")
	assert.NotContains(t, buf.String(), "info 2")
	assert.NotContains(t, buf.String(), "debug 1")
}

func TestDebugLevelKeepsEverything(t *testing.T) {
	buf := captureLogs(t, LevelDebug)

	Debug("one")
	Info("two")

	assert.Equal(t, 2, strings.Count(buf.String(), "\n"))
}

func TestLineFormat(t *testing.T) {
	buf := captureLogs(t, LevelInfo)

	Info("Loaded %d projects", 3)

	line := buf.String()
	assert.Regexp(t, regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2} `), line)
	assert.Contains(t, line, "INFO")
	assert.True(t, strings.HasSuffix(line, " Loaded 3 projects\n"))
}
