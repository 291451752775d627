package logging

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func fixedLogger(level Level) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := New(Config{Level: level, Output: &buf, Prefix: "test"})
	l.sink.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	return l, &buf
}

func TestLoggerLevels(t *testing.T) {
	l, buf := fixedLogger(LevelWarn)
	l.Debug("hidden")
	l.Info("hidden")
	l.Warn("shown %d", 1)
	l.Error("shown %d", 2)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Equal(t, []string{
		"2024-01-02T03:04:05.000 [WARN] test: shown 1",
		"2024-01-02T03:04:05.000 [ERROR] test: shown 2",
	}, lines)
	require.False(t, l.Enabled(LevelInfo))
	require.True(t, l.Enabled(LevelError))
}

func TestLoggerFields(t *testing.T) {
	l, buf := fixedLogger(LevelDebug)
	child := l.WithComponent("worktree").WithField("anchor", "a1")
	child.Debug("relocated")
	require.Equal(t, "2024-01-02T03:04:05.000 [DEBUG] test: relocated anchor=a1 component=worktree\n", buf.String())

	buf.Reset()
	l.Info("plain")
	require.NotContains(t, buf.String(), "component")

	l.SetLevel(LevelError)
	require.Equal(t, LevelError, child.Level())
}

func TestNullLogger(t *testing.T) {
	require.False(t, NullLogger.Enabled(LevelError))
	NullLogger.WithField("k", "v").Error("ignored")
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, LevelDebug, ParseLevel("DEBUG"))
	require.Equal(t, LevelWarn, ParseLevel("warning"))
	require.Equal(t, LevelError, ParseLevel(" error "))
	require.Equal(t, LevelInfo, ParseLevel("bogus"))
	require.Equal(t, "WARN", LevelWarn.String())
}
