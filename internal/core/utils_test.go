package core

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRiotID(t *testing.T) {
	tests := []struct {
		input   string
		want    RiotID
		wantErr bool
	}{
		{"Faker#KR1", RiotID{"Faker", "KR1"}, false},
		{"  spaced name#EUW ", RiotID{"spaced name", "EUW"}, false},
		{"name#tag#extra", RiotID{"name", "tag#extra"}, false},
		{"noTag", RiotID{}, true},
		{"#tag", RiotID{}, true},
		{"name#", RiotID{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRiotID(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRiotIDString(t *testing.T) {
	assert.Equal(t, "Faker#KR1", RiotID{GameName: "Faker", TagLine: "KR1"}.String())
}

func TestParseQueue(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"solo", QueueRankedSolo, false},
		{"SOLO", QueueRankedSolo, false},
		{"", QueueRankedSolo, false},
		{"flex", QueueRankedFlex, false},
		{"aram", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseQueue(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, mustParseQueue(t, QueueName(got)))
		})
	}
}

func mustParseQueue(t *testing.T, name string) int {
	t.Helper()
	q, err := ParseQueue(name)
	require.NoError(t, err)
	return q
}

func TestCacheRootFromEnv(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "custom")
	t.Setenv(CacheDirEnvVar, dir)
	assert.Equal(t, dir, CacheRoot())
}

func TestCacheRootDefault(t *testing.T) {
	t.Setenv(CacheDirEnvVar, "")
	assert.Equal(t, "lolfetch", filepath.Base(CacheRoot()))
}

func TestNewLoggerLevels(t *testing.T) {
	var buf bytes.Buffer

	quiet := NewLogger(&buf, false)
	assert.False(t, quiet.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, quiet.Enabled(context.Background(), slog.LevelWarn))

	verbose := NewLogger(&buf, true)
	assert.True(t, verbose.Enabled(context.Background(), slog.LevelDebug))

	verbose.Debug("hello", "component", "test")
	assert.Contains(t, buf.String(), "hello")
	assert.NotContains(t, buf.String(), "\033[", "non-terminal writers get no color")
}

func TestTerminalHelpersOnBuffers(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, IsTerminal(&buf))
	assert.Equal(t, 120, TerminalWidth(&buf, 120))
}
