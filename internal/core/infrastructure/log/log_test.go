package log

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	logconfig "github.com/billy1624/champ/internal/config/log"
)

func newFileLogger(t *testing.T, level string) (*Logger, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "logs", "champ.log")
	logger, err := New(logconfig.NewFromOptions(&logconfig.LogOptions{
		Level:      level,
		FilePath:   path,
		MaxSize:    1,
		MaxBackups: 1,
		MaxAge:     1,
	}))
	require.NoError(t, err)
	return logger.(*Logger), path
}

func readEntries(t *testing.T, path string) []map[string]interface{} {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var entries []map[string]interface{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		entries = append(entries, entry)
	}
	return entries
}

func TestNew_WritesStructuredJSONToFile(t *testing.T) {
	// Arrange
	logger, path := newFileLogger(t, "info")

	// Act
	logger.With("module", "block", "height", 42).Info("区块已接受")
	require.NoError(t, logger.Sync())

	// Assert
	entries := readEntries(t, path)
	require.Len(t, entries, 1)
	assert.Equal(t, "区块已接受", entries[0]["message"])
	assert.Equal(t, "info", entries[0]["level"])
	assert.Equal(t, "block", entries[0]["module"])
	assert.Equal(t, float64(42), entries[0]["height"])
}

func TestNew_FiltersBelowLevel(t *testing.T) {
	logger, path := newFileLogger(t, "warn")

	logger.Debug("debug")
	logger.Info("info")
	logger.Warnf("warn %d", 1)
	require.NoError(t, logger.Sync())

	entries := readEntries(t, path)
	require.Len(t, entries, 1)
	assert.Equal(t, "warn 1", entries[0]["message"])
}

func TestToZapFields_DropsDanglingKey(t *testing.T) {
	fields := toZapFields("a", 1, "b")
	require.Len(t, fields, 1)
	assert.Equal(t, "a", fields[0].Key)
}

func TestSetLogger_IgnoresNil(t *testing.T) {
	before := GetLogger()
	SetLogger(nil)
	assert.Same(t, before, GetLogger())
}

func TestNew_InvalidLevel_ReturnsError(t *testing.T) {
	_, err := New(logconfig.NewFromOptions(&logconfig.LogOptions{Level: "verbose"}))
	assert.Error(t, err)
}

func TestNew_NoOutputs_IsNop(t *testing.T) {
	logger, err := New(logconfig.NewFromOptions(&logconfig.LogOptions{Level: "debug"}))
	require.NoError(t, err)
	logger.Info("丢弃")
	assert.False(t, logger.GetZapLogger().Core().Enabled(zapcore.DebugLevel))
}
