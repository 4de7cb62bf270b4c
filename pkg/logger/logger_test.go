package logger

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"
)

func TestInitWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "lms.log")
	require.NoError(t, Init(&LogConfig{Path: path, Level: "debug", ServiceEnv: "test"}))

	ctx := WithRequestID(context.Background(), "req-42")
	Infof(ctx, "organization %s created", "abc")
	Debugf(context.Background(), "debug line")
	require.NoError(t, Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, `"msg":"organization abc created"`)
	assert.Contains(t, out, `"request_id":"req-42"`)
	assert.Contains(t, out, `"env":"test"`)
	assert.Contains(t, out, "debug line")
}

func TestLevelFiltering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lms.log")
	require.NoError(t, Init(&LogConfig{Path: path, Level: "warn"}))

	Infof(context.Background(), "hidden")
	Warnf(context.Background(), "shown")
	require.NoError(t, Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "shown")
}

func TestRequestIDMissing(t *testing.T) {
	assert.Equal(t, "", RequestID(context.Background()))
}

func TestGormLoggerLevels(t *testing.T) {
	tests := []struct {
		in   string
		want gormlogger.LogLevel
	}{
		{"silent", gormlogger.Silent},
		{"error", gormlogger.Error},
		{"warn", gormlogger.Warn},
		{"info", gormlogger.Info},
		{"", gormlogger.Warn},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			g := NewGormLogger(tt.in, time.Second)
			assert.Equal(t, tt.want, g.level)
		})
	}

	g := NewGormLogger("warn", time.Second)
	quiet := g.LogMode(gormlogger.Silent).(*GormLogger)
	assert.Equal(t, gormlogger.Silent, quiet.level)
	assert.Equal(t, gormlogger.Warn, g.level)
}
