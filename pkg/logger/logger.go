// Package logger wraps a process wide zap logger that writes JSON to a
// rotating file and human readable lines to stdout.
package logger

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type LogConfig struct {
	Path       string
	Level      string
	ServiceEnv string
}

type ctxKey struct{}

var (
	mu     sync.RWMutex
	zlog   = zap.NewNop()
	closer func() error
)

// Init replaces the global logger. An empty Path logs to stdout only.
func Init(cfg *LogConfig) error {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.Lock(os.Stdout), level),
	}

	var rotator *lumberjack.Logger
	if cfg.Path != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
			return err
		}
		rotator = &lumberjack.Logger{
			Filename:   cfg.Path,
			MaxSize:    100,
			MaxBackups: 7,
			MaxAge:     30,
			Compress:   true,
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(rotator), level))
	}

	l := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1)).
		With(zap.String("env", cfg.ServiceEnv))

	mu.Lock()
	zlog = l
	closer = func() error {
		_ = l.Sync()
		if rotator != nil {
			return rotator.Close()
		}
		return nil
	}
	mu.Unlock()
	return nil
}

func Close() error {
	mu.RLock()
	c := closer
	mu.RUnlock()
	if c == nil {
		return nil
	}
	return c()
}

// L returns the global logger without the caller skip used by the helpers.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return zlog.WithOptions(zap.AddCallerSkip(-1))
}

// WithRequestID stores the request id so every log line of the request
// carries it.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func sugar(ctx context.Context) *zap.SugaredLogger {
	mu.RLock()
	l := zlog
	mu.RUnlock()
	if id := RequestID(ctx); id != "" {
		l = l.With(zap.String("request_id", id))
	}
	return l.Sugar()
}

func Debugf(ctx context.Context, format string, args ...any) {
	sugar(ctx).Debugf(format, args...)
}

func Infof(ctx context.Context, format string, args ...any) {
	sugar(ctx).Infof(format, args...)
}

func Warnf(ctx context.Context, format string, args ...any) {
	sugar(ctx).Warnf(format, args...)
}

func Errorf(ctx context.Context, format string, args ...any) {
	sugar(ctx).Errorf(format, args...)
}
