// Package logx is the process-wide structured logger, backed by zap.
package logx

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.RWMutex
	logger = newLogger("info", "console")
)

func newLogger(level, format string) *zap.SugaredLogger {
	lvl := zapcore.InfoLevel
	switch level {
	case "debug":
		lvl = zapcore.DebugLevel
	case "warn":
		lvl = zapcore.WarnLevel
	case "error":
		lvl = zapcore.ErrorLevel
	}

	var cfg zap.Config
	if format == "json" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		l = zap.NewNop()
	}
	return l.Sugar()
}

// Init replaces the global logger. Call once at startup, before any goroutines
// log.
func Init(level, format string) {
	mu.Lock()
	defer mu.Unlock()
	logger = newLogger(level, format)
}

// UseNop silences the global logger, for tests.
func UseNop() {
	mu.Lock()
	defer mu.Unlock()
	logger = zap.NewNop().Sugar()
}

// L returns the underlying sugared logger for structured With-style use.
func L() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

func Debug(args ...any)                 { L().Debug(args...) }
func Debugf(format string, args ...any) { L().Debugf(format, args...) }
func Info(args ...any)                  { L().Info(args...) }
func Infof(format string, args ...any)  { L().Infof(format, args...) }
func Warn(args ...any)                  { L().Warn(args...) }
func Warnf(format string, args ...any)  { L().Warnf(format, args...) }
func Error(args ...any)                 { L().Error(args...) }
func Errorf(format string, args ...any) { L().Errorf(format, args...) }

func Fatal(args ...any) {
	L().Error(args...)
	os.Exit(1)
}

func Fatalf(format string, args ...any) {
	L().Errorf(format, args...)
	os.Exit(1)
}
