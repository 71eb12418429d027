// Package logger holds the process-wide sugared logger. The TUI owns the
// terminal, so logs go to a rotating file and stay off entirely unless a
// file is configured.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

var l *zap.SugaredLogger

func init() {
	l = zap.NewNop().Sugar()
}

type Config struct {
	Level      string // debug, info, warn, error
	File       string // log file path; empty disables logging
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Init routes logs to the configured rotating file. With no file configured
// the logger stays a no-op.
func Init(cfg Config) error {
	if cfg.File == "" {
		return nil
	}

	var level zapcore.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zapcore.DebugLevel
	case "info", "":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		return fmt.Errorf("unsupported log level: %s", cfg.Level)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}

	maxSize := cfg.MaxSizeMB
	if maxSize <= 0 {
		maxSize = 16
	}
	maxBackups := cfg.MaxBackups
	if maxBackups <= 0 {
		maxBackups = 3
	}
	maxAge := cfg.MaxAgeDays
	if maxAge <= 0 {
		maxAge = 7
	}

	encoderCfg := zapcore.EncoderConfig{
		TimeKey:        "T",
		LevelKey:       "L",
		MessageKey:     "M",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    maxSize,
			MaxBackups: maxBackups,
			MaxAge:     maxAge,
			Compress:   true,
		}),
		level,
	)

	l = zap.New(core).Sugar()
	return nil
}

// Sync flushes buffered entries; call before exit.
func Sync() {
	_ = l.Sync()
}

func Debugf(template string, args ...any) { l.Debugf(template, args...) }
func Infof(template string, args ...any)  { l.Infof(template, args...) }
func Warnf(template string, args ...any)  { l.Warnf(template, args...) }
func Errorf(template string, args ...any) { l.Errorf(template, args...) }
