// Package logger builds the process logger: a colored console core and,
// when a directory is configured, a rotated JSON file core.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	FileName = "snp.log"

	logsMaxSize    = 10 // megabytes
	logsMaxBackups = 3
	logsMaxAge     = 14 // days
)

type Config struct {
	Level string
	// Dir enables the JSON file core when set.
	Dir string
	// Console defaults to stderr.
	Console io.Writer
}

func New(cfg Config) (*zap.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	console := cfg.Console
	if console == nil {
		console = os.Stderr
	}

	cores := []zapcore.Core{
		zapcore.NewCore(consoleEncoder(), zapcore.Lock(zapcore.AddSync(console)), level),
	}

	if cfg.Dir != "" {
		if err := os.MkdirAll(cfg.Dir, 0o700); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		file := zapcore.AddSync(&lumberjack.Logger{
			Filename:   filepath.Join(cfg.Dir, FileName),
			MaxSize:    logsMaxSize,
			MaxBackups: logsMaxBackups,
			MaxAge:     logsMaxAge,
		})
		cores = append(cores, zapcore.NewCore(fileEncoder(), file, level))
	}

	return zap.New(zapcore.NewTee(cores...)), nil
}

func ParseLevel(raw string) (zap.AtomicLevel, error) {
	if raw == "" {
		return zap.NewAtomicLevelAt(zapcore.InfoLevel), nil
	}

	var level zapcore.Level
	if err := level.Set(raw); err != nil {
		return zap.AtomicLevel{}, fmt.Errorf("parse log level %q: %w", raw, err)
	}
	return zap.NewAtomicLevelAt(level), nil
}

func consoleEncoder() zapcore.Encoder {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	return zapcore.NewConsoleEncoder(cfg)
}

func fileEncoder() zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "timestamp"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return zapcore.NewJSONEncoder(cfg)
}
