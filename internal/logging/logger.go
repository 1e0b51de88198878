// Package logging provides zap logger helpers.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config controls where log output goes and how chatty the console is.
type Config struct {
	// Dir is the directory holding the persistent log file.
	Dir string `mapstructure:"dir"`
	// Verbose lowers the console level from Info to Debug. The file sink
	// always captures Debug regardless.
	Verbose bool `mapstructure:"verbose"`
}

const logFileName = "scraping.log"

// FilePath returns the persistent log file location for c.
func (c Config) FilePath() string {
	dir := c.Dir
	if dir == "" {
		dir = "logs"
	}
	return filepath.Join(dir, logFileName)
}

// New builds a zap.Logger teeing a JSON file sink (always at Debug) with a
// human-readable console sink at the configured level.
func New(cfg Config) (*zap.Logger, error) {
	path := cfg.FilePath()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("create log dir %s: %w", filepath.Dir(path), err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}

	fileEnc := zap.NewProductionEncoderConfig()
	fileEnc.TimeKey = "ts"
	fileEnc.EncodeTime = zapcore.ISO8601TimeEncoder
	fileCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(fileEnc),
		zapcore.AddSync(file),
		zapcore.DebugLevel,
	)

	consoleLevel := zapcore.InfoLevel
	if cfg.Verbose {
		consoleLevel = zapcore.DebugLevel
	}
	consoleEnc := zap.NewDevelopmentEncoderConfig()
	consoleEnc.TimeKey = "ts"
	consoleEnc.EncodeLevel = zapcore.CapitalColorLevelEncoder
	consoleCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(consoleEnc),
		zapcore.Lock(os.Stderr),
		consoleLevel,
	)

	return zap.New(zapcore.NewTee(fileCore, consoleCore)), nil
}
