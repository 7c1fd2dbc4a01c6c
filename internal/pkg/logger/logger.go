// Package logger adapts zap to the ports.Logger interface. The interactive
// UI owns stdout, so logs go to a file unless debug mode routes them to
// stderr as well.
package logger

import (
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/BadrBouzakri/AI-Agent/internal/ports"
)

// Options selects where log lines go.
type Options struct {
	// FilePath receives JSON log lines; empty disables file output.
	FilePath string
	// Debug lowers the level and mirrors lines to stderr.
	Debug bool
}

// ZapLogger implements ports.Logger.
type ZapLogger struct {
	zl *zap.Logger
}

var _ ports.Logger = (*ZapLogger)(nil)

// New builds a logger. With no file and debug off it logs nowhere, which is
// the right default for an interactive terminal program.
func New(opts Options) (*ZapLogger, error) {
	var outputs []string
	if opts.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(opts.FilePath), 0o755); err != nil {
			return nil, err
		}
		outputs = append(outputs, opts.FilePath)
	}
	if opts.Debug {
		outputs = append(outputs, "stderr")
	}
	if len(outputs) == 0 {
		return NewNop(), nil
	}

	config := zap.NewProductionConfig()
	if opts.Debug {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	config.OutputPaths = outputs
	config.ErrorOutputPaths = outputs
	zl, err := config.Build()
	if err != nil {
		return nil, err
	}
	return &ZapLogger{zl: zl}, nil
}

// NewNop returns a logger that drops everything.
func NewNop() *ZapLogger {
	return &ZapLogger{zl: zap.NewNop()}
}

func (l *ZapLogger) Debug(msg string, fields map[string]interface{}) {
	l.zl.Debug(msg, toZapFields(fields)...)
}

func (l *ZapLogger) Info(msg string, fields map[string]interface{}) {
	l.zl.Info(msg, toZapFields(fields)...)
}

func (l *ZapLogger) Warn(msg string, fields map[string]interface{}) {
	l.zl.Warn(msg, toZapFields(fields)...)
}

func (l *ZapLogger) Error(msg string, err error, fields map[string]interface{}) {
	zf := toZapFields(fields)
	if err != nil {
		zf = append(zf, zap.Error(err))
	}
	l.zl.Error(msg, zf...)
}

// Sync flushes buffered lines; call it on shutdown.
func (l *ZapLogger) Sync() {
	_ = l.zl.Sync()
}

// Keys are sorted so repeated runs produce diffable lines.
func toZapFields(fields map[string]interface{}) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		out = append(out, zap.Any(k, fields[k]))
	}
	return out
}
