package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Zap adapts a zap logger to the Infof/Warnf/Errorf/Debugf surface used
// across the module.
type Zap struct {
	sugar *zap.SugaredLogger
}

// FromZap wraps an existing zap logger.
func FromZap(l *zap.Logger) *Zap {
	return &Zap{sugar: l.Sugar()}
}

// NewZap builds a production zap logger writing JSON lines to stderr.
func NewZap(level LogLevel) (*Zap, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapLevel(level))
	cfg.DisableStacktrace = true
	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return FromZap(l), nil
}

func zapLevel(level LogLevel) zapcore.Level {
	switch level {
	case DEBUG:
		return zapcore.DebugLevel
	case WARN:
		return zapcore.WarnLevel
	case ERROR:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func (z *Zap) Debugf(format string, args ...any) { z.sugar.Debugf(format, args...) }
func (z *Zap) Infof(format string, args ...any)  { z.sugar.Infof(format, args...) }
func (z *Zap) Warnf(format string, args ...any)  { z.sugar.Warnf(format, args...) }
func (z *Zap) Errorf(format string, args ...any) { z.sugar.Errorf(format, args...) }

// Sync flushes buffered entries.
func (z *Zap) Sync() error {
	return z.sugar.Sync()
}
