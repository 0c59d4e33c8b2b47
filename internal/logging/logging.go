package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the component-tagged logger passed to every subsystem.
type Logger interface {
	Infof(component string, format string, args ...interface{})
	Warnf(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type NoopLogger struct{}

func (NoopLogger) Infof(component, format string, args ...interface{})  {}
func (NoopLogger) Warnf(component, format string, args ...interface{})  {}
func (NoopLogger) Errorf(component, format string, args ...interface{}) {}

// ZapLogger adapts a zap logger; the component becomes a structured field.
type ZapLogger struct{ s *zap.SugaredLogger }

func NewZapLogger(l *zap.Logger) ZapLogger { return ZapLogger{s: l.Sugar()} }

func (l ZapLogger) Infof(component string, format string, args ...interface{}) {
	l.s.With("component", component).Infof(format, args...)
}

func (l ZapLogger) Warnf(component string, format string, args ...interface{}) {
	l.s.With("component", component).Warnf(format, args...)
}

func (l ZapLogger) Errorf(component string, format string, args ...interface{}) {
	l.s.With("component", component).Errorf(format, args...)
}

// Sync flushes buffered entries.
func (l ZapLogger) Sync() error { return l.s.Sync() }

// New builds the process logger: JSON production output, or a colored console
// encoder at debug level when debug is set.
func New(debug bool) (*zap.Logger, error) {
	if !debug {
		return zap.NewProduction()
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return cfg.Build()
}
