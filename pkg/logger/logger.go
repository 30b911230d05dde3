package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	L     *zap.Logger
	level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
)

func init() {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "ts"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.Level = level
	var err error
	L, err = config.Build(zap.AddCallerSkip(1))
	if err != nil {
		panic(err)
	}
}

// WithComponent tags every entry with the subsystem that wrote it.
func WithComponent(component string) *zap.Logger {
	return L.With(zap.String("component", component))
}

// SetLevel adjusts the shared level at runtime. Unknown names keep the current level.
func SetLevel(name string) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(name)); err != nil {
		L.Warn("unknown log level, keeping current", zap.String("level", name))
		return
	}
	level.SetLevel(lvl)
}
