package logger

import (
	"sync/atomic"

	"go.uber.org/zap"
)

type Fields map[string]any

var base atomic.Pointer[zap.Logger]

func init() {
	base.Store(zap.NewNop())
}

// Init installs the process-wide logger. Called once from main; everything
// else logs through the package-level helpers so services and repositories
// do not carry a logger dependency.
func Init(l *zap.Logger) {
	if l != nil {
		base.Store(l)
	}
}

func Info(message string, fields Fields) {
	base.Load().Info(message, zapFields(fields)...)
}

func Error(message string, err error, fields Fields) {
	zf := zapFields(fields)
	if err != nil {
		zf = append(zf, zap.Error(err))
	}
	base.Load().Error(message, zf...)
}

func Warn(message string, fields Fields) {
	base.Load().Warn(message, zapFields(fields)...)
}

func zapFields(fields Fields) []zap.Field {
	if len(fields) == 0 {
		return nil
	}

	zf := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		zf = append(zf, zap.Any(k, v))
	}
	return zf
}
