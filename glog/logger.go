package glog

import (
	"fmt"
	"go.uber.org/zap"
)

// Logger is a text sink over zap. A nil *Logger discards everything.
type Logger struct {
	mLogger *zap.Logger
}

func NewLogger(z *zap.Logger) *Logger {
	if z == nil {
		z = zap.NewNop()
	}
	return &Logger{mLogger: z}
}

func (l *Logger) Zap() *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l.mLogger
}

func (l *Logger) Info(args ...interface{}) {
	if l == nil {
		return
	}
	l.mLogger.Info(fmt.Sprint(args...))
}

func (l *Logger) InfoF(format string, args ...interface{}) {
	if l == nil {
		return
	}
	l.mLogger.Info(fmt.Sprintf(format, args...))
}

func (l *Logger) Warn(args ...interface{}) {
	if l == nil {
		return
	}
	l.mLogger.Warn(fmt.Sprint(args...))
}

func (l *Logger) WarnF(format string, args ...interface{}) {
	if l == nil {
		return
	}
	l.mLogger.Warn(fmt.Sprintf(format, args...))
}

func (l *Logger) Error(args ...interface{}) {
	if l == nil {
		return
	}
	l.mLogger.Error(fmt.Sprint(args...))
}

func (l *Logger) ErrorF(format string, args ...interface{}) {
	if l == nil {
		return
	}
	l.mLogger.Error(fmt.Sprintf(format, args...))
}

func (l *Logger) Sync() error {
	if l == nil {
		return nil
	}
	return l.mLogger.Sync()
}
