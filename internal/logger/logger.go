package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// no-op until Init so packages can log from tests without setup
var log = zap.NewNop().Sugar()

func Init(level string) error {
	cfg := zap.NewDevelopmentConfig()
	if level != "" {
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return err
		}
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	l, err := cfg.Build()
	if err != nil {
		return err
	}
	log = l.Sugar()
	return nil
}

func Sync() { _ = log.Sync() }

func Info(msg string, kv ...interface{}) {
	log.Infow(msg, kv...)
}

func Warn(msg string, kv ...interface{}) {
	log.Warnw(msg, kv...)
}

func Error(msg string, kv ...interface{}) {
	log.Errorw(msg, kv...)
}
