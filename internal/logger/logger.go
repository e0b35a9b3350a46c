package logger

import (
	"fmt"

	"go.uber.org/zap"
)

const (
	ModeDevelopment = "development"
	ModeProduction  = "production"
)

var log = zap.NewNop().Sugar()

// Init replaces the package logger. Until it is called every log call is a no-op.
func Init(mode string) error {
	var (
		l   *zap.Logger
		err error
	)
	switch mode {
	case ModeProduction:
		l, err = zap.NewProduction()
	case ModeDevelopment, "":
		l, err = zap.NewDevelopment()
	default:
		return fmt.Errorf("logger: unknown mode %q", mode)
	}
	if err != nil {
		return err
	}
	log = l.Sugar()
	return nil
}

func Sync() {
	_ = log.Sync()
}

func Info(msg string, kv ...interface{}) {
	log.Infow(msg, kv...)
}

func Warn(msg string, kv ...interface{}) {
	log.Warnw(msg, kv...)
}

func Error(msg string, kv ...interface{}) {
	log.Errorw(msg, kv...)
}
