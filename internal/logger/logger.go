package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var level = zap.NewAtomicLevel()

// Init builds the global zap logger for the environment and installs it with zap.ReplaceGlobals.
func Init(environment string) error {
	l, err := New(environment)
	if err != nil {
		return err
	}

	zap.ReplaceGlobals(l)

	return nil
}

func New(environment string) (*zap.Logger, error) {
	var conf zap.Config
	switch environment {
	case "production":
		conf = zap.NewProductionConfig()
		conf.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	case "development", "test", "":
		conf = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("unknown environment %q", environment)
	}

	level.SetLevel(conf.Level.Level())
	conf.Level = level

	l, err := conf.Build()
	if err != nil {
		return nil, fmt.Errorf("conf.Build -> %w", err)
	}

	return l, nil
}

// SetLevel changes the level of every logger built by New. An empty name keeps the current level.
func SetLevel(name string) error {
	if name == "" {
		return nil
	}

	lvl, err := zapcore.ParseLevel(name)
	if err != nil {
		return fmt.Errorf("zapcore.ParseLevel -> %w", err)
	}
	level.SetLevel(lvl)

	return nil
}

// Level reports the current level.
func Level() zapcore.Level {
	return level.Level()
}
