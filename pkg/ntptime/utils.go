package ntptime

import (
	"os"

	"go.uber.org/zap"
)

// NewLogger returns a console logger when INFO=1 or DEBUG=1 is set and a
// no-op logger otherwise.
func NewLogger() *zap.Logger {
	if !isInfo() && !isDebug() {
		return zap.NewNop()
	}

	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	if isDebug() {
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	logger, err := config.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func isInfo() bool {
	return os.Getenv("INFO") == "1"
}

func isDebug() bool {
	return os.Getenv("DEBUG") == "1"
}
