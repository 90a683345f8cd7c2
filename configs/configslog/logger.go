package configslog

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the structured logger, SLog the sugared variant of the same core.
var (
	Log  *zap.Logger
	SLog *zap.SugaredLogger
)

// InitLogger builds the process-wide loggers. APP_ENV=production switches to
// JSON output; anything else gets the human-readable development encoder.
func InitLogger() {
	var cfg zap.Config
	if os.Getenv("APP_ENV") == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.DisableStacktrace = true

	logger, err := cfg.Build(zap.AddCallerSkip(0))
	if err != nil {
		panic("failed to initialize zap logger: " + err.Error())
	}
	Log = logger
	SLog = logger.Sugar()
}

// SyncLogger flushes buffered log entries. Intended for defer in main.
func SyncLogger() {
	if Log != nil {
		_ = Log.Sync()
	}
}
