package logging

import (
	"go.uber.org/zap"
)

// New builds the application logger. Debug switches to the development
// config with full level output; otherwise only warnings and up reach the
// console so scan output stays readable.
func New(debug bool) (*zap.SugaredLogger, error) {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	cfg.Encoding = "console"
	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}

// Nop returns a logger that discards everything, for tests and callers that
// have no logging configured.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
