package main

import (
	"strings"

	"go.uber.org/zap"
)

// newLogger builds a zap logger.  Mode "prod" gives JSON output at
// info level; anything else gives the console encoder at debug level.
func newLogger(mode string) (*zap.Logger, error) {

	var cfg zap.Config
	switch strings.ToLower(mode) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}
