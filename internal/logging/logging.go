package logging

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/oliverbestmann/stash/internal/config"
)

// New builds a logger for the given configuration. Development loggers write
// human readable output, production loggers write JSON.
func New(cfg config.Log) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	zapConfig := zap.NewProductionConfig()
	if cfg.Development {
		zapConfig = zap.NewDevelopmentConfig()
	}

	zapConfig.Level = level

	// the interactive inspector owns stdout
	zapConfig.OutputPaths = []string{"stderr"}

	return zapConfig.Build()
}
