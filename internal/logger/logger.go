package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// Init builds the process-wide zap logger and installs it as the global.
func Init(environment string) error {
	var (
		logger *zap.Logger
		err    error
	)

	switch environment {
	case "production":
		logger, err = zap.NewProduction()
	default:
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return fmt.Errorf("failed to create zap logger -> %w", err)
	}

	zap.ReplaceGlobals(logger)

	return nil
}
