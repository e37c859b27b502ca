// Package logger builds the structured logger shared by every component.
package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// New builds a development-mode zap logger. Production deployments of
// this mock server are expected to be local/CI, so development-style
// console encoding (readable, not JSON-line) is the right default.
func New() (*zap.SugaredLogger, error) {
	logger, err := zap.NewDevelopment()
	if err != nil {
		return nil, fmt.Errorf("error creating logger: %w", err)
	}

	return logger.Sugar(), nil
}

// NewNop returns a logger that discards everything, used in tests that
// don't want to assert on log output.
func NewNop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
