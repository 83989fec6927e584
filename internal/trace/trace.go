// Package trace provides the supervisor's optional diagnostic logger.
package trace

import (
	"os"

	"go.uber.org/zap"
)

// EnvVar enables diagnostic tracing to stderr when set to any value.
const EnvVar = "BARON_DEBUG"

// New returns the diagnostic logger. Tracing is off unless EnvVar is set in
// the environment; the default logger discards everything so the supervisor
// stays silent in normal operation.
func New() *zap.SugaredLogger {
	if os.Getenv(EnvVar) == "" {
		return zap.NewNop().Sugar()
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	log, err := cfg.Build()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return log.Named("baron").Sugar()
}
