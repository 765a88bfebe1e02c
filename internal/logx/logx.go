// Package logx builds the process logger.
package logx

import (
	"os"

	"github.com/rs/zerolog"
)

// New returns the logger for module. Development gets a console writer;
// everything else logs JSON to stderr.
func New(env, module string) zerolog.Logger {
	var logger zerolog.Logger
	if env == "development" {
		out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
		logger = zerolog.New(out)
	} else {
		logger = zerolog.New(os.Stderr)
	}
	return logger.With().Timestamp().Str("module", module).Logger()
}
