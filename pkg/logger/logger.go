// pkg/logger/logger.go
package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Log is the global logger instance.
var Log zerolog.Logger

func init() {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = time.RFC3339Nano

	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: "2006-01-02 15:04:05",
	}

	Log = zerolog.New(output).
		Level(zerolog.InfoLevel).
		With().
		Timestamp().
		Logger()
}

// SetMode configures the global level from the server mode. "release" keeps
// the default info level, anything else is parsed as a zerolog level name.
func SetMode(mode string) {
	if mode == "" || mode == "release" {
		return
	}
	level, err := zerolog.ParseLevel(mode)
	if err != nil {
		Log.Warn().Str("mode", mode).Msg("unknown log level, keeping info")
		return
	}
	zerolog.SetGlobalLevel(level)
	Log = Log.Level(level)
}
