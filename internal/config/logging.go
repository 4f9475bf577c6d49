package config

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// InitLogger builds the demo's logger from a LoggingConfig. Console output
// goes to stderr; when cfg.File is set the file receives the stream instead,
// which keeps the TUI display clean. Unparsable levels fall back to info.
//
// The returned close function releases the log file handle (a no-op when no
// file is configured).
func InitLogger(cfg LoggingConfig) (zerolog.Logger, func(), error) {
	lvl, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	var out io.Writer
	closeFn := func() {}

	if cfg.File != "" {
		logFile, fileErr := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if fileErr != nil {
			return zerolog.Nop(), closeFn, fileErr
		}
		out = logFile
		closeFn = func() { _ = logFile.Close() }
	} else {
		out = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		}
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(out)).
		Level(lvl).
		With().
		Timestamp().
		Logger()

	return logger, closeFn, nil
}
