// Package logging configures the process-wide zerolog logger: a
// rotating file in the state directory always, plus a console writer
// when verbose output is requested.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// Init sets up the global logger writing to logPath. Returns an error
// only when the log directory cannot be created.
func Init(logPath string, verbose, debug bool) error {
	if err := os.MkdirAll(filepath.Dir(logPath), 0o750); err != nil {
		return err
	}

	writers := []io.Writer{&lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    1,
		MaxBackups: 2,
	}}

	if verbose {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stderr})
	}

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	log.Logger = log.Output(io.MultiWriter(writers...)).
		Level(level).
		With().Timestamp().Logger()

	return nil
}
