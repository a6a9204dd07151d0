package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is the process wide logger. It discards everything until Setup is
// called, so library code stays quiet in tests.
var Logger = zerolog.Nop()

// Setup points the process logger at w. Console formatting is used when the
// writer is a terminal-ish stream (stderr/stdout), JSON lines otherwise.
func Setup(w io.Writer, level zerolog.Level) {
	if w == os.Stderr || w == os.Stdout {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}

	Logger = zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Logger()

	log.Logger = Logger
}

// ParseLevel maps a config level name to a zerolog level, defaulting to info.
func ParseLevel(name string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(name))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// CreateLogFile opens a fresh log file in dir for the interactive mode, where
// the terminal belongs to the UI.
func CreateLogFile(dir string) (*os.File, error) {
	return os.CreateTemp(dir, "diskviz-*.log")
}

func Info() *zerolog.Event {
	return Logger.Info()
}

func Error() *zerolog.Event {
	return Logger.Error()
}

func Warn() *zerolog.Event {
	return Logger.Warn()
}

func Debug() *zerolog.Event {
	return Logger.Debug()
}
