package harness

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger builds the stderr console logger every binary uses and sets the global level.
func NewLogger(level string) zerolog.Logger {
	return newLogger(os.Stderr, level)
}

func newLogger(w io.Writer, level string) zerolog.Logger {
	output := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}

	lvl := zerolog.InfoLevel
	switch level {
	case "debug":
		lvl = zerolog.DebugLevel
	case "warn":
		lvl = zerolog.WarnLevel
	case "disabled":
		lvl = zerolog.Disabled
	}
	zerolog.SetGlobalLevel(lvl)
	return zerolog.New(output).Level(lvl).With().Timestamp().Logger()
}
