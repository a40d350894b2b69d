// Package logger configures the global zerolog logger for every binary in
// this module. Logs always go to stderr: stdout belongs to the MCP transport
// and to CLI commands that stream PNG data.
package logger

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Environment variables read at start-up, before any config file is parsed.
const (
	EnvLogLevel = "IMAGE_STEG_LOG_LEVEL"
	EnvLogType  = "IMAGE_STEG_LOG_TYPE"
)

// Log output formats.
const (
	TypeText = "text"
	TypeJSON = "json"
)

var stderr io.Writer = os.Stderr

func init() { //nolint:gochecknoinits // init with zerolog is idiomatic
	configureLogging(os.Getenv(EnvLogLevel), os.Getenv(EnvLogType))
}

// Configure replaces the global logger. Unknown levels fall back to info and
// unknown types fall back to text.
func Configure(level, logType string) {
	configureLogging(level, logType)
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}

type tTesting interface {
	Log(args ...interface{})
	Logf(format string, args ...interface{})
	Helper()
	Cleanup(f func())
}

// ConfigureTestLogging allows logs to be associated with individual tests
func ConfigureTestLogging(t tTesting) {
	oldLogger := log.Logger
	oldContextLogger := zerolog.DefaultContextLogger
	oldLevel := zerolog.GlobalLevel()

	configureLogging("debug", TypeText, zerolog.ConsoleTestWriter(t))

	t.Cleanup(func() {
		log.Logger = oldLogger
		zerolog.DefaultContextLogger = oldContextLogger
		zerolog.SetGlobalLevel(oldLevel)
	})
}

func configureLogging(level, logType string, loggingOptions ...func(w *zerolog.ConsoleWriter)) {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.SetGlobalLevel(ParseLevel(level))

	isTerminal := false
	if f, ok := stderr.(*os.File); ok {
		isTerminal = isatty.IsTerminal(f.Fd())
	}

	defaultLogging := func(w *zerolog.ConsoleWriter) {
		w.Out = stderr
		w.NoColor = !isTerminal
		w.TimeFormat = "15:04:05.999 |"
		w.PartsOrder = []string{
			zerolog.TimestampFieldName,
			zerolog.LevelFieldName,
			zerolog.CallerFieldName,
			zerolog.MessageFieldName,
		}
		w.FormatFieldName = func(i interface{}) string {
			return fmt.Sprintf("[%s:", i)
		}
		w.FormatFieldValue = func(i interface{}) string {
			if i == nil {
				i = ""
			}
			return fmt.Sprintf("%s]", i)
		}
	}

	loggingOptions = append([]func(w *zerolog.ConsoleWriter){defaultLogging}, loggingOptions...)

	zerolog.CallerMarshalFunc = shortCaller

	var w io.Writer = zerolog.NewConsoleWriter(loggingOptions...)
	if strings.ToLower(strings.TrimSpace(logType)) == TypeJSON {
		w = stderr
	}

	log.Logger = zerolog.New(w).With().Timestamp().Caller().Logger()
	zerolog.DefaultContextLogger = &log.Logger
}

// shortCaller keeps the last two path elements of the caller's file.
func shortCaller(_ uintptr, file string, line int) string {
	short := file
	separators := 0
	for i := len(file) - 1; i > 0; i-- {
		if file[i] == '/' {
			separators++
			if separators >= 2 {
				short = file[i+1:]
				break
			}
		}
	}
	return short + ":" + strconv.Itoa(line)
}
