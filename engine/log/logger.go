package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/op/go-logging"
)

// Level is the verbosity of the module loggers.
type Level int

// The levels that can be passed to SetLevel.
const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

var format = logging.MustStringFormatter(
	`%{color}[%{time:15:04:05.000}] [%{module}] [%{level}]%{color:reset} %{message}`,
)

var (
	mu             sync.Mutex
	leveledBackend logging.LeveledBackend
	currentLevel   = Notice
)

// Logger is the leveled logger every engine package writes through.
type Logger interface {
	Debug(v ...any)
	Debugf(format string, v ...any)

	Notice(v ...any)
	Noticef(format string, v ...any)

	Info(v ...any)
	Infof(format string, v ...any)

	Warning(v ...any)
	Warningf(format string, v ...any)

	Error(v ...any)
	Errorf(format string, v ...any)
}

// New creates a named module logger. The name shows up in every line it writes.
func New(name string) Logger {
	return logging.MustGetLogger(name)
}

// SetSink redirects all module loggers to the given writer, keeping the current level.
func SetSink(sink io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	backend := logging.NewLogBackend(sink, "", 0)
	leveledBackend = logging.AddModuleLevel(logging.NewBackendFormatter(backend, format))
	leveledBackend.SetLevel(toLoggingLevel(currentLevel), "")
	logging.SetBackend(leveledBackend)
}

// SetLevel sets the verbosity for all modules.
func SetLevel(level Level) {
	mu.Lock()
	defer mu.Unlock()

	currentLevel = level
	leveledBackend.SetLevel(toLoggingLevel(level), "")
}

// ParseLevel maps a level name (debug, info, notice, warning, error) to a Level.
//
// Parameters:
//   - name: the case-insensitive level name
//
// Returns:
//   - Level: the parsed level
//   - error: an error if the name is not a known level
func ParseLevel(name string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return Debug, nil
	case "info":
		return Info, nil
	case "notice", "":
		return Notice, nil
	case "warning", "warn":
		return Warning, nil
	case "error":
		return Error, nil
	}
	return Notice, fmt.Errorf("log: unknown level %q", name)
}

func toLoggingLevel(level Level) logging.Level {
	switch level {
	case Debug:
		return logging.DEBUG
	case Info:
		return logging.INFO
	case Warning:
		return logging.WARNING
	case Error:
		return logging.ERROR
	default:
		return logging.NOTICE
	}
}

func init() {
	SetSink(os.Stdout)
}
