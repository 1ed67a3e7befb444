package log

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/apex/log"
	"github.com/heroku/color"
	"github.com/pkg/errors"
)

var _ LoggerHandlerWithLevel = &DefaultLogger{}

// DefaultLogger writes plain messages, prefixing warnings and errors.
type DefaultLogger struct {
	*log.Logger
}

func NewDefaultLogger(writer io.Writer) *DefaultLogger {
	return &DefaultLogger{
		Logger: &log.Logger{
			Level:   log.InfoLevel,
			Handler: &handler{writer: writer},
		},
	}
}

// NewDefaultLoggerFromEnv configures level and colour from BP_LOG_LEVEL and CNB_NO_COLOR.
func NewDefaultLoggerFromEnv(writer io.Writer, getenv func(string) string) (*DefaultLogger, error) {
	if noColor, err := strconv.ParseBool(getenv(EnvNoColor)); err == nil {
		color.Disable(noColor)
	}
	logger := NewDefaultLogger(writer)
	if requested := getenv(EnvLogLevel); requested != "" {
		if err := logger.SetLevel(requested); err != nil {
			return logger, err
		}
	}
	return logger, nil
}

func (l *DefaultLogger) SetLevel(requested string) error {
	var err error
	l.Level, err = log.ParseLevel(strings.ToLower(requested))
	if err != nil {
		return errors.Wrapf(err, "parsing log level '%s'", requested)
	}
	return nil
}

func (l *DefaultLogger) HandleLog(entry *log.Entry) error {
	return l.Handler.HandleLog(entry)
}

func (l *DefaultLogger) LogLevel() log.Level {
	return l.Level
}

type handler struct {
	mu     sync.Mutex
	writer io.Writer
}

var (
	warnStyle  = color.New(color.FgYellow, color.Bold)
	errorStyle = color.New(color.FgRed, color.Bold)
)

func (h *handler) HandleLog(entry *log.Entry) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	var prefix string
	switch entry.Level {
	case log.WarnLevel:
		prefix = warnStyle.Sprint("Warning: ")
	case log.ErrorLevel, log.FatalLevel:
		prefix = errorStyle.Sprint("ERROR: ")
	}

	message := strings.TrimRight(entry.Message, "\n")
	_, err := fmt.Fprintln(h.writer, prefix+message)
	return err
}
