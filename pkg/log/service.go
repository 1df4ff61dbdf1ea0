package log

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	config "github.com/mwantia/switchcraft/internal/config/server"
	"gopkg.in/natefinch/lumberjack.v2"
)

type LoggerService interface {
	Debug(msg string, args ...any)

	Info(msg string, args ...any)

	Warn(msg string, args ...any)

	Error(msg string, args ...any)

	Fatal(msg string, args ...any)

	Named(name string) LoggerService
}

type LoggerServiceImpl struct {
	LoggerService

	cfg    config.LogServerConfig
	name   string
	level  LogLevel
	mutex  *sync.Mutex
	writer io.Writer
	closer io.Closer
}

type logEntry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Service   string `json:"service,omitempty"`
	Message   string `json:"message"`
}

// NewLoggerService writes to stderr (unless disabled) and to the configured
// rotating file. Stdout is left to command output.
func NewLoggerService(name string, cfg config.LogServerConfig) LoggerService {
	impl := newLoggerService(name, cfg)
	impl.setupWriter()
	return impl
}

// NewLoggerServiceWithWriter sends all entries to w, ignoring the
// terminal and file settings.
func NewLoggerServiceWithWriter(name string, cfg config.LogServerConfig, w io.Writer) LoggerService {
	impl := newLoggerService(name, cfg)
	impl.cfg.NoColor = true
	impl.writer = w
	return impl
}

func newLoggerService(name string, cfg config.LogServerConfig) *LoggerServiceImpl {
	if cfg.TimeFormat == "" {
		cfg.TimeFormat = time.RFC3339
	}

	return &LoggerServiceImpl{
		cfg:   cfg,
		name:  name,
		level: Parse(cfg.Level),
		mutex: &sync.Mutex{},
	}
}

func (impl *LoggerServiceImpl) setupWriter() {
	var writers []io.Writer

	if !impl.cfg.NoTerminal {
		writers = append(writers, os.Stderr)
	}

	if impl.cfg.File != "" {
		fileWriter := &lumberjack.Logger{
			Filename:   impl.cfg.File,
			MaxSize:    impl.cfg.Rotation.MaxSize,
			MaxBackups: impl.cfg.Rotation.MaxBackups,
			MaxAge:     impl.cfg.Rotation.MaxAge,
			Compress:   impl.cfg.Rotation.Compress,
		}
		writers = append(writers, fileWriter)
		impl.closer = fileWriter
	}

	if len(writers) == 0 {
		writers = append(writers, io.Discard)
	}

	impl.writer = io.MultiWriter(writers...)
}

// Close releases the rotating log file, if any.
func (impl *LoggerServiceImpl) Close() error {
	if impl.closer == nil {
		return nil
	}
	return impl.closer.Close()
}

func (impl *LoggerServiceImpl) log(level LogLevel, msg string, args ...any) {
	if level < impl.level {
		return
	}

	timestamp := time.Now().Format(impl.cfg.TimeFormat)
	formattedMsg := msg
	if len(args) > 0 {
		formattedMsg = fmt.Sprintf(msg, args...)
	}

	impl.mutex.Lock()
	defer impl.mutex.Unlock()

	if impl.cfg.JSON {
		entry := logEntry{
			Timestamp: timestamp,
			Level:     level.String(),
			Service:   impl.name,
			Message:   formattedMsg,
		}

		jsonBytes, _ := json.Marshal(entry)
		fmt.Fprintf(impl.writer, "%s\n", jsonBytes)
	} else {
		prefix := fmt.Sprintf("[%s] %-5s", timestamp, level)
		if impl.name != "" {
			prefix = fmt.Sprintf("%s [%s]", prefix, impl.name)
		}

		if !impl.cfg.NoTerminal && !impl.cfg.NoColor {
			fmt.Fprintln(impl.writer, Color(level).Sprintf("%s %s", prefix, formattedMsg))
		} else {
			fmt.Fprintf(impl.writer, "%s %s\n", prefix, formattedMsg)
		}
	}

	if level == Fatal {
		os.Exit(1)
	}
}

func (impl *LoggerServiceImpl) Debug(msg string, args ...any) {
	impl.log(Debug, msg, args...)
}

func (impl *LoggerServiceImpl) Info(msg string, args ...any) {
	impl.log(Info, msg, args...)
}

func (impl *LoggerServiceImpl) Warn(msg string, args ...any) {
	impl.log(Warn, msg, args...)
}

func (impl *LoggerServiceImpl) Error(msg string, args ...any) {
	impl.log(Error, msg, args...)
}

func (impl *LoggerServiceImpl) Fatal(msg string, args ...any) {
	impl.log(Fatal, msg, args...)
}

func (impl *LoggerServiceImpl) Named(name string) LoggerService {
	full := name
	if impl.name != "" {
		full = fmt.Sprintf("%s/%s", impl.name, name)
	}

	return &LoggerServiceImpl{
		cfg:    impl.cfg,
		name:   full,
		level:  impl.level,
		mutex:  impl.mutex,
		writer: impl.writer,
		closer: impl.closer,
	}
}
