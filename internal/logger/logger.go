package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
	FATAL
)

var levelNames = [...]string{DEBUG: "DEBUG", INFO: "INFO", WARN: "WARN", ERROR: "ERROR", FATAL: "FATAL"}

func (lv LogLevel) String() string {
	if lv < DEBUG || lv > FATAL {
		return "INFO"
	}
	return levelNames[lv]
}

// palette is the terminal color of each level; the category tag is the same
// color in bold.
var palette = map[LogLevel]color.Attribute{
	DEBUG: color.FgCyan,
	INFO:  color.FgGreen,
	WARN:  color.FgYellow,
	ERROR: color.FgRed,
	FATAL: color.FgRed,
}

type LogEntry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Category  string `json:"category"`
	Message   string `json:"message"`
	File      string `json:"file,omitempty"`
	Line      int    `json:"line,omitempty"`
}

// Logger writes a colored line to the terminal and a JSON line to the log
// file for every entry. It is safe for concurrent use.
type Logger struct {
	mu           sync.Mutex
	terminal     io.Writer
	logFile      *os.File
	jsonOut      io.Writer
	colorEnabled bool
	exit         func(int)
}

// NewLogger logs to stdout and to <dir>/<service>-YYYY-MM-DD.log.
func NewLogger(service, dir string) (*Logger, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02")
	logFileName := filepath.Join(dir, fmt.Sprintf("%s-%s.log", service, timestamp))

	logFile, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	l := &Logger{
		terminal:     os.Stdout,
		logFile:      logFile,
		jsonOut:      logFile,
		colorEnabled: true,
		exit:         os.Exit,
	}

	l.Info("LOGGER", "Logging system initialized")
	l.Info("LOGGER", fmt.Sprintf("Log file: %s", logFileName))

	return l, nil
}

// NewWriterLogger writes JSON lines only to w. Used by tests and tools.
func NewWriterLogger(w io.Writer) *Logger {
	return &Logger{jsonOut: w, exit: os.Exit}
}

// NewStdoutLogger writes colored lines to stdout only, for command-line tools.
func NewStdoutLogger() *Logger {
	return NewTerminalLogger(os.Stdout, true)
}

// NewTerminalLogger writes human-readable lines to w, colored when useColor is set.
func NewTerminalLogger(w io.Writer, useColor bool) *Logger {
	return &Logger{terminal: w, colorEnabled: useColor, exit: os.Exit}
}

func (l *Logger) log(level LogLevel, category, message string) {
	_, file, line, ok := runtime.Caller(2)
	if ok {
		file = filepath.Base(file)
	}

	entry := LogEntry{
		Timestamp: time.Now().UTC().Format("2006-01-02T15:04:05.000Z"),
		Level:     level.String(),
		Category:  strings.ToUpper(category),
		Message:   message,
		File:      file,
		Line:      line,
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.terminal != nil {
		fmt.Fprint(l.terminal, l.terminalLine(level, entry))
	}
	if l.jsonOut != nil {
		if data, err := json.Marshal(entry); err == nil {
			fmt.Fprintf(l.jsonOut, "%s\n", data)
		}
	}
}

// terminalLine renders "15:04:05 LEVEL [CATEGORY  ] message (file.go:42)".
func (l *Logger) terminalLine(level LogLevel, entry LogEntry) string {
	fg, ok := palette[level]
	if !ok {
		fg = color.FgWhite
	}
	attrs := []color.Attribute{fg}
	if level == FATAL {
		attrs = append(attrs, color.Bold)
	}
	levelColor := color.New(attrs...)
	tagColor := color.New(fg, color.Bold)
	clock, source := color.New(color.FgBlue), color.New(color.FgMagenta)
	if !l.colorEnabled {
		for _, c := range []*color.Color{levelColor, tagColor, clock, source} {
			c.DisableColor()
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s %s",
		clock.Sprint(entry.Timestamp[11:19]),
		levelColor.Sprintf("%-5s", entry.Level),
		tagColor.Sprintf("[%-10s]", entry.Category),
		entry.Message)
	if entry.File != "" && entry.Line > 0 {
		b.WriteString(source.Sprintf(" (%s:%d)", entry.File, entry.Line))
	}
	b.WriteByte('\n')
	return b.String()
}

// Log writes at an explicit level. Fatal through Log does not exit.
func (l *Logger) Log(level LogLevel, category, message string) {
	l.log(level, category, message)
}

func (l *Logger) Debug(category, message string) {
	l.log(DEBUG, category, message)
}

func (l *Logger) Info(category, message string) {
	l.log(INFO, category, message)
}

func (l *Logger) Warn(category, message string) {
	l.log(WARN, category, message)
}

func (l *Logger) Error(category, message string) {
	l.log(ERROR, category, message)
}

func (l *Logger) Fatal(category, message string) {
	l.log(FATAL, category, message)
	l.exit(1)
}

// Domain helpers keep message shapes uniform per category.
func (l *Logger) LogQuery(operation, table string, rows int, took time.Duration) {
	l.Info("DATABASE", fmt.Sprintf("[%s] %s - %d rows (%s)", operation, table, rows, took.Round(time.Millisecond)))
}

func (l *Logger) LogAPI(method, path, status, duration string) {
	l.Info("API", fmt.Sprintf("%s %s - %s (%s)", method, path, status, duration))
}

func (l *Logger) LogExport(entity, filename string, rows int) {
	l.Info("EXPORT", fmt.Sprintf("[%s] %s - %d rows", entity, filename, rows))
}

func (l *Logger) LogCache(action, key, message string) {
	l.Debug("CACHE", fmt.Sprintf("[%s] %s - %s", action, key, message))
}

func (l *Logger) LogKafka(action, topic, message string) {
	l.Info("KAFKA", fmt.Sprintf("[%s] %s - %s", action, topic, message))
}

func (l *Logger) LogSecurity(event, message string) {
	l.Warn("SECURITY", fmt.Sprintf("[%s] %s", event, message))
}

func (l *Logger) Close() {
	if l.logFile != nil {
		l.Info("LOGGER", "Closing log file")
		l.logFile.Close()
	}
}
