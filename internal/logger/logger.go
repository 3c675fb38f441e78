package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
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

type LogEntry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Category  string `json:"category"`
	Message   string `json:"message"`
	File      string `json:"file,omitempty"`
	Line      int    `json:"line,omitempty"`
}

// Logger writes colored, category-tagged lines to the terminal and JSON
// entries to a daily log file.
type Logger struct {
	terminal io.Writer
	logFile  *os.File
}

// NewLogger creates the logs directory and opens today's log file. The
// process cannot run blind, so failures here are fatal.
func NewLogger() *Logger {
	if err := os.MkdirAll("logs", 0755); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logs directory: %v\n", err)
		os.Exit(1)
	}

	name := fmt.Sprintf("logs/booking-service-%s.log", time.Now().Format("2006-01-02"))
	logFile, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
		os.Exit(1)
	}

	l := &Logger{terminal: os.Stdout, logFile: logFile}
	l.Info("LOGGER", fmt.Sprintf("logging to %s", name))
	return l
}

// Discard returns a logger that drops everything. Used by tests.
func Discard() *Logger {
	return &Logger{terminal: io.Discard}
}

func (l *Logger) log(level LogLevel, category, message string) {
	_, file, line, ok := runtime.Caller(2)
	if ok {
		file = filepath.Base(file)
	}

	entry := LogEntry{
		Timestamp: time.Now().UTC().Format("2006-01-02T15:04:05.000Z"),
		Level:     levelString(level),
		Category:  strings.ToUpper(category),
		Message:   message,
		File:      file,
		Line:      line,
	}

	fmt.Fprint(l.terminal, l.formatTerminal(entry))

	if l.logFile != nil {
		jsonBytes, _ := json.Marshal(entry)
		l.logFile.Write(append(jsonBytes, '\n'))
	}
}

func (l *Logger) formatTerminal(entry LogEntry) string {
	var levelColor *color.Color
	switch entry.Level {
	case "DEBUG":
		levelColor = color.New(color.FgCyan)
	case "INFO":
		levelColor = color.New(color.FgGreen)
	case "WARN":
		levelColor = color.New(color.FgYellow)
	case "ERROR", "FATAL":
		levelColor = color.New(color.FgRed)
	default:
		levelColor = color.New(color.FgWhite)
	}

	timeStr := color.New(color.FgBlue).Sprint(entry.Timestamp[11:19])
	levelStr := levelColor.Sprintf("%-5s", entry.Level)
	categoryStr := color.New(color.Bold).Sprintf("[%-10s]", entry.Category)
	fileInfo := ""
	if entry.File != "" && entry.Line > 0 {
		fileInfo = color.New(color.FgMagenta).Sprintf(" (%s:%d)", entry.File, entry.Line)
	}

	return fmt.Sprintf("%s %s %s %s%s\n", timeStr, levelStr, categoryStr, entry.Message, fileInfo)
}

func levelString(level LogLevel) string {
	switch level {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	case FATAL:
		return "FATAL"
	}
	return "INFO"
}

func (l *Logger) Debug(category, message string) { l.log(DEBUG, category, message) }
func (l *Logger) Info(category, message string)  { l.log(INFO, category, message) }
func (l *Logger) Warn(category, message string)  { l.log(WARN, category, message) }
func (l *Logger) Error(category, message string) { l.log(ERROR, category, message) }

func (l *Logger) Fatal(category, message string) {
	l.log(FATAL, category, message)
	os.Exit(1)
}

// Specialized helpers for the main components.

func (l *Logger) LogBooking(action, bookingID, message string) {
	l.Info("BOOKING", fmt.Sprintf("[%s] %s - %s", action, bookingID, message))
}

func (l *Logger) LogLedger(action, eventID, message string) {
	l.Info("LEDGER", fmt.Sprintf("[%s] %s - %s", action, eventID, message))
}

func (l *Logger) LogAPI(method, path, status string) {
	l.Info("API", fmt.Sprintf("%s %s - %s", method, path, status))
}

func (l *Logger) LogKafka(action, topic, message string) {
	l.Info("KAFKA", fmt.Sprintf("[%s] %s - %s", action, topic, message))
}

func (l *Logger) Close() {
	if l.logFile != nil {
		l.logFile.Close()
	}
}
