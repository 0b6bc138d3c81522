package adapters

import (
	"io"
	"log"
	"os"
)

// PrintLoggerAdapter implements LoggerAdapter on top of a standard log.Logger.
type PrintLoggerAdapter struct {
	level  LogLevel
	logger *log.Logger
}

var _ LoggerAdapter = (*PrintLoggerAdapter)(nil)

// NewPrintLoggerAdapter creates a logger writing to stderr at the specified level.
func NewPrintLoggerAdapter(level LogLevel) *PrintLoggerAdapter {
	return NewWriterLoggerAdapter(os.Stderr, level)
}

// NewWriterLoggerAdapter creates a logger writing to w at the specified level.
func NewWriterLoggerAdapter(w io.Writer, level LogLevel) *PrintLoggerAdapter {
	if _, ok := levelOrder[level]; !ok {
		level = LogLevelWarn
	}
	return &PrintLoggerAdapter{
		level:  level,
		logger: log.New(w, "", log.LstdFlags),
	}
}

func (p *PrintLoggerAdapter) shouldLog(level LogLevel) bool {
	if p.level == LogLevelNone {
		return false
	}
	return levelOrder[level] >= levelOrder[p.level]
}

func (p *PrintLoggerAdapter) print(level LogLevel, message string, args []any) {
	if p.shouldLog(level) {
		p.logger.Printf("["+string(level)+"] [Ripple] "+message, args...)
	}
}

func (p *PrintLoggerAdapter) Debug(message string, args ...any) {
	p.print(LogLevelDebug, message, args)
}

func (p *PrintLoggerAdapter) Info(message string, args ...any) {
	p.print(LogLevelInfo, message, args)
}

func (p *PrintLoggerAdapter) Warn(message string, args ...any) {
	p.print(LogLevelWarn, message, args)
}

func (p *PrintLoggerAdapter) Error(message string, args ...any) {
	p.print(LogLevelError, message, args)
}
