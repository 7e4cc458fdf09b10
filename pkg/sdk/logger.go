package sdk

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogType defines the output format of logs
type LogType string

const (
	StringLog LogType = "STRING"
	JSONLog   LogType = "JSON"
)

// LogContext holds contextual information for logging
type LogContext struct {
	UserID      string
	UserSession string
	Resource    string
	Action      string
	RequestID   string
}

// LogConfig defines the logger configuration
type LogConfig struct {
	LogType LogType
	Level   string
}

// Logger is the main logger instance
type Logger struct {
	zl      *zap.Logger
	context LogContext
}

// NewLogger creates a new logger writing to stdout with the given configuration and context
func NewLogger(cfg LogConfig, ctx LogContext) (*Logger, error) {
	level := zapcore.InfoLevel
	if cfg.Level != "" {
		var err error
		if level, err = zapcore.ParseLevel(cfg.Level); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		MessageKey:     "message",
		StacktraceKey:  zapcore.OmitKey,
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.RFC3339TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}

	var encoder zapcore.Encoder
	switch LogType(strings.ToUpper(string(cfg.LogType))) {
	case StringLog:
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	default:
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), level)
	return NewLoggerFromZap(zap.New(core), ctx), nil
}

// NewLoggerFromZap wraps an existing zap logger.
func NewLoggerFromZap(zl *zap.Logger, ctx LogContext) *Logger {
	return &Logger{zl: zl, context: ctx}
}

// WithContext returns a copy of the logger bound to ctx; the receiver is left untouched
func (l *Logger) WithContext(ctx LogContext) *Logger {
	return &Logger{zl: l.zl, context: ctx}
}

// Sync flushes buffered entries.
func (l *Logger) Sync() error {
	return l.zl.Sync()
}

func (l *Logger) fields(extra map[string]interface{}) []zap.Field {
	fields := make([]zap.Field, 0, 5+len(extra))
	if l.context.UserID != "" {
		fields = append(fields, zap.String("user_id", l.context.UserID))
	}
	if l.context.UserSession != "" {
		fields = append(fields, zap.String("user_session", l.context.UserSession))
	}
	if l.context.Resource != "" {
		fields = append(fields, zap.String("resource", l.context.Resource))
	}
	if l.context.Action != "" {
		fields = append(fields, zap.String("action", l.context.Action))
	}
	if l.context.RequestID != "" {
		fields = append(fields, zap.String("request_id", l.context.RequestID))
	}
	for k, v := range extra {
		fields = append(fields, zap.Any(k, v))
	}
	return fields
}

// Debug logs a debug message
func (l *Logger) Debug(msg string) {
	l.zl.Debug(msg, l.fields(nil)...)
}

// DebugWithFields logs a debug message with additional fields
func (l *Logger) DebugWithFields(msg string, fields map[string]interface{}) {
	l.zl.Debug(msg, l.fields(fields)...)
}

// Info logs an info message
func (l *Logger) Info(msg string) {
	l.zl.Info(msg, l.fields(nil)...)
}

// InfoWithFields logs an info message with additional fields
func (l *Logger) InfoWithFields(msg string, fields map[string]interface{}) {
	l.zl.Info(msg, l.fields(fields)...)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string) {
	l.zl.Warn(msg, l.fields(nil)...)
}

// WarnWithFields logs a warning message with additional fields
func (l *Logger) WarnWithFields(msg string, fields map[string]interface{}) {
	l.zl.Warn(msg, l.fields(fields)...)
}

// Error logs an error message
func (l *Logger) Error(msg string) {
	l.zl.Error(msg, l.fields(nil)...)
}

// ErrorWithFields logs an error message with additional fields
func (l *Logger) ErrorWithFields(msg string, fields map[string]interface{}) {
	l.zl.Error(msg, l.fields(fields)...)
}

// ErrorWithStackTrace logs err together with the caller's stack
func (l *Logger) ErrorWithStackTrace(err error) {
	if err == nil {
		return
	}

	fields := append(l.fields(nil), zap.Error(err), zap.StackSkip("stack_trace", 1))
	l.zl.Error("Error occurred", fields...)
}

// Printf is used by libraries expecting a printf-style debug sink (automaxprocs).
func (l *Logger) Printf(format string, args ...interface{}) {
	l.zl.Debug(fmt.Sprintf(format, args...), l.fields(nil)...)
}
