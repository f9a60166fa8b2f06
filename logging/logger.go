package logging

import (
	"io"
	"os"
	"sync"
	"time"
)

// LogLevel 日志级别
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
	LogLevelFatal
)

// String 返回日志级别的字符串表示
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	case LogLevelFatal:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// Field 日志字段
type Field struct {
	Key   string
	Value any
}

// Logger 日志接口
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	Fatal(msg string, fields ...Field)
	Log(level LogLevel, msg string, fields ...Field)
	WithFields(fields ...Field) Logger
	WithCategory(category string) Logger
}

// writerLogger 基于 io.Writer 的日志实现
type writerLogger struct {
	writer       io.Writer
	formatter    Formatter
	minimumLevel LogLevel
	category     string
	fields       []Field
	mu           *sync.Mutex // 所有派生 logger 共享同一把写锁
	exit         func(int)   // Fatal 的退出钩子，测试可替换
}

// NewLogger 创建日志记录器
func NewLogger(writer io.Writer, formatter Formatter, minimumLevel LogLevel) Logger {
	if writer == nil {
		writer = os.Stdout
	}
	if formatter == nil {
		formatter = NewTextFormatter()
	}
	return &writerLogger{
		writer:       writer,
		formatter:    formatter,
		minimumLevel: minimumLevel,
		mu:           &sync.Mutex{},
		exit:         os.Exit,
	}
}

func (l *writerLogger) Debug(msg string, fields ...Field) { l.Log(LogLevelDebug, msg, fields...) }
func (l *writerLogger) Info(msg string, fields ...Field)  { l.Log(LogLevelInfo, msg, fields...) }
func (l *writerLogger) Warn(msg string, fields ...Field)  { l.Log(LogLevelWarn, msg, fields...) }
func (l *writerLogger) Error(msg string, fields ...Field) { l.Log(LogLevelError, msg, fields...) }

func (l *writerLogger) Fatal(msg string, fields ...Field) {
	l.Log(LogLevelFatal, msg, fields...)
	l.exit(1)
}

func (l *writerLogger) Log(level LogLevel, msg string, fields ...Field) {
	if level < l.minimumLevel {
		return
	}

	entry := &LogEntry{
		Time:     time.Now(),
		Level:    level,
		Category: l.category,
		Message:  msg,
		Fields:   append(append([]Field(nil), l.fields...), fields...),
	}

	data, err := l.formatter.Format(entry)
	if err != nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = l.writer.Write(data)
}

func (l *writerLogger) WithFields(fields ...Field) Logger {
	clone := *l
	clone.fields = append(append([]Field(nil), l.fields...), fields...)
	return &clone
}

func (l *writerLogger) WithCategory(category string) Logger {
	clone := *l
	clone.category = category
	return &clone
}
