package logging

import (
	"io"
	"os"
)

// LoggingBuilder 日志构建器
type LoggingBuilder struct {
	minimumLevel LogLevel
	formatter    Formatter
	output       io.Writer
}

// NewLoggingBuilder 创建日志构建器
func NewLoggingBuilder() *LoggingBuilder {
	return &LoggingBuilder{
		minimumLevel: LogLevelInfo,
		formatter:    NewTextFormatter(),
		output:       os.Stdout,
	}
}

// SetMinimumLevel 设置最小日志级别
func (b *LoggingBuilder) SetMinimumLevel(level LogLevel) *LoggingBuilder {
	b.minimumLevel = level
	return b
}

// UseJSON 使用 JSON 输出格式
func (b *LoggingBuilder) UseJSON() *LoggingBuilder {
	b.formatter = NewJSONFormatter()
	return b
}

// UseFormatter 使用自定义格式化器
func (b *LoggingBuilder) UseFormatter(formatter Formatter) *LoggingBuilder {
	b.formatter = formatter
	return b
}

// SetOutput 设置输出目标
func (b *LoggingBuilder) SetOutput(w io.Writer) *LoggingBuilder {
	b.output = w
	return b
}

// Build 构建日志记录器
func (b *LoggingBuilder) Build() Logger {
	return NewLogger(b.output, b.formatter, b.minimumLevel)
}
