package logging

import (
	"bytes"
	"fmt"
)

// TextFormatter 文本格式化器
// 输出形如: 2006-01-02 15:04:05 INFO [Application] message key=value
type TextFormatter struct {
	IncludeTimestamp bool
	TimestampFormat  string
}

// NewTextFormatter 创建文本格式化器
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{
		IncludeTimestamp: true,
		TimestampFormat:  "2006-01-02 15:04:05",
	}
}

// Format 格式化日志
func (f *TextFormatter) Format(entry *LogEntry) ([]byte, error) {
	var buffer bytes.Buffer

	if f.IncludeTimestamp {
		buffer.WriteString(entry.Time.Format(f.TimestampFormat))
		buffer.WriteByte(' ')
	}

	buffer.WriteString(entry.Level.String())

	if entry.Category != "" {
		buffer.WriteString(" [")
		buffer.WriteString(entry.Category)
		buffer.WriteByte(']')
	}

	buffer.WriteByte(' ')
	buffer.WriteString(entry.Message)

	for _, field := range entry.Fields {
		fmt.Fprintf(&buffer, " %s=%v", field.Key, field.Value)
	}

	buffer.WriteByte('\n')
	return buffer.Bytes(), nil
}
