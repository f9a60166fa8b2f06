package logging

import (
	"encoding/json"
)

// JSONFormatter JSON 格式化器，每个条目输出一行 JSON 对象
type JSONFormatter struct {
	TimestampFormat string
}

// NewJSONFormatter 创建 JSON 格式化器
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
	}
}

// Format 格式化日志
func (f *JSONFormatter) Format(entry *LogEntry) ([]byte, error) {
	payload := make(map[string]any, len(entry.Fields)+4)
	payload["time"] = entry.Time.Format(f.TimestampFormat)
	payload["level"] = entry.Level.String()
	payload["message"] = entry.Message
	if entry.Category != "" {
		payload["category"] = entry.Category
	}
	for _, field := range entry.Fields {
		payload[field.Key] = field.Value
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
