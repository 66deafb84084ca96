package models

type Level string

const (
	LevelInfo  Level = "info"
	LevelError Level = "error"
)

type LogEntry struct {
	Timestamp string         `json:"timestamp"`
	Level     Level          `json:"level"`
	Message   string         `json:"message"`
	Data      map[string]any `json:"data"`
}
