package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/Tokebay/shortener/internal/logger"
	"github.com/Tokebay/shortener/internal/models"
	"go.uber.org/zap"
)

// LogSink журнал событий под ключом "logs". Записи только добавляются.
type LogSink struct {
	kv  KVStorage
	mu  sync.Mutex
	now func() time.Time
}

func NewLogSink(kv KVStorage) *LogSink {
	return &LogSink{kv: kv, now: time.Now}
}

func (s *LogSink) Load(ctx context.Context) ([]models.LogEntry, error) {
	raw, found, err := s.kv.Get(ctx, LogsKey)
	if err != nil {
		return nil, fmt.Errorf("load logs: %w", err)
	}
	entries := []models.LogEntry{}
	if !found {
		return entries, nil
	}
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		logger.Log.Warn("Corrupt logs collection, starting empty", zap.Error(err))
		return []models.LogEntry{}, nil
	}
	return entries, nil
}

func (s *LogSink) Save(ctx context.Context, entries []models.LogEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode logs: %w", err)
	}
	if err := s.kv.Set(ctx, LogsKey, string(data)); err != nil {
		return fmt.Errorf("save logs: %w", err)
	}
	return nil
}

// Record добавляет запись в журнал. Ошибки хранилища только логируются.
func (s *LogSink) Record(ctx context.Context, level models.Level, message string, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	entry := models.LogEntry{
		Timestamp: s.now().UTC().Format("2006-01-02T15:04:05.000Z"),
		Level:     level,
		Message:   message,
		Data:      data,
	}

	fields := []zap.Field{zap.String("sink_level", string(level)), zap.Any("data", data)}
	if level == models.LevelError {
		logger.Log.Warn(message, fields...)
	} else {
		logger.Log.Info(message, fields...)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.Load(ctx)
	if err != nil {
		logger.Log.Error("Error loading log sink", zap.Error(err))
		return
	}
	entries = append(entries, entry)
	if err := s.Save(ctx, entries); err != nil {
		logger.Log.Error("Error saving log sink", zap.Error(err))
	}
}
