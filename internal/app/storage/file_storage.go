package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/Tokebay/shortener/internal/logger"
	"go.uber.org/zap"
)

// FileStorage держит все ключи в одном JSON-файле, каждый Set перезаписывает файл целиком.
type FileStorage struct {
	filePath string
	mu       sync.Mutex
}

func NewFileStorage(filePath string) (*FileStorage, error) {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	file, err := os.OpenFile(filePath, os.O_RDONLY|os.O_CREATE, 0666)
	if err != nil {
		return nil, fmt.Errorf("open storage file: %w", err)
	}
	if err := file.Close(); err != nil {
		return nil, err
	}

	return &FileStorage{filePath: filePath}, nil
}

func (fs *FileStorage) Get(_ context.Context, key string) (string, bool, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	data, err := fs.LoadInitialData()
	if err != nil {
		return "", false, err
	}
	value, ok := data[key]
	return value, ok, nil
}

func (fs *FileStorage) Set(_ context.Context, key, value string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	data, err := fs.LoadInitialData()
	if err != nil {
		return err
	}
	data[key] = value
	return fs.WriteToFile(data)
}

// LoadInitialData читает файл целиком. Пустой или битый файл считается пустым хранилищем.
func (fs *FileStorage) LoadInitialData() (map[string]string, error) {
	file, err := os.Open(fs.filePath)
	if errors.Is(err, os.ErrNotExist) {
		return make(map[string]string), nil
	}
	if err != nil {
		logger.Log.Error("Error opening file for reading", zap.Error(err))
		return nil, err
	}
	defer file.Close()

	data := make(map[string]string)
	if err := json.NewDecoder(file).Decode(&data); err != nil {
		if !errors.Is(err, io.EOF) {
			logger.Log.Warn("Error decoding data from file", zap.String("path", fs.filePath), zap.Error(err))
		}
		return make(map[string]string), nil
	}
	return data, nil
}

func (fs *FileStorage) WriteToFile(data map[string]string) error {
	file, err := os.OpenFile(fs.filePath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0666)
	if err != nil {
		logger.Log.Error("Error opening file for writing", zap.Error(err))
		return err
	}
	defer file.Close()

	if err := json.NewEncoder(file).Encode(data); err != nil {
		logger.Log.Error("Error encoding data to file", zap.Error(err))
		return err
	}
	return file.Sync()
}

func (fs *FileStorage) Close() error {
	return nil
}
