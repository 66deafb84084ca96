package storage

import (
	"context"
	"sync"
)

type MapStorage struct {
	mapping map[string]string
	mu      sync.RWMutex
}

func NewMapStorage() *MapStorage {
	return &MapStorage{
		mapping: make(map[string]string),
	}
}

func (ms *MapStorage) Get(_ context.Context, key string) (string, bool, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	value, ok := ms.mapping[key]
	return value, ok, nil
}

func (ms *MapStorage) Set(_ context.Context, key, value string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.mapping[key] = value
	return nil
}

func (ms *MapStorage) Close() error {
	return nil
}
