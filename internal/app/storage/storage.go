package storage

import "context"

// Ключи, под которыми хранятся коллекции
const (
	LinksKey = "links"
	LogsKey  = "logs"
)

// KVStorage строковое хранилище ключ-значение. Значение всегда перезаписывается целиком.
type KVStorage interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Options выбор бэкенда. Приоритет: DSN, Redis, SQLite, файл, память.
type Options struct {
	DSN             string
	RedisAddress    string
	SQLitePath      string
	FileStoragePath string
}

func New(ctx context.Context, opts Options) (KVStorage, error) {
	var (
		kv  KVStorage
		err error
	)
	switch {
	case opts.DSN != "":
		kv, err = NewPostgreSQLStorage(ctx, opts.DSN)
	case opts.RedisAddress != "":
		kv, err = NewRedisStorage(ctx, opts.RedisAddress)
	case opts.SQLitePath != "":
		kv, err = NewSQLiteStorage(ctx, opts.SQLitePath)
	case opts.FileStoragePath != "":
		kv, err = NewFileStorage(opts.FileStoragePath)
	default:
		kv = NewMapStorage()
	}
	if err != nil {
		return nil, err
	}
	return kv, nil
}
