package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Tokebay/shortener/internal/logger"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

type SQLiteStorage struct {
	sqlStorage
}

func NewSQLiteStorage(ctx context.Context, path string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		logger.Log.Error("Error open sqlite database", zap.String("path", path), zap.Error(err))
		return nil, err
	}
	// один писатель, иначе SQLITE_BUSY
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if err := migrate(db, "sqlite3"); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStorage{sqlStorage{
		db:        db,
		selectSQL: `SELECT store_value FROM kv_store WHERE store_key = ?`,
		upsertSQL: `INSERT INTO kv_store (store_key, store_value) VALUES (?, ?)
			ON CONFLICT (store_key) DO UPDATE SET store_value = excluded.store_value`,
	}}, nil
}
