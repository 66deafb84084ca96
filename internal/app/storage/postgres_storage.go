package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Tokebay/shortener/internal/logger"
	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
)

type PostgreSQLStorage struct {
	sqlStorage
}

// NewPostgreSQLStorage подключается по DSN и накатывает миграции
func NewPostgreSQLStorage(ctx context.Context, dsn string) (*PostgreSQLStorage, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		logger.Log.Error("Error open connection to DB", zap.Error(err))
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if err := migrate(db, "postgres"); err != nil {
		db.Close()
		return nil, err
	}

	return &PostgreSQLStorage{sqlStorage{
		db:        db,
		selectSQL: `SELECT store_value FROM kv_store WHERE store_key = $1`,
		upsertSQL: `INSERT INTO kv_store (store_key, store_value) VALUES ($1, $2)
			ON CONFLICT (store_key) DO UPDATE SET store_value = EXCLUDED.store_value`,
	}}, nil
}
