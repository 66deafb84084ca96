package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Tokebay/shortener/internal/logger"
	"github.com/pressly/goose"
	"go.uber.org/zap"

	// регистрирует миграцию kv_store
	_ "github.com/Tokebay/shortener/internal/app/storage/migrations"
)

// migrationsDir goose ищет в нём *.sql, Go-миграции регистрируются через init
const migrationsDir = "."

// sqlStorage общая часть PostgreSQL и SQLite хранилищ поверх таблицы kv_store
type sqlStorage struct {
	db        *sql.DB
	selectSQL string
	upsertSQL string
}

func migrate(db *sql.DB, dialect string) error {
	if err := goose.SetDialect(dialect); err != nil {
		return err
	}
	if err := goose.Up(db, migrationsDir); err != nil {
		logger.Log.Error("Error applying migrations", zap.String("dialect", dialect), zap.Error(err))
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

func (s *sqlStorage) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, s.selectSQL, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		logger.Log.Error("Error select value", zap.String("key", key), zap.Error(err))
		return "", false, err
	}
	return value, true, nil
}

func (s *sqlStorage) Set(ctx context.Context, key, value string) error {
	if _, err := s.db.ExecContext(ctx, s.upsertSQL, key, value); err != nil {
		logger.Log.Error("Error upsert value", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

func (s *sqlStorage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *sqlStorage) Close() error {
	return s.db.Close()
}
