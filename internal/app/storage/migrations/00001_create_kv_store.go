package migrations

import (
	"database/sql"

	"github.com/pressly/goose"
)

func init() {
	goose.AddMigration(upCreateKVStore, downCreateKVStore)
}

func upCreateKVStore(tx *sql.Tx) error {
	_, err := tx.Exec(`
	CREATE TABLE IF NOT EXISTS kv_store
	(
		store_key   TEXT PRIMARY KEY,
		store_value TEXT NOT NULL
	)`)
	return err
}

func downCreateKVStore(tx *sql.Tx) error {
	_, err := tx.Exec(`DROP TABLE IF EXISTS kv_store`)
	return err
}
