package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseKV общий сценарий для всех бэкендов
func exerciseKV(t *testing.T, kv KVStorage) {
	t.Helper()
	ctx := context.Background()

	_, found, err := kv.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, kv.Set(ctx, LinksKey, `[{"code":"abc"}]`))
	require.NoError(t, kv.Set(ctx, LogsKey, `[]`))

	value, found, err := kv.Get(ctx, LinksKey)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[{"code":"abc"}]`, value)

	// полная перезапись
	require.NoError(t, kv.Set(ctx, LinksKey, `[]`))
	value, _, err = kv.Get(ctx, LinksKey)
	require.NoError(t, err)
	assert.Equal(t, `[]`, value)

	value, found, err = kv.Get(ctx, LogsKey)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[]`, value)
}

func TestMapStorage(t *testing.T) {
	exerciseKV(t, NewMapStorage())
}

func TestFileStorage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "short-url-db.json")
	fs, err := NewFileStorage(path)
	require.NoError(t, err)
	defer fs.Close()

	exerciseKV(t, fs)

	// данные переживают переоткрытие
	reopened, err := NewFileStorage(path)
	require.NoError(t, err)
	value, found, err := reopened.Get(context.Background(), LinksKey)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[]`, value)
}

func TestFileStorage_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0666))

	fs, err := NewFileStorage(path)
	require.NoError(t, err)

	_, found, err := fs.Get(context.Background(), LinksKey)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, fs.Set(context.Background(), LinksKey, "[]"))
	value, found, err := fs.Get(context.Background(), LinksKey)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "[]", value)
}

func TestSQLiteStorage(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "shortener.db")

	st, err := NewSQLiteStorage(ctx, path)
	require.NoError(t, err)
	exerciseKV(t, st)
	require.NoError(t, st.Ping(ctx))
	require.NoError(t, st.Close())

	// повторные миграции не ломают существующую базу
	st, err = NewSQLiteStorage(ctx, path)
	require.NoError(t, err)
	defer st.Close()
	value, found, err := st.Get(ctx, LinksKey)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[]`, value)
}

func TestPostgreSQLStorage(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("set TEST_DATABASE_DSN to run postgres storage test")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	st, err := NewPostgreSQLStorage(ctx, dsn)
	if err != nil {
		t.Skipf("cannot connect to db: %v", err)
	}
	defer st.Close()
	exerciseKV(t, st)
}

func TestRedisStorage(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDRESS")
	if addr == "" {
		t.Skip("set TEST_REDIS_ADDRESS to run redis storage test")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	st, err := NewRedisStorage(ctx, addr)
	if err != nil {
		t.Skipf("cannot connect to redis: %v", err)
	}
	defer st.Close()
	exerciseKV(t, st)
}

func TestNew(t *testing.T) {
	ctx := context.Background()

	kv, err := New(ctx, Options{})
	require.NoError(t, err)
	assert.IsType(t, &MapStorage{}, kv)

	kv, err = New(ctx, Options{FileStoragePath: filepath.Join(t.TempDir(), "db.json")})
	require.NoError(t, err)
	assert.IsType(t, &FileStorage{}, kv)

	kv, err = New(ctx, Options{
		FileStoragePath: filepath.Join(t.TempDir(), "db.json"),
		SQLitePath:      filepath.Join(t.TempDir(), "db.sqlite"),
	})
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStorage{}, kv)
	require.NoError(t, kv.Close())
}
