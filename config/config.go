package config

import (
	"flag"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddress       string
	BaseURL             string
	FileStoragePath     string
	DSN                 string
	SQLitePath          string
	RedisAddress        string
	LogLevel            string
	MaxBatchRows        int
	MaxGenerateAttempts int
}

// NewConfig флаги командной строки, поверх них переменные окружения (в том числе из .env)
func NewConfig() *Config {
	// .env не обязателен
	_ = godotenv.Load()

	cfg, err := Parse(os.Args[0], os.Args[1:], os.LookupEnv)
	if err != nil {
		// FlagSet уже напечатал ошибку и usage
		os.Exit(2)
	}
	return cfg
}

// Parse разбирает args и применяет переменные окружения через lookup
func Parse(name string, args []string, lookup func(string) (string, bool)) (*Config, error) {
	config := &Config{}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&config.ServerAddress, "a", "localhost:8080", "HTTP server address")
	fs.StringVar(&config.BaseURL, "b", "http://localhost:8080", "Base URL for shortened URLs")
	fs.StringVar(&config.FileStoragePath, "f", "", "Path to JSON file storage")
	fs.StringVar(&config.DSN, "d", "", "PostgreSQL DSN")
	fs.StringVar(&config.SQLitePath, "s", "", "Path to SQLite database")
	fs.StringVar(&config.RedisAddress, "r", "", "Redis address")
	fs.StringVar(&config.LogLevel, "l", "info", "Log level")
	fs.IntVar(&config.MaxBatchRows, "n", 5, "Max rows per shorten request")
	fs.IntVar(&config.MaxGenerateAttempts, "g", 10, "Max attempts to generate a free shortcode")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	overrideString(lookup, "SERVER_ADDRESS", &config.ServerAddress)
	overrideString(lookup, "BASE_URL", &config.BaseURL)
	overrideString(lookup, "FILE_STORAGE_PATH", &config.FileStoragePath)
	overrideString(lookup, "DATABASE_DSN", &config.DSN)
	overrideString(lookup, "SQLITE_PATH", &config.SQLitePath)
	overrideString(lookup, "REDIS_ADDRESS", &config.RedisAddress)
	overrideString(lookup, "LOG_LEVEL", &config.LogLevel)
	overrideInt(lookup, "MAX_BATCH_ROWS", &config.MaxBatchRows)
	overrideInt(lookup, "MAX_GENERATE_ATTEMPTS", &config.MaxGenerateAttempts)

	return config, nil
}

func overrideString(lookup func(string) (string, bool), key string, dst *string) {
	if v, ok := lookup(key); ok && v != "" {
		*dst = v
	}
}

func overrideInt(lookup func(string) (string, bool), key string, dst *int) {
	if v, ok := lookup(key); ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			*dst = n
		}
	}
}
