package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/fhuszti/way2enjoy-go/internal/client"
	"github.com/fhuszti/way2enjoy-go/internal/db"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Settings struct {
	APIKey      string
	APIEndpoint string
	HTTPTimeout time.Duration

	ServerPort   int
	JWTPublicKey string

	MariaDBDSN      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
	Buckets        []string

	RedisAddr         string
	RedisPassword     string
	WorkerConcurrency int
}

func Load() (*Settings, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found; proceeding with OS environment variables")
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("WAY2ENJOY_ENDPOINT", client.DefaultEndpoint)
	v.SetDefault("WAY2ENJOY_HTTP_TIMEOUT", 0)
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("MARIADB_MAX_OPEN_CONN", 10)
	v.SetDefault("MARIADB_MAX_IDLE_CONNS", 5)
	v.SetDefault("MARIADB_CONN_MAX_LIFETIME", 300)
	v.SetDefault("MINIO_USE_SSL", false)
	v.SetDefault("WORKER_CONCURRENCY", 1)

	if !v.IsSet("WAY2ENJOY_API_KEY") {
		return nil, fmt.Errorf("WAY2ENJOY_API_KEY is required")
	}
	if v.GetInt("WAY2ENJOY_HTTP_TIMEOUT") < 0 {
		return nil, fmt.Errorf("WAY2ENJOY_HTTP_TIMEOUT must not be negative")
	}
	if v.GetInt("WORKER_CONCURRENCY") < 1 {
		return nil, fmt.Errorf("WORKER_CONCURRENCY must be at least 1")
	}

	return &Settings{
		APIKey:      v.GetString("WAY2ENJOY_API_KEY"),
		APIEndpoint: v.GetString("WAY2ENJOY_ENDPOINT"),
		HTTPTimeout: time.Duration(v.GetInt("WAY2ENJOY_HTTP_TIMEOUT")) * time.Second,

		ServerPort:   v.GetInt("SERVER_PORT"),
		JWTPublicKey: v.GetString("JWT_PUBLIC_KEY"),

		MariaDBDSN:      v.GetString("MARIADB_DSN"),
		MaxOpenConns:    v.GetInt("MARIADB_MAX_OPEN_CONN"),
		MaxIdleConns:    v.GetInt("MARIADB_MAX_IDLE_CONNS"),
		ConnMaxLifetime: time.Duration(v.GetInt("MARIADB_CONN_MAX_LIFETIME")) * time.Second,

		MinioEndpoint:  v.GetString("MINIO_ENDPOINT"),
		MinioAccessKey: v.GetString("MINIO_ACCESS_KEY"),
		MinioSecretKey: v.GetString("MINIO_SECRET_KEY"),
		MinioUseSSL:    v.GetBool("MINIO_USE_SSL"),
		Buckets:        splitList(v.GetString("BUCKETS")),

		RedisAddr:         v.GetString("REDIS_ADDR"),
		RedisPassword:     v.GetString("REDIS_PASSWORD"),
		WorkerConcurrency: v.GetInt("WORKER_CONCURRENCY"),
	}, nil
}

// ClientOptions turns the API settings into client options.
func (s *Settings) ClientOptions() []client.Option {
	return []client.Option{
		client.WithEndpoint(s.APIEndpoint),
		client.WithTimeout(s.HTTPTimeout),
	}
}

// DBConfig returns the pool settings of the job ledger.
func (s *Settings) DBConfig() db.MariaDbConfig {
	return db.MariaDbConfig{
		DSN:             s.MariaDBDSN,
		MaxOpenConns:    s.MaxOpenConns,
		MaxIdleConns:    s.MaxIdleConns,
		ConnMaxLifetime: s.ConnMaxLifetime,
	}
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
