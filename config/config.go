package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
)

var ErrDatabaseNotConfigured = errors.New("database not configured")

type Config struct {
	Port          string
	StatsPort     string
	GatewayPort   string
	StoreDriver   string
	DatabaseURL   string
	DBHost        string
	DBPort        string
	DBName        string
	DBUser        string
	DBPassword    string
	RedisHost     string
	RedisPort     string
	KafkaBroker   string
	OrdersTopic   string
	PublicBaseURL string
	CORSOrigins   []string

	PreorderSvcURL string
	StatsSvcURL    string
}

// Load reads an optional .env file and then the process environment.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:           getEnv("PORT", "8000"),
		StatsPort:      getEnv("STATS_PORT", "8001"),
		GatewayPort:    getEnv("GATEWAY_PORT", "8080"),
		StoreDriver:    getEnv("STORE_DRIVER", "postgres"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		DBHost:         os.Getenv("DB_HOST"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBName:         os.Getenv("DB_NAME"),
		DBUser:         os.Getenv("DB_USER"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		RedisHost:      getEnv("REDIS_HOST", "localhost"),
		RedisPort:      getEnv("REDIS_PORT", "6379"),
		KafkaBroker:    os.Getenv("KAFKA_BROKER"),
		OrdersTopic:    getEnv("ORDERS_TOPIC", "orders"),
		PublicBaseURL:  strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:8000"), "/"),
		CORSOrigins:    splitList(getEnv("CORS_ORIGINS", "*")),
		PreorderSvcURL: getEnv("PREORDER_SVC_URL", "http://localhost:8000"),
		StatsSvcURL:    getEnv("STATS_SVC_URL", "http://localhost:8001"),
	}
}

// PostgresDSN returns "" when neither DATABASE_URL nor DB_HOST is set.
func (c Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	if c.DBHost == "" {
		return ""
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
}

func (c Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

// InitPostgres opens and pings the store. Unlike the Must* helpers it reports
// failures so the API can keep serving and answer per request.
func InitPostgres(cfg Config) (*sql.DB, error) {
	dsn := cfg.PostgresDSN()
	if dsn == "" {
		return nil, ErrDatabaseNotConfigured
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return db, nil
}

func MustInitRedis(cfg Config) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr(),
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	return client
}

// NewKafkaWriter returns nil when no broker is configured. The writer flushes
// each message right away and gives up quickly, since publishing happens
// inside the order request.
func NewKafkaWriter(cfg Config) *kafka.Writer {
	if cfg.KafkaBroker == "" {
		return nil
	}
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.KafkaBroker),
		Topic:                  cfg.OrdersTopic,
		Balancer:               &kafka.Hash{},
		BatchSize:              1,
		BatchTimeout:           5 * time.Millisecond,
		MaxAttempts:            2,
		WriteBackoffMin:        10 * time.Millisecond,
		WriteBackoffMax:        50 * time.Millisecond,
		WriteTimeout:           time.Second,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
}

func NewKafkaReader(cfg Config, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{cfg.KafkaBroker},
		Topic:   cfg.OrdersTopic,
		GroupID: groupID,
	})
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
