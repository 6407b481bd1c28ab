package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPostgresDSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{
			name: "database url wins",
			cfg:  Config{DatabaseURL: "postgres://u:p@db/preorder", DBHost: "ignored"},
			want: "postgres://u:p@db/preorder",
		},
		{
			name: "discrete fields",
			cfg:  Config{DBHost: "db", DBPort: "5432", DBUser: "u", DBPassword: "p", DBName: "preorder"},
			want: "host=db port=5432 user=u password=p dbname=preorder sslmode=disable",
		},
		{
			name: "unconfigured",
			cfg:  Config{},
			want: "",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.want, testCase.cfg.PostgresDSN())
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("STATS_PORT", "")
	t.Setenv("GATEWAY_PORT", "")
	t.Setenv("ORDERS_TOPIC", "")
	t.Setenv("PUBLIC_BASE_URL", "https://preorder.example.com/")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")

	cfg := Load()

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "8001", cfg.StatsPort)
	assert.Equal(t, "8080", cfg.GatewayPort)
	assert.Equal(t, "orders", cfg.OrdersTopic)
	assert.Equal(t, "https://preorder.example.com", cfg.PublicBaseURL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
}

func TestInitPostgres_Unconfigured(t *testing.T) {
	db, err := InitPostgres(Config{})
	assert.Nil(t, db)
	assert.ErrorIs(t, err, ErrDatabaseNotConfigured)
}

func TestNewKafkaWriter_NoBroker(t *testing.T) {
	assert.Nil(t, NewKafkaWriter(Config{}))

	writer := NewKafkaWriter(Config{KafkaBroker: "kafka:9092", OrdersTopic: "orders"})
	if assert.NotNil(t, writer) {
		assert.Equal(t, "orders", writer.Topic)
		assert.Equal(t, 1, writer.BatchSize)
		assert.LessOrEqual(t, writer.BatchTimeout, 10*time.Millisecond)
		assert.LessOrEqual(t, writer.MaxAttempts, 3)
		assert.LessOrEqual(t, writer.WriteBackoffMax, 100*time.Millisecond)
	}
}
