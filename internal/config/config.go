package config

import (
	"log"
	"os"
	"strconv"
)

type Credentials struct {
	Username string
	Password string
}

type Config struct {
	BillDir           string
	StoreAddress      string
	SeedCatalogFile   string
	Customer          Credentials
	Admin             Credentials
	PgDsn             string
	RabbitUri         string
	RabbitExchange    string
	OutboxBatchSize   int
	OutboxMaxRetry    int
	OutboxIntervalSec int
	MetricsTextfile   string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoiEnv(key string, def int) int {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("invalid int env %s=%s, using default %d", key, v, def)
		return def
	}
	return n
}

// Load reads the configuration from the environment. PG_DSN and
// RABBITMQ_URI are optional: without them events stay in memory and are
// only logged.
func Load() Config {
	return Config{
		BillDir:         getenv("BILL_DIR", "."),
		StoreAddress:    getenv("STORE_ADDRESS", "123, Taman University"),
		SeedCatalogFile: getenv("SEED_CATALOG_FILE", ""),
		Customer: Credentials{
			Username: getenv("CUSTOMER_USERNAME", "cust123"),
			Password: getenv("CUSTOMER_PASSWORD", "1234"),
		},
		Admin: Credentials{
			Username: getenv("ADMIN_USERNAME", "admin123"),
			Password: getenv("ADMIN_PASSWORD", "1234"),
		},
		PgDsn:             getenv("PG_DSN", ""),
		RabbitUri:         getenv("RABBITMQ_URI", ""),
		RabbitExchange:    getenv("RABBITMQ_EXCHANGE", "billing.events"),
		OutboxBatchSize:   atoiEnv("OUTBOX_BATCH_SIZE", 100),
		OutboxMaxRetry:    atoiEnv("OUTBOX_MAX_RETRY", 5),
		OutboxIntervalSec: atoiEnv("OUTBOX_INTERVAL_SEC", 5),
		MetricsTextfile:   getenv("METRICS_TEXTFILE", ""),
	}
}
