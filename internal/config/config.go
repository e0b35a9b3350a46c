package config

import (
	"fmt"
	"os"
	"strings"
)

const (
	StoreMemory    = "memory"
	StoreFirestore = "firestore"
	StoreMySQL     = "mysql"
	StoreRedis     = "redis"

	EventsNone     = "none"
	EventsRabbitMQ = "rabbitmq"
	EventsKafka    = "kafka"
)

type Config struct {
	HTTPPort string `env:"PORT"`
	Store    string `env:"ORDER_STORE"`
	LogMode  string `env:"LOG_MODE"`

	FirestoreProject    string `env:"GOOGLE_CLOUD_PROJECT"`
	FirestoreCollection string `env:"FIRESTORE_COLLECTION"`

	MySQL MySQLConfig

	RedisAddr      string `env:"REDIS_ADDR"`
	RedisKeyPrefix string `env:"REDIS_KEY_PREFIX"`

	Events           string `env:"EVENTS_BACKEND"`
	RabbitMQURL      string `env:"RABBITMQ_URL"`
	RabbitMQExchange string `env:"RABBITMQ_EXCHANGE"`
	KafkaBrokers     string `env:"KAFKA_BROKERS"`
	KafkaTopic       string `env:"KAFKA_TOPIC"`

	OrderFunctionURL string `env:"ORDER_FUNCTION_URL"`
}

type MySQLConfig struct {
	User     string `env:"MYSQL_USER"`
	Password string `env:"MYSQL_PASSWORD"`
	Host     string `env:"MYSQL_HOST"`
	Port     string `env:"MYSQL_PORT"`
	Database string `env:"MYSQL_DATABASE"`
}

func (c MySQLConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		c.User, c.Password, c.Host, c.Port, c.Database)
}

func LoadConfig() (*Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (*Config, error) {
	get := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	project := get("GOOGLE_CLOUD_PROJECT", getenv("GCLOUD_PROJECT"))

	cfg := &Config{
		HTTPPort: get("PORT", "8080"),
		Store:    strings.ToLower(get("ORDER_STORE", "")),
		LogMode:  get("LOG_MODE", "development"),

		FirestoreProject:    project,
		FirestoreCollection: get("FIRESTORE_COLLECTION", "orders"),

		MySQL: MySQLConfig{
			User:     getenv("MYSQL_USER"),
			Password: getenv("MYSQL_PASSWORD"),
			Host:     get("MYSQL_HOST", "localhost"),
			Port:     get("MYSQL_PORT", "3306"),
			Database: getenv("MYSQL_DATABASE"),
		},

		RedisAddr:      get("REDIS_ADDR", "localhost:6379"),
		RedisKeyPrefix: get("REDIS_KEY_PREFIX", "orders"),

		Events:           strings.ToLower(get("EVENTS_BACKEND", EventsNone)),
		RabbitMQURL:      getenv("RABBITMQ_URL"),
		RabbitMQExchange: get("RABBITMQ_EXCHANGE", "order.exchange"),
		KafkaBrokers:     getenv("KAFKA_BROKERS"),
		KafkaTopic:       get("KAFKA_TOPIC", "orders.created"),

		OrderFunctionURL: get("ORDER_FUNCTION_URL", "http://localhost:8080"),
	}

	// No explicit store: managed credentials select Firestore, anything else
	// falls back to the in-process list.
	if cfg.Store == "" {
		if project != "" || getenv("GOOGLE_APPLICATION_CREDENTIALS") != "" {
			cfg.Store = StoreFirestore
		} else {
			cfg.Store = StoreMemory
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Store {
	case StoreMemory, StoreFirestore, StoreMySQL, StoreRedis:
	default:
		return fmt.Errorf("config: unknown ORDER_STORE %q", c.Store)
	}

	switch c.Events {
	case EventsNone:
	case EventsRabbitMQ:
		if c.RabbitMQURL == "" {
			return fmt.Errorf("config: RABBITMQ_URL is required for EVENTS_BACKEND=%s", c.Events)
		}
	case EventsKafka:
		if c.KafkaBrokers == "" {
			return fmt.Errorf("config: KAFKA_BROKERS is required for EVENTS_BACKEND=%s", c.Events)
		}
	default:
		return fmt.Errorf("config: unknown EVENTS_BACKEND %q", c.Events)
	}

	switch c.LogMode {
	case "development", "production":
	default:
		return fmt.Errorf("config: unknown LOG_MODE %q", c.LogMode)
	}

	if c.Store == StoreMySQL && c.MySQL.Database == "" {
		return fmt.Errorf("config: MYSQL_DATABASE is required for ORDER_STORE=%s", c.Store)
	}
	return nil
}

func (c *Config) IsLocal() bool {
	return c.Store == StoreMemory
}
