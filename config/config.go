package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string
	AppMode string
	LogMode string

	QueueDriver   string
	QueuePrefix   string
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	KafkaBrokers  string
	KafkaGroupID  string
	KafkaPollWait time.Duration

	AuditDriver string
	DBHost      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBPort      string

	OrderIdleInterval    time.Duration
	OrderBackoffInterval time.Duration
	StockIdleInterval    time.Duration
	StockBackoffInterval time.Duration
	ImageIdleInterval    time.Duration
	ImageBackoffInterval time.Duration
	OrderProcessingDelay time.Duration
	ImageProcessingDelay time.Duration
	LowStockThreshold    int

	S3Region     string
	S3Bucket     string
	S3AccessKey  string
	S3SecretKey  string
	S3Endpoint   string
	S3PublicBase string

	JWTSecret string
}

func LoadConfig() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	return FromEnv()
}

// FromEnv reads the configuration from the process environment only.
func FromEnv() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "8080"),
		AppMode: getEnv("APP_MODE", "debug"),
		LogMode: getEnv("LOG_MODE", "development"),

		QueueDriver:   strings.ToLower(getEnv("QUEUE_DRIVER", "redis")),
		QueuePrefix:   getEnv("QUEUE_PREFIX", "queue"),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),
		KafkaBrokers:  getEnv("KAFKA_BROKERS", "localhost:9092"),
		KafkaGroupID:  getEnv("KAFKA_GROUP_ID", "storefront-events"),
		KafkaPollWait: getEnvAsDuration("KAFKA_POLL_WAIT", time.Second),

		AuditDriver: strings.ToLower(getEnv("AUDIT_DRIVER", "postgres")),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", "postgres"),
		DBName:      getEnv("DB_NAME", "storefront"),
		DBPort:      getEnv("DB_PORT", "5432"),

		OrderIdleInterval:    getEnvAsDuration("ORDER_IDLE_INTERVAL", 5*time.Second),
		OrderBackoffInterval: getEnvAsDuration("ORDER_BACKOFF_INTERVAL", 10*time.Second),
		StockIdleInterval:    getEnvAsDuration("STOCK_IDLE_INTERVAL", 5*time.Second),
		StockBackoffInterval: getEnvAsDuration("STOCK_BACKOFF_INTERVAL", 10*time.Second),
		ImageIdleInterval:    getEnvAsDuration("IMAGE_IDLE_INTERVAL", 10*time.Second),
		ImageBackoffInterval: getEnvAsDuration("IMAGE_BACKOFF_INTERVAL", 15*time.Second),
		OrderProcessingDelay: getEnvAsDuration("ORDER_PROCESSING_DELAY", time.Second),
		ImageProcessingDelay: getEnvAsDuration("IMAGE_PROCESSING_DELAY", 2*time.Second),
		LowStockThreshold:    getEnvAsInt("LOW_STOCK_THRESHOLD", 10),

		S3Region:     getEnv("S3_REGION", ""),
		S3Bucket:     getEnv("S3_BUCKET", ""),
		S3AccessKey:  getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:  getEnv("S3_SECRET_KEY", ""),
		S3Endpoint:   getEnv("S3_ENDPOINT", ""),
		S3PublicBase: strings.TrimRight(getEnv("S3_PUBLIC_BASE", ""), "/"),

		JWTSecret: getEnv("JWT_SECRET", ""),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

// getEnvAsDuration accepts Go duration strings ("5s", "250ms") or a bare
// number of milliseconds.
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valueStr := strings.TrimSpace(getEnv(key, ""))
	if valueStr == "" {
		return fallback
	}
	if value, err := time.ParseDuration(valueStr); err == nil && value >= 0 {
		return value
	}
	if ms, err := strconv.Atoi(valueStr); err == nil && ms >= 0 {
		return time.Duration(ms) * time.Millisecond
	}
	return fallback
}
