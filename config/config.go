package config

import (
	"errors"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Name          string
		Port          string
		CorsOrigin    string
		JwtSecret     string
		SessionTTL    time.Duration
		SecureCookies bool
	}
	Mongo struct {
		Uri          string
		Database     string
		Transactions bool
		Timeout      time.Duration
	}
	// Database is the MySQL reaction audit log. Empty Dsn disables it.
	Database struct {
		Dsn          string
		MaxIdleConns int
		MaxOpenConns int
	}
	Redis struct {
		Addr     string
		DB       int
		Password string
	}
	// RabbitMQ carries reaction events to the audit consumer. Empty Url disables it.
	RabbitMQ struct {
		Url   string
		Queue string
	}
}

func InitConfig() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath("./config")

	viper.SetEnvPrefix("tuiter")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Fatalf("Error reading config file: %v", err)
		}
		log.Println("config file not found, using defaults and environment")
	}

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		log.Fatalf("Unable to decode into struct: %v", err)
	}

	// secrets never live in the yml file
	cfg.App.JwtSecret = getEnvOrDefault("JWT_SECRET", cfg.App.JwtSecret)
	cfg.App.CorsOrigin = getEnvOrDefault("CORS_ORIGIN", cfg.App.CorsOrigin)
	if port := os.Getenv("PORT"); port != "" {
		cfg.App.Port = ":" + strings.TrimPrefix(port, ":")
	}

	return cfg
}

func setDefaults() {
	viper.SetDefault("app.name", "tuiter")
	viper.SetDefault("app.port", ":4000")
	viper.SetDefault("app.corsOrigin", "http://localhost:3000")
	viper.SetDefault("app.jwtSecret", "change-me")
	viper.SetDefault("app.sessionTTL", "24h")
	viper.SetDefault("app.secureCookies", false)

	viper.SetDefault("mongo.uri", "mongodb://localhost:27017")
	viper.SetDefault("mongo.database", "tuiter")
	viper.SetDefault("mongo.transactions", false)
	viper.SetDefault("mongo.timeout", "10s")

	viper.SetDefault("database.dsn", "")
	viper.SetDefault("database.maxIdleConns", 10)
	viper.SetDefault("database.maxOpenConns", 100)

	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.password", "")

	viper.SetDefault("rabbitmq.url", "")
	viper.SetDefault("rabbitmq.queue", "tuiter.reactions")
}

// getEnvOrDefault 获取环境变量，如果不存在则返回默认值
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
