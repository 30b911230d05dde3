package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Mail      MailConfig
	Telemetry TelemetryConfig
	Reminder  ReminderConfig
}

type ServerConfig struct {
	Host     string
	Port     string
	LogLevel string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

// DSN renders the keyword/value connection string pgx expects. Sessions run in UTC.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s timezone=UTC",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret   string
	TokenTTL time.Duration
	Issuer   string
}

type MailConfig struct {
	APIKey    string
	FromEmail string
	FromName  string
}

type TelemetryConfig struct {
	Enabled       bool
	ServiceName   string
	CollectorAddr string
}

type ReminderConfig struct {
	// UseStream publishes reminders to the Redis stream instead of the in-process channel.
	UseStream     bool
	ConsumerID    string
	DedupTTL      time.Duration
	LookaheadDays int
}

var AppConfig *Config

func LoadConfig() *Config {
	v := newViper()

	AppConfig = &Config{
		Server:    getServerConfig(v),
		Database:  getDatabaseConfig(v),
		Redis:     getRedisConfig(v),
		JWT:       getJWTConfig(v),
		Mail:      getMailConfig(v),
		Telemetry: getTelemetryConfig(v),
		Reminder:  getReminderConfig(v),
	}

	return AppConfig
}

func LoadTestConfig() *Config {
	testConfig := &DatabaseConfig{
		Host:     "localhost",
		Port:     "5433", // test database runs on 5433
		User:     "postgres",
		Password: "postgres",
		DBName:   "test_db",
		SSLMode:  "disable",
		MaxConns: 10,
	}

	testRedisConfig := RedisConfig{
		Host:     "localhost",
		Port:     "6380", // test redis runs on 6380
		Password: "",
		DB:       1,
	}

	return &Config{
		Server:   ServerConfig{Host: "127.0.0.1", Port: "0", LogLevel: "debug"},
		Database: *testConfig,
		Redis:    testRedisConfig,
		JWT: JWTConfig{
			Secret:   "test-secret",
			TokenTTL: time.Hour,
			Issuer:   "event-ticketing-test",
		},
		Reminder: ReminderConfig{
			DedupTTL:      48 * time.Hour,
			LookaheadDays: 1,
		},
	}
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	// .env is optional, environment variables win anyway
	_ = v.ReadInConfig()
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "postgres")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 25)
	v.SetDefault("DB_MIN_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "change-me")
	v.SetDefault("JWT_TOKEN_TTL", "24h")
	v.SetDefault("JWT_ISSUER", "event-ticketing")

	v.SetDefault("MAILERSEND_API_KEY", "")
	v.SetDefault("MAIL_FROM_EMAIL", "no-reply@example.com")
	v.SetDefault("MAIL_FROM_NAME", "Event Management")

	v.SetDefault("OTEL_ENABLED", false)
	v.SetDefault("OTEL_SERVICE_NAME", "event-ticketing")
	v.SetDefault("OTEL_COLLECTOR_ADDR", "localhost:4317")

	v.SetDefault("REMINDER_USE_STREAM", true)
	v.SetDefault("REMINDER_CONSUMER_ID", "")
	v.SetDefault("REMINDER_DEDUP_TTL", "48h")
	v.SetDefault("REMINDER_LOOKAHEAD_DAYS", 1)
}

func getServerConfig(v *viper.Viper) ServerConfig {
	return ServerConfig{
		Host:     v.GetString("SERVER_HOST"),
		Port:     v.GetString("SERVER_PORT"),
		LogLevel: v.GetString("LOG_LEVEL"),
	}
}

func getDatabaseConfig(v *viper.Viper) DatabaseConfig {
	return DatabaseConfig{
		Host:     v.GetString("DB_HOST"),
		Port:     v.GetString("DB_PORT"),
		User:     v.GetString("DB_USER"),
		Password: v.GetString("DB_PASSWORD"),
		DBName:   v.GetString("DB_NAME"),
		SSLMode:  v.GetString("DB_SSL_MODE"),
		MaxConns: v.GetInt32("DB_MAX_CONNS"),
		MinConns: v.GetInt32("DB_MIN_CONNS"),
	}
}

func getRedisConfig(v *viper.Viper) RedisConfig {
	return RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetString("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}
}

func getJWTConfig(v *viper.Viper) JWTConfig {
	return JWTConfig{
		Secret:   v.GetString("JWT_SECRET"),
		TokenTTL: v.GetDuration("JWT_TOKEN_TTL"),
		Issuer:   v.GetString("JWT_ISSUER"),
	}
}

func getMailConfig(v *viper.Viper) MailConfig {
	return MailConfig{
		APIKey:    v.GetString("MAILERSEND_API_KEY"),
		FromEmail: v.GetString("MAIL_FROM_EMAIL"),
		FromName:  v.GetString("MAIL_FROM_NAME"),
	}
}

func getTelemetryConfig(v *viper.Viper) TelemetryConfig {
	return TelemetryConfig{
		Enabled:       v.GetBool("OTEL_ENABLED"),
		ServiceName:   v.GetString("OTEL_SERVICE_NAME"),
		CollectorAddr: v.GetString("OTEL_COLLECTOR_ADDR"),
	}
}

func getReminderConfig(v *viper.Viper) ReminderConfig {
	return ReminderConfig{
		UseStream:     v.GetBool("REMINDER_USE_STREAM"),
		ConsumerID:    v.GetString("REMINDER_CONSUMER_ID"),
		DedupTTL:      v.GetDuration("REMINDER_DEDUP_TTL"),
		LookaheadDays: v.GetInt("REMINDER_LOOKAHEAD_DAYS"),
	}
}
