package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort             string
	DBHost               string
	DBPort               string
	DBUser               string
	DBPassword           string
	DBName               string
	DBSslMode            string
	JWTSecret            string
	KafkaHost            string
	KafkaSlotEventsTopic string
	ReconcileSchedule    string
	LogLevel             string
}

// LoadConfig reads the settings from the environment. Values from a .env file in
// the working directory are loaded first when the file exists; variables already
// set in the environment win.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	return Config{
		HTTPPort:             os.Getenv("HTTP_PORT"),
		DBHost:               os.Getenv("DB_HOST"),
		DBPort:               os.Getenv("DB_PORT"),
		DBUser:               os.Getenv("DB_USER"),
		DBPassword:           os.Getenv("DB_PASSWORD"),
		DBName:               os.Getenv("DB_NAME"),
		DBSslMode:            os.Getenv("DB_SSLMODE"),
		JWTSecret:            os.Getenv("JWT_SECRET"),
		KafkaHost:            os.Getenv("KAFKA_HOST"),
		KafkaSlotEventsTopic: os.Getenv("KAFKA_SLOT_EVENTS_TOPIC"),
		ReconcileSchedule:    os.Getenv("RECONCILE_SCHEDULE"),
		LogLevel:             os.Getenv("LOG_LEVEL"),
	}, nil
}

// DSN returns the PostgreSQL connection string for the configured database.
func (c Config) DSN() string {
	sslMode := c.DBSslMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, sslMode)
}

// KafkaBrokers splits KAFKA_HOST on commas. Empty means events are not sent to Kafka.
func (c Config) KafkaBrokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaHost, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// SlogLevel parses LOG_LEVEL, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Validate reports settings the service cannot start without.
func (c Config) Validate() error {
	var missing []string
	for name, value := range map[string]string{
		"HTTP_PORT":  c.HTTPPort,
		"DB_HOST":    c.DBHost,
		"DB_PORT":    c.DBPort,
		"DB_USER":    c.DBUser,
		"DB_NAME":    c.DBName,
		"JWT_SECRET": c.JWTSecret,
	} {
		if value == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return fmt.Errorf("missing required settings: %s", strings.Join(missing, ", "))
	}
	if len(c.KafkaBrokers()) > 0 && c.KafkaSlotEventsTopic == "" {
		return errors.New("KAFKA_SLOT_EVENTS_TOPIC is required when KAFKA_HOST is set")
	}
	return nil
}
