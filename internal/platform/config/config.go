package config

import (
	"os"
	"strings"
	"time"
)

// Server captures process level configuration.
type Server struct {
	Addr                string
	DatabaseURL         string
	Redis               RedisConfig
	KafkaBrokers        string
	ConfirmationTopic   string
	ConfirmationCodeTTL time.Duration
	LogLevel            string
	MailFrom            string
}

// RedisConfig configures the confirmation code store client.
// An empty URL selects the in-memory store.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// ConfirmationCodeTTL bounds how long an emailed confirmation code stays valid.
var ConfirmationCodeTTL = 24 * time.Hour

// DefaultConfirmationTopic is where confirmation emails are published for the mail relay.
const DefaultConfirmationTopic = "signup.confirmation-emails"

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("SIGNUP_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	codeTTL := ConfirmationCodeTTL
	if v := os.Getenv("CONFIRMATION_CODE_TTL"); v != "" {
		if duration, err := time.ParseDuration(v); err == nil && duration > 0 {
			codeTTL = duration
		}
	}

	topic := os.Getenv("CONFIRMATION_TOPIC")
	if topic == "" {
		topic = DefaultConfirmationTopic
	}

	logLevel := strings.ToLower(os.Getenv("LOG_LEVEL"))
	if logLevel == "" {
		logLevel = "info"
	}

	mailFrom := os.Getenv("MAIL_FROM")
	if mailFrom == "" {
		mailFrom = "noreply@signup.local"
	}

	return Server{
		Addr:        addr,
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		KafkaBrokers:        os.Getenv("KAFKA_BROKERS"),
		ConfirmationTopic:   topic,
		ConfirmationCodeTTL: codeTTL,
		LogLevel:            logLevel,
		MailFrom:            mailFrom,
	}
}
