package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App         AppConfig
	Database    DatabaseConfig
	SMTP        SMTPConfig
	Payment     PaymentConfig
	Codes       CodeConfig
	Entitlement EntitlementConfig
}

type AppConfig struct {
	Port               string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	JwtSecret          string
	EventTopic         string // in-process audit topic
}

type DatabaseConfig struct {
	Connection string
	Timeout    time.Duration // bound for every settings/entitlement store call
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type PaymentConfig struct {
	KeyId     string
	KeySecret string
	Currency  string
	Timeout   time.Duration
}

// CodeConfig holds the admin and developer-trial secrets. Either the plain
// secret or its hash may be set; both may be empty.
type CodeConfig struct {
	AdminSecret     string
	AdminHash       string
	DeveloperSecret string
	DeveloperHash   string
}

type EntitlementConfig struct {
	GuestStore      string // "memory" or "redis"
	GuestSessionTTL time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:9002"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:9002"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			JwtSecret:          getEnv("JWT_SECRET", ""),
			EventTopic:         getEnv("AUDIT_EVENT_TOPIC", "ENTITLEMENT_AUDIT"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
			Timeout:    getEnvAsDuration("SETTINGS_STORE_TIMEOUT", 3*time.Second),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "DocGentor"),
		},
		Payment: PaymentConfig{
			KeyId:     getEnv("RAZORPAY_KEY_ID", ""),
			KeySecret: getEnv("RAZORPAY_KEY_SECRET", ""),
			Currency:  getEnv("PAYMENT_CURRENCY", "INR"),
			Timeout:   getEnvAsDuration("PAYMENT_TIMEOUT", 10*time.Second),
		},
		Codes: CodeConfig{
			AdminSecret:     getEnv("ADMIN_SECRET_CODE", ""),
			AdminHash:       getEnv("ADMIN_CODE_HASH", ""),
			DeveloperSecret: getEnv("DEVELOPER_TRIAL_CODE", ""),
			DeveloperHash:   getEnv("DEVELOPER_CODE_HASH", ""),
		},
		Entitlement: EntitlementConfig{
			GuestStore:      getEnv("GUEST_STORE", "memory"),
			GuestSessionTTL: getEnvAsDuration("GUEST_SESSION_TTL", 2*time.Hour),
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

// getEnvAsDuration accepts Go duration strings ("5s") or plain seconds ("5").
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if strValue == "" {
		return fallback
	}
	if d, err := time.ParseDuration(strValue); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(strValue); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
