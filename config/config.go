package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv     string
	AppPort    string
	MainRoutes string

	Database DatabaseConfig

	// TxMaxAttempts bounds optimistic-transaction retries on BOM conflicts.
	TxMaxAttempts int
	SnowflakeNode int64

	JWTSecret string

	Mail MailConfig

	AllowedOrigins map[string]bool
}

type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	Path     string
}

type MailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	To       []string
}

// Enabled reports whether over-shipment mails can be sent.
func (m MailConfig) Enabled() bool {
	return m.Host != "" && len(m.To) > 0
}

// LoadConfig membaca file .env lalu environment variable
func LoadConfig() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	return Config{
		AppEnv:     getEnv("APP_ENV", "development"),
		AppPort:    getEnv("APP_PORT", "9000"),
		MainRoutes: getEnv("MAIN_ROUTES", "/api/v1"),

		Database: DatabaseConfig{
			Driver:   getEnv("DB_DRIVER", "postgres"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "parttrack"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "parttrack"),
			Path:     getEnv("DB_PATH", "parttrack.db"),
		},

		TxMaxAttempts: getEnvAsInt("TX_MAX_ATTEMPTS", 5),
		SnowflakeNode: int64(getEnvAsInt("SNOWFLAKE_NODE", 1)),

		JWTSecret: getEnv("JWT_SECRET", ""),

		Mail: MailConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnvAsInt("SMTP_PORT", 465),
			User:     getEnv("SMTP_USER", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("NOTIFY_FROM", "parttrack@localhost"),
			To:       splitList(getEnv("NOTIFY_TO", "")),
		},

		AllowedOrigins: loadAllowedOrigins(),
	}
}

// getEnv membaca environment variable dengan nilai default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// IsProduction picks the log format and turns off anonymous access.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production") || strings.EqualFold(c.AppEnv, "prod")
}

// DebugSQL turns on GORM statement logging.
func DebugSQL() bool {
	return getEnvAsBool("DB_DEBUG", false)
}

func loadAllowedOrigins() map[string]bool {
	origins := splitList(getEnv("ALLOWED_ORIGINS", ""))
	if len(origins) == 0 {
		return map[string]bool{"http://127.0.0.1:3000": true, "http://localhost:3000": true}
	}

	allowed := make(map[string]bool, len(origins))
	for _, origin := range origins {
		allowed[origin] = true
	}
	return allowed
}

func SetupCORS(app *fiber.App, allowedOrigins map[string]bool) {
	app.Use(func(c *fiber.Ctx) error {
		origin := c.Get("Origin")
		if allowedOrigins[origin] {
			c.Set("Access-Control-Allow-Origin", origin)
			c.Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
			c.Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization, X-Request-ID")
			c.Set("Access-Control-Allow-Credentials", "true")
		}

		if c.Method() == fiber.MethodOptions {
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.Next()
	})
}
