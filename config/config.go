package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
)

var (
	MAIN_ROUTES string
	APP_PORT    string

	// Shared-secret API key required on every route.
	APIKey string

	JWTSecret     string
	JWTExpiration int

	FrontendURL string

	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	MailFrom     string
	MailFromName string

	// Recipient of booking notifications.
	MaintenanceEmail string
	// Recipient of contact-form submissions.
	ContactEmail string

	AWSRegion       string
	AWSAccessKeyID  string
	AWSSecretKey    string
	S3Bucket        string
	S3KeyPrefix     string
	S3PublicBaseURL string

	LogLevel string

	OutboxEnabled             bool
	OutboxIntervalSeconds     int
	PlanExpiryIntervalSeconds int

	allowedOrigins map[string]bool
)

// LoadConfig reads the .env file and initializes the configuration variables.
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	// Server Configuration
	MAIN_ROUTES = getEnv("MAIN_ROUTES", "/api")
	APP_PORT = getEnv("APP_PORT", "4000")

	APIKey = getEnv("APP_API_KEY", "")

	// JWT Configuration
	JWTSecret = getEnv("JWT_SECRET", "supersecretkey")
	JWTExpiration = getEnvAsInt("JWT_EXPIRATION", 7*24*3600)

	FrontendURL = getEnv("FRONTEND_URL", "http://localhost:3000")

	// Database Configuration
	DBDriver = getEnv("DB_DRIVER", "postgres")
	DBHost = getEnv("DB_HOST", "localhost")
	DBPort = getEnv("DB_PORT", "5432")
	DBUser = getEnv("DB_USER", "postgres")
	DBPassword = getEnv("DB_PASSWORD", "postgres")
	DBName = getEnv("DB_NAME", "maintenance")

	// Mail Configuration
	SMTPHost = getEnv("SMTP_HOST", "")
	SMTPPort = getEnvAsInt("SMTP_PORT", 465)
	SMTPUser = getEnv("SMTP_USER", "")
	SMTPPassword = getEnv("SMTP_PASSWORD", "")
	MailFrom = getEnv("MAIL_FROM", "kuwait@infinitymedicalkwt.com")
	MailFromName = getEnv("MAIL_FROM_NAME", "Infinity Medical Kuwait")
	MaintenanceEmail = getEnv("MAINTENANCE_EMAIL", "maintenance@infinitymedicalkwt.com")
	ContactEmail = getEnv("CONTACT_EMAIL", MailFrom)

	// Object Storage Configuration
	AWSRegion = getEnv("AWS_REGION", "eu-west-1")
	AWSAccessKeyID = getEnv("AWS_ACCESS_KEY_ID", "")
	AWSSecretKey = getEnv("AWS_SECRET_ACCESS_KEY", "")
	S3Bucket = getEnv("S3_BUCKET", "")
	S3KeyPrefix = getEnv("S3_KEY_PREFIX", "job-sheets/")
	S3PublicBaseURL = getEnv("S3_PUBLIC_BASE_URL", "")

	LogLevel = getEnv("LOG_LEVEL", "info")

	OutboxEnabled = getEnvAsBool("OUTBOX_DISPATCH", true)
	OutboxIntervalSeconds = getEnvAsInt("OUTBOX_INTERVAL", 5)
	PlanExpiryIntervalSeconds = getEnvAsInt("PLAN_EXPIRY_INTERVAL", 3600)

	loadAllowedOrigins()
}

// getEnv reads an environment variable with a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt reads an environment variable as an integer.
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool reads an environment variable as a boolean.
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func loadAllowedOrigins() {
	allowedOrigins = make(map[string]bool)
	originsStr := getEnv("ALLOWED_ORIGINS", "")

	if originsStr == "" {
		allowedOrigins = map[string]bool{
			"http://localhost:3000": true,
			"http://127.0.0.1:3000": true,
		}
		return
	}

	origins := strings.Split(originsStr, ",")
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			allowedOrigins[origin] = true
		}
	}
}

func SetupCORS(app *fiber.App) {
	app.Use(func(c *fiber.Ctx) error {
		origin := c.Get("Origin")
		if allowedOrigins[origin] {
			c.Set("Access-Control-Allow-Origin", origin)
			c.Set("Access-Control-Allow-Methods", "GET,POST,PATCH,DELETE,OPTIONS")
			c.Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization, X-Api-Key")
			c.Set("Access-Control-Allow-Credentials", "true")
		}

		// Handle preflight request
		if c.Method() == fiber.MethodOptions {
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.Next()
	})
}
