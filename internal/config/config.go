package config

import (
	"regexp"
	"strings"
	"time"

	"payroll_backend/pkg/utils"

	"github.com/joho/godotenv"
)

// Config holds every process-wide setting. It is constructed exactly once at
// process entry and passed by reference into the layers that need it; there
// is no ambient global configuration anywhere else.
type Config struct {
	Port string

	DBHost       string
	DBPort       string
	DBUser       string
	DBPassword   string
	DBName       string
	DBSSLMode    string
	DBSchemaPath string

	// AppNamespace selects the tenant namespace for all collections. When
	// non-empty the database layer provisions a dedicated Postgres schema
	// named after it ("hosted" mode); when empty everything lives in the
	// flat public schema ("deployed" mode). Fixed at startup, never
	// changeable at runtime.
	AppNamespace string

	JWTSecret     string
	JWTExpiration time.Duration

	// AllowAnonymous enables guest sign-in. When false, the guest endpoint
	// answers with an operation-not-allowed error.
	AllowAnonymous bool

	CORSAllowedOrigins []string
}

// Load builds the configuration from the environment. A .env file is loaded
// first when present; real environment variables win over it.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		Port:         utils.Getenv("PORT", "8080"),
		DBHost:       utils.Getenv("DB_HOST", "localhost"),
		DBPort:       utils.Getenv("DB_PORT", "5432"),
		DBUser:       utils.Getenv("DB_USER", "payroll_user"),
		DBPassword:   utils.Getenv("DB_PASSWORD", "payroll_password"),
		DBName:       utils.Getenv("DB_NAME", "payroll_db"),
		DBSSLMode:    utils.Getenv("DB_SSLMODE", "disable"),
		DBSchemaPath: utils.Getenv("DB_SCHEMA_PATH", "db_schema.sql"),
		AppNamespace: utils.Getenv("APP_NAMESPACE", ""),

		JWTSecret:      utils.Getenv("JWT_SECRET", "change-me-in-production"),
		AllowAnonymous: utils.GetenvBool("ALLOW_ANONYMOUS", true),
	}

	jwtHours := utils.Getenv("JWT_EXPIRATION_HOURS", "72")
	if d, err := time.ParseDuration(jwtHours + "h"); err == nil {
		cfg.JWTExpiration = d
	} else {
		cfg.JWTExpiration = 72 * time.Hour
	}

	if origins := utils.Getenv("CORS_ALLOWED_ORIGINS", ""); origins != "" {
		cfg.CORSAllowedOrigins = strings.Split(origins, ",")
	} else {
		cfg.CORSAllowedOrigins = []string{"http://localhost:3000", "http://localhost:3001"}
	}

	return cfg
}

var namespaceCleaner = regexp.MustCompile(`[^a-zA-Z0-9_]`)

// NamespaceSchema returns the Postgres schema name for the configured app
// namespace, or empty when running in flat mode. Unsafe characters are
// replaced with underscores so the value can be used as an identifier.
func (c *Config) NamespaceSchema() string {
	if c.AppNamespace == "" {
		return ""
	}
	return "app_" + strings.ToLower(namespaceCleaner.ReplaceAllString(c.AppNamespace, "_"))
}
