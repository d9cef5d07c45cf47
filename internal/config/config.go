// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for our application
type Config struct {
	App       AppConfig
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Security  SecurityConfig
	Session   SessionConfig
	Messaging MessagingConfig
	Store     StoreConfig
	Upload    UploadConfig
	Seed      SeedConfig
	Logging   LoggingConfig
}

// AppConfig contains application-level configuration
type AppConfig struct {
	Name        string
	Version     string
	Environment string
	Debug       bool
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	RequestTimeout time.Duration
	MaxBodySize    int64
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Host         string
	Port         string
	Name         string
	User         string
	Password     string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

// RedisConfig contains Redis configuration
type RedisConfig struct {
	Host         string
	Port         string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
}

// JWTConfig contains admin token configuration
type JWTConfig struct {
	Secret            string
	AccessTokenExpiry time.Duration
	CookieName        string
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	BcryptCost         int
	RateLimitPerMinute int
	SecureCookies      bool
	TrustedProxies     []string
}

// SessionConfig controls the visitor session cookie and the lifetime of
// session-held state (cart, flash messages).
type SessionConfig struct {
	CookieName string
	TTL        time.Duration
}

// MessagingConfig contains the outbound WhatsApp provider configuration
type MessagingConfig struct {
	Provider            string
	TwilioAccountSID    string
	TwilioAuthToken     string
	TwilioBaseURL       string
	FromAddress         string
	MerchantAddress     string
	ChannelPrefix       string
	CustomerCountryCode string
	Timeout             time.Duration
}

// StoreConfig contains storefront presentation settings and the bank
// transfer details shown at checkout.
type StoreConfig struct {
	Name             string
	CurrencySymbol   string
	BankAccountName  string
	BankAccountNo    string
	BankIFSC         string
	BankName         string
	WhatsAppNumber   string
	PlaceholderEmail string
	LatestProducts   int
}

// UploadConfig contains product image upload configuration
type UploadConfig struct {
	Dir     string
	MaxSize int64
}

// SeedConfig contains the initial data created at startup
type SeedConfig struct {
	Enabled           bool
	AdminUsername     string
	AdminEmail        string
	AdminPassword     string
	DefaultCategories []string
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment variables")
	}

	config := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Glamozz Boutique"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
			Debug:       getEnvAsBool("APP_DEBUG", true),
		},
		Server: ServerConfig{
			Port:           getEnv("APP_PORT", "8080"),
			ReadTimeout:    getEnvAsDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:   getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:    getEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
			RequestTimeout: getEnvAsDuration("SERVER_REQUEST_TIMEOUT", 30*time.Second),
			MaxBodySize:    getEnvAsInt64("SERVER_MAX_BODY_SIZE", 10<<20),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			Name:         getEnv("DB_NAME", "boutique_db"),
			User:         getEnv("DB_USER", "boutique_user"),
			Password:     getEnv("DB_PASSWORD", "boutique_password"),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  getEnvAsDuration("DB_MAX_LIFETIME", 300*time.Second),
		},
		Redis: RedisConfig{
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         getEnv("REDIS_PORT", "6379"),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getEnvAsInt("REDIS_DB", 0),
			PoolSize:     getEnvAsInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvAsInt("REDIS_MIN_IDLE_CONNS", 5),
		},
		JWT: JWTConfig{
			Secret:            getEnv("JWT_SECRET", "change-this-secret-key-before-going-live"),
			AccessTokenExpiry: getEnvAsDuration("JWT_ACCESS_EXPIRE", 12*time.Hour),
			CookieName:        getEnv("JWT_COOKIE_NAME", "admin_token"),
		},
		Security: SecurityConfig{
			BcryptCost:         getEnvAsInt("BCRYPT_COST", 12),
			RateLimitPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 30),
			SecureCookies:      getEnvAsBool("SECURE_COOKIES", false),
			TrustedProxies:     getEnvAsSlice("TRUSTED_PROXIES", []string{}),
		},
		Session: SessionConfig{
			CookieName: getEnv("SESSION_COOKIE_NAME", "session_id"),
			TTL:        getEnvAsDuration("SESSION_TTL", 24*time.Hour),
		},
		Messaging: MessagingConfig{
			Provider:            getEnv("MESSAGING_PROVIDER", "log"),
			TwilioAccountSID:    getEnv("TWILIO_ACCOUNT_SID", ""),
			TwilioAuthToken:     getEnv("TWILIO_AUTH_TOKEN", ""),
			TwilioBaseURL:       getEnv("TWILIO_BASE_URL", "https://api.twilio.com"),
			FromAddress:         getEnv("TWILIO_WHATSAPP_FROM", "whatsapp:+14155238886"),
			MerchantAddress:     getEnv("MERCHANT_WHATSAPP", "whatsapp:+910000000000"),
			ChannelPrefix:       getEnv("MESSAGING_CHANNEL_PREFIX", "whatsapp:"),
			CustomerCountryCode: getEnv("CUSTOMER_COUNTRY_CODE", "+91"),
			Timeout:             getEnvAsDuration("MESSAGING_TIMEOUT", 10*time.Second),
		},
		Store: StoreConfig{
			Name:             getEnv("STORE_NAME", "Glamozz Boutique"),
			CurrencySymbol:   getEnv("STORE_CURRENCY_SYMBOL", "Rs."),
			BankAccountName:  getEnv("BANK_ACCOUNT_NAME", "Glamozz Boutique"),
			BankAccountNo:    getEnv("BANK_ACCOUNT_NUMBER", "123456789012"),
			BankIFSC:         getEnv("BANK_IFSC_CODE", "HDFC0001234"),
			BankName:         getEnv("BANK_NAME", "HDFC Bank"),
			WhatsAppNumber:   getEnv("STORE_WHATSAPP_NUMBER", "919345508442"),
			PlaceholderEmail: getEnv("STORE_PLACEHOLDER_EMAIL", "no-email@customer.com"),
			LatestProducts:   getEnvAsInt("STORE_LATEST_PRODUCTS", 6),
		},
		Upload: UploadConfig{
			Dir:     getEnv("UPLOAD_DIR", "./static/uploads"),
			MaxSize: getEnvAsInt64("UPLOAD_MAX_SIZE", 5<<20),
		},
		Seed: SeedConfig{
			Enabled:           getEnvAsBool("SEED_ENABLED", true),
			AdminUsername:     getEnv("SEED_ADMIN_USERNAME", "admin"),
			AdminEmail:        getEnv("SEED_ADMIN_EMAIL", "admin@example.com"),
			AdminPassword:     getEnv("SEED_ADMIN_PASSWORD", "admin123"),
			DefaultCategories: getEnvAsSlice("SEED_CATEGORIES", []string{"abaya:Abaya", "niqab:Niqab", "imported:Dubai Imported"}),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "debug"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters long")
	}

	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("DB_USER is required")
	}

	if c.Redis.Host == "" {
		return fmt.Errorf("REDIS_HOST is required")
	}

	if c.Server.Port == "" {
		return fmt.Errorf("APP_PORT is required")
	}

	switch c.Messaging.Provider {
	case "log":
	case "twilio":
		if c.Messaging.TwilioAccountSID == "" || c.Messaging.TwilioAuthToken == "" {
			return fmt.Errorf("TWILIO_ACCOUNT_SID and TWILIO_AUTH_TOKEN are required for the twilio provider")
		}
	default:
		return fmt.Errorf("unsupported MESSAGING_PROVIDER: %s", c.Messaging.Provider)
	}

	if c.Upload.Dir == "" {
		return fmt.Errorf("UPLOAD_DIR is required")
	}

	return nil
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// SeedCategories parses the "slug:Name" pairs of SEED_CATEGORIES.
// Entries without a name use the slug as the display name.
func (s SeedConfig) SeedCategories() [][2]string {
	var pairs [][2]string
	for _, raw := range s.DefaultCategories {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		slug, name, found := strings.Cut(raw, ":")
		if !found || strings.TrimSpace(name) == "" {
			name = slug
		}
		pairs = append(pairs, [2]string{strings.ToLower(strings.TrimSpace(slug)), strings.TrimSpace(name)})
	}
	return pairs
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}
