package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config contains application configuration parameters
type Config struct {
	// Server configuration
	Port         string        `json:"port"`
	Host         string        `json:"host"`
	ReadTimeout  time.Duration `json:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout"`
	IdleTimeout  time.Duration `json:"idle_timeout"`

	// Telegram Bot configuration
	Token         string `json:"token"`
	WebhookURL    string `json:"webhook_url"`
	WebhookSecret string `json:"webhook_secret"`
	AdminToken    string `json:"admin_token"`

	// OpenAI configuration
	OpenAIKey       string        `json:"-"`
	OpenAIBaseURL   string        `json:"openai_base_url"`
	Model           string        `json:"model"`
	GenerateTimeout time.Duration `json:"generate_timeout"`

	// User store configuration
	UsersFile string `json:"users_file"`

	// Journal database configuration
	DBName          string        `json:"db_name"`
	DBPath          string        `json:"db_path"`
	MaxOpenConns    int           `json:"max_open_conns"`
	MaxIdleConns    int           `json:"max_idle_conns"`
	ConnMaxLifetime time.Duration `json:"conn_max_lifetime"`

	// App configuration
	Environment string `json:"environment"` // development, production
	LogLevel    string `json:"log_level"`   // debug, info, warn, error

	// Business logic configuration
	FreeRequests int `json:"free_requests"`

	// Rate limiting (per user, inbound generation requests)
	RateLimitPerMinute int `json:"rate_limit_per_minute"`
	RateLimitBurst     int `json:"rate_limit_burst"`
}

// NewConfig creates and returns a new configuration instance
func NewConfig() (*Config, error) {
	// .env is optional, deployments normally use real environment variables
	_ = godotenv.Load()

	cfg := &Config{
		// Server defaults
		Port:         ":8080",
		Host:         "0.0.0.0",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,

		// OpenAI defaults
		Model:           "gpt-3.5-turbo",
		GenerateTimeout: 30 * time.Second,

		// Store defaults
		UsersFile: "./data/users.json",

		// Journal database defaults
		DBName:          "journal.db",
		DBPath:          "./data/",
		MaxOpenConns:    25,
		MaxIdleConns:    5,
		ConnMaxLifetime: 5 * time.Minute,

		// App defaults
		Environment: "development",
		LogLevel:    "info",

		// Business defaults
		FreeRequests: 3,

		// Rate limiting defaults
		RateLimitPerMinute: 20,
		RateLimitBurst:     5,
	}

	// Override with environment variables if set
	if port := os.Getenv("PORT"); port != "" {
		if port[0] != ':' {
			cfg.Port = ":" + port
		} else {
			cfg.Port = port
		}
	}

	if host := os.Getenv("HOST"); host != "" {
		cfg.Host = host
	}

	if token := os.Getenv("BOT_TOKEN"); token != "" {
		cfg.Token = token
	}

	if webhookURL := os.Getenv("WEBHOOK_URL"); webhookURL != "" {
		cfg.WebhookURL = webhookURL
	}

	if secret := os.Getenv("WEBHOOK_SECRET"); secret != "" {
		cfg.WebhookSecret = secret
	}

	if adminToken := os.Getenv("ADMIN_TOKEN"); adminToken != "" {
		cfg.AdminToken = adminToken
	}

	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		cfg.OpenAIKey = key
	}

	if baseURL := os.Getenv("OPENAI_BASE_URL"); baseURL != "" {
		cfg.OpenAIBaseURL = baseURL
	}

	if model := os.Getenv("OPENAI_MODEL"); model != "" {
		cfg.Model = model
	}

	if usersFile := os.Getenv("USERS_FILE"); usersFile != "" {
		cfg.UsersFile = usersFile
	}

	if dbName := os.Getenv("DB_NAME"); dbName != "" {
		cfg.DBName = dbName
	}

	if dbPath := os.Getenv("DB_PATH"); dbPath != "" {
		cfg.DBPath = dbPath
	}

	if env := os.Getenv("ENVIRONMENT"); env != "" {
		cfg.Environment = env
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		cfg.LogLevel = logLevel
	}

	// Parse numeric environment variables
	if freeRequests := os.Getenv("FREE_REQUESTS"); freeRequests != "" {
		if n, err := strconv.Atoi(freeRequests); err == nil {
			cfg.FreeRequests = n
		}
	}

	if maxOpenConns := os.Getenv("DB_MAX_OPEN_CONNS"); maxOpenConns != "" {
		if conns, err := strconv.Atoi(maxOpenConns); err == nil {
			cfg.MaxOpenConns = conns
		}
	}

	if maxIdleConns := os.Getenv("DB_MAX_IDLE_CONNS"); maxIdleConns != "" {
		if conns, err := strconv.Atoi(maxIdleConns); err == nil {
			cfg.MaxIdleConns = conns
		}
	}

	if perMinute := os.Getenv("RATE_LIMIT_PER_MINUTE"); perMinute != "" {
		if n, err := strconv.Atoi(perMinute); err == nil {
			cfg.RateLimitPerMinute = n
		}
	}

	if burst := os.Getenv("RATE_LIMIT_BURST"); burst != "" {
		if n, err := strconv.Atoi(burst); err == nil {
			cfg.RateLimitBurst = n
		}
	}

	// Parse duration environment variables
	if readTimeout := os.Getenv("READ_TIMEOUT"); readTimeout != "" {
		if timeout, err := time.ParseDuration(readTimeout); err == nil {
			cfg.ReadTimeout = timeout
		}
	}

	if writeTimeout := os.Getenv("WRITE_TIMEOUT"); writeTimeout != "" {
		if timeout, err := time.ParseDuration(writeTimeout); err == nil {
			cfg.WriteTimeout = timeout
		}
	}

	if idleTimeout := os.Getenv("IDLE_TIMEOUT"); idleTimeout != "" {
		if timeout, err := time.ParseDuration(idleTimeout); err == nil {
			cfg.IdleTimeout = timeout
		}
	}

	if genTimeout := os.Getenv("GENERATE_TIMEOUT"); genTimeout != "" {
		if timeout, err := time.ParseDuration(genTimeout); err == nil {
			cfg.GenerateTimeout = timeout
		}
	}

	if connMaxLifetime := os.Getenv("DB_CONN_MAX_LIFETIME"); connMaxLifetime != "" {
		if lifetime, err := time.ParseDuration(connMaxLifetime); err == nil {
			cfg.ConnMaxLifetime = lifetime
		}
	}

	return cfg, nil
}

// IsDevelopment returns true if the environment is development
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if the environment is production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// GetDatabasePath returns the full path to the journal database file
func (c *Config) GetDatabasePath() string {
	return c.DBPath + c.DBName
}

// GetServerAddress returns the server address
func (c *Config) GetServerAddress() string {
	return c.Host + c.Port
}

// UseWebhook reports whether the bot should receive updates over a webhook
func (c *Config) UseWebhook() bool {
	return c.WebhookURL != ""
}

// ValidateConfig validates the configuration
func (c *Config) ValidateConfig() error {
	if c.Token == "" {
		return fmt.Errorf("telegram bot token is required")
	}

	// Development runs fall back to the mock generator without a key
	if c.IsProduction() && c.OpenAIKey == "" {
		return fmt.Errorf("openai api key is required")
	}

	if c.Model == "" {
		return fmt.Errorf("generation model is required")
	}

	if c.UsersFile == "" {
		return fmt.Errorf("users file path is required")
	}

	if c.DBName == "" {
		return fmt.Errorf("database name is required")
	}

	if c.FreeRequests < 0 {
		return fmt.Errorf("free requests cannot be negative")
	}

	if c.GenerateTimeout <= 0 {
		return fmt.Errorf("generate timeout must be positive")
	}

	return nil
}
