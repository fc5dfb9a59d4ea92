package config

import (
	"testing"
	"time"
)

func TestNewConfigDefaults(t *testing.T) {
	// Shield the defaults from whatever the outer environment carries
	for _, key := range []string{"PORT", "ENVIRONMENT", "WEBHOOK_URL", "FREE_REQUESTS", "USERS_FILE", "GENERATE_TIMEOUT"} {
		t.Setenv(key, "")
	}

	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	if cfg.Port != ":8080" {
		t.Errorf("Port = %q, want :8080", cfg.Port)
	}
	if cfg.GenerateTimeout != 30*time.Second {
		t.Errorf("GenerateTimeout = %v, want 30s", cfg.GenerateTimeout)
	}
	if cfg.FreeRequests != 3 {
		t.Errorf("FreeRequests = %d, want 3", cfg.FreeRequests)
	}
	if cfg.UsersFile != "./data/users.json" {
		t.Errorf("UsersFile = %q", cfg.UsersFile)
	}
	if !cfg.IsDevelopment() {
		t.Errorf("Environment = %q, want development by default", cfg.Environment)
	}
	if cfg.UseWebhook() {
		t.Error("UseWebhook should be false without WEBHOOK_URL")
	}
}

func TestNewConfigEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("WEBHOOK_URL", "https://bot.example.com/webhook")
	t.Setenv("OPENAI_MODEL", "gpt-4o")
	t.Setenv("FREE_REQUESTS", "5")
	t.Setenv("GENERATE_TIMEOUT", "10s")

	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	// A bare port number gets the leading colon added
	if cfg.Port != ":9090" {
		t.Errorf("Port = %q, want :9090", cfg.Port)
	}
	if cfg.Token != "123:abc" {
		t.Errorf("Token = %q", cfg.Token)
	}
	if !cfg.UseWebhook() {
		t.Error("UseWebhook should be true with WEBHOOK_URL set")
	}
	if cfg.Model != "gpt-4o" {
		t.Errorf("Model = %q", cfg.Model)
	}
	if cfg.FreeRequests != 5 {
		t.Errorf("FreeRequests = %d, want 5", cfg.FreeRequests)
	}
	if cfg.GenerateTimeout != 10*time.Second {
		t.Errorf("GenerateTimeout = %v, want 10s", cfg.GenerateTimeout)
	}
}

func TestNewConfigIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("FREE_REQUESTS", "many")
	t.Setenv("GENERATE_TIMEOUT", "soon")

	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	if cfg.FreeRequests != 3 {
		t.Errorf("FreeRequests = %d, want default 3", cfg.FreeRequests)
	}
	if cfg.GenerateTimeout != 30*time.Second {
		t.Errorf("GenerateTimeout = %v, want default 30s", cfg.GenerateTimeout)
	}
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Token:           "123:abc",
			Model:           "gpt-3.5-turbo",
			UsersFile:       "./data/users.json",
			DBName:          "journal.db",
			FreeRequests:    3,
			GenerateTimeout: 30 * time.Second,
			Environment:     "development",
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid development", func(c *Config) {}, false},
		{"missing token", func(c *Config) { c.Token = "" }, true},
		{"missing model", func(c *Config) { c.Model = "" }, true},
		{"missing users file", func(c *Config) { c.UsersFile = "" }, true},
		{"negative free requests", func(c *Config) { c.FreeRequests = -1 }, true},
		{"zero generate timeout", func(c *Config) { c.GenerateTimeout = 0 }, true},
		{"production without openai key", func(c *Config) { c.Environment = "production" }, true},
		{"production with openai key", func(c *Config) {
			c.Environment = "production"
			c.OpenAIKey = "sk-test"
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.ValidateConfig()
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
