package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/simonkvalheim/reducer-bank/internal/model"
)

// DefaultJWTSecret is only meant for local development
const DefaultJWTSecret = "dev-secret-change-in-production-use-openssl-rand-base64-32"

// Config holds all configuration for the application
type Config struct {
	Server struct {
		Port        string   `yaml:"port"`
		CORSOrigins []string `yaml:"cors_origins"`
	} `yaml:"server"`
	Redis struct {
		URL       string `yaml:"url"`
		Password  string `yaml:"password"`
		AsyncMode bool   `yaml:"async_mode"` // If true, actions go through the Redis queue
	} `yaml:"redis"`
	Auth struct {
		JWTSecret        string        `yaml:"jwt_secret"`
		OperatorPassword string        `yaml:"operator_password"` // Empty disables auth
		TokenExpiry      time.Duration `yaml:"token_expiry"`
	} `yaml:"auth"`
	Account struct {
		// Pointers so an explicit zero is kept rather than replaced by a default
		EnforceControls *bool  `yaml:"enforce_controls"`
		DepositAmount   *int64 `yaml:"deposit_amount"`
		WithdrawAmount  *int64 `yaml:"withdraw_amount"`
		LoanAmount      *int64 `yaml:"loan_amount"`
	} `yaml:"account"`
}

// Load reads an optional .env file, then an optional YAML file at path,
// then applies environment variable overrides and defaults.
func Load(path string) (*Config, error) {
	// A missing .env is normal outside local development
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Ignoring .env: %v", err)
	}

	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	return cfg, nil
}

// applyEnv overrides file values with environment variables
func (c *Config) applyEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		c.Server.CORSOrigins = splitList(v)
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		c.Redis.URL = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("ASYNC_MODE"); v != "" {
		c.Redis.AsyncMode = v == "true"
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := os.Getenv("OPERATOR_PASSWORD"); v != "" {
		c.Auth.OperatorPassword = v
	}
	if v := os.Getenv("ENFORCE_CONTROLS"); v != "" {
		enforce, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("ENFORCE_CONTROLS: %w", err)
		}
		c.Account.EnforceControls = &enforce
	}

	amounts := []struct {
		key string
		dst **int64
	}{
		{"DEPOSIT_AMOUNT", &c.Account.DepositAmount},
		{"WITHDRAW_AMOUNT", &c.Account.WithdrawAmount},
		{"LOAN_AMOUNT", &c.Account.LoanAmount},
	}
	for _, a := range amounts {
		v := os.Getenv(a.key)
		if v == "" {
			continue
		}
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", a.key, err)
		}
		*a.dst = &n
	}

	return nil
}

func (c *Config) applyDefaults() {
	defaults := model.DefaultControlAmounts()

	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if len(c.Server.CORSOrigins) == 0 {
		c.Server.CORSOrigins = []string{"http://localhost:5173", "http://localhost:3000"}
	}
	if c.Redis.URL == "" {
		c.Redis.URL = "localhost:6379"
	}
	if c.Auth.JWTSecret == "" {
		c.Auth.JWTSecret = DefaultJWTSecret
	}
	if c.Auth.TokenExpiry == 0 {
		c.Auth.TokenExpiry = 15 * time.Minute
	}
	if c.Account.EnforceControls == nil {
		enforce := true
		c.Account.EnforceControls = &enforce
	}
	if c.Account.DepositAmount == nil {
		c.Account.DepositAmount = &defaults.Deposit
	}
	if c.Account.WithdrawAmount == nil {
		c.Account.WithdrawAmount = &defaults.Withdraw
	}
	if c.Account.LoanAmount == nil {
		c.Account.LoanAmount = &defaults.Loan
	}
}

// AuthEnabled reports whether the API requires a bearer token
func (c *Config) AuthEnabled() bool {
	return c.Auth.OperatorPassword != ""
}

// ControlAmounts returns the fixed payloads for the widget buttons
func (c *Config) ControlAmounts() model.ControlAmounts {
	amounts := model.DefaultControlAmounts()
	if c.Account.DepositAmount != nil {
		amounts.Deposit = *c.Account.DepositAmount
	}
	if c.Account.WithdrawAmount != nil {
		amounts.Withdraw = *c.Account.WithdrawAmount
	}
	if c.Account.LoanAmount != nil {
		amounts.Loan = *c.Account.LoanAmount
	}
	return amounts
}

// Validate checks that all fields hold usable values.
func (c *Config) Validate() error {
	if _, err := strconv.Atoi(c.Server.Port); err != nil {
		return fmt.Errorf("server.port must be numeric: %q", c.Server.Port)
	}
	if a := c.ControlAmounts(); a.Deposit < 0 || a.Withdraw < 0 || a.Loan < 0 {
		return fmt.Errorf("account amounts must not be negative")
	}
	if c.AuthEnabled() && c.Auth.JWTSecret == DefaultJWTSecret {
		log.Println("WARNING: Using default JWT_SECRET with auth enabled. Set JWT_SECRET in production!")
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
