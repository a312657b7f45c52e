/*
Package config loads runtime settings from an optional YAML file, an optional .env file
and the environment.
*/
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultSMTPServer  = "smtp.gmail.com"
	DefaultSMTPPort    = 587
	DefaultTopN        = 5
	DefaultExchange    = "xnys"
	DefaultProvider    = "yahoo"
	DefaultGeminiModel = "gemini-2.5-flash"
)

// DefaultTickers is the ticker universe used when none is configured.
var DefaultTickers = []string{
	"AAPL", "MSFT", "GOOGL", "AMZN", "TSLA", "META", "NVDA", "JPM", "V", "WMT",
	"JNJ", "PG", "MA", "HD", "DIS", "BAC", "ADBE", "NFLX", "CRM", "CSCO",
}

type EmailConfig struct {
	SMTPServer string `yaml:"smtp_server"`
	SMTPPort   int    `yaml:"smtp_port"`
	SMTPUser   string `yaml:"smtp_user"`
	SMTPPass   string `yaml:"smtp_pass"`
	FromEmail  string `yaml:"from_email"`
	ToEmail    string `yaml:"to_email"`
}

type DataSourceConfig struct {
	Provider      string `yaml:"provider"`
	PolygonAPIKey string `yaml:"polygon_api_key"`
}

type AIConfig struct {
	GeminiAPIKey string `yaml:"gemini_api_key"`
	Model        string `yaml:"model"`
}

// Config is built once at startup and handed to each component.
type Config struct {
	Email      EmailConfig      `yaml:"email"`
	DataSource DataSourceConfig `yaml:"data_source"`
	AI         AIConfig         `yaml:"ai"`
	Tickers    []string         `yaml:"tickers"`
	TopN       int              `yaml:"top_n"`
	Exchange   string           `yaml:"exchange"`
	Schedule   string           `yaml:"schedule"`
}

// ValidationError lists required settings that are missing or invalid.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid configuration: " + strings.Join(e.Problems, "; ")
}

// Load reads the YAML file at path (a missing file is fine), loads envFile into the
// process environment without overriding existing variables, applies environment
// overrides and fills in defaults.
func Load(path, envFile string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
		}
		if len(data) > 0 {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config from YAML: %w", err)
			}
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load env file '%s': %w", envFile, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Email.SMTPServer, "SMTP_SERVER")
	setString(&c.Email.SMTPUser, "SENDER_EMAIL")
	setString(&c.Email.SMTPPass, "SENDER_PASSWORD")
	setString(&c.Email.FromEmail, "FROM_EMAIL")
	setString(&c.Email.ToEmail, "RECIPIENT_EMAIL")
	setString(&c.DataSource.Provider, "MOVERS_PROVIDER")
	setString(&c.DataSource.PolygonAPIKey, "POLYGON_API_KEY")
	setString(&c.AI.GeminiAPIKey, "GEMINI_API_KEY")
	setString(&c.AI.Model, "GEMINI_MODEL")
	setString(&c.Exchange, "MOVERS_EXCHANGE")
	setString(&c.Schedule, "MOVERS_SCHEDULE")

	if err := setInt(&c.Email.SMTPPort, "SMTP_PORT"); err != nil {
		return err
	}
	if err := setInt(&c.TopN, "MOVERS_TOP_N"); err != nil {
		return err
	}

	if v := os.Getenv("MOVERS_TICKERS"); v != "" {
		c.Tickers = ParseTickers(v)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Email.SMTPServer == "" {
		c.Email.SMTPServer = DefaultSMTPServer
	}
	if c.Email.SMTPPort == 0 {
		c.Email.SMTPPort = DefaultSMTPPort
	}
	if c.Email.FromEmail == "" {
		c.Email.FromEmail = c.Email.SMTPUser
	}
	if c.DataSource.Provider == "" {
		c.DataSource.Provider = DefaultProvider
	}
	if c.AI.Model == "" {
		c.AI.Model = DefaultGeminiModel
	}
	if len(c.Tickers) == 0 {
		c.Tickers = append([]string(nil), DefaultTickers...)
	}
	if c.TopN == 0 {
		c.TopN = DefaultTopN
	}
	if c.Exchange == "" {
		c.Exchange = DefaultExchange
	}
}

// Validate checks the settings every run needs.
func (c *Config) Validate() error {
	var problems []string
	if len(c.Tickers) == 0 {
		problems = append(problems, "at least one ticker is required")
	}
	if c.TopN < 0 {
		problems = append(problems, fmt.Sprintf("top_n must be positive, got %d", c.TopN))
	}
	switch c.DataSource.Provider {
	case "yahoo":
	case "polygon":
		if c.DataSource.PolygonAPIKey == "" {
			problems = append(problems, "POLYGON_API_KEY is required for the polygon provider")
		}
	default:
		problems = append(problems, fmt.Sprintf("unknown data provider %q", c.DataSource.Provider))
	}
	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// ValidateMail checks the settings needed to deliver the report.
func (c *Config) ValidateMail() error {
	var problems []string
	if c.Email.SMTPServer == "" {
		problems = append(problems, "SMTP_SERVER is required")
	}
	if c.Email.SMTPPort <= 0 || c.Email.SMTPPort > 65535 {
		problems = append(problems, fmt.Sprintf("invalid SMTP_PORT %d", c.Email.SMTPPort))
	}
	if c.Email.SMTPUser == "" {
		problems = append(problems, "SENDER_EMAIL is required")
	}
	if c.Email.SMTPPass == "" {
		problems = append(problems, "SENDER_PASSWORD is required")
	}
	if c.Email.ToEmail == "" {
		problems = append(problems, "RECIPIENT_EMAIL is required")
	}
	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// ParseTickers splits a comma-separated list, upper-casing and dropping blanks and
// duplicates while keeping order.
func ParseTickers(s string) []string {
	seen := make(map[string]struct{})
	var tickers []string
	for _, part := range strings.Split(s, ",") {
		t := strings.ToUpper(strings.TrimSpace(part))
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		tickers = append(tickers, t)
	}
	return tickers
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return &ValidationError{Problems: []string{fmt.Sprintf("%s must be an integer, got %q", key, v)}}
	}
	*dst = n
	return nil
}
