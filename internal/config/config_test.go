package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

var envKeys = []string{
	"SMTP_SERVER", "SMTP_PORT", "SENDER_EMAIL", "SENDER_PASSWORD", "FROM_EMAIL",
	"RECIPIENT_EMAIL", "MOVERS_PROVIDER", "POLYGON_API_KEY", "GEMINI_API_KEY",
	"GEMINI_MODEL", "MOVERS_EXCHANGE", "MOVERS_SCHEDULE", "MOVERS_TOP_N", "MOVERS_TICKERS",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Email.SMTPServer != DefaultSMTPServer || cfg.Email.SMTPPort != DefaultSMTPPort {
		t.Errorf("smtp = %s:%d, want %s:%d", cfg.Email.SMTPServer, cfg.Email.SMTPPort, DefaultSMTPServer, DefaultSMTPPort)
	}
	if !reflect.DeepEqual(cfg.Tickers, DefaultTickers) {
		t.Errorf("tickers = %v", cfg.Tickers)
	}
	if len(cfg.Tickers) != 20 {
		t.Errorf("expected 20 default tickers, got %d", len(cfg.Tickers))
	}
	if cfg.TopN != DefaultTopN || cfg.Exchange != DefaultExchange || cfg.DataSource.Provider != DefaultProvider {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_YAMLThenEnvOverrides(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "movers.yaml", `
email:
  smtp_server: mail.example.com
  smtp_port: 2525
  smtp_user: yaml@example.com
  to_email: desk@example.com
tickers: [ibm, orcl]
top_n: 3
`)
	t.Setenv("SENDER_PASSWORD", "s3cret")
	t.Setenv("SMTP_PORT", "465")
	t.Setenv("MOVERS_TICKERS", "aapl, msft,,AAPL")

	cfg, err := Load(path, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Email.SMTPServer != "mail.example.com" {
		t.Errorf("SMTPServer = %q", cfg.Email.SMTPServer)
	}
	if cfg.Email.SMTPPort != 465 {
		t.Errorf("SMTPPort = %d, want env override 465", cfg.Email.SMTPPort)
	}
	if cfg.Email.FromEmail != "yaml@example.com" {
		t.Errorf("FromEmail should default to SMTPUser, got %q", cfg.Email.FromEmail)
	}
	if want := []string{"AAPL", "MSFT"}; !reflect.DeepEqual(cfg.Tickers, want) {
		t.Errorf("tickers = %v, want %v", cfg.Tickers, want)
	}
	if cfg.TopN != 3 {
		t.Errorf("TopN = %d, want 3", cfg.TopN)
	}
	if err := cfg.ValidateMail(); err != nil {
		t.Errorf("mail config should validate: %v", err)
	}
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	envFile := writeFile(t, ".env", "SENDER_EMAIL=dotenv@example.com\nSENDER_PASSWORD=pw\nRECIPIENT_EMAIL=to@example.com\n")

	// godotenv does not override variables that are already set
	t.Setenv("RECIPIENT_EMAIL", "env@example.com")
	os.Unsetenv("SENDER_EMAIL")
	os.Unsetenv("SENDER_PASSWORD")
	t.Cleanup(func() {
		os.Unsetenv("SENDER_EMAIL")
		os.Unsetenv("SENDER_PASSWORD")
	})

	cfg, err := Load("", envFile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Email.SMTPUser != "dotenv@example.com" || cfg.Email.SMTPPass != "pw" {
		t.Errorf("credentials not loaded from .env: %+v", cfg.Email)
	}
	if cfg.Email.ToEmail != "env@example.com" {
		t.Errorf("ToEmail = %q, want existing env value", cfg.Email.ToEmail)
	}
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)

	if _, err := Load(writeFile(t, "bad.yaml", "email: [unclosed"), ""); err == nil {
		t.Error("expected YAML parse error")
	}

	t.Setenv("SMTP_PORT", "abc")
	_, err := Load("", "")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestValidateMail_ListsMissingFields(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = cfg.ValidateMail()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	for _, field := range []string{"SENDER_EMAIL", "SENDER_PASSWORD", "RECIPIENT_EMAIL"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("error %q does not mention %s", err, field)
		}
	}
}

func TestValidate_Provider(t *testing.T) {
	clearEnv(t)
	t.Setenv("MOVERS_PROVIDER", "polygon")
	cfg, err := Load("", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "POLYGON_API_KEY") {
		t.Errorf("expected missing polygon key error, got %v", err)
	}

	cfg.DataSource.Provider = "carrier-pigeon"
	if err := cfg.Validate(); err == nil {
		t.Error("expected unknown provider error")
	}
}

func TestParseTickers(t *testing.T) {
	got := ParseTickers(" brk.b ,jpm, ,JPM,v")
	want := []string{"BRK.B", "JPM", "V"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseTickers = %v, want %v", got, want)
	}
	if ParseTickers("") != nil {
		t.Error("expected nil for empty input")
	}
}
