package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates application configuration values.
type Config struct {
	HTTP     HTTPConfig
	Logging  LoggingConfig
	Database DatabaseConfig
	Attom    AttomConfig
	Model    ModelConfig
	Email    EmailConfig
	SMS      SMSConfig
	Queue    QueueConfig
	DemoMode bool
}

type HTTPConfig struct {
	Port               int
	AllowedOrigins     []string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	ShutdownTimeout    time.Duration
	RateLimitPerMinute int
	// TrustProxyHeaders takes the client address from X-Forwarded-For and
	// X-Real-IP. Enable only behind a proxy that overwrites them.
	TrustProxyHeaders bool
}

type LoggingConfig struct {
	Level  string
	Format string // json|console
}

type DatabaseConfig struct {
	URL       string
	Driver    string // pgx|postgres
	AccessKey string
}

type AttomConfig struct {
	APIKey  string
	BaseURL string
}

type ModelConfig struct {
	Provider      string // openai|gemini
	OpenAIKey     string
	OpenAIModel   string
	OpenAIBaseURL string
	GeminiKey     string
	GeminiModel   string
	Concurrency   int
}

type EmailConfig struct {
	Provider        string // sendgrid|smtp
	SendGridKey     string
	SendGridBaseURL string
	FromEmail       string
	SMTPHost        string
	SMTPPort        int
	SMTPUser        string
	SMTPPassword    string
}

type SMSConfig struct {
	AccountSID string
	AuthToken  string
	FromNumber string
	BaseURL    string
}

type QueueConfig struct {
	URL string
}

const (
	ProviderOpenAI   = "openai"
	ProviderGemini   = "gemini"
	ProviderSendGrid = "sendgrid"
	ProviderSMTP     = "smtp"
)

const (
	defaultPort               = 8080
	defaultReadTimeout        = 15 * time.Second
	defaultWriteTimeout       = 5 * time.Minute
	defaultShutdownTimeout    = 10 * time.Second
	defaultRateLimitPerMinute = 30
	defaultOutreachWorkers    = 5
	defaultSMTPPort           = 587
)

// Load reads the optional .env file and the environment, applying defaults.
func Load() (Config, error) {
	// a missing .env is fine; the environment may already be populated
	_ = godotenv.Load()

	cfg := Config{
		HTTP: HTTPConfig{
			AllowedOrigins:    splitCSV(valueOrDefault("SERVER_ALLOWED_ORIGINS", "*")),
			TrustProxyHeaders: os.Getenv("TRUST_PROXY_HEADERS") == "true",
		},
		Logging: LoggingConfig{
			Level:  valueOrDefault("LOG_LEVEL", "info"),
			Format: valueOrDefault("LOG_FORMAT", "json"),
		},
		Database: DatabaseConfig{
			URL:       os.Getenv("DATABASE_URL"),
			Driver:    valueOrDefault("DATABASE_DRIVER", "pgx"),
			AccessKey: os.Getenv("DATABASE_ACCESS_KEY"),
		},
		Attom: AttomConfig{
			APIKey:  os.Getenv("ATTOM_API_KEY"),
			BaseURL: valueOrDefault("ATTOM_BASE_URL", "https://api.gateway.attomdata.com"),
		},
		Model: ModelConfig{
			Provider:      strings.ToLower(valueOrDefault("LLM_PROVIDER", ProviderOpenAI)),
			OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
			OpenAIModel:   valueOrDefault("OPENAI_MODEL", "gpt-4o"),
			OpenAIBaseURL: valueOrDefault("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			GeminiKey:     os.Getenv("GEMINI_API_KEY"),
			GeminiModel:   valueOrDefault("GEMINI_MODEL", "gemini-2.0-flash"),
		},
		Email: EmailConfig{
			Provider:        strings.ToLower(valueOrDefault("EMAIL_PROVIDER", ProviderSendGrid)),
			SendGridKey:     os.Getenv("SENDGRID_API_KEY"),
			SendGridBaseURL: valueOrDefault("SENDGRID_BASE_URL", "https://api.sendgrid.com"),
			FromEmail:       os.Getenv("SENDGRID_FROM_EMAIL"),
			SMTPHost:        os.Getenv("MAIL_HOST"),
			SMTPUser:        os.Getenv("MAIL_USER"),
			SMTPPassword:    os.Getenv("MAIL_PASS"),
		},
		SMS: SMSConfig{
			AccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
			AuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
			FromNumber: os.Getenv("TWILIO_PHONE_NUMBER"),
			BaseURL:    valueOrDefault("TWILIO_BASE_URL", "https://api.twilio.com"),
		},
		Queue: QueueConfig{
			URL: os.Getenv("RABBITMQ_URL"),
		},
		DemoMode: os.Getenv("DEMO_MODE") == "true",
	}

	var err error
	if cfg.HTTP.Port, err = parsePort("PORT", defaultPort); err != nil {
		return Config{}, err
	}
	if cfg.HTTP.ReadTimeout, err = parseDuration("SERVER_READ_TIMEOUT", defaultReadTimeout); err != nil {
		return Config{}, err
	}
	if cfg.HTTP.WriteTimeout, err = parseDuration("SERVER_WRITE_TIMEOUT", defaultWriteTimeout); err != nil {
		return Config{}, err
	}
	if cfg.HTTP.ShutdownTimeout, err = parseDuration("SERVER_SHUTDOWN_TIMEOUT", defaultShutdownTimeout); err != nil {
		return Config{}, err
	}
	if cfg.HTTP.RateLimitPerMinute, err = parseInt("RATE_LIMIT_PER_MINUTE", defaultRateLimitPerMinute); err != nil {
		return Config{}, err
	}
	if cfg.Model.Concurrency, err = parseInt("OUTREACH_CONCURRENCY", defaultOutreachWorkers); err != nil {
		return Config{}, err
	}
	if cfg.Email.SMTPPort, err = parsePort("MAIL_PORT", defaultSMTPPort); err != nil {
		return Config{}, err
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Model.Provider {
	case ProviderOpenAI, ProviderGemini:
	default:
		return fmt.Errorf("invalid LLM_PROVIDER %q", c.Model.Provider)
	}
	switch c.Email.Provider {
	case ProviderSendGrid, ProviderSMTP:
	default:
		return fmt.Errorf("invalid EMAIL_PROVIDER %q", c.Email.Provider)
	}
	switch c.Database.Driver {
	case "pgx", "postgres":
	default:
		return fmt.Errorf("invalid DATABASE_DRIVER %q", c.Database.Driver)
	}
	if c.Model.Concurrency < 1 {
		return fmt.Errorf("OUTREACH_CONCURRENCY must be positive, got %d", c.Model.Concurrency)
	}
	if c.HTTP.RateLimitPerMinute < 1 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive, got %d", c.HTTP.RateLimitPerMinute)
	}
	return nil
}

// ModelAPIKey returns the credential of the selected language-model provider.
func (c Config) ModelAPIKey() string {
	if c.Model.Provider == ProviderGemini {
		return c.Model.GeminiKey
	}
	return c.Model.OpenAIKey
}

// RetrievalDemo is true when leads must be synthesized instead of fetched:
// either forced, or neither the property nor the model credential is set.
func (c Config) RetrievalDemo() bool {
	return c.DemoMode || (c.Attom.APIKey == "" && c.ModelAPIKey() == "")
}

func (c Config) EmailDemo() bool {
	if c.DemoMode {
		return true
	}
	if c.Email.Provider == ProviderSMTP {
		return c.Email.SMTPHost == ""
	}
	return c.Email.SendGridKey == ""
}

func (c Config) SMSDemo() bool {
	return c.DemoMode || c.SMS.AccountSID == ""
}

func valueOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, v, err)
	}
	return n, nil
}

func parsePort(key string, fallback int) (int, error) {
	port, err := parseInt(key, fallback)
	if err != nil {
		return 0, err
	}
	if port <= 0 || port > 65535 {
		return 0, fmt.Errorf("%s %d is out of range", key, port)
	}
	return port, nil
}

func parseDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func splitCSV(csv string) []string {
	var out []string
	for _, part := range strings.Split(csv, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
